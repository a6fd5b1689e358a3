package ai

import (
	"regexp"
	"strconv"
)

// NeutralScore is returned when no score can be parsed from model output. The
// caller has no way to distinguish it from a genuine neutral score; that is
// the documented contract.
const NeutralScore = 50

var scorePattern = regexp.MustCompile(`(?i)score[:\s]*(\d+)`)

// ExtractScore parses a compatibility score out of unstructured model output:
// the first run of digits following the word "score", case-insensitively,
// with optional colon/whitespace in between. It is a best-effort heuristic,
// not a schema-validated parse; any failure silently yields NeutralScore.
func ExtractScore(text string) int {
	match := scorePattern.FindStringSubmatch(text)
	if match == nil {
		return NeutralScore
	}

	score, err := strconv.Atoi(match[1])
	if err != nil {
		return NeutralScore
	}

	return score
}
