// Package ai defines the matching contract between the engine and model
// providers: the assessment record, the prompt template, and the score
// extraction heuristic shared by all providers.
package ai

import "context"

// MatchAssessment is the outcome of evaluating one child/family pair.
type MatchAssessment struct {
	// Score is the 0-100 compatibility score parsed out of the model output.
	// NeutralScore when the output carries no recognizable score.
	Score int
	// Reasoning is the raw model output text, unmodified.
	Reasoning string
}

// Matcher evaluates an anonymized child record against an anonymized family
// record. An error means no recommendation could be produced for the pair;
// the caller omits the family rather than failing the batch.
type Matcher interface {
	Evaluate(ctx context.Context, child, family map[string]any) (*MatchAssessment, error)
}
