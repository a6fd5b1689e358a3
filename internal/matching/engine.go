// Package matching runs the per-family evaluation loop and ranks the
// resulting recommendations.
package matching

import (
	"context"
	"sort"
	"time"

	"github.com/caseworks/heartmatch/internal/ai"
	"github.com/caseworks/heartmatch/internal/logger"
	"github.com/caseworks/heartmatch/internal/pii"
	"github.com/caseworks/heartmatch/internal/profile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recommendation is one ranked child/family pairing. Produced fresh per
// matching run, never merged with prior results, never persisted.
type Recommendation struct {
	FamilyID  string    `json:"family_id"`
	Score     int       `json:"match_score"`
	Reasoning string    `json:"reasoning"`
	Timestamp time.Time `json:"timestamp"`
}

// Result is the outcome of one matching run.
type Result struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Items       []*Recommendation `json:"items"`
}

func (r *Result) Len() int {
	return len(r.Items)
}

// Engine evaluates one child against the roster, one blocking call per
// family, sequentially. It holds no per-run state: model selection and chain
// position live inside each matcher call.
type Engine struct {
	matcher ai.Matcher
	logger  *zap.Logger
	now     func() time.Time
}

func NewEngine(matcher ai.Matcher, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		matcher: matcher,
		logger:  log,
		now:     time.Now,
	}
}

// Match anonymizes both sides, evaluates every family in roster order and
// returns the ranked recommendation list. A family whose evaluation fails is
// omitted from the result with a warning; the batch never halts. Any panic in
// the flow is recovered into an empty result.
func (e *Engine) Match(ctx context.Context, child *profile.ChildProfile, families *profile.Families) (result *Result) {
	runID := uuid.NewString()
	log := e.logger.With(zap.String(logger.FieldRunID, runID))

	result = &Result{
		RunID:       runID,
		GeneratedAt: e.now().UTC(),
		Items:       []*Recommendation{},
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("matching flow failed", zap.Any("panic", r))
			result.Items = []*Recommendation{}
		}
	}()

	log.Info("starting matching run", zap.Int("families", families.Len()))

	childAnon := pii.AnonymizeStruct(child)

	for _, family := range families.Items {
		familyAnon := pii.AnonymizeStruct(family)

		assessment, err := e.matcher.Evaluate(ctx, childAnon, familyAnon)
		if err != nil {
			log.Warn("no recommendation for family",
				zap.String("family_id", family.ID),
				zap.Error(err),
			)
			continue
		}

		result.Items = append(result.Items, &Recommendation{
			FamilyID:  family.ID,
			Score:     assessment.Score,
			Reasoning: assessment.Reasoning,
			Timestamp: e.now().UTC(),
		})
	}

	Rank(result.Items)

	log.Info("matching run finished",
		zap.Int("families", families.Len()),
		zap.Int("recommendations", result.Len()),
	)

	return result
}

// Rank orders recommendations by score descending. The sort is stable: equal
// scores keep their roster order, which is the guaranteed tie-break policy.
func Rank(items []*Recommendation) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}
