// Package screening runs ordered roster-screening steps over the family
// roster before matching starts.
package screening

import (
	"context"
	"fmt"

	"github.com/caseworks/heartmatch/internal/profile"

	"go.uber.org/zap"
)

// Filter represents a single screening step applied to the roster.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, deps Deps, r *profile.Families) (*profile.Families, Step, error)
}

// Deps aggregates dependencies shared across all screening steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a screening step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Run executes the supplied filters sequentially and returns the screened roster.
func Run(ctx context.Context, deps Deps, steps []Filter, r *profile.Families) (*profile.Families, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("screening step disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(ctx, deps, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("screening step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		r = next
	}

	return r, nil
}
