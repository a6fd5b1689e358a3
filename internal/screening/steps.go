package screening

import (
	"context"
	"fmt"

	"github.com/caseworks/heartmatch/internal/pii"
	"github.com/caseworks/heartmatch/internal/profile"

	"go.uber.org/zap"
)

type complianceFilter struct {
	required []string
}

// NewCompliance creates a step that drops roster records missing the required
// field set. Presence-only: a record with empty values still passes.
func NewCompliance(required []string) Filter {
	if len(required) == 0 {
		required = profile.FamilyRequiredFields
	}
	return &complianceFilter{required: required}
}

func (f *complianceFilter) Name() string { return "compliance" }

func (f *complianceFilter) Disable(string) {}

func (f *complianceFilter) IsEnabled() bool { return true }

func (f *complianceFilter) Apply(_ context.Context, deps Deps, r *profile.Families) (*profile.Families, Step, error) {
	initial := r.Len()

	var dropped []string
	for _, family := range r.Items {
		if !pii.Compliant(family.Map(), f.required...) {
			dropped = append(dropped, family.ID)
		}
	}

	excluded := r.Exclude(dropped)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding families missing required fields",
			zap.Strings("required_fields", f.required),
			zap.Strings("excluded_families", excluded),
			zap.Int("families_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

type excludeFileFilter struct {
	path string
}

// NewExcludeFile creates a step that drops families recorded in the exclude file.
func NewExcludeFile(path string) Filter {
	return &excludeFileFilter{path: path}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, r *profile.Families) (*profile.Families, Step, error) {
	initial := r.Len()
	if f.path == "" {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	excluded, err := profile.GetExcludedFamiliesFromFile(f.path)
	if err != nil {
		return r, Step{}, fmt.Errorf("getting excluded families from file: %w", err)
	}

	removed := r.Exclude(excluded.FamilyIDs())
	if deps.Logger != nil && len(removed) > 0 {
		deps.Logger.Info("excluding families based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_families", removed),
			zap.Int("families_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}
