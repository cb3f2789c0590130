package filtering

import (
	"strings"

	"go.uber.org/zap"

	"github.com/finploy/matcher/internal/matching"
)

type excludeIDsFilter struct {
	idColumn   string
	candidates []string
}

// NewExcludeIDs creates a filter that removes candidates whose ids are listed
// in the config.
func NewExcludeIDs() Filter {
	return &excludeIDsFilter{}
}

func (f *excludeIDsFilter) Name() string { return "exclude_ids" }

func (f *excludeIDsFilter) Disable(string) {}

func (f *excludeIDsFilter) IsEnabled() bool { return true }

func (f *excludeIDsFilter) Validate(cfg *Config) error {
	f.candidates = nil
	if cfg != nil {
		f.idColumn = cfg.IDColumn
		f.candidates = append(f.candidates, cfg.Candidates...)
	}
	return nil
}

func (f *excludeIDsFilter) Apply(deps Deps, t *matching.Table) (*matching.Table, Step, error) {
	initial := t.Len()
	if len(f.candidates) == 0 {
		return t, Step{Initial: initial, Dropped: 0, Left: t.Len()}, nil
	}

	next, dropped := exclude(t, f.idColumn, f.candidates)
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding candidates by configured ids",
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", next.Len()),
		)
	}

	return next, Step{Initial: initial, Dropped: len(dropped), Left: next.Len()}, nil
}

func (f *excludeIDsFilter) Status() Status {
	details := map[string]string{}
	if len(f.candidates) > 0 {
		details["candidates"] = strings.Join(f.candidates, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
