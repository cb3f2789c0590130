package filtering

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/finploy/matcher/internal/matching"
)

type excludeFileFilter struct {
	idColumn string
	path     string
}

// NewExcludeFile creates a filter that removes candidates recorded in the
// placements file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(string) {}

func (f *excludeFileFilter) IsEnabled() bool { return true }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	if cfg != nil {
		f.idColumn = cfg.IDColumn
	}
	f.path = strings.TrimSpace(viper.GetString("exclude-file"))
	return nil
}

func (f *excludeFileFilter) Apply(deps Deps, t *matching.Table) (*matching.Table, Step, error) {
	initial := t.Len()
	if f.path == "" {
		return t, Step{Initial: initial, Dropped: 0, Left: t.Len()}, nil
	}

	placed, err := GetPlacementsFromFile(f.path)
	if err != nil {
		return t, Step{}, fmt.Errorf("getting placed candidates from file: %w", err)
	}

	next, dropped := exclude(t, f.idColumn, placed.CandidateIDs())
	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding candidates based on placements file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", dropped),
			zap.Int("candidates_left", next.Len()),
		)
	}

	return next, Step{Initial: initial, Dropped: len(dropped), Left: next.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}
