package filtering

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/finploy/matcher/internal/matching"
)

// Filter represents a single filtering step applied to the candidates table
// before indexing.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(deps Deps, t *matching.Table) (*matching.Table, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Logger *zap.Logger
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	// IDColumn is the candidate id column the filters match against.
	IDColumn string
	// Candidates lists candidate ids to drop unconditionally.
	Candidates []string
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially, returning the candidates
// table left over for indexing.
func Run(cfg *Config, deps Deps, steps []Filter, t *matching.Table) (*matching.Table, error) {
	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			if deps.Logger != nil {
				deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			}
			continue
		}

		next, info, err := step.Apply(deps, t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		if deps.Logger != nil {
			deps.Logger.Info("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}

		t = next
	}

	return t, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// exclude builds a new table without the rows whose id column matches one of
// the targets. Returns the new table and the dropped ids, keeping row order.
func exclude(t *matching.Table, idColumn string, targets []string) (*matching.Table, []string) {
	drop := make(map[string]bool, len(targets))
	for _, id := range targets {
		drop[id] = true
	}

	next := matching.NewTable(t.Columns())
	var dropped []string
	for _, row := range t.Rows() {
		id := row.Get(idColumn)
		if drop[id] {
			dropped = append(dropped, id)
			continue
		}
		next.AppendRow(row.Cells())
	}
	return next, dropped
}
