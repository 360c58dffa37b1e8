package engine

import (
	"log/slog"

	"github.com/razeghi71/tq/query"
	"github.com/razeghi71/tq/table"
)

// Result is everything one pipeline run produces.
type Result struct {
	Table *table.Table
	Stats Stats
	SQL   string
}

// Run executes the full pipeline on input: filter, group & aggregate,
// project, order. It never modifies input and the returned table shares no
// row storage with it.
func Run(input *table.Table, spec query.Spec) Result {
	filtered := Filter(input, spec.Filters)
	grouped := GroupAndAggregate(filtered, spec.Group, spec.Aggregate)
	projected := Project(grouped, spec.Select, spec.Aggregate)
	ordered := Order(projected, spec.Order)

	stats := NewStats(spec, len(input.Rows), len(filtered.Rows), len(grouped.Rows), len(ordered.Rows))

	slog.Debug("pipeline run",
		"start", stats.Start,
		"filtered", stats.Filtered,
		"grouped", len(grouped.Rows),
		"final", stats.Final,
	)

	return Result{
		Table: ordered,
		Stats: stats,
		SQL:   Describe(spec),
	}
}
