package engine

import (
	"github.com/razeghi71/tq/query"
	"github.com/razeghi71/tq/table"
)

// Project restricts and reorders the columns of t to the select list, with
// the aggregate alias appended when needed. Columns missing from t come out
// as Null.
func Project(t *table.Table, sel []string, agg query.Aggregate) *table.Table {
	cols := query.EffectiveColumns(sel, agg)
	indices := make([]int, len(cols))
	for i, c := range cols {
		indices[i] = t.ColIndex(c)
	}

	result := table.NewTable(cols)
	result.Rows = make([]table.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		vals := make([]table.Value, len(indices))
		for i, idx := range indices {
			vals[i] = row.Value(idx)
		}
		result.AddRow(vals)
	}
	return result
}
