package query

import "github.com/razeghi71/tq/table"

// Default derives the starting spec for a freshly loaded table: every
// column selected, SUM over the first numeric column ordered descending by
// its alias, or ascending by the first column when nothing is numeric.
func Default(t *table.Table) Spec {
	s := Spec{Select: cloneStrings(t.Columns)}
	if s.Select == nil {
		s.Select = []string{}
	}

	if col, ok := FirstNumericColumn(t); ok {
		s.Aggregate = Aggregate{Func: AggSum, Column: col}
		s.Order = Order{Key: s.Aggregate.Alias(), Dir: Descending}
		return s
	}
	if len(t.Columns) > 0 {
		s.Order = Order{Key: t.Columns[0], Dir: Ascending}
	}
	return s
}

// FirstNumericColumn returns the first column, in column order, that holds
// at least one Number cell.
func FirstNumericColumn(t *table.Table) (string, bool) {
	for i, col := range t.Columns {
		for _, r := range t.Rows {
			if r.Value(i).IsNumber() {
				return col, true
			}
		}
	}
	return "", false
}
