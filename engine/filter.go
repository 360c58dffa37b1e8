package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/razeghi71/tq/query"
	"github.com/razeghi71/tq/table"
)

// Filter keeps the rows matching every predicate, in input order. With no
// predicates the input table is returned as is.
func Filter(t *table.Table, preds []query.Predicate) *table.Table {
	if len(preds) == 0 {
		return t
	}

	indices := make([]int, len(preds))
	for i, p := range preds {
		indices[i] = t.ColIndex(p.Column)
	}

	result := table.NewTable(t.Columns)
	for _, row := range t.Rows {
		keep := true
		for i, p := range preds {
			if !Match(p, row.Value(indices[i])) {
				keep = false
				break
			}
		}
		if keep {
			result.AddRow(row.Values)
		}
	}
	return result
}

// Match evaluates one predicate against a cell value. Unknown operators
// never match.
func Match(p query.Predicate, v table.Value) bool {
	switch p.Op {
	case query.OpEquals:
		return v.Equal(table.Coerce(p.Value))
	case query.OpNotEquals:
		return !v.Equal(table.Coerce(p.Value))
	case query.OpGreaterThan:
		a, b, ok := numericOperands(v, p.Value)
		return ok && a > b
	case query.OpLessThan:
		a, b, ok := numericOperands(v, p.Value)
		return ok && a < b
	case query.OpContains:
		return strings.Contains(strings.ToLower(v.AsString()), strings.ToLower(p.Value))
	default:
		return false
	}
}

// numericOperands parses the raw filter value directly, since Coerce may
// keep a numeric-looking value as text. A blank value compares as 0.
func numericOperands(v table.Value, raw string) (float64, float64, bool) {
	a, ok := v.AsFloat()
	if !ok {
		return 0, 0, false
	}
	b, ok := parseOperand(raw)
	if !ok {
		return 0, 0, false
	}
	return a, b, true
}

// parseOperand reads a comparison operand. Only the spelled-out
// "Infinity" is infinite; "inf" and "NaN" are not numbers.
func parseOperand(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, true
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
