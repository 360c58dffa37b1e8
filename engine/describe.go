package engine

import (
	"strings"

	"github.com/razeghi71/tq/query"
	"github.com/razeghi71/tq/table"
)

// Describe renders spec as an SQL-like descriptor. It is diagnostic only
// and mirrors what Run computes for the same spec.
func Describe(spec query.Spec) string {
	lines := make([]string, 0, 5)

	cols := spec.EffectiveColumns()
	if len(cols) == 0 {
		lines = append(lines, "SELECT")
	} else {
		lines = append(lines, "SELECT "+strings.Join(cols, ", "))
	}
	lines = append(lines, "FROM data")

	if len(spec.Filters) > 0 {
		conds := make([]string, len(spec.Filters))
		for i, p := range spec.Filters {
			conds[i] = describePredicate(p)
		}
		lines = append(lines, "WHERE "+strings.Join(conds, " AND "))
	}
	if len(spec.Group) > 0 {
		lines = append(lines, "GROUP BY "+strings.Join(spec.Group, ", "))
	}
	if spec.Order.IsSet() {
		lines = append(lines, "ORDER BY "+spec.Order.Key+" "+spec.Order.Dir.Keyword())
	}
	return strings.Join(lines, "\n")
}

func describePredicate(p query.Predicate) string {
	if p.Op == query.OpContains {
		return p.Column + " LIKE " + quote("%"+p.Value+"%")
	}
	return p.Column + " " + p.Op.Symbol() + " " + literal(p.Value)
}

// literal leaves values that coerce to numbers bare and quotes the rest.
func literal(raw string) string {
	if table.Coerce(raw).IsNumber() {
		return raw
	}
	return quote(raw)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
