package engine

import (
	"sort"
	"strings"

	"github.com/razeghi71/tq/query"
	"github.com/razeghi71/tq/table"
)

// Order stable-sorts a copy of t on ord.Key. Rows that compare equal keep
// their input order. An unset key returns t unchanged.
func Order(t *table.Table, ord query.Order) *table.Table {
	if !ord.IsSet() {
		return t
	}
	idx := t.ColIndex(ord.Key)
	asc := ord.Dir.IsAscending()

	result := t.Clone()
	sort.SliceStable(result.Rows, func(i, j int) bool {
		cmp := compareValues(result.Rows[i].Value(idx), result.Rows[j].Value(idx))
		if asc {
			return cmp < 0
		}
		return cmp > 0
	})
	return result
}

// compareValues compares numerically when both sides are numbers and by
// string form otherwise.
func compareValues(a, b table.Value) int {
	af, aok := a.AsFloat()
	bf, bok := b.AsFloat()
	if aok && bok {
		if af < bf {
			return -1
		}
		if af > bf {
			return 1
		}
		return 0
	}
	return strings.Compare(a.AsString(), b.AsString())
}
