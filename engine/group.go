package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/razeghi71/tq/query"
	"github.com/razeghi71/tq/table"
)

// Group is one bucket of rows sharing the same group-column values.
type Group struct {
	Key  []table.Value // typed values of the first member
	Rows []int         // indices into the source table, in input order
}

// Partition buckets the rows of t by the values of cols. Groups are returned
// in first-seen order and every row lands in exactly one group. With no
// columns all rows form a single group.
func Partition(t *table.Table, cols []string) []Group {
	indices := make([]int, len(cols))
	for i, c := range cols {
		indices[i] = t.ColIndex(c)
	}

	var groups []Group
	keyMap := make(map[string]int) // encoded key -> index in groups

	for ri, row := range t.Rows {
		keyVals := make([]table.Value, len(indices))
		for i, idx := range indices {
			keyVals[i] = row.Value(idx)
		}
		k := encodeKey(keyVals)

		gi, exists := keyMap[k]
		if !exists {
			gi = len(groups)
			groups = append(groups, Group{Key: keyVals})
			keyMap[k] = gi
		}
		groups[gi].Rows = append(groups[gi].Rows, ri)
	}
	return groups
}

// encodeKey builds a map key that is equal for two tuples iff every
// component is Equal. Each component is written as kind, payload length
// and payload, so no payload content can collide with the framing.
func encodeKey(vals []table.Value) string {
	var sb strings.Builder
	for _, v := range vals {
		var payload string
		switch v.Kind {
		case table.KindNumber:
			f := v.Num
			if f == 0 {
				f = 0 // -0 == 0
			}
			payload = strconv.FormatFloat(f, 'g', -1, 64)
		case table.KindText:
			payload = v.Str
		}
		sb.WriteString(strconv.Itoa(int(v.Kind)))
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(len(payload)))
		sb.WriteByte(':')
		sb.WriteString(payload)
	}
	return sb.String()
}

// GroupAndAggregate collapses t into one row per group of cols, adding the
// aggregate alias column when agg is active. Without group columns and
// without an active aggregate it returns t unchanged; with only an aggregate
// the whole table is one group and exactly one row comes out.
func GroupAndAggregate(t *table.Table, cols []string, agg query.Aggregate) *table.Table {
	active := agg.Active()
	if len(cols) == 0 && !active {
		return t
	}

	var groups []Group
	if len(cols) == 0 {
		all := make([]int, len(t.Rows))
		for i := range all {
			all[i] = i
		}
		groups = []Group{{Rows: all}}
	} else {
		groups = Partition(t, cols)
	}

	resultCols := make([]string, len(cols), len(cols)+1)
	copy(resultCols, cols)
	aggIdx := -1
	if active {
		resultCols = append(resultCols, agg.Alias())
		aggIdx = t.ColIndex(agg.Column)
	}

	result := table.NewTable(resultCols)
	for _, g := range groups {
		vals := make([]table.Value, len(resultCols))
		copy(vals, g.Key)
		if active {
			vals[len(cols)] = Round(aggregate(agg.Func.Upper(), t, g.Rows, aggIdx))
		}
		result.AddRow(vals)
	}
	return result
}

func aggregate(fn query.AggFunc, t *table.Table, rows []int, idx int) table.Value {
	if fn == query.AggCount {
		return table.Number(float64(len(rows)))
	}

	nums := make([]float64, 0, len(rows))
	for _, ri := range rows {
		if f, ok := t.Rows[ri].Value(idx).AsFloat(); ok {
			nums = append(nums, f)
		}
	}

	switch fn {
	case query.AggSum:
		return table.Number(sum(nums))
	case query.AggAvg:
		if len(nums) == 0 {
			return table.Number(0)
		}
		return table.Number(sum(nums) / float64(len(nums)))
	case query.AggMin:
		if len(nums) == 0 {
			return table.Null()
		}
		minVal := math.Inf(1)
		for _, f := range nums {
			minVal = math.Min(minVal, f)
		}
		return table.Number(minVal)
	case query.AggMax:
		if len(nums) == 0 {
			return table.Null()
		}
		maxVal := math.Inf(-1)
		for _, f := range nums {
			maxVal = math.Max(maxVal, f)
		}
		return table.Number(maxVal)
	default:
		return table.Null()
	}
}

func sum(nums []float64) float64 {
	var s float64
	for _, f := range nums {
		s += f
	}
	return s
}

// Round rounds numbers half away from zero to two decimals. Other values
// pass through.
func Round(v table.Value) table.Value {
	f, ok := v.AsFloat()
	if !ok {
		return v
	}
	return table.Number(math.Round(f*100) / 100)
}
