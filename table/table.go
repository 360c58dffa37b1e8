package table

import "strconv"

// ValueKind represents the kind of a Value.
type ValueKind int

const (
	KindNull   ValueKind = iota // absent: column missing on a row, or no result
	KindEmpty                   // blank cell
	KindNumber
	KindText
)

// Value is a dynamically-typed cell in a table.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

// Null returns an absent value.
func Null() Value {
	return Value{Kind: KindNull}
}

// Empty returns a blank cell value.
func Empty() Value {
	return Value{Kind: KindEmpty}
}

// Number creates a numeric value.
func Number(v float64) Value {
	return Value{Kind: KindNumber, Num: v}
}

// Text creates a text value.
func Text(v string) Value {
	return Value{Kind: KindText, Str: v}
}

// IsNull returns true if the value is absent.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// IsNumber returns true if the value is numeric.
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// AsFloat returns the numeric payload and whether the value is a number.
func (v Value) AsFloat() (float64, bool) {
	if v.Kind == KindNumber {
		return v.Num, true
	}
	return 0, false
}

// AsString returns the string form. Empty and Null both render as "".
func (v Value) AsString() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText:
		return v.Str
	default:
		return ""
	}
}

// Equal compares by kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == o.Num
	case KindText:
		return v.Str == o.Str
	default:
		return true
	}
}

// Interface returns the value as a plain Go value for encoders.
// Null and Empty both map to nil.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindText:
		return v.Str
	default:
		return nil
	}
}

// Row is a single row in a table, values aligned with the table's columns.
type Row struct {
	Values []Value
}

// Table is the core data structure: columns + rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []string) *Table {
	return &Table{
		Columns: columns,
		Rows:    nil,
	}
}

// ColIndex returns the index of a column by name, or -1.
func (t *Table) ColIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AddRow appends a row to the table.
func (t *Table) AddRow(values []Value) {
	t.Rows = append(t.Rows, Row{Values: values})
}

// Get returns the value at a given row and column name. Unknown columns
// and out-of-range rows yield Null.
func (t *Table) Get(row int, col string) Value {
	idx := t.ColIndex(col)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return Null()
	}
	return t.Rows[row].Value(idx)
}

// Value returns the value at idx, or Null when the row is short.
func (r Row) Value(idx int) Value {
	if idx < 0 || idx >= len(r.Values) {
		return Null()
	}
	return r.Values[idx]
}

// Clone creates a deep copy of the table structure (shares Value data).
func (t *Table) Clone() *Table {
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		vals := make([]Value, len(r.Values))
		copy(vals, r.Values)
		rows[i] = Row{Values: vals}
	}
	return &Table{Columns: cols, Rows: rows}
}
