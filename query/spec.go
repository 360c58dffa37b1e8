package query

import (
	"fmt"
	"strings"
)

// Operator names a filter comparison.
type Operator string

const (
	OpEquals      Operator = "eq"
	OpNotEquals   Operator = "neq"
	OpGreaterThan Operator = "gt"
	OpLessThan    Operator = "lt"
	OpContains    Operator = "contains"
)

// Symbol returns the display symbol for an operator. Unknown operators
// render as themselves.
func (o Operator) Symbol() string {
	switch o {
	case OpEquals:
		return "="
	case OpNotEquals:
		return "!="
	case OpGreaterThan:
		return ">"
	case OpLessThan:
		return "<"
	case OpContains:
		return "contains"
	default:
		return string(o)
	}
}

// Predicate is one filter condition. Value is the raw text as entered.
type Predicate struct {
	Column string   `yaml:"column" json:"column"`
	Op     Operator `yaml:"op" json:"op"`
	Value  string   `yaml:"value" json:"value"`
}

// String renders the predicate as a filter chip, e.g. "Sales > 60".
func (p Predicate) String() string {
	return p.Column + " " + p.Op.Symbol() + " " + p.Value
}

// AggFunc names an aggregate function.
type AggFunc string

const (
	AggCount AggFunc = "COUNT"
	AggSum   AggFunc = "SUM"
	AggAvg   AggFunc = "AVG"
	AggMin   AggFunc = "MIN"
	AggMax   AggFunc = "MAX"
)

// Known reports whether f is one of the supported functions, ignoring case.
func (f AggFunc) Known() bool {
	switch f.Upper() {
	case AggCount, AggSum, AggAvg, AggMin, AggMax:
		return true
	}
	return false
}

// Upper returns the upper-cased function name.
func (f AggFunc) Upper() AggFunc {
	return AggFunc(strings.ToUpper(string(f)))
}

// Aggregate is the optional single aggregate of a query.
type Aggregate struct {
	Func   AggFunc `yaml:"func,omitempty" json:"func,omitempty"`
	Column string  `yaml:"column,omitempty" json:"column,omitempty"`
}

// IsSet reports whether both the function and column are filled in.
func (a Aggregate) IsSet() bool {
	return a.Func != "" && a.Column != ""
}

// Active reports whether the aggregate produces an output column. A set
// aggregate with an unknown function is kept in the spec but is inactive.
func (a Aggregate) Active() bool {
	return a.IsSet() && a.Func.Known()
}

// Alias returns the synthesized output column name, e.g. "SUM(Sales)".
func (a Aggregate) Alias() string {
	return Alias(a.Func, a.Column)
}

// Alias builds "{FUNC}({col})" with an upper-case function name.
func Alias(fn AggFunc, col string) string {
	return string(fn.Upper()) + "(" + col + ")"
}

// IsAlias reports whether name looks like an aggregate alias of a known function.
func IsAlias(name string) bool {
	open := strings.IndexByte(name, '(')
	if open <= 0 || !strings.HasSuffix(name, ")") {
		return false
	}
	return AggFunc(name[:open]).Known()
}

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// IsAscending reports whether d sorts low-to-high. Anything other than
// "asc" sorts descending.
func (d Direction) IsAscending() bool {
	return strings.EqualFold(string(d), string(Ascending))
}

// Keyword returns the SQL keyword for the direction the pipeline sorts in.
func (d Direction) Keyword() string {
	if d.IsAscending() {
		return "ASC"
	}
	return "DESC"
}

// ParseDirection accepts "asc" or "desc" in any case. An empty string is
// ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(Ascending):
		return Ascending, nil
	case string(Descending):
		return Descending, nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be asc or desc", s)
	}
}

// Order is the optional single-key ordering.
type Order struct {
	Key string    `yaml:"key,omitempty" json:"key,omitempty"`
	Dir Direction `yaml:"dir,omitempty" json:"dir,omitempty"`
}

// IsSet reports whether an order key is configured.
func (o Order) IsSet() bool {
	return o.Key != ""
}

// Spec is an immutable snapshot of a query. Edits return a new Spec and
// never touch the receiver's slices.
type Spec struct {
	Select    []string    `yaml:"select" json:"select"`
	Filters   []Predicate `yaml:"filters,omitempty" json:"filters,omitempty"`
	Group     []string    `yaml:"group,omitempty" json:"group,omitempty"`
	Aggregate Aggregate   `yaml:"aggregate,omitempty" json:"aggregate,omitempty"`
	Order     Order       `yaml:"order,omitempty" json:"order,omitempty"`
}

// EffectiveColumns returns the select list with the aggregate alias
// appended when the aggregate is active and not already selected.
func (s Spec) EffectiveColumns() []string {
	return EffectiveColumns(s.Select, s.Aggregate)
}

// EffectiveColumns is the projection column list for sel and agg.
func EffectiveColumns(sel []string, agg Aggregate) []string {
	cols := make([]string, len(sel), len(sel)+1)
	copy(cols, sel)
	if agg.Active() {
		alias := agg.Alias()
		if !contains(cols, alias) {
			cols = append(cols, alias)
		}
	}
	return cols
}

// Clone returns a deep copy.
func (s Spec) Clone() Spec {
	return Spec{
		Select:    cloneStrings(s.Select),
		Filters:   clonePredicates(s.Filters),
		Group:     cloneStrings(s.Group),
		Aggregate: s.Aggregate,
		Order:     s.Order,
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func clonePredicates(in []Predicate) []Predicate {
	if in == nil {
		return nil
	}
	out := make([]Predicate, len(in))
	copy(out, in)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
