package engine

import (
	"fmt"
	"strings"

	"github.com/razeghi71/tq/query"
)

// Stats records row counts at each pipeline stage plus summaries of the
// aggregate and ordering.
type Stats struct {
	Start     int    `json:"start"`
	Filtered  int    `json:"filtered"`
	Final     int    `json:"final"`
	Groups    *int   `json:"groups,omitempty"`    // set only when grouping
	Aggregate string `json:"aggregate,omitempty"` // "SUM on Sales"
	Sorted    string `json:"sorted,omitempty"`    // "SUM(Sales) DESC"
}

// NewStats builds the stats for one run. grouped must be the post-filter,
// pre-projection output of the group stage.
func NewStats(spec query.Spec, start, filtered int, grouped, final int) Stats {
	s := Stats{Start: start, Filtered: filtered, Final: final}
	if len(spec.Group) > 0 {
		n := grouped
		s.Groups = &n
	}
	if spec.Aggregate.Active() {
		s.Aggregate = fmt.Sprintf("%s on %s", spec.Aggregate.Func.Upper(), spec.Aggregate.Column)
	}
	if spec.Order.IsSet() {
		s.Sorted = spec.Order.Key + " " + spec.Order.Dir.Keyword()
	}
	return s
}

// Flow renders the row-count summary line.
func (s Stats) Flow() string {
	return fmt.Sprintf("Rows: %d → %d → %d", s.Start, s.Filtered, s.Final)
}

// Explain renders one line per pipeline step.
func (s Stats) Explain() string {
	lines := []string{
		fmt.Sprintf("Starting rows: %d", s.Start),
		fmt.Sprintf("After filters: %d", s.Filtered),
	}
	if s.Groups != nil {
		lines = append(lines, fmt.Sprintf("Groups formed: %d", *s.Groups))
	}
	if s.Aggregate != "" {
		lines = append(lines, "Aggregated: "+s.Aggregate)
	}
	if s.Sorted != "" {
		lines = append(lines, "Sorted by: "+s.Sorted)
	}
	return strings.Join(lines, "\n")
}
