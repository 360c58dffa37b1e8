// Package session holds the current dataset and query spec and re-runs the
// pipeline after every edit.
//
// A Session is not safe for concurrent use: edits are expected one at a
// time from a single caller, and each edit completes its pipeline run before
// returning.
package session

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/razeghi71/tq/engine"
	"github.com/razeghi71/tq/query"
	"github.com/razeghi71/tq/table"
)

// Dataset is one ingested table. It is never modified after creation;
// loading new data creates a new Dataset.
type Dataset struct {
	ID     string
	Source string
	Table  *table.Table
}

// NewDataset wraps t with a fresh ID.
func NewDataset(t *table.Table, source string) *Dataset {
	return &Dataset{ID: uuid.NewString(), Source: source, Table: t}
}

// Session is the mutation surface over a dataset and spec.
type Session struct {
	dataset *Dataset
	spec    query.Spec
	result  engine.Result
	logger  *slog.Logger
}

// New starts a session on t with the default spec and runs it once.
func New(t *table.Table, source string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{logger: logger}
	s.Replace(t, source)
	return s
}

// Replace swaps in a new dataset wholesale and resets the spec to its defaults.
func (s *Session) Replace(t *table.Table, source string) engine.Result {
	s.dataset = NewDataset(t, source)
	s.logger.Info("dataset loaded",
		"id", s.dataset.ID,
		"source", source,
		"columns", len(t.Columns),
		"rows", len(t.Rows),
	)
	return s.SetSpec(query.Default(t))
}

// Dataset returns the current dataset.
func (s *Session) Dataset() *Dataset {
	return s.dataset
}

// Spec returns a copy of the current spec snapshot.
func (s *Session) Spec() query.Spec {
	return s.spec.Clone()
}

// Result returns the output of the last run.
func (s *Session) Result() engine.Result {
	return s.result
}

// SetSpec replaces the spec and runs the pipeline.
func (s *Session) SetSpec(spec query.Spec) engine.Result {
	s.spec = spec.Clone()
	s.result = engine.Run(s.dataset.Table, s.spec)
	s.logger.Debug("query updated",
		"dataset", s.dataset.ID,
		"filters", len(s.spec.Filters),
		"group", s.spec.Group,
		"rows", s.result.Stats.Final,
	)
	return s.result
}

// Apply derives a new spec from the current one and runs the pipeline.
func (s *Session) Apply(edit func(query.Spec) query.Spec) engine.Result {
	return s.SetSpec(edit(s.spec.Clone()))
}

// AddSelect adds a column to the select list.
func (s *Session) AddSelect(col string) engine.Result {
	return s.Apply(func(q query.Spec) query.Spec { return q.AddSelect(col) })
}

// AddFilter appends a predicate.
func (s *Session) AddFilter(p query.Predicate) engine.Result {
	return s.Apply(func(q query.Spec) query.Spec { return q.AddFilter(p) })
}

// RemoveFilter drops the predicate at index i.
func (s *Session) RemoveFilter(i int) engine.Result {
	return s.Apply(func(q query.Spec) query.Spec { return q.RemoveFilter(i) })
}

// AddGroup adds a group column.
func (s *Session) AddGroup(col string) engine.Result {
	return s.Apply(func(q query.Spec) query.Spec { return q.AddGroup(col) })
}

// RemoveGroup drops the group column at index i.
func (s *Session) RemoveGroup(i int) engine.Result {
	return s.Apply(func(q query.Spec) query.Spec { return q.RemoveGroup(i) })
}

// SetAggregateFunc changes the aggregate function.
func (s *Session) SetAggregateFunc(fn query.AggFunc) engine.Result {
	return s.Apply(func(q query.Spec) query.Spec { return q.SetAggregateFunc(fn) })
}

// SetAggregateColumn changes the aggregated column.
func (s *Session) SetAggregateColumn(col string) engine.Result {
	return s.Apply(func(q query.Spec) query.Spec { return q.SetAggregateColumn(col) })
}

// SetOrder changes the order key and direction.
func (s *Session) SetOrder(key string, dir query.Direction) engine.Result {
	return s.Apply(func(q query.Spec) query.Spec { return q.SetOrder(key, dir) })
}

// ClearOrder drops the ordering, leaving rows in pipeline order.
func (s *Session) ClearOrder() engine.Result {
	return s.Apply(func(q query.Spec) query.Spec { return q.ClearOrder() })
}
