package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/razeghi71/tq/engine"
	"github.com/razeghi71/tq/loader"
	"github.com/razeghi71/tq/query"
	"github.com/razeghi71/tq/render"
	"github.com/razeghi71/tq/session"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	SpecPath string
	Select   []string
	Where    []string
	Group    []string
	Agg      string
	Order    string
	Dir      string
	NoOrder  bool
	Limit    int
	SQL      bool
	Explain  bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a query over a data file",
		Long: `Load a data file, start from its default query, apply the spec file
and flag edits in order, and print the result.

Edits are applied as: --spec, --select, --where, --group, --agg, --order,
--no-order.`,
		Example: `  tq run sales.csv --group Region --agg 'SUM(Sales)' --order 'SUM(Sales)' --dir desc
  tq run sales.csv --where 'Rep contains o' --where 'Sales gt 60' --explain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd.OutOrStdout(), cmd.Flags().Changed("select"))
		},
	}

	cmd.Flags().StringVarP(&opts.SpecPath, "spec", "s", "", "YAML query spec replacing the defaults")
	cmd.Flags().StringSliceVar(&opts.Select, "select", nil, "columns to select (replaces the current list)")
	cmd.Flags().StringArrayVarP(&opts.Where, "where", "w", nil, "filter as 'column op value' (eq|neq|gt|lt|contains), repeatable")
	cmd.Flags().StringSliceVarP(&opts.Group, "group", "g", nil, "columns to group by")
	cmd.Flags().StringVar(&opts.Agg, "agg", "", "aggregate as FUNC(column) or FUNC (COUNT|SUM|AVG|MIN|MAX)")
	cmd.Flags().StringVar(&opts.Order, "order", "", "order key (a column or aggregate alias)")
	cmd.Flags().StringVar(&opts.Dir, "dir", string(query.Ascending), "order direction (asc|desc)")
	cmd.Flags().BoolVar(&opts.NoOrder, "no-order", false, "drop any ordering and keep pipeline order")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "max rows to print (default from config)")
	cmd.Flags().BoolVar(&opts.SQL, "sql", false, "print the SQL descriptor after the table")
	cmd.Flags().BoolVar(&opts.Explain, "explain", false, "print row counts and steps before the table")

	return cmd
}

func runQuery(opts *RunOptions, path string, w io.Writer, replaceSelect bool) error {
	t, err := loader.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot load data", err)
	}

	sess := session.New(t, path, opts.Logger)

	if opts.SpecPath != "" {
		spec, err := query.LoadSpec(opts.SpecPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "cannot load spec", err)
		}
		sess.SetSpec(spec)
	}

	if replaceSelect {
		cols := opts.Select
		sess.Apply(func(q query.Spec) query.Spec {
			q.Select = append([]string{}, cols...)
			return q
		})
	}

	for _, raw := range opts.Where {
		p, err := parseWhere(raw)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --where", err)
		}
		sess.AddFilter(p)
	}

	for _, col := range opts.Group {
		sess.AddGroup(col)
	}

	if opts.Agg != "" {
		fn, col, err := parseAggregate(opts.Agg)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --agg", err)
		}
		sess.SetAggregateFunc(fn)
		if col != "" {
			sess.SetAggregateColumn(col)
		}
	}

	if opts.Order != "" {
		dir, err := query.ParseDirection(opts.Dir)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --dir", err)
		}
		sess.SetOrder(opts.Order, dir)
	}
	if opts.NoOrder {
		sess.ClearOrder()
	}

	limit := opts.Config.Output.Limit
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	return writeResult(w, opts, sess.Result(), limit)
}

func writeResult(w io.Writer, opts *RunOptions, res engine.Result, limit int) error {
	if opts.Format == "json" {
		return render.JSON(w, res, limit)
	}

	if opts.Explain {
		if err := render.Explain(w, res); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	if err := render.Table(w, res.Table, limit); err != nil {
		return err
	}
	if opts.SQL {
		fmt.Fprintf(w, "\n%s\n", res.SQL)
	}
	return nil
}

// parseWhere parses "column op value". The value is everything after the
// operator and may contain spaces or be empty.
func parseWhere(raw string) (query.Predicate, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), " ", 3)
	if len(parts) < 2 || parts[0] == "" {
		return query.Predicate{}, fmt.Errorf("expected 'column op value', got %q", raw)
	}

	op := query.Operator(strings.ToLower(parts[1]))
	switch op {
	case query.OpEquals, query.OpNotEquals, query.OpGreaterThan, query.OpLessThan, query.OpContains:
	default:
		return query.Predicate{}, fmt.Errorf("unknown operator %q", parts[1])
	}

	p := query.Predicate{Column: parts[0], Op: op}
	if len(parts) == 3 {
		p.Value = parts[2]
	}
	return p, nil
}

// parseAggregate accepts "SUM(Sales)" or a bare "SUM".
func parseAggregate(raw string) (query.AggFunc, string, error) {
	raw = strings.TrimSpace(raw)
	name, col := raw, ""
	if open := strings.IndexByte(raw, '('); open >= 0 {
		if !strings.HasSuffix(raw, ")") {
			return "", "", fmt.Errorf("unbalanced parentheses in %q", raw)
		}
		name, col = raw[:open], strings.TrimSpace(raw[open+1:len(raw)-1])
	}

	fn := query.AggFunc(strings.ToUpper(strings.TrimSpace(name)))
	if !fn.Known() {
		return "", "", fmt.Errorf("unknown aggregate function %q", name)
	}
	return fn, col, nil
}
