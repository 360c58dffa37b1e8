// Package render writes pipeline results for display. It only formats what
// engine.Run produced and holds no query logic of its own.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/razeghi71/tq/engine"
	"github.com/razeghi71/tq/table"
)

// Table writes t as a text table, showing at most limit rows (0 = all).
func Table(w io.Writer, t *table.Table, limit int) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No results")
		return err
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	shown := capRows(len(t.Rows), limit)
	for _, row := range t.Rows[:shown] {
		cells := make([]string, len(t.Columns))
		for i := range t.Columns {
			cells[i] = row.Value(i).AsString()
		}
		tw.Append(cells)
	}
	tw.Render()

	if shown < len(t.Rows) {
		if _, err := fmt.Fprintf(w, "(showing %d of %d rows)\n", shown, len(t.Rows)); err != nil {
			return err
		}
	}
	return nil
}

// Explain writes the row-count flow, the query descriptor and the step
// summary.
func Explain(w io.Writer, res engine.Result) error {
	_, err := fmt.Fprintf(w, "%s\n\n%s\n\n%s\n", res.Stats.Flow(), res.SQL, res.Stats.Explain())
	return err
}

// Document is the JSON shape of a result.
type Document struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
	Total   int             `json:"total"`
	Stats   engine.Stats    `json:"stats"`
	SQL     string          `json:"sql"`
}

// NewDocument builds the JSON document for res with at most limit rows.
func NewDocument(res engine.Result, limit int) Document {
	t := res.Table
	shown := capRows(len(t.Rows), limit)
	rows := make([][]interface{}, shown)
	for i, row := range t.Rows[:shown] {
		cells := make([]interface{}, len(t.Columns))
		for j := range t.Columns {
			cells[j] = row.Value(j).Interface()
		}
		rows[i] = cells
	}
	return Document{
		Columns: t.Columns,
		Rows:    rows,
		Total:   len(t.Rows),
		Stats:   res.Stats,
		SQL:     res.SQL,
	}
}

// JSON writes res as an indented JSON document.
func JSON(w io.Writer, res engine.Result, limit int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res, limit))
}

func capRows(n, limit int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}
