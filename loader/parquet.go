package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/razeghi71/tq/table"
)

const parquetBatchSize = 128

func loadParquet(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", filename, err)
	}

	t, err := ReadParquet(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

// ReadParquet reads every row of a parquet file of the given size. Each leaf
// column becomes a table column named by its dotted path. Input that is not
// a parquet file is an error.
func ReadParquet(input io.ReaderAt, size int64) (t *table.Table, err error) {
	pqFile, err := parquet.OpenFile(input, size)
	if err != nil {
		return nil, fmt.Errorf("cannot open parquet file: %w", err)
	}

	reader := parquet.NewReader(pqFile)
	defer func() {
		if closeErr := reader.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("cannot close parquet reader: %w", closeErr)
		}
	}()

	paths := reader.Schema().Columns()
	columns := make([]string, len(paths))
	for i, p := range paths {
		columns[i] = strings.Join(p, ".")
	}
	t = table.NewTable(columns)

	rows := make([]parquet.Row, parquetBatchSize)
	for {
		n, readErr := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			vals := make([]table.Value, len(columns))
			for i := range vals {
				vals[i] = table.Empty()
			}
			for _, v := range row {
				if c := v.Column(); c >= 0 && c < len(vals) {
					vals[c] = parquetValue(v)
				}
			}
			t.AddRow(vals)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("error reading parquet rows: %w", readErr)
		}
	}
	return t, nil
}

func parquetValue(v parquet.Value) table.Value {
	if v.IsNull() {
		return table.Empty()
	}
	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return table.Text("true")
		}
		return table.Text("false")
	case parquet.Int32:
		return table.Number(float64(v.Int32()))
	case parquet.Int64:
		return table.Number(float64(v.Int64()))
	case parquet.Float:
		return table.Number(float64(v.Float()))
	case parquet.Double:
		return table.Number(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return textValue(string(v.ByteArray()))
	default:
		return table.Text(v.String())
	}
}
