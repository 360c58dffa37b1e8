package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goavro "github.com/linkedin/goavro/v2"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razeghi71/tq/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func assertRow(t *testing.T, tbl *table.Table, row int, want ...table.Value) {
	t.Helper()
	require.Less(t, row, len(tbl.Rows))
	require.Len(t, tbl.Rows[row].Values, len(want))
	for i, w := range want {
		got := tbl.Rows[row].Values[i]
		assert.True(t, w.Equal(got), "row %d col %s: want %+v, got %+v", row, tbl.Columns[i], w, got)
	}
}

func TestParseCSV(t *testing.T) {
	tbl, err := ParseCSV("Region, Sales ,Rep\nEast,100,Alice\n\nWest, 50.5 ,\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Sales", "Rep"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assertRow(t, tbl, 0, table.Text("East"), table.Number(100), table.Text("Alice"))
	assertRow(t, tbl, 1, table.Text("West"), table.Number(50.5), table.Empty())
}

func TestParseCSVShortRowsArePadded(t *testing.T) {
	tbl, err := ParseCSV("a,b,c\n1\n1,2,3,4\n")
	require.NoError(t, err)
	assertRow(t, tbl, 0, table.Number(1), table.Empty(), table.Empty())
	assertRow(t, tbl, 1, table.Number(1), table.Number(2), table.Number(3))
}

func TestParseCSVDuplicateHeadersLastWins(t *testing.T) {
	tbl, err := ParseCSV("id,name,id\n1,x,2\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, tbl.Columns)
	assertRow(t, tbl, 0, table.Number(2), table.Text("x"))
}

func TestParseCSVKeepsNonNumericText(t *testing.T) {
	tbl, err := ParseCSV("zip,qty\n007,1e3\n")
	require.NoError(t, err)
	assertRow(t, tbl, 0, table.Text("007"), table.Text("1e3"))
}

func TestParseCSVEmptyInput(t *testing.T) {
	_, err := ParseCSV("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyInput))

	_, err = ParseCSV("\n\n")
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestParseCSVHeaderOnly(t *testing.T) {
	tbl, err := ParseCSV("a,b\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
	assert.Empty(t, tbl.Rows)
}

func TestLoadCSVFile(t *testing.T) {
	path := writeFile(t, "sales.csv", "Region,Sales\nEast,100\n")
	tbl, err := Load(path)
	require.NoError(t, err)
	assertRow(t, tbl, 0, table.Text("East"), table.Number(100))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("data.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "sales.json", `[
		{"Region": "East", "Sales": 100, "Active": true},
		{"Region": "", "Sales": null, "Extra": [1, 2]}
	]`)
	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Active", "Region", "Sales", "Extra"}, tbl.Columns)
	assertRow(t, tbl, 0, table.Text("true"), table.Text("East"), table.Number(100), table.Empty())
	assertRow(t, tbl, 1, table.Empty(), table.Empty(), table.Empty(), table.Text("[1,2]"))
}

func TestLoadJSONEmptyArray(t *testing.T) {
	_, err := Load(writeFile(t, "empty.json", "[]"))
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestLoadJSONL(t *testing.T) {
	path := writeFile(t, "sales.jsonl", "{\"Region\":\"East\",\"Sales\":1.5}\n\n{\"Region\":\"West\",\"Sales\":2}\n")
	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Sales"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assertRow(t, tbl, 1, table.Text("West"), table.Number(2))
}

func TestLoadJSONLInvalidLine(t *testing.T) {
	_, err := Load(writeFile(t, "bad.jsonl", "{\"a\":1}\n{oops\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadAvro(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.avro")
	f, err := os.Create(path)
	require.NoError(t, err)

	w, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W: f,
		Schema: `{
			"type": "record",
			"name": "Sale",
			"fields": [
				{"name": "Region", "type": "string"},
				{"name": "Sales", "type": "long"},
				{"name": "Score", "type": ["null", "double"]}
			]
		}`,
	})
	require.NoError(t, err)
	require.NoError(t, w.Append([]map[string]interface{}{
		{"Region": "East", "Sales": int64(100), "Score": goavro.Union("double", 1.5)},
		{"Region": "West", "Sales": int64(50), "Score": nil},
	}))
	require.NoError(t, f.Close())

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Sales", "Score"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assertRow(t, tbl, 0, table.Text("East"), table.Number(100), table.Number(1.5))
	assertRow(t, tbl, 1, table.Text("West"), table.Number(50), table.Empty())
}

type saleRecord struct {
	Region string  `parquet:"Region"`
	Sales  int64   `parquet:"Sales"`
	Share  float64 `parquet:"Share"`
}

func TestLoadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)

	w := parquet.NewWriter(f)
	for _, r := range []saleRecord{
		{"East", 100, 0.25},
		{"East", 200, 0.5},
		{"West", 50, 0.125},
	} {
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Region", "Sales", "Share"}, tbl.Columns)
	require.Len(t, tbl.Rows, 3)
	assert.True(t, tbl.Get(1, "Sales").Equal(table.Number(200)))
	assert.True(t, tbl.Get(2, "Region").Equal(table.Text("West")))
	assert.True(t, tbl.Get(2, "Share").Equal(table.Number(0.125)))
}

func TestReadJSONFromReader(t *testing.T) {
	tbl, err := ReadJSON(strings.NewReader(`[{"b": "x", "a": 1}, {"c": 2.5}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Columns)
	assertRow(t, tbl, 1, table.Empty(), table.Empty(), table.Number(2.5))

	_, err = ReadJSON(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrEmptyInput))

	_, err = ReadJSON(strings.NewReader(`{"a": 1}`))
	require.Error(t, err)
}

func TestReadJSONLBlankOnly(t *testing.T) {
	_, err := ReadJSONL(strings.NewReader("\n  \n"))
	assert.True(t, errors.Is(err, ErrEmptyInput))
}

func TestLoadParquetMalformed(t *testing.T) {
	path := writeFile(t, "bad.parquet", "not a parquet file at all")

	var err error
	require.NotPanics(t, func() { _, err = Load(path) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.parquet")

	data := []byte("PAR1")
	_, err = ReadParquet(bytes.NewReader(data), int64(len(data)))
	require.Error(t, err)
}
