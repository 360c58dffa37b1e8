package loader

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	goavro "github.com/linkedin/goavro/v2"

	"github.com/razeghi71/tq/table"
)

// ErrEmptyInput is returned when a source has no header row or no records.
var ErrEmptyInput = errors.New("empty input")

// Load reads a file and returns a Table.
func Load(filename string) (*table.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return loadCSV(filename)
	case ".json":
		return loadJSON(filename)
	case ".jsonl":
		return loadJSONL(filename)
	case ".avro":
		return loadAvro(filename)
	case ".parquet":
		return loadParquet(filename)
	default:
		return nil, fmt.Errorf("unsupported file format %q (supported: .csv, .json, .jsonl, .avro, .parquet)", ext)
	}
}

func loadCSV(filename string) (*table.Table, error) {
	return readFile(filename, ReadCSV)
}

// ParseCSV parses comma-separated text with a header line.
func ParseCSV(text string) (*table.Table, error) {
	return ReadCSV(strings.NewReader(text))
}

// ReadCSV reads a header line and data rows. Cells are trimmed and coerced;
// short rows are padded with Empty. Duplicate header names collapse into
// one column at the first position, with the last occurrence's value.
func ReadCSV(r io.Reader) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}

	var columns []string
	target := make([]int, len(header)) // header position -> column index
	seen := make(map[string]int)
	for i, h := range header {
		name := strings.TrimSpace(h)
		idx, ok := seen[name]
		if !ok {
			idx = len(columns)
			seen[name] = idx
			columns = append(columns, name)
		}
		target[i] = idx
	}

	t := table.NewTable(columns)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row: %w", err)
		}

		vals := make([]table.Value, len(columns))
		for i, idx := range target {
			if i < len(record) {
				vals[idx] = table.Coerce(strings.TrimSpace(record[i]))
			} else {
				vals[idx] = table.Empty()
			}
		}
		t.AddRow(vals)
	}

	return t, nil
}

func loadJSON(filename string) (*table.Table, error) {
	return readFile(filename, ReadJSON)
}

func loadJSONL(filename string) (*table.Table, error) {
	return readFile(filename, ReadJSONL)
}

func loadAvro(filename string) (*table.Table, error) {
	return readFile(filename, ReadAvro)
}

func readFile(filename string, read func(io.Reader) (*table.Table, error)) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", filename, err)
	}
	defer f.Close()

	t, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}

// ReadJSON reads a JSON array of objects.
func ReadJSON(r io.Reader) (*table.Table, error) {
	var records []map[string]interface{}
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("cannot parse JSON: %w (expected array of objects)", err)
	}
	return fromRecords(records)
}

// ReadJSONL reads one JSON object per line. Blank lines are skipped.
func ReadJSONL(r io.Reader) (*table.Table, error) {
	var records []map[string]interface{}
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec map[string]interface{}
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("invalid JSON on line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read JSONL: %w", err)
	}
	return fromRecords(records)
}

// fromRecords orders columns by first appearance across records, sorted
// within a record since object key order is lost in decoding. Missing keys
// become Empty.
func fromRecords(records []map[string]interface{}) (*table.Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	index := make(map[string]int)
	var columns []string
	for _, rec := range records {
		for _, k := range sortedKeys(rec) {
			if _, ok := index[k]; !ok {
				index[k] = len(columns)
				columns = append(columns, k)
			}
		}
	}

	t := table.NewTable(columns)
	for _, rec := range records {
		vals := make([]table.Value, len(columns))
		for i := range vals {
			vals[i] = table.Empty()
		}
		for k, v := range rec {
			vals[index[k]] = jsonValue(v)
		}
		t.AddRow(vals)
	}
	return t, nil
}

func sortedKeys(rec map[string]interface{}) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func jsonValue(v interface{}) table.Value {
	switch val := v.(type) {
	case nil:
		return table.Empty()
	case float64:
		return table.Number(val)
	case string:
		return textValue(val)
	case bool:
		return table.Text(strconv.FormatBool(val))
	default:
		// objects and arrays keep their JSON text
		b, err := json.Marshal(val)
		if err != nil {
			return table.Text(fmt.Sprint(val))
		}
		return table.Text(string(b))
	}
}

// textValue keeps typed string fields as text; only "" becomes Empty.
func textValue(s string) table.Value {
	if s == "" {
		return table.Empty()
	}
	return table.Text(s)
}

// ReadAvro reads an Avro object container file. Columns follow the
// top-level record fields of the writer schema.
func ReadAvro(r io.Reader) (*table.Table, error) {
	ocf, err := goavro.NewOCFReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read Avro OCF: %w", err)
	}

	var schema struct {
		Fields []struct {
			Name string `json:"name"`
		} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(ocf.Codec().Schema()), &schema); err != nil {
		return nil, fmt.Errorf("cannot parse Avro schema: %w", err)
	}
	columns := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		columns[i] = f.Name
	}

	t := table.NewTable(columns)
	for ocf.Scan() {
		datum, err := ocf.Read()
		if err != nil {
			return nil, fmt.Errorf("cannot decode Avro record %d: %w", len(t.Rows), err)
		}
		rec, ok := datum.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("Avro record %d: expected a record, got %T", len(t.Rows), datum)
		}
		vals := make([]table.Value, len(columns))
		for i, col := range columns {
			vals[i] = avroValue(rec[col])
		}
		t.AddRow(vals)
	}
	if err := ocf.Err(); err != nil {
		return nil, fmt.Errorf("cannot read Avro blocks: %w", err)
	}
	return t, nil
}

func avroValue(v interface{}) table.Value {
	switch val := v.(type) {
	case nil:
		return table.Empty()
	case int32:
		return table.Number(float64(val))
	case int64:
		return table.Number(float64(val))
	case float32:
		return table.Number(float64(val))
	case float64:
		return table.Number(val)
	case string:
		return textValue(val)
	case []byte:
		return textValue(string(val))
	case bool:
		return table.Text(strconv.FormatBool(val))
	case map[string]interface{}:
		// a non-null union arrives as {"branch": value}
		for _, inner := range val {
			return avroValue(inner)
		}
		return table.Empty()
	default:
		return table.Text(fmt.Sprint(val))
	}
}
