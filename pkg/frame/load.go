package frame

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// nullTokens are parsed as missing values in every input format.
var nullTokens = []string{"", "NA", "NaN", "nan", "null", "NULL", "None", "<nil>"}

func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(nullTokens),
	}
}

// ReadCSV parses a CSV document with a header row.
func ReadCSV(r io.Reader) (*Frame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return FromRecords(records)
}

// ReadJSON parses a JSON array of objects. Columns follow the order in
// which keys first appear; a key absent from an object is missing there.
func ReadJSON(r io.Reader) (*Frame, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	var (
		header []string
		index  = map[string]int{}
		rows   []map[string]string
	)

	for dec.More() {
		obj, keys, err := readObject(dec)
		if err != nil {
			return nil, err
		}

		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(header)
				header = append(header, k)
			}
		}

		rows = append(rows, obj)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no objects", ErrEmptyInput)
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)

	for _, obj := range rows {
		rec := make([]string, len(header))
		for i, k := range header {
			rec[i] = obj[k]
		}

		records = append(records, rec)
	}

	return FromRecords(records)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read json: %w", err)
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("read json: expected %q, got %v", want, tok)
	}

	return nil
}

// readObject decodes one object, returning its values as text and its keys
// in document order.
func readObject(dec *json.Decoder) (map[string]string, []string, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}

	obj := map[string]string{}

	var keys []string

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("read json: %w", err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("read json: expected key, got %v", tok)
		}

		var v any

		err = dec.Decode(&v)
		if err != nil {
			return nil, nil, fmt.Errorf("read json %q: %w", key, err)
		}

		text, err := jsonText(v)
		if err != nil {
			return nil, nil, fmt.Errorf("read json %q: %w", key, err)
		}

		if _, seen := obj[key]; !seen {
			keys = append(keys, key)
		}

		obj[key] = text
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}

	return obj, keys, nil
}

func jsonText(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		b, err := json.Marshal(x)

		return string(b), err
	}
}

// FromRecords builds a frame from rows of text, the first row being the header.
// The records are not modified.
func FromRecords(records [][]string) (*Frame, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	rows := make([][]string, len(records))
	rows[0] = records[0]

	// Type detection only skips "NaN", so every null token is mapped to it.
	for r, row := range records[1:] {
		out := slices.Clone(row)
		for i, v := range out {
			if slices.Contains(nullTokens, strings.TrimSpace(v)) {
				out[i] = "NaN"
			}
		}

		rows[r+1] = out
	}

	return FromDataFrame(dataframe.LoadRecords(rows, loadOptions()...))
}

// ReadXLSX parses one sheet of an Excel workbook. An empty sheet name
// selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (*Frame, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	if sheet == "" {
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrEmptyInput)
		}

		sheet = sheets[0]
	}

	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q", ErrEmptyInput, sheet)
	}

	// Trailing empty cells are trimmed by excelize; pad to the header width.
	width := len(rows[0])
	for i, row := range rows {
		for len(row) < width {
			row = append(row, "")
		}

		rows[i] = row[:width]
	}

	return FromRecords(rows)
}

// Load reads a file, choosing the parser by extension (.csv, .json, .xlsx).
func Load(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(file)
	case ".json":
		return ReadJSON(file)
	case ".xlsx":
		return ReadXLSX(file, "")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
