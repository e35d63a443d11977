package overview

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/edaplot/pkg/format"
)

// ErrUnknownStyle is returned for an unsupported table style.
var ErrUnknownStyle = errors.New("unknown table style")

// Style selects a text rendering of the table.
type Style string

// Styles.
const (
	StyleTable    Style = "table"
	StyleMarkdown Style = "markdown"
	StyleCSV      Style = "csv"
	StyleHTML     Style = "html"
	StyleJSON     Style = "json"
	StyleYAML     Style = "yaml"
)

// Styles returns every supported style name.
func Styles() []Style {
	return []Style{StyleTable, StyleMarkdown, StyleCSV, StyleHTML, StyleJSON, StyleYAML}
}

// decimals is the precision of rates and correlations in text tables.
const decimals = 4

// Write renders the table in the given style.
func (t *Table) Write(w io.Writer, style Style) error {
	switch style {
	case StyleJSON:
		return t.WriteJSON(w)
	case StyleYAML:
		return t.WriteYAML(w)
	default:
		return t.WriteTable(w, style)
	}
}

// WriteTable renders the table with go-pretty.
func (t *Table) WriteTable(w io.Writer, style Style) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Header = text.FormatDefault
	tbl.Style().Format.Footer = text.FormatDefault

	header := table.Row{}
	for _, col := range Columns(t.HasCorr) {
		header = append(header, col)
	}

	tbl.AppendHeader(header)

	for _, r := range t.Rows {
		row := table.Row{
			r.Feature,
			r.QtdNull,
			fixed(r.PercentNull),
			r.Dtype,
			r.QtdCat,
		}

		if t.HasCorr {
			row = append(row, fixed(r.TargetCorr))
		}

		tbl.AppendRow(row)
	}

	var out string

	switch style {
	case StyleTable, "":
		tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %s columns", format.Count(len(t.Rows)))})

		out = tbl.Render()
	case StyleMarkdown:
		out = tbl.RenderMarkdown()
	case StyleCSV:
		out = tbl.RenderCSV()
	case StyleHTML:
		out = tbl.RenderHTML()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	_, err := io.WriteString(w, out+"\n")
	if err != nil {
		return fmt.Errorf("write overview: %w", err)
	}

	return nil
}

func fixed(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}

	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// record is the serialized form of a row. NaN values become null.
type record struct {
	Feature     string   `json:"feature"      yaml:"feature"`
	QtdNull     int      `json:"qtd_null"     yaml:"qtd_null"`
	PercentNull *float64 `json:"percent_null" yaml:"percent_null"`
	Dtype       string   `json:"dtype"        yaml:"dtype"`
	QtdCat      int      `json:"qtd_cat"      yaml:"qtd_cat"`
}

type corrRecord struct {
	record `yaml:",inline"`

	TargetCorr *float64 `json:"target_pearson_corr" yaml:"target_pearson_corr"`
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

func (t *Table) records() any {
	base := make([]record, len(t.Rows))
	for i, r := range t.Rows {
		base[i] = record{
			Feature:     r.Feature,
			QtdNull:     r.QtdNull,
			PercentNull: finiteOrNil(r.PercentNull),
			Dtype:       r.Dtype,
			QtdCat:      r.QtdCat,
		}
	}

	if !t.HasCorr {
		return base
	}

	withCorr := make([]corrRecord, len(t.Rows))
	for i, r := range t.Rows {
		withCorr[i] = corrRecord{record: base[i], TargetCorr: finiteOrNil(r.TargetCorr)}
	}

	return withCorr
}

// WriteJSON writes the rows as an indented JSON array.
func (t *Table) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(t.records())
	if err != nil {
		return fmt.Errorf("encode overview json: %w", err)
	}

	return nil
}

// WriteYAML writes the rows as a YAML sequence.
func (t *Table) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(t.records())
	if err != nil {
		return fmt.Errorf("encode overview yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("encode overview yaml: %w", err)
	}

	return nil
}
