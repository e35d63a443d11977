// Package plotpage renders recorded figures as a single static HTML page:
// one go-echarts chart per surface, laid out as a CSS grid.
package plotpage

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const styleTagLen = 8 // len("</style>")

// Style defines chart dimensions and grid margins.
type Style struct {
	Width      string
	Height     string
	GridLeft   string
	GridRight  string
	GridTop    string
	GridBottom string
}

// DefaultStyle returns the default chart style.
func DefaultStyle() Style {
	return Style{
		Width:      "100%",
		Height:     "360px",
		GridLeft:   "5%",
		GridRight:  "5%",
		GridTop:    "48",
		GridBottom: "40",
	}
}

// CellKind selects how a grid cell is drawn.
type CellKind int

// Cell kinds.
const (
	// CellChart holds a chart.
	CellChart CellKind = iota
	// CellText holds text only.
	CellText
	// CellPlaceholder keeps its grid slot empty.
	CellPlaceholder
)

// Text is one line of a text cell.
type Text struct {
	Text  string
	Size  float64
	Color string
	Bold  bool
}

// Cell is one slot of the page grid.
type Cell struct {
	Row, Col int
	Kind     CellKind
	Chart    Renderable
	Texts    []Text
}

// Page represents a complete visualization page.
type Page struct {
	Title string
	Cols  int
	Style Style
	Theme Theme
	Cells []Cell
}

// NewPage creates an empty page with cols grid columns.
func NewPage(title string, cols int) *Page {
	return &Page{
		Title: title,
		Cols:  max(cols, 1),
		Style: DefaultStyle(),
		Theme: ThemeLight,
	}
}

// WithTheme sets the theme for the page.
func (p *Page) WithTheme(theme Theme) *Page {
	p.Theme = theme

	return p
}

// Add appends cells to the page.
func (p *Page) Add(cells ...Cell) {
	p.Cells = append(p.Cells, cells...)
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	return HTMLRenderer{}.Render(w, p)
}

// Renderable is the interface for chart components.
type Renderable interface {
	Render(w io.Writer) error
}

// HTMLRenderer renders pages as HTML.
type HTMLRenderer struct {
	ExtraCSS string
}

// Render writes the page as HTML to the writer.
func (r HTMLRenderer) Render(w io.Writer, page *Page) error {
	var cells bytes.Buffer

	for _, cell := range page.Cells {
		html, err := r.renderCell(cell)
		if err != nil {
			return fmt.Errorf("render cell (%d, %d): %w", cell.Row, cell.Col, err)
		}

		cells.WriteString(string(html))
	}

	darkClass := ""
	if page.Theme == ThemeDark {
		darkClass = "dark"
	}

	data := pageData{
		Title:      page.Title,
		DarkClass:  darkClass,
		EChartsURL: EChartsURL,
		ThemeCSS:   GetThemeConfig(page.Theme).CSSVariables(),
		GridCSS:    template.CSS(fmt.Sprintf(".figure-grid { grid-template-columns: repeat(%d, minmax(0, 1fr)); }", max(page.Cols, 1))),
		ExtraCSS:   template.CSS(r.ExtraCSS),
		Content:    template.HTML(cells.String()),
	}

	html, err := renderTemplate("page.html", data)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	_, err = io.WriteString(w, string(html))
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}

	return nil
}

func (r HTMLRenderer) renderCell(cell Cell) (template.HTML, error) {
	switch cell.Kind {
	case CellPlaceholder:
		return renderTemplate("placeholder.html", cellData{Row: cell.Row, Col: cell.Col})
	case CellText:
		lines := make([]textLine, len(cell.Texts))
		for i, t := range cell.Texts {
			lines[i] = textLine{Text: t.Text, Style: textCSS(t)}
		}

		return renderTemplate("text.html", textData{Row: cell.Row, Col: cell.Col, Lines: lines})
	default:
		chart, err := renderChart(cell.Chart)
		if err != nil {
			return "", err
		}

		return renderTemplate("cell.html", cellData{Row: cell.Row, Col: cell.Col, Chart: template.HTML(chart)})
	}
}

func textCSS(t Text) template.CSS {
	css := fmt.Sprintf("font-size: %.0fpx;", t.Size)
	if t.Color != "" {
		css += " color: " + t.Color + ";"
	}

	if t.Bold {
		css += " font-weight: bold;"
	}

	return template.CSS(css)
}

// ChartWrapper wraps an echarts chart and renders only the chart content.
type ChartWrapper struct {
	chart Renderable
}

// WrapChart wraps an echarts chart to render only the div and script (no full HTML page).
func WrapChart(chart Renderable) *ChartWrapper {
	return &ChartWrapper{chart: chart}
}

// Render writes the chart element and script without a full HTML page.
func (cw *ChartWrapper) Render(w io.Writer) error {
	content, err := renderChart(cw.chart)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, content)
	if err != nil {
		return fmt.Errorf("writing chart content: %w", err)
	}

	return nil
}

func renderChart(chart Renderable) (string, error) {
	if chart == nil {
		return "", nil
	}

	var buf bytes.Buffer

	err := chart.Render(&buf)
	if err != nil {
		return "", fmt.Errorf("rendering chart: %w", err)
	}

	return extractChartContent(buf.String()), nil
}

func extractChartContent(html string) string {
	// Only full echarts pages are trimmed; fragments pass through.
	if !strings.HasPrefix(strings.TrimSpace(html), "<!DOCTYPE") &&
		!strings.HasPrefix(strings.TrimSpace(html), "<html") {
		return html
	}

	start := strings.Index(html, `<div class="container">`)
	if start == -1 {
		return html
	}

	end := strings.Index(html, `</body>`)
	if end == -1 {
		return html
	}

	content := html[start:end]
	content = strings.ReplaceAll(content, `class="container"`, `class="echart-box"`)
	content = removeStyleTags(content)

	return content
}

func removeStyleTags(content string) string {
	for {
		i := strings.Index(content, `<style>`)
		if i == -1 {
			break
		}

		j := strings.Index(content[i:], `</style>`)
		if j == -1 {
			break
		}

		content = content[:i] + content[i+j+styleTagLen:]
	}

	return content
}
