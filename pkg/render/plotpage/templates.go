package plotpage

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

// EChartsURL is the script every page loads the chart library from.
const EChartsURL = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

var (
	templates     *template.Template
	templatesOnce sync.Once
	errTemplates  error
)

// getTemplates returns the parsed templates, loading them once.
func getTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		var parseErr error

		templates, parseErr = template.New("").ParseFS(templateFS, "templates/*.html")
		if parseErr != nil {
			errTemplates = fmt.Errorf("parsing templates: %w", parseErr)
		}
	})

	return templates, errTemplates
}

// renderTemplate renders a named template with the given data.
func renderTemplate(name string, data any) (template.HTML, error) {
	tmpl, err := getTemplates()
	if err != nil {
		return "", fmt.Errorf("loading templates: %w", err)
	}

	var buf bytes.Buffer

	err = tmpl.ExecuteTemplate(&buf, name, data)
	if err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil
}

// pageData holds data for the page template.
type pageData struct {
	Title      string
	DarkClass  string
	EChartsURL string
	ThemeCSS   template.CSS
	GridCSS    template.CSS
	ExtraCSS   template.CSS
	Content    template.HTML
}

// cellData holds data for the chart cell and placeholder templates.
type cellData struct {
	Row   int
	Col   int
	Chart template.HTML
}

// textData holds data for the text panel template.
type textData struct {
	Row   int
	Col   int
	Lines []textLine
}

// textLine is one paragraph of a text panel.
type textLine struct {
	Text  string
	Style template.CSS
}
