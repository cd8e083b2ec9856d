// Package renderer renders allocation reports as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/allocation"
)

//go:embed templates/*.md
var templates embed.FS

// funcs are the formatting helpers available to every template.
var funcs = template.FuncMap{
	// amount formats an investment amount.
	"amount": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	// ratio formats a fraction as a percentage.
	"ratio": func(f float64) string { return allocation.FromFraction(f).String() },
}

// RenderAllocation renders the allocation table and its totals.
func RenderAllocation(t allocation.Totals) string {
	partials := map[string]string{
		"allocation_title":  "allocation_title.md",
		"allocation_table":  "allocation_table.md",
		"allocation_totals": "allocation_totals.md",
	}
	return renderTemplate("allocation", "allocation.md", partials, t)
}

// Correlations is the correlation table, as displayed: the lower triangle
// holds the coefficients, the upper triangle is left blank.
type Correlations struct {
	Names []string
	Rows  []CorrelationRow
}

// CorrelationRow is a row of the correlation table.
type CorrelationRow struct {
	Name  string
	Cells []string
}

// NewCorrelations builds the correlation table from the store.
func NewCorrelations(s *allocation.Store) *Correlations {
	names := s.Names()
	m := s.CorrelationMatrix()
	c := &Correlations{Names: names, Rows: make([]CorrelationRow, len(names))}
	for i, name := range names {
		row := CorrelationRow{Name: name, Cells: make([]string, len(names))}
		for j := range names {
			switch {
			case i == j:
				row.Cells[j] = "1"
			case i > j:
				row.Cells[j] = fmt.Sprintf("%.2f", m[i][j])
			default:
				row.Cells[j] = "-"
			}
		}
		c.Rows[i] = row
	}
	return c
}

// RenderCorrelations renders the correlation table.
func RenderCorrelations(c *Correlations) string {
	return renderTemplate("correlation", "correlation.md", nil, c)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
