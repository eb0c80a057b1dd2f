// Package render turns a computed context into presentation output:
// the HTML preview and the downloadable PDF sheet.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"rentinfo/internal/core"
	webui "rentinfo/web"
)

// HTMLRenderer executes the embedded rental sheet template.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded template once.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(webui.Assets, "templates/rent_info.html")
	if err != nil {
		return nil, fmt.Errorf("parse rent_info template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render produces the rental information sheet as an HTML string.
func (r *HTMLRenderer) Render(ctx core.Context) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "rent_info.html", map[string]any(ctx)); err != nil {
		return "", fmt.Errorf("render rent_info template: %w", err)
	}
	return buf.String(), nil
}
