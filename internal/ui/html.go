package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.tmpl
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html.tmpl")) //nolint: gochecknoglobals

// WriteHTML renders a page with the navigation of every screen.
func WriteHTML(w io.Writer, page Page) error {
	if err := pageTemplate.Execute(w, struct {
		Page Page
		Nav  []Screen
	}{Page: page, Nav: Screens()}); err != nil {
		return fmt.Errorf("could not render %s screen: %w", page.Slug, err)
	}

	return nil
}
