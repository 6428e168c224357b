// Package views renders the server-side HTML pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

// Page names accepted by Render.
const (
	PageIndex    = "index"
	PageProfile  = "profile"
	PageNotFound = "notfound"
	PageError    = "error"
)

//go:embed templates/*.html
var files embed.FS

// Renderer holds one parsed template set per page, each composed with base.html.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page template.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageIndex, PageProfile, PageNotFound, PageError} {
		tmpl, err := template.ParseFS(files, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Render writes page to w using data.
func (r *Renderer) Render(w io.Writer, page string, data interface{}) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
