package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed templates
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Page template names, relative to the templates directory.
const (
	IndexTemplate         = "index.html"
	LettingsIndexTemplate = "lettings/index.html"
	LettingTemplate       = "lettings/letting.html"
	ProfilesIndexTemplate = "profiles/index.html"
	ProfileTemplate       = "profiles/profile.html"
	NotFoundTemplate      = "404.html"
	ServerErrorTemplate   = "500.html"
)

const baseTemplate = "base.html"

// Templates holds one parsed template set per page, each combined with the base layout.
type Templates struct {
	pages map[string]*template.Template
}

// LoadTemplates parses every embedded page template.
func LoadTemplates() (*Templates, error) {
	t := &Templates{pages: map[string]*template.Template{}}

	err := fs.WalkDir(templateFiles, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		name := strings.TrimPrefix(path, "templates/")
		if name == baseTemplate {
			return nil
		}

		page, err := template.New(name).ParseFS(templateFiles, "templates/"+baseTemplate, path)
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		t.pages[name] = page
		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// Names returns the parsed page names.
func (t *Templates) Names() []string {
	names := make([]string, 0, len(t.pages))
	for name := range t.pages {
		names = append(names, name)
	}
	return names
}

// Render executes the named page into w with the given status.
// Output is buffered so a failing template never produces a partial page.
func (t *Templates) Render(w http.ResponseWriter, status int, name string, data any) error {
	page, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, baseTemplate, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
