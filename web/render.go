package web

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/artpar/actionkit/domain/page"
)

// Templates renders pages and partials from an fs.FS with the layout:
//
//	layouts/base.html    the page layout (optional; a minimal built-in
//	                     layout is used when absent)
//	partials/**/*.html   partials, addressed by path minus prefix and
//	                     extension (partials/shared/flash.html -> "shared/flash")
//
// Templates implements ports.PartialRenderer and stream.ContentRenderer.
type Templates struct {
	layout   *template.Template
	partials *template.Template
}

const defaultLayout = `<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
{{if .Flash}}<div id="flash" class="flash flash-{{.Flash.Type}}">{{.Flash.Message}}</div>{{else}}<div id="flash"></div>{{end}}
{{range .Sections}}{{.}}{{end}}
</body>
</html>`

const defaultErrorTemplate = `<!DOCTYPE html>
<html>
<head><title>Error {{.Status}}</title></head>
<body>
<h1>{{.Status}}</h1>
<p>{{.Message}}</p>
{{if .Errors}}<ul id="form_errors">{{range $field, $msgs := .Errors}}{{range $msgs}}<li>{{$field}} {{.}}</li>{{end}}{{end}}</ul>{{end}}
</body>
</html>`

// templateFuncs mirrors the helpers templates expect.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		return t.Format("Jan 2, 2006 3:04 PM")
	},
	"truncate": func(s string, n int) string {
		if len(s) <= n {
			return s
		}
		return s[:n] + "..."
	},
	"raw": func(s string) template.HTML {
		return template.HTML(s)
	},
	"dict": func(pairs ...any) map[string]any {
		m := make(map[string]any, len(pairs)/2)
		for i := 0; i+1 < len(pairs); i += 2 {
			if k, ok := pairs[i].(string); ok {
				m[k] = pairs[i+1]
			}
		}
		return m
	},
}

// NewTemplates parses all templates from fsys.
func NewTemplates(fsys fs.FS) (*Templates, error) {
	t := &Templates{}

	layoutContent := defaultLayout
	if data, err := fs.ReadFile(fsys, "layouts/base.html"); err == nil {
		layoutContent = string(data)
	}
	layout, err := template.New("layout").Funcs(templateFuncs).Parse(layoutContent)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	t.layout = layout

	partials := template.New("partials").Funcs(templateFuncs)
	paths, err := fs.Glob(fsys, "partials/*/*.html")
	if err != nil {
		return nil, err
	}
	flat, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return nil, err
	}
	paths = append(paths, flat...)
	sort.Strings(paths)

	for _, path := range paths {
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimPrefix(path, "partials/")
		name = strings.TrimSuffix(name, ".html")
		if _, err := partials.New(name).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("parse partial %s: %w", path, err)
		}
	}
	t.partials = partials

	return t, nil
}

// NewDefaultTemplates returns a renderer with only the built-in layout
// and no partials. Useful for tests and API-only deployments.
func NewDefaultTemplates() *Templates {
	t, _ := NewTemplates(emptyFS{})
	return t
}

// RenderPartial executes the named partial with the given locals.
func (t *Templates) RenderPartial(name string, locals map[string]any) (string, error) {
	tmpl := t.partials.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("partial %q not found", name)
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, locals); err != nil {
		return "", err
	}
	return out.String(), nil
}

// pageData is the value the layout template executes against.
type pageData struct {
	Title    string
	Meta     map[string]any
	Flash    *Flash
	Sections map[string]template.HTML
}

// RenderPage renders all sections of the page config and executes the
// layout around them.
func (t *Templates) RenderPage(ctx context.Context, cfg page.Config, flash *Flash) (string, error) {
	data := pageData{
		Title:    cfg.Title,
		Meta:     cfg.Meta,
		Flash:    flash,
		Sections: make(map[string]template.HTML, len(cfg.Sections)),
	}

	names := cfg.SectionNames()
	sort.Strings(names)
	for _, name := range names {
		markup, err := t.renderSection(ctx, cfg.Sections[name])
		if err != nil {
			return "", fmt.Errorf("section %q: %w", name, err)
		}
		data.Sections[name] = template.HTML(markup)
	}

	var out strings.Builder
	if err := t.layout.Execute(&out, data); err != nil {
		return "", fmt.Errorf("execute layout: %w", err)
	}
	return out.String(), nil
}

func (t *Templates) renderSection(ctx context.Context, s page.Section) (string, error) {
	switch {
	case s.Component != nil:
		return s.Component.Render(ctx)
	case s.Partial != "":
		return t.RenderPartial(s.Partial, s.Locals)
	default:
		return s.Markup, nil
	}
}

// RenderError renders the default error page.
func (t *Templates) RenderError(status int, message string, errs map[string][]string) (string, error) {
	tmpl, err := template.New("error").Parse(defaultErrorTemplate)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	err = tmpl.Execute(&out, struct {
		Status  int
		Message string
		Errors  map[string][]string
	}{status, message, errs})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}
