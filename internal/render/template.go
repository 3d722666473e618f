package render

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"path/filepath"
)

// Template renders itself against a set of bindings.
type Template interface {
	Render(bindings map[string]any) (string, error)
}

// Engine resolves template names to templates.
type Engine interface {
	Get(name string) (Template, error)
}

// HTMLEngine implements Engine on top of html/template, loading every
// *.html file from a single templates directory at construction time.
type HTMLEngine struct {
	root *htmltemplate.Template
}

// NewHTMLEngine parses all *.html templates under dir.
func NewHTMLEngine(dir string) (*HTMLEngine, error) {
	root, err := htmltemplate.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("render: load templates from %s: %w", dir, err)
	}
	return &HTMLEngine{root: root}, nil
}

// Get returns the template named name (file name without extension).
func (e *HTMLEngine) Get(name string) (Template, error) {
	t := e.root.Lookup(name + ".html")
	if t == nil {
		return nil, fmt.Errorf("render: template %q is not defined", name)
	}
	return htmlTemplate{t: t}, nil
}

type htmlTemplate struct {
	t *htmltemplate.Template
}

func (h htmlTemplate) Render(bindings map[string]any) (string, error) {
	data := make(map[string]any, len(bindings))
	for k, v := range bindings {
		data[k] = v
	}
	// The page contents arrive as already rendered HTML; mark them so
	// html/template does not escape them a second time. The bindings
	// themselves stay engine-agnostic plain values.
	if s, ok := data["contents"].(string); ok {
		data["contents"] = htmltemplate.HTML(s)
	}

	var buf bytes.Buffer
	if err := h.t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render: execute %s: %w", h.t.Name(), err)
	}
	return buf.String(), nil
}
