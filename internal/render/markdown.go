// Package render holds the converter and template collaborators the
// pipeline invokes as black boxes.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter turns raw markup into HTML.
type Converter interface {
	ToHTML(src []byte) ([]byte, error)
}

// Goldmark implements Converter with the goldmark engine. The engine is
// stateless, so one instance can be shared across concurrent tasks without
// locking.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark constructs a converter with GFM extensions, autolinks, and
// raw HTML passthrough enabled.
func NewGoldmark() *Goldmark {
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// ToHTML converts markdown to HTML.
func (g *Goldmark) ToHTML(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("render: markdown convert: %w", err)
	}
	return buf.Bytes(), nil
}
