// Package fragment turns content records into rendered, link-rewritten
// HTML fragments ready for output composition.
package fragment

import (
	"context"
	"time"

	"github.com/malkoG/Serum/internal/batch"
	"github.com/malkoG/Serum/internal/errs"
	"github.com/malkoG/Serum/internal/links"
	"github.com/malkoG/Serum/internal/post"
	"github.com/malkoG/Serum/internal/project"
	"github.com/malkoG/Serum/internal/render"
)

// Metadata is the binding surface a template sees for one page. It is a
// deliberate subset of the record: the raw body and the output path are
// not exposed.
type Metadata struct {
	Title   string
	Date    string
	RawDate time.Time
	Tags    []post.Tag
	URL     string
	Type    string
}

// Fragment is a record after markup conversion, template rendering, and
// link rewriting.
type Fragment struct {
	SourcePath string
	OutputPath string
	Metadata   Metadata
	HTML       string
}

// Transformer renders records through the converter and template engine
// collaborators.
type Transformer struct {
	proj    *project.Project
	conv    render.Converter
	engine  render.Engine
	workers int
}

// New creates a Transformer. workers <= 0 selects the default pool size
// for TransformAll.
func New(proj *project.Project, conv render.Converter, engine render.Engine, workers int) *Transformer {
	return &Transformer{proj: proj, conv: conv, engine: engine, workers: workers}
}

// Transform renders one record into a Fragment. Converter and template
// failures surface as render-failure errors for the record's source file.
func (t *Transformer) Transform(p post.Post) (Fragment, error) {
	frag, perr := t.transform(p)
	if perr != nil {
		return Fragment{}, perr
	}
	return frag, nil
}

// TransformAll renders a whole batch concurrently with the same fail-slow
// aggregation as the loader: all records are attempted, and either every
// fragment is returned in input order or a *errs.BatchError carries every
// render failure.
func (t *Transformer) TransformAll(ctx context.Context, posts []post.Post) ([]Fragment, error) {
	return batch.Map(ctx, t.workers, posts, func(_ context.Context, p post.Post) (Fragment, *errs.PositionedError) {
		return t.transform(p)
	})
}

func (t *Transformer) transform(p post.Post) (Fragment, *errs.PositionedError) {
	meta := Metadata{
		Title:   p.Title,
		Date:    p.Date,
		RawDate: p.RawDate,
		Tags:    p.Tags,
		URL:     p.URL,
		Type:    project.TypePost,
	}

	body, err := t.conv.ToHTML([]byte(p.Body))
	if err != nil {
		return Fragment{}, errs.RenderFailure(p.SourcePath, err)
	}

	tmpl, err := t.engine.Get(t.proj.Template(project.TypePost))
	if err != nil {
		return Fragment{}, errs.RenderFailure(p.SourcePath, err)
	}

	rendered, err := tmpl.Render(map[string]any{
		"page":     meta,
		"contents": string(body),
	})
	if err != nil {
		return Fragment{}, errs.RenderFailure(p.SourcePath, err)
	}

	rewritten, err := links.Rewrite(rendered, t.proj.Site.BaseURL)
	if err != nil {
		return Fragment{}, errs.RenderFailure(p.SourcePath, err)
	}

	return Fragment{
		SourcePath: p.SourcePath,
		OutputPath: p.OutputPath,
		Metadata:   meta,
		HTML:       rewritten,
	}, nil
}
