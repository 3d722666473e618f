// Package loader discovers post source files and parses the whole set
// concurrently with fail-slow aggregation.
package loader

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/malkoG/Serum/internal/batch"
	"github.com/malkoG/Serum/internal/errs"
	"github.com/malkoG/Serum/internal/header"
	"github.com/malkoG/Serum/internal/post"
	"github.com/malkoG/Serum/internal/project"
	"github.com/malkoG/Serum/internal/storage"
)

// PostsDir is the conventional posts subdirectory under the source root.
const PostsDir = "posts"

// SourcePattern matches post source files inside PostsDir.
const SourcePattern = "*.md"

// Loader runs the parse+build stage over a source tree.
type Loader struct {
	proj    *project.Project
	store   storage.Provider
	logger  *slog.Logger
	workers int
}

// New creates a Loader reading through store, which must be rooted at the
// project source directory. workers <= 0 selects the default pool size.
func New(proj *project.Project, store storage.Provider, logger *slog.Logger, workers int) *Loader {
	return &Loader{proj: proj, store: store, logger: logger, workers: workers}
}

// LoadAll discovers every post source and parses them concurrently. The
// result is either every record in sorted-path order, or a
// *errs.BatchError carrying one positioned error per failed file — records
// from files that did succeed are discarded in that case. A missing posts
// directory is not an error: it yields zero records and one warning.
func (l *Loader) LoadAll(ctx context.Context) ([]post.Post, error) {
	ok, err := l.store.DirExists(PostsDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		l.logger.Warn("posts directory not found, skipping posts",
			slog.String("source_dir", l.proj.SourceDir))
		return []post.Post{}, nil
	}

	rels, err := l.store.Glob(PostsDir, SourcePattern)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loading posts", slog.Int("count", len(rels)))

	return batch.Map(ctx, l.workers, rels, func(_ context.Context, rel string) (post.Post, *errs.PositionedError) {
		return l.loadOne(rel)
	})
}

// loadOne runs open → parse header → build record for a single file. rel is
// relative to the source root.
func (l *Loader) loadOne(rel string) (post.Post, *errs.PositionedError) {
	srcPath := filepath.Join(l.proj.SourceDir, rel)

	data, err := l.store.Read(rel)
	if err != nil {
		return post.Post{}, errs.FileAccess(srcPath, err)
	}

	h, body, err := header.Parse(srcPath, string(data), post.Schema, post.Required)
	if err != nil {
		var pe *errs.PositionedError
		if errors.As(err, &pe) {
			return post.Post{}, pe
		}
		return post.Post{}, errs.Malformed(srcPath, 0, "%v", err)
	}

	return post.Build(srcPath, h, body, l.proj), nil
}
