// Package internal provides the build and serve entry points.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/malkoG/Serum/internal/batch"
	"github.com/malkoG/Serum/internal/errs"
	"github.com/malkoG/Serum/internal/fragment"
	"github.com/malkoG/Serum/internal/loader"
	"github.com/malkoG/Serum/internal/render"
	"github.com/malkoG/Serum/internal/storage"
)

// TemplatesDir is the conventional templates subdirectory under the
// source root.
const TemplatesDir = "templates"

// Build runs the whole pipeline once: load every post, transform each into
// a fragment, and write the output tree. Per-file failures are collected
// fail-slow, so one invocation reports every offending file.
func Build(ctx context.Context, opts ...Option) error {
	app := &application{logLevel: slog.LevelInfo}

	for _, opt := range opts {
		opt(app)
	}

	if app.project == nil {
		return fmt.Errorf("project is required")
	}

	proj := app.project

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: app.logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Project loaded",
		slog.String("site_name", proj.Site.Name),
		slog.String("base_url", proj.Site.BaseURL),
		slog.String("source_dir", proj.SourceDir),
		slog.String("dest_dir", proj.DestDir))

	// Ensure the destination directory exists.
	if err := os.MkdirAll(proj.DestDir, 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	src, err := storage.NewFS(proj.SourceDir)
	if err != nil {
		return fmt.Errorf("init source storage: %w", err)
	}
	dest, err := storage.NewFS(proj.DestDir)
	if err != nil {
		return fmt.Errorf("init dest storage: %w", err)
	}

	engine, err := render.NewHTMLEngine(filepath.Join(proj.SourceDir, TemplatesDir))
	if err != nil {
		return fmt.Errorf("init templates: %w", err)
	}

	posts, err := loader.New(proj, src, logger, app.workers).LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load posts: %w", err)
	}

	frags, err := fragment.New(proj, render.NewGoldmark(), engine, app.workers).TransformAll(ctx, posts)
	if err != nil {
		return fmt.Errorf("render posts: %w", err)
	}

	if err := writeFragments(ctx, dest, proj.DestDir, frags, app.workers); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("Build finished", slog.Int("pages", len(frags)))
	return nil
}

// writeFragments writes every fragment under the destination root, with
// the same fail-slow aggregation as the earlier stages.
func writeFragments(ctx context.Context, dest storage.Provider, destDir string, frags []fragment.Fragment, workers int) error {
	_, err := batch.Map(ctx, workers, frags, func(_ context.Context, f fragment.Fragment) (struct{}, *errs.PositionedError) {
		rel, err := filepath.Rel(destDir, f.OutputPath)
		if err != nil {
			return struct{}{}, errs.FileAccess(f.OutputPath, err)
		}
		if err := dest.Write(rel, []byte(f.HTML)); err != nil {
			return struct{}{}, errs.FileAccess(f.OutputPath, err)
		}
		return struct{}{}, nil
	})
	return err
}

// Serve runs a development HTTP server over an already built site
// directory until the context is cancelled or a shutdown signal arrives.
func Serve(ctx context.Context, dir string, port int) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/*", http.FileServer(http.Dir(dir)))

	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	logger.Info("Serving built site", slog.String("dir", dir), slog.String("address", addr))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
