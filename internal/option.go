package internal

import (
	"log/slog"

	"github.com/malkoG/Serum/internal/project"
)

// Option is a functional option for configuring a build.
type Option func(*application)

type application struct {
	project  *project.Project
	logLevel slog.Level
	workers  int
}

// WithProject sets the project configuration.
func WithProject(proj *project.Project) Option {
	return func(a *application) {
		a.project = proj
	}
}

// WithLogLevel sets the minimum log level.
func WithLogLevel(level slog.Level) Option {
	return func(a *application) {
		a.logLevel = level
	}
}

// WithWorkers bounds the per-stage worker pools. Zero selects the default.
func WithWorkers(n int) Option {
	return func(a *application) {
		a.workers = n
	}
}
