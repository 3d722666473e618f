// Package errs defines the error vocabulary of the build pipeline: every
// per-file failure carries a kind, the source path, and a line number (or 0
// when no single line is to blame).
package errs

import (
	"fmt"
	"strings"
)

// Kind classifies a per-file build failure.
type Kind string

const (
	// KindFileAccess covers open/read failures. Not-found, permission
	// denied, and generic I/O all collapse to this kind at the pipeline
	// boundary.
	KindFileAccess Kind = "file-access"
	// KindHeaderMalformed covers unknown keys, lines that are not
	// "key: value", and values that do not match their declared kind.
	KindHeaderMalformed Kind = "header-malformed"
	// KindHeaderMissingRequired means a required key was absent after the
	// whole header block was scanned.
	KindHeaderMissingRequired Kind = "header-missing-required"
	// KindRenderFailure means the markdown converter or template engine
	// failed for one record.
	KindRenderFailure Kind = "render-failure"
)

// PositionedError is a failure tied to one source file. Line is 1-based and
// points at the offending header line; it is 0 when the error is not
// attributable to a line (open failure, missing required key, render
// failure).
type PositionedError struct {
	Kind Kind
	Path string
	Line int
	Err  error
}

func (e *PositionedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %v", e.Path, e.Line, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *PositionedError) Unwrap() error { return e.Err }

// FileAccess wraps an open/read failure for path.
func FileAccess(path string, err error) *PositionedError {
	return &PositionedError{Kind: KindFileAccess, Path: path, Err: err}
}

// Malformed reports a bad header line.
func Malformed(path string, line int, format string, args ...any) *PositionedError {
	return &PositionedError{Kind: KindHeaderMalformed, Path: path, Line: line, Err: fmt.Errorf(format, args...)}
}

// MissingRequired reports an absent required header key.
func MissingRequired(path, key string) *PositionedError {
	return &PositionedError{Kind: KindHeaderMissingRequired, Path: path, Err: fmt.Errorf("required key %q is missing", key)}
}

// RenderFailure wraps a converter or template failure for path.
func RenderFailure(path string, err error) *PositionedError {
	return &PositionedError{Kind: KindRenderFailure, Path: path, Err: err}
}

// BatchError aggregates every per-file failure of one batch, in input-file
// order, so a single run reports the complete set of fixes needed.
type BatchError struct {
	Errors []*PositionedError
}

func (e *BatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d file(s) failed:", len(e.Errors))
	for _, pe := range e.Errors {
		b.WriteString("\n  ")
		b.WriteString(pe.Error())
	}
	return b.String()
}
