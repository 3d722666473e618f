// Package batch runs independent per-item tasks concurrently with fail-slow
// aggregation: every task runs to completion, and the batch either succeeds
// with all results in input order or fails with every collected error in
// input order. One failure never cancels or hides its siblings.
package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/malkoG/Serum/internal/errs"
)

// DefaultLimit bounds the worker pool when the caller passes limit <= 0.
const DefaultLimit = 8

type slot[T any] struct {
	val T
	err *errs.PositionedError
}

// Map applies fn to every input concurrently, at most limit tasks at a
// time. Each task owns one isolated result slot tagged with its input
// index, so the aggregated output is deterministic regardless of
// completion order. If any task fails, Map returns a *errs.BatchError
// holding every failure and discards the successful results.
func Map[In, Out any](ctx context.Context, limit int, inputs []In, fn func(context.Context, In) (Out, *errs.PositionedError)) ([]Out, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	slots := make([]slot[Out], len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			// Failures land in the slot, not in the group, so the
			// group never cancels sibling tasks.
			slots[i].val, slots[i].err = fn(ctx, in)
			return nil
		})
	}
	_ = g.Wait()

	var failures []*errs.PositionedError
	for _, s := range slots {
		if s.err != nil {
			failures = append(failures, s.err)
		}
	}
	if len(failures) > 0 {
		return nil, &errs.BatchError{Errors: failures}
	}

	out := make([]Out, len(inputs))
	for i, s := range slots {
		out[i] = s.val
	}
	return out, nil
}
