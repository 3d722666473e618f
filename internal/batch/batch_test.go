package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/malkoG/Serum/internal/errs"
)

func TestMap_AllSucceedInInputOrder(t *testing.T) {
	inputs := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	out, err := Map(context.Background(), 4, inputs, func(_ context.Context, n int) (string, *errs.PositionedError) {
		// Delay in reverse order so completion order differs from
		// input order.
		time.Sleep(time.Duration(len(inputs)-n) * time.Millisecond)
		return fmt.Sprintf("v%d", n), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range out {
		if want := fmt.Sprintf("v%d", i); v != want {
			t.Errorf("out[%d] = %q, want %q", i, v, want)
		}
	}
}

func TestMap_Deterministic(t *testing.T) {
	inputs := []int{3, 1, 2}
	run := func() []int {
		out, err := Map(context.Background(), 2, inputs, func(_ context.Context, n int) (int, *errs.PositionedError) {
			return n * 10, nil
		})
		if err != nil {
			t.Fatal(err)
		}
		return out
	}
	first := run()
	for n := 0; n < 20; n++ {
		again := run()
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("non-deterministic output: %v vs %v", first, again)
			}
		}
	}
}

func TestMap_FailSlowCollectsEveryError(t *testing.T) {
	inputs := []string{"a.md", "b.md", "c.md"}
	ran := make([]bool, len(inputs))
	_, err := Map(context.Background(), 1, inputs, func(_ context.Context, path string) (string, *errs.PositionedError) {
		for i, in := range inputs {
			if in == path {
				ran[i] = true
			}
		}
		if path != "c.md" {
			return "", errs.Malformed(path, 2, "bad header")
		}
		return "ok", nil
	})

	var be *errs.BatchError
	if !errors.As(err, &be) {
		t.Fatalf("error is %T, want *errs.BatchError", err)
	}
	// Both failures are reported (not just the first), in input order.
	if len(be.Errors) != 2 {
		t.Fatalf("len(Errors) = %d, want 2", len(be.Errors))
	}
	if be.Errors[0].Path != "a.md" || be.Errors[1].Path != "b.md" {
		t.Errorf("errors = %v", be.Errors)
	}
	// The succeeding task still ran; its result is simply discarded.
	if !ran[2] {
		t.Error("task c.md was not run")
	}
}

func TestMap_FailureDoesNotCancelSiblings(t *testing.T) {
	inputs := []int{0, 1, 2, 3}
	done := make([]bool, len(inputs))
	_, err := Map(context.Background(), len(inputs), inputs, func(ctx context.Context, n int) (int, *errs.PositionedError) {
		if n == 0 {
			return 0, errs.Malformed("first", 1, "fails immediately")
		}
		// Give the failing task time to finish first, then check the
		// group did not cancel us.
		time.Sleep(20 * time.Millisecond)
		select {
		case <-ctx.Done():
			t.Error("sibling task was cancelled")
		default:
		}
		done[n] = true
		return n, nil
	})
	if err == nil {
		t.Fatal("expected batch error")
	}
	for _, n := range inputs[1:] {
		if !done[n] {
			t.Errorf("task %d did not run to completion", n)
		}
	}
}

func TestMap_Empty(t *testing.T) {
	out, err := Map(context.Background(), 0, nil, func(_ context.Context, n int) (int, *errs.PositionedError) {
		return n, nil
	})
	if err != nil || len(out) != 0 {
		t.Errorf("got %v, %v", out, err)
	}
}
