package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/wordlist/internal/model"
)

func targetsIn(t *testing.T, contents ...string) []Target {
	t.Helper()

	dir := t.TempDir()
	targets := make([]Target, 0, len(contents))
	for i, content := range contents {
		name := fmt.Sprintf("list%02d.txt", i)
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		targets = append(targets, Target{Source: path, Path: name})
	}
	return targets
}

// TestBatchProcessorNew tests the BatchProcessor constructor.
func TestBatchProcessorNew(t *testing.T) {
	t.Parallel()

	t.Run("creates processor with defaults", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() })

		if bp == nil {
			t.Fatal("expected non-nil processor")
		}
		if bp.concurrency != 1 {
			t.Errorf("expected default concurrency 1, got %d", bp.concurrency)
		}
		if bp.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(5))

		if bp.concurrency != 5 {
			t.Errorf("expected concurrency 5, got %d", bp.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func() *Pipeline { return New() }, WithConcurrency(0))

		if bp.concurrency != 1 {
			t.Errorf("expected concurrency 1, got %d", bp.concurrency)
		}
	})
}

// TestBatchProcessorProcessBatch tests batch validation.
func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	factory := func() *Pipeline { return NewValidation(0, nil) }

	t.Run("returns results in target order", func(t *testing.T) {
		t.Parallel()

		for _, jobs := range []int{1, 4} {
			targets := targetsIn(t, "a\n", "b\nb\n", "c\nc\nc\n", "", "d\n")
			bp := NewBatchProcessor(factory, WithConcurrency(jobs))

			var order []int
			results, err := bp.ProcessBatch(context.Background(), targets, func(_ *model.WordlistFile, index int) {
				order = append(order, index)
			})
			if err != nil {
				t.Fatalf("jobs=%d: unexpected error: %v", jobs, err)
			}
			if len(results) != len(targets) {
				t.Fatalf("jobs=%d: expected %d results, got %d", jobs, len(targets), len(results))
			}
			for i, r := range results {
				if r.Path != targets[i].Path {
					t.Errorf("jobs=%d: result %d is %q, expected %q", jobs, i, r.Path, targets[i].Path)
				}
			}
			for i, idx := range order {
				if i != idx {
					t.Errorf("jobs=%d: callbacks out of order: %v", jobs, order)
					break
				}
			}
			if results[2].Duplicates() != 2 {
				t.Errorf("jobs=%d: expected 2 duplicates in third file, got %d", jobs, results[2].Duplicates())
			}
		}
	})

	t.Run("isolates per-file failures", func(t *testing.T) {
		t.Parallel()

		targets := targetsIn(t, "a\n", "b\n")
		missing := Target{Source: filepath.Join(t.TempDir(), "gone.txt"), Path: "gone.txt"}
		targets = append([]Target{missing}, targets...)

		results, err := NewBatchProcessor(factory).ProcessBatch(context.Background(), targets, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results[0].Valid {
			t.Error("expected missing file to be invalid")
		}
		if !results[1].Valid || !results[2].Valid {
			t.Error("expected other files to stay valid")
		}
	})

	t.Run("panic in one file does not affect the others", func(t *testing.T) {
		t.Parallel()

		targets := targetsIn(t, "a\n", "boom\n", "c\n")
		panicky := func() *Pipeline {
			p := NewValidation(0, nil)
			p.AddStep(&mockStep{
				name: "panicky",
				doFunc: func(_ context.Context, a *Analysis) error {
					if a.File.Path == targets[1].Path {
						panic("unexpected")
					}
					return nil
				},
			})
			return p
		}

		results, err := NewBatchProcessor(panicky, WithConcurrency(3)).ProcessBatch(context.Background(), targets, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !results[0].Valid || results[1].Valid || !results[2].Valid {
			t.Errorf("unexpected validity %v %v %v", results[0].Valid, results[1].Valid, results[2].Valid)
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		slow := func() *Pipeline {
			p := New()
			p.AddStep(&mockStep{
				name: "slow",
				doFunc: func(_ context.Context, _ *Analysis) error {
					n := current.Add(1)
					for {
						old := peak.Load()
						if n <= old || peak.CompareAndSwap(old, n) {
							break
						}
					}
					time.Sleep(10 * time.Millisecond)
					current.Add(-1)
					return nil
				},
			})
			return p
		}

		targets := make([]Target, 8)
		for i := range targets {
			targets[i] = Target{Source: fmt.Sprintf("f%d", i), Path: fmt.Sprintf("f%d", i)}
		}

		if _, err := NewBatchProcessor(slow, WithConcurrency(2)).ProcessBatch(context.Background(), targets, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() > 2 {
			t.Errorf("expected at most 2 concurrent files, saw %d", peak.Load())
		}
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var mu sync.Mutex
		called := 0
		results, err := NewBatchProcessor(factory).ProcessBatch(ctx, targetsIn(t, "a\n", "b\n"), func(*model.WordlistFile, int) {
			mu.Lock()
			called++
			mu.Unlock()
		})

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if called != 0 {
			t.Errorf("expected no callbacks, got %d", called)
		}
		for _, r := range results {
			if r != nil {
				t.Errorf("expected no results, got %+v", r)
			}
		}
	})
}
