package main

// Notes:
// - convertBatch: we test ordering, failure isolation, worker bounds and
//   cancellation with a mock NoteConverter.
// - printResultsWithWriter: we test normal, quiet and verbose output.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestConvertBatch - Worker pool behavior
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		if got := convertBatch(context.Background(), &mockConverter{}, nil, 4); got != nil {
			t.Errorf("convertBatch(nil) = %v, want nil", got)
		}
	})

	t.Run("keeps order and isolates failures", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		notes := make([]string, 12)
		for i := range notes {
			notes[i] = fmt.Sprintf("note%02d.md", i)
		}
		conv := &mockConverter{errs: map[string]error{"note03.md": boom, "note07.md": boom}, delay: time.Millisecond}

		results := convertBatch(context.Background(), conv, notes, 4)

		if len(results) != len(notes) {
			t.Fatalf("got %d results, want %d", len(results), len(notes))
		}
		for i, r := range results {
			if r.Note != notes[i] {
				t.Errorf("results[%d].Note = %q, want %q", i, r.Note, notes[i])
			}
			failed := notes[i] == "note03.md" || notes[i] == "note07.md"
			if failed != errors.Is(r.Err, boom) {
				t.Errorf("results[%d].Err = %v", i, r.Err)
			}
			if !failed && (r.OutputPath == "" || r.Notices != 1) {
				t.Errorf("results[%d] = %+v", i, r)
			}
		}
		if conv.callCount() != len(notes) {
			t.Errorf("calls = %d, want %d", conv.callCount(), len(notes))
		}
		if s := countResults(results); s.Succeeded != 10 || s.Failed != 2 {
			t.Errorf("countResults() = %+v", s)
		}
	})

	t.Run("zero workers still runs", func(t *testing.T) {
		t.Parallel()

		results := convertBatch(context.Background(), &mockConverter{}, []string{"a.md", "b.md"}, 0)
		if countResults(results).Succeeded != 2 {
			t.Errorf("results = %+v", results)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		conv := &mockConverter{}

		results := convertBatch(ctx, conv, []string{"a.md", "b.md", "c.md"}, 2)

		for _, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("%s: Err = %v, want context.Canceled", r.Note, r.Err)
			}
		}
		if conv.callCount() != 0 {
			t.Errorf("calls = %d, want 0", conv.callCount())
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResultsWithWriter - Output format
// ---------------------------------------------------------------------------

func TestPrintResultsWithWriter(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{Note: "a.md", OutputPath: "/v/Slides/a/a.md", Notices: 2, Duration: 12 * time.Millisecond},
		{Note: "b.md", Err: errors.New("missing title")},
	}

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout []string
		wantEmpty  bool
	}{
		{name: "normal", wantStdout: []string{"Created /v/Slides/a/a.md", "1 succeeded, 1 failed"}},
		{name: "verbose", verbose: true, wantStdout: []string{"a.md -> /v/Slides/a/a.md (12ms, 2 notices)"}},
		{name: "quiet", quiet: true, wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(t)
			failed := printResultsWithWriter(results, tt.quiet, tt.verbose, env)

			if failed != 1 {
				t.Errorf("failed = %d, want 1", failed)
			}
			if !strings.Contains(stderr.String(), "FAILED b.md: missing title") {
				t.Errorf("stderr = %q", stderr.String())
			}
			if tt.wantEmpty && stdout.Len() > 0 {
				t.Errorf("stdout = %q, want empty", stdout.String())
			}
			for _, w := range tt.wantStdout {
				if !strings.Contains(stdout.String(), w) {
					t.Errorf("stdout %q missing %q", stdout.String(), w)
				}
			}
		})
	}
}
