package main

// Notes:
// - Test infrastructure shared by the command tests: a buffered
//   Environment, a temporary vault builder and a scripted NoteConverter.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	md2slides "github.com/alnah/go-md2slides"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and vault
// ---------------------------------------------------------------------------

// testEnv returns an Environment writing to buffers, with no environment
// variables and prompts answered by defaults.
func testEnv(t *testing.T) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:        func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) },
		Stdout:     &stdout,
		Stderr:     &stderr,
		Prompter:   noInputPrompter{},
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Getenv:     func(string) string { return "" },
		Environ:    func() []string { return nil },
	}
	return env, &stdout, &stderr
}

// writeVault creates files (vault-relative path -> content) under a
// temporary directory and returns its path.
func writeVault(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// Mock Implementations - NoteConverter
// ---------------------------------------------------------------------------

// mockConverter answers Convert from a per-note error table and records
// the calls.
type mockConverter struct {
	mu    sync.Mutex
	errs  map[string]error
	delay time.Duration
	calls []string
}

func (m *mockConverter) Convert(ctx context.Context, note string) (*md2slides.Result, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	m.calls = append(m.calls, note)
	err := m.errs[note]
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &md2slides.Result{
		Note:    note,
		Path:    "/vault/Slides/" + note,
		Notices: []string{"one"},
	}, nil
}

func (m *mockConverter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
