package main

// Notes:
// - discoverNotes: we test files, folders, name passthrough, exclusions,
//   skipped folders, deck files and de-duplication on temporary trees.
// - validateWorkers: we test bounds and the ErrUsage wrapping.
// - noteArg: we test existing files and vault names.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	md2slides "github.com/alnah/go-md2slides"
)

// ---------------------------------------------------------------------------
// TestDiscoverNotes - Argument expansion
// ---------------------------------------------------------------------------

func TestDiscoverNotes(t *testing.T) {
	t.Parallel()

	root := writeVault(t, map[string]string{
		"Talks/Intro.md":               "# Intro\n",
		"Talks/Deep/Part.markdown":     "# Part\n",
		"Talks/Intro.slides.md":        "---\nmarp: true\n---\n",
		"Talks/Board.excalidraw.md":    "drawing",
		"Talks/notes.txt":              "text",
		"Talks/.obsidian/app.md":       "config",
		"Slides/Intro/Intro.md":        "deck",
		"Designs/A/tpl-cover.md":       "# {{title}}",
		"Other/Outside.md":             "# Outside\n",
		"Other/.trash/Deleted.md":      "# Deleted\n",
		"Other/.git/COMMIT_EDITMSG.md": "x",
	})
	exclude := []string{filepath.Join(root, "Slides"), filepath.Join(root, "Designs")}
	abs := func(rel string) string { return filepath.Join(root, filepath.FromSlash(rel)) }

	t.Run("folder walk skips decks, drawings and excluded folders", func(t *testing.T) {
		t.Parallel()

		got, err := discoverNotes([]string{root}, exclude)
		if err != nil {
			t.Fatalf("discoverNotes() error = %v", err)
		}
		slices.Sort(got)
		want := []string{abs("Other/Outside.md"), abs("Talks/Deep/Part.markdown"), abs("Talks/Intro.md")}
		if !slices.Equal(got, want) {
			t.Errorf("discoverNotes() = %v, want %v", got, want)
		}
	})

	t.Run("file argument becomes absolute", func(t *testing.T) {
		t.Parallel()

		got, err := discoverNotes([]string{abs("Talks/Intro.md")}, exclude)
		if err != nil {
			t.Fatalf("discoverNotes() error = %v", err)
		}
		if len(got) != 1 || got[0] != abs("Talks/Intro.md") {
			t.Errorf("discoverNotes() = %v", got)
		}
	})

	t.Run("unknown argument kept as note name", func(t *testing.T) {
		t.Parallel()

		got, err := discoverNotes([]string{"Intro", "Intro"}, exclude)
		if err != nil {
			t.Fatalf("discoverNotes() error = %v", err)
		}
		if !slices.Equal(got, []string{"Intro"}) {
			t.Errorf("discoverNotes() = %v, want [Intro]", got)
		}
	})

	t.Run("file and its folder are not repeated", func(t *testing.T) {
		t.Parallel()

		got, err := discoverNotes([]string{abs("Talks/Intro.md"), abs("Talks")}, exclude)
		if err != nil {
			t.Fatalf("discoverNotes() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("discoverNotes() = %v, want Intro.md and Part.markdown once", got)
		}
	})

	t.Run("non markdown file", func(t *testing.T) {
		t.Parallel()

		_, err := discoverNotes([]string{abs("Talks/notes.txt")}, exclude)
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker count bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"auto", 0, false},
		{"one", 1, false},
		{"max", md2slides.MaxWorkers, false},
		{"negative", -1, true},
		{"above max", md2slides.MaxWorkers + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateWorkers(tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
			}
			if err != nil && (!errors.Is(err, ErrUsage) || !errors.Is(err, ErrInvalidWorkerCount)) {
				t.Errorf("error %v should wrap ErrUsage and ErrInvalidWorkerCount", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNoteArg - File paths versus vault names
// ---------------------------------------------------------------------------

func TestNoteArg(t *testing.T) {
	t.Parallel()

	root := writeVault(t, map[string]string{"Intro.md": "# Intro\n"})
	path := filepath.Join(root, "Intro.md")

	if got := noteArg(path); got != path {
		t.Errorf("noteArg(%q) = %q", path, got)
	}
	if got := noteArg("Talks/Intro"); got != "Talks/Intro" {
		t.Errorf("noteArg(name) = %q, want unchanged", got)
	}
	if got := noteArg(root); got != root {
		t.Errorf("noteArg(dir) = %q, want unchanged", got)
	}
}
