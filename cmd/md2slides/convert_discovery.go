package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/fileutil"
)

// Sentinel errors for note discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// deckSuffix marks a deck written beside a note of the same name.
const deckSuffix = ".slides.md"

// skippedDirs are never searched for notes.
var skippedDirs = map[string]bool{".obsidian": true, ".trash": true, ".git": true}

// discoverNotes expands the command arguments into notes to convert.
// Existing files are taken as is, folders are walked for Markdown notes
// outside the excluded folders (deck and design folders), and any other
// argument is kept as a note name for the vault to resolve.
func discoverNotes(args []string, exclude []string) ([]string, error) {
	var notes []string
	seen := make(map[string]bool)
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			notes = append(notes, n)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err != nil && errors.Is(err, fs.ErrNotExist):
			add(arg)
		case err != nil:
			return nil, err
		case !info.IsDir():
			if err := validateMarkdownExtension(arg); err != nil {
				return nil, err
			}
			abs, err := filepath.Abs(arg)
			if err != nil {
				return nil, err
			}
			add(abs)
		default:
			found, err := walkNotes(arg, exclude)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
		}
	}
	return notes, nil
}

// walkNotes lists the Markdown files under dir as absolute paths.
func walkNotes(dir string, exclude []string) ([]string, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	var notes []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			if path != root && (skippedDirs[d.Name()] || isExcluded(path, exclude)) {
				return filepath.SkipDir
			}
			return nil
		}
		if fileutil.IsMarkdown(path) && !fileutil.IsExcalidraw(path) && !isDeckFile(path) {
			notes = append(notes, path)
		}
		return nil
	})
	return notes, err
}

// isDeckFile reports decks written next to their note.
func isDeckFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), deckSuffix)
}

func isExcluded(path string, exclude []string) bool {
	for _, e := range exclude {
		if e != "" && strings.EqualFold(filepath.Clean(path), filepath.Clean(e)) {
			return true
		}
	}
	return false
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %w: %d (must be >= 0, 0 means auto)", ErrUsage, ErrInvalidWorkerCount, n)
	}
	if n > md2slides.MaxWorkers {
		return fmt.Errorf("%w: %w: %d (maximum is %d)", ErrUsage, ErrInvalidWorkerCount, n, md2slides.MaxWorkers)
	}
	return nil
}

// noteArg returns the absolute path of an existing file argument and the
// argument unchanged otherwise, leaving note names to the vault.
func noteArg(arg string) string {
	if !fileutil.FileExists(arg) {
		return arg
	}
	if abs, err := filepath.Abs(arg); err == nil {
		return abs
	}
	return arg
}
