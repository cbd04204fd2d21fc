// Package vault indexes an Obsidian-style vault directory: it lists files,
// resolves wiki-link names to vault paths, reads notes and exposes the
// heading structure of a note.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// Sentinel errors for vault operations.
var (
	ErrNotFound      = errors.New("not found in vault")
	ErrInvalidVault  = errors.New("invalid vault directory")
	ErrOutsideVault  = errors.New("path escapes vault")
	ErrEmptyName     = errors.New("empty file name")
	ErrHeadingAbsent = errors.New("heading not found")
)

// skippedDirs are never indexed.
var skippedDirs = map[string]bool{
	".obsidian": true,
	".trash":    true,
	".git":      true,
}

// File is a vault entry.
type File struct {
	Rel  string // slash separated, relative to the vault root
	Name string // base name with extension
	Stem string // base name without extension
}

// Vault is an immutable snapshot of a vault directory.
type Vault struct {
	root  string
	files []File
	byRel map[string]int
}

// Open walks root and indexes every file outside the skipped folders.
func Open(ctx context.Context, root string) (*Vault, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVault, err)
	}
	if !fileutil.DirExists(abs) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVault, abs)
	}

	v := &Vault{root: abs, byRel: make(map[string]int)}
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("accessing %s: %w", p, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != abs && (skippedDirs[d.Name()] || strings.HasPrefix(d.Name(), ".md2slides")) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(abs, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}
		v.add(filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning vault %s: %w", abs, err)
	}
	return v, nil
}

func (v *Vault) add(rel string) {
	name := path.Base(rel)
	stem := strings.TrimSuffix(name, path.Ext(name))
	v.byRel[strings.ToLower(rel)] = len(v.files)
	v.files = append(v.files, File{Rel: rel, Name: name, Stem: stem})
}

// Root returns the absolute vault directory.
func (v *Vault) Root() string { return v.root }

// Files returns the indexed files in walk order.
func (v *Vault) Files() []File { return v.files }

// Abs converts a vault-relative slash path to an absolute path, refusing
// paths that climb out of the vault.
func (v *Vault) Abs(rel string) (string, error) {
	clean := strings.TrimPrefix(path.Clean(filepath.ToSlash(rel)), "/")
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideVault, rel)
	}
	return filepath.Join(v.root, filepath.FromSlash(clean)), nil
}

// Exists reports whether rel names an indexed file (case-insensitive).
func (v *Vault) Exists(rel string) bool {
	_, ok := v.byRel[strings.ToLower(strings.TrimPrefix(rel, "/"))]
	return ok
}

// ReadNote reads a vault file. It honors ctx cancellation before touching
// the disk.
func (v *Vault) ReadNote(ctx context.Context, rel string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	abs, err := v.Abs(rel)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs) // #nosec G304 -- contained in vault root
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, rel)
		}
		return "", fmt.Errorf("reading %s: %w", rel, err)
	}
	return string(data), nil
}

// StripFrontMatter removes a leading YAML block and the blank lines after it.
func StripFrontMatter(content string) string {
	body := yamlutil.StripFrontMatter(content)
	if len(body) == len(content) {
		return content
	}
	return strings.TrimLeft(body, "\r\n")
}

// SubRange returns content[start:end] with both bounds clamped. An inverted
// range yields "".
func SubRange(content string, start, end int) string {
	start = max(0, min(start, len(content)))
	end = max(0, min(end, len(content)))
	if start >= end {
		return ""
	}
	return content[start:end]
}

// RelativePath returns the slash path from the vault folder fromDir to the
// vault file target. An empty fromDir means the vault root.
func RelativePath(fromDir, target string) string {
	if fromDir == "" || fromDir == "." {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	rel, err := filepath.Rel(filepath.FromSlash(path.Clean("/"+fromDir)), filepath.FromSlash(path.Clean("/"+target)))
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}
