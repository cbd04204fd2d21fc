package designsync

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// Writer errors.
var (
	ErrPathEscape   = errors.New("record path escapes the designs folder")
	ErrEmptyContent = errors.New("record has no content")
)

// Default field names read from each record.
const (
	DefaultPathField    = "path"
	DefaultContentField = "content"
	nameField           = "name"
)

// Writer stores records as files below Dir.
type Writer struct {
	Dir          string
	PathField    string
	ContentField string
}

// Target returns the file path a record is written to. A record without a
// path field is named after its "name" field or id, slugified.
func (w *Writer) Target(r Record) (string, error) {
	rel := strings.TrimSpace(fieldString(r.Fields, orDefault(w.PathField, DefaultPathField)))
	if rel == "" {
		base := fieldString(r.Fields, nameField)
		if base == "" {
			base = r.ID
		}
		s := slug.Make(base)
		if s == "" {
			return "", fmt.Errorf("%w: record %q has no usable name", ErrPathEscape, r.ID)
		}
		rel = s + ".md"
	}

	rel = filepath.FromSlash(rel)
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, rel)
	}
	clean := filepath.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, rel)
	}
	return filepath.Join(w.Dir, clean), nil
}

// Write stores one record and returns the written path.
func (w *Writer) Write(r Record) (string, error) {
	target, err := w.Target(r)
	if err != nil {
		return "", err
	}
	content := fieldString(r.Fields, orDefault(w.ContentField, DefaultContentField))
	if content == "" {
		return target, fmt.Errorf("%w: %s", ErrEmptyContent, target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return target, fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	if err := fileutil.WriteFileAtomic(target, []byte(content)); err != nil {
		return target, err
	}
	return target, nil
}

func fieldString(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
