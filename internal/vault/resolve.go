package vault

import (
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// nameSource adapts a file list to fuzzy.Source.
type nameSource struct {
	files   []File
	withExt bool
}

func (s nameSource) String(i int) string {
	if s.withExt {
		return strings.ToLower(s.files[i].Name)
	}
	return strings.ToLower(s.files[i].Stem)
}

func (s nameSource) Len() int { return len(s.files) }

// Resolve maps a wiki-link or Markdown link target to a vault-relative path.
// Lookup order: exact relative path, exact base name (notes win when the
// name has no extension, shortest path wins among equals), then a fuzzy
// base-name match ranked by edit distance.
func (v *Vault) Resolve(name string) (string, error) {
	query := normalizeName(name)
	if query == "" {
		return "", ErrEmptyName
	}

	if f, ok := v.exact(query); ok {
		return f.Rel, nil
	}
	if f, ok := v.byBaseName(query); ok {
		return f.Rel, nil
	}
	if f, ok := v.fuzzy(query); ok {
		return f.Rel, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	return name
}

func (v *Vault) exact(query string) (File, bool) {
	lower := strings.ToLower(query)
	for _, candidate := range []string{lower, lower + ".md"} {
		if i, ok := v.byRel[candidate]; ok {
			return v.files[i], true
		}
	}
	return File{}, false
}

func (v *Vault) byBaseName(query string) (File, bool) {
	lower := strings.ToLower(query)
	forms := []string{lower, lower + ".md"}

	var matches []File
	for _, f := range v.files {
		rel := strings.ToLower(f.Rel)
		for _, form := range forms {
			if rel == form || strings.HasSuffix(rel, "/"+form) {
				matches = append(matches, f)
				break
			}
		}
	}
	if len(matches) == 0 {
		return File{}, false
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if mi, mj := fileutil.IsMarkdown(matches[i].Name), fileutil.IsMarkdown(matches[j].Name); mi != mj {
			return mi
		}
		return len(matches[i].Rel) < len(matches[j].Rel)
	})
	return matches[0], true
}

// fuzzy tolerates small typos. Candidates must contain the query as a
// subsequence and stay within maxDistance edits of it.
func (v *Vault) fuzzy(query string) (File, bool) {
	base := strings.ToLower(path.Base(query))
	withExt := path.Ext(base) != ""
	src := nameSource{files: v.files, withExt: withExt}

	matches := fuzzy.FindFrom(base, src)
	if len(matches) == 0 {
		return File{}, false
	}

	limit := maxDistance(base)
	best, bestDist, found := File{}, limit+1, false
	for _, m := range matches {
		d := levenshtein.ComputeDistance(base, src.String(m.Index))
		if d > limit {
			continue
		}
		f := v.files[m.Index]
		if !found || d < bestDist || (d == bestDist && len(f.Rel) < len(best.Rel)) {
			best, bestDist, found = f, d, true
		}
	}
	return best, found
}

func maxDistance(query string) int {
	return max(1, len([]rune(query))/4)
}
