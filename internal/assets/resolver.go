package assets

import "sort"

// Resolver combines vault and embedded loaders. The vault loader is tried
// first; embedded designs fill in anything it does not provide.
type Resolver struct {
	custom   Loader // nil when the vault has no designs folder
	embedded Loader
}

// NewResolver creates a Resolver. An empty customBasePath uses embedded
// designs only; a set but invalid path is an error.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadStyle loads a design stylesheet, custom first.
func (r *Resolver) LoadStyle(design string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) {
		return l.LoadStyle(design)
	})
}

// LoadLayout loads a design layout, custom first.
func (r *Resolver) LoadLayout(design, layout string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) {
		return l.LoadLayout(design, layout)
	})
}

// Designs merges custom and embedded design names without duplicates.
func (r *Resolver) Designs() ([]string, error) {
	names, err := r.embedded.Designs()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return names, nil
	}
	custom, err := r.custom.Designs()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(names)+len(custom))
	merged := make([]string, 0, len(names)+len(custom))
	for _, n := range append(custom, names...) {
		if !seen[n] {
			seen[n] = true
			merged = append(merged, n)
		}
	}
	sort.Strings(merged)
	return merged, nil
}

// HasDesign reports whether any loader provides a stylesheet for design.
func (r *Resolver) HasDesign(design string) bool {
	_, err := r.LoadStyle(design)
	return err == nil
}

// HasCustomLoader returns true if a vault designs folder is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// loadWithFallback only falls back on "not found", never on validation or
// I/O errors.
func (r *Resolver) loadWithFallback(loadFn func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}
	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}
	if !IsNotFound(err) {
		return "", err
	}
	return loadFn(r.embedded)
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
