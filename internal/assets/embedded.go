package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed templates
var templates embed.FS

// EmbeddedLoader loads the designs compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads styles/{design}.css.
func (e *EmbeddedLoader) LoadStyle(design string) (string, error) {
	if err := ValidateAssetName(design); err != nil {
		return "", err
	}
	content, err := styles.ReadFile("styles/" + design + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrDesignNotFound, design)
	}
	return string(content), nil
}

// LoadLayout loads templates/{design}/{layout}.md.
func (e *EmbeddedLoader) LoadLayout(design, layout string) (string, error) {
	if err := ValidateAssetName(design); err != nil {
		return "", err
	}
	if err := ValidateAssetName(layout); err != nil {
		return "", err
	}
	content, err := templates.ReadFile("templates/" + design + "/" + layout + ".md")
	if err != nil {
		return "", fmt.Errorf("%w: %q in design %q", ErrLayoutNotFound, layout, design)
	}
	return string(content), nil
}

// Designs lists embedded design names.
func (e *EmbeddedLoader) Designs() ([]string, error) {
	entries, err := fs.ReadDir(styles, "styles")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".css"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
