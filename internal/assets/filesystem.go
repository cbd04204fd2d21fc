package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemLoader loads designs from a directory on disk, usually the
// designs folder inside the vault that `md2slides sync` fills.
type FilesystemLoader struct {
	basePath string
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	return &FilesystemLoader{basePath: absPath}, nil
}

// LoadStyle loads {basePath}/styles/{design}.css.
func (f *FilesystemLoader) LoadStyle(design string) (string, error) {
	if err := ValidateAssetName(design); err != nil {
		return "", err
	}
	content, err := f.read(filepath.Join("styles", design+".css"))
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %q", ErrDesignNotFound, design)
	}
	return content, err
}

// LoadLayout loads {basePath}/templates/{design}/{layout}.md.
func (f *FilesystemLoader) LoadLayout(design, layout string) (string, error) {
	if err := ValidateAssetName(design); err != nil {
		return "", err
	}
	if err := ValidateAssetName(layout); err != nil {
		return "", err
	}
	content, err := f.read(filepath.Join("templates", design, layout+".md"))
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %q in design %q", ErrLayoutNotFound, layout, design)
	}
	return content, err
}

// Designs lists the stylesheets under {basePath}/styles. A missing styles
// directory yields an empty list.
func (f *FilesystemLoader) Designs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.basePath, "styles"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(entry.Name(), ".css"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// read returns the content of rel, keeping os.IsNotExist errors unwrapped so
// callers can map them to the matching sentinel.
func (f *FilesystemLoader) read(rel string) (string, error) {
	filePath := filepath.Join(f.basePath, rel)
	if err := f.verifyPathContainment(filePath); err != nil {
		return "", err
	}
	content, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// verifyPathContainment ensures the resolved file path is within basePath,
// following symlinks so a link cannot escape the directory.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

// Compile-time interface check.
var _ Loader = (*FilesystemLoader)(nil)
