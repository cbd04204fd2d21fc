package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrDesignNotFound indicates no stylesheet exists for the design.
	ErrDesignNotFound = errors.New("design not found")

	// ErrLayoutNotFound indicates the design has no layout of that name.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrInvalidAssetName indicates the name contains path separators or dots.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)

// IsNotFound reports whether err means the asset simply does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDesignNotFound) || errors.Is(err, ErrLayoutNotFound)
}
