package assets

import (
	"fmt"
	"strings"
)

// MaxAssetNameLength bounds design and layout names.
const MaxAssetNameLength = 100

// ValidateAssetName checks that a design or layout name is safe for use as a
// file name. Spaces are allowed because vault templates often carry them.
func ValidateAssetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
