// Package yamlutil wraps YAML parsing to isolate the external dependency.
// Config files, note front-matter and generated deck front-matter all go
// through this package so the underlying YAML library can be swapped.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// frontMatterFormat recognizes the `---` delimited block Obsidian writes.
var frontMatterFormat = frontmatter.NewFormat("---", "---", func(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
})

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// ParseFrontMatter decodes the leading front-matter block of a note into v
// and returns the remaining body. A note without front-matter returns the
// content unchanged and leaves v untouched.
func ParseFrontMatter(content string, v any) (string, error) {
	if v == nil {
		return "", ErrNilDestination
	}
	if len(content) > MaxInputSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(content), MaxInputSize)
	}
	if !strings.HasPrefix(content, "---") {
		return content, nil
	}
	body, err := frontmatter.Parse(strings.NewReader(content), v, frontMatterFormat)
	if err != nil {
		return "", fmt.Errorf("yamlutil: front-matter: %w", err)
	}
	return string(body), nil
}

// MarshalFrontMatter renders v as a `---` delimited front-matter block
// terminated by a newline.
func MarshalFrontMatter(v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString("---\n")
	return buf.String(), nil
}

// skipFormat delimits front-matter without decoding it.
var skipFormat = frontmatter.NewFormat("---", "---", func([]byte, any) error { return nil })

// StripFrontMatter returns content without its leading front-matter block.
// Content without a block, or with an unterminated one, is returned as is.
func StripFrontMatter(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}
	var discard struct{}
	body, err := frontmatter.Parse(strings.NewReader(content), &discard, skipFormat)
	if err != nil {
		return content
	}
	return string(body)
}
