package md2slides_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/vault"
)

// writeExampleVault creates a throwaway vault holding one note.
func writeExampleVault(note string) (string, func()) {
	dir, err := os.MkdirTemp("", "md2slides-example-*")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Talk.md"), []byte(note), 0o600); err != nil {
		panic(err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }
}

// Example converts a note with chapters into a Marp deck.
func Example() {
	dir, cleanup := writeExampleVault("# Talk\n## Why\ntext\n## How\ntext\n")
	defer cleanup()

	ctx := context.Background()
	v, err := vault.Open(ctx, dir)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	conv, err := md2slides.NewConverter(v, md2slides.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(ctx, "Talk.md")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(result.Chapters, "chapters,", "design", result.Design)
	fmt.Println(strings.Contains(result.Deck, "+ [Why](#c1)"))
	// Output:
	// 2 chapters, design A
	// true
}

// Example_reveal writes a Reveal deck with a custom slide size.
func Example_reveal() {
	dir, cleanup := writeExampleVault("---\nslideWidth: 1920\nslideHeight: 1080\n---\n# Talk\n## Why\n")
	defer cleanup()

	ctx := context.Background()
	v, err := vault.Open(ctx, dir)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	opts := md2slides.DefaultOptions()
	opts.Renderer = "reveal"
	opts.NoTheme = true
	conv, err := md2slides.NewConverter(v, opts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	result, err := conv.Convert(ctx, "Talk")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(strings.Contains(result.Deck, "width: 1920"))
	fmt.Println(strings.Contains(result.Deck, `<!-- slide id="c1" class="chapter" -->`))
	// Output:
	// true
	// true
}
