package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/hints"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/preview"
	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// Marp decks carry their size as a section style.
var (
	styleWidth  = regexp.MustCompile(`width:\s*(\d+)px`)
	styleHeight = regexp.MustCompile(`height:\s*(\d+)px`)
)

// runPreviewCmd renders a deck to a standalone HTML page or a PDF.
func runPreviewCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: preview needs exactly one deck", ErrUsage)
	}
	timeout, err := parseTimeout(flags.timeout)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	logger := newLogger(env.Stderr, flags.common)

	deckPath, err := filepath.Abs(positional[0])
	if err != nil {
		return err
	}
	data, err := os.ReadFile(deckPath) // #nosec G304 -- deck path is user-provided
	if err != nil {
		return fmt.Errorf("reading deck: %w", err)
	}
	deck := string(data)
	meta := readDeckMeta(deck)

	vaultRoot, err := filepath.Abs(firstNonEmpty(cfg.Vault.Root, "."))
	if err != nil {
		return err
	}
	css, err := deckStyle(deckPath, meta, flags.design, buildOptions(cfg, "", vaultRoot).AssetsPath)
	if err != nil {
		return err
	}

	width, height := deckSize(meta)
	if flags.width > 0 {
		width = flags.width
	}
	if flags.height > 0 {
		height = flags.height
	}

	page, err := preview.NewRenderer().ToHTML(ctx, deck, preview.Options{
		Title:  fileutil.TrimExt(deckPath),
		CSS:    css,
		Width:  width,
		Height: height,
	})
	if err != nil {
		return err
	}

	boundary := vaultRoot
	if rel, err := filepath.Rel(vaultRoot, deckPath); err != nil || strings.HasPrefix(rel, "..") {
		boundary = ""
	}
	page, err = preview.ResolveLocalPaths(page, filepath.Dir(deckPath), boundary)
	if err != nil {
		return fmt.Errorf("%w: %v", preview.ErrHTMLConversion, err)
	}

	ext := ".html"
	if flags.pdf {
		ext = ".pdf"
	}
	out := flags.output
	if out == "" {
		out = strings.TrimSuffix(deckPath, filepath.Ext(deckPath)) + ext
	}

	output := []byte(page)
	if flags.pdf {
		start := env.Now()
		printer := preview.NewPDFPrinter(timeout)
		defer printer.Close()

		output, err = printer.ToPDF(ctx, page, preview.PageSize{Width: width, Height: height})
		if err != nil {
			if errors.Is(err, preview.ErrBrowserConnect) {
				return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
			}
			return err
		}
		logger.Debug().Dur("elapsed", env.Now().Sub(start)).Int("bytes", len(output)).Msg("printed PDF")
	}

	if err := fileutil.WriteFileAtomic(out, output); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", out)
	}
	return nil
}

// parseTimeout parses the --timeout flag; empty means the default.
func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: invalid timeout %q (e.g., 30s, 2m)", ErrUsage, s)
	}
	return d, nil
}

// readDeckMeta decodes the deck front-matter. A deck without a readable
// block yields zero values.
func readDeckMeta(deck string) pipeline.DeckMeta {
	var meta pipeline.DeckMeta
	if _, err := yamlutil.ParseFrontMatter(pipeline.NormalizeLineEndings(deck), &meta); err != nil {
		return pipeline.DeckMeta{}
	}
	return meta
}

// deckSize returns the slide size written in the deck, zero when absent.
func deckSize(meta pipeline.DeckMeta) (width, height int) {
	width, height = meta.Width, meta.Height
	if m := styleWidth.FindStringSubmatch(meta.Style); m != nil && width == 0 {
		width, _ = strconv.Atoi(m[1])
	}
	if m := styleHeight.FindStringSubmatch(meta.Style); m != nil && height == 0 {
		height, _ = strconv.Atoi(m[1])
	}
	return width, height
}

// deckStyle finds the stylesheet of a deck: the --design flag, the theme
// file written next to the deck, then the design by name. An unknown
// theme previews unstyled.
func deckStyle(deckPath string, meta pipeline.DeckMeta, design, assetsPath string) (string, error) {
	resolver, err := assets.NewResolver(assetsPath)
	if err != nil {
		return "", err
	}
	if design != "" {
		return resolver.LoadStyle(design)
	}

	dir := filepath.Dir(deckPath)
	candidates := []string{}
	if meta.CSS != "" && !fileutil.IsURL(meta.CSS) {
		candidates = append(candidates, filepath.Join(dir, filepath.FromSlash(meta.CSS)))
	}
	if meta.Theme != "" {
		candidates = append(candidates, filepath.Join(dir, "themes", meta.Theme+".css"))
	}
	for _, c := range candidates {
		if data, err := os.ReadFile(c); err == nil { // #nosec G304 -- next to the deck
			return string(data), nil
		}
	}

	name := meta.Theme
	if name == "" && meta.CSS != "" {
		name = fileutil.TrimExt(meta.CSS)
	}
	if name == "" {
		return "", nil
	}
	css, err := resolver.LoadStyle(name)
	if assets.IsNotFound(err) || errors.Is(err, assets.ErrInvalidAssetName) {
		return "", nil
	}
	return css, err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
