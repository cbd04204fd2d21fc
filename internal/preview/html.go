package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// Default slide size in CSS pixels.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s</style>
</head>
<body>
%s</body>
</html>`

// deckHeader is the part of a deck's front-matter the preview reads.
type deckHeader struct {
	Header string `yaml:"header"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Options configure a preview.
type Options struct {
	Title  string
	CSS    string // design stylesheet, injected after the page layout
	Width  int    // zero uses the deck's front-matter, then DefaultWidth
	Height int
}

// Renderer converts decks to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM, footnotes and chroma
// highlighting. Raw HTML is kept since decks carry their own markup.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			gmhtml.WithXHTML(),
		),
	)
	return &Renderer{md: md}
}

// ToHTML renders deck, one <section> per slide, into a standalone page.
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns early on cancellation.
func (r *Renderer) ToHTML(ctx context.Context, deck string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		page, err := r.render(deck, opts)
		done <- result{html: page, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

func (r *Renderer) render(deck string, opts Options) (string, error) {
	var meta deckHeader
	body, err := yamlutil.ParseFrontMatter(pipeline.NormalizeLineEndings(deck), &meta)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	width := firstPositive(opts.Width, meta.Width, DefaultWidth)
	height := firstPositive(opts.Height, meta.Height, DefaultHeight)

	slides, _ := pipeline.SplitSlides(body)
	var sections strings.Builder
	for i, slide := range slides {
		if strings.TrimSpace(slide) == "" {
			continue
		}
		a := pipeline.ParseAnnotation(slide)
		header := meta.Header
		if a.Header != "" {
			header = a.Header
		}

		var buf bytes.Buffer
		if err := r.md.Convert([]byte(slide), &buf); err != nil {
			return "", fmt.Errorf("%w: slide %d: %v", ErrHTMLConversion, i+1, err)
		}

		sections.WriteString("<section")
		if a.ID != "" {
			sections.WriteString(` id="` + html.EscapeString(a.ID) + `"`)
		}
		if a.Class != "" {
			sections.WriteString(` class="` + html.EscapeString(a.Class) + `"`)
		}
		sections.WriteString(">\n")
		if header != "" {
			sections.WriteString("<header>" + header + "</header>\n")
		}
		sections.Write(buf.Bytes())
		sections.WriteString("</section>\n")
	}

	title := opts.Title
	if title == "" {
		title = "Slides"
	}
	page := fmt.Sprintf(pageTemplate, html.EscapeString(title), layoutCSS(width, height), sections.String())
	return InjectCSS(page, opts.CSS), nil
}

// layoutCSS sizes every section as one printed page.
func layoutCSS(width, height int) string {
	w, h := strconv.Itoa(width)+"px", strconv.Itoa(height)+"px"
	return "@page { size: " + w + " " + h + "; margin: 0; }\n" +
		"body { margin: 0; }\n" +
		"section { box-sizing: border-box; width: " + w + "; height: " + h + "; overflow: hidden; position: relative; break-after: page; }\n"
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// InjectCSS inserts css as a <style> block before </head>, after <body>,
// or at the start of the document, in that order of preference.
func InjectCSS(htmlContent, css string) string {
	if css == "" {
		return htmlContent
	}

	block := "<style>" + sanitizeCSS(css) + "</style>"
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return htmlContent[:idx] + block + htmlContent[idx:]
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if end := strings.Index(htmlContent[idx:], ">"); end != -1 {
			pos := idx + end + 1
			return htmlContent[:pos] + block + htmlContent[pos:]
		}
	}
	return block + htmlContent
}

// sanitizeCSS escapes </ so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
