package pipeline

import (
	"strconv"
	"strings"

	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// DeckMeta is the front-matter written at the top of a generated deck.
type DeckMeta struct {
	Marp      bool     `yaml:"marp,omitempty"`
	Theme     string   `yaml:"theme,omitempty"`
	Header    string   `yaml:"header,omitempty"`
	Aliases   []string `yaml:"aliases,omitempty"`
	SlideMode bool     `yaml:"slideMode,omitempty"`
	Size      string   `yaml:"size,omitempty"`
	Style     string   `yaml:"style,omitempty"`
	CSS       string   `yaml:"css,omitempty"`
	Width     int      `yaml:"width,omitempty"`
	Height    int      `yaml:"height,omitempty"`
}

// DeckOptions describe the deck front-matter.
type DeckOptions struct {
	Syntax  Syntax
	Design  string
	Header  string
	Aliases []string
	Width   int
	Height  int
}

// BuildDeckMeta assembles the renderer's front-matter. Marp gets the theme
// by name and the slide size as a section style; Reveal gets the theme
// stylesheet path and numeric dimensions.
func BuildDeckMeta(opts DeckOptions) DeckMeta {
	m := DeckMeta{
		Header:    opts.Header,
		Aliases:   opts.Aliases,
		SlideMode: true,
	}
	if opts.Syntax == Reveal {
		if opts.Design != "" {
			m.CSS = "themes/" + opts.Design + ".css"
		}
		m.Width, m.Height = opts.Width, opts.Height
		return m
	}

	m.Marp = true
	m.Theme = opts.Design
	if opts.Width > 0 && opts.Height > 0 {
		m.Style = "section { width: " + strconv.Itoa(opts.Width) + "px; height: " + strconv.Itoa(opts.Height) + "px; }"
	}
	return m
}

// EmitFrontMatter prepends meta as a YAML front-matter block to body.
func EmitFrontMatter(meta DeckMeta, body string) (string, error) {
	fm, err := yamlutil.MarshalFrontMatter(meta)
	if err != nil {
		return "", err
	}
	return fm + "\n" + strings.TrimLeft(body, "\n"), nil
}
