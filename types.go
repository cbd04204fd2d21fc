package md2slides

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2slides/internal/pipeline"
)

// Slide size bounds in pixels.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Content page slide types.
const (
	SlideTypeHorizontal = "horizontal"
	SlideTypeVertical   = "vertical"
)

// Options is the conversion configuration, captured once when the
// Converter is created and never modified afterwards.
type Options struct {
	Renderer string // "marp" or "reveal"

	Design        string // explicit design, wins over everything
	UserDesign    string // preferred design, "none" to disable
	DefaultDesign string
	PromptDesign  bool   // ask when neither Design nor the note sets one
	AssetsPath    string // custom designs folder; empty = <vault>/Designs when present

	OutputFolder string // vault-relative folder holding generated decks
	SameAsDoc    bool   // write the deck next to its note
	NoTheme      bool   // skip writing themes/<design>.css

	Width, Height      int
	TOCPageNumber      int
	ContentSlideType   string // "horizontal" or "vertical"
	Fragments          bool   // TOC items as + fragments
	ParagraphFragments bool
	NavOn              bool // per-slide navigation header
	AutoConvertLinks   bool
	NoNavTemplate      string
	Classes            pipeline.Classes

	Presenter   string
	Tagline     string
	Slogan      string
	PresentDate string // literal date or "auto[:LAYOUT]"
}

// DefaultOptions returns the built-in configuration.
func DefaultOptions() Options {
	return Options{
		Renderer:         "marp",
		DefaultDesign:    "A",
		UserDesign:       "none",
		OutputFolder:     "Slides",
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		TOCPageNumber:    1,
		ContentSlideType: SlideTypeHorizontal,
		Fragments:        true,
		NoNavTemplate:    "tpl-no-nav",
		Classes:          pipeline.DefaultClasses,
	}
}

// Prompter and PromptRequest are the interactive question types used by
// WithPrompter.
type (
	Prompter      = pipeline.Prompter
	PromptRequest = pipeline.PromptRequest
)

// Option configures a Converter.
type Option func(*Converter)

// WithPrompter sets the source of interactive answers.
func WithPrompter(p Prompter) Option {
	return func(c *Converter) {
		c.prompter = p
	}
}

// WithNotifier sets the receiver of user-facing notices.
func WithNotifier(n Notifier) Option {
	return func(c *Converter) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithClock overrides time.Now for date placeholders.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.now = now
		}
	}
}

// Result describes a written deck.
type Result struct {
	Note     string        // vault-relative source note
	Path     string        // absolute path of the deck
	Theme    string        // absolute path of the theme stylesheet, "" when skipped
	Design   string        // resolved design
	Mode     pipeline.Mode // structural classification of the note
	Chapters int
	Notices  []string // non-fatal problems shown to the user
	Aborted  []string // placeholders whose prompt was cancelled
	Deck     string   // generated Markdown
}
