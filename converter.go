package md2slides

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/vault"
)

// DefaultDesignsFolder is the vault folder searched for custom designs when
// Options.AssetsPath is empty.
const DefaultDesignsFolder = "Designs"

// Compile-time interface checks.
var (
	_ pipeline.NoteSource     = (*vault.Vault)(nil)
	_ pipeline.PathResolver   = (*deckPaths)(nil)
	_ pipeline.TemplateSource = (*templateSource)(nil)
)

// Converter turns vault notes into slide decks.
// Create with NewConverter and call Convert or Insert.
type Converter struct {
	opts     Options
	syntax   pipeline.Syntax
	vault    *vault.Vault
	designs  *assets.Resolver
	prompter pipeline.Prompter
	notifier Notifier
	logger   zerolog.Logger
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewConverter creates a Converter over v. opts is copied and never
// modified afterwards.
func NewConverter(v *vault.Vault, opts Options, options ...Option) (*Converter, error) {
	if v == nil {
		return nil, ErrNilVault
	}
	syntax, err := pipeline.ParseSyntax(opts.Renderer)
	if err != nil {
		return nil, err
	}

	base := opts.AssetsPath
	if base == "" {
		if candidate := filepath.Join(v.Root(), DefaultDesignsFolder); fileutil.DirExists(candidate) {
			base = candidate
		}
	}
	designs, err := assets.NewResolver(base)
	if err != nil {
		return nil, fmt.Errorf("loading designs: %w", err)
	}

	opts.Classes = opts.Classes.Merge(pipeline.DefaultClasses)
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	c := &Converter{
		opts:     opts,
		syntax:   syntax,
		vault:    v,
		designs:  designs,
		notifier: nopNotifier{},
		logger:   zerolog.Nop(),
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Designs lists the designs available to the converter.
func (c *Converter) Designs() ([]string, error) {
	return c.designs.Designs()
}

// Style returns the stylesheet of design.
func (c *Converter) Style(design string) (string, error) {
	return c.designs.LoadStyle(design)
}

// Locate returns the absolute path of note, given as a vault-relative
// path, an absolute path inside the vault or a bare note name.
func (c *Converter) Locate(note string) (string, error) {
	rel, err := c.noteRel(note)
	if err != nil {
		return "", err
	}
	return c.vault.Abs(rel)
}

// lock serializes writers of the same deck.
func (c *Converter) lock(key string) func() {
	c.mu.Lock()
	m, ok := c.locks[key]
	if !ok {
		m = &sync.Mutex{}
		c.locks[key] = m
	}
	c.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// noteRel maps a vault-relative path, an absolute path inside the vault,
// or a bare note name to the note's vault-relative path.
func (c *Converter) noteRel(note string) (string, error) {
	if note == "" {
		return "", fmt.Errorf("%w: empty name", ErrNoteNotFound)
	}
	if filepath.IsAbs(note) {
		rel, err := filepath.Rel(c.vault.Root(), note)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: %s is outside the vault", ErrNoteNotFound, note)
		}
		note = filepath.ToSlash(rel)
	}
	if c.vault.Exists(note) {
		return path.Clean(filepath.ToSlash(note)), nil
	}
	rel, err := c.vault.Resolve(note)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoteNotFound, err)
	}
	return rel, nil
}

// deckPaths resolves link targets relative to the deck folder.
type deckPaths struct {
	vault   *vault.Vault
	deckDir string // vault-relative, slash separated
}

func (d *deckPaths) ResolvePath(target string) (string, bool) {
	if fileutil.IsURL(target) {
		return "", false
	}
	rel, err := d.vault.Resolve(target)
	if err != nil {
		return "", false
	}
	return vault.RelativePath(d.deckDir, rel), true
}

// templateSource serves design layouts first, then vault notes.
type templateSource struct {
	ctx     context.Context
	vault   *vault.Vault
	designs *assets.Resolver
	design  string
}

func (t *templateSource) LoadTemplate(name string) (string, bool) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".md")
	if assets.ValidateAssetName(name) == nil {
		if layout, err := t.designs.LoadLayout(t.design, name); err == nil {
			return layout, true
		}
	}
	rel, err := t.vault.Resolve(name)
	if err != nil {
		return "", false
	}
	content, err := t.vault.ReadNote(t.ctx, rel)
	if err != nil {
		return "", false
	}
	return content, true
}
