package md2slides

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2slides/internal/dateutil"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/hints"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/vault"
)

// Back cover keywords of lastButNotLeast that select the design layout.
var backCoverLayoutKeywords = map[string]bool{"layout": true, "design": true}

// run carries the state of one conversion.
type run struct {
	c       *Converter
	note    string // vault-relative
	meta    NoteMeta
	design  string
	deckDir string // vault-relative
	result  *Result
}

func (r *run) notice(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.result.Notices = append(r.result.Notices, msg)
	r.c.notifier.Notice(msg)
}

// Convert turns note into a slide deck and writes it with its theme.
// Structural validation failures (ErrMissingTitle, ErrAlreadyConverted) and
// a cancelled design choice (ErrAborted) leave the vault untouched.
func (c *Converter) Convert(ctx context.Context, note string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	rel, err := c.noteRel(note)
	if err != nil {
		return nil, err
	}
	content, err := c.vault.ReadNote(ctx, rel)
	if err != nil {
		return nil, err
	}

	deck, r, err := c.build(ctx, rel, content)
	if err != nil {
		return nil, err
	}
	if err := c.write(r, deck); err != nil {
		return nil, err
	}
	return r.result, nil
}

// build runs the pipeline in its fixed order and returns the deck text.
func (c *Converter) build(ctx context.Context, rel, content string) (string, *run, error) {
	log := c.logger.With().Str("note", rel).Logger()

	meta, body, err := ParseNote(pipeline.NormalizeLineEndings(content))
	if err != nil {
		return "", nil, err
	}
	if alreadyConverted(meta, body) {
		return "", nil, fmt.Errorf("%w: %s%s", ErrAlreadyConverted, rel, hints.ForAlreadyConverted())
	}

	r := &run{c: c, note: rel, meta: meta, result: &Result{Note: rel}}

	// Embeds
	body, err = pipeline.InlineEmbeds(ctx, body, c.vault)
	if err != nil {
		return "", nil, err
	}

	// Validation and classification
	counts := pipeline.CountHeadings(body)
	if counts[1] == 0 {
		return "", nil, fmt.Errorf("%w: %s%s", ErrMissingTitle, rel, hints.ForMissingTitle())
	}
	mode := pipeline.Classify(counts)
	r.result.Mode = mode
	log.Debug().Int("mode", int(mode)).Ints("headings", counts[1:]).Msg("classified")

	if err := r.resolveDesign(ctx); err != nil {
		return "", nil, err
	}
	if err := r.resolveDeckDir(); err != nil {
		return "", nil, err
	}

	if mode == pipeline.ModeMultiTitle {
		body = pipeline.Renormalize(body, r.title())
	}

	// Images and links
	paths := &deckPaths{vault: c.vault, deckDir: r.deckDir}
	body = pipeline.RewriteImages(body, pipeline.ImageOptions{Syntax: c.syntax, Resolver: paths})
	if boolOr(meta.AutoConvertLinks, c.opts.AutoConvertLinks) {
		body = pipeline.ConvertLinks(body, paths)
	}

	// Fragments
	body = pipeline.Fragments(body, c.syntax, boolOr(meta.ParagraphFragments, c.opts.ParagraphFragments))

	// Separators and annotations
	body = pipeline.InsertSeparators(body, mode)
	var chapters []pipeline.Chapter
	if mode != pipeline.ModeSingleTopic {
		chapters = pipeline.ScanChapters(body)
	}
	r.result.Chapters = len(chapters)

	classes := meta.Classes().Merge(c.opts.Classes)
	navOn := boolOr(meta.SlideNavOn, c.opts.NavOn) && len(chapters) > 0
	annotate := pipeline.AnnotateOptions{
		Syntax:           c.syntax,
		Mode:             mode,
		Classes:          classes,
		VerticalSubPages: strings.EqualFold(c.opts.ContentSlideType, SlideTypeVertical),
		NoNavTemplate:    c.opts.NoNavTemplate,
		NoNavHeader:      strings.TrimSpace(c.opts.Tagline + " " + c.opts.Slogan),
	}
	if navOn {
		annotate.Nav = func(chapter int) string {
			return pipeline.BuildNav(chapters, chapter)
		}
	}
	body, _ = pipeline.Annotate(body, annotate)

	// TOC
	values := &pipeline.ReplaceConfig{}
	if mode != pipeline.ModeSingleTopic && len(chapters) > 0 {
		values.Set(pipeline.FieldTOC, pipeline.BuildTOC(chapters, c.opts.Fragments))
		body = pipeline.InsertTOC(body, r.tocSlide(classes, chapters, navOn), c.opts.TOCPageNumber)
	}

	// Back cover
	if back := r.backCover(ctx); back != "" {
		cover := c.syntax.Render(pipeline.Annotation{Class: classes.BackCover})
		body = strings.TrimRight(body, "\n") + "\n\n---\n\n" + cover + "\n\n" + strings.TrimSpace(back) + "\n"
	}

	// Templates, footnotes and blocks
	body, defs := pipeline.CollectFootnotes(body)
	body, warnings := pipeline.ExpandSlides(body, pipeline.SlideOptions{
		Templates: &templateSource{ctx: ctx, vault: c.vault, designs: c.designs, design: r.design},
		Footnotes: defs,
		Chapters:  chapters,
	})
	for _, w := range warnings {
		log.Warn().Int("slide", w.Slide+1).Err(w.Err).Msg("template not expanded")
		r.notice("slide %d: %v", w.Slide+1, w.Err)
	}
	body = pipeline.RenderBlocks(body)

	// Placeholders
	if err := r.fillValues(values); err != nil {
		return "", nil, err
	}
	body, aborted, err := pipeline.Finalize(ctx, body, values, c.prompter)
	if err != nil {
		return "", nil, err
	}
	for _, name := range aborted {
		r.notice("%s left empty: prompt cancelled", name)
	}
	r.result.Aborted = aborted
	body = pipeline.CompressBlankLines(body)

	// Front-matter
	header := meta.SlideLogoOrTagline
	if header == "" {
		header = c.opts.Tagline
	}
	width, height := c.opts.Width, c.opts.Height
	if meta.SlideWidth > 0 {
		width = meta.SlideWidth
	}
	if meta.SlideHeight > 0 {
		height = meta.SlideHeight
	}
	deck, err := pipeline.EmitFrontMatter(pipeline.BuildDeckMeta(pipeline.DeckOptions{
		Syntax:  c.syntax,
		Design:  r.design,
		Header:  header,
		Aliases: meta.Aliases,
		Width:   width,
		Height:  height,
	}), body)
	if err != nil {
		return "", nil, fmt.Errorf("writing front-matter: %w", err)
	}
	r.result.Deck = deck
	return deck, r, nil
}

// resolveDesign applies the design priority and, when configured, asks the
// user. A cancelled choice aborts the conversion.
func (r *run) resolveDesign(ctx context.Context) error {
	c := r.c
	explicit := c.opts.Design
	if explicit == "" && r.meta.SlideDesign == "" && c.opts.PromptDesign && c.prompter != nil {
		names, err := c.designs.Designs()
		if err != nil {
			return err
		}
		def := pipeline.ResolveDesign("", "", c.opts.UserDesign, c.opts.DefaultDesign)
		answer, err := c.prompter.Prompt(ctx, pipeline.PromptRequest{
			Field:   pipeline.FieldDesign,
			Message: "Design",
			Default: def,
			Options: names,
		})
		if errors.Is(err, pipeline.ErrPromptAborted) {
			return fmt.Errorf("%w: no design selected", ErrAborted)
		}
		if err != nil {
			return err
		}
		explicit = answer
	}

	r.design = pipeline.ResolveDesign(explicit, r.meta.SlideDesign, c.opts.UserDesign, c.opts.DefaultDesign)
	if !c.designs.HasDesign(r.design) {
		names, _ := c.designs.Designs()
		return fmt.Errorf("%w: %q%s", ErrDesignNotFound, r.design, hints.ForDesignNotFound(names))
	}
	r.result.Design = r.design
	return nil
}

// resolveDeckDir picks the deck folder: the note's slideLocation, the
// note's own folder, or <output>/<slide name>.
func (r *run) resolveDeckDir() error {
	c := r.c
	var dir string
	switch {
	case strings.TrimSpace(r.meta.SlideLocation) != "":
		dir = strings.TrimSpace(r.meta.SlideLocation)
		if fileutil.IsMarkdown(dir) {
			dir = path.Dir(filepath.ToSlash(dir))
		}
	case c.opts.SameAsDoc:
		dir = path.Dir(r.note)
	default:
		dir = path.Join(c.opts.OutputFolder, r.slideName())
	}
	dir = strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(dir)), "/")
	if _, err := c.vault.Abs(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	if dir == "" {
		dir = "."
	}
	r.deckDir = dir
	return nil
}

// deckFile is the deck's vault-relative path. It never equals the note.
func (r *run) deckFile() string {
	stem := fileutil.TrimExt(path.Base(r.note))
	if loc := strings.TrimSpace(r.meta.SlideLocation); fileutil.IsMarkdown(loc) {
		stem = fileutil.TrimExt(path.Base(filepath.ToSlash(loc)))
	}
	file := path.Join(r.deckDir, stem+".md")
	if strings.EqualFold(file, r.note) {
		file = path.Join(r.deckDir, stem+".slides.md")
	}
	return file
}

func (r *run) slideName() string {
	if name := strings.TrimSpace(r.meta.SlideName); name != "" {
		return name
	}
	return fileutil.TrimExt(path.Base(r.note))
}

// title is the synthesized H1 of a multi-title note: first alias, else
// the file name.
func (r *run) title() string {
	for _, a := range r.meta.Aliases {
		if a = strings.TrimSpace(a); a != "" {
			return a
		}
	}
	return fileutil.TrimExt(path.Base(r.note))
}

// tocSlide renders the TOC slide from the design's toc layout, falling back
// to the bare list.
func (r *run) tocSlide(classes pipeline.Classes, chapters []pipeline.Chapter, navOn bool) string {
	a := pipeline.Annotation{Class: classes.TOC}
	if navOn {
		a.Header = pipeline.BuildNav(chapters, 0)
	}
	body, err := r.c.designs.LoadLayout(r.design, "toc")
	if err != nil || !strings.Contains(body, "{{toc}}") {
		body = "{{toc}}"
	}
	return r.c.syntax.Render(a) + "\n\n" + strings.TrimSpace(vault.StripFrontMatter(body))
}

// backCover resolves lastButNotLeast: a vault note contributes its body,
// "layout" or "design" the design's backcover layout, anything else is
// used as literal text.
func (r *run) backCover(ctx context.Context) string {
	value := strings.TrimSpace(r.meta.LastButNotLeast)
	if value == "" {
		return ""
	}
	if backCoverLayoutKeywords[strings.ToLower(value)] {
		layout, err := r.c.designs.LoadLayout(r.design, "backcover")
		if err != nil {
			r.notice("back cover: %v", err)
			return ""
		}
		return vault.StripFrontMatter(layout)
	}
	target := strings.TrimSuffix(strings.TrimPrefix(value, "[["), "]]")
	if rel, err := r.c.vault.Resolve(target); err == nil {
		if content, err := r.c.vault.ReadNote(ctx, rel); err == nil {
			return vault.StripFrontMatter(content)
		}
	}
	return value
}

// fillValues sets the deck-wide placeholder values known without asking.
func (r *run) fillValues(values *pipeline.ReplaceConfig) error {
	c := r.c
	values.Set(pipeline.FieldDesign, r.design)
	values.Set(pipeline.FieldSlideName, r.slideName())
	set := func(name, v string) {
		if v != "" {
			values.Set(name, v)
		}
	}
	set(pipeline.FieldPresenter, c.opts.Presenter)
	set(pipeline.FieldTagline, c.opts.Tagline)
	set(pipeline.FieldSlogan, c.opts.Slogan)
	if c.opts.PresentDate != "" {
		date, err := dateutil.Resolve(c.opts.PresentDate, c.now())
		if err != nil {
			return err
		}
		values.Set(pipeline.FieldPresentDate, date)
	}
	return nil
}

// write stores the deck and its theme. Writers of the same deck are
// serialized.
func (c *Converter) write(r *run, deck string) error {
	rel := r.deckFile()
	abs, err := c.vault.Abs(rel)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	unlock := c.lock(abs)
	defer unlock()

	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(abs), err)
	}
	if err := fileutil.WriteFileAtomic(abs, []byte(deck)); err != nil {
		return err
	}
	r.result.Path = abs

	if c.opts.NoTheme {
		return nil
	}
	css, err := c.designs.LoadStyle(r.design)
	if err != nil {
		return err
	}
	theme := filepath.Join(filepath.Dir(abs), "themes", r.design+".css")
	if err := os.MkdirAll(filepath.Dir(theme), 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(theme), err)
	}
	if err := fileutil.WriteFileAtomic(theme, []byte(css)); err != nil {
		return err
	}
	r.result.Theme = theme
	c.logger.Debug().Str("deck", abs).Str("theme", theme).Msg("deck written")
	return nil
}
