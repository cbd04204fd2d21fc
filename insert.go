package md2slides

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/vault"
)

// InsertableLayouts are the layouts Insert can append.
var InsertableLayouts = []string{"cover", "chapter", "page", "toc", "backcover"}

// Insert renders a base layout of the note's design and appends it to the
// note. Placeholders the layout uses are filled from the configuration;
// the rest, such as {{cName}}, are asked through the Prompter.
func (c *Converter) Insert(ctx context.Context, layout, note string) (string, error) {
	if !slices.Contains(InsertableLayouts, layout) {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownLayout, layout, strings.Join(InsertableLayouts, ", "))
	}
	rel, err := c.noteRel(note)
	if err != nil {
		return "", err
	}
	abs, err := c.vault.Abs(rel)
	if err != nil {
		return "", err
	}
	unlock := c.lock(abs)
	defer unlock()

	content, err := c.vault.ReadNote(ctx, rel)
	if err != nil {
		return "", err
	}
	meta, body, err := ParseNote(pipeline.NormalizeLineEndings(content))
	if err != nil {
		return "", err
	}

	r := &run{c: c, note: rel, meta: meta, result: &Result{Note: rel}}
	if err := r.resolveDesign(ctx); err != nil {
		return "", err
	}
	text, err := c.designs.LoadLayout(r.design, layout)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(vault.StripFrontMatter(text))

	values := &pipeline.ReplaceConfig{}
	if err := r.fillValues(values); err != nil {
		return "", err
	}
	if strings.Contains(text, "{{toc}}") {
		values.Set(pipeline.FieldTOC, pipeline.BuildTOC(pipeline.ScanChapters(body), c.opts.Fragments))
	}
	text, aborted, err := pipeline.Finalize(ctx, text, values, c.prompter)
	if err != nil {
		return "", err
	}
	for _, name := range aborted {
		r.notice("%s left empty: prompt cancelled", name)
	}

	updated := strings.TrimRight(content, "\n") + "\n\n" + text + "\n"
	if err := fileutil.WriteFileAtomic(abs, []byte(updated)); err != nil {
		return "", err
	}
	c.logger.Debug().Str("note", rel).Str("layout", layout).Msg("layout inserted")
	return text, nil
}
