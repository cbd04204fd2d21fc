package pipeline

// Notes:
// - Expected outputs are spelled out in full for the Marp syntax; the Reveal
//   cases check the single-line comment form only.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestInsertSeparators - Slide boundaries before H2 and H3
// ---------------------------------------------------------------------------

func TestInsertSeparators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		mode Mode
		want string
	}{
		{
			name: "before chapters and pages",
			text: "# T\n\nintro\n## A\ntext\n### P\nx",
			mode: ModeChapterPage,
			want: "# T\n\nintro\n\n---\n\n## A\ntext\n\n---\n\n### P\nx",
		},
		{
			name: "existing separator kept single",
			text: "# T\n\n---\n\n## A",
			mode: ModeChapterOnly,
			want: "# T\n\n---\n\n## A",
		},
		{
			name: "suppressed heading stays inline",
			text: "# T\n## Aside %%@%%",
			mode: ModeChapterOnly,
			want: "# T\n## Aside %%@%%",
		},
		{
			name: "fenced heading ignored",
			text: "# T\n```\n## code\n```",
			mode: ModeChapterOnly,
			want: "# T\n```\n## code\n```",
		},
		{
			name: "single topic unchanged",
			text: "# T\n\nbody\n### not structural",
			mode: ModeSingleTopic,
			want: "# T\n\nbody\n### not structural",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InsertSeparators(tt.text, tt.mode); got != tt.want {
				t.Errorf("InsertSeparators() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAnnotate - Metadata blocks before structural headings
// ---------------------------------------------------------------------------

func TestAnnotate_Marp(t *testing.T) {
	t.Parallel()

	text := "# T\n\n---\n\n## A %%wide%%\n\n---\n\n### P\n\n#### Sub %%---%%\n"
	want := "<!--\n_class: cover\n-->\n# T\n\n---\n\n" +
		"<!--\n_id: c1\n_class: chapter wide\n-->\n## A\n\n---\n\n" +
		"<!--\n_id: c1p1\n_class: content\n-->\n### P\n\n---\n\n" +
		"<!--\n_id: c1p1s1\n_class: content\n-->\n#### Sub\n"

	got, c := Annotate(text, AnnotateOptions{
		Syntax:  Marp,
		Mode:    ModeChapterPage,
		Classes: DefaultClasses,
	})
	if got != want {
		t.Errorf("Annotate() =\n%s\nwant\n%s", got, want)
	}
	if c.Chapter != 1 {
		t.Errorf("Counters.Chapter = %d, want 1", c.Chapter)
	}
}

func TestAnnotate_Reveal(t *testing.T) {
	t.Parallel()

	text := "# T\n\n---\n\n## A\n\n---\n\n### P %%!solo%%\n\n#### Sub %%x%%"
	got, _ := Annotate(text, AnnotateOptions{
		Syntax:           Reveal,
		Mode:             ModeChapterPage,
		Classes:          DefaultClasses,
		VerticalSubPages: true,
	})

	for _, want := range []string{
		`<!-- slide class="cover" -->`,
		`<!-- slide id="c1" class="chapter" -->`,
		`<!-- slide id="c1p1" class="solo" -->`,
		"***\n\n<!-- slide id=\"c1p1s1\" class=\"content x\" -->\n#### Sub",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Annotate() missing %q in\n%s", want, got)
		}
	}
}

func TestAnnotate_Headers(t *testing.T) {
	t.Parallel()

	text := "# T\n\n---\n\n## A\n\n---\n\n### P %%[[tpl-no-nav]]%%\n\n---\n\n### Q %%[[two-columns]]%%"
	got, _ := Annotate(text, AnnotateOptions{
		Syntax:        Marp,
		Mode:          ModeChapterPage,
		Classes:       DefaultClasses,
		NoNavTemplate: "tpl-no-nav",
		NoNavHeader:   "Tag · Slogan",
		Nav:           func(chapter int) string { return "NAV" + string(rune('0'+chapter)) },
	})

	for _, want := range []string{
		"_id: c1\n_class: chapter\n_header: 'NAV1'",
		"_id: c1p1\n_class: content\n_header: 'Tag · Slogan'",
		"_id: c1p2\n_class: content\n_template: [[two-columns]]\n_header: 'NAV1'",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Annotate() missing %q in\n%s", want, got)
		}
	}
	if strings.Contains(got, "tpl-no-nav") {
		t.Errorf("no-nav template should be dropped:\n%s", got)
	}
}

func TestAnnotate_EdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("blank page class", func(t *testing.T) {
		t.Parallel()

		got, _ := Annotate("# T\n## A\n### %%bg%%", AnnotateOptions{Syntax: Marp, Mode: ModeChapterPage, Classes: DefaultClasses})
		if !strings.Contains(got, "_id: c1p1\n_class: blank bg") {
			t.Errorf("Annotate() =\n%s", got)
		}
	})

	t.Run("suppressed chapter", func(t *testing.T) {
		t.Parallel()

		got, c := Annotate("# T\n## Aside %%@%%\n## A", AnnotateOptions{Syntax: Marp, Mode: ModeChapterOnly, Classes: DefaultClasses})
		if !strings.Contains(got, "\n## Aside\n<!--\n_id: c1\n") {
			t.Errorf("Annotate() =\n%s", got)
		}
		if c.Chapter != 1 {
			t.Errorf("Counters.Chapter = %d, want 1", c.Chapter)
		}
	})

	t.Run("unmarked deep heading", func(t *testing.T) {
		t.Parallel()

		got, _ := Annotate("# T\n## A\n#### plain", AnnotateOptions{Syntax: Marp, Mode: ModeChapterOnly, Classes: DefaultClasses})
		if strings.Contains(got, "s1") || !strings.HasSuffix(got, "\n#### plain") {
			t.Errorf("Annotate() =\n%s", got)
		}
	})

	t.Run("single topic keeps only the cover", func(t *testing.T) {
		t.Parallel()

		got, _ := Annotate("# T\n### x %%wide%%", AnnotateOptions{Syntax: Marp, Mode: ModeSingleTopic, Classes: DefaultClasses})
		if got != "<!--\n_class: cover\n-->\n# T\n### x" {
			t.Errorf("Annotate() = %q", got)
		}
	})

	t.Run("fenced heading untouched", func(t *testing.T) {
		t.Parallel()

		text := "# T\n```\n## code %%x%%\n```"
		got, c := Annotate(text, AnnotateOptions{Syntax: Marp, Mode: ModeChapterOnly, Classes: DefaultClasses})
		if !strings.HasSuffix(got, "```\n## code %%x%%\n```") || c.Chapter != 0 {
			t.Errorf("Annotate() = %q, chapters %d", got, c.Chapter)
		}
	})
}

func TestClasses_Merge(t *testing.T) {
	t.Parallel()

	got := Classes{Chapter: "part", TOC: " "}.Merge(DefaultClasses)
	if got.Chapter != "part" || got.TOC != "toc" || got.Content != "content" {
		t.Errorf("Merge() = %+v", got)
	}
}
