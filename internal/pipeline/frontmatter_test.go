package pipeline

import (
	"strings"
	"testing"
)

func TestBuildDeckMeta(t *testing.T) {
	t.Parallel()

	marp := BuildDeckMeta(DeckOptions{Syntax: Marp, Design: "B", Width: 1280, Height: 720, Aliases: []string{"talk"}})
	if !marp.Marp || marp.Theme != "B" || !marp.SlideMode || marp.CSS != "" {
		t.Errorf("marp meta = %+v", marp)
	}
	if !strings.Contains(marp.Style, "width: 1280px") || !strings.Contains(marp.Style, "height: 720px") {
		t.Errorf("marp style = %q", marp.Style)
	}

	reveal := BuildDeckMeta(DeckOptions{Syntax: Reveal, Design: "C", Width: 960, Height: 700})
	if reveal.Marp || reveal.Theme != "" || reveal.CSS != "themes/C.css" || reveal.Width != 960 {
		t.Errorf("reveal meta = %+v", reveal)
	}
}

func TestEmitFrontMatter(t *testing.T) {
	t.Parallel()

	got, err := EmitFrontMatter(DeckMeta{Marp: true, Theme: "A", Aliases: []string{"x"}}, "\n\n# Title\n")
	if err != nil {
		t.Fatalf("EmitFrontMatter() error = %v", err)
	}
	if !strings.HasPrefix(got, "---\n") || !strings.HasSuffix(got, "---\n\n# Title\n") {
		t.Errorf("EmitFrontMatter() = %q", got)
	}
	for _, want := range []string{"marp: true", "theme: A", "aliases:", "- x"} {
		if !strings.Contains(got, want) {
			t.Errorf("EmitFrontMatter() missing %q in %q", want, got)
		}
	}
	if strings.Contains(got, "header:") {
		t.Errorf("empty header should be omitted: %q", got)
	}
}
