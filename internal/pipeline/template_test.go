package pipeline

// Notes:
// - Templates come from an in-memory map; loading from the vault and the
//   design assets is covered by the root package tests.

import (
	"errors"
	"strings"
	"testing"
)

type fakeTemplates map[string]string

func (f fakeTemplates) LoadTemplate(name string) (string, bool) {
	s, ok := f[name]
	return s, ok
}

var testTemplates = fakeTemplates{
	"two-columns": "<div class=\"columns\">\n<div>\n\n<% content %>\n\n</div>\n<div>\n\n<%? right %>\n\n</div>\n</div>\n",
	"framed":      "---\ndescription: frame\n---\n<!-- slide template=\"[[two-columns]]\" -->\n<div class=\"frame\">\n\n<% content %>\n\n</div>\n",
	"loop":        "<!-- slide template=\"[[loop]]\" -->\n<% content %>",
	"ping":        "<!-- slide template=\"[[pong]]\" -->\nping <% content %>",
	"pong":        "<!-- slide template=\"[[ping]]\" -->\npong <% content %>",
	"required":    "<% title %>\n\n<% content %>",
}

// ---------------------------------------------------------------------------
// TestExpandTemplate - Template references are expanded in place
// ---------------------------------------------------------------------------

func TestExpandTemplate_RevealSlots(t *testing.T) {
	t.Parallel()

	slide := "\n<!-- slide id=\"c1p1\" class=\"content\" template=\"[[two-columns]]\" -->\n### P\nLeft\n\n::: right\nRight side\n:::\n"

	got, err := ExpandTemplate(slide, testTemplates)
	if err != nil {
		t.Fatalf("ExpandTemplate() error = %v", err)
	}
	if !strings.HasPrefix(got, "\n<!-- slide id=\"c1p1\" class=\"content\" -->\n<div class=\"columns\">") {
		t.Errorf("head not kept:\n%s", got)
	}
	if strings.Count(got, "Right side") != 1 || strings.Contains(got, ":::") || strings.Contains(got, "<%") {
		t.Errorf("slot not bound:\n%s", got)
	}
	if !strings.Contains(got, "### P\nLeft") || !strings.HasSuffix(got, "</div>\n") {
		t.Errorf("content not placed:\n%s", got)
	}
	if strings.Index(got, "Left") > strings.Index(got, "Right side") {
		t.Errorf("content should come before the right column:\n%s", got)
	}
}

func TestExpandTemplate_OptionalSlotRemoved(t *testing.T) {
	t.Parallel()

	slide := "<!-- slide template=\"[[two-columns]]\" -->\n### P\nonly left"

	got, err := ExpandTemplate(slide, testTemplates)
	if err != nil {
		t.Fatalf("ExpandTemplate() error = %v", err)
	}
	if strings.Contains(got, "<%") || strings.Contains(got, "template=") {
		t.Errorf("ExpandTemplate() =\n%s", got)
	}
	if !strings.HasPrefix(got, "<div class=\"columns\">") {
		t.Errorf("empty annotation should be dropped:\n%s", got)
	}
}

func TestExpandTemplate_RequiredSlotEmptied(t *testing.T) {
	t.Parallel()

	got, err := ExpandTemplate("<!-- slide template=\"[[required]]\" -->\nbody", testTemplates)
	if err != nil {
		t.Fatalf("ExpandTemplate() error = %v", err)
	}
	if got != "body" {
		t.Errorf("ExpandTemplate() = %q, want %q", got, "body")
	}
}

func TestExpandTemplate_FencedSlotIsCode(t *testing.T) {
	t.Parallel()

	slide := "<!-- slide template=\"[[two-columns]]\" -->\n```\n<% right %>\n```\n\n::: right\nRight side\n:::"

	got, err := ExpandTemplate(slide, testTemplates)
	if err != nil {
		t.Fatalf("ExpandTemplate() error = %v", err)
	}
	if !strings.Contains(got, "```\n<% right %>\n```") {
		t.Errorf("fenced slot rewritten:\n%s", got)
	}
	if strings.Count(got, "Right side") != 1 || strings.Contains(got, ":::") {
		t.Errorf("template slot not bound:\n%s", got)
	}
}

func TestExpandTemplate_MarpChain(t *testing.T) {
	t.Parallel()

	slide := "<!--\n_id: c1p1\n_class: content\n_template: [[framed]]\n-->\n### P\nbody\n"

	got, err := ExpandTemplate(slide, testTemplates)
	if err != nil {
		t.Fatalf("ExpandTemplate() error = %v", err)
	}
	if !strings.HasPrefix(got, "<!--\n_id: c1p1\n_class: content\n-->\n<div class=\"columns\">") {
		t.Errorf("ExpandTemplate() =\n%s", got)
	}
	columns, frame := strings.Index(got, "columns"), strings.Index(got, "frame")
	if frame < 0 || columns > frame {
		t.Errorf("outer template should wrap inner one:\n%s", got)
	}
	if strings.Contains(got, "description:") {
		t.Errorf("template front-matter leaked:\n%s", got)
	}
}

func TestExpandTemplate_Unchanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		slide string
	}{
		{"no comment", "### P\nbody"},
		{"comment without template", "<!-- slide id=\"c1\" -->\n## A"},
		{"missing template", "<!-- slide template=\"[[nowhere]]\" -->\n## A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExpandTemplate(tt.slide, testTemplates)
			if err != nil || got != tt.slide {
				t.Errorf("ExpandTemplate() = %q, %v; want unchanged", got, err)
			}
		})
	}
}

func TestExpandTemplate_CycleTerminates(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"loop", "ping"} {
		slide := "<!-- slide template=\"[[" + name + "]]\" -->\n## A"
		got, err := ExpandTemplate(slide, testTemplates)
		if !errors.Is(err, ErrTemplateOverrun) {
			t.Errorf("%s: error = %v, want ErrTemplateOverrun", name, err)
		}
		if got != slide {
			t.Errorf("%s: slide should be returned unexpanded, got %q", name, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestExpandSlides - Per-slide templates, footnotes and values
// ---------------------------------------------------------------------------

func TestExpandSlides(t *testing.T) {
	t.Parallel()

	text := "<!--\n_class: cover\n-->\n# T\n\n---\n\n" +
		"<!--\n_id: c2p3\n_class: content\n-->\n### P {{cName}} {{cIndex}}.{{pIndex}}\nSee[^a] {{presenter}}\n\n---\n\n" +
		"<!--\n_id: c2p4\n_class: content\n_template: [[loop]]\n-->\n### Q"

	got, warnings := ExpandSlides(text, SlideOptions{
		Templates: testTemplates,
		Footnotes: map[string]string{"a": "Alpha"},
		Chapters:  []Chapter{{1, "One"}, {2, "Two"}},
	})

	for _, want := range []string{
		"### P Two 2.3",
		"See<sup>1</sup> {{presenter}}",
		"1. Alpha",
		"\n---\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ExpandSlides() missing %q in\n%s", want, got)
		}
	}
	if len(warnings) != 1 || warnings[0].Slide != 2 || !errors.Is(warnings[0].Err, ErrTemplateOverrun) {
		t.Errorf("warnings = %+v, want one overrun on slide 2", warnings)
	}
}

func TestSplitSlides_RoundTrip(t *testing.T) {
	t.Parallel()

	texts := []string{
		"a\n---\nb",
		"a\n\n---\n\nb\n\n***\n\nc\n",
		"```\n---\n```\nx",
		"",
	}
	for _, text := range texts {
		slides, seps := SplitSlides(text)
		if len(seps) != len(slides)-1 {
			t.Errorf("SplitSlides(%q): %d slides, %d seps", text, len(slides), len(seps))
		}
		if got := JoinSlides(slides, seps); got != text {
			t.Errorf("JoinSlides(SplitSlides(%q)) = %q", text, got)
		}
	}
	if slides, _ := SplitSlides("```\n---\n```\nx"); len(slides) != 1 {
		t.Errorf("fenced separator split the slide: %q", slides)
	}
}
