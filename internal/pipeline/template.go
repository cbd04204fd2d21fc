package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-md2slides/internal/vault"
)

// MaxTemplateHops bounds how many nested template references a slide may
// follow.
const MaxTemplateHops = 9

// ContentPlaceholder is replaced by the slide body.
const ContentPlaceholder = "<% content %>"

// ErrTemplateOverrun is returned when a template chain exceeds
// MaxTemplateHops. The affected slide is left unexpanded.
var ErrTemplateOverrun = errors.New("template chain too deep")

// TemplateSource loads a template by name. ok is false when no template of
// that name exists.
type TemplateSource interface {
	LoadTemplate(name string) (content string, ok bool)
}

var (
	htmlComment  = regexp.MustCompile(`(?s)<!--.*?-->`)
	templateRef  = regexp.MustCompile(`(?:_template:[ \t]*|template=")\[\[([^\]|#]+)(?:[|#][^\]]*)?\]\]"?`)
	templateLine = regexp.MustCompile(`(?m)^[ \t]*_template:[ \t]*\[\[[^\]]*\]\][ \t]*\n?`)
	templateAttr = regexp.MustCompile(`[ \t]*template="\[\[[^\]]*\]\]"`)
	slotRef      = regexp.MustCompile(`<%(\??)[ \t]*([\w-]+)[ \t]*%>`)
	slideID      = regexp.MustCompile(`(?:_id:[ \t]*|\bid=")c(\d+)(?:p(\d+))?`)
)

// SlideOptions configures ExpandSlides.
type SlideOptions struct {
	Templates TemplateSource
	// Footnotes are the definitions collected from the whole note.
	Footnotes map[string]string
	// Chapters supply {{cName}} for a slide's chapter.
	Chapters []Chapter
}

// SlideWarning reports a slide that could not be expanded.
type SlideWarning struct {
	Slide int // zero-based slide index
	Err   error
}

// ExpandSlides processes the deck slide by slide: template references are
// expanded, ::: blocks are bound to <% name %> slots, footnotes are
// numbered and the per-slide placeholders {{cIndex}}, {{pIndex}} and
// {{cName}} are filled in from the slide id.
func ExpandSlides(text string, opts SlideOptions) (string, []SlideWarning) {
	slides, seps := SplitSlides(text)
	var warnings []SlideWarning
	for i, slide := range slides {
		expanded, err := ExpandTemplate(slide, opts.Templates)
		if err != nil {
			warnings = append(warnings, SlideWarning{Slide: i, Err: err})
		}
		expanded = RenderFootnotes(expanded, opts.Footnotes)
		slides[i] = fillSlideValues(expanded, opts.Chapters)
	}
	return JoinSlides(slides, seps), warnings
}

// ExpandTemplate applies the template referenced by the slide's leading
// comment. A slide without a reference, or whose template cannot be loaded,
// is returned unchanged. On ErrTemplateOverrun the original slide is
// returned with the error.
func ExpandTemplate(slide string, src TemplateSource) (string, error) {
	head, body, name := splitTemplateRef(slide)
	if name == "" || src == nil {
		return slide, nil
	}

	composed := body
	applied := false
	for hop := 0; name != ""; hop++ {
		if hop >= MaxTemplateHops {
			return slide, fmt.Errorf("%w: %d hops from %q", ErrTemplateOverrun, MaxTemplateHops, name)
		}
		tpl, ok := src.LoadTemplate(name)
		if !ok {
			break
		}
		applied = true
		tplHead, tplBody, next := splitTemplateRef(strings.TrimLeft(vault.StripFrontMatter(tpl), "\n"))
		if next == "" {
			tplBody = tplHead + tplBody
		}
		composed = strings.ReplaceAll(tplBody, ContentPlaceholder, strings.Trim(composed, "\n"))
		name = next
	}
	if !applied {
		return slide, nil
	}
	if head != "" && !strings.HasSuffix(head, "\n") {
		head += "\n"
	}
	trailing := body[len(strings.TrimRight(body, "\n")):]
	return head + strings.Trim(bindSlots(composed), "\n") + trailing, nil
}

// splitTemplateRef locates the first HTML comment of slide and, when it
// carries a template reference, returns the text through that comment with
// the reference removed, the remainder, and the template name.
func splitTemplateRef(slide string) (head, body, name string) {
	loc := htmlComment.FindStringIndex(slide)
	if loc == nil {
		return "", slide, ""
	}
	comment := slide[loc[0]:loc[1]]
	m := templateRef.FindStringSubmatch(comment)
	if m == nil {
		return "", slide, ""
	}
	cleaned := templateAttr.ReplaceAllString(templateLine.ReplaceAllString(comment, ""), "")
	if isEmptyComment(cleaned) {
		cleaned = ""
	}
	head = slide[:loc[0]] + cleaned
	body = slide[loc[1]:]
	if cleaned == "" {
		head = strings.TrimRight(head, " \t")
		body = strings.TrimLeft(body, "\n")
	}
	return head, body, strings.TrimSpace(m[1])
}

func isEmptyComment(c string) bool {
	inner := strings.TrimSuffix(strings.TrimPrefix(c, "<!--"), "-->")
	inner = strings.TrimSpace(inner)
	return inner == "" || inner == "slide"
}

// bindSlots moves every ::: name block referenced by a <% name %> or
// <%? name %> slot into that slot. Unbound slots are emptied; a line that
// held only an unbound optional slot is removed.
func bindSlots(text string) string {
	want := make(map[string]bool)
	scan := splitLines(text)
	scanMask := FenceMask(scan)
	for i, line := range scan {
		if scanMask[i] {
			continue
		}
		for _, m := range slotRef.FindAllStringSubmatch(line, -1) {
			if name := m[2]; name != "content" && name != "footnotes" {
				want[name] = true
			}
		}
	}
	if len(want) == 0 {
		return text
	}
	text, blocks := extractBlocks(text, want)

	lines := splitLines(text)
	mask := FenceMask(lines)
	out := lines[:0]
	for i, line := range lines {
		if mask[i] {
			out = append(out, line)
			continue
		}
		if m := slotRef.FindStringSubmatch(strings.TrimSpace(line)); m != nil && m[0] == strings.TrimSpace(line) {
			if _, bound := blocks[m[2]]; !bound && want[m[2]] && m[1] == "?" {
				continue
			}
		}
		out = append(out, slotRef.ReplaceAllStringFunc(line, func(s string) string {
			m := slotRef.FindStringSubmatch(s)
			if !want[m[2]] {
				return s
			}
			return blocks[m[2]]
		}))
	}
	return joinLines(out)
}

// fillSlideValues substitutes the chapter and page placeholders from the
// slide's own id.
func fillSlideValues(slide string, chapters []Chapter) string {
	if !strings.Contains(slide, "{{") {
		return slide
	}
	m := slideID.FindStringSubmatch(slide)
	if m == nil {
		return slide
	}
	chapter, _ := strconv.Atoi(m[1])
	values := ReplaceConfig{}
	values.Set(FieldCIndex, m[1])
	if m[2] != "" {
		values.Set(FieldPIndex, m[2])
	}
	for _, c := range chapters {
		if c.Index == chapter {
			values.Set(FieldCName, c.Title)
		}
	}
	return values.Apply(slide)
}

// SplitSlides cuts text at slide separators outside fences. seps holds the
// separator lines; len(seps) == len(slides)-1.
func SplitSlides(text string) (slides, seps []string) {
	lines := splitLines(text)
	mask := FenceMask(lines)
	start := 0
	for i, line := range lines {
		if mask[i] || !IsSeparator(line) {
			continue
		}
		slides = append(slides, joinLines(lines[start:i]))
		seps = append(seps, line)
		start = i + 1
	}
	slides = append(slides, joinLines(lines[start:]))
	return slides, seps
}

// JoinSlides is the inverse of SplitSlides.
func JoinSlides(slides, seps []string) string {
	var b strings.Builder
	for i, s := range slides {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(seps[i-1])
			b.WriteString("\n")
		}
		b.WriteString(s)
	}
	return b.String()
}
