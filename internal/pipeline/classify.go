package pipeline

import (
	"regexp"
	"strings"
)

// Mode is the structural classification of a note, derived once from its
// heading counts.
type Mode int

const (
	// ModeDefault runs the full pipeline.
	ModeDefault Mode = 0
	// ModeChapterPage has one H1, chapters (H2) and pages (H3).
	ModeChapterPage Mode = 1
	// ModeChapterOnly has one H1 and chapters without pages.
	ModeChapterOnly Mode = 2
	// ModeMultiTitle has several H1 and is renormalized first.
	ModeMultiTitle Mode = 3
	// ModeSingleTopic has one H1 and nothing below; no chapter, page or TOC machinery.
	ModeSingleTopic Mode = 4
)

var headingLine = regexp.MustCompile(`^(#{1,6})(?:[ \t]+(.*?))?[ \t]*$`)

// parseHeading returns the level and raw text of an ATX heading line.
func parseHeading(line string) (level int, text string, ok bool) {
	m := headingLine.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}

// HeadingCounts holds the number of headings per level; index 0 is unused.
type HeadingCounts [7]int

// CountHeadings counts ATX headings outside fenced blocks.
func CountHeadings(text string) HeadingCounts {
	var c HeadingCounts
	lines := splitLines(text)
	mask := FenceMask(lines)
	for i, line := range lines {
		if mask[i] {
			continue
		}
		if level, _, ok := parseHeading(line); ok {
			c[level]++
		}
	}
	return c
}

// Classify derives the Mode from heading counts:
//
//	h1 == 1, h2 > 0           -> 1 when h3 > 0, else 2
//	h1 == 1, h2..h6 all zero  -> 4
//	h1 > 1                    -> 3
//	otherwise                 -> 0
func Classify(c HeadingCounts) Mode {
	switch {
	case c[1] == 1 && c[2] > 0:
		if c[3] > 0 {
			return ModeChapterPage
		}
		return ModeChapterOnly
	case c[1] == 1 && c[2]+c[3]+c[4]+c[5]+c[6] == 0:
		return ModeSingleTopic
	case c[1] > 1:
		return ModeMultiTitle
	default:
		return ModeDefault
	}
}

// Renormalize demotes every heading one level and prepends a synthesized
// H1 title. An H6 has no lower level and becomes an inline styled span.
func Renormalize(text, title string) string {
	body := mapUnmasked(text, func(line string) string {
		level, content, ok := parseHeading(line)
		if !ok {
			return line
		}
		if level == 6 {
			return `<span class="h7">` + content + `</span>`
		}
		return strings.Repeat("#", level+1) + " " + content
	})
	return "# " + strings.TrimSpace(title) + "\n\n" + strings.TrimLeft(body, "\n")
}
