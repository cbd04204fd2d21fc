package pipeline

import (
	"html"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

// Chapter is a qualifying H2 heading, numbered in document order.
type Chapter struct {
	Index int
	Title string // visible text, inline annotations removed
}

// ID returns the anchor assigned by the annotation pass, c<Index>.
func (c Chapter) ID() string {
	return "c" + strconv.Itoa(c.Index)
}

// ScanChapters lists the H2 headings that become chapters. Headings marked
// %%@%% and headings inside fences are skipped.
func ScanChapters(text string) []Chapter {
	lines := splitLines(text)
	mask := FenceMask(lines)
	var chapters []Chapter
	for i, line := range lines {
		if mask[i] {
			continue
		}
		level, content, ok := parseHeading(line)
		if !ok || level != 2 || ParseTokens(line).Suppress {
			continue
		}
		chapters = append(chapters, Chapter{
			Index: len(chapters) + 1,
			Title: strings.TrimSpace(CleanLine(content)),
		})
	}
	return chapters
}

// IDMaker turns heading text into a URL-safe token: trimmed, whitespace
// runs become hyphens, punctuation other than - and _ is dropped, the rest
// is percent-encoded and lowercased.
func IDMaker(s string) string {
	s = strings.Join(strings.Fields(s), "-")
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) && r != '-' && r != '_' {
			return -1
		}
		if unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(url.PathEscape(s))
}

// BuildTOC renders the Markdown list of the TOC slide. With fragments the
// items use the + marker.
func BuildTOC(chapters []Chapter, fragments bool) string {
	marker := "-"
	if fragments {
		marker = "+"
	}
	lines := make([]string, 0, len(chapters))
	for _, c := range chapters {
		lines = append(lines, marker+" ["+c.Title+"](#"+c.ID()+")")
	}
	return strings.Join(lines, "\n")
}

// BuildNav renders the navigation header. The chapter whose index equals
// active gets the "active" class; pass 0 for none.
func BuildNav(chapters []Chapter, active int) string {
	if len(chapters) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, c := range chapters {
		class := IDMaker(c.Title)
		if c.Index == active {
			class = strings.TrimSpace(class + " active")
		}
		b.WriteString(`<li class="` + html.EscapeString(class) + `">`)
		b.WriteString(`<a href="#` + c.ID() + `">` + html.EscapeString(c.Title) + `</a>`)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// InsertTOC places slide before the nth slide separator (n < 1 counts as
// 1). When the document has fewer separators the slide is prepended.
func InsertTOC(text, slide string, n int) string {
	n = max(n, 1)
	lines := splitLines(text)
	mask := FenceMask(lines)

	seen := 0
	for i, line := range lines {
		if mask[i] || !IsSeparator(line) {
			continue
		}
		seen++
		if seen == n {
			out := make([]string, 0, len(lines)+4)
			out = append(out, lines[:i]...)
			out = append(out, "---", "", slide, "")
			out = append(out, lines[i:]...)
			return joinLines(out)
		}
	}
	return slide + "\n\n---\n\n" + text
}
