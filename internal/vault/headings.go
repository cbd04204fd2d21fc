package vault

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a note's heading index. Offsets are byte offsets
// into the content passed to Headings.
type Heading struct {
	Level int
	Text  string
	Start int // start of the heading line
	End   int // start of the next heading of the same or higher level, or len(content)
}

var headingParser = goldmark.New().Parser()

// Headings returns the heading index of a note body. Headings inside fenced
// code are ignored because goldmark parses them as code.
func Headings(content string) []Heading {
	source := []byte(content)
	doc := headingParser.Parse(text.NewReader(source))

	var headings []Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		first := h.Lines().At(0)
		var b strings.Builder
		for i := 0; i < h.Lines().Len(); i++ {
			seg := h.Lines().At(i)
			b.Write(seg.Value(source))
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  strings.TrimSpace(b.String()),
			Start: strings.LastIndexByte(content[:first.Start], '\n') + 1,
		})
	}

	for i := range headings {
		headings[i].End = len(content)
		for j := i + 1; j < len(headings); j++ {
			if headings[j].Level <= headings[i].Level {
				headings[i].End = headings[j].Start
				break
			}
		}
	}
	return headings
}

// HeadingSection returns the section of content introduced by the heading
// named heading (case-insensitive, inline %%comments%% ignored). For nested
// anchors such as "Part#Detail" the last component is used. Front-matter is
// stripped first.
func HeadingSection(content, heading string) (string, error) {
	if i := strings.LastIndexByte(heading, '#'); i >= 0 {
		heading = heading[i+1:]
	}
	want := normalizeHeading(heading)
	body := StripFrontMatter(content)
	for _, h := range Headings(body) {
		if normalizeHeading(h.Text) == want {
			return strings.TrimRight(SubRange(body, h.Start, h.End), "\n") + "\n", nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrHeadingAbsent, heading)
}

func normalizeHeading(s string) string {
	for {
		start := strings.Index(s, "%%")
		if start < 0 {
			break
		}
		end := strings.Index(s[start+2:], "%%")
		if end < 0 {
			break
		}
		s = s[:start] + s[start+2+end+2:]
	}
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
