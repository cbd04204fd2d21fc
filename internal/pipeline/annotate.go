package pipeline

import "strings"

// Classes are the default classes of each slide kind after front-matter,
// configuration and built-in defaults have been merged.
type Classes struct {
	TOC       string
	Chapter   string
	Content   string
	Blank     string
	BackCover string
}

// DefaultClasses are the built-in slide classes.
var DefaultClasses = Classes{
	TOC:       "toc",
	Chapter:   "chapter",
	Content:   "content",
	Blank:     "blank",
	BackCover: "backcover",
}

// Merge returns c with every empty field taken from fallback.
func (c Classes) Merge(fallback Classes) Classes {
	pick := func(v, d string) string {
		if strings.TrimSpace(v) != "" {
			return v
		}
		return d
	}
	return Classes{
		TOC:       pick(c.TOC, fallback.TOC),
		Chapter:   pick(c.Chapter, fallback.Chapter),
		Content:   pick(c.Content, fallback.Content),
		Blank:     pick(c.Blank, fallback.Blank),
		BackCover: pick(c.BackCover, fallback.BackCover),
	}
}

// CoverClass is the class of the title slide.
const CoverClass = "cover"

// AnnotateOptions configures the annotation pass.
type AnnotateOptions struct {
	Syntax  Syntax
	Mode    Mode
	Classes Classes
	// VerticalSubPages selects *** instead of --- before sub-pages.
	VerticalSubPages bool
	// NoNavTemplate is the reserved template name that swaps the running
	// navigation header for NoNavHeader.
	NoNavTemplate string
	NoNavHeader   string
	// Nav returns the header of slides in the given chapter. Nil means no
	// per-slide header.
	Nav func(chapter int) string
}

// InsertSeparators puts a --- slide separator before every H2 and H3 that
// opens a slide, unless one is already there. ModeSingleTopic is returned
// unchanged.
func InsertSeparators(text string, mode Mode) string {
	if mode == ModeSingleTopic {
		return text
	}
	lines := splitLines(text)
	mask := FenceMask(lines)
	out := make([]string, 0, len(lines)+len(lines)/4)

	for i, line := range lines {
		if !mask[i] {
			if level, _, ok := parseHeading(line); ok && (level == 2 || level == 3) && !ParseTokens(line).Suppress {
				if prev, ok := lastNonBlank(out); ok && !IsSeparator(prev) {
					out = trimTrailingBlank(out)
					out = append(out, "", "---", "")
				}
			}
		}
		out = append(out, line)
	}
	return joinLines(out)
}

func trimTrailingBlank(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Annotate writes an annotation block before every structural heading and
// strips the inline %%...%% spans from the heading line. Sub-page headings
// (H4-H6 carrying a marker) also receive a page break. It returns the final
// counters, whose Chapter field equals the number of chapters annotated.
func Annotate(text string, opts AnnotateOptions) (string, Counters) {
	lines := splitLines(text)
	mask := FenceMask(lines)
	out := make([]string, 0, len(lines)+len(lines)/2)
	var c Counters

	header := func(template string) (string, string) {
		if template != "" && opts.NoNavTemplate != "" && strings.EqualFold(template, opts.NoNavTemplate) {
			return "", opts.NoNavHeader
		}
		if opts.Nav == nil {
			return template, ""
		}
		return template, opts.Nav(c.Chapter)
	}

	for i, line := range lines {
		if mask[i] {
			out = append(out, line)
			continue
		}
		level, content, ok := parseHeading(line)
		if !ok {
			out = append(out, line)
			continue
		}
		tok := ParseTokens(line)
		clean := CleanLine(line)
		if tok.Suppress {
			out = append(out, clean)
			continue
		}

		var a Annotation
		switch {
		case level == 1:
			a = Annotation{Class: MergeClass(CoverClass, tok), Template: tok.Template}
		case opts.Mode == ModeSingleTopic:
			out = append(out, clean)
			continue
		case level == 2:
			a.ID = c.OnChapter()
			a.Class = MergeClass(opts.Classes.Chapter, tok)
			a.Template, a.Header = header(tok.Template)
		case level == 3:
			a.ID = c.OnPage()
			base := opts.Classes.Content
			if strings.TrimSpace(CleanLine(content)) == "" {
				base = opts.Classes.Blank
			}
			a.Class = MergeClass(base, tok)
			a.Template, a.Header = header(tok.Template)
		case tok.Marked:
			out = trimTrailingBlank(out)
			out = append(out, "", opts.Syntax.PageBreak(opts.VerticalSubPages), "")
			a.ID = c.OnSubPage()
			a.Class = MergeClass(opts.Classes.Content, tok)
			a.Template, a.Header = header(tok.Template)
		default:
			out = append(out, clean)
			continue
		}

		if rendered := opts.Syntax.Render(a); rendered != "" {
			out = append(out, rendered)
		}
		out = append(out, clean)
	}
	return joinLines(out), c
}
