package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnknownSyntax is returned for an unsupported renderer name.
var ErrUnknownSyntax = errors.New("unknown renderer")

// Syntax selects how annotations, images and fragments are spelled for a
// renderer. Both renderers share every pass.
type Syntax int

const (
	// Marp uses HTML comment directives (_id, _class, _header).
	Marp Syntax = iota
	// Reveal uses `<!-- slide ... -->` and `<!-- element ... -->` comments.
	Reveal
)

// ParseSyntax maps a renderer name to a Syntax.
func ParseSyntax(name string) (Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "marp":
		return Marp, nil
	case "reveal":
		return Reveal, nil
	default:
		return Marp, fmt.Errorf("%w: %q", ErrUnknownSyntax, name)
	}
}

func (s Syntax) String() string {
	if s == Reveal {
		return "reveal"
	}
	return "marp"
}

// Annotation is the metadata block placed before a slide heading.
type Annotation struct {
	ID       string
	Class    string
	Template string // template name without brackets
	Header   string
}

func (a Annotation) empty() bool {
	return a.ID == "" && a.Class == "" && a.Template == "" && a.Header == ""
}

// Render spells the annotation for the renderer. An empty annotation
// renders as "".
func (s Syntax) Render(a Annotation) string {
	if a.empty() {
		return ""
	}
	if s == Reveal {
		var b strings.Builder
		b.WriteString("<!-- slide")
		writeAttr(&b, "id", a.ID)
		writeAttr(&b, "class", a.Class)
		if a.Template != "" {
			writeAttr(&b, "template", "[["+a.Template+"]]")
		}
		writeAttr(&b, "data-header", a.Header)
		b.WriteString(" -->")
		return b.String()
	}

	lines := []string{"<!--"}
	if a.ID != "" {
		lines = append(lines, "_id: "+a.ID)
	}
	if a.Class != "" {
		lines = append(lines, "_class: "+a.Class)
	}
	if a.Template != "" {
		lines = append(lines, "_template: [["+a.Template+"]]")
	}
	if a.Header != "" {
		lines = append(lines, "_header: '"+strings.ReplaceAll(a.Header, "'", "''")+"'")
	}
	lines = append(lines, "-->")
	return strings.Join(lines, "\n")
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(strings.ReplaceAll(value, `"`, "&quot;"))
	b.WriteString(`"`)
}

// PageBreak returns the separator token for a sub-page.
func (s Syntax) PageBreak(vertical bool) string {
	if vertical {
		return "***"
	}
	return "---"
}

// Image spells a sized, classed image.
func (s Syntax) Image(path, alt, class string, width, height string) string {
	if s == Reveal {
		img := "![" + alt + "](<" + path + ">)"
		var styles []string
		if width != "" {
			styles = append(styles, "width:"+width+"px")
		}
		if height != "" {
			styles = append(styles, "height:"+height+"px")
		}
		if class == "" && len(styles) == 0 {
			return img
		}
		var b strings.Builder
		b.WriteString(img)
		b.WriteString(" <!-- element")
		writeAttr(&b, "class", class)
		writeAttr(&b, "style", strings.Join(styles, "; "))
		b.WriteString(" -->")
		return b.String()
	}

	var tokens []string
	for _, t := range []string{alt, class} {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	if width != "" {
		tokens = append(tokens, "w:"+width)
	}
	if height != "" {
		tokens = append(tokens, "h:"+height)
	}
	return "![" + strings.Join(tokens, " ") + "](<" + path + ">)"
}

const fragmentComment = `<!-- element class="fragment" -->`

// FragmentItem spells a list item revealed step by step.
func (s Syntax) FragmentItem(indent, text string) string {
	if s == Reveal {
		return indent + "- " + text + " " + fragmentComment
	}
	return indent + "* " + text
}

// SupportsParagraphFragments reports whether plain paragraphs can be
// revealed step by step.
func (s Syntax) SupportsParagraphFragments() bool {
	return s == Reveal
}

var (
	marpDirective = regexp.MustCompile(`(?m)^[ \t]*_(id|class|template|header):[ \t]*(.*?)[ \t]*$`)
	revealAttr    = regexp.MustCompile(`(id|class|template|data-header)="([^"]*)"`)
)

// ParseAnnotation reads the annotation from the first HTML comment of a
// slide, in either spelling. A slide without one yields the zero value.
func ParseAnnotation(slide string) Annotation {
	comment := htmlComment.FindString(slide)
	if comment == "" {
		return Annotation{}
	}
	var a Annotation
	set := func(key, value string) {
		switch key {
		case "id":
			a.ID = value
		case "class":
			a.Class = value
		case "template":
			a.Template = linkTarget(value)
		case "header", "data-header":
			a.Header = value
		}
	}
	if strings.HasPrefix(strings.TrimSpace(strings.TrimPrefix(comment, "<!--")), "slide") {
		for _, m := range revealAttr.FindAllStringSubmatch(comment, -1) {
			set(m[1], strings.ReplaceAll(m[2], "&quot;", `"`))
		}
		return a
	}
	for _, m := range marpDirective.FindAllStringSubmatch(comment, -1) {
		value := m[2]
		if m[1] == "header" && len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
			value = strings.ReplaceAll(value[1:len(value)-1], "''", "'")
		}
		set(m[1], value)
	}
	return a
}
