package pipeline

import (
	"regexp"
	"strings"
)

// commentSpan matches an inline %%...%% annotation.
var commentSpan = regexp.MustCompile(`%%([\s\S]*?)%%`)

// Tokens are the inline annotations found on a heading line.
//
//	%%a b%%       additive classes
//	%%!a%%        replacement class
//	%%[[Name]]%%  template override
//	%%@%%         not a slide boundary
//	%%---%%       forced sub-page break
//
// Spans starting with # or | are ignored.
type Tokens struct {
	Additive   []string
	Replace    string
	HasReplace bool
	Template   string
	Suppress   bool
	Break      bool
	Marked     bool // at least one %%...%% span
}

// ParseTokens extracts the inline annotations of line.
func ParseTokens(line string) Tokens {
	var t Tokens
	for _, m := range commentSpan.FindAllStringSubmatch(line, -1) {
		t.Marked = true
		body := strings.TrimSpace(m[1])
		switch {
		case body == "@":
			t.Suppress = true
		case strings.HasPrefix(body, "---"):
			t.Break = true
		case strings.HasPrefix(body, "!"):
			t.Replace = strings.TrimSpace(body[1:])
			t.HasReplace = true
		case strings.HasPrefix(body, "[["):
			t.Template = linkTarget(body)
		case strings.HasPrefix(body, "#"), strings.HasPrefix(body, "|"):
		default:
			t.Additive = append(t.Additive, strings.Fields(body)...)
		}
	}
	return t
}

// linkTarget extracts "Name" from "[[Name|alias]]", "[[Name#h]]" or
// "[[Name".
func linkTarget(s string) string {
	s = strings.TrimPrefix(strings.TrimSpace(s), "[[")
	if i := strings.Index(s, "]]"); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexAny(s, "|#"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// MergeClass combines a default class with the tokens. A replacement wins
// over everything; otherwise additive classes follow the default.
func MergeClass(def string, t Tokens) string {
	if t.HasReplace {
		return t.Replace
	}
	parts := strings.Fields(def)
	parts = append(parts, t.Additive...)
	return strings.Join(parts, " ")
}

// CleanLine removes every %%...%% span and trailing blanks from line.
func CleanLine(line string) string {
	return strings.TrimRight(commentSpan.ReplaceAllString(line, ""), " \t")
}
