package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// FootnotesPlaceholder marks where a slide's endnotes go.
const FootnotesPlaceholder = "<%? footnotes %>"

var (
	footnoteDef = regexp.MustCompile(`^\[\^([^\]\s]+)\]:[ \t]?(.*)$`)
	footnoteRef = regexp.MustCompile(`\[\^([^\]\s]+)\]`)
)

// CollectFootnotes removes every footnote definition outside fences and
// returns the remaining text with the definitions by id.
func CollectFootnotes(text string) (string, map[string]string) {
	lines := splitLines(text)
	mask := FenceMask(lines)
	defs := make(map[string]string)
	out := lines[:0]
	for i, line := range lines {
		if !mask[i] {
			if m := footnoteDef.FindStringSubmatch(line); m != nil {
				defs[m[1]] = strings.TrimSpace(m[2])
				continue
			}
		}
		out = append(out, line)
	}
	return joinLines(out), defs
}

// RenderFootnotes numbers the references of one slide in order of first
// use, replaces them with <sup>n</sup> and writes the endnote list at
// FootnotesPlaceholder, or at the end of the slide. References without a
// definition stay literal.
func RenderFootnotes(slide string, defs map[string]string) string {
	numbers := make(map[string]int)
	var order []string

	body := mapUnmasked(slide, func(line string) string {
		return footnoteRef.ReplaceAllStringFunc(line, func(m string) string {
			id := footnoteRef.FindStringSubmatch(m)[1]
			if _, ok := defs[id]; !ok {
				return m
			}
			n, seen := numbers[id]
			if !seen {
				order = append(order, id)
				n = len(order)
				numbers[id] = n
			}
			return "<sup>" + strconv.Itoa(n) + "</sup>"
		})
	})

	list := ""
	if len(order) > 0 {
		items := make([]string, len(order))
		for i, id := range order {
			items[i] = strconv.Itoa(i+1) + ". " + defs[id]
		}
		list = "<div class=\"footnotes\">\n\n" + strings.Join(items, "\n") + "\n\n</div>"
	}

	if containsUnmasked(body, FootnotesPlaceholder) {
		return removePlaceholderLine(body, FootnotesPlaceholder, list)
	}
	if list == "" {
		return body
	}
	trimmed := strings.TrimRight(body, "\n")
	return trimmed + "\n\n" + list + body[len(trimmed):]
}

// removePlaceholderLine substitutes token with value outside fenced code.
// A line holding only the token is dropped entirely when value is empty.
func removePlaceholderLine(text, token, value string) string {
	lines := splitLines(text)
	mask := FenceMask(lines)
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		switch {
		case mask[i]:
		case value == "" && strings.TrimSpace(line) == token:
			continue
		default:
			line = strings.ReplaceAll(line, token, value)
		}
		out = append(out, line)
	}
	return joinLines(out)
}
