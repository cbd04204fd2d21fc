package pipeline

import (
	"regexp"
	"strings"
)

var (
	plusItem  = regexp.MustCompile(`^([ \t]*)\+[ \t]+(.*)$`)
	listItem  = regexp.MustCompile(`^[ \t]*(?:[-*+]|\d+[.)])[ \t]`)
	plainSkip = []string{"#", ">", "|", "<", "!", ":::", "[^", "$$", "{{"}
)

// Fragments turns author "+ item" lists into the renderer's incremental
// list. With paragraphs set and a renderer that supports it, the last line
// of every plain paragraph is marked as a fragment too.
func Fragments(text string, s Syntax, paragraphs bool) string {
	lines := splitLines(text)
	mask := FenceMask(lines)

	for i, line := range lines {
		if mask[i] {
			continue
		}
		if m := plusItem.FindStringSubmatch(line); m != nil {
			lines[i] = s.FragmentItem(m[1], m[2])
		}
	}

	if !paragraphs || !s.SupportsParagraphFragments() {
		return joinLines(lines)
	}

	comment := commentMask(lines)
	plain := func(i int) bool {
		return i < len(lines) && !mask[i] && !comment[i] && isPlainText(lines[i])
	}
	for i := range lines {
		if plain(i) && !plain(i+1) {
			lines[i] += " " + fragmentComment
		}
	}
	return joinLines(lines)
}

// isPlainText reports whether line is ordinary paragraph text.
func isPlainText(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || IsSeparator(line) || listItem.MatchString(line) {
		return false
	}
	if strings.Contains(trimmed, "<!--") || commentSpan.MatchString(trimmed) {
		return false
	}
	for _, p := range plainSkip {
		if strings.HasPrefix(trimmed, p) {
			return false
		}
	}
	return true
}

// commentMask marks the lines of multi-line HTML comments.
func commentMask(lines []string) []bool {
	mask := make([]bool, len(lines))
	open := false
	for i, line := range lines {
		if open {
			mask[i] = true
			open = !strings.Contains(line, "-->")
			continue
		}
		if j := strings.LastIndex(line, "<!--"); j >= 0 && !strings.Contains(line[j:], "-->") {
			mask[i] = true
			open = true
		}
	}
	return mask
}
