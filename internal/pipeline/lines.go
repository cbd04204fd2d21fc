package pipeline

import (
	"regexp"
	"strings"
)

var (
	crlfOrCR      = regexp.MustCompile(`\r\n?`)
	fenceOpen     = regexp.MustCompile("^[ \t]{0,3}(`{3,}|~{3,})")
	separatorLine = regexp.MustCompile(`^[ \t]{0,3}(?:-{3,}|\*{3,}|_{3,})[ \t]*$`)
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// CompressBlankLines limits consecutive empty lines outside fenced code to
// one.
func CompressBlankLines(content string) string {
	if !strings.Contains(content, "\n\n\n") {
		return content
	}
	lines := splitLines(content)
	mask := FenceMask(lines)
	out := lines[:0]
	prevEmpty := false
	for i, line := range lines {
		empty := !mask[i] && line == ""
		if empty && prevEmpty {
			continue
		}
		prevEmpty = empty
		out = append(out, line)
	}
	return joinLines(out)
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// FenceMask reports, per line, whether the line belongs to a fenced code
// block (``` or ~~~) or a $$ math block. Fence lines themselves are masked.
// An unclosed fence masks everything up to the end.
func FenceMask(lines []string) []bool {
	mask := make([]bool, len(lines))
	var fence string // current opening fence, "" when outside
	inMath := false

	for i, line := range lines {
		switch {
		case fence != "":
			mask[i] = true
			if closesFence(line, fence) {
				fence = ""
			}
		case inMath:
			mask[i] = true
			if strings.TrimSpace(line) == "$$" {
				inMath = false
			}
		default:
			if m := fenceOpen.FindStringSubmatch(line); m != nil {
				mask[i] = true
				fence = m[1]
			} else if strings.TrimSpace(line) == "$$" {
				mask[i] = true
				inMath = true
			}
		}
	}
	return mask
}

func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(fence) || trimmed[0] != fence[0] {
		return false
	}
	return strings.Trim(trimmed, string(fence[0])) == ""
}

// mapUnmasked applies fn to every line outside fences.
func mapUnmasked(text string, fn func(line string) string) string {
	lines := splitLines(text)
	mask := FenceMask(lines)
	for i, line := range lines {
		if !mask[i] {
			lines[i] = fn(line)
		}
	}
	return joinLines(lines)
}

// containsUnmasked reports whether substr occurs on a line outside fences.
func containsUnmasked(text, substr string) bool {
	if !strings.Contains(text, substr) {
		return false
	}
	lines := splitLines(text)
	mask := FenceMask(lines)
	for i, line := range lines {
		if !mask[i] && strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// IsSeparator reports whether line is a thematic break used as a slide
// separator (---, ***, ___).
func IsSeparator(line string) bool {
	return separatorLine.MatchString(line)
}

// lastNonBlank returns the last line of out that is not blank, or "" and
// false when there is none.
func lastNonBlank(out []string) (string, bool) {
	for i := len(out) - 1; i >= 0; i-- {
		if strings.TrimSpace(out[i]) != "" {
			return out[i], true
		}
	}
	return "", false
}
