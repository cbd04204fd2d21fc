package pipeline

import (
	"regexp"
	"strings"
)

var (
	blockOpen  = regexp.MustCompile(`^[ \t]*:::[ \t]*([\w-][\w \t-]*?)[ \t]*$`)
	blockClose = regexp.MustCompile(`^[ \t]*:::[ \t]*$`)
)

// RenderBlocks converts ::: name ... ::: containers into
// <div class="name"> ... </div> padded with blank lines so the renderer
// keeps parsing Markdown inside. Containers nest; unclosed containers are
// closed at the end and stray closers are kept.
func RenderBlocks(text string) string {
	lines := splitLines(text)
	mask := FenceMask(lines)
	out := make([]string, 0, len(lines))
	depth := 0

	for i, line := range lines {
		switch {
		case mask[i]:
			out = append(out, line)
		case blockClose.MatchString(line) && depth > 0:
			depth--
			out = append(out, "", "</div>")
		case blockOpen.MatchString(line):
			depth++
			name := strings.Join(strings.Fields(blockOpen.FindStringSubmatch(line)[1]), " ")
			out = append(out, `<div class="`+name+`">`, "")
		default:
			out = append(out, line)
		}
	}
	for ; depth > 0; depth-- {
		out = append(out, "", "</div>")
	}
	return joinLines(out)
}

// extractBlocks removes the top-level ::: blocks whose name is in want and
// returns their inner text by name. The first block of a name wins.
func extractBlocks(text string, want map[string]bool) (string, map[string]string) {
	lines := splitLines(text)
	mask := FenceMask(lines)
	found := make(map[string]string)
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		m := blockOpen.FindStringSubmatch(lines[i])
		if mask[i] || m == nil || !want[strings.TrimSpace(m[1])] {
			out = append(out, lines[i])
			continue
		}
		name := strings.TrimSpace(m[1])
		depth, end := 1, -1
		for j := i + 1; j < len(lines); j++ {
			if mask[j] {
				continue
			}
			if blockClose.MatchString(lines[j]) {
				depth--
				if depth == 0 {
					end = j
					break
				}
			} else if blockOpen.MatchString(lines[j]) {
				depth++
			}
		}
		if end < 0 {
			out = append(out, lines[i])
			continue
		}
		if _, dup := found[name]; !dup {
			found[name] = strings.Trim(joinLines(lines[i+1:end]), "\n")
		}
		i = end
	}
	return joinLines(out), found
}
