package pipeline

import (
	"regexp"
	"strings"
)

var (
	// wikiLink matches [[Target#heading|Alias]] not preceded by "!".
	wikiLink = regexp.MustCompile(`(^|[^!])\[\[([^\]|#]+)(#[^\]|]*)?(?:\|([^\]]*))?\]\]`)
	// linkShield matches spans whose [[...]] name a template, not a link.
	linkShield        = regexp.MustCompile(`%%[\s\S]*?%%|<!--[\s\S]*?-->`)
	templateDirective = regexp.MustCompile(`^\s*_template\s*:`)
)

// ConvertLinks turns wiki-links into Markdown links when the target
// resolves, and into their display text otherwise. Links inside %%...%%
// annotations, HTML comments and _template lines are left alone.
func ConvertLinks(text string, r PathResolver) string {
	return mapUnmasked(text, func(line string) string {
		if !strings.Contains(line, "[[") || templateDirective.MatchString(line) {
			return line
		}
		var b strings.Builder
		last := 0
		for _, span := range linkShield.FindAllStringIndex(line, -1) {
			b.WriteString(convertLinkSpan(line[last:span[0]], r))
			b.WriteString(line[span[0]:span[1]])
			last = span[1]
		}
		b.WriteString(convertLinkSpan(line[last:], r))
		return b.String()
	})
}

func convertLinkSpan(s string, r PathResolver) string {
	if !strings.Contains(s, "[[") {
		return s
	}
	return wikiLink.ReplaceAllStringFunc(s, func(m string) string {
		sub := wikiLink.FindStringSubmatch(m)
		prefix, target, alias := sub[1], strings.TrimSpace(sub[2]), strings.TrimSpace(sub[4])
		label := alias
		if label == "" {
			label = target
		}
		if r != nil {
			if path, ok := r.ResolvePath(target); ok {
				return prefix + "[" + label + "](<" + path + ">)"
			}
		}
		return prefix + label
	})
}
