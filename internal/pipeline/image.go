package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// PathResolver maps a link target to a path relative to the deck folder.
// ok is false when the target is not in the vault.
type PathResolver interface {
	ResolvePath(target string) (path string, ok bool)
}

var (
	// ![[path#class|WxH]]
	wikiImage = regexp.MustCompile(`!\[\[([^\]|#]+?)(?:#([^\]|]*))?(?:\|([^\]]*))?\]\]`)
	// ![alt](url) and ![alt](<url>)
	markdownImage = regexp.MustCompile(`!\[([^\]]*)\]\((?:<([^>]+)>|([^)\s]+))\)`)
	imageSize     = regexp.MustCompile(`^(\d+)(?:x(\d+))?$`)
)

// ImageOptions configures RewriteImages.
type ImageOptions struct {
	Syntax   Syntax
	Resolver PathResolver
}

// RewriteImages rewrites Obsidian and Markdown images into the renderer's
// sized, classed form with paths relative to the deck. Remote URLs keep
// their address; unresolved local images are left untouched.
func RewriteImages(text string, opts ImageOptions) string {
	return mapUnmasked(text, func(line string) string {
		if !strings.Contains(line, "![") {
			return line
		}
		// Markdown images first so the wiki output is not rewritten twice.
		line = markdownImage.ReplaceAllStringFunc(line, func(m string) string {
			sub := markdownImage.FindStringSubmatch(m)
			raw := sub[2]
			if raw == "" {
				raw = sub[3]
			}
			target, class, size := splitImageSuffix(raw)
			path, ok := resolveImage(target, opts.Resolver)
			if !ok {
				return m
			}
			width, height := parseSize(size)
			return opts.Syntax.Image(path, strings.TrimSpace(sub[1]), class, width, height)
		})
		return wikiImage.ReplaceAllStringFunc(line, func(m string) string {
			sub := wikiImage.FindStringSubmatch(m)
			target := strings.TrimSpace(sub[1])
			if !fileutil.IsImage(target) {
				return m
			}
			path, ok := resolveImage(target, opts.Resolver)
			if !ok {
				return m
			}
			width, height := parseSize(sub[3])
			return opts.Syntax.Image(path, "", strings.TrimSpace(sub[2]), width, height)
		})
	})
}

func resolveImage(target string, r PathResolver) (string, bool) {
	if fileutil.IsURL(target) {
		return target, true
	}
	if r == nil {
		return "", false
	}
	return r.ResolvePath(target)
}

// splitImageSuffix splits "url#class|WxH" (| possibly encoded as %7C).
func splitImageSuffix(raw string) (target, class, size string) {
	hash := strings.LastIndex(raw, "#")
	if hash < 0 {
		return raw, "", ""
	}
	suffix := strings.NewReplacer("%7C", "|", "%7c", "|").Replace(raw[hash+1:])
	class, size, _ = strings.Cut(suffix, "|")
	return raw[:hash], strings.TrimSpace(class), strings.TrimSpace(size)
}

// parseSize reads "N" or "NxM". Anything else yields no size.
func parseSize(s string) (width, height string) {
	m := imageSize.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", ""
	}
	return m[1], m[2]
}
