package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/vault"
)

// MaxEmbedDepth bounds nested ![[note]] inlining.
const MaxEmbedDepth = 10

// NoteSource resolves and reads notes for embeds and templates.
type NoteSource interface {
	Resolve(name string) (rel string, err error)
	ReadNote(ctx context.Context, rel string) (string, error)
}

var noteEmbed = regexp.MustCompile(`!\[\[([^\]|#]+?)(#[^\]|]*)?(?:\|[^\]]*)?\]\]`)

// InlineEmbeds replaces ![[note]] and ![[note#heading]] with the embedded
// note (front-matter stripped) or heading section, recursively. Images and
// Excalidraw drawings are skipped. Unresolvable embeds, cycles and embeds
// deeper than MaxEmbedDepth stay as literal text. Only context errors are
// returned.
func InlineEmbeds(ctx context.Context, text string, src NoteSource) (string, error) {
	return inline(ctx, text, src, map[string]bool{}, 0)
}

func inline(ctx context.Context, text string, src NoteSource, stack map[string]bool, depth int) (string, error) {
	if depth >= MaxEmbedDepth || !strings.Contains(text, "![[") {
		return text, nil
	}

	lines := splitLines(text)
	mask := FenceMask(lines)
	for i, line := range lines {
		if mask[i] || !strings.Contains(line, "![[") {
			continue
		}
		var firstErr error
		lines[i] = noteEmbed.ReplaceAllStringFunc(line, func(m string) string {
			if firstErr != nil {
				return m
			}
			sub := noteEmbed.FindStringSubmatch(m)
			name := strings.TrimSpace(sub[1])
			if fileutil.IsImage(name) || fileutil.IsExcalidraw(name) {
				return m
			}
			content, err := embedContent(ctx, src, name, strings.TrimPrefix(sub[2], "#"), stack, depth)
			if err != nil {
				firstErr = err
				return m
			}
			if content == "" {
				return m
			}
			return content
		})
		if firstErr != nil {
			return "", firstErr
		}
	}
	return joinLines(lines), nil
}

// embedContent returns "" with a nil error when the embed cannot be
// resolved.
func embedContent(ctx context.Context, src NoteSource, name, heading string, stack map[string]bool, depth int) (string, error) {
	rel, err := src.Resolve(name)
	if err != nil {
		return "", nil
	}
	key := strings.ToLower(rel + "#" + heading)
	if stack[key] {
		return "", nil
	}

	note, err := src.ReadNote(ctx, rel)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", nil
	}
	content := vault.StripFrontMatter(note)
	if heading != "" {
		if content, err = vault.HeadingSection(note, heading); err != nil {
			return "", nil
		}
	}

	stack[key] = true
	defer delete(stack, key)
	inlined, err := inline(ctx, strings.TrimRight(content, "\n"), src, stack, depth+1)
	if err != nil {
		return "", err
	}
	return inlined, nil
}
