package pipeline

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

// ErrPromptAborted is returned by a Prompter when the user cancels.
var ErrPromptAborted = errors.New("prompt aborted")

// Placeholder names understood by Finalize.
const (
	FieldDesign      = "design"
	FieldTOC         = "toc"
	FieldCIndex      = "cIndex"
	FieldPIndex      = "pIndex"
	FieldCName       = "cName"
	FieldSlideName   = "slideName"
	FieldBaseLayout  = "baseLayout"
	FieldTagline     = "tagline"
	FieldSlogan      = "slogan"
	FieldPresenter   = "presenter"
	FieldPresentDate = "presentDate"
)

// KnownFields lists every placeholder name in the order prompts are asked.
var KnownFields = []string{
	FieldDesign, FieldSlideName, FieldBaseLayout, FieldPresenter, FieldTagline,
	FieldSlogan, FieldPresentDate, FieldCName, FieldCIndex, FieldPIndex, FieldTOC,
}

var placeholder = regexp.MustCompile(`\{\{[ \t]*(\w+)[ \t]*\}\}`)

// PromptRequest describes one question asked to the user.
type PromptRequest struct {
	Field   string
	Message string
	Default string
	Options []string // non-empty for a selection
}

// Prompter asks the user for a value. It returns ErrPromptAborted when the
// user cancels, never an empty answer in its place.
type Prompter interface {
	Prompt(ctx context.Context, req PromptRequest) (string, error)
}

var promptMessages = map[string]string{
	FieldDesign:      "Design",
	FieldSlideName:   "Slide deck name",
	FieldBaseLayout:  "Base layout",
	FieldPresenter:   "Presenter",
	FieldTagline:     "Tagline",
	FieldSlogan:      "Slogan",
	FieldPresentDate: "Presentation date",
	FieldCName:       "Chapter name",
	FieldCIndex:      "Chapter number",
	FieldPIndex:      "Page number",
}

// ReplaceConfig maps placeholder names to resolved values. A name that has
// been set, even to "", is never prompted for again.
type ReplaceConfig struct {
	values map[string]string
}

// Set records value for name.
func (r *ReplaceConfig) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	r.values[name] = value
}

// Get returns the value of name and whether it has been set.
func (r *ReplaceConfig) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Apply substitutes every set placeholder outside fenced code. Other
// placeholders stay.
func (r *ReplaceConfig) Apply(text string) string {
	if len(r.values) == 0 {
		return text
	}
	return mapUnmasked(text, func(line string) string {
		return placeholder.ReplaceAllStringFunc(line, func(m string) string {
			name := placeholder.FindStringSubmatch(m)[1]
			if v, ok := r.values[name]; ok {
				return v
			}
			return m
		})
	})
}

// Placeholders returns the known placeholder names present outside fenced
// code, in KnownFields order.
func Placeholders(text string) []string {
	lines := splitLines(text)
	mask := FenceMask(lines)
	present := make(map[string]bool)
	for i, line := range lines {
		if mask[i] {
			continue
		}
		for _, m := range placeholder.FindAllStringSubmatch(line, -1) {
			present[m[1]] = true
		}
	}
	var names []string
	for _, f := range KnownFields {
		if present[f] {
			names = append(names, f)
		}
	}
	return names
}

// Finalize resolves the known placeholders present in text. Unset names
// are asked through p (when non-nil); a cancelled prompt leaves the field
// empty and is reported in aborted. Unknown placeholders stay literal.
// Only context errors and unexpected prompter errors are returned.
func Finalize(ctx context.Context, text string, r *ReplaceConfig, p Prompter) (string, []string, error) {
	var aborted []string
	for _, name := range Placeholders(text) {
		if _, ok := r.Get(name); ok {
			continue
		}
		if p == nil || name == FieldTOC {
			r.Set(name, "")
			continue
		}
		v, err := p.Prompt(ctx, PromptRequest{Field: name, Message: promptMessages[name]})
		switch {
		case errors.Is(err, ErrPromptAborted):
			aborted = append(aborted, name)
			v = ""
		case err != nil:
			return "", aborted, err
		}
		r.Set(name, strings.TrimSpace(v))
	}
	return r.Apply(text), aborted, nil
}

// ResolveDesign picks the design: explicit choice, then the note's
// front-matter, then the user default, then the built-in default. Empty
// values and "none" are skipped; "A" is the last resort.
func ResolveDesign(explicit, frontMatter, user, def string) string {
	for _, d := range []string{explicit, frontMatter, user, def} {
		d = strings.TrimSpace(d)
		if d != "" && !strings.EqualFold(d, "none") {
			return d
		}
	}
	return "A"
}
