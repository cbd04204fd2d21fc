// Package dateutil turns user-friendly date layouts into formatted dates.
// It backs the {{presentDate}} placeholder of a deck.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidLayout indicates an unusable date layout string.
var ErrInvalidLayout = errors.New("invalid date layout")

// MaxLayoutLength limits layout length.
const MaxLayoutLength = 50

// DefaultLayout is used for "today" and bare "auto".
const DefaultLayout = "YYYY-MM-DD"

// layoutTokens maps user tokens to Go reference-time components,
// longest first so matching is greedy.
var layoutTokens = []struct {
	token string
	goFmt string
}{
	{"dddd", "Monday"},
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"ddd", "Mon"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named layouts accepted after "auto:" or "today:".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"full":     "dddd, MMMM D, YYYY",
}

// ToGoLayout converts a layout such as "DD/MM/YYYY" to Go's reference form.
// Text in brackets is copied literally: "[Week of] MMM D".
func ToGoLayout(layout string) (string, error) {
	if layout == "" {
		return "", fmt.Errorf("%w: layout cannot be empty", ErrInvalidLayout)
	}
	if len(layout) > MaxLayoutLength {
		return "", fmt.Errorf("%w: layout exceeds %d characters", ErrInvalidLayout, MaxLayoutLength)
	}

	var b strings.Builder
	b.Grow(len(layout) + 8)

	for i := 0; i < len(layout); {
		if layout[i] == '[' {
			end := strings.IndexByte(layout[i+1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidLayout, i)
			}
			b.WriteString(layout[i+1 : i+1+end])
			i += end + 2
			continue
		}

		n := matchToken(layout[i:], &b)
		if n == 0 {
			b.WriteByte(layout[i])
			n = 1
		}
		i += n
	}

	return b.String(), nil
}

func matchToken(s string, b *strings.Builder) int {
	for _, t := range layoutTokens {
		if strings.HasPrefix(s, t.token) {
			b.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	return 0
}

// Resolve expands dynamic date values relative to now:
//   - "auto", "today"         current date in DefaultLayout
//   - "tomorrow"              next day in DefaultLayout
//   - "auto:LAYOUT"           current date in LAYOUT or a preset name
//   - "today:LAYOUT"          same as auto:LAYOUT
//   - "tomorrow:LAYOUT"       next day in LAYOUT or a preset name
//
// Any other value is returned unchanged so literal dates pass through.
func Resolve(value string, now time.Time) (string, error) {
	keyword, layout, hasLayout := strings.Cut(value, ":")
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	var when time.Time
	switch keyword {
	case "auto", "today":
		when = now
	case "tomorrow":
		when = now.AddDate(0, 0, 1)
	default:
		return value, nil
	}

	if !hasLayout {
		layout = DefaultLayout
	} else if layout == "" {
		return "", fmt.Errorf("%w: layout cannot be empty after %q", ErrInvalidLayout, keyword+":")
	}
	if preset, ok := Presets[strings.ToLower(layout)]; ok {
		layout = preset
	}

	goFmt, err := ToGoLayout(layout)
	if err != nil {
		return "", err
	}
	return when.Format(goFmt), nil
}
