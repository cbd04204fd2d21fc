package pipeline

import (
	"errors"
	"testing"
)

func TestParseSyntax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Syntax
		wantErr bool
	}{
		{"", Marp, false},
		{"marp", Marp, false},
		{" Reveal ", Reveal, false},
		{"impress", Marp, true},
	}

	for _, tt := range tests {
		got, err := ParseSyntax(tt.in)
		if got != tt.want || errors.Is(err, ErrUnknownSyntax) != tt.wantErr {
			t.Errorf("ParseSyntax(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestSyntax_Render(t *testing.T) {
	t.Parallel()

	a := Annotation{ID: "c1p2", Class: "content wide", Template: "two-columns", Header: `it's "nav"`}

	tests := []struct {
		name   string
		syntax Syntax
		a      Annotation
		want   string
	}{
		{
			name:   "marp",
			syntax: Marp,
			a:      a,
			want:   "<!--\n_id: c1p2\n_class: content wide\n_template: [[two-columns]]\n_header: 'it''s \"nav\"'\n-->",
		},
		{
			name:   "reveal",
			syntax: Reveal,
			a:      a,
			want:   `<!-- slide id="c1p2" class="content wide" template="[[two-columns]]" data-header="it's &quot;nav&quot;" -->`,
		},
		{
			name:   "empty",
			syntax: Reveal,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.syntax.Render(tt.a); got != tt.want {
				t.Errorf("Render() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestSyntax_Spelling(t *testing.T) {
	t.Parallel()

	if Marp.PageBreak(true) != "***" || Reveal.PageBreak(false) != "---" {
		t.Error("PageBreak spelling")
	}
	if Marp.SupportsParagraphFragments() || !Reveal.SupportsParagraphFragments() {
		t.Error("paragraph fragment support")
	}
	if Marp.String() != "marp" || Reveal.String() != "reveal" {
		t.Error("String()")
	}
}

func TestParseAnnotation_RoundTrip(t *testing.T) {
	t.Parallel()

	a := Annotation{ID: "c2p1s3", Class: "content wide", Template: "framed", Header: `<ul><li class="a">it's</li></ul>`}

	for _, s := range []Syntax{Marp, Reveal} {
		slide := "\n" + s.Render(a) + "\n### Title\nbody"
		if got := ParseAnnotation(slide); got != a {
			t.Errorf("%s: ParseAnnotation() = %+v, want %+v", s, got, a)
		}
	}
	if got := ParseAnnotation("## no comment"); got != (Annotation{}) {
		t.Errorf("ParseAnnotation() = %+v, want zero", got)
	}
}
