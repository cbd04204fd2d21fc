package pipeline

import "testing"

type fakePaths map[string]string

func (f fakePaths) ResolvePath(target string) (string, bool) {
	p, ok := f[target]
	return p, ok
}

func TestRewriteImages(t *testing.T) {
	t.Parallel()

	paths := fakePaths{
		"pic.png":   "../assets/pic.png",
		"img/b.png": "../img/b.png",
		"Note":      "../Note.md",
	}

	tests := []struct {
		name   string
		text   string
		syntax Syntax
		want   string
	}{
		{
			name:   "wiki image marp",
			text:   "![[pic.png#round|300x200]]",
			syntax: Marp,
			want:   "![round w:300 h:200](<../assets/pic.png>)",
		},
		{
			name:   "wiki image reveal",
			text:   "![[pic.png#round|300x200]]",
			syntax: Reveal,
			want:   `![](<../assets/pic.png>) <!-- element class="round" style="width:300px; height:200px" -->`,
		},
		{
			name:   "wiki image without suffix",
			text:   "see ![[pic.png]] here",
			syntax: Reveal,
			want:   "see ![](<../assets/pic.png>) here",
		},
		{
			name:   "remote markdown image",
			text:   "![Logo](https://x.io/l.png#wide|120)",
			syntax: Marp,
			want:   "![Logo wide w:120](<https://x.io/l.png>)",
		},
		{
			name:   "encoded pipe",
			text:   "![a](img/b.png#c%7C50)",
			syntax: Marp,
			want:   "![a c w:50](<../img/b.png>)",
		},
		{
			name:   "angle bracket destination",
			text:   "![](<img/b.png>)",
			syntax: Marp,
			want:   "![](<../img/b.png>)",
		},
		{
			name:   "unresolved kept",
			text:   "![[missing.png]] ![x](nope.png)",
			syntax: Marp,
			want:   "![[missing.png]] ![x](nope.png)",
		},
		{
			name:   "note embed kept",
			text:   "![[Note]]",
			syntax: Marp,
			want:   "![[Note]]",
		},
		{
			name:   "fenced kept",
			text:   "```\n![[pic.png]]\n```",
			syntax: Marp,
			want:   "```\n![[pic.png]]\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := RewriteImages(tt.text, ImageOptions{Syntax: tt.syntax, Resolver: paths})
			if got != tt.want {
				t.Errorf("RewriteImages() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in            string
		width, height string
	}{
		{"300", "300", ""},
		{"300x200", "300", "200"},
		{" 40x5 ", "40", "5"},
		{"big", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		w, h := parseSize(tt.in)
		if w != tt.width || h != tt.height {
			t.Errorf("parseSize(%q) = %q, %q; want %q, %q", tt.in, w, h, tt.width, tt.height)
		}
	}
}
