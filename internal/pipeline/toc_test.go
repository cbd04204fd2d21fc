package pipeline

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestIDMaker - Heading text becomes a stable anchor token
// ---------------------------------------------------------------------------

func TestIDMaker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Intro, Setup!", "intro-setup"},
		{"  Many   spaces  ", "many-spaces"},
		{"snake_case and-dash", "snake_case-and-dash"},
		{"Q&A (live)", "qa-live"},
		{"Café", "caf%c3%a9"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			if got := IDMaker(tt.in); got != tt.want {
				t.Errorf("IDMaker(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIDMaker_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Intro, Setup!", "A  b  C", "x_y-z"} {
		once := IDMaker(in)
		if twice := IDMaker(once); twice != once {
			t.Errorf("IDMaker(IDMaker(%q)) = %q, want %q", in, twice, once)
		}
	}
}

// ---------------------------------------------------------------------------
// TestScanChapters / TestBuildTOC / TestBuildNav
// ---------------------------------------------------------------------------

func TestScanChapters(t *testing.T) {
	t.Parallel()

	text := "# T\n## Intro %%wide%%\n```\n## Fenced\n```\n## Aside %%@%%\n### p\n## Outro"
	got := ScanChapters(text)
	want := []Chapter{{1, "Intro"}, {2, "Outro"}}

	if len(got) != len(want) {
		t.Fatalf("ScanChapters() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chapter %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildTOC(t *testing.T) {
	t.Parallel()

	chapters := []Chapter{{1, "Intro"}, {2, "Setup"}}

	if got := BuildTOC(chapters, true); got != "+ [Intro](#c1)\n+ [Setup](#c2)" {
		t.Errorf("BuildTOC(fragments) = %q", got)
	}
	if got := BuildTOC(chapters, false); got != "- [Intro](#c1)\n- [Setup](#c2)" {
		t.Errorf("BuildTOC() = %q", got)
	}
	if got := BuildTOC(nil, true); got != "" {
		t.Errorf("BuildTOC(nil) = %q, want empty", got)
	}
}

func TestBuildNav(t *testing.T) {
	t.Parallel()

	chapters := []Chapter{{1, "Intro"}, {2, "Set up"}}
	want := `<ul><li class="intro"><a href="#c1">Intro</a></li>` +
		`<li class="set-up active"><a href="#c2">Set up</a></li></ul>`

	if got := BuildNav(chapters, 2); got != want {
		t.Errorf("BuildNav() =\n%s\nwant\n%s", got, want)
	}
	if got := BuildNav(nil, 1); got != "" {
		t.Errorf("BuildNav(nil) = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestInsertTOC - TOC slide lands before the Nth separator
// ---------------------------------------------------------------------------

func TestInsertTOC(t *testing.T) {
	t.Parallel()

	text := "# T\n\n---\n\n## A\n\n---\n\n## B"

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"first", 1, "# T\n\n---\n\nTOC\n\n---\n\n## A\n\n---\n\n## B"},
		{"zero counts as first", 0, "# T\n\n---\n\nTOC\n\n---\n\n## A\n\n---\n\n## B"},
		{"second", 2, "# T\n\n---\n\n## A\n\n---\n\nTOC\n\n---\n\n## B"},
		{"past the end prepends", 5, "TOC\n\n---\n\n# T\n\n---\n\n## A\n\n---\n\n## B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InsertTOC(text, "TOC", tt.n); got != tt.want {
				t.Errorf("InsertTOC(%d) =\n%q\nwant\n%q", tt.n, got, tt.want)
			}
		})
	}
}
