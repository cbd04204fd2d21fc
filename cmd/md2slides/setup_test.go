package main

// Notes:
// - parse*Flags: we test the flag names and shorthands of each command and
//   that positionals are kept in order.
// - mergeConvertFlags: we test that set flags override the config and that
//   zero values leave it untouched.
// - buildOptions: we test the config to Options mapping, assets path
//   resolution and the nav switch.
// - loadConfig: we test the file, env and --vault precedence with a
//   temporary config file.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2slides/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Flag names and positionals
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	f, args, err := parseConvertFlags([]string{
		"-w", "3", "-d", "B", "-r", "reveal", "--prompt-design",
		"-o", "Decks", "--same-as-doc", "--no-theme",
		"--width", "1920", "--height", "1080", "--toc-page", "2",
		"--content-slides", "vertical", "--no-fragments", "--paragraph-fragments",
		"--nav", "--convert-links",
		"--presenter", "Ada", "--tagline", "Engines", "--slogan", "Compute", "--date", "auto:iso",
		"--vault", "/notes", "-q", "--no-input",
		"Talks/Intro.md", "Talks",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if f.workers != 3 || f.design.design != "B" || f.design.renderer != "reveal" || !f.design.prompt {
		t.Errorf("workers/design = %d %+v", f.workers, f.design)
	}
	if f.output != (outputFlags{folder: "Decks", sameAsDoc: true, noTheme: true}) {
		t.Errorf("output = %+v", f.output)
	}
	want := slideFlags{
		width: 1920, height: 1080, tocPage: 2, slideType: "vertical",
		noFragments: true, paragraphFragments: true, nav: true, convertLinks: true,
	}
	if f.slides != want {
		t.Errorf("slides = %+v, want %+v", f.slides, want)
	}
	if f.presenter != (presenterFlags{name: "Ada", tagline: "Engines", slogan: "Compute", date: "auto:iso"}) {
		t.Errorf("presenter = %+v", f.presenter)
	}
	if f.common.vault != "/notes" || !f.common.quiet || !f.common.noInput {
		t.Errorf("common = %+v", f.common)
	}
	if strings.Join(args, ",") != "Talks/Intro.md,Talks" {
		t.Errorf("args = %v", args)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		parse func() error
	}{
		{"unknown convert flag", func() error { _, _, err := parseConvertFlags([]string{"--style", "x"}, io.Discard); return err }},
		{"bad int", func() error { _, _, err := parseConvertFlags([]string{"--width", "wide"}, io.Discard); return err }},
		{"workers on watch", func() error { _, _, err := parseWatchFlags([]string{"-w", "2"}, io.Discard); return err }},
		{"unknown sync flag", func() error { _, _, err := parseSyncFlags([]string{"--token", "x"}, io.Discard); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.parse()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(usageError(err), ErrUsage) {
				t.Errorf("usageError(%v) should wrap ErrUsage", err)
			}
		})
	}

	t.Run("help passes through", func(t *testing.T) {
		t.Parallel()

		_, _, err := parsePreviewFlags([]string{"--help"}, io.Discard)
		if !errors.Is(usageError(err), flag.ErrHelp) {
			t.Errorf("usageError(--help) = %v, want flag.ErrHelp", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeConvertFlags - Flags override config
// ---------------------------------------------------------------------------

func TestMergeConvertFlags(t *testing.T) {
	t.Parallel()

	t.Run("zero flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Presenter.Name = "Grace"
		mergeConvertFlags(&convertFlags{}, cfg)

		want := config.DefaultConfig()
		want.Presenter.Name = "Grace"
		if *cfg != *want {
			t.Errorf("config changed:\n got %+v\nwant %+v", *cfg, *want)
		}
	})

	t.Run("set flags win", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeConvertFlags(&convertFlags{
			design:    designFlags{renderer: "Reveal", prompt: true, assetPath: "Themes"},
			output:    outputFlags{folder: "Decks", sameAsDoc: true},
			slides:    slideFlags{width: 800, tocPage: 3, slideType: "VERTICAL", noFragments: true, noNav: true},
			presenter: presenterFlags{name: "Ada", date: "2025-01-01"},
		}, cfg)

		if cfg.Renderer != "reveal" || !cfg.Design.Prompt || cfg.Assets.BasePath != "Themes" {
			t.Errorf("design = %q %v %q", cfg.Renderer, cfg.Design.Prompt, cfg.Assets.BasePath)
		}
		if cfg.Output.Folder != "Decks" || !cfg.Output.SameAsDoc {
			t.Errorf("output = %+v", cfg.Output)
		}
		if cfg.Slides.Width != 800 || cfg.Slides.TOCPageNumber != 3 || cfg.Slides.ContentPageSlideType != "vertical" {
			t.Errorf("slides = %+v", cfg.Slides)
		}
		if cfg.Slides.Fragments || !cfg.Slides.HideNav {
			t.Errorf("Fragments = %v, HideNav = %v", cfg.Slides.Fragments, cfg.Slides.HideNav)
		}
		if cfg.Presenter.Name != "Ada" || cfg.Presenter.Date != "2025-01-01" {
			t.Errorf("presenter = %+v", cfg.Presenter)
		}
	})

	t.Run("nav enables separate headers", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Slides.HideNav = true
		mergeConvertFlags(&convertFlags{slides: slideFlags{nav: true}}, cfg)

		if !cfg.Slides.SeparateNavAndTOC || cfg.Slides.HideNav {
			t.Errorf("SeparateNavAndTOC = %v, HideNav = %v", cfg.Slides.SeparateNavAndTOC, cfg.Slides.HideNav)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuildOptions - Config to conversion options
// ---------------------------------------------------------------------------

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	t.Run("maps config fields", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Renderer = "reveal"
		cfg.Design.User = "C"
		cfg.Slides.SeparateNavAndTOC = true
		cfg.ListClasses.Chapter = "chapter dark"
		cfg.Presenter = config.PresenterConfig{Name: "Ada", Tagline: "T", Slogan: "S", Date: "auto"}

		o := buildOptions(cfg, "B", "/vault")

		if o.Renderer != "reveal" || o.Design != "B" || o.UserDesign != "C" || o.DefaultDesign != "A" {
			t.Errorf("design options = %q %q %q %q", o.Renderer, o.Design, o.UserDesign, o.DefaultDesign)
		}
		if !o.NavOn {
			t.Error("NavOn = false, want true")
		}
		if o.Classes.Chapter != "chapter dark" {
			t.Errorf("Classes.Chapter = %q", o.Classes.Chapter)
		}
		if o.Presenter != "Ada" || o.Tagline != "T" || o.Slogan != "S" || o.PresentDate != "auto" {
			t.Errorf("presenter options = %q %q %q %q", o.Presenter, o.Tagline, o.Slogan, o.PresentDate)
		}
		if o.OutputFolder != "Slides" || o.TOCPageNumber != 1 || !o.Fragments {
			t.Errorf("slide options = %q %d %v", o.OutputFolder, o.TOCPageNumber, o.Fragments)
		}
	})

	t.Run("hidden nav wins", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Slides.SeparateNavAndTOC = true
		cfg.Slides.HideNav = true
		if buildOptions(cfg, "", "/vault").NavOn {
			t.Error("NavOn = true with hideNav")
		}
	})

	t.Run("assets path", func(t *testing.T) {
		t.Parallel()

		root := writeVault(t, map[string]string{"Designs/A/tpl-cover.md": "# {{title}}\n"})
		abs := t.TempDir()

		tests := []struct {
			name string
			base string
			sync string
			want string
		}{
			{"relative to vault", "Themes", "", filepath.Join(root, "Themes")},
			{"absolute kept", abs, "", abs},
			{"synced folder when present", "", "Designs", filepath.Join(root, "Designs")},
			{"missing synced folder", "", "Remote", ""},
		}
		for _, tt := range tests {
			cfg := config.DefaultConfig()
			cfg.Assets.BasePath = tt.base
			cfg.Sync.Folder = tt.sync
			if got := buildOptions(cfg, "", root).AssetsPath; got != tt.want {
				t.Errorf("%s: AssetsPath = %q, want %q", tt.name, got, tt.want)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File, environment and flag precedence
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "talks.yaml")
	content := "vault:\n  root: /from-file\nrenderer: reveal\npresenter:\n  name: Ada\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("defaults without file", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(t)
		cfg, _, err := loadConfig(commonFlags{}, env)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Renderer != "marp" || cfg.Output.Folder != "Slides" {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("file from flag", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(t)
		cfg, _, err := loadConfig(commonFlags{config: path}, env)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Vault.Root != "/from-file" || cfg.Renderer != "reveal" || cfg.Presenter.Name != "Ada" {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Design.Default != "A" {
			t.Errorf("Design.Default = %q, want A (defaults applied)", cfg.Design.Default)
		}
	})

	t.Run("file from env, env and vault flag override", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(t)
		env.Getenv = mapGetenv(map[string]string{
			"MD2SLIDES_CONFIG":   path,
			"MD2SLIDES_RENDERER": "marp",
			"MD2SLIDES_VAULT":    "/from-env",
			"MD2SLIDES_WORKERS":  "2",
		})
		cfg, envCfg, err := loadConfig(commonFlags{vault: "/from-flag"}, env)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Renderer != "marp" {
			t.Errorf("Renderer = %q, want marp", cfg.Renderer)
		}
		if cfg.Vault.Root != "/from-flag" {
			t.Errorf("Vault.Root = %q, want /from-flag", cfg.Vault.Root)
		}
		if envCfg.Workers != 2 {
			t.Errorf("Workers = %d, want 2", envCfg.Workers)
		}
	})

	t.Run("missing named config carries hint", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(t)
		_, _, err := loadConfig(commonFlags{config: "no-such-config-name"}, env)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-config-name.yaml") {
			t.Errorf("error %q should list the searched paths", err)
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()

		bad := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(bad, []byte("renderer: impress\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		env, _, _ := testEnv(t)
		_, _, err := loadConfig(commonFlags{config: bad}, env)
		if exitCodeFor(err) != ExitUsage {
			t.Errorf("exitCodeFor(%v) = %d, want %d", err, exitCodeFor(err), ExitUsage)
		}
	})
}
