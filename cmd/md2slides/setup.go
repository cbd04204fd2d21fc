package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/hints"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/vault"
)

// newLogger returns the diagnostic logger: warnings by default, debug with
// --verbose, errors only with --quiet.
func newLogger(w io.Writer, f commonFlags) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case f.verbose:
		level = zerolog.DebugLevel
	case f.quiet:
		level = zerolog.ErrorLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// loadConfig resolves the configuration of one run: the config file named
// by --config or MD2SLIDES_CONFIG, then the environment overlay. Callers
// merge their flags afterwards.
func loadConfig(f commonFlags, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig(env.Getenv)

	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	if f.vault != "" {
		cfg.Vault.Root = f.vault
	}
	return cfg, envCfg, nil
}

// openVault indexes the configured vault, the current directory when unset.
func openVault(ctx context.Context, cfg *config.Config) (*vault.Vault, error) {
	root := cfg.Vault.Root
	if root == "" {
		root = "."
	}
	v, err := vault.Open(ctx, root)
	if err != nil {
		if errors.Is(err, vault.ErrInvalidVault) {
			return nil, fmt.Errorf("%w%s", err, hints.ForVaultNotFound())
		}
		return nil, err
	}
	return v, nil
}

// mergeDesignFlags merges design flags into config. CLI values override
// config values. --design itself goes to buildOptions since it outranks
// the note's own slideDesign.
func mergeDesignFlags(f designFlags, cfg *config.Config) {
	if f.renderer != "" {
		cfg.Renderer = strings.ToLower(f.renderer)
	}
	if f.prompt {
		cfg.Design.Prompt = true
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

// mergePresenterFlags merges presenter flags into config.
func mergePresenterFlags(f presenterFlags, cfg *config.Config) {
	if f.name != "" {
		cfg.Presenter.Name = f.name
	}
	if f.tagline != "" {
		cfg.Presenter.Tagline = f.tagline
	}
	if f.slogan != "" {
		cfg.Presenter.Slogan = f.slogan
	}
	if f.date != "" {
		cfg.Presenter.Date = f.date
	}
}

// mergeConvertFlags merges every convert flag into config.
func mergeConvertFlags(f *convertFlags, cfg *config.Config) {
	mergeDesignFlags(f.design, cfg)
	mergePresenterFlags(f.presenter, cfg)

	if f.output.folder != "" {
		cfg.Output.Folder = f.output.folder
	}
	if f.output.sameAsDoc {
		cfg.Output.SameAsDoc = true
	}
	if f.output.noTheme {
		cfg.Output.NoTheme = true
	}

	s := f.slides
	if s.width > 0 {
		cfg.Slides.Width = s.width
	}
	if s.height > 0 {
		cfg.Slides.Height = s.height
	}
	if s.tocPage > 0 {
		cfg.Slides.TOCPageNumber = s.tocPage
	}
	if s.slideType != "" {
		cfg.Slides.ContentPageSlideType = strings.ToLower(s.slideType)
	}
	if s.noFragments {
		cfg.Slides.Fragments = false
	}
	if s.paragraphFragments {
		cfg.Slides.ParagraphFragments = true
	}
	if s.nav {
		cfg.Slides.SeparateNavAndTOC = true
		cfg.Slides.HideNav = false
	}
	if s.noNav {
		cfg.Slides.HideNav = true
	}
	if s.convertLinks {
		cfg.Slides.AutoConvertLinks = true
	}
}

// buildOptions captures the merged config as conversion options. Relative
// asset paths are taken from the vault root; without one the synced
// designs folder is used when it exists.
func buildOptions(cfg *config.Config, design, vaultRoot string) md2slides.Options {
	o := md2slides.DefaultOptions()

	o.Renderer = cfg.Renderer
	o.Design = design
	o.UserDesign = cfg.Design.User
	o.DefaultDesign = cfg.Design.Default
	o.PromptDesign = cfg.Design.Prompt

	switch base := cfg.Assets.BasePath; {
	case base != "" && !filepath.IsAbs(base):
		o.AssetsPath = filepath.Join(vaultRoot, base)
	case base != "":
		o.AssetsPath = base
	case cfg.Sync.Folder != "":
		if dir := filepath.Join(vaultRoot, cfg.Sync.Folder); fileutil.DirExists(dir) {
			o.AssetsPath = dir
		}
	}

	o.OutputFolder = cfg.Output.Folder
	o.SameAsDoc = cfg.Output.SameAsDoc
	o.NoTheme = cfg.Output.NoTheme

	o.Width = cfg.Slides.Width
	o.Height = cfg.Slides.Height
	o.TOCPageNumber = cfg.Slides.TOCPageNumber
	o.ContentSlideType = cfg.Slides.ContentPageSlideType
	o.Fragments = cfg.Slides.Fragments
	o.ParagraphFragments = cfg.Slides.ParagraphFragments
	o.NavOn = cfg.Slides.SeparateNavAndTOC && !cfg.Slides.HideNav
	o.AutoConvertLinks = cfg.Slides.AutoConvertLinks
	o.NoNavTemplate = cfg.Slides.NoNavTemplate
	o.Classes = pipeline.Classes{
		TOC:       cfg.ListClasses.TOC,
		Chapter:   cfg.ListClasses.Chapter,
		Content:   cfg.ListClasses.Content,
		Blank:     cfg.ListClasses.Blank,
		BackCover: cfg.ListClasses.BackCover,
	}

	o.Presenter = cfg.Presenter.Name
	o.Tagline = cfg.Presenter.Tagline
	o.Slogan = cfg.Presenter.Slogan
	o.PresentDate = cfg.Presenter.Date
	return o
}

// newConverter wires a Converter with the CLI prompter, notifier and
// logger.
func newConverter(v *vault.Vault, opts md2slides.Options, f commonFlags, env *Environment, logger zerolog.Logger) (*md2slides.Converter, error) {
	return md2slides.NewConverter(v, opts,
		md2slides.WithPrompter(newPrompter(env, f.noInput)),
		md2slides.WithNotifier(newNotifier(env.Stderr, f.quiet)),
		md2slides.WithLogger(logger),
		md2slides.WithClock(env.Now),
	)
}
