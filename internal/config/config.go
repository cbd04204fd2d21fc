package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength      = 1024
	MaxNameLength      = 100  // design, template and presenter names
	MaxTextLength      = 200  // tagline, slogan
	MaxClassLength     = 200  // space separated class list
	MaxDateLength      = 50   // "auto:dddd, MMMM D, YYYY"
	MaxURLLength       = 2048 // sync endpoints
	MaxTokenLength     = 512
	MaxSlideDimension  = 10000
	MaxSyncPages       = 1000
	MaxTOCPageNumber   = 100
	defaultSyncPages   = 50
	defaultSyncFolder  = "Designs"
	defaultDeckFolder  = "Slides"
	defaultNoNavMarker = "tpl-no-nav"
)

// Renderer names.
const (
	RendererMarp   = "marp"
	RendererReveal = "reveal"
)

// Content page slide types.
const (
	SlideTypeHorizontal = "horizontal"
	SlideTypeVertical   = "vertical"
)

// Sync providers.
const (
	ProviderAirtable = "airtable"
	ProviderNocoDB   = "nocodb"
)

// DesignNone disables the user design setting.
const DesignNone = "none"

// Config holds all configuration for deck generation.
type Config struct {
	Vault       VaultConfig       `yaml:"vault"`
	Output      OutputConfig      `yaml:"output"`
	Design      DesignConfig      `yaml:"design"`
	Renderer    string            `yaml:"renderer"` // "marp" (default) or "reveal"
	Slides      SlidesConfig      `yaml:"slides"`
	ListClasses ListClassesConfig `yaml:"listClasses"`
	Presenter   PresenterConfig   `yaml:"presenter"`
	Assets      AssetsConfig      `yaml:"assets"`
	Sync        SyncConfig        `yaml:"sync"`
}

// VaultConfig locates the notes.
type VaultConfig struct {
	Root string `yaml:"root"` // Vault directory (empty = current directory)
}

// OutputConfig defines where decks are written inside the vault.
type OutputConfig struct {
	Folder    string `yaml:"folder"`    // Vault-relative deck folder (default "Slides")
	NoTheme   bool   `yaml:"noTheme"`   // Skip writing themes/<design>.css
	SameAsDoc bool   `yaml:"sameAsDoc"` // Write the deck next to the source note
}

// DesignConfig selects the visual design.
type DesignConfig struct {
	Default string `yaml:"default"` // Fallback design (default "A")
	User    string `yaml:"user"`    // Preferred design, "none" to disable
	Prompt  bool   `yaml:"prompt"`  // Ask for a design when none is set explicitly
}

// SlidesConfig tunes the conversion pipeline.
type SlidesConfig struct {
	Width                int    `yaml:"width"`
	Height               int    `yaml:"height"`
	TOCPageNumber        int    `yaml:"tocPageNumber"`        // Separator before which the TOC goes (min 1)
	ContentPageSlideType string `yaml:"contentPageSlideType"` // "horizontal" or "vertical"
	Fragments            bool   `yaml:"fragments"`            // TOC items as fragments (+)
	ParagraphFragments   bool   `yaml:"paragraphFragments"`
	SeparateNavAndTOC    bool   `yaml:"separateNavAndToc"` // Per-slide nav headers
	HideNav              bool   `yaml:"hideNav"`
	AutoConvertLinks     bool   `yaml:"autoConvertLinks"`
	NoNavTemplate        string `yaml:"noNavTemplate"` // Template name that swaps nav for tagline+slogan
}

// ListClassesConfig overrides the default class of each slide kind.
type ListClassesConfig struct {
	TOC       string `yaml:"toc"`
	Chapter   string `yaml:"chapter"`
	Content   string `yaml:"content"`
	Blank     string `yaml:"blank"`
	BackCover string `yaml:"backCover"`
}

// PresenterConfig fills the presenter placeholders.
type PresenterConfig struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	Slogan  string `yaml:"slogan"`
	Date    string `yaml:"date"` // Literal date or "auto[:LAYOUT]"
}

// AssetsConfig defines where custom designs live.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = <vault>/<sync.folder>
}

// SyncConfig describes the remote design table.
type SyncConfig struct {
	Provider     string `yaml:"provider"` // "airtable" or "nocodb"
	BaseURL      string `yaml:"baseURL"`
	Token        string `yaml:"token"`
	BaseID       string `yaml:"baseID"` // Airtable base
	Table        string `yaml:"table"`
	PathField    string `yaml:"pathField"`
	ContentField string `yaml:"contentField"`
	TriggerURL   string `yaml:"triggerURL"` // Optional webhook called before polling
	MaxPages     int    `yaml:"maxPages"`
	Folder       string `yaml:"folder"` // Vault-relative designs folder (default "Designs")
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for library users who
// construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"vault.root", c.Vault.Root, MaxPathLength},
		{"output.folder", c.Output.Folder, MaxPathLength},
		{"design.default", c.Design.Default, MaxNameLength},
		{"design.user", c.Design.User, MaxNameLength},
		{"slides.noNavTemplate", c.Slides.NoNavTemplate, MaxNameLength},
		{"listClasses.toc", c.ListClasses.TOC, MaxClassLength},
		{"listClasses.chapter", c.ListClasses.Chapter, MaxClassLength},
		{"listClasses.content", c.ListClasses.Content, MaxClassLength},
		{"listClasses.blank", c.ListClasses.Blank, MaxClassLength},
		{"listClasses.backCover", c.ListClasses.BackCover, MaxClassLength},
		{"presenter.name", c.Presenter.Name, MaxNameLength},
		{"presenter.tagline", c.Presenter.Tagline, MaxTextLength},
		{"presenter.slogan", c.Presenter.Slogan, MaxTextLength},
		{"presenter.date", c.Presenter.Date, MaxDateLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"sync.baseURL", c.Sync.BaseURL, MaxURLLength},
		{"sync.token", c.Sync.Token, MaxTokenLength},
		{"sync.baseID", c.Sync.BaseID, MaxNameLength},
		{"sync.table", c.Sync.Table, MaxNameLength},
		{"sync.pathField", c.Sync.PathField, MaxNameLength},
		{"sync.contentField", c.Sync.ContentField, MaxNameLength},
		{"sync.triggerURL", c.Sync.TriggerURL, MaxURLLength},
		{"sync.folder", c.Sync.Folder, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Renderer) {
	case "", RendererMarp, RendererReveal:
	default:
		return fmt.Errorf("%w: renderer %q (must be marp or reveal)", ErrInvalidValue, c.Renderer)
	}

	switch strings.ToLower(c.Slides.ContentPageSlideType) {
	case "", SlideTypeHorizontal, SlideTypeVertical:
	default:
		return fmt.Errorf("%w: slides.contentPageSlideType %q (must be horizontal or vertical)", ErrInvalidValue, c.Slides.ContentPageSlideType)
	}

	if c.Slides.TOCPageNumber < 0 || c.Slides.TOCPageNumber > MaxTOCPageNumber {
		return fmt.Errorf("%w: slides.tocPageNumber must be between 0 and %d, got %d", ErrInvalidValue, MaxTOCPageNumber, c.Slides.TOCPageNumber)
	}
	if err := validateDimension("slides.width", c.Slides.Width); err != nil {
		return err
	}
	if err := validateDimension("slides.height", c.Slides.Height); err != nil {
		return err
	}

	switch strings.ToLower(c.Sync.Provider) {
	case "", ProviderAirtable, ProviderNocoDB:
	default:
		return fmt.Errorf("%w: sync.provider %q (must be airtable or nocodb)", ErrInvalidValue, c.Sync.Provider)
	}
	if c.Sync.MaxPages < 0 || c.Sync.MaxPages > MaxSyncPages {
		return fmt.Errorf("%w: sync.maxPages must be between 0 and %d, got %d", ErrInvalidValue, MaxSyncPages, c.Sync.MaxPages)
	}
	for _, u := range []struct{ field, value string }{
		{"sync.baseURL", c.Sync.BaseURL},
		{"sync.triggerURL", c.Sync.TriggerURL},
	} {
		if u.value != "" && !fileutil.IsURL(u.value) {
			return fmt.Errorf("%w: %s must be an http(s) URL", ErrInvalidValue, u.field)
		}
	}

	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func validateDimension(field string, v int) error {
	if v < 0 || v > MaxSlideDimension {
		return fmt.Errorf("%w: %s must be between 0 and %d, got %d", ErrInvalidValue, field, MaxSlideDimension, v)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output:   OutputConfig{Folder: defaultDeckFolder},
		Design:   DesignConfig{Default: "A", User: DesignNone},
		Renderer: RendererMarp,
		Slides: SlidesConfig{
			TOCPageNumber:        1,
			ContentPageSlideType: SlideTypeHorizontal,
			Fragments:            true,
			NoNavTemplate:        defaultNoNavMarker,
		},
		Presenter: PresenterConfig{Date: "auto:long"},
		Sync:      SyncConfig{MaxPages: defaultSyncPages, Folder: defaultSyncFolder},
	}
}

// ApplyDefaults fills zero-valued fields of a loaded config from
// DefaultConfig. Booleans are left as loaded.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	setIfEmpty(&c.Output.Folder, d.Output.Folder)
	setIfEmpty(&c.Design.Default, d.Design.Default)
	setIfEmpty(&c.Design.User, d.Design.User)
	setIfEmpty(&c.Renderer, d.Renderer)
	setIfEmpty(&c.Slides.ContentPageSlideType, d.Slides.ContentPageSlideType)
	setIfEmpty(&c.Slides.NoNavTemplate, d.Slides.NoNavTemplate)
	setIfEmpty(&c.Presenter.Date, d.Presenter.Date)
	setIfEmpty(&c.Sync.Folder, d.Sync.Folder)
	if c.Slides.TOCPageNumber == 0 {
		c.Slides.TOCPageNumber = d.Slides.TOCPageNumber
	}
	if c.Sync.MaxPages == 0 {
		c.Sync.MaxPages = d.Sync.MaxPages
	}
	c.Renderer = strings.ToLower(c.Renderer)
	c.Slides.ContentPageSlideType = strings.ToLower(c.Slides.ContentPageSlideType)
	c.Sync.Provider = strings.ToLower(c.Sync.Provider)
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value with a path separator is read directly; a bare name is searched in
// standard locations. Returns an error if the file is not found.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory, then ~/.config/go-md2slides/, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2slides", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
