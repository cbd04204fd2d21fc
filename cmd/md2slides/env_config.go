package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-md2slides/internal/config"
)

const envPrefix = "MD2SLIDES_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2SLIDES_CONFIG: config file name or path
	Vault      string // MD2SLIDES_VAULT: vault root
	OutputDir  string // MD2SLIDES_OUTPUT_DIR: vault-relative deck folder
	Design     string // MD2SLIDES_DESIGN: preferred design
	Renderer   string // MD2SLIDES_RENDERER: marp or reveal
	Workers    int    // MD2SLIDES_WORKERS: parallel conversions
	SyncToken  string // MD2SLIDES_SYNC_TOKEN: Airtable or NocoDB token
}

// knownEnvVars lists valid MD2SLIDES_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SLIDES_CONFIG":     true,
	"MD2SLIDES_VAULT":      true,
	"MD2SLIDES_OUTPUT_DIR": true,
	"MD2SLIDES_DESIGN":     true,
	"MD2SLIDES_RENDERER":   true,
	"MD2SLIDES_WORKERS":    true,
	"MD2SLIDES_SYNC_TOKEN": true,
}

// loadEnvConfig reads the recognized MD2SLIDES_* values through getenv.
// Invalid or non-positive worker counts are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2SLIDES_CONFIG"),
		Vault:      getenv("MD2SLIDES_VAULT"),
		OutputDir:  getenv("MD2SLIDES_OUTPUT_DIR"),
		Design:     getenv("MD2SLIDES_DESIGN"),
		Renderer:   getenv("MD2SLIDES_RENDERER"),
		SyncToken:  getenv("MD2SLIDES_SYNC_TOKEN"),
	}

	if workers := getenv("MD2SLIDES_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for unrecognized MD2SLIDES_* variables.
// Helps catch typos like MD2SLIDES_VALT.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays environment values on a loaded config. A set
// variable wins over the file; command-line flags are merged afterwards, so
// the precedence is flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Vault != "" {
		cfg.Vault.Root = env.Vault
	}
	if env.OutputDir != "" {
		cfg.Output.Folder = env.OutputDir
	}
	if env.Design != "" {
		cfg.Design.User = env.Design
	}
	if env.Renderer != "" {
		cfg.Renderer = strings.ToLower(env.Renderer)
	}
	if env.SyncToken != "" {
		cfg.Sync.Token = env.SyncToken
	}
}
