// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for headless browser failures during PDF preview.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForConfigNotFound suggests --config or the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2slides") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForDesignNotFound lists the designs the vault and the embedded set provide.
func ForDesignNotFound(available []string) string {
	if len(available) == 0 {
		return format("run `md2slides sync` to fetch designs into the vault")
	}
	return format("available designs: " + strings.Join(available, ", "))
}

// ForMissingTitle explains the H1 requirement.
func ForMissingTitle() string {
	return format("start the note with a level-1 heading, e.g. \"# My Talk\"")
}

// ForAlreadyConverted points at the source note rather than the deck.
func ForAlreadyConverted() string {
	return format("convert the source note, not a generated deck")
}

// ForVaultNotFound suggests how to point at the vault.
func ForVaultNotFound() string {
	return format("use --vault DIR or set MD2SLIDES_VAULT")
}

// ForSyncAuth returns hints for rejected sync credentials.
func ForSyncAuth(provider string) string {
	switch provider {
	case "airtable":
		return format("set MD2SLIDES_SYNC_TOKEN to an Airtable personal access token")
	case "nocodb":
		return format("set MD2SLIDES_SYNC_TOKEN to a NocoDB API token (xc-token)")
	default:
		return format("set MD2SLIDES_SYNC_TOKEN")
	}
}

// ForNoInput explains why a prompt could not be answered.
func ForNoInput(field string) string {
	return format("pass --" + field + " or drop --no-input")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
