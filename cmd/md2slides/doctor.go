package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Vault    vaultInfo  `json:"vault"`
	Sync     syncInfo   `json:"sync"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// vaultInfo describes the vault and the designs a conversion can use.
type vaultInfo struct {
	Root     string   `json:"root,omitempty"`
	Notes    int      `json:"notes"`
	Designs  []string `json:"designs,omitempty"`
	Renderer string   `json:"renderer"`
}

// syncInfo describes the remote design table settings.
type syncInfo struct {
	Provider string `json:"provider,omitempty"`
	Token    bool   `json:"token"`
}

// chromeInfo holds Chrome/Chromium detection results for preview --pdf.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// runDoctorCmd checks the setup and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	var common commonFlags
	var jsonOutput bool
	fs := newFlagSet("doctor", printDoctorUsage, env.Stderr)
	addCommonFlags(fs, &common)
	fs.BoolVar(&jsonOutput, "json", false, "print the report as JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "Error:", err)
		return ExitUsage
	}

	result := runDoctor(ctx, common, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, common commonFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  env.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: env.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkVault(ctx, result, common, env)
	checkChrome(result)
	checkEnvironment(result, env.Getenv)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkVault loads the configuration, indexes the vault and lists the
// designs it resolves.
func checkVault(ctx context.Context, result *doctorResult, common commonFlags, env *Environment) {
	cfg, _, err := loadConfig(common, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Vault.Renderer = cfg.Renderer
	result.Sync = syncInfo{Provider: cfg.Sync.Provider, Token: cfg.Sync.Token != ""}
	if cfg.Sync.Provider != "" && cfg.Sync.Token == "" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("sync.provider is %s but no token is set. Set MD2SLIDES_SYNC_TOKEN", cfg.Sync.Provider))
	}

	v, err := openVault(ctx, cfg)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Vault.Root = v.Root()
	for _, f := range v.Files() {
		if fileutil.IsMarkdown(f.Rel) {
			result.Vault.Notes++
		}
	}

	resolver, err := assets.NewResolver(buildOptions(cfg, "", v.Root()).AssetsPath)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("designs folder: %v", err))
		return
	}
	designs, err := resolver.Designs()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("listing designs: %v", err))
		return
	}
	result.Vault.Designs = designs
	if !resolver.HasDesign(cfg.Design.Default) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("default design %q not found", cfg.Design.Default))
	}
	if u := cfg.Design.User; u != "" && u != config.DesignNone && !resolver.HasDesign(u) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("user design %q not found; the default design is used", u))
	}
}

// checkChrome detects Chrome/Chromium. Only preview --pdf needs it, so a
// missing browser is a warning.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; preview --pdf is unavailable. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	cmd := exec.Command(chromePath, "--version") // #nosec G204 -- browser path from rod lookup or ROD_BROWSER_BIN
	if out, err := cmd.Output(); err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1 for preview --pdf")
	}
}

// isContainer detects a container environment and names the signal.
func isContainer(getenv func(string) string) (bool, string) {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2slides doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Vault")
	if r.Vault.Root != "" {
		fmt.Fprintf(w, "  [OK] Root: %s (%d notes)\n", r.Vault.Root, r.Vault.Notes)
		fmt.Fprintf(w, "  [OK] Renderer: %s\n", r.Vault.Renderer)
		if len(r.Vault.Designs) > 0 {
			fmt.Fprintf(w, "  [OK] Designs: %s\n", strings.Join(r.Vault.Designs, ", "))
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not available")
	}
	if r.Sync.Provider != "" {
		fmt.Fprintf(w, "  [OK] Sync: %s (token set: %t)\n", r.Sync.Provider, r.Sync.Token)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (preview --pdf)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
