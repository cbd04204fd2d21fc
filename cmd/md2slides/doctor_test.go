package main

// Notes:
// - runDoctor: we test the vault and design checks on temporary vaults.
//   Chrome detection depends on the host, so assertions avoid its result.
// - runDoctorCmd: we test --json output and exit codes.
// - isContainer: we test the environment signals.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunDoctor - Vault and design checks
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	t.Run("healthy vault", func(t *testing.T) {
		t.Parallel()

		root := writeVault(t, map[string]string{
			"Intro.md":             "# Intro\n",
			"Talks/Deep.md":        "# Deep\n",
			"image.png":            "png",
			"Designs/styles/Z.css": "section {}",
		})
		env, _, _ := testEnv(t)

		r := runDoctor(context.Background(), commonFlags{vault: root}, env)

		if len(r.Errors) > 0 {
			t.Fatalf("Errors = %v", r.Errors)
		}
		if r.Vault.Notes != 2 {
			t.Errorf("Notes = %d, want 2", r.Vault.Notes)
		}
		if !slices.Contains(r.Vault.Designs, "A") || !slices.Contains(r.Vault.Designs, "Z") {
			t.Errorf("Designs = %v, want embedded A and synced Z", r.Vault.Designs)
		}
		if r.Vault.Renderer != "marp" {
			t.Errorf("Renderer = %q", r.Vault.Renderer)
		}
		if r.Status == statusErrors {
			t.Errorf("Status = %q", r.Status)
		}
	})

	t.Run("missing vault", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(t)
		r := runDoctor(context.Background(), commonFlags{vault: filepath.Join(t.TempDir(), "none")}, env)

		if r.Status != statusErrors || len(r.Errors) == 0 {
			t.Errorf("Status = %q, Errors = %v", r.Status, r.Errors)
		}
	})

	t.Run("unknown user design and missing token warn", func(t *testing.T) {
		t.Parallel()

		root := writeVault(t, map[string]string{"Intro.md": "# Intro\n"})
		env, _, _ := testEnv(t)
		env.Getenv = mapGetenv(map[string]string{"MD2SLIDES_DESIGN": "Nope"})
		cfg := filepath.Join(root, "md2slides.yaml")
		writeFile(t, cfg, "sync:\n  provider: airtable\n")

		r := runDoctor(context.Background(), commonFlags{vault: root, config: cfg}, env)

		joined := strings.Join(r.Warnings, "\n")
		if !strings.Contains(joined, `user design "Nope" not found`) {
			t.Errorf("Warnings = %v", r.Warnings)
		}
		if !strings.Contains(joined, "MD2SLIDES_SYNC_TOKEN") {
			t.Errorf("Warnings = %v, want token warning", r.Warnings)
		}
		if r.Sync.Provider != "airtable" || r.Sync.Token {
			t.Errorf("Sync = %+v", r.Sync)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Output and exit codes
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("json report", func(t *testing.T) {
		t.Parallel()

		root := writeVault(t, map[string]string{"Intro.md": "# Intro\n"})
		env, stdout, _ := testEnv(t)

		code := runDoctorCmd(context.Background(), []string{"--json", "--vault", root}, env)
		if code != ExitSuccess {
			t.Errorf("exit = %d, want %d", code, ExitSuccess)
		}
		var r doctorResult
		if err := json.Unmarshal(stdout.Bytes(), &r); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
		}
		if r.Vault.Notes != 1 || r.Env.OS == "" {
			t.Errorf("report = %+v", r)
		}
	})

	t.Run("text report with errors", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(t)
		code := runDoctorCmd(context.Background(), []string{"--vault", filepath.Join(t.TempDir(), "none")}, env)
		if code != ExitGeneral {
			t.Errorf("exit = %d, want %d", code, ExitGeneral)
		}
		for _, want := range []string{"md2slides doctor", "[ERROR]", "Status: Not ready"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("stdout missing %q:\n%s", want, stdout.String())
			}
		}
	})

	t.Run("bad flag", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(t)
		if code := runDoctorCmd(context.Background(), []string{"--yaml"}, env); code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
	})
}

// ---------------------------------------------------------------------------
// TestIsContainer - Environment signals
// ---------------------------------------------------------------------------

func TestIsContainer(t *testing.T) {
	t.Parallel()

	if ok, hint := isContainer(mapGetenv(map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"})); !ok || hint != "KUBERNETES_SERVICE_HOST" && hint != "/.dockerenv" {
		t.Errorf("isContainer(k8s) = %v, %q", ok, hint)
	}
	if ok, hint := isContainer(mapGetenv(map[string]string{"container": "podman"})); !ok || hint != "container=podman" && hint != "/.dockerenv" {
		t.Errorf("isContainer(podman) = %v, %q", ok, hint)
	}
}
