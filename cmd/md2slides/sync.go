package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/designsync"
	"github.com/alnah/go-md2slides/internal/hints"
)

// runSyncCmd copies the remote design table into the vault designs folder.
func runSyncCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseSyncFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: sync takes no arguments", ErrUsage)
	}

	cfg, _, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	mergeSyncFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common)
	v, err := openVault(ctx, cfg)
	if err != nil {
		return err
	}

	provider, err := designsync.NewProvider(designsync.Settings{
		Provider: cfg.Sync.Provider,
		BaseURL:  cfg.Sync.BaseURL,
		Token:    cfg.Sync.Token,
		BaseID:   cfg.Sync.BaseID,
		Table:    cfg.Sync.Table,
	}, env.HTTPClient)
	if err != nil {
		return err
	}
	writer := &designsync.Writer{
		Dir:          filepath.Join(v.Root(), cfg.Sync.Folder),
		PathField:    cfg.Sync.PathField,
		ContentField: cfg.Sync.ContentField,
	}
	syncer := designsync.NewSyncer(provider, writer, env.HTTPClient, logger, designsync.Options{
		TriggerURL: cfg.Sync.TriggerURL,
		MaxPages:   cfg.Sync.MaxPages,
	})

	report, err := syncer.Run(ctx)
	printSyncReport(report, flags.common.quiet, flags.common.verbose, env)
	if err != nil {
		if errors.Is(err, designsync.ErrAuth) {
			return fmt.Errorf("%w%s", err, hints.ForSyncAuth(provider.Name()))
		}
		return err
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%w: %d of %d records", ErrPartialFailure, len(report.Failed), len(report.Failed)+len(report.Written))
	}
	return nil
}

// mergeSyncFlags merges sync flags into config. CLI values override config
// values.
func mergeSyncFlags(f *syncFlags, cfg *config.Config) {
	for _, s := range []struct {
		dst *string
		v   string
	}{
		{&cfg.Sync.Provider, f.provider},
		{&cfg.Sync.BaseURL, f.baseURL},
		{&cfg.Sync.BaseID, f.baseID},
		{&cfg.Sync.Table, f.table},
		{&cfg.Sync.Folder, f.folder},
		{&cfg.Sync.PathField, f.pathField},
		{&cfg.Sync.ContentField, f.contentField},
		{&cfg.Sync.TriggerURL, f.triggerURL},
	} {
		if s.v != "" {
			*s.dst = s.v
		}
	}
	if f.maxPages > 0 {
		cfg.Sync.MaxPages = f.maxPages
	}
}

// printSyncReport lists written files and failures like the convert
// summary.
func printSyncReport(r designsync.Report, quiet, verbose bool, env *Environment) {
	for _, f := range r.Failed {
		target := f.Path
		if target == "" {
			target = "record " + f.RecordID
		}
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", target, f.Err)
	}
	if quiet {
		return
	}
	if verbose {
		for _, p := range r.Written {
			fmt.Fprintf(env.Stdout, "Wrote %s\n", p)
		}
	}
	if r.Truncated {
		fmt.Fprintf(env.Stdout, "Stopped after %d pages; raise sync.maxPages to fetch more\n", r.Pages)
	}
	fmt.Fprintf(env.Stdout, "%d written, %d failed\n", len(r.Written), len(r.Failed))
}
