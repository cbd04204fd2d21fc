package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	md2slides "github.com/alnah/go-md2slides"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrUsage          = errors.New("invalid usage")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrPartialFailure = errors.New("some conversions failed")
)

// usageError marks flag parsing failures; --help passes through.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// runConvertCmd converts the notes and folders named in args.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: convert needs a note or a folder", ErrNoInput)
	}

	cfg, envCfg, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	mergeConvertFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common)
	v, err := openVault(ctx, cfg)
	if err != nil {
		return err
	}
	opts := buildOptions(cfg, flags.design.design, v.Root())
	conv, err := newConverter(v, opts, flags.common, env, logger)
	if err != nil {
		return err
	}

	exclude := []string{
		filepath.Join(v.Root(), cfg.Output.Folder),
		filepath.Join(v.Root(), cfg.Sync.Folder),
	}
	notes, err := discoverNotes(positional, exclude)
	if err != nil {
		return fmt.Errorf("discovering notes: %w", err)
	}
	if len(notes) == 0 {
		return fmt.Errorf("%w: no markdown notes found in %s", ErrNoInput, strings.Join(positional, ", "))
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	workers = md2slides.ResolveWorkers(workers)
	if interactivePrompts(env, flags.common.noInput) {
		workers = 1
	}
	logger.Debug().Int("workers", workers).Int("notes", len(notes)).Str("vault", v.Root()).Msg("converting")

	results := convertBatch(ctx, conv, notes, workers)
	if len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}

	if failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		return fmt.Errorf("%w: %d of %d notes", ErrPartialFailure, failed, len(results))
	}
	return nil
}

// interactivePrompts reports whether questions go to the terminal, in
// which case conversions run one at a time.
func interactivePrompts(env *Environment, noInput bool) bool {
	return env.Prompter == nil && env.Interactive && !noInput
}
