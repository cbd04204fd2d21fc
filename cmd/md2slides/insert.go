package main

import (
	"context"
	"fmt"
	"strings"

	md2slides "github.com/alnah/go-md2slides"
)

// runInsertCmd appends a design layout to a note.
func runInsertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseInsertFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) != 2 {
		return fmt.Errorf("%w: insert needs a layout (%s) and a note", ErrUsage, strings.Join(md2slides.InsertableLayouts, ", "))
	}
	layout, note := strings.ToLower(positional[0]), noteArg(positional[1])

	cfg, _, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	mergeDesignFlags(flags.design, cfg)
	mergePresenterFlags(flags.presenter, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common)
	v, err := openVault(ctx, cfg)
	if err != nil {
		return err
	}
	conv, err := newConverter(v, buildOptions(cfg, flags.design.design, v.Root()), flags.common, env, logger)
	if err != nil {
		return err
	}

	text, err := conv.Insert(ctx, layout, note)
	if err != nil {
		return err
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Inserted %s layout into %s\n", layout, note)
	}
	logger.Debug().Str("layout", layout).Int("bytes", len(text)).Msg("inserted")
	return nil
}
