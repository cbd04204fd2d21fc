package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchDebounce groups the burst of events an editor emits on save.
const watchDebounce = 300 * time.Millisecond

// runWatchCmd converts a note, then again every time it is saved, until
// interrupted.
func runWatchCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: watch needs exactly one note", ErrUsage)
	}

	cfg, _, err := loadConfig(flags.common, env)
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
	conv, err := newConverter(v, buildOptions(cfg, flags.design.design, v.Root()), flags.common, env, logger)
	if err != nil {
		return err
	}

	note := noteArg(positional[0])
	path, err := conv.Locate(note)
	if err != nil {
		return err
	}

	w := &watcher{
		conv:     conv,
		note:     note,
		path:     filepath.Clean(path),
		debounce: watchDebounce,
		logger:   logger,
		env:      env,
		quiet:    flags.common.quiet,
	}
	return w.run(ctx)
}

// watcher rebuilds one deck when its note changes. Rebuilds run one at a
// time.
type watcher struct {
	conv     NoteConverter
	note     string
	path     string // absolute path of the note
	debounce time.Duration
	logger   zerolog.Logger
	env      *Environment
	quiet    bool

	mu     sync.Mutex
	builds int
}

// run converts once, then watches the note's folder; editors often save by
// replacing the file, which a watch on the file itself would miss.
func (w *watcher) run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}

	w.rebuild(ctx)
	if !w.quiet {
		fmt.Fprintf(w.env.Stdout, "Watching %s (Ctrl+C to stop)\n", w.path)
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		// Wait for a rebuild in progress.
		w.mu.Lock()
		defer w.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			w.logger.Debug().Str("event", event.Op.String()).Msg("note changed")
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() { w.rebuild(ctx) })
			} else {
				timer.Reset(w.debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// rebuild converts the note and reports the outcome.
func (w *watcher) rebuild(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	w.builds++

	res, err := w.conv.Convert(ctx, w.note)
	switch {
	case errors.Is(err, context.Canceled):
		return
	case err != nil:
		color.New(color.FgRed).Fprintf(w.env.Stderr, "FAILED %s: %v\n", w.note, err)
	case !w.quiet:
		fmt.Fprintf(w.env.Stdout, "Created %s\n", res.Path)
	}
}
