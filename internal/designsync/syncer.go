package designsync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Sync defaults.
const (
	DefaultMaxPages    = 50
	DefaultTriggerWait = 1500 * time.Millisecond
)

// Options tune a sync run.
type Options struct {
	TriggerURL  string        // optional webhook POSTed before polling
	TriggerWait time.Duration // pause after the trigger; zero uses DefaultTriggerWait
	MaxPages    int           // zero uses DefaultMaxPages
}

// Failure is one record that could not be written.
type Failure struct {
	RecordID string
	Path     string
	Err      error
}

// Report summarizes a sync run.
type Report struct {
	Written   []string
	Failed    []Failure
	Pages     int
	Truncated bool // stopped at MaxPages with more pages available
}

// Syncer copies a remote table into the vault.
type Syncer struct {
	provider Provider
	writer   *Writer
	client   *http.Client
	logger   zerolog.Logger
	opts     Options
}

// NewSyncer builds a Syncer. A nil client uses DefaultHTTPTimeout.
func NewSyncer(p Provider, w *Writer, client *http.Client, logger zerolog.Logger, opts Options) *Syncer {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	if opts.TriggerWait <= 0 {
		opts.TriggerWait = DefaultTriggerWait
	}
	return &Syncer{
		provider: p,
		writer:   w,
		client:   client,
		logger:   logger.With().Str("provider", p.Name()).Logger(),
		opts:     opts,
	}
}

// Run fetches every page and writes its records. Remote and context errors
// stop the run; per-record failures are collected in the report.
func (s *Syncer) Run(ctx context.Context) (Report, error) {
	var report Report

	if s.opts.TriggerURL != "" {
		if err := s.trigger(ctx); err != nil {
			return report, err
		}
		s.logger.Debug().Dur("wait", s.opts.TriggerWait).Msg("trigger sent")
		timer := time.NewTimer(s.opts.TriggerWait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return report, ctx.Err()
		case <-timer.C:
		}
	}

	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		page, err := s.provider.FetchPage(ctx, cursor)
		if err != nil {
			return report, err
		}
		report.Pages++
		s.logger.Debug().Int("page", report.Pages).Int("records", len(page.Records)).Msg("page fetched")

		for _, rec := range page.Records {
			path, err := s.writer.Write(rec)
			if err != nil {
				s.logger.Warn().Str("record", rec.ID).Err(err).Msg("record skipped")
				report.Failed = append(report.Failed, Failure{RecordID: rec.ID, Path: path, Err: err})
				continue
			}
			report.Written = append(report.Written, path)
		}

		if page.Next == "" {
			break
		}
		if report.Pages >= s.opts.MaxPages {
			report.Truncated = true
			s.logger.Warn().Int("maxPages", s.opts.MaxPages).Msg("page limit reached, remaining records not synced")
			break
		}
		cursor = page.Next
	}

	s.logger.Info().Int("written", len(report.Written)).Int("failed", len(report.Failed)).Msg("sync finished")
	return report, nil
}

func (s *Syncer) trigger(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.TriggerURL, nil)
	if err != nil {
		return fmt.Errorf("%w: trigger: %v", ErrRemote, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: trigger: %v", ErrRemote, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	return checkStatus(resp)
}
