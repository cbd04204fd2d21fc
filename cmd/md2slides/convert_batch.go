package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	md2slides "github.com/alnah/go-md2slides"
)

// NoteConverter is the interface for the conversion service.
type NoteConverter interface {
	Convert(ctx context.Context, note string) (*md2slides.Result, error)
}

// Compile-time interface implementation check.
var _ NoteConverter = (*md2slides.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	Note       string
	OutputPath string
	Notices    int
	Err        error
	Duration   time.Duration
}

// convertBatch converts notes concurrently with a fixed number of workers.
// A failed note never stops the others; results keep the input order.
func convertBatch(ctx context.Context, conv NoteConverter, notes []string, workers int) []ConversionResult {
	if len(notes) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(notes))

	results := make([]ConversionResult, len(notes))
	var wg sync.WaitGroup
	jobs := make(chan int, len(notes))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{Note: notes[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = convertNote(ctx, conv, notes[idx])
			}
		}()
	}

	for i := range notes {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertNote converts a single note and returns the result.
func convertNote(ctx context.Context, conv NoteConverter, note string) ConversionResult {
	start := time.Now()
	res, err := conv.Convert(ctx, note)
	if err != nil {
		return ConversionResult{Note: note, Err: err, Duration: time.Since(start)}
	}
	return ConversionResult{
		Note:       note,
		OutputPath: res.Path,
		Notices:    len(res.Notices),
		Duration:   time.Since(start),
	}
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Note, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v, %d notices)\n", r.Note, r.OutputPath, r.Duration.Round(time.Millisecond), r.Notices)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
