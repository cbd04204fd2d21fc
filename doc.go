// Package md2slides converts Obsidian notes into Marp or Reveal slide decks.
//
// # Quick Start
//
// Open the vault, create a converter and convert a note:
//
//	v, err := vault.Open(ctx, "/path/to/vault")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	conv, err := md2slides.NewConverter(v, md2slides.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, "Talks/Intro.md")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Path)
//
// # Conversion Pipeline
//
// A note goes through a fixed sequence of text passes. Each pass consumes
// the previous pass's output:
//
//  1. Front-matter parsing and embed inlining (![[note]], ![[note#heading]])
//  2. Validation: a level-1 heading is required, generated decks are refused
//  3. Structure classification from heading counts (immutable for the run)
//  4. Image and wiki-link rewriting, fragments
//  5. Slide separators and per-slide annotations (id, class, template, header)
//  6. Table of contents and back cover slides
//  7. Template expansion, ::: blocks and footnotes, slide by slide
//  8. Placeholder finalization ({{presenter}}, {{slideName}}, ...) and
//     deck front-matter
//
// # Prompts
//
// Placeholders that have no configured value are asked through a Prompter.
// Without one they resolve to "". A cancelled prompt leaves its field empty
// and is reported in Result.Aborted; a cancelled design selection aborts the
// conversion with ErrAborted.
//
// # Concurrency
//
// A Converter is safe for concurrent use. Conversions that write the same
// deck are serialized and every file is written atomically.
package md2slides
