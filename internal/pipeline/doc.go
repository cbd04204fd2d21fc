// Package pipeline implements the note-to-deck rewriting passes.
//
// Every pass takes the document as a string and returns the rewritten
// string. Passes are line oriented and rely on a fence mask computed per
// pass, so headings, separators and markers inside fenced code or $$ math
// blocks are never treated as structure:
//   - structure classification from heading counts
//   - heading renormalization for notes with several H1
//   - image, wiki-link and embed rewriting
//   - fragments, page separators and per-slide annotations
//   - table of contents and navigation header
//   - template expansion, footnotes and ::: blocks
//   - {{placeholder}} finalization
//
// Reading files, prompting the user and writing decks are left to callers
// through the NoteSource, TemplateSource, PathResolver and Prompter
// interfaces, which keeps every pass testable with in-memory fakes.
package pipeline
