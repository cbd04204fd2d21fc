// Package preview renders a generated slide deck to a standalone HTML page
// and, through headless Chrome, to a PDF handout with one page per slide.
package preview
