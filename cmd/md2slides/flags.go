package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	vault   string
	quiet   bool
	verbose bool
	noInput bool
}

// designFlags selects the design and the renderer.
type designFlags struct {
	design    string
	renderer  string
	prompt    bool
	assetPath string
}

// outputFlags holds deck placement flags.
type outputFlags struct {
	folder    string
	sameAsDoc bool
	noTheme   bool
}

// slideFlags tunes the conversion pipeline.
type slideFlags struct {
	width              int
	height             int
	tocPage            int
	slideType          string
	noFragments        bool
	paragraphFragments bool
	nav                bool
	noNav              bool
	convertLinks       bool
}

// presenterFlags fills the presenter placeholders.
type presenterFlags struct {
	name    string
	tagline string
	slogan  string
	date    string
}

// convertFlags holds all flags for the convert and watch commands.
type convertFlags struct {
	common    commonFlags
	workers   int
	design    designFlags
	output    outputFlags
	slides    slideFlags
	presenter presenterFlags
}

// insertFlags holds flags for the insert command.
type insertFlags struct {
	common    commonFlags
	design    designFlags
	presenter presenterFlags
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common  commonFlags
	output  string
	design  string
	pdf     bool
	width   int
	height  int
	timeout string
}

// syncFlags holds flags for the sync command.
type syncFlags struct {
	common       commonFlags
	provider     string
	baseURL      string
	baseID       string
	table        string
	folder       string
	pathField    string
	contentField string
	triggerURL   string
	maxPages     int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.vault, "vault", "", "vault directory (default: current directory)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.BoolVar(&f.noInput, "no-input", false, "never prompt; use defaults")
}

// addDesignFlags adds design selection flags to a FlagSet.
func addDesignFlags(fs *flag.FlagSet, f *designFlags) {
	fs.StringVarP(&f.design, "design", "d", "", "design name (wins over the note's slideDesign)")
	fs.StringVarP(&f.renderer, "renderer", "r", "", "renderer: marp, reveal")
	fs.BoolVar(&f.prompt, "prompt-design", false, "ask for a design when none is set")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom designs directory")
}

// addOutputFlags adds deck placement flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.folder, "output", "o", "", "vault-relative deck folder")
	fs.BoolVar(&f.sameAsDoc, "same-as-doc", false, "write the deck next to its note")
	fs.BoolVar(&f.noTheme, "no-theme", false, "do not write themes/<design>.css")
}

// addSlideFlags adds pipeline flags to a FlagSet.
func addSlideFlags(fs *flag.FlagSet, f *slideFlags) {
	fs.IntVar(&f.width, "width", 0, "slide width in pixels")
	fs.IntVar(&f.height, "height", 0, "slide height in pixels")
	fs.IntVar(&f.tocPage, "toc-page", 0, "separator before which the TOC slide goes")
	fs.StringVar(&f.slideType, "content-slides", "", "content page slide type: horizontal, vertical")
	fs.BoolVar(&f.noFragments, "no-fragments", false, "plain TOC items instead of fragments")
	fs.BoolVar(&f.paragraphFragments, "paragraph-fragments", false, "reveal paragraphs one by one")
	fs.BoolVar(&f.nav, "nav", false, "add a navigation header to every slide")
	fs.BoolVar(&f.noNav, "no-nav", false, "disable navigation headers")
	fs.BoolVar(&f.convertLinks, "convert-links", false, "turn wiki-links into Markdown links")
}

// addPresenterFlags adds presenter flags to a FlagSet.
func addPresenterFlags(fs *flag.FlagSet, f *presenterFlags) {
	fs.StringVar(&f.name, "presenter", "", "presenter name")
	fs.StringVar(&f.tagline, "tagline", "", "tagline shown in slide headers")
	fs.StringVar(&f.slogan, "slogan", "", "slogan")
	fs.StringVar(&f.date, "date", "", "presentation date (\"auto\" = today)")
}

func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := buildConvertFlagSet(f, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func buildConvertFlagSet(f *convertFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("convert", printConvertUsage, stderr)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel conversions (0 = auto)")
	addCommonFlags(fs, &f.common)
	addDesignFlags(fs, &f.design)
	addOutputFlags(fs, &f.output)
	addSlideFlags(fs, &f.slides)
	addPresenterFlags(fs, &f.presenter)
	return fs
}

// parseWatchFlags parses watch command flags. Watch shares the convert
// flags; the worker count is ignored.
func parseWatchFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := buildWatchFlagSet(f, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func buildWatchFlagSet(f *convertFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("watch", printWatchUsage, stderr)
	addCommonFlags(fs, &f.common)
	addDesignFlags(fs, &f.design)
	addOutputFlags(fs, &f.output)
	addSlideFlags(fs, &f.slides)
	addPresenterFlags(fs, &f.presenter)
	return fs
}

// parseInsertFlags parses insert command flags.
func parseInsertFlags(args []string, stderr io.Writer) (*insertFlags, []string, error) {
	f := &insertFlags{}
	fs := buildInsertFlagSet(f, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func buildInsertFlagSet(f *insertFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("insert", printInsertUsage, stderr)
	addCommonFlags(fs, &f.common)
	addDesignFlags(fs, &f.design)
	addPresenterFlags(fs, &f.presenter)
	return fs
}

// parsePreviewFlags parses preview command flags.
func parsePreviewFlags(args []string, stderr io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := buildPreviewFlagSet(f, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func buildPreviewFlagSet(f *previewFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("preview", printPreviewUsage, stderr)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: deck name with .html or .pdf)")
	fs.StringVarP(&f.design, "design", "d", "", "design stylesheet (default: the deck theme)")
	fs.BoolVar(&f.pdf, "pdf", false, "print to PDF with headless Chrome")
	fs.IntVar(&f.width, "width", 0, "page width in pixels (default: the deck size)")
	fs.IntVar(&f.height, "height", 0, "page height in pixels (default: the deck size)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	return fs
}

// parseSyncFlags parses sync command flags.
func parseSyncFlags(args []string, stderr io.Writer) (*syncFlags, []string, error) {
	f := &syncFlags{}
	fs := buildSyncFlagSet(f, stderr)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func buildSyncFlagSet(f *syncFlags, stderr io.Writer) *flag.FlagSet {
	fs := newFlagSet("sync", printSyncUsage, stderr)
	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.provider, "provider", "", "remote table service: airtable, nocodb")
	fs.StringVar(&f.baseURL, "base-url", "", "service URL (required for NocoDB)")
	fs.StringVar(&f.baseID, "base-id", "", "Airtable base ID")
	fs.StringVar(&f.table, "table", "", "table name or ID")
	fs.StringVar(&f.folder, "folder", "", "vault-relative designs folder")
	fs.StringVar(&f.pathField, "path-field", "", "field holding the file path")
	fs.StringVar(&f.contentField, "content-field", "", "field holding the file content")
	fs.StringVar(&f.triggerURL, "trigger-url", "", "webhook called before fetching")
	fs.IntVar(&f.maxPages, "max-pages", 0, "maximum pages fetched")
	return fs
}
