package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert notes to slide decks")
	fmt.Fprintln(w, "  insert     Append a design layout to a note")
	fmt.Fprintln(w, "  watch      Reconvert a note on every save")
	fmt.Fprintln(w, "  preview    Render a deck to HTML or PDF")
	fmt.Fprintln(w, "  sync       Fetch designs from Airtable or NocoDB")
	fmt.Fprintln(w, "  doctor     Check the setup")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2slides help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --vault <dir>         Vault directory (default: current directory)")
	fmt.Fprintln(w, "      --no-input            Never prompt; use defaults")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

func printDesignUsage(w io.Writer) {
	fmt.Fprintln(w, "Design:")
	fmt.Fprintln(w, "  -d, --design <name>       Design (wins over the note's slideDesign)")
	fmt.Fprintln(w, "  -r, --renderer <s>        Renderer: marp, reveal")
	fmt.Fprintln(w, "      --prompt-design       Ask for a design when none is set")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom designs directory")
}

func printPresenterUsage(w io.Writer) {
	fmt.Fprintln(w, "Presenter:")
	fmt.Fprintln(w, "      --presenter <s>       Presenter name")
	fmt.Fprintln(w, "      --tagline <s>         Tagline shown in slide headers")
	fmt.Fprintln(w, "      --slogan <s>          Slogan")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, dddd, ddd")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
}

func printSlideUsage(w io.Writer) {
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Vault-relative deck folder (default: Slides)")
	fmt.Fprintln(w, "      --same-as-doc         Write the deck next to its note")
	fmt.Fprintln(w, "      --no-theme            Do not write themes/<design>.css")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Slides:")
	fmt.Fprintln(w, "      --width <px>          Slide width (default: 1280)")
	fmt.Fprintln(w, "      --height <px>         Slide height (default: 720)")
	fmt.Fprintln(w, "      --toc-page <n>        Separator before which the TOC slide goes")
	fmt.Fprintln(w, "      --content-slides <s>  Content page slide type: horizontal, vertical")
	fmt.Fprintln(w, "      --no-fragments        Plain TOC items instead of fragments")
	fmt.Fprintln(w, "      --paragraph-fragments Reveal paragraphs one by one")
	fmt.Fprintln(w, "      --nav, --no-nav       Toggle the per-slide navigation header")
	fmt.Fprintln(w, "      --convert-links       Turn wiki-links into Markdown links")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides convert <note|folder>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert notes to slide decks written inside the vault.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  note      Note file, vault-relative path, or note name")
	fmt.Fprintln(w, "  folder    Every note below the folder (deck and design folders skipped)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel conversions (0 = auto)")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	printDesignUsage(w)
	fmt.Fprintln(w)
	printSlideUsage(w)
	fmt.Fprintln(w)
	printPresenterUsage(w)
}

// printWatchUsage prints usage for the watch command.
func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides watch <note> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a note, then again every time it is saved. Ctrl+C stops.")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	printDesignUsage(w)
	fmt.Fprintln(w)
	printSlideUsage(w)
	fmt.Fprintln(w)
	printPresenterUsage(w)
}

// printInsertUsage prints usage for the insert command.
func printInsertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides insert <layout> <note> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Append a base layout of the note's design to the note.")
	fmt.Fprintln(w, "Placeholders such as {{cName}} are asked interactively.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layouts: cover, chapter, page, toc, backcover")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	printDesignUsage(w)
	fmt.Fprintln(w)
	printPresenterUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides preview <deck> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a generated deck to a standalone HTML page, or a PDF handout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: deck name with .html or .pdf)")
	fmt.Fprintln(w, "  -d, --design <name>       Stylesheet (default: the deck theme)")
	fmt.Fprintln(w, "      --pdf                 Print to PDF with headless Chrome")
	fmt.Fprintln(w, "      --width <px>          Page width (default: the deck size)")
	fmt.Fprintln(w, "      --height <px>         Page height (default: the deck size)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printSyncUsage prints usage for the sync command.
func printSyncUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides sync [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Copy design files from an Airtable or NocoDB table into the vault.")
	fmt.Fprintln(w, "The token is read from sync.token or MD2SLIDES_SYNC_TOKEN.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --provider <s>        Service: airtable, nocodb")
	fmt.Fprintln(w, "      --base-url <url>      Service URL (required for NocoDB)")
	fmt.Fprintln(w, "      --base-id <id>        Airtable base ID")
	fmt.Fprintln(w, "      --table <name>        Table name or ID")
	fmt.Fprintln(w, "      --folder <dir>        Vault-relative designs folder (default: Designs)")
	fmt.Fprintln(w, "      --path-field <s>      Field holding the file path (default: path)")
	fmt.Fprintln(w, "      --content-field <s>   Field holding the file content (default: content)")
	fmt.Fprintln(w, "      --trigger-url <url>   Webhook called before fetching")
	fmt.Fprintln(w, "      --max-pages <n>       Maximum pages fetched (default: 50)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides doctor [--json] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the configuration, the vault, its designs and Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "insert":
		printInsertUsage(env.Stdout)
	case "watch":
		printWatchUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "sync":
		printSyncUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2slides version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2slides help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
