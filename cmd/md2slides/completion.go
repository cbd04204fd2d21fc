package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	md2slides "github.com/alnah/go-md2slides"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	Args       []string // fixed first-argument values
	TakesFiles bool     // accepts note or deck arguments
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"renderer":       {Values: []string{"marp", "reveal"}},
	"content-slides": {Values: []string{"horizontal", "vertical"}},
	"provider":       {Values: []string{"airtable", "nocodb"}},

	"config": {FileGlob: "*.yaml,*.yml"},

	"vault":      {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	discard := io.Discard
	doctor := newFlagSet("doctor", printDoctorUsage, discard)
	addCommonFlags(doctor, &commonFlags{})
	doctor.Bool("json", false, "print the report as JSON")

	return []commandDef{
		{Name: "convert", Desc: "Convert notes to slide decks", Flags: extractFlagsFromFlagSet(buildConvertFlagSet(&convertFlags{}, discard)), TakesFiles: true},
		{Name: "watch", Desc: "Reconvert a note on every save", Flags: extractFlagsFromFlagSet(buildWatchFlagSet(&convertFlags{}, discard)), TakesFiles: true},
		{Name: "insert", Desc: "Append a design layout to a note", Flags: extractFlagsFromFlagSet(buildInsertFlagSet(&insertFlags{}, discard)), Args: md2slides.InsertableLayouts, TakesFiles: true},
		{Name: "preview", Desc: "Render a deck to HTML or PDF", Flags: extractFlagsFromFlagSet(buildPreviewFlagSet(&previewFlags{}, discard)), TakesFiles: true},
		{Name: "sync", Desc: "Fetch designs from Airtable or NocoDB", Flags: extractFlagsFromFlagSet(buildSyncFlagSet(&syncFlags{}, discard))},
		{Name: "doctor", Desc: "Check the setup", Flags: extractFlagsFromFlagSet(doctor)},
		{Name: "completion", Desc: "Generate shell completion script", Args: []string{"bash", "zsh", "fish", "powershell"}},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	cmds := getCommands()
	switch shell {
	case ShellBash:
		writeBash(&b, cmds)
	case ShellZsh:
		b.WriteString("#compdef md2slides\nautoload -U +X bashcompinit && bashcompinit\n")
		writeBash(&b, cmds)
	case ShellFish:
		writeFish(&b, cmds)
	case ShellPowerShell:
		writePowerShell(&b, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func flagWords(c commandDef) string {
	var words []string
	for _, f := range c.Flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

func writeBash(b *strings.Builder, cmds []commandDef) {
	b.WriteString("_md2slides() {\n")
	b.WriteString("  local cur prev cmd\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("  if [ \"$COMP_CWORD\" -eq 1 ]; then\n")
	fmt.Fprintf(b, "    COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("    return\n  fi\n")
	b.WriteString("  case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "  %s)\n", c.Name)
		b.WriteString("    case \"$prev\" in\n")
		for _, f := range c.Flags {
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(b, "    --%s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", f.Long, strings.Join(f.Values, " "))
			case flagDir:
				fmt.Fprintf(b, "    --%s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", f.Long)
			case flagFile:
				fmt.Fprintf(b, "    --%s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;\n", f.Long)
			}
		}
		b.WriteString("    esac\n")
		if len(c.Args) > 0 {
			b.WriteString("    if [ \"$COMP_CWORD\" -eq 2 ]; then\n")
			fmt.Fprintf(b, "      COMPREPLY=($(compgen -W %q -- \"$cur\")); return\n", strings.Join(c.Args, " "))
			b.WriteString("    fi\n")
		}
		b.WriteString("    if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(b, "      COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", flagWords(c))
		if c.TakesFiles {
			b.WriteString("    else\n      COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		}
		b.WriteString("    fi\n    ;;\n")
	}
	b.WriteString("  esac\n}\n")
	b.WriteString("complete -F _md2slides md2slides\n")
}

func writeFish(b *strings.Builder, cmds []commandDef) {
	b.WriteString("complete -c md2slides -f\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c md2slides -n __fish_use_subcommand -a %s -d %q\n", c.Name, c.Desc)
	}
	for _, c := range cmds {
		cond := "__fish_seen_subcommand_from " + c.Name
		if len(c.Args) > 0 {
			fmt.Fprintf(b, "complete -c md2slides -n %q -a %q\n", cond, strings.Join(c.Args, " "))
		}
		if c.TakesFiles {
			fmt.Fprintf(b, "complete -c md2slides -n %q -F\n", cond)
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2slides -n %q -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += fmt.Sprintf(" -x -a %q", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a \"(__fish_complete_directories)\""
			case flagString, flagInt:
				line += " -r"
			}
			fmt.Fprintf(b, "%s -d %q\n", line, f.Desc)
		}
	}
}

func writePowerShell(b *strings.Builder, cmds []commandDef) {
	b.WriteString("Register-ArgumentCompleter -Native -CommandName md2slides -ScriptBlock {\n")
	b.WriteString("  param($wordToComplete, $commandAst, $cursorPosition)\n")
	b.WriteString("  $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("  $candidates = @()\n")
	b.WriteString("  if ($words.Count -le 1 -or ($words.Count -eq 2 -and $wordToComplete)) {\n")
	fmt.Fprintf(b, "    $candidates = '%s' -split ' '\n", commandNames(cmds))
	b.WriteString("  } else {\n    switch ($words[1]) {\n")
	for _, c := range cmds {
		words := strings.TrimSpace(flagWords(c) + " " + strings.Join(c.Args, " "))
		fmt.Fprintf(b, "      '%s' { $candidates = '%s' -split ' ' }\n", c.Name, words)
	}
	b.WriteString("    }\n  }\n")
	b.WriteString("  $candidates | Where-Object { $_ -and $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("    [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("  }\n}\n")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:       eval \"$(md2slides completion bash)\"  # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:        eval \"$(md2slides completion zsh)\"   # in ~/.zshrc")
	fmt.Fprintln(w, "  Fish:       md2slides completion fish > ~/.config/fish/completions/md2slides.fish")
	fmt.Fprintln(w, "  PowerShell: md2slides completion powershell | Out-String | Invoke-Expression")
}
