package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stigoleg/keep-busy/internal/profile"
)

// gen-docs writes bash and zsh completions plus a roff man page for keepbusy.
// Run it from the repository root: go run ./cmd/gen-docs

const (
	appName        = "keepbusy"
	appDescription = "Emulates human desktop activity: clicks, scrolls, window and tab switches and typing."
)

type flagDef struct {
	Short  string
	Long   string
	Arg    string
	Desc   string
	Values []string
}

func flagTable() []flagDef {
	return []flagDef{
		{Short: "-p", Long: "--profile", Arg: "<name>", Desc: "Activity profile to run", Values: profile.Names()},
		{Short: "-w", Long: "--warmup", Arg: "<duration>", Desc: "Override the warm-up (e.g., \"30\" or \"1m\")"},
		{Long: "--delay", Arg: "<min-max>", Desc: "Override the pause between operations in seconds (e.g., \"3-33\")"},
		{Long: "--seed", Arg: "<int>", Desc: "Random seed for a reproducible run"},
		{Long: "--dry-run", Desc: "Log operations instead of injecting input"},
		{Long: "--headless", Desc: "Log to stderr instead of showing the status screen"},
		{Long: "--log", Arg: "<path>", Desc: "Log file used while the status screen is shown"},
		{Long: "--list-profiles", Desc: "List built-in profiles and exit"},
		{Short: "-v", Long: "--version", Desc: "Show version information"},
		{Short: "-h", Long: "--help", Desc: "Show help message"},
	}
}

func main() {
	flags := flagTable()
	if err := writeCompletions(filepath.Join("docs", "completions"), flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := writeMan("man", flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeCompletions(dir string, flags []flagDef) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, appName+".bash"), []byte(bashCompletion(flags)), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "_"+appName), []byte(zshCompletion(flags)), 0o644)
}

func bashCompletion(flags []flagDef) string {
	var opts []string
	var b strings.Builder
	b.WriteString("_" + appName + "() {\n")
	b.WriteString("  local cur prev opts\n")
	b.WriteString("  COMPREPLY=()\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  case \"${prev}\" in\n")
	for _, f := range flags {
		if f.Short != "" {
			opts = append(opts, f.Short)
		}
		opts = append(opts, f.Long)
		if len(f.Values) == 0 {
			continue
		}
		b.WriteString("    " + strings.Join(names(f), "|") + ")\n")
		b.WriteString("      COMPREPLY=( $(compgen -W \"" + strings.Join(f.Values, " ") + "\" -- ${cur}) )\n")
		b.WriteString("      return 0 ;;\n")
	}
	b.WriteString("  esac\n")
	b.WriteString("  opts=\"" + strings.Join(opts, " ") + "\"\n")
	b.WriteString("  COMPREPLY=( $(compgen -W \"${opts}\" -- ${cur}) )\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _" + appName + " " + appName + "\n")
	return b.String()
}

func zshCompletion(flags []flagDef) string {
	var parts []string
	for _, f := range flags {
		name := f.Long
		suffix := ""
		if f.Arg != "" {
			name += "="
			suffix = ":" + strings.Trim(f.Arg, "<>") + ":"
			if len(f.Values) > 0 {
				suffix += "(" + strings.Join(f.Values, " ") + ")"
			}
		}
		parts = append(parts, fmt.Sprintf("'%s[%s]%s'", name, strings.ReplaceAll(f.Desc, "'", ""), suffix))
	}
	return "#compdef " + appName + "\n_arguments " + strings.Join(parts, " \\\n  ") + "\n"
}

func names(f flagDef) []string {
	if f.Short == "" {
		return []string{f.Long}
	}
	return []string{f.Short, f.Long}
}

func manPage(flags []flagDef) string {
	var b strings.Builder
	b.WriteString(".TH \"" + strings.ToUpper(appName) + "\" \"1\" \"\" \"keep-busy\" \"User Commands\"\n")
	b.WriteString(".SH NAME\n" + appName + " \\- " + appDescription + "\n")
	b.WriteString(".SH SYNOPSIS\n.B " + appName + "\n[options]\n")
	b.WriteString(".SH DESCRIPTION\n" + appDescription + "\n")
	b.WriteString("After a warm-up the pointer position is captured and operations are picked at random from the profile's catalog, with a random pause after each one.\n")
	b.WriteString(".SH OPTIONS\n")
	for _, f := range flags {
		line := strings.Join(names(f), ", ")
		if f.Arg != "" {
			line += " " + f.Arg
		}
		b.WriteString(".TP\n\\fB" + strings.ReplaceAll(line, "-", "\\-") + "\\fR\n" + f.Desc + "\n")
	}
	b.WriteString(".SH PROFILES\n")
	for _, n := range profile.Names() {
		p, err := profile.Lookup(n)
		if err != nil {
			continue
		}
		b.WriteString(".TP\n\\fB" + n + "\\fR\n" + p.Description + "\n")
	}
	b.WriteString(".SH EXAMPLES\n")
	b.WriteString(".TP\n\\fB" + appName + "\\fR\nRun the rich profile with the status screen.\n")
	b.WriteString(".TP\n\\fB" + appName + " \\-p conservative\\fR\nFewer operations with long pauses.\n")
	b.WriteString(".TP\n\\fB" + appName + " \\-\\-dry\\-run \\-\\-headless\\fR\nPrint what would happen without touching the input devices.\n")
	return b.String()
}

func writeMan(dir string, flags []flagDef) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, appName+".1"), []byte(manPage(flags)), 0o644)
}
