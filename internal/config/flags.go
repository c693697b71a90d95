package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/stigoleg/keep-busy/internal/profile"
	"github.com/stigoleg/keep-busy/internal/ui"
	"github.com/stigoleg/keep-busy/internal/util"
)

// ErrExit signals that the flags were fully handled (help, version, listing)
// and the program should exit successfully.
var ErrExit = errors.New("nothing to run")

type Config struct {
	Profile      profile.Profile
	Seed         int64
	DryRun       bool
	Headless     bool
	LogFile      string
	ShowVersion  bool
	ListProfiles bool
}

func formatError(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, "Invalid ") {
		parts := strings.SplitN(msg, "\n\n", 2)
		if len(parts) == 2 {
			errorBox := ui.Current.Help.Copy().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#FF4040"))

			header := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF4040")).
				Render(parts[0])

			details := lipgloss.NewStyle().
				Foreground(lipgloss.Color("#999999")).
				Render(parts[1])

			return errorBox.Render(fmt.Sprintf("%s\n\n%s", header, details))
		}
	}
	return ui.Current.Error.Render(msg)
}

// ParseArgs parses command line arguments (without the program name).
// Output such as the version or the profile list is written to out.
func ParseArgs(version string, args []string, out io.Writer) (*Config, error) {
	flags := flag.NewFlagSet("keepbusy", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	name := flags.String("profile", profile.DefaultName, "Activity profile to run")
	flags.StringVar(name, "p", profile.DefaultName, "Activity profile to run")
	warmup := flags.String("warmup", "", "Override the warm-up before the first operation (e.g., \"30\" or \"1m\")")
	flags.StringVar(warmup, "w", "", "Override the warm-up before the first operation")
	delay := flags.String("delay", "", "Override the pause between operations in seconds (e.g., \"3-33\")")
	seed := flags.Int64("seed", 0, "Random seed for a reproducible run (0 = time based)")
	dryRun := flags.Bool("dry-run", false, "Log operations instead of injecting input")
	headless := flags.Bool("headless", false, "Log to stderr instead of showing the status screen")
	logFile := flags.String("log", "debug.log", "Log file used while the status screen is shown")
	list := flags.Bool("list-profiles", false, "List built-in profiles and exit")
	showVersion := flags.Bool("version", false, "Show version information")
	flags.BoolVar(showVersion, "v", false, "Show version information")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(out, ui.HelpText())
			return nil, ErrExit
		}
		return nil, err
	}

	cfg := &Config{
		Seed:         *seed,
		DryRun:       *dryRun,
		Headless:     *headless,
		LogFile:      *logFile,
		ShowVersion:  *showVersion,
		ListProfiles: *list,
	}

	if cfg.ShowVersion {
		fmt.Fprintf(out, "Keep-Busy Version: %s\n", version)
		return cfg, ErrExit
	}

	if cfg.ListProfiles {
		for _, n := range profile.Names() {
			p, _ := profile.Lookup(n)
			fmt.Fprintf(out, "%-20s %s\n", n, p.Description)
		}
		return cfg, ErrExit
	}

	p, err := profile.Lookup(*name)
	if err != nil {
		return nil, err
	}

	var o profile.Overrides
	if *warmup != "" {
		d, err := util.ParseDuration(*warmup)
		if err != nil {
			return nil, err
		}
		seconds := int(d.Seconds())
		o.WarmupSeconds = &seconds
	}
	if *delay != "" {
		lo, hi, err := util.ParseSecondsRange(*delay)
		if err != nil {
			return nil, err
		}
		o.DelayMin, o.DelayMax = &lo, &hi
	}
	cfg.Profile = p.WithOverrides(o)

	if err := cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseFlags parses os.Args. It exits after help, version or listing output,
// and prints a styled error and exits on bad input.
func ParseFlags(version string) *Config {
	cfg, err := ParseArgs(version, os.Args[1:], os.Stdout)
	if errors.Is(err, ErrExit) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Println(formatError(err))
		os.Exit(1)
	}
	return cfg
}
