package tui

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

// EnvNonInteractive forces non-interactive mode when set to a true value.
const EnvNonInteractive = "TABWATCH_NON_INTERACTIVE"

// Mode represents the interaction mode for tabwatch.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// Terminal describes what the process is attached to.
type Terminal struct {
	Getenv    func(string) string
	StdinTTY  bool
	StdoutTTY bool
}

// CurrentTerminal inspects the running process.
func CurrentTerminal() Terminal {
	return Terminal{
		Getenv:    os.Getenv,
		StdinTTY:  term.IsTerminal(int(os.Stdin.Fd())),
		StdoutTTY: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Mode returns ModeNonInteractive when any of these hold:
//   - TABWATCH_NON_INTERACTIVE parses as true (1, t, true, ...)
//   - CI or NO_COLOR is set
//   - stdin or stdout is not a terminal; the editor reads keys and draws full-screen
func (t Terminal) Mode() Mode {
	getenv := t.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	if forced, err := strconv.ParseBool(getenv(EnvNonInteractive)); err == nil && forced {
		return ModeNonInteractive
	}
	if getenv("CI") != "" || getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if !t.StdinTTY || !t.StdoutTTY {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// DetectMode determines the mode of the running process.
func DetectMode() Mode {
	return CurrentTerminal().Mode()
}

// IsInteractive reports whether the running process is in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
