package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is how results are presented on the current terminal.
type OutputMode int

const (
	// OutputModePlain is uncolored text for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is colored, non-interactive output.
	OutputModeStyled
	// OutputModeInteractive runs the bubbletea program.
	OutputModeInteractive
)

func (m OutputMode) String() string {
	switch m {
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "plain"
	}
}

// DetectOutputMode picks a mode for stdout. plain and noColor force plain
// output; forceColor allows styling on a non-terminal. NO_COLOR and
// TERM=dumb are honored, and CI environments never get the interactive UI.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(forceColor, noColor, plain, term.IsTerminal(int(os.Stdout.Fd())), os.LookupEnv)
}

func detectOutputMode(forceColor, noColor, plain, tty bool, lookupEnv func(string) (string, bool)) OutputMode {
	if plain || noColor {
		return OutputModePlain
	}
	if _, ok := lookupEnv("NO_COLOR"); ok {
		return OutputModePlain
	}
	if t, _ := lookupEnv("TERM"); t == "dumb" {
		return OutputModePlain
	}
	if !tty {
		if forceColor {
			return OutputModeStyled
		}
		return OutputModePlain
	}
	if _, ci := lookupEnv("CI"); ci {
		return OutputModeStyled
	}
	return OutputModeInteractive
}
