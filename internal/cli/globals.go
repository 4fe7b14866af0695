package cli

import (
	"os"

	"golang.org/x/term"
)

// Globals holds global flags available to all commands
type Globals struct {
	Output  string `help:"Output format" default:"auto" enum:"json,plain,rich,auto" short:"o" env:"TWOFA_OUTPUT"`
	Verbose bool   `help:"Debug logging to stderr" short:"v" env:"TWOFA_VERBOSE"`
	Backend string `help:"Credential store backend" default:"" enum:"auto,keyring,native,file," env:"TWOFA_BACKEND"`
	NoInput bool   `help:"Disable interactive prompts (fail instead)" env:"TWOFA_NO_INPUT"`
}

// ResolvedOutput returns the effective output mode.
// An explicit flag wins, then the configured default; "auto" picks rich
// on a TTY and plain otherwise.
func (g *Globals) ResolvedOutput(configured string) string {
	mode := g.Output
	if mode == "auto" && configured != "" {
		mode = configured
	}
	if mode != "auto" {
		return mode
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "rich"
	}
	return "plain"
}
