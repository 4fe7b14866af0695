package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/semmy-space/twofa/internal/output"
	"github.com/semmy-space/twofa/internal/secrets"
)

// PushCmd implements the push command
type PushCmd struct {
	Name   string `arg:"" help:"Name to store the secret under" predictor:"names"`
	Secret string `arg:"" optional:"" help:"Base32 secret or otpauth:// URI (read from the terminal or stdin when omitted)"`
}

// Run executes the push command
func (cmd *PushCmd) Run(app *App) error {
	ctx := context.Background()

	secret := cmd.Secret
	if secret == "" {
		var err error
		if secret, err = app.readSecret(); err != nil {
			return err
		}
	}

	v, err := app.Vault(ctx)
	if err != nil {
		return err
	}
	if err := v.Push(ctx, cmd.Name, secret); err != nil {
		return err
	}

	app.Formatter.PrintNotice(fmt.Sprintf("Stored %q in %s", cmd.Name, secrets.Describe(app.Config.BackendName())))
	return nil
}

// readSecret prompts without echo on a terminal, otherwise reads one line
func (a *App) readSecret() (string, error) {
	if f, ok := a.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if a.Globals != nil && a.Globals.NoInput {
			return "", output.NewCLIError(output.ExitUsage, "secret argument required when prompts are disabled")
		}
		fmt.Fprint(a.ErrOut, "Secret: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.ErrOut)
		if err != nil {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(a.In).ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read secret: %w", err)
		}
		return "", output.NewCLIError(output.ExitUsage, "no secret given").
			WithHint("Pass it as an argument or pipe it on stdin")
	}
	return line, nil
}
