package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/semmy-space/twofa/internal/vault"
)

// GetCmd implements the get command
type GetCmd struct {
	Name  string `arg:"" help:"Name of the secret" predictor:"names"`
	Watch bool   `help:"Keep printing the code as it changes until interrupted" short:"w"`
}

// codeView is the JSON shape of a code
type codeView struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	Remaining int    `json:"remaining_seconds"`
}

// Run executes the get command
func (cmd *GetCmd) Run(app *App) error {
	ctx := context.Background()
	if cmd.Watch {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	v, err := app.Vault(ctx)
	if err != nil {
		return err
	}

	if !cmd.Watch {
		code, err := v.Code(ctx, cmd.Name)
		if err != nil {
			return err
		}
		return app.printCode(code)
	}

	return watch(ctx, app, v, cmd.Name, time.Second)
}

// watch prints the code for name whenever it changes, polling once per
// interval, until ctx is cancelled.
func watch(ctx context.Context, app *App, v *vault.Vault, name string, interval time.Duration) error {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	last := ""

	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil
		}

		code, err := v.Code(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if code.Value == last {
			continue
		}
		last = code.Value
		if err := app.printCode(code); err != nil {
			return err
		}
	}
}

func (a *App) printCode(code vault.Code) error {
	remaining := int(code.Remaining / time.Second)

	if a.Mode == "json" {
		return a.Formatter.Print(codeView{Name: code.Name, Code: code.Value, Remaining: remaining})
	}

	if err := a.Formatter.Print(code.Value); err != nil {
		return err
	}
	if a.Mode == "rich" {
		a.Formatter.PrintNotice(fmt.Sprintf("valid for %ds", remaining))
	}
	return nil
}
