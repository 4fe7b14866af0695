package cli

import (
	"context"
	"fmt"
)

// DeleteCmd implements the delete command
type DeleteCmd struct {
	Name string `arg:"" help:"Name of the secret to remove" predictor:"names"`
}

// Run executes the delete command
func (cmd *DeleteCmd) Run(app *App) error {
	ctx := context.Background()

	v, err := app.Vault(ctx)
	if err != nil {
		return err
	}
	if err := v.Delete(ctx, cmd.Name); err != nil {
		return err
	}

	app.Formatter.PrintNotice(fmt.Sprintf("Deleted %q", cmd.Name))
	return nil
}
