package cli

import (
	"context"
	"fmt"

	"github.com/semmy-space/twofa/internal/output"
)

// ReindexCmd rebuilds the index from what the credential store holds.
// Useful after an interrupted push or delete left the two out of step.
type ReindexCmd struct{}

// Run executes the reindex command
func (cmd *ReindexCmd) Run(app *App) error {
	ctx := context.Background()

	v, err := app.Vault(ctx)
	if err != nil {
		return err
	}

	names, err := v.Reindex(ctx)
	if err != nil {
		return err
	}

	app.Formatter.PrintNotice(fmt.Sprintf("Index rebuilt with %d entries", len(names)))
	if len(names) == 0 {
		return nil
	}

	entries := make([]listEntry, len(names))
	for i, name := range names {
		entries[i] = listEntry{N: i + 1, Name: name}
	}
	return app.Formatter.PrintList(entries, []output.Column{
		{Name: "#", Key: "N"},
		{Name: "Name", Key: "Name"},
	})
}
