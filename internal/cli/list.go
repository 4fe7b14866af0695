package cli

import (
	"context"

	"github.com/semmy-space/twofa/internal/fault"
	"github.com/semmy-space/twofa/internal/output"
)

// ListCmd implements the list command
type ListCmd struct {
	Codes bool `help:"Show the current code of every entry" short:"c"`
}

type listEntry struct {
	N    int    `json:"n"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// Run executes the list command
func (cmd *ListCmd) Run(app *App) error {
	ctx := context.Background()

	v, err := app.Vault(ctx)
	if err != nil {
		return err
	}

	names, err := v.List(ctx)
	if err != nil {
		return err
	}

	entries := make([]listEntry, len(names))
	for i, name := range names {
		entries[i] = listEntry{N: i + 1, Name: name}
		if !cmd.Codes {
			continue
		}

		code, err := v.Code(ctx, name)
		switch {
		case err == nil:
			entries[i].Code = code.Value
		case fault.Is(err, fault.NotFound):
			// index is best-effort; the entry may be gone
			entries[i].Code = "(missing)"
		case fault.Is(err, fault.InvalidSecret):
			entries[i].Code = "(invalid)"
		default:
			return err
		}
	}

	if len(entries) == 0 && app.Mode != "json" {
		return app.Formatter.Print("No entries")
	}

	cols := []output.Column{
		{Name: "#", Key: "N"},
		{Name: "Name", Key: "Name"},
	}
	if cmd.Codes {
		cols = append(cols, output.Column{Name: "Code", Key: "Code"})
	}

	return app.Formatter.PrintList(entries, cols)
}
