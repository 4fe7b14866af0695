package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/semmy-space/twofa/internal/config"
	"github.com/semmy-space/twofa/internal/output"
)

// ConfigGetCmd implements config get command
type ConfigGetCmd struct {
	Key string `arg:"" help:"Config key to get (e.g., backend, service)"`
}

// Run executes the get command
func (cmd *ConfigGetCmd) Run(app *App) error {
	value, err := app.Config.Get(cmd.Key)
	if err != nil {
		return unknownKey(cmd.Key, output.ExitNotFound)
	}

	fmt.Fprintln(app.Out, value)
	return nil
}

// ConfigSetCmd implements config set command
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key to set"`
	Value string `arg:"" help:"Value to set"`
}

// Run executes the set command
func (cmd *ConfigSetCmd) Run(app *App) error {
	if _, err := app.Config.Get(cmd.Key); err != nil {
		return unknownKey(cmd.Key, output.ExitUsage)
	}

	if err := app.Config.Set(cmd.Key, cmd.Value); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to set config: %v", err),
			ExitCode: output.ExitUsage,
		}
	}

	if cmd.Key == "service" {
		app.Formatter.PrintHint("Secrets stored under the previous service are not moved.")
	}

	app.Formatter.PrintNotice(fmt.Sprintf("Set %s = %s", cmd.Key, cmd.Value))
	return nil
}

// ConfigUnsetCmd implements config unset command
type ConfigUnsetCmd struct {
	Key string `arg:"" help:"Config key to remove"`
}

// Run executes the unset command
func (cmd *ConfigUnsetCmd) Run(app *App) error {
	if _, err := app.Config.Get(cmd.Key); err != nil {
		return unknownKey(cmd.Key, output.ExitUsage)
	}

	if err := app.Config.Unset(cmd.Key); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to unset config: %v", err),
			ExitCode: output.ExitGeneral,
		}
	}

	app.Formatter.PrintNotice(fmt.Sprintf("Unset %s", cmd.Key))
	return nil
}

// ConfigListCmd implements config list command
type ConfigListCmd struct{}

// Run executes the list command
func (cmd *ConfigListCmd) Run(app *App) error {
	type configItem struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	items := make([]configItem, 0, len(config.Keys))
	for _, key := range config.Keys {
		value, _ := app.Config.Get(key)
		items = append(items, configItem{Key: key, Value: value})
	}

	cols := []output.Column{
		{Name: "Key", Key: "Key"},
		{Name: "Value", Key: "Value"},
	}
	return app.Formatter.PrintList(items, cols)
}

// ConfigPathCmd implements config path command
type ConfigPathCmd struct{}

// Run executes the path command
func (cmd *ConfigPathCmd) Run(app *App) error {
	path := app.Config.Path()

	fmt.Fprintln(app.Out, path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		app.Formatter.PrintNotice("(file does not exist yet - will be created on first write)")
	} else {
		app.Formatter.PrintNotice("(file exists)")
	}
	return nil
}

func unknownKey(key string, code int) *output.CLIError {
	return output.NewCLIError(code, fmt.Sprintf("Unknown config key: %s", key)).
		WithHint("Valid keys: " + strings.Join(config.Keys, ", "))
}
