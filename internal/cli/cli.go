package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/twofa/internal/config"
	"github.com/semmy-space/twofa/internal/output"
)

// CLI is the root command structure
type CLI struct {
	Globals

	Push    PushCmd    `cmd:"" help:"Store a TOTP secret under a name"`
	Get     GetCmd     `cmd:"" help:"Print the current code for a name"`
	Delete  DeleteCmd  `cmd:"" aliases:"rm" help:"Remove a stored secret"`
	List    ListCmd    `cmd:"" aliases:"ls" help:"List stored names"`
	Reindex ReindexCmd `cmd:"" help:"Rebuild the name index from the credential store"`
	Config  ConfigCmd  `cmd:"" help:"Configuration commands"`

	InstallCompletions kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
	Version            VersionCmd                   `cmd:"" help:"Show version information"`
}

// AfterApply runs once flags and env values are applied, before the command.
// It loads config, resolves output and backend, and binds the App
func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return &output.CLIError{
			Message:  err.Error(),
			ExitCode: output.ExitConfigError,
			Hint:     "Run: twofa config path",
		}
	}

	// Backend: CLI flag > config > auto
	if c.Backend != "" {
		cfg.Backend = c.Backend
	}

	log, err := newLogger(c.Verbose)
	if err != nil {
		return err
	}

	ctx.Bind(NewApp(cfg, c.ResolvedOutput(cfg.DefaultOutput), log, &c.Globals))
	return nil
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Get   ConfigGetCmd   `cmd:"" help:"Get a configuration value"`
	Set   ConfigSetCmd   `cmd:"" help:"Set a configuration value"`
	Unset ConfigUnsetCmd `cmd:"" help:"Remove a configuration value"`
	List  ConfigListCmd  `cmd:"" name:"list" help:"List all configuration values"`
	Path  ConfigPathCmd  `cmd:"" help:"Show config file path"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context, app *App) error {
	version := ctx.Model.Vars()["version"]
	fmt.Fprintln(app.Out, "twofa version "+version)
	return nil
}
