package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/twofa/internal/cli"
	"github.com/semmy-space/twofa/internal/output"
)

var (
	version = "dev"
)

func main() {
	cliInstance := &cli.CLI{}
	parser := kong.Must(cliInstance,
		kong.Name("twofa"),
		kong.Description("Store TOTP secrets in the OS credential store and print their codes"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	// Exits early when invoked by the shell for completion
	kongplete.Complete(parser,
		kongplete.WithPredictor("names", cli.NamePredictor()),
	)

	ctx, err := parser.Parse(os.Args[1:])
	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		// raised by the AfterApply hook, not a usage problem
		exit(cliErr)
	}
	parser.FatalIfErrorf(err)

	if err := ctx.Run(); err != nil {
		exit(cli.Classify(err))
	}
}

func exit(cliErr *output.CLIError) {
	output.Report(output.New("plain"), cliErr)
	os.Exit(cliErr.ExitCode)
}
