package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"

	"github.com/kxue43/aws-scrape-creds/scrape"
	"github.com/kxue43/aws-scrape-creds/terminal"
	"github.com/kxue43/aws-scrape-creds/version"
)

type CLI struct {
	Profile string           `required:"" help:"Profile whose credentials are cached and emitted."`
	Version kong.VersionFlag `help:"Print version information and quit."`
}

func main() {
	exitCode := 0

	defer func() { os.Exit(exitCode) }()

	var cli CLI

	kong.Parse(
		&cli,
		kong.Name("aws-scrape-creds"),
		kong.Description("AWS CLI credential process that caches pasted credentials until they expire."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": version.FromBuildInfo()},
	)

	console := terminal.NewConsole(os.Stderr, "aws-scrape-creds: ", 0)

	cmd := scrape.ScrapeCmd{Profile: cli.Profile}

	err := cmd.ValidateInputs()
	if err != nil {
		console.Errorf("%s", err)

		exitCode = 1

		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		console.Errorf("could not locate user home directory: %s", err)

		exitCode = 1

		return
	}

	if err = cmd.Init(console, home); err != nil {
		console.Errorf("%s", err)

		exitCode = 1

		return
	}

	if err = cmd.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		console.Errorf("%s", err)

		exitCode = 1

		return
	}
}
