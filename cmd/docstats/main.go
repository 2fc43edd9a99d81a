package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docstats/cmd/docstats/commands"
	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
	"git.home.luguber.info/inful/docstats/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli commands.CLI
	parser := kong.Parse(&cli,
		kong.Name("docstats"),
		kong.Description("Document statistics for a Markdown site: git history, Search Console metrics and a JSON artifact."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	global := &commands.Global{Logger: slog.Default(), Context: ctx}
	err := parser.Run(global, &cli)
	stop()
	if err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
