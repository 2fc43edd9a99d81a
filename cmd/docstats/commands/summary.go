package commands

import (
	"encoding/json"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/stats"
)

// SummaryCmd implements the 'summary' command.
type SummaryCmd struct {
	Input string `short:"i" help:"Artifact to summarize (defaults to output.path)"`
}

func (c *SummaryCmd) Run(g *Global, root *CLI) error {
	cfg, _, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	path := cfg.Output.Path
	if c.Input != "" {
		path = c.Input
	}

	doc, err := stats.Read(path)
	if err != nil {
		slog.Warn("Stats artifact unavailable, summarizing nothing", logfields.Path(path), logfields.Error(err))
	}
	summary := stats.Summarize(doc.Documents, time.Now())

	enc := json.NewEncoder(g.stdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		slog.Error("Failed to print summary", logfields.Error(err))
	}
	return nil
}
