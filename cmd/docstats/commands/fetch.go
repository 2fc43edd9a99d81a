package commands

import (
	"encoding/json"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docstats/internal/logfields"
)

// FetchCmd implements the 'fetch' command.
type FetchCmd struct{}

func (c *FetchCmd) Run(g *Global, root *CLI) error {
	cfg, env, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	sink := newMetricsSink(cfg)
	defer sink.Flush()

	got := analyticsClient(cfg, env, sink.Recorder()).FetchSummary(g.ctx(), time.Now())
	if got.IsNone() {
		slog.Warn("No Search Console data available")
		return nil
	}
	enc := json.NewEncoder(g.stdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(got.Unwrap()); err != nil {
		slog.Error("Failed to print Search Console data", logfields.Error(err))
	}
	return nil
}
