package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/watch"
)

// WatchCmd implements the 'watch' command for local preview sessions.
type WatchCmd struct {
	NoAnalytics bool `name:"no-analytics" help:"Skip the Search Console fetch"`
}

func (c *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, env, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	sink := newMetricsSink(cfg)
	defer sink.Flush()

	deps, err := pipelineDeps(cfg, env, sink.Recorder(), !c.NoAnalytics)
	if err != nil {
		return err
	}

	slog.Info("Starting watch mode, press Ctrl+C to stop", logfields.Path(cfg.Content.Root))
	err = watch.Run(g.ctx(), watch.Options{
		Deps:              deps,
		Debounce:          cfg.Watch.DebounceDuration(),
		AnalyticsInterval: cfg.Watch.AnalyticsEvery(),
	})
	slog.Info("Watch mode stopped")
	return err
}
