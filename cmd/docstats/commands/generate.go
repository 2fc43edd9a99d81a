package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/pipeline"
	"git.home.luguber.info/inful/docstats/internal/stats"
)

const highlightCount = 3

// GenerateCmd implements the default 'generate' command.
type GenerateCmd struct {
	Root        string `help:"Content root to scan (overrides content.root)"`
	Output      string `short:"o" help:"Artifact path (overrides output.path)"`
	NoAnalytics bool   `name:"no-analytics" help:"Skip the Search Console fetch"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, env := loadConfigOrDefault(g, root)
	if c.Root != "" {
		cfg.Content.Root = c.Root
	}
	if c.Output != "" {
		cfg.Output.Path = c.Output
	}

	sink := newMetricsSink(cfg)
	defer sink.Flush()

	deps, err := pipelineDeps(cfg, env, sink.Recorder(), !c.NoAnalytics)
	if err != nil {
		slog.Error("Git history unavailable", logfields.Path(cfg.Content.Repo), logfields.Error(err))
	}
	res := pipeline.Generate(g.ctx(), deps)
	logHighlights(res.Document)
	return nil
}

// logHighlights logs the most recently created and most modified documents.
func logHighlights(doc stats.StatsDocument) {
	slog.Info("Stats generated",
		logfields.Count(doc.TotalDocuments),
		slog.Int("modifications", doc.TotalModifications),
		slog.Bool("analytics", doc.SearchConsole != nil))
	for _, d := range stats.MostRecent(doc.Documents, highlightCount) {
		slog.Info("Recently created", logfields.Title(d.Title), logfields.Path(d.Path), slog.String("created_at", d.CreatedAt))
	}
	for _, d := range stats.MostModified(doc.Documents, highlightCount) {
		slog.Info("Most modified", logfields.Title(d.Title), logfields.Path(d.Path), slog.Int("modifications", d.ModificationCount))
	}
}
