package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/stats"
)

// CopyCmd implements the 'copy' command, run after the site build.
type CopyCmd struct {
	Source  string   `help:"Artifact to copy (defaults to output.path)"`
	Targets []string `arg:"" optional:"" help:"Destination files (defaults to output.copy_targets)"`
}

func (c *CopyCmd) Run(g *Global, root *CLI) error {
	cfg, _, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	source := cfg.Output.Path
	if c.Source != "" {
		source = c.Source
	}
	targets := cfg.Output.CopyTargets
	if len(c.Targets) > 0 {
		targets = c.Targets
	}

	copied, err := stats.Publish(source, targets)
	if err != nil {
		return err
	}
	slog.Info("Stats file published", logfields.Path(source), logfields.Count(copied))
	return nil
}
