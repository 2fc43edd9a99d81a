package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/docstats/internal/config"
	"git.home.luguber.info/inful/docstats/internal/git"
	"git.home.luguber.info/inful/docstats/internal/history"
	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/metrics"
	"git.home.luguber.info/inful/docstats/internal/pipeline"
	"git.home.luguber.info/inful/docstats/internal/searchconsole"
	"git.home.luguber.info/inful/docstats/internal/stats"
)

// pipelineDeps wires the generate collaborators from cfg. When the history
// engine cannot be opened the scanner is left unset and the run writes an
// artifact without documents.
func pipelineDeps(cfg *config.Config, env config.Env, rec metrics.Recorder, withAnalytics bool) (pipeline.Deps, error) {
	deps := pipeline.Deps{
		ContentRoot: cfg.Content.Root,
		Writer:      stats.NewWriter(cfg.Output.Path),
		Recorder:    rec,
	}
	if withAnalytics {
		deps.Analytics = analyticsClient(cfg, env, rec)
	}

	h, err := git.NewHistory(cfg.History.Engine, cfg.Content.Repo)
	if err != nil {
		return deps, err
	}
	deps.Scanner = history.NewScanner(h).WithRecorder(rec)
	return deps, nil
}

func analyticsClient(cfg *config.Config, env config.Env, rec metrics.Recorder) *searchconsole.Client {
	return &searchconsole.Client{Config: cfg.SearchConsole, Env: env, Recorder: rec}
}

// metricsSink owns the Prometheus recorder when output.metrics_file is set.
type metricsSink struct {
	path string
	prom *metrics.PrometheusRecorder
}

func newMetricsSink(cfg *config.Config) *metricsSink {
	if cfg.Output.MetricsFile == "" {
		return &metricsSink{}
	}
	return &metricsSink{path: cfg.Output.MetricsFile, prom: metrics.NewPrometheusRecorder(nil)}
}

func (m *metricsSink) Recorder() metrics.Recorder {
	if m.prom == nil {
		return metrics.NoopRecorder{}
	}
	return m.prom
}

// Flush writes the textfile; failures are logged only.
func (m *metricsSink) Flush() {
	if m.prom == nil {
		return
	}
	if err := m.prom.WriteTextfile(m.path); err != nil {
		slog.Warn("Failed to write metrics file", logfields.Path(m.path), logfields.Error(err))
		return
	}
	slog.Debug("Metrics written", logfields.Path(m.path))
}
