package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docstats"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry        *prom.Registry
	stageDuration   *prom.HistogramVec
	runDuration     prom.Histogram
	documentResults *prom.CounterVec
	analyticsQuery  *prom.CounterVec
	runOutcome      *prom.CounterVec
	documents       prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of pipeline stages (scan, fetch, write, publish)",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Total generate run duration",
		Buckets:   prom.DefBuckets,
	})
	pr.documentResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "documents_total",
		Help:      "Markdown files by scan result",
	}, []string{"result"})
	pr.analyticsQuery = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "analytics_queries_total",
		Help:      "Search Console queries by query kind and result",
	}, []string{"query", "result"})
	pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "run_outcomes_total",
		Help:      "Generate runs by written artifact kind",
	}, []string{"outcome"})
	pr.documents = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "documents",
		Help:      "Documents in the last written artifact",
	})
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.documentResults, pr.analyticsQuery, pr.runOutcome, pr.documents)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(result ResultLabel) {
	if p == nil || p.documentResults == nil {
		return
	}
	p.documentResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncAnalyticsQuery(query string, result ResultLabel) {
	if p == nil || p.analyticsQuery == nil {
		return
	}
	p.analyticsQuery.WithLabelValues(query, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetDocuments(n int) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.Set(float64(n))
}

// WriteTextfile writes the registry in Prometheus text format, for node_exporter's textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}
