package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
	ResultEmpty   ResultLabel = "empty"
)

// OutcomeLabel describes how a generate run ended.
type OutcomeLabel string

const (
	// OutcomeFull means the scanned documents were written.
	OutcomeFull OutcomeLabel = "full"
	// OutcomeMinimal means generation failed and the empty fallback was written.
	OutcomeMinimal OutcomeLabel = "minimal"
)

// Recorder defines observability hooks for the stats pipeline. Implementations
// may forward to Prometheus; NoopRecorder is the default.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncDocumentResult(result ResultLabel)
	IncAnalyticsQuery(query string, result ResultLabel)
	IncRunOutcome(outcome OutcomeLabel)
	SetDocuments(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncDocumentResult(ResultLabel)              {}
func (NoopRecorder) IncAnalyticsQuery(string, ResultLabel)      {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                 {}
func (NoopRecorder) SetDocuments(int)                           {}
