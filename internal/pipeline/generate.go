package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docstats/internal/foundation"
	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/metrics"
	"git.home.luguber.info/inful/docstats/internal/observability"
	"git.home.luguber.info/inful/docstats/internal/stats"
)

// Scanner produces the document records below a content root.
type Scanner interface {
	Scan(ctx context.Context, root string) []stats.DocumentRecord
}

// AnalyticsSource supplies the optional search metrics.
type AnalyticsSource interface {
	FetchSummary(ctx context.Context, now time.Time) foundation.Option[stats.AnalyticsSummary]
}

// Deps are the collaborators of a generate run. Scanner and Analytics may be
// nil: a missing scanner yields no documents, a missing source no analytics.
type Deps struct {
	ContentRoot string
	Scanner     Scanner
	Analytics   AnalyticsSource
	Writer      *stats.Writer
	Recorder    metrics.Recorder
	Clock       func() time.Time
}

// Result describes what a run wrote.
type Result struct {
	RunID    string
	Document stats.StatsDocument
	Outcome  metrics.OutcomeLabel
	// Err is the reason for a minimal outcome, joined with the fallback
	// write failure when even that could not be written.
	Err error
}

// Generate runs scanner, fetcher and writer. It never fails: any error or
// panic is logged and replaced by the minimal artifact.
func Generate(ctx context.Context, d Deps) Result {
	if d.Recorder == nil {
		d.Recorder = metrics.NoopRecorder{}
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}

	runID := observability.NewRunID()
	ctx = observability.WithRunID(ctx, runID)
	now := d.Clock()
	start := time.Now()
	slog.InfoContext(ctx, "Generating document stats", logfields.Path(d.ContentRoot))

	res := Result{RunID: runID, Outcome: metrics.OutcomeFull}
	doc, err := d.generate(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "Stats generation failed, writing minimal artifact", logfields.Error(err))
		res.Outcome = metrics.OutcomeMinimal
		res.Err = err
		doc = stats.MinimalDocument(now)
		if d.Writer != nil {
			doc, err = d.Writer.WriteMinimal(now)
		} else {
			err = errors.InternalError("no stats writer configured").Build()
		}
		if err != nil {
			slog.ErrorContext(ctx, "Failed to write minimal artifact", logfields.Error(err))
			res.Err = stderrors.Join(res.Err, err)
		}
	}
	res.Document = doc

	d.Recorder.IncRunOutcome(res.Outcome)
	d.Recorder.SetDocuments(doc.TotalDocuments)
	d.Recorder.ObserveRunDuration(time.Since(start))
	slog.InfoContext(ctx, "Document stats written",
		logfields.Count(doc.TotalDocuments),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())),
		slog.String("outcome", string(res.Outcome)))
	return res
}

func (d Deps) generate(ctx context.Context, now time.Time) (doc stats.StatsDocument, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.InternalError(fmt.Sprintf("panic during stats generation: %v", rec)).Build()
		}
	}()

	if d.Writer == nil {
		return stats.StatsDocument{}, errors.InternalError("no stats writer configured").Build()
	}

	records := []stats.DocumentRecord{}
	if d.Scanner != nil {
		records = d.Scanner.Scan(observability.WithStage(ctx, "scan"), d.ContentRoot)
	} else {
		slog.WarnContext(ctx, "Git history unavailable, writing stats without documents", logfields.Path(d.ContentRoot))
	}
	if cerr := ctx.Err(); cerr != nil {
		return stats.StatsDocument{}, errors.WrapError(cerr, errors.CategoryRuntime, "stats generation interrupted").Build()
	}
	if len(records) == 0 && d.Scanner != nil {
		slog.WarnContext(ctx, "No documents with git history found", logfields.Path(d.ContentRoot))
	}

	var analytics *stats.AnalyticsSummary
	if d.Analytics != nil {
		analytics = d.Analytics.FetchSummary(observability.WithStage(ctx, "fetch"), now).ToPointer()
	}

	doc = stats.NewDocument(now, records, analytics)
	writeStart := time.Now()
	if werr := d.Writer.Write(doc); werr != nil {
		return stats.StatsDocument{}, werr
	}
	d.Recorder.ObserveStageDuration("write", time.Since(writeStart))
	slog.DebugContext(observability.WithStage(ctx, "write"), "Artifact written", logfields.Path(d.Writer.Path))
	return doc, nil
}
