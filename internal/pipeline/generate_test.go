package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docstats/internal/foundation"
	"git.home.luguber.info/inful/docstats/internal/metrics"
	"git.home.luguber.info/inful/docstats/internal/stats"
)

type stubScanner struct {
	records []stats.DocumentRecord
	panics  bool
}

func (s stubScanner) Scan(context.Context, string) []stats.DocumentRecord {
	if s.panics {
		panic("scanner exploded")
	}
	return s.records
}

type stubAnalytics struct {
	summary foundation.Option[stats.AnalyticsSummary]
	calls   int
}

func (s *stubAnalytics) FetchSummary(context.Context, time.Time) foundation.Option[stats.AnalyticsSummary] {
	s.calls++
	return s.summary
}

var fixedNow = time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func records() []stats.DocumentRecord {
	return []stats.DocumentRecord{
		{Path: "/a", Title: "A", CreatedAt: "2024-01-01", LastModified: "2024-02-01", ModificationCount: 3, Author: "kim"},
		{Path: "/b", Title: "B", CreatedAt: "2024-01-05", LastModified: "2024-01-05", ModificationCount: 1, Author: "lee"},
	}
}

func TestGenerate_WritesDocumentWithAnalytics(t *testing.T) {
	out := filepath.Join(t.TempDir(), "public", "stats.json")
	analytics := &stubAnalytics{summary: foundation.Some(stats.AnalyticsSummary{TotalClicks: 42})}

	res := Generate(context.Background(), Deps{
		ContentRoot: "docs/src",
		Scanner:     stubScanner{records: records()},
		Analytics:   analytics,
		Writer:      stats.NewWriter(out),
		Clock:       clock,
	})

	require.NoError(t, res.Err)
	assert.Equal(t, metrics.OutcomeFull, res.Outcome)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 2, res.Document.TotalDocuments)
	assert.Equal(t, 4, res.Document.TotalModifications)
	assert.Equal(t, 1, analytics.calls)

	written, err := stats.Read(out)
	require.NoError(t, err)
	require.NotNil(t, written.SearchConsole)
	assert.Equal(t, 42, written.SearchConsole.TotalClicks)
	assert.Equal(t, "2024-03-15T08:30:00.000Z", written.GeneratedAt)
}

func TestGenerate_AbsentAnalyticsIsNull(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stats.json")
	res := Generate(context.Background(), Deps{
		Scanner:   stubScanner{records: records()},
		Analytics: &stubAnalytics{summary: foundation.None[stats.AnalyticsSummary]()},
		Writer:    stats.NewWriter(out),
		Clock:     clock,
	})
	require.NoError(t, res.Err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"searchConsole": null`)
}

func TestGenerate_NoAnalyticsSource(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stats.json")
	res := Generate(context.Background(), Deps{
		Scanner: stubScanner{},
		Writer:  stats.NewWriter(out),
		Clock:   clock,
	})
	require.NoError(t, res.Err)
	assert.Equal(t, metrics.OutcomeFull, res.Outcome)
	assert.Empty(t, res.Document.Documents)
	assert.Nil(t, res.Document.SearchConsole)
}

func TestGenerate_PanicWritesMinimal(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stats.json")
	rec := metrics.NewPrometheusRecorder(nil)

	res := Generate(context.Background(), Deps{
		Scanner:  stubScanner{panics: true},
		Writer:   stats.NewWriter(out),
		Recorder: rec,
		Clock:    clock,
	})

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "scanner exploded")
	assert.Equal(t, metrics.OutcomeMinimal, res.Outcome)

	written, err := stats.Read(out)
	require.NoError(t, err)
	assert.Empty(t, written.Documents)
	assert.Zero(t, written.TotalModifications)
	assert.Nil(t, written.SearchConsole)

	expected := `
# HELP docstats_run_outcomes_total Generate runs by written artifact kind
# TYPE docstats_run_outcomes_total counter
docstats_run_outcomes_total{outcome="minimal"} 1
`
	require.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "docstats_run_outcomes_total"))
}

func TestGenerate_CanceledContextWritesMinimal(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stats.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Generate(ctx, Deps{
		Scanner: stubScanner{records: records()},
		Writer:  stats.NewWriter(out),
		Clock:   clock,
	})
	assert.Equal(t, metrics.OutcomeMinimal, res.Outcome)
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.FileExists(t, out)
}

func TestGenerate_UnwritableOutputReportsBothFailures(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	res := Generate(context.Background(), Deps{
		Scanner: stubScanner{records: records()},
		Writer:  stats.NewWriter(filepath.Join(blocker, "stats.json")),
		Clock:   clock,
	})
	require.Error(t, res.Err)
	assert.Equal(t, metrics.OutcomeMinimal, res.Outcome)
	assert.Empty(t, res.Document.Documents)
}

func TestGenerate_MissingWriter(t *testing.T) {
	res := Generate(context.Background(), Deps{Scanner: stubScanner{}, Clock: clock})
	require.Error(t, res.Err)
	assert.Equal(t, metrics.OutcomeMinimal, res.Outcome)
}

func TestGenerate_NoScannerStillFetchesAnalytics(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stats.json")
	src := &stubAnalytics{summary: foundation.Some(stats.AnalyticsSummary{TotalClicks: 12})}
	res := Generate(context.Background(), Deps{
		Analytics: src,
		Writer:    stats.NewWriter(out),
		Clock:     clock,
	})
	require.NoError(t, res.Err)
	assert.Equal(t, metrics.OutcomeFull, res.Outcome)
	assert.Equal(t, 1, src.calls)

	doc, err := stats.Read(out)
	require.NoError(t, err)
	assert.Empty(t, doc.Documents)
	assert.Zero(t, doc.TotalDocuments)
	require.NotNil(t, doc.SearchConsole)
	assert.Equal(t, 12, doc.SearchConsole.TotalClicks)
}
