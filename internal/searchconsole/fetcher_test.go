package searchconsole

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docstats/internal/metrics"
)

type fakeQuerier struct {
	// responses keyed by the first dimension, "" for the undimensioned totals
	rows     map[string][]Row
	errs     map[string]error
	previous []Row
	prevErr  error
	sitesErr error
	queries  []Query
}

func (f *fakeQuerier) Query(_ context.Context, _ string, q Query) ([]Row, error) {
	f.queries = append(f.queries, q)
	key := ""
	if len(q.Dimensions) > 0 {
		key = q.Dimensions[0]
	}
	// the second undimensioned query is the previous window
	if key == "" && countTotals(f.queries) == 2 {
		return f.previous, f.prevErr
	}
	return f.rows[key], f.errs[key]
}

func (f *fakeQuerier) ListSites(context.Context) ([]Site, error) {
	if f.sitesErr != nil {
		return nil, f.sitesErr
	}
	return []Site{{URL: "https://example.com/", PermissionLevel: "siteOwner"}}, nil
}

func countTotals(qs []Query) int {
	n := 0
	for _, q := range qs {
		if len(q.Dimensions) == 0 {
			n++
		}
	}
	return n
}

var fetchNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func fullQuerier() *fakeQuerier {
	return &fakeQuerier{
		rows: map[string][]Row{
			"":     {{Clicks: 150.9, Impressions: 3000, CTR: 0.05, Position: 12.3}},
			"date": {{Keys: []string{"2024-02-14"}, Clicks: 5, Impressions: 100, CTR: 0.05, Position: 10}},
			"page": {{Keys: []string{"https://example.com/a"}, Clicks: 40, Impressions: 500, CTR: 0.08, Position: 3.2}},
		},
		previous: []Row{{Clicks: 100}},
	}
}

func TestFetch_FullSummary(t *testing.T) {
	q := fullQuerier()
	got := NewFetcher(q, Options{SiteURL: "https://example.com/"}).Fetch(context.Background(), fetchNow)
	require.True(t, got.IsSome())

	s := got.Unwrap()
	assert.Equal(t, 150, s.TotalClicks)
	assert.Equal(t, 3000, s.TotalImpressions)
	assert.InDelta(t, 0.05, s.CTR, 1e-9)
	assert.InDelta(t, 12.3, s.Position, 1e-9)
	assert.InDelta(t, 50.0, s.ClicksChange, 1e-9)
	require.Len(t, s.DailyData, 1)
	assert.Equal(t, "2024-02-14", s.DailyData[0].Date)
	assert.Equal(t, 40, s.PageData["https://example.com/a"].Clicks)
	assert.Equal(t, "2024-02-14", s.Period.StartDate)
	assert.Equal(t, "2024-03-14", s.Period.EndDate)
	assert.Equal(t, "2024-03-15T12:00:00.000Z", s.FetchedAt)

	require.Len(t, q.queries, 4)
	assert.Equal(t, int64(10000), q.queries[2].RowLimit)
	assert.Equal(t, []string{"page"}, q.queries[3].Dimensions)
	assert.Equal(t, int64(50), q.queries[3].RowLimit)
	assert.Equal(t, "auto", q.queries[3].AggregationType)
	assert.Equal(t, "2024-01-16", q.queries[1].StartDate)
	assert.Equal(t, "2024-02-13", q.queries[1].EndDate)
}

func TestFetch_NoTotalsIsAbsent(t *testing.T) {
	q := fullQuerier()
	q.rows[""] = nil
	got := NewFetcher(q, Options{SiteURL: "https://example.com/"}).Fetch(context.Background(), fetchNow)
	assert.True(t, got.IsNone())
	assert.Len(t, q.queries, 1, "no follow-up queries after empty totals")
}

func TestFetch_TotalsErrorIsAbsent(t *testing.T) {
	q := fullQuerier()
	q.errs = map[string]error{"": errors.New("boom")}
	got := NewFetcher(q, Options{SiteURL: "https://example.com/"}).Fetch(context.Background(), fetchNow)
	assert.True(t, got.IsNone())
}

func TestFetch_PartialFailuresDegrade(t *testing.T) {
	q := fullQuerier()
	q.prevErr = errors.New("previous down")
	q.errs = map[string]error{"date": errors.New("daily down"), "page": errors.New("pages down")}
	q.sitesErr = errors.New("sites down")

	got := NewFetcher(q, Options{SiteURL: "https://example.com/"}).Fetch(context.Background(), fetchNow)
	require.True(t, got.IsSome())
	s := got.Unwrap()
	assert.InDelta(t, 100.0, s.ClicksChange, 1e-9, "failed previous window counts as zero")
	assert.NotNil(t, s.DailyData)
	assert.Empty(t, s.DailyData)
	assert.NotNil(t, s.PageData)
	assert.Empty(t, s.PageData)
}

func TestFetch_CustomLimitsAndWindows(t *testing.T) {
	q := fullQuerier()
	NewFetcher(q, Options{SiteURL: "sc-domain:example.com", WindowDays: 7, PreviousWindowDays: 7, PageLimit: 10}).
		Fetch(context.Background(), fetchNow)
	require.Len(t, q.queries, 4)
	assert.Equal(t, "2024-03-08", q.queries[0].StartDate)
	assert.Equal(t, int64(10), q.queries[3].RowLimit)
}

func TestFetch_RecordsQueryResults(t *testing.T) {
	rec := metrics.NewPrometheusRecorder(nil)
	q := fullQuerier()
	q.errs = map[string]error{"page": errors.New("pages down")}

	NewFetcher(q, Options{SiteURL: "https://example.com/", Recorder: rec}).Fetch(context.Background(), fetchNow)

	expected := `
# HELP docstats_analytics_queries_total Search Console queries by query kind and result
# TYPE docstats_analytics_queries_total counter
docstats_analytics_queries_total{query="daily",result="success"} 1
docstats_analytics_queries_total{query="pages",result="failed"} 1
docstats_analytics_queries_total{query="previous",result="success"} 1
docstats_analytics_queries_total{query="totals",result="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected), "docstats_analytics_queries_total"))
}
