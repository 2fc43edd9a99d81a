package searchconsole

import (
	"context"
	"log/slog"
	"math"
	"time"

	"git.home.luguber.info/inful/docstats/internal/foundation"
	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/metrics"
	"git.home.luguber.info/inful/docstats/internal/stats"
)

const (
	dailyRowLimit    = 10000
	defaultPageLimit = 50
)

// Options configure a Fetcher.
type Options struct {
	SiteURL            string
	WindowDays         int
	PreviousWindowDays int
	PageLimit          int
	ClientEmail        string // reported in permission diagnostics
	Recorder           metrics.Recorder
}

// Fetcher queries the analytics summary through a Querier.
type Fetcher struct {
	querier Querier
	opts    Options
}

// NewFetcher returns a Fetcher; zero options take the usual 30/28/50 defaults.
func NewFetcher(q Querier, opts Options) *Fetcher {
	if opts.WindowDays <= 0 {
		opts.WindowDays = 30
	}
	if opts.PreviousWindowDays <= 0 {
		opts.PreviousWindowDays = 28
	}
	if opts.PageLimit <= 0 {
		opts.PageLimit = defaultPageLimit
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Fetcher{querier: q, opts: opts}
}

// Fetch builds the summary for the window ending yesterday. It is absent when
// the totals query fails or returns no rows.
func (f *Fetcher) Fetch(ctx context.Context, now time.Time) foundation.Option[stats.AnalyticsSummary] {
	start := time.Now()
	defer func() { f.opts.Recorder.ObserveStageDuration("fetch", time.Since(start)) }()

	site := f.opts.SiteURL
	f.logSites(ctx)

	current, previous := Windows(now, f.opts.WindowDays, f.opts.PreviousWindowDays)
	slog.InfoContext(ctx, "Fetching Search Console data", logfields.SiteURL(site),
		slog.String("start", current.StartDate), slog.String("end", current.EndDate))

	totals := f.totals(ctx, current)
	if totals.IsNone() {
		return foundation.None[stats.AnalyticsSummary]()
	}
	row := totals.Unwrap()

	prevClicks := f.previousClicks(ctx, previous).UnwrapOr(0)
	daily := f.daily(ctx, current).UnwrapOr([]stats.DailyMetrics{})
	pages := f.pages(ctx, current).UnwrapOr(map[string]stats.PageMetrics{})

	summary := stats.AnalyticsSummary{
		TotalClicks:      toInt(row.Clicks),
		TotalImpressions: toInt(row.Impressions),
		CTR:              row.CTR,
		Position:         row.Position,
		DailyData:        daily,
		PageData:         pages,
		Period:           current,
		FetchedAt:        stats.Timestamp(now),
	}
	summary.ClicksChange = ClicksChange(prevClicks, summary.TotalClicks)

	slog.InfoContext(ctx, "Fetched Search Console data",
		slog.Int("clicks", summary.TotalClicks),
		slog.Int("impressions", summary.TotalImpressions),
		slog.Float64("clicks_change", summary.ClicksChange),
		slog.Int("days", len(daily)),
		slog.Int("pages", len(pages)))
	return foundation.Some(summary)
}

func (f *Fetcher) logSites(ctx context.Context) {
	sites, err := f.querier.ListSites(ctx)
	if err != nil {
		slog.Warn("Failed to list Search Console sites", logfields.Error(err))
		return
	}
	if len(sites) == 0 {
		slog.Warn("No Search Console sites visible to the service account")
		return
	}
	for _, s := range sites {
		slog.Debug("Search Console site", logfields.SiteURL(s.URL), slog.String("permission", s.PermissionLevel))
	}
}

func (f *Fetcher) query(ctx context.Context, name string, q Query) ([]Row, error) {
	rows, err := f.querier.Query(ctx, f.opts.SiteURL, q)
	switch {
	case err != nil:
		f.opts.Recorder.IncAnalyticsQuery(name, metrics.ResultFailed)
	case len(rows) == 0:
		f.opts.Recorder.IncAnalyticsQuery(name, metrics.ResultEmpty)
	default:
		f.opts.Recorder.IncAnalyticsQuery(name, metrics.ResultSuccess)
	}
	return rows, err
}

func (f *Fetcher) totals(ctx context.Context, p stats.Period) foundation.Option[Row] {
	rows, err := f.query(ctx, "totals", Query{StartDate: p.StartDate, EndDate: p.EndDate})
	if err != nil {
		Diagnose(err, f.opts.ClientEmail)
		return foundation.None[Row]()
	}
	if len(rows) == 0 {
		slog.Warn("Search Console returned no data", logfields.SiteURL(f.opts.SiteURL))
		return foundation.None[Row]()
	}
	return foundation.Some(rows[0])
}

func (f *Fetcher) previousClicks(ctx context.Context, p stats.Period) foundation.Option[int] {
	rows, err := f.query(ctx, "previous", Query{StartDate: p.StartDate, EndDate: p.EndDate})
	if err != nil {
		slog.Warn("Failed to fetch previous period", logfields.Query("previous"), logfields.Error(err))
		return foundation.None[int]()
	}
	if len(rows) == 0 {
		return foundation.None[int]()
	}
	return foundation.Some(toInt(rows[0].Clicks))
}

func (f *Fetcher) daily(ctx context.Context, p stats.Period) foundation.Option[[]stats.DailyMetrics] {
	rows, err := f.query(ctx, "daily", Query{
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Dimensions: []string{"date"},
		RowLimit:   dailyRowLimit,
	})
	if err != nil {
		slog.Warn("Failed to fetch daily data", logfields.Query("daily"), logfields.Error(err))
		return foundation.None[[]stats.DailyMetrics]()
	}
	out := make([]stats.DailyMetrics, 0, len(rows))
	for _, r := range rows {
		out = append(out, stats.DailyMetrics{
			Date:        firstKey(r),
			Clicks:      toInt(r.Clicks),
			Impressions: toInt(r.Impressions),
			CTR:         r.CTR,
			Position:    r.Position,
		})
	}
	return foundation.Some(out)
}

func (f *Fetcher) pages(ctx context.Context, p stats.Period) foundation.Option[map[string]stats.PageMetrics] {
	rows, err := f.query(ctx, "pages", Query{
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		Dimensions:      []string{"page"},
		RowLimit:        int64(f.opts.PageLimit),
		AggregationType: "auto",
	})
	if err != nil {
		slog.Warn("Failed to fetch page data", logfields.Query("pages"), logfields.Error(err))
		return foundation.None[map[string]stats.PageMetrics]()
	}
	out := make(map[string]stats.PageMetrics, len(rows))
	for _, r := range rows {
		page := firstKey(r)
		if page == "" {
			continue
		}
		out[page] = stats.PageMetrics{
			Clicks:      toInt(r.Clicks),
			Impressions: toInt(r.Impressions),
			CTR:         r.CTR,
			Position:    r.Position,
		}
	}
	return foundation.Some(out)
}

func firstKey(r Row) string {
	if len(r.Keys) == 0 {
		return ""
	}
	return r.Keys[0]
}

// toInt truncates like parseInt on the service's numeric strings.
func toInt(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Trunc(v))
}
