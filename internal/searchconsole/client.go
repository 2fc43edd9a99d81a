package searchconsole

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/api/option"

	"git.home.luguber.info/inful/docstats/internal/config"
	"git.home.luguber.info/inful/docstats/internal/foundation"
	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/metrics"
	"git.home.luguber.info/inful/docstats/internal/retry"
	"git.home.luguber.info/inful/docstats/internal/stats"
)

// Client wires credential resolution, authentication and the fetcher together.
type Client struct {
	Config   config.SearchConsoleConfig
	Env      config.Env
	Recorder metrics.Recorder

	// Auth and ServiceOptions are overridden in tests.
	Auth           Authenticator
	ServiceOptions []option.ClientOption
}

// FetchSummary returns the analytics summary, or None when analytics are
// disabled, no credentials exist, authentication fails or totals are empty.
func (c *Client) FetchSummary(ctx context.Context, now time.Time) foundation.Option[stats.AnalyticsSummary] {
	if !c.Config.IsEnabled() {
		slog.InfoContext(ctx, "Search Console fetch disabled")
		return foundation.None[stats.AnalyticsSummary]()
	}

	creds, ok := ResolveCredentials(c.Env, c.Config.KeyFiles)
	if !ok {
		return foundation.None[stats.AnalyticsSummary]()
	}

	ts, err := c.Auth.Authenticate(ctx, &creds)
	if err != nil {
		Diagnose(err, creds.ClientEmail)
		return foundation.None[stats.AnalyticsSummary]()
	}

	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, c.ServiceOptions...)
	svc, err := NewService(ctx, retry.FromConfig(c.Config.Retry), opts...)
	if err != nil {
		slog.ErrorContext(ctx, "Search Console client unavailable", logfields.Error(err))
		return foundation.None[stats.AnalyticsSummary]()
	}

	f := NewFetcher(svc, Options{
		SiteURL:            c.Env.ResolvedSiteURL(c.Config.SiteURL),
		WindowDays:         c.Config.WindowDays,
		PreviousWindowDays: c.Config.PreviousWindowDays,
		PageLimit:          c.Config.PageLimit,
		ClientEmail:        creds.ClientEmail,
		Recorder:           c.Recorder,
	})
	return f.Fetch(ctx, now)
}
