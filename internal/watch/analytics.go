package watch

import (
	"context"
	"sync"
	"time"

	"git.home.luguber.info/inful/docstats/internal/foundation"
	"git.home.luguber.info/inful/docstats/internal/pipeline"
	"git.home.luguber.info/inful/docstats/internal/stats"
)

// AnalyticsCache serves the last fetched summary so content-triggered
// regenerations do not query the analytics service each time.
type AnalyticsCache struct {
	source pipeline.AnalyticsSource

	mu      sync.RWMutex
	summary foundation.Option[stats.AnalyticsSummary]
}

// NewAnalyticsCache wraps source. The cache is empty until Refresh.
func NewAnalyticsCache(source pipeline.AnalyticsSource) *AnalyticsCache {
	return &AnalyticsCache{source: source, summary: foundation.None[stats.AnalyticsSummary]()}
}

// Refresh fetches a new summary. An absent result keeps the previous one.
func (c *AnalyticsCache) Refresh(ctx context.Context, now time.Time) {
	got := c.source.FetchSummary(ctx, now)
	c.mu.Lock()
	c.summary = got.Or(c.summary)
	c.mu.Unlock()
}

// FetchSummary returns the cached summary.
func (c *AnalyticsCache) FetchSummary(context.Context, time.Time) foundation.Option[stats.AnalyticsSummary] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.summary
}
