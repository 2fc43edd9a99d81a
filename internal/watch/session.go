package watch

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docstats/internal/logfields"
	"git.home.luguber.info/inful/docstats/internal/pipeline"
)

// Options configure a watch session.
type Options struct {
	Deps              pipeline.Deps
	Debounce          time.Duration
	AnalyticsInterval time.Duration // zero disables the periodic refresh
}

// Run generates the artifact once, then keeps regenerating it on content
// changes until ctx is done. When Deps.Analytics is set the summary is fetched
// once up front and then only on the AnalyticsInterval schedule.
func Run(ctx context.Context, opts Options) error {
	deps := opts.Deps
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	var cache *AnalyticsCache
	if deps.Analytics != nil {
		cache = NewAnalyticsCache(deps.Analytics)
		cache.Refresh(ctx, clock())
		deps.Analytics = cache
	}

	w, err := NewWatcher(deps.ContentRoot, opts.Debounce, func(ctx context.Context) {
		pipeline.Generate(ctx, deps)
	})
	if err != nil {
		return err
	}
	if deps.Writer != nil {
		w.Ignore(deps.Writer.Path)
	}
	w.Regenerate(ctx)

	if cache != nil && opts.AnalyticsInterval > 0 {
		sched, serr := NewScheduler()
		if serr == nil {
			_, serr = sched.Every(opts.AnalyticsInterval, "analytics-refresh", func() {
				cache.Refresh(ctx, clock())
				w.Regenerate(ctx)
			})
		}
		if serr != nil {
			_ = w.fsw.Close()
			return serr
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	return w.Run(ctx)
}
