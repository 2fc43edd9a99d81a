package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docstats/internal/logfields"
)

// Classifier decides whether err is worth another attempt. multiplier scales
// the policy delay for that attempt (rate limits back off harder); values <= 0 mean 1.
type Classifier func(err error) (retryable bool, multiplier float64)

// Do runs fn until it succeeds, classify rejects the error, retries are
// exhausted, or ctx is cancelled.
func Do(ctx context.Context, p Policy, op string, classify Classifier, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("retrying operation", slog.String("operation", op), logfields.Attempt(attempt))
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		retryable, mult := false, 1.0
		if classify != nil {
			retryable, mult = classify(err)
		}
		if !retryable {
			return err
		}
		if attempt == p.MaxRetries {
			break
		}
		if mult <= 0 {
			mult = 1
		}
		delay := time.Duration(float64(p.Delay(attempt+1)) * mult)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Errorf("%s failed after retries: %w", op, lastErr)
}
