package retry

import (
	"time"

	"git.home.luguber.info/inful/docstats/internal/config"
)

// Policy describes how long to wait between attempts of a remote query.
type Policy struct {
	Mode       config.RetryBackoffMode
	Initial    time.Duration
	MaxDelay   time.Duration
	MaxRetries int // attempts after the first failure
}

// DefaultPolicy mirrors the search_console.retry defaults.
func DefaultPolicy() Policy {
	return Policy{
		Mode:       config.RetryBackoffExponential,
		Initial:    time.Second,
		MaxDelay:   10 * time.Second,
		MaxRetries: 2,
	}
}

// NewPolicy overlays the given values on DefaultPolicy. Zero durations, a
// negative retry count and unknown modes keep the default.
func NewPolicy(mode config.RetryBackoffMode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	switch mode {
	case config.RetryBackoffFixed, config.RetryBackoffLinear, config.RetryBackoffExponential:
		p.Mode = mode
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.MaxDelay = maxDelay
	}
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	p.Initial = min(p.Initial, p.MaxDelay)
	return p
}

// FromConfig builds a policy from the search_console.retry section.
func FromConfig(rc config.RetryConfig) Policy {
	initial, maxDelay := rc.Delays()
	return NewPolicy(rc.Backoff, initial, maxDelay, rc.Retries())
}

// Delay is the wait before retry n (1-based). n <= 0 yields 0.
func (p Policy) Delay(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case config.RetryBackoffFixed:
		d = p.Initial
	case config.RetryBackoffExponential:
		if n > 30 {
			return p.MaxDelay
		}
		d = p.Initial << (n - 1)
	default:
		d = time.Duration(n) * p.Initial
	}
	return p.capped(d)
}

func (p Policy) capped(d time.Duration) time.Duration {
	if d <= 0 || d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}
