package config

import (
	"net/url"
	"strings"
	"time"

	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
)

// ValidateConfig checks a normalized, defaulted configuration.
func ValidateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Content.Root) == "" {
		return fieldError("content.root", "content root must not be empty")
	}
	if strings.TrimSpace(cfg.Output.Path) == "" {
		return fieldError("output.path", "output path must not be empty")
	}
	if err := validateSiteURL(cfg.SearchConsole.SiteURL); err != nil {
		return err
	}
	if err := validateRetry(cfg.SearchConsole.Retry); err != nil {
		return err
	}
	if _, err := parsePositiveDuration("watch.debounce", cfg.Watch.Debounce); err != nil {
		return err
	}
	if cfg.Watch.AnalyticsInterval != "" {
		if _, err := parsePositiveDuration("watch.analytics_interval", cfg.Watch.AnalyticsInterval); err != nil {
			return err
		}
	}
	return nil
}

func validateSiteURL(raw string) error {
	// sc-domain:example.com properties are valid Search Console site identifiers
	if strings.HasPrefix(raw, "sc-domain:") {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fieldError("search_console.site_url", "site URL must be absolute or an sc-domain property")
	}
	return nil
}

func validateRetry(r RetryConfig) error {
	initial, err := parsePositiveDuration("search_console.retry.initial_delay", r.InitialDelay)
	if err != nil {
		return err
	}
	maxDelay, err := parsePositiveDuration("search_console.retry.max_delay", r.MaxDelay)
	if err != nil {
		return err
	}
	if initial > maxDelay {
		return fieldError("search_console.retry.initial_delay", "initial delay exceeds max delay")
	}
	if r.MaxRetries != nil && *r.MaxRetries < 0 {
		return fieldError("search_console.retry.max_retries", "max retries cannot be negative")
	}
	return nil
}

func parsePositiveDuration(field, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryValidation, "invalid duration").
			WithContext("field", field).
			WithContext("value", raw).
			Fatal().
			Build()
	}
	if d <= 0 {
		return 0, fieldError(field, "duration must be positive")
	}
	return d, nil
}

func fieldError(field, msg string) error {
	return errors.ValidationError(msg).WithContext("field", field).Build()
}

// DebounceDuration returns the parsed watch debounce.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultDebounce)
	}
	return d
}

// AnalyticsEvery returns the analytics refresh interval, or zero when disabled.
func (w WatchConfig) AnalyticsEvery() time.Duration {
	if w.AnalyticsInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(w.AnalyticsInterval)
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

// Delays returns the parsed initial and max retry delays. Invalid values yield zero.
func (r RetryConfig) Delays() (initial, maxDelay time.Duration) {
	initial, _ = time.ParseDuration(r.InitialDelay)
	maxDelay, _ = time.ParseDuration(r.MaxDelay)
	return initial, maxDelay
}

// Retries returns the configured retry count, or -1 when unset.
func (r RetryConfig) Retries() int {
	if r.MaxRetries == nil {
		return -1
	}
	return *r.MaxRetries
}
