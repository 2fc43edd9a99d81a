package config

import (
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
)

// NormalizeConfig canonicalizes enumerated fields before defaults run.
// Unknown log values fall back with a warning; an unknown history engine is an error.
func NormalizeConfig(c *Config) error {
	if c == nil {
		return errors.InternalError("config nil").Build()
	}

	if raw := strings.TrimSpace(string(c.History.Engine)); raw != "" {
		engine, err := NormalizeHistoryEngine(raw)
		if err != nil {
			return errors.WrapError(err, errors.CategoryValidation, "unknown history engine").
				WithContext("field", "history.engine").
				Fatal().
				Build()
		}
		c.History.Engine = engine
	}

	if raw := strings.TrimSpace(string(c.Logging.Level)); raw != "" {
		lvl, err := logLevelNormalizer.NormalizeWithError(raw)
		if err != nil {
			lvl = LogLevelInfo
			slog.Warn("config normalization: unknown value", "field", "logging.level", "value", raw, "using", lvl)
		}
		c.Logging.Level = lvl
	}

	if raw := strings.TrimSpace(string(c.Logging.Format)); raw != "" {
		f, err := logFormatNormalizer.NormalizeWithError(raw)
		if err != nil {
			f = LogFormatText
			slog.Warn("config normalization: unknown value", "field", "logging.format", "value", raw, "using", f)
		}
		c.Logging.Format = f
	}

	if raw := strings.TrimSpace(string(c.SearchConsole.Retry.Backoff)); raw != "" {
		mode := NormalizeRetryBackoff(raw)
		if mode == "" {
			slog.Warn("config normalization: unknown value", "field", "search_console.retry.backoff", "value", raw, "using", RetryBackoffExponential)
			mode = RetryBackoffExponential
		}
		c.SearchConsole.Retry.Backoff = mode
	}

	c.SearchConsole.SiteURL = strings.TrimSpace(c.SearchConsole.SiteURL)
	return nil
}
