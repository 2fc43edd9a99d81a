package config

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
)

// Env holds the variables docstats reads from the process environment.
type Env struct {
	GoogleClientEmail    string `env:"GOOGLE_CLIENT_EMAIL"`
	GooglePrivateKey     string `env:"GOOGLE_PRIVATE_KEY"`
	GoogleKeyFilePath    string `env:"GOOGLE_KEY_FILE_PATH"`
	SearchConsoleSiteURL string `env:"GOOGLE_SEARCH_CONSOLE_SITE_URL"`
	SiteURL              string `env:"SITE_URL"`
	LogLevel             string `env:"DOCSTATS_LOG_LEVEL"`
	LogFormat            string `env:"DOCSTATS_LOG_FORMAT"`
}

// envFiles are tried in order; variables already set are never overridden.
var envFiles = []string{".env", ".env.local"}

// LoadDotEnv loads the first readable .env file into the process environment.
func LoadDotEnv() {
	for _, path := range envFiles {
		err := godotenv.Load(path)
		if err == nil {
			slog.Debug("Loaded environment variables", "path", path)
			return
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			slog.Warn("Failed to load env file", "path", path, "error", err)
		}
	}
}

// ReadEnv parses the process environment.
func ReadEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, errors.WrapError(err, errors.CategoryConfig, "failed to parse environment").Build()
	}
	return e, nil
}

// ReadEnvFrom parses the given variables instead of the process environment.
func ReadEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Env{}, errors.WrapError(err, errors.CategoryConfig, "failed to parse environment").Build()
	}
	return e, nil
}

// ResolvedSiteURL picks the Search Console property: explicit env, then SITE_URL, then fallback.
func (e Env) ResolvedSiteURL(fallback string) string {
	if v := strings.TrimSpace(e.SearchConsoleSiteURL); v != "" {
		return v
	}
	if v := strings.TrimSpace(e.SiteURL); v != "" {
		return v
	}
	return fallback
}

// ApplyLoggingOverrides lets DOCSTATS_LOG_LEVEL and DOCSTATS_LOG_FORMAT win over the file.
func (e Env) ApplyLoggingOverrides(l *LoggingConfig) {
	if strings.TrimSpace(e.LogLevel) != "" {
		l.Level = NormalizeLogLevel(e.LogLevel)
	}
	if strings.TrimSpace(e.LogFormat) != "" {
		l.Format = NormalizeLogFormat(e.LogFormat)
	}
}
