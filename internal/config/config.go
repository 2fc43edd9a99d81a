package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docstats/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "docstats.yaml"

// Config is the docstats configuration file.
type Config struct {
	Content       ContentConfig       `yaml:"content"`
	Output        OutputConfig        `yaml:"output"`
	History       HistoryConfig       `yaml:"history"`
	SearchConsole SearchConsoleConfig `yaml:"search_console"`
	Watch         WatchConfig         `yaml:"watch"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ContentConfig locates the Markdown sources and the repository that tracks them.
type ContentConfig struct {
	Root string `yaml:"root"` // content root scanned for Markdown files
	Repo string `yaml:"repo"` // directory inside the git work tree; defaults to the working directory
}

// OutputConfig controls where the stats artifact is written and published.
type OutputConfig struct {
	Path        string   `yaml:"path"`
	CopyTargets []string `yaml:"copy_targets"`
	MetricsFile string   `yaml:"metrics_file"` // optional Prometheus textfile
}

// HistoryConfig selects the git history engine.
type HistoryConfig struct {
	Engine HistoryEngine `yaml:"engine"`
}

// SearchConsoleConfig configures the optional analytics fetch.
type SearchConsoleConfig struct {
	Enabled            *bool       `yaml:"enabled,omitempty"`
	SiteURL            string      `yaml:"site_url"`
	KeyFiles           []string    `yaml:"key_files"`
	WindowDays         int         `yaml:"window_days"`
	PreviousWindowDays int         `yaml:"previous_window_days"`
	PageLimit          int         `yaml:"page_limit"`
	Retry              RetryConfig `yaml:"retry"`
}

// IsEnabled reports whether analytics should be fetched. Unset means enabled.
func (s SearchConsoleConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// RetryConfig holds backoff settings for transient API failures.
type RetryConfig struct {
	Backoff      RetryBackoffMode `yaml:"backoff"`
	InitialDelay string           `yaml:"initial_delay"`
	MaxDelay     string           `yaml:"max_delay"`
	MaxRetries   *int             `yaml:"max_retries,omitempty"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce          string `yaml:"debounce"`
	AnalyticsInterval string `yaml:"analytics_interval"` // empty disables periodic analytics refresh
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Load reads the configuration file at configPath. A missing file yields the
// defaults; any other read, parse or validation failure is a config error.
func Load(configPath string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath) // #nosec G304 -- path is operator supplied
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if uerr := yaml.Unmarshal([]byte(expanded), &cfg); uerr != nil {
			return nil, errors.WrapError(uerr, errors.CategoryConfig, "failed to parse configuration").
				WithContext("path", configPath).
				Fatal().
				Build()
		}
	case os.IsNotExist(err):
		// defaults only
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read configuration").
			WithContext("path", configPath).
			Fatal().
			Build()
	}

	if err := NormalizeConfig(&cfg); err != nil {
		return nil, err
	}
	if err := ApplyDefaults(&cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to apply defaults").Fatal().Build()
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a fully defaulted configuration.
func Default() *Config {
	cfg := &Config{}
	_ = ApplyDefaults(cfg)
	return cfg
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.SearchConsole.KeyFiles = []string{"${HOME}/.config/docstats/service-account.json"}

	data, err := yaml.Marshal(example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example configuration").Build()
	}
	header := "# docstats configuration\n# Credentials come from GOOGLE_CLIENT_EMAIL/GOOGLE_PRIVATE_KEY or a service account key file.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write configuration").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
