package config

import "path/filepath"

// Default values for the content pipeline.
const (
	DefaultContentRoot        = "docs/src"
	DefaultOutputPath         = "docs/src/public/stats.json"
	DefaultSiteURL            = "https://raincoat98.github.io/"
	DefaultWindowDays         = 30
	DefaultPreviousWindowDays = 28
	DefaultPageLimit          = 50
	DefaultDebounce           = "2s"
)

// DefaultCopyTargets are the build-output locations the artifact is published to.
var DefaultCopyTargets = []string{"docs/dist/stats.json", "docs/.vitepress/dist/stats.json"}

// DefaultKeyFiles are the service account key files tried when no env credentials exist.
var DefaultKeyFiles = []string{
	filepath.Join("docs", ".vitepress", "service-account.json"),
	"service-account.json",
}

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

type contentDefaults struct{}

func (contentDefaults) Domain() string { return "content" }

func (contentDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Content.Root == "" {
		cfg.Content.Root = DefaultContentRoot
	}
	if cfg.Content.Repo == "" {
		cfg.Content.Repo = "."
	}
	return nil
}

type outputDefaults struct{}

func (outputDefaults) Domain() string { return "output" }

func (outputDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Path == "" {
		cfg.Output.Path = DefaultOutputPath
	}
	if cfg.Output.CopyTargets == nil {
		cfg.Output.CopyTargets = append([]string(nil), DefaultCopyTargets...)
	}
	return nil
}

type historyDefaults struct{}

func (historyDefaults) Domain() string { return "history" }

func (historyDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.History.Engine == "" {
		cfg.History.Engine = HistoryEngineCLI
	}
	return nil
}

type searchConsoleDefaults struct{}

func (searchConsoleDefaults) Domain() string { return "search_console" }

func (searchConsoleDefaults) ApplyDefaults(cfg *Config) error {
	sc := &cfg.SearchConsole
	if sc.Enabled == nil {
		enabled := true
		sc.Enabled = &enabled
	}
	if sc.SiteURL == "" {
		sc.SiteURL = DefaultSiteURL
	}
	if sc.KeyFiles == nil {
		sc.KeyFiles = append([]string(nil), DefaultKeyFiles...)
	}
	if sc.WindowDays <= 0 {
		sc.WindowDays = DefaultWindowDays
	}
	if sc.PreviousWindowDays <= 0 {
		sc.PreviousWindowDays = DefaultPreviousWindowDays
	}
	if sc.PageLimit <= 0 {
		sc.PageLimit = DefaultPageLimit
	}
	if sc.Retry.Backoff == "" {
		sc.Retry.Backoff = RetryBackoffExponential
	}
	if sc.Retry.InitialDelay == "" {
		sc.Retry.InitialDelay = "1s"
	}
	if sc.Retry.MaxDelay == "" {
		sc.Retry.MaxDelay = "10s"
	}
	if sc.Retry.MaxRetries == nil {
		n := 2
		sc.Retry.MaxRetries = &n
	}
	return nil
}

type watchDefaults struct{}

func (watchDefaults) Domain() string { return "watch" }

func (watchDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Watch.Debounce == "" {
		cfg.Watch.Debounce = DefaultDebounce
	}
	return nil
}

type loggingDefaults struct{}

func (loggingDefaults) Domain() string { return "logging" }

func (loggingDefaults) ApplyDefaults(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	return nil
}

// defaultAppliers runs in declaration order.
var defaultAppliers = []DefaultApplier{
	contentDefaults{},
	outputDefaults{},
	historyDefaults{},
	searchConsoleDefaults{},
	watchDefaults{},
	loggingDefaults{},
}

// ApplyDefaults fills every unset field of cfg.
func ApplyDefaults(cfg *Config) error {
	for _, applier := range defaultAppliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
