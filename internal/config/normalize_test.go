package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeConfig(t *testing.T) {
	cfg := &Config{
		History:       HistoryConfig{Engine: " Go-Git "},
		Logging:       LoggingConfig{Level: "loud", Format: "xml"},
		SearchConsole: SearchConsoleConfig{SiteURL: "  https://example.com/ ", Retry: RetryConfig{Backoff: "random"}},
	}
	require.NoError(t, NormalizeConfig(cfg))

	assert.Equal(t, HistoryEngineGoGit, cfg.History.Engine)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, RetryBackoffExponential, cfg.SearchConsole.Retry.Backoff)
	assert.Equal(t, "https://example.com/", cfg.SearchConsole.SiteURL)
}

func TestNormalizeConfigNil(t *testing.T) {
	require.Error(t, NormalizeConfig(nil))
}

func TestNormalizeRetryBackoff(t *testing.T) {
	assert.Equal(t, RetryBackoffFixed, NormalizeRetryBackoff("FIXED"))
	assert.Equal(t, RetryBackoffExponential, NormalizeRetryBackoff(" exp "))
	assert.Empty(t, NormalizeRetryBackoff("nope"))
}
