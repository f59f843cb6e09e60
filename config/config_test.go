package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeJournal/internal/adapters/logger"
	"tradeJournal/internal/ports"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"LOG_LEVEL", "LOG_ENCODING", "HTTP_PORT", "GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL",
		"GEMINI_TIMEOUT_SECONDS", "AI_REQUESTS_PER_MINUTE", "AI_CACHE_TTL_MINUTES",
		"SIZER_ACCOUNT_BALANCE", "SIZER_RISK_PERCENT", "SIZER_LEVERAGE", "IMPORT_MAX_BYTES", "SEED_DEMO_TRADES",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, logger.LevelInfo, cfg.LogLevel)
	assert.Equal(t, logger.EncodingConsole, cfg.LogEncoding)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 60*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 10, cfg.AIRequestsPerMinute)
	assert.Equal(t, 30*time.Minute, cfg.AICacheTTL)
	assert.Equal(t, 10000.0, cfg.SizerAccountBalance)
	assert.Equal(t, 1.0, cfg.SizerRiskPercent)
	assert.Equal(t, 1.0, cfg.SizerLeverage)
	assert.Equal(t, int64(5<<20), cfg.ImportMaxBytes)
	assert.False(t, cfg.SeedDemoTrades)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_ENCODING", "JSON")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("AI_CACHE_TTL_MINUTES", "0")
	t.Setenv("SIZER_LEVERAGE", "5")
	t.Setenv("SEED_DEMO_TRADES", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, logger.LevelDebug, cfg.LogLevel)
	assert.Equal(t, logger.EncodingJSON, cfg.LogEncoding)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.Equal(t, time.Duration(0), cfg.AICacheTTL)
	assert.Equal(t, 5.0, cfg.SizerLeverage)
	assert.True(t, cfg.SeedDemoTrades)
}

func TestLoadConfig_LegacyAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.GeminiAPIKey)
}

func TestLoadConfig_CollectsErrors(t *testing.T) {
	t.Setenv("LOG_ENCODING", "xml")
	t.Setenv("HTTP_PORT", "not-a-port")
	t.Setenv("SIZER_RISK_PERCENT", "250")
	t.Setenv("AI_REQUESTS_PER_MINUTE", "0")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ports.ErrConfigurationError)
	assert.Contains(t, err.Error(), "LOG_ENCODING")
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "SIZER_RISK_PERCENT")
	assert.Contains(t, err.Error(), "AI_REQUESTS_PER_MINUTE")
}
