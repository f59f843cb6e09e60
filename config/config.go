package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tradeJournal/internal/adapters/logger" // Import the logger package for LogLevel
	"tradeJournal/internal/ports"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel    logger.LogLevel // Use the LogLevel type from the logger adapter
	LogEncoding logger.Encoding // json or console

	// HTTP API
	HTTPPort int

	// AI analysis
	GeminiAPIKey        string // Empty disables analysis
	GeminiModel         string
	GeminiTimeout       time.Duration
	AIRequestsPerMinute int
	AICacheTTL          time.Duration

	// Position sizer defaults
	SizerAccountBalance float64
	SizerRiskPercent    float64
	SizerLeverage       float64

	// Import
	ImportMaxBytes int64 // Upload limit for CSV imports

	// Demo data
	SeedDemoTrades bool
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	// Logging
	cfg.LogLevel = logger.ParseLevel(getEnv("LOG_LEVEL", "INFO"))
	cfg.LogEncoding = logger.Encoding(strings.ToLower(getEnv("LOG_ENCODING", string(logger.EncodingConsole))))
	if cfg.LogEncoding != logger.EncodingJSON && cfg.LogEncoding != logger.EncodingConsole {
		errs = append(errs, "LOG_ENCODING must be 'json' or 'console'")
	}

	// HTTP API
	cfg.HTTPPort, err = getEnvAsIntRequired("HTTP_PORT", 8080)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid HTTP_PORT: %v", err))
	} else if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		errs = append(errs, "HTTP_PORT must be between 1 and 65535")
	}

	// AI analysis. A missing key is not an error: analysis reports it instead.
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", getEnv("API_KEY", ""))
	cfg.GeminiModel = getEnv("GEMINI_MODEL", "gemini-2.5-flash")

	timeoutSeconds := getEnvAsInt("GEMINI_TIMEOUT_SECONDS", 60)
	if timeoutSeconds <= 0 {
		errs = append(errs, "GEMINI_TIMEOUT_SECONDS must be positive")
	}
	cfg.GeminiTimeout = time.Duration(timeoutSeconds) * time.Second

	cfg.AIRequestsPerMinute, err = getEnvAsIntRequired("AI_REQUESTS_PER_MINUTE", 10)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid AI_REQUESTS_PER_MINUTE: %v", err))
	} else if cfg.AIRequestsPerMinute <= 0 {
		errs = append(errs, "AI_REQUESTS_PER_MINUTE must be positive")
	}

	cacheMinutes := getEnvAsInt("AI_CACHE_TTL_MINUTES", 30)
	if cacheMinutes < 0 {
		errs = append(errs, "AI_CACHE_TTL_MINUTES cannot be negative")
	}
	cfg.AICacheTTL = time.Duration(cacheMinutes) * time.Minute

	// Position sizer defaults
	cfg.SizerAccountBalance, err = getEnvAsFloatRequired("SIZER_ACCOUNT_BALANCE", 10000)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SIZER_ACCOUNT_BALANCE: %v", err))
	} else if cfg.SizerAccountBalance <= 0 {
		errs = append(errs, "SIZER_ACCOUNT_BALANCE must be positive")
	}

	cfg.SizerRiskPercent, err = getEnvAsFloatRequired("SIZER_RISK_PERCENT", 1)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SIZER_RISK_PERCENT: %v", err))
	} else if cfg.SizerRiskPercent <= 0 || cfg.SizerRiskPercent > 100 {
		errs = append(errs, "SIZER_RISK_PERCENT must be between 0 and 100")
	}

	cfg.SizerLeverage, err = getEnvAsFloatRequired("SIZER_LEVERAGE", 1)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid SIZER_LEVERAGE: %v", err))
	} else if cfg.SizerLeverage < 1 {
		errs = append(errs, "SIZER_LEVERAGE must be at least 1")
	}

	// Import
	maxBytes := getEnvAsInt("IMPORT_MAX_BYTES", 5<<20)
	if maxBytes <= 0 {
		errs = append(errs, "IMPORT_MAX_BYTES must be positive")
	}
	cfg.ImportMaxBytes = int64(maxBytes)

	// Demo data
	cfg.SeedDemoTrades = getEnvAsBool("SEED_DEMO_TRADES", false)

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrConfigurationError, strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsFloatRequired(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
