package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"smartsheetsvc/internal"
	"smartsheetsvc/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Smartsheet SmartsheetConfig
	Cache      CacheConfig
	Server     ServerConfig
	Profiling  ProfilingConfig
	LogLevel   internal.LogLevel
}

// SmartsheetConfig holds upstream API settings and the served sheet ids
type SmartsheetConfig struct {
	AccessToken    string
	UserAgent      string
	BaseURL        string
	MaxConnections int
	Timeout        time.Duration
	Strict         bool
	FundingID      int64
	PerfusionsID   int64
	ProtocolsID    int64
}

// CacheConfig holds sheet cache settings. An empty DatabaseURL selects the
// in-memory store.
type CacheConfig struct {
	TTL         time.Duration
	DatabaseURL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	smartsheetConfig, err := loadSmartsheetConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load smartsheet configuration")
	}
	config.Smartsheet = *smartsheetConfig

	config.Cache = CacheConfig{
		TTL:         getEnvDurationOrDefault("CACHE_TTL", 120*time.Second),
		DatabaseURL: getEnvOrDefault("CACHE_DATABASE_URL", ""),
	}
	config.Server = ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
	config.Profiling = ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
	config.LogLevel = internal.ParseLogLevel(os.Getenv("LOG_LEVEL"))

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// LoadSmartsheet reads only the upstream settings. The CLI uses it so that
// offline commands do not need server variables.
func LoadSmartsheet() (*SmartsheetConfig, error) {
	return loadSmartsheetConfig()
}

func loadSmartsheetConfig() (*SmartsheetConfig, error) {
	token := os.Getenv("SMARTSHEET_ACCESS_TOKEN")
	if token == "" {
		return nil, errors.ConfigInvalid("SMARTSHEET_ACCESS_TOKEN is required")
	}

	fundingID, err := requireEnvInt64("SMARTSHEET_FUNDING_ID")
	if err != nil {
		return nil, err
	}
	perfusionsID, err := requireEnvInt64("SMARTSHEET_PERFUSIONS_ID")
	if err != nil {
		return nil, err
	}
	protocolsID, err := requireEnvInt64("SMARTSHEET_PROTOCOLS_ID")
	if err != nil {
		return nil, err
	}

	return &SmartsheetConfig{
		AccessToken:    token,
		UserAgent:      getEnvOrDefault("SMARTSHEET_USER_AGENT", "aind-smartsheet-service-server"),
		BaseURL:        strings.TrimRight(getEnvOrDefault("SMARTSHEET_BASE_URL", "https://api.smartsheet.com/2.0"), "/"),
		MaxConnections: getEnvIntOrDefault("SMARTSHEET_MAX_CONNECTIONS", 8),
		Timeout:        getEnvDurationOrDefault("SMARTSHEET_TIMEOUT", 30*time.Second),
		Strict:         getEnvBoolOrDefault("SMARTSHEET_STRICT", false),
		FundingID:      fundingID,
		PerfusionsID:   perfusionsID,
		ProtocolsID:    protocolsID,
	}, nil
}

func validateConfig(config *Config) error {
	if config.Smartsheet.MaxConnections < 1 {
		return errors.ConfigInvalid("SMARTSHEET_MAX_CONNECTIONS must be at least 1")
	}
	if config.Cache.TTL < 0 {
		return errors.ConfigInvalid("CACHE_TTL must not be negative")
	}
	if url := config.Cache.DatabaseURL; url != "" &&
		!strings.HasPrefix(url, "postgres://") &&
		!strings.HasPrefix(url, "postgresql://") &&
		!strings.HasPrefix(url, "sqlite://") {
		return errors.ConfigInvalid("CACHE_DATABASE_URL must use postgres:// or sqlite://")
	}
	return nil
}

func requireEnvInt64(key string) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s is required", key))
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(fmt.Sprintf("%s must be an integer sheet id, got %q", key, value))
	}
	return id, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// Durations accept Go syntax ("90s") or a bare number of seconds.
func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if seconds, err := strconv.ParseFloat(value, 64); err == nil {
			return time.Duration(seconds * float64(time.Second))
		}
	}
	return defaultValue
}
