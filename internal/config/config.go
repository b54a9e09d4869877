package config

import (
	"os"
	"strconv"
	"strings"

	"readwise-notifier/internal/domain"
	"readwise-notifier/pkg/errors"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ReadwiseToken   string
	ReadwiseAPIURL  string
	SlackWebhookURL string
	HTTPTimeoutSecs int
	LogLevel        string
	LogFile         string
	NoisePatterns   []string
}

// NewConfig creates a new configuration instance from the environment
func NewConfig() domain.Config {
	return &AppConfig{
		ReadwiseToken:   os.Getenv("READWISE_TOKEN"),
		ReadwiseAPIURL:  getEnvOrDefault("READWISE_API_URL", "https://readwise.io/api/v2"),
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
		HTTPTimeoutSecs: getEnvIntOrDefault("HTTP_TIMEOUT_SECONDS", 30),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:         getEnvOrDefault("LOG_FILE", "readwise-notifier.log"),
		NoisePatterns:   splitPatterns(os.Getenv("NOISE_PATTERNS")),
	}
}

// Validate fails fast on missing required credentials, before any network
// call is made.
func Validate(cfg domain.Config) error {
	if cfg.GetReadwiseToken() == "" {
		return errors.NewConfigError("READWISE_TOKEN is required")
	}
	if cfg.GetSlackWebhookURL() == "" {
		return errors.NewConfigError("SLACK_WEBHOOK_URL is required")
	}
	return nil
}

// GetReadwiseToken returns the Readwise API bearer token
func (c *AppConfig) GetReadwiseToken() string {
	return c.ReadwiseToken
}

// GetReadwiseAPIURL returns the Readwise API base URL
func (c *AppConfig) GetReadwiseAPIURL() string {
	return c.ReadwiseAPIURL
}

// GetSlackWebhookURL returns the Slack incoming webhook target
func (c *AppConfig) GetSlackWebhookURL() string {
	return c.SlackWebhookURL
}

// GetHTTPTimeoutSeconds returns the per-request HTTP timeout
func (c *AppConfig) GetHTTPTimeoutSeconds() int {
	return c.HTTPTimeoutSecs
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetLogFile returns the rotating log file path; empty disables the file sink
func (c *AppConfig) GetLogFile() string {
	return c.LogFile
}

// GetNoisePatterns returns extra noise patterns; empty means defaults apply
func (c *AppConfig) GetNoisePatterns() []string {
	return c.NoisePatterns
}

// Helper functions for environment variable handling
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

func splitPatterns(raw string) []string {
	if raw == "" {
		return nil
	}
	var patterns []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	return patterns
}
