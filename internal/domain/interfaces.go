package domain

import "context"

// HighlightSource defines the upstream API operations the pipeline consumes.
// A limit of 0 means no cap.
type HighlightSource interface {
	FetchHighlights(ctx context.Context, limit int) ([]Highlight, error)
	FetchBooks(ctx context.Context) (map[int64]Book, error)
}

// Notifier posts a formatted message to the configured channel.
type Notifier interface {
	Notify(ctx context.Context, message Message) error
}

// RandomSource abstracts the random picks made by the selector so tests can
// script outcomes deterministically.
type RandomSource interface {
	// Intn returns a uniform value in [0, n). n must be > 0.
	Intn(n int) int
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetReadwiseToken() string
	GetReadwiseAPIURL() string
	GetSlackWebhookURL() string
	GetHTTPTimeoutSeconds() int
	GetLogLevel() string
	GetLogFile() string
	GetNoisePatterns() []string
}
