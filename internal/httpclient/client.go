// Package httpclient builds the outbound HTTP client shared by everything that
// talks to Discord.
package httpclient

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Config encapsulates configuration for outbound HTTP requests.
type Config struct {
	// MaxRetries is how many times a failed request is retried. Zero disables
	// retries entirely.
	MaxRetries int
	// Timeout bounds each individual attempt.
	Timeout time.Duration
}

// New returns an *http.Client that retries failed requests according to the
// provided Config and reports its activity to the provided logger. Responses
// are always handed back to the caller, even after retries are exhausted, so
// that callers can inspect the status code.
func New(config Config, logger *zap.Logger) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = config.MaxRetries
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = NewLeveledLogger(logger)
	if config.Timeout > 0 {
		retryClient.HTTPClient.Timeout = config.Timeout
	}
	return retryClient.StandardClient()
}

// leveledLogger adapts a *zap.Logger to retryablehttp's LeveledLogger
// interface.
type leveledLogger struct {
	logger *zap.SugaredLogger
}

// NewLeveledLogger returns a retryablehttp.LeveledLogger that writes to the
// provided logger.
func NewLeveledLogger(logger *zap.Logger) retryablehttp.LeveledLogger {
	return &leveledLogger{
		logger: logger.Named("http").Sugar(),
	}
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infow(msg, keysAndValues...)
}

// Debug is where retryablehttp reports every single request.
func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}
