package scraper

import (
	"fmt"
	"log/slog"

	"github.com/go-resty/resty/v2"
)

// SlogAdapter adapts an slog.Logger to the resty.Logger interface.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates an adapter that forwards resty messages to logger.
func NewSlogAdapter(logger *slog.Logger) resty.Logger {
	return &SlogAdapter{logger: logger}
}

// Errorf logs a message at error level.
func (a *SlogAdapter) Errorf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...))
}

// Warnf logs a message at warning level.
func (a *SlogAdapter) Warnf(format string, v ...interface{}) {
	a.logger.Warn(fmt.Sprintf(format, v...))
}

// Debugf logs a message at debug level.
func (a *SlogAdapter) Debugf(format string, v ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, v...))
}

// SetLoggerForResty routes resty's own logging through logger.
func SetLoggerForResty(client *resty.Client, logger *slog.Logger) {
	client.SetLogger(NewSlogAdapter(logger))
}
