package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
)

// AccessTracker records scrape attempts.
type AccessTracker interface {
	TrackAccess(ctx context.Context, rawURL string, statusCode int, errorType string, success bool) error
}

// Error types recorded by TrackingScraper.
const (
	ErrorTypeHTTPStatus = "http_status"
	ErrorTypeTimeout    = "timeout"
	ErrorTypeFetch      = "fetch_error"
)

// TrackingScraper records every attempt of the wrapped Scraper. Tracking
// failures are logged and never fail the scrape.
type TrackingScraper struct {
	next    Scraper
	tracker AccessTracker
	logger  *slog.Logger
}

// NewTrackingScraper wraps next so each attempt is recorded in tracker.
func NewTrackingScraper(next Scraper, tracker AccessTracker, logger *slog.Logger) *TrackingScraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrackingScraper{next: next, tracker: tracker, logger: logger.With("component", "access_tracker")}
}

func (t *TrackingScraper) Scrape(ctx context.Context, rawURL string) (*models.ScrapedData, error) {
	data, err := t.next.Scrape(ctx, rawURL)

	statusCode, errorType := http.StatusOK, ""
	if data != nil && data.StatusCode != 0 {
		statusCode = data.StatusCode
	}
	if err != nil {
		statusCode, errorType = classify(err)
	}
	// a cancelled request context must not prevent the record
	if trackErr := t.tracker.TrackAccess(context.WithoutCancel(ctx), rawURL, statusCode, errorType, err == nil); trackErr != nil {
		t.logger.Warn("failed to record access", "url", rawURL, "error", trackErr)
	}
	return data, err
}

func classify(err error) (int, string) {
	var statusErr *StatusError
	switch {
	case errors.As(err, &statusErr):
		return statusErr.StatusCode, ErrorTypeHTTPStatus
	case errors.Is(err, context.DeadlineExceeded):
		return 0, ErrorTypeTimeout
	default:
		return 0, ErrorTypeFetch
	}
}
