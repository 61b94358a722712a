package audit

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/scraper"
)

var (
	ErrInvalidURL      = errors.New("invalid URL")
	ErrAuditInProgress = errors.New("an audit is already in progress")
	ErrAuditAbandoned  = errors.New("audit was abandoned before the scrape finished")
	ErrNotAnalyzed     = errors.New("session has not been analyzed")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownItem     = errors.New("unknown checklist item")
	ErrInvalidStatus   = errors.New("invalid item status")
	ErrNoStore         = errors.New("no snapshot store configured")
)

// TransportError wraps a scraper failure. Message is safe to show to users.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("scrape of %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Message returns a short human-readable description of the failure.
func (e *TransportError) Message() string {
	var statusErr *scraper.StatusError
	switch {
	case errors.As(e.Err, &statusErr):
		return fmt.Sprintf("the site answered HTTP %d %s", statusErr.StatusCode, http.StatusText(statusErr.StatusCode))
	case errors.Is(e.Err, context.DeadlineExceeded):
		return "the site did not answer in time"
	case errors.Is(e.Err, context.Canceled):
		return "the audit was cancelled"
	default:
		return "the site could not be reached"
	}
}

// PersistenceError wraps a snapshot store failure. The in-memory session is
// never modified when it is returned.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save audit: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
