package audit

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/checklist"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/insights"
)

// Option configures a Session.
type Option func(*Session)

// WithStore sets the snapshot store used by Save.
func WithStore(store Store) Option {
	return func(s *Session) { s.store = store }
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTemplate replaces the built-in checklist. An invalid template is a
// programming error and panics.
func WithTemplate(template []models.AuditCategory) Option {
	if err := checklist.Validate(template); err != nil {
		panic(fmt.Sprintf("audit: %v", err))
	}
	template = checklist.Fresh(template)
	return func(s *Session) { s.template = template }
}

// WithBands sets the recommendation priority bands. Invalid bands panic.
func WithBands(bands insights.Bands) Option {
	if err := bands.Validate(); err != nil {
		panic(fmt.Sprintf("audit: %v", err))
	}
	return func(s *Session) { s.bands = bands }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithKeywordCount sets how many top keywords the session keeps.
func WithKeywordCount(n int) Option {
	return func(s *Session) { s.keywordCount = n }
}
