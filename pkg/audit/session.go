// Package audit owns the audit session: it drives the scraper, analyzer,
// scoring and insights, applies manual overrides and hands snapshots to a
// store.
//
// Every mutation recomputes scores, quick wins and recommendations before it
// returns, so a View never exposes stale derived values.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/analyzer"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/checklist"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/insights"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/scoring"
	"github.com/GlobalTax/nrro-es-starter-sub005/pkg/scraper"
)

const defaultKeywordCount = 10

// Store persists audit snapshots.
type Store interface {
	SaveAuditSnapshot(ctx context.Context, snap models.AuditSnapshot) (string, error)
}

// Session is a single audit aggregate. It is safe for concurrent use, but only
// one RunAudit may be in flight at a time.
type Session struct {
	mu sync.Mutex

	scraper      scraper.Scraper
	store        Store
	logger       *slog.Logger
	template     []models.AuditCategory
	bands        insights.Bands
	now          func() time.Time
	keywordCount int

	url             string
	state           models.SessionState
	categories      []models.AuditCategory
	globalScore     int
	quickWins       []models.QuickWin
	recommendations []models.Recommendation
	topKeywords     []string
	raw             *models.ScrapedData
	errMsg          string
	auditedAt       time.Time

	// generation changes on every dispatch and reset; a scrape result is
	// applied only if the generation it was dispatched under is still current.
	generation uint64
}

// NewSession creates an empty session backed by s.
func NewSession(s scraper.Scraper, opts ...Option) *Session {
	session := &Session{
		scraper:      s,
		logger:       slog.Default(),
		template:     checklist.CreateDefault(),
		bands:        insights.DefaultBands,
		now:          time.Now,
		keywordCount: defaultKeywordCount,
	}
	for _, opt := range opts {
		opt(session)
	}
	session.logger = session.logger.With("component", "audit")
	session.resetLocked()
	return session
}

// RunAudit scrapes rawURL and analyzes the result. The session lock is not
// held while the scraper runs.
func (s *Session) RunAudit(ctx context.Context, rawURL string) error {
	target, err := validateURL(rawURL)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.state == models.StateLoading {
		s.mu.Unlock()
		return ErrAuditInProgress
	}
	s.generation++
	gen := s.generation
	s.clearLocked()
	s.url = target
	s.state = models.StateLoading
	s.recomputeLocked()
	s.mu.Unlock()

	s.logger.Info("audit started", "url", target)
	start := time.Now()
	data, scrapeErr := s.scraper.Scrape(ctx, target)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen || s.url != target {
		s.logger.Warn("dropping late scrape result", "url", target)
		return ErrAuditAbandoned
	}

	if scrapeErr != nil {
		transportErr := &TransportError{URL: target, Err: scrapeErr}
		s.clearLocked()
		s.state = models.StateFailed
		s.errMsg = transportErr.Message()
		s.recomputeLocked()
		s.logger.Error("audit failed", "url", target, "error", scrapeErr)
		return transportErr
	}

	s.raw = data.Clone()
	s.categories = analyzer.Analyze(s.raw, checklist.Fresh(s.template))
	s.topKeywords = analyzer.Keywords(s.raw, s.keywordCount)
	s.auditedAt = s.now().UTC()
	s.state = models.StateAnalyzed
	s.recomputeLocked()

	s.logger.Info("audit completed",
		"url", target,
		"global_score", s.globalScore,
		"quick_wins", len(s.quickWins),
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// UpdateItemStatus overrides the analyzer verdict for one item.
func (s *Session) UpdateItemStatus(categoryID, itemID string, status models.ItemStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.itemLocked(categoryID, itemID)
	if err != nil {
		return err
	}
	item.Status = status
	s.recomputeLocked()
	s.logger.Debug("item status overridden", "category", categoryID, "item", itemID, "status", status)
	return nil
}

// UpdateItemNote sets the reviewer note of one item. Scores are unaffected.
func (s *Session) UpdateItemNote(categoryID, itemID, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.itemLocked(categoryID, itemID)
	if err != nil {
		return err
	}
	item.Note = note
	s.recomputeLocked()
	return nil
}

// Reset returns the session to the empty state from any state. An in-flight
// RunAudit will return ErrAuditAbandoned and leave the session untouched.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.resetLocked()
}

// Save persists a snapshot of the analyzed session and returns its id.
// The in-memory session is never modified.
func (s *Session) Save(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.state != models.StateAnalyzed {
		s.mu.Unlock()
		return "", ErrNotAnalyzed
	}
	snap := models.AuditSnapshot{CreatedAt: s.now().UTC(), Session: s.viewLocked()}
	s.mu.Unlock()

	if s.store == nil {
		return "", &PersistenceError{Err: ErrNoStore}
	}
	id, err := s.store.SaveAuditSnapshot(ctx, snap)
	if err != nil {
		s.logger.Error("snapshot save failed", "url", snap.Session.URL, "error", err)
		return "", &PersistenceError{Err: err}
	}
	s.logger.Info("snapshot saved", "url", snap.Session.URL, "snapshot_id", id)
	return id, nil
}

// View returns a deep copy of the session state.
func (s *Session) View() models.AuditSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// State returns the current lifecycle state.
func (s *Session) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) viewLocked() models.AuditSession {
	return models.AuditSession{
		URL:             s.url,
		State:           s.state,
		Categories:      checklist.Clone(s.categories),
		GlobalScore:     s.globalScore,
		QuickWins:       append([]models.QuickWin{}, s.quickWins...),
		Recommendations: cloneRecommendations(s.recommendations),
		TopKeywords:     append([]string(nil), s.topKeywords...),
		RawScrapedData:  s.raw.Clone(),
		Error:           s.errMsg,
		AuditedAt:       s.auditedAt,
	}
}

func (s *Session) itemLocked(categoryID, itemID string) (*models.ChecklistItem, error) {
	if s.state != models.StateAnalyzed {
		return nil, ErrNotAnalyzed
	}
	for ci := range s.categories {
		if s.categories[ci].ID != categoryID {
			continue
		}
		if item := s.categories[ci].Item(itemID); item != nil {
			return item, nil
		}
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownItem, categoryID, itemID)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
}

// clearLocked drops all audit data but keeps url and state.
func (s *Session) clearLocked() {
	s.categories = checklist.Fresh(s.template)
	s.raw = nil
	s.topKeywords = nil
	s.errMsg = ""
	s.auditedAt = time.Time{}
}

func (s *Session) resetLocked() {
	s.clearLocked()
	s.url = ""
	s.state = models.StateEmpty
	s.recomputeLocked()
}

func (s *Session) recomputeLocked() {
	s.categories = scoring.Recalculate(s.categories)
	s.globalScore = scoring.GlobalScore(s.categories)
	s.quickWins = insights.QuickWins(s.categories)
	s.recommendations = insights.Recommendations(s.categories, s.bands)
}

func cloneRecommendations(recs []models.Recommendation) []models.Recommendation {
	out := make([]models.Recommendation, len(recs))
	for i, r := range recs {
		out[i] = r
		out[i].Items = append([]string(nil), r.Items...)
	}
	return out
}

// validateURL accepts absolute http(s) URLs with a host.
func validateURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	u, err := url.Parse(trimmed)
	if err != nil || trimmed == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q must be an absolute http(s) URL", ErrInvalidURL, rawURL)
	}
	return u.String(), nil
}
