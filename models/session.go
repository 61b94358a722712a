package models

import "time"

// SessionState is the lifecycle state of an audit session.
type SessionState string

const (
	StateEmpty    SessionState = "empty"
	StateLoading  SessionState = "loading"
	StateAnalyzed SessionState = "analyzed"
	StateFailed   SessionState = "failed"
)

// QuickWin is an unresolved item ranked for prioritized action.
type QuickWin struct {
	CategoryID     string     `json:"category_id" yaml:"category_id"`
	CategoryName   string     `json:"category_name" yaml:"category_name"`
	ItemID         string     `json:"item_id" yaml:"item_id"`
	Label          string     `json:"label" yaml:"label"`
	Recommendation string     `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
	Status         ItemStatus `json:"status" yaml:"status"`
	Impact         int        `json:"impact" yaml:"impact"`
	Effort         Effort     `json:"effort" yaml:"effort"`
}

// Recommendation is a remediation suggestion for one category.
type Recommendation struct {
	CategoryID  string   `json:"category_id" yaml:"category_id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Score       float64  `json:"score" yaml:"score"`
	Items       []string `json:"items" yaml:"items"` // unresolved item ids, in checklist order
}

// AuditSession is a read-only view of an audit session.
type AuditSession struct {
	URL             string           `json:"url" yaml:"url"`
	State           SessionState     `json:"state" yaml:"state"`
	Categories      []AuditCategory  `json:"categories" yaml:"categories"`
	GlobalScore     int              `json:"global_score" yaml:"global_score"`
	QuickWins       []QuickWin       `json:"quick_wins" yaml:"quick_wins"`
	Recommendations []Recommendation `json:"recommendations" yaml:"recommendations"`
	TopKeywords     []string         `json:"top_keywords,omitempty" yaml:"top_keywords,omitempty"` // "word:count"
	RawScrapedData  *ScrapedData     `json:"raw_scraped_data,omitempty" yaml:"raw_scraped_data,omitempty"`
	Error           string           `json:"error,omitempty" yaml:"error,omitempty"`
	AuditedAt       time.Time        `json:"audited_at,omitempty" yaml:"audited_at,omitempty"`
}

// AuditSnapshot is an immutable, persisted point-in-time copy of a session.
type AuditSnapshot struct {
	ID        string       `json:"id" yaml:"id"`
	CreatedAt time.Time    `json:"created_at" yaml:"created_at"`
	Session   AuditSession `json:"session" yaml:"session"`
}

// BatchSummary is the per-page outcome of a batch run.
type BatchSummary struct {
	URL          string `json:"url" yaml:"url"`
	Success      bool   `json:"success" yaml:"success"`
	OverallScore int    `json:"overall_score" yaml:"overall_score"`
	Error        string `json:"error,omitempty" yaml:"error,omitempty"`
	SnapshotID   string `json:"snapshot_id,omitempty" yaml:"snapshot_id,omitempty"`
}
