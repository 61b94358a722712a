package models

// ItemStatus is the verdict for a single checklist item.
type ItemStatus string

const (
	StatusPending    ItemStatus = "pending"
	StatusCorrect    ItemStatus = "correct"
	StatusImprovable ItemStatus = "improvable"
	StatusMissing    ItemStatus = "missing"
)

// Valid reports whether s is one of the four known statuses.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCorrect, StatusImprovable, StatusMissing:
		return true
	}
	return false
}

// Unresolved reports whether the item was evaluated and found lacking.
// Pending items carry no opinion and are never unresolved.
func (s ItemStatus) Unresolved() bool {
	return s == StatusMissing || s == StatusImprovable
}

// Effort is the estimated remediation cost of an item.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Rank orders efforts from cheapest to most expensive. Unknown values sort last.
func (e Effort) Rank() int {
	switch e {
	case EffortLow:
		return 0
	case EffortMedium:
		return 1
	case EffortHigh:
		return 2
	}
	return 3
}

// Valid reports whether e is a known effort level.
func (e Effort) Valid() bool {
	return e.Rank() < 3
}

// Priority of a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities from most to least urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// ChecklistItem is one evaluable SEO/marketing signal.
type ChecklistItem struct {
	ID             string     `json:"id" yaml:"id"`
	Label          string     `json:"label" yaml:"label"`
	Description    string     `json:"description" yaml:"description"`
	Recommendation string     `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
	Status         ItemStatus `json:"status" yaml:"status"`
	Note           string     `json:"note,omitempty" yaml:"note,omitempty"` // only written by manual override
	Weight         float64    `json:"weight" yaml:"weight"`
	Impact         int        `json:"impact" yaml:"impact"` // 1-10
	Effort         Effort     `json:"effort" yaml:"effort"`
}

// AuditCategory groups weighted items. Score is a cache recomputed from Items.
type AuditCategory struct {
	ID     string          `json:"id" yaml:"id"`
	Name   string          `json:"name" yaml:"name"`
	Weight float64         `json:"weight" yaml:"weight"`
	Items  []ChecklistItem `json:"items" yaml:"items"`
	Score  float64         `json:"score" yaml:"score"`
}

// Item returns a pointer to the item with the given id, or nil.
func (c *AuditCategory) Item(id string) *ChecklistItem {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}
