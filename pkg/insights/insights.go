// Package insights derives quick wins and prioritized recommendations from
// scored categories.
package insights

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
)

// MaxQuickWins caps the quick-win list.
const MaxQuickWins = 10

// Bands maps a category score to a recommendation priority.
// score < HighBelow is high, HighBelow <= score <= MediumUpTo is medium,
// anything above is low.
type Bands struct {
	HighBelow  float64
	MediumUpTo float64
}

// DefaultBands are the 50/75 thresholds.
var DefaultBands = Bands{HighBelow: 50, MediumUpTo: 75}

// BandsFromConfig converts the configuration section into Bands.
func BandsFromConfig(cfg models.InsightsConfig) Bands {
	return Bands{HighBelow: cfg.HighBelow, MediumUpTo: cfg.MediumUpTo}
}

// Validate checks 0 <= HighBelow <= MediumUpTo <= 100.
func (b Bands) Validate() error {
	if b.HighBelow < 0 || b.MediumUpTo > 100 || b.HighBelow > b.MediumUpTo {
		return fmt.Errorf("invalid priority bands: high below %v, medium up to %v", b.HighBelow, b.MediumUpTo)
	}
	return nil
}

// PriorityFor returns the priority band for a category score.
func (b Bands) PriorityFor(score float64) models.Priority {
	switch {
	case score < b.HighBelow:
		return models.PriorityHigh
	case score <= b.MediumUpTo:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// QuickWins ranks unresolved items by impact (desc), then effort (asc),
// then checklist order, and keeps the top MaxQuickWins.
func QuickWins(categories []models.AuditCategory) []models.QuickWin {
	pool := make([]models.QuickWin, 0)
	for _, c := range categories {
		for _, it := range c.Items {
			if !it.Status.Unresolved() {
				continue
			}
			pool = append(pool, models.QuickWin{
				CategoryID:     c.ID,
				CategoryName:   c.Name,
				ItemID:         it.ID,
				Label:          it.Label,
				Recommendation: it.Recommendation,
				Status:         it.Status,
				Impact:         it.Impact,
				Effort:         it.Effort,
			})
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Impact != pool[j].Impact {
			return pool[i].Impact > pool[j].Impact
		}
		return pool[i].Effort.Rank() < pool[j].Effort.Rank()
	})

	if len(pool) > MaxQuickWins {
		pool = pool[:MaxQuickWins]
	}
	return pool
}

// Recommendations produces one record per category that has at least one
// unresolved item, ordered by priority and then checklist order. The list
// is not capped.
func Recommendations(categories []models.AuditCategory, bands Bands) []models.Recommendation {
	recs := make([]models.Recommendation, 0)
	for _, c := range categories {
		var ids, labels []string
		for _, it := range c.Items {
			if it.Status.Unresolved() {
				ids = append(ids, it.ID)
				labels = append(labels, it.Label)
			}
		}
		if len(ids) == 0 {
			continue
		}
		priority := bands.PriorityFor(c.Score)
		recs = append(recs, models.Recommendation{
			CategoryID:  c.ID,
			Title:       title(c.Name, priority),
			Description: fmt.Sprintf("%s scores %.0f/100. %d item(s) need work: %s.", c.Name, c.Score, len(ids), strings.Join(labels, ", ")),
			Priority:    priority,
			Score:       c.Score,
			Items:       ids,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority.Rank() < recs[j].Priority.Rank()
	})
	return recs
}

func title(name string, p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return "Fix " + name + " first"
	case models.PriorityMedium:
		return "Improve " + name
	default:
		return "Polish " + name
	}
}
