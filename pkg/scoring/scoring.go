// Package scoring turns item statuses into category and global scores.
// All functions are pure and are re-run in full after every mutation.
package scoring

import (
	"fmt"
	"math"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
)

// StatusValue maps a status to its contribution. An unknown status is a
// programming defect and panics.
func StatusValue(status models.ItemStatus) float64 {
	switch status {
	case models.StatusCorrect:
		return 1.0
	case models.StatusImprovable:
		return 0.5
	case models.StatusMissing, models.StatusPending:
		return 0
	}
	panic(fmt.Sprintf("scoring: unknown item status %q", status))
}

// CategoryScore returns 100 * sum(weight*value) / sum(weight), or 0 when
// there are no items or the total weight is zero.
func CategoryScore(items []models.ChecklistItem) float64 {
	var total, earned float64
	for _, it := range items {
		total += it.Weight
		earned += it.Weight * StatusValue(it.Status)
	}
	if total <= 0 {
		return 0
	}
	return 100 * earned / total
}

// GlobalScoreExact is the category-weighted average of category scores,
// normalized by the total category weight.
func GlobalScoreExact(categories []models.AuditCategory) float64 {
	var total, weighted float64
	for _, c := range categories {
		total += c.Weight
		weighted += c.Weight * c.Score
	}
	if total <= 0 {
		return 0
	}
	return weighted / total
}

// GlobalScore rounds GlobalScoreExact to the nearest integer.
func GlobalScore(categories []models.AuditCategory) int {
	return int(math.Round(GlobalScoreExact(categories)))
}

// Recalculate returns a copy of categories with every Score recomputed.
// Item slices are shared with the input.
func Recalculate(categories []models.AuditCategory) []models.AuditCategory {
	out := make([]models.AuditCategory, len(categories))
	for i, c := range categories {
		out[i] = c
		out[i].Score = CategoryScore(c.Items)
	}
	return out
}
