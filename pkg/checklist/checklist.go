// Package checklist owns the audit catalog: the weighted categories and
// items every session starts from.
package checklist

import (
	"errors"
	"fmt"
	"os"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTemplate is returned when a catalog fails validation.
var ErrInvalidTemplate = errors.New("invalid checklist template")

// CreateDefault returns a fresh deep copy of the built-in catalog with every
// item pending, no notes and zero scores.
func CreateDefault() []models.AuditCategory {
	return Fresh(defaultTemplate)
}

// Fresh deep-copies a template and resets all mutable state.
func Fresh(template []models.AuditCategory) []models.AuditCategory {
	out := Clone(template)
	for ci := range out {
		out[ci].Score = 0
		for ii := range out[ci].Items {
			out[ci].Items[ii].Status = models.StatusPending
			out[ci].Items[ii].Note = ""
		}
	}
	return out
}

// Clone deep-copies categories so the copy shares no slices with the input.
func Clone(categories []models.AuditCategory) []models.AuditCategory {
	if categories == nil {
		return nil
	}
	out := make([]models.AuditCategory, len(categories))
	for i, c := range categories {
		out[i] = c
		out[i].Items = append([]models.ChecklistItem(nil), c.Items...)
	}
	return out
}

// Validate checks the structural rules a catalog must satisfy: non-empty
// unique ids (items unique across the whole catalog), positive weights,
// known statuses and efforts, and impact in 1..10.
func Validate(categories []models.AuditCategory) error {
	if len(categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidTemplate)
	}
	seenCat := make(map[string]struct{}, len(categories))
	seenItem := make(map[string]string)
	for _, c := range categories {
		if c.ID == "" {
			return fmt.Errorf("%w: category with empty id", ErrInvalidTemplate)
		}
		if _, dup := seenCat[c.ID]; dup {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidTemplate, c.ID)
		}
		seenCat[c.ID] = struct{}{}
		if c.Weight <= 0 {
			return fmt.Errorf("%w: category %q weight %v must be positive", ErrInvalidTemplate, c.ID, c.Weight)
		}
		for _, it := range c.Items {
			if it.ID == "" {
				return fmt.Errorf("%w: item with empty id in %q", ErrInvalidTemplate, c.ID)
			}
			if owner, dup := seenItem[it.ID]; dup {
				return fmt.Errorf("%w: item %q in %q already defined in %q", ErrInvalidTemplate, it.ID, c.ID, owner)
			}
			seenItem[it.ID] = c.ID
			if it.Weight <= 0 {
				return fmt.Errorf("%w: item %q weight %v must be positive", ErrInvalidTemplate, it.ID, it.Weight)
			}
			if !it.Status.Valid() {
				return fmt.Errorf("%w: item %q has unknown status %q", ErrInvalidTemplate, it.ID, it.Status)
			}
			if !it.Effort.Valid() {
				return fmt.Errorf("%w: item %q has unknown effort %q", ErrInvalidTemplate, it.ID, it.Effort)
			}
			if it.Impact < 1 || it.Impact > 10 {
				return fmt.Errorf("%w: item %q impact %d outside 1..10", ErrInvalidTemplate, it.ID, it.Impact)
			}
		}
	}
	return nil
}

type catalogFile struct {
	Categories []models.AuditCategory `yaml:"categories"`
}

// Load reads a YAML catalog from path. Statuses, notes and scores in the
// file are ignored; the returned template is pending throughout.
func Load(path string) ([]models.AuditCategory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checklist %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML catalog.
func Parse(raw []byte) ([]models.AuditCategory, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse checklist: %w", err)
	}
	for ci := range file.Categories {
		for ii := range file.Categories[ci].Items {
			// Status is optional in catalog files.
			file.Categories[ci].Items[ii].Status = models.StatusPending
		}
	}
	if err := Validate(file.Categories); err != nil {
		return nil, err
	}
	return Fresh(file.Categories), nil
}

// Marshal encodes categories in the same YAML shape Parse reads.
func Marshal(categories []models.AuditCategory) ([]byte, error) {
	return yaml.Marshal(catalogFile{Categories: categories})
}
