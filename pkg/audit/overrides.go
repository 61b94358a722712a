package audit

import "github.com/GlobalTax/nrro-es-starter-sub005/models"

// Override is a manual change to one checklist item. An empty Status leaves
// the status alone; a nil Note leaves the note alone.
type Override struct {
	CategoryID string            `json:"category_id" yaml:"category_id"`
	ItemID     string            `json:"item_id" yaml:"item_id"`
	Status     models.ItemStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Note       *string           `json:"note,omitempty" yaml:"note,omitempty"`
}

// Apply applies overrides in order and stops at the first error. Overrides
// applied before the failing one are kept.
func (s *Session) Apply(overrides []Override) error {
	for _, o := range overrides {
		if o.Status != "" {
			if err := s.UpdateItemStatus(o.CategoryID, o.ItemID, o.Status); err != nil {
				return err
			}
		}
		if o.Note != nil {
			if err := s.UpdateItemNote(o.CategoryID, o.ItemID, *o.Note); err != nil {
				return err
			}
		}
	}
	return nil
}
