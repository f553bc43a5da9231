package checklist

import (
	"strings"

	"github.com/betrocker/perfecttrade/internal/errors"
	"github.com/betrocker/perfecttrade/internal/models"
)

// ConfirmFunc is asked before an item flips from unchecked to checked.
// Returning false leaves the item unchecked. Unchecking never asks.
type ConfirmFunc func(item models.ChecklistItem) bool

// Checklist tracks checked state across a set of buckets. It is UI session
// state; nothing here is persisted until a trade snapshot is taken.
type Checklist struct {
	buckets []Bucket
	checked CheckedSet
	confirm ConfirmFunc
}

// New creates a checklist over the given buckets with nothing checked.
func New(buckets []Bucket, confirm ConfirmFunc) *Checklist {
	return &Checklist{
		buckets: buckets,
		checked: make(CheckedSet),
		confirm: confirm,
	}
}

// Buckets returns the bucket definitions in display order.
func (c *Checklist) Buckets() []Bucket {
	return c.buckets
}

// Checked returns a copy of the checked set.
func (c *Checklist) Checked() CheckedSet {
	out := make(CheckedSet, len(c.checked))
	for id := range c.checked {
		out[id] = true
	}
	return out
}

// Toggle flips an item's checked state. Checking runs the confirmation hook
// when one is set; unchecking is immediate. Returns the new checked state.
func (c *Checklist) Toggle(id string) (bool, error) {
	item, ok := c.find(id)
	if !ok {
		return false, errors.ErrItemNotFound
	}
	if c.checked[id] {
		delete(c.checked, id)
		return false, nil
	}
	if c.confirm != nil && !c.confirm(item) {
		return false, nil
	}
	c.checked[id] = true
	return true, nil
}

// Reset clears all checked state, as happens after a trade is saved.
func (c *Checklist) Reset() {
	c.checked = make(CheckedSet)
}

// Score returns the current overall score.
func (c *Checklist) Score() float64 {
	return OverallScore(c.buckets, c.checked)
}

func (c *Checklist) find(id string) (models.ChecklistItem, bool) {
	for _, b := range c.buckets {
		for _, it := range b.Items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return models.ChecklistItem{}, false
}

// ValidateCustomItem checks a user-defined item before it is persisted.
// Items with empty labels or non-positive weights are data-entry errors.
func ValidateCustomItem(label string, weight float64) error {
	if strings.TrimSpace(label) == "" {
		return errors.NewValidationError("label", label, "must not be empty")
	}
	if weight <= 0 {
		return errors.NewValidationError("weight", weight, "must be greater than zero")
	}
	return nil
}
