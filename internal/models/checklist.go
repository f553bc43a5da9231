package models

import "time"

// Timeframe identifies a checklist bucket by chart time horizon.
type Timeframe string

const (
	TimeframeWeekly Timeframe = "weekly"
	TimeframeDaily  Timeframe = "daily"
	TimeframeFourH  Timeframe = "4h"
	TimeframeIntra  Timeframe = "2h1h30m"
	TimeframeEntry  Timeframe = "entry"
	TimeframeCustom Timeframe = "custom"
)

// ChecklistItem is a single weighted criterion in a timeframe bucket.
// Definitions are immutable; checked state is tracked separately as a set
// of item IDs. Description is optional and only shown in confirmation
// prompts.
type ChecklistItem struct {
	ID          string
	Label       string
	Description string
	Weight      float64 // percentage points, > 0
}

// CustomChecklistItem is a user-defined checklist item persisted per user.
type CustomChecklistItem struct {
	ID        string
	UserID    string
	Label     string
	Weight    float64
	CreatedAt time.Time
}

// Item converts a persisted custom item into the common checklist shape.
func (c CustomChecklistItem) Item() ChecklistItem {
	return ChecklistItem{ID: c.ID, Label: c.Label, Weight: c.Weight}
}

// ConfluenceItem is one checked criterion recorded in a trade snapshot.
// Only checked items are retained; the snapshot cannot reconstruct items
// that existed but were left unchecked.
type ConfluenceItem struct {
	Timeframe string  `json:"timeframe"`
	Label     string  `json:"label"`
	Weight    float64 `json:"weight"`
	Checked   bool    `json:"checked"`
}

// ConfluenceSnapshot records which items were checked at the moment a trade
// was saved. Invariant: Score == sum of Items[].Weight. Score has no upper
// bound; exceeding 100 is a valid, meaningful state.
type ConfluenceSnapshot struct {
	Score     float64          `json:"score"`
	Timestamp string           `json:"timestamp"` // ISO-8601
	Items     []ConfluenceItem `json:"items"`
}

// ItemWeightSum returns the summed weight of the recorded items.
func (s ConfluenceSnapshot) ItemWeightSum() float64 {
	var sum float64
	for _, it := range s.Items {
		sum += it.Weight
	}
	return sum
}
