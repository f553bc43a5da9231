// Package checklist provides the weighted confluence checklist and its
// scoring functions.
package checklist

import (
	"time"

	"github.com/betrocker/perfecttrade/internal/models"
)

// CheckedSet is the set of checked item IDs.
type CheckedSet map[string]bool

// NewCheckedSet builds a set from item IDs.
func NewCheckedSet(ids ...string) CheckedSet {
	s := make(CheckedSet, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// TimeframeScore sums the weight of every item in the bucket whose ID is in
// the checked set. Empty buckets or empty sets score 0.
func TimeframeScore(items []models.ChecklistItem, checked CheckedSet) float64 {
	var sum float64
	for _, it := range items {
		if checked[it.ID] {
			sum += it.Weight
		}
	}
	return sum
}

// OverallScore sums TimeframeScore across every bucket, including the
// user's custom bucket. The result is unbounded above: weights across all
// active timeframes can sum past 100, and a score beyond 100 is a
// deliberate signal of an exceptionally strong setup. Never clamp it.
func OverallScore(buckets []Bucket, checked CheckedSet) float64 {
	var sum float64
	for _, b := range buckets {
		sum += TimeframeScore(b.Items, checked)
	}
	return sum
}

// Category is a banded label for a confluence score.
type Category struct {
	Label string
	Color string
}

// Color tokens used by the category bands.
const (
	ColorRed    = "#EF4444"
	ColorAmber  = "#F59E0B"
	ColorYellow = "#FCD34D"
	ColorGreen  = "#10B981"
	ColorTeal   = "#00F5D4"
)

// Categorize maps a score to its setup category. Bounds are inclusive on
// the upper end; an off-by-one here silently reclassifies trades, so the
// table must not be rearranged.
func Categorize(score float64) Category {
	switch {
	case score <= 30:
		return Category{Label: "Weak Setup", Color: ColorRed}
	case score <= 55:
		return Category{Label: "Below Standard", Color: ColorAmber}
	case score <= 65:
		return Category{Label: "Moderate", Color: ColorAmber}
	case score <= 75:
		return Category{Label: "Acceptable", Color: ColorYellow}
	case score <= 85:
		return Category{Label: "Good", Color: ColorGreen}
	case score <= 95:
		return Category{Label: "Strong", Color: ColorGreen}
	case score <= 115:
		return Category{Label: "Very Strong", Color: ColorTeal}
	case score <= 135:
		return Category{Label: "Outstanding", Color: ColorTeal}
	case score <= 155:
		return Category{Label: "Excellent", Color: ColorTeal}
	default:
		return Category{Label: "Perfect Trade", Color: ColorTeal}
	}
}

// Snapshot builds the confluence record persisted with a trade: checked
// items only, in bucket order, stamped with the given time. The snapshot
// score always equals the sum of the recorded item weights.
func Snapshot(buckets []Bucket, checked CheckedSet, now time.Time) models.ConfluenceSnapshot {
	var items []models.ConfluenceItem
	for _, b := range buckets {
		for _, it := range b.Items {
			if checked[it.ID] {
				items = append(items, models.ConfluenceItem{
					Timeframe: b.Label,
					Label:     it.Label,
					Weight:    it.Weight,
					Checked:   true,
				})
			}
		}
	}
	return models.ConfluenceSnapshot{
		Score:     OverallScore(buckets, checked),
		Timestamp: now.UTC().Format(time.RFC3339),
		Items:     items,
	}
}
