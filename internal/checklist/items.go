package checklist

import "github.com/betrocker/perfecttrade/internal/models"

// Bucket is a named group of checklist items for one chart time horizon.
type Bucket struct {
	Timeframe models.Timeframe
	Label     string // display label recorded into snapshots
	Items     []models.ChecklistItem
}

// Default bucket item definitions. Weights are percentage points; summing
// every item across all buckets exceeds 100 on purpose, which is why the
// overall score is unbounded above.
var (
	weeklyItems = []models.ChecklistItem{
		{ID: "w1", Label: "Trend", Description: "Is the weekly trend clearly identified (uptrend/downtrend)?", Weight: 10},
		{ID: "w2", Label: "At AOI / Rejected", Description: "Is price at Area of Interest or rejected from it?", Weight: 10},
		{ID: "w3", Label: "Touching EMA", Description: "Is price touching or near key EMA (50/200)?", Weight: 5},
		{ID: "w4", Label: "Round Psychological Level", Description: "Is price near a round psychological level (e.g., 1.0000, 1.1000)?", Weight: 5},
		{ID: "w5", Label: "Rejection from Previous Structure", Description: "Has price rejected from previous weekly structure (S/R)?", Weight: 10},
		{ID: "w6", Label: "Candlestick Rejection from AOI", Description: "Is there a strong candlestick rejection pattern from AOI?", Weight: 10},
		{ID: "w7", Label: "Break & Retest / Head & Shoulders Pattern", Description: "Is there a break & retest or H&S pattern confirmation?", Weight: 10},
	}

	dailyItems = []models.ChecklistItem{
		{ID: "d1", Label: "Trend", Description: "Is the daily trend clearly identified and aligned with weekly?", Weight: 10},
		{ID: "d2", Label: "At AOI / Rejected", Description: "Is price at Area of Interest or rejected from it?", Weight: 10},
		{ID: "d3", Label: "Touching EMA", Description: "Is price touching or near key EMA (50/200)?", Weight: 5},
		{ID: "d4", Label: "Round Psychological Level", Description: "Is price near a round psychological level?", Weight: 5},
		{ID: "d5", Label: "Rejection from Previous Structure", Description: "Has price rejected from previous daily structure (S/R)?", Weight: 10},
		{ID: "d6", Label: "Candlestick Rejection from AOI", Description: "Is there a strong candlestick rejection pattern from AOI?", Weight: 10},
		{ID: "d7", Label: "Break & Retest / Head & Shoulders Pattern", Description: "Is there a break & retest or H&S pattern confirmation?", Weight: 10},
	}

	fourHourItems = []models.ChecklistItem{
		{ID: "4h1", Label: "Trend", Description: "Is the 4H trend clearly identified and aligned with daily?", Weight: 5},
		{ID: "4h2", Label: "At AOI / Rejected", Description: "Is price at Area of Interest or rejected from it?", Weight: 5},
		{ID: "4h3", Label: "Touching EMA", Description: "Is price touching or near key EMA (50/200)?", Weight: 5},
		{ID: "4h4", Label: "Round Psychological Level", Description: "Is price near a round psychological level?", Weight: 5},
		{ID: "4h5", Label: "Rejection from Previous Structure", Description: "Has price rejected from previous 4H structure (S/R)?", Weight: 10},
		{ID: "4h6", Label: "Candlestick Rejection from AOI", Description: "Is there a strong candlestick rejection pattern from AOI?", Weight: 5},
		{ID: "4h7", Label: "Break & Retest / Head & Shoulders Pattern", Description: "Is there a break & retest or H&S pattern confirmation?", Weight: 10},
	}

	intraItems = []models.ChecklistItem{
		{ID: "2h1", Label: "Trend", Description: "Is the 2H/1H/30m trend aligned with higher timeframes?", Weight: 5},
		{ID: "2h2", Label: "Touching EMA", Description: "Is price touching or near key EMA on these timeframes?", Weight: 5},
		{ID: "2h3", Label: "Break & Retest / Head & Shoulders Pattern", Description: "Is there a break & retest or H&S pattern confirmation?", Weight: 5},
	}

	entryItems = []models.ChecklistItem{
		{ID: "e1", Label: "SOS", Description: "Is there a clear Sign of Strength (bullish) or Sign of Weakness (bearish)?", Weight: 10},
		{ID: "e2", Label: "Engulfing Candlestick (30m, 1H, 2H, 4H)", Description: "Is there a strong engulfing candlestick pattern on relevant timeframes?", Weight: 10},
	}
)

// DefaultBuckets returns the five fixed timeframe buckets in display order.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{Timeframe: models.TimeframeWeekly, Label: "Weekly", Items: weeklyItems},
		{Timeframe: models.TimeframeDaily, Label: "Daily", Items: dailyItems},
		{Timeframe: models.TimeframeFourH, Label: "4H", Items: fourHourItems},
		{Timeframe: models.TimeframeIntra, Label: "2H/1H/30m", Items: intraItems},
		{Timeframe: models.TimeframeEntry, Label: "Entry", Items: entryItems},
	}
}

// WithCustom appends the user's custom bucket to the default buckets. An
// empty custom list yields the defaults unchanged.
func WithCustom(custom []models.CustomChecklistItem) []Bucket {
	buckets := DefaultBuckets()
	if len(custom) == 0 {
		return buckets
	}
	items := make([]models.ChecklistItem, 0, len(custom))
	for _, c := range custom {
		items = append(items, c.Item())
	}
	return append(buckets, Bucket{
		Timeframe: models.TimeframeCustom,
		Label:     "Custom",
		Items:     items,
	})
}
