// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"github.com/betrocker/perfecttrade/internal/models"
)

// DataStore defines the interface for journal persistence.
type DataStore interface {
	// Trades
	SaveTrade(ctx context.Context, trade *models.Trade) error
	GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error)
	GetTradeByID(ctx context.Context, id string) (*models.Trade, error)
	UpdateTrade(ctx context.Context, id string, patch models.TradePatch) error
	CloseTrade(ctx context.Context, id string, outcome models.TradeOutcome, closedAt time.Time) error
	DeleteTrade(ctx context.Context, id string) error

	// Custom checklist items
	AddCustomItem(ctx context.Context, item *models.CustomChecklistItem) error
	GetCustomItems(ctx context.Context, userID string) ([]models.CustomChecklistItem, error)
	DeleteCustomItem(ctx context.Context, id, userID string) error

	// User settings
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	SaveSettings(ctx context.Context, settings *models.UserSettings) error

	// Lifecycle
	Close() error
}

// TradeFilter represents filters for querying trades.
type TradeFilter struct {
	UserID    string
	Status    models.TradeStatus
	Pair      string
	Direction models.TradeDirection
	StartDate time.Time
	EndDate   time.Time
	Ascending bool
	Limit     int
}

// DateRange represents a date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// MonthRange returns the inclusive range covering the month containing t.
func MonthRange(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return DateRange{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// DayRange returns the range covering the calendar day containing t.
func DayRange(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return DateRange{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
}
