package models

import "time"

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	StatusPlanned TradeStatus = "PLANNED"
	StatusOpen    TradeStatus = "OPEN"
	StatusClosed  TradeStatus = "CLOSED"
)

// TradeDirection represents the side of a trade.
type TradeDirection string

const (
	DirectionLong  TradeDirection = "LONG"
	DirectionShort TradeDirection = "SHORT"
)

// Trade is the persisted unit of work in the journal. A trade is created in
// PLANNED status with no outcome; it transitions exactly once to CLOSED, at
// which point ProfitLoss and AfterTradeImageURL are mandatory and the record
// becomes immutable (only deletion is permitted afterwards).
type Trade struct {
	ID                string
	UserID            string
	CurrencyPair      string // "XXX/YYY"
	Direction         TradeDirection
	EntryPrice        float64
	StopLossPrice     float64
	TakeProfitPrice   *float64
	AccountBalance    float64
	RiskPercentage    float64
	StopLossPips      int
	CalculatedLotSize string // computed at save time
	ConfluenceScore   float64
	ConfluenceData    ConfluenceSnapshot
	Notes             string
	ChartImageURL     string
	AfterTradeImageURL string
	Status            TradeStatus
	ProfitLoss        *float64 // set only when CLOSED; >0 win, <0 loss, ==0 breakeven
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsClosed reports whether the trade has a recorded outcome.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// PnL returns the recorded outcome, or 0 when no outcome is set.
func (t *Trade) PnL() float64 {
	if t.ProfitLoss == nil {
		return 0
	}
	return *t.ProfitLoss
}

// IsWin reports whether the trade closed with a strictly positive outcome.
// A breakeven trade (P&L exactly 0) is not a win.
func (t *Trade) IsWin() bool {
	return t.ProfitLoss != nil && *t.ProfitLoss > 0
}

// TradeOutcome carries the data required to close a trade.
type TradeOutcome struct {
	ProfitLoss         float64
	AfterTradeImageURL string
}

// TradePatch holds the fields of a planned trade that may still be edited.
// Nil fields are left unchanged.
type TradePatch struct {
	CurrencyPair    *string
	Direction       *TradeDirection
	EntryPrice      *float64
	StopLossPrice   *float64
	TakeProfitPrice *float64
	Notes           *string
	ChartImageURL   *string
}
