// Package journal implements the trade lifecycle on top of the data store:
// planning a trade from a checklist state, closing it with an outcome, and
// deleting it. All collaborators are injected; the package holds no global
// state.
package journal

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/betrocker/perfecttrade/internal/checklist"
	"github.com/betrocker/perfecttrade/internal/errors"
	"github.com/betrocker/perfecttrade/internal/models"
	"github.com/betrocker/perfecttrade/internal/position"
	"github.com/betrocker/perfecttrade/internal/store"
)

// Service coordinates trade persistence and lifecycle rules.
type Service struct {
	store  store.DataStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates a journal service.
func NewService(dataStore store.DataStore, logger zerolog.Logger) *Service {
	return &Service{
		store:  dataStore,
		logger: logger,
		now:    time.Now,
	}
}

// PlanRequest carries the inputs for planning a trade.
type PlanRequest struct {
	UserID          string
	CurrencyPair    string
	Direction       models.TradeDirection
	EntryPrice      float64
	StopLossPrice   float64
	TakeProfitPrice *float64
	AccountBalance  float64
	RiskPercentage  float64
	StopLossPips    int
	Notes           string
	ChartImageURL   string
	Buckets         []checklist.Bucket
	Checked         checklist.CheckedSet
}

// PlanTrade validates the request, computes the lot size and confluence
// snapshot, and persists a new PLANNED trade.
func (s *Service) PlanTrade(ctx context.Context, req PlanRequest) (*models.Trade, error) {
	if req.UserID == "" {
		return nil, errors.NewValidationError("user_id", req.UserID, "must not be empty")
	}
	if !strings.Contains(req.CurrencyPair, "/") {
		return nil, errors.NewValidationError("currency_pair", req.CurrencyPair, "must be in XXX/YYY form")
	}
	if req.Direction != models.DirectionLong && req.Direction != models.DirectionShort {
		return nil, errors.NewValidationError("direction", req.Direction, "must be LONG or SHORT")
	}

	lotSize, err := position.Describe(req.AccountBalance, req.RiskPercentage, req.StopLossPips, req.CurrencyPair)
	if err != nil {
		return nil, err
	}

	now := s.now()
	snapshot := checklist.Snapshot(req.Buckets, req.Checked, now)

	trade := &models.Trade{
		ID:                newID(),
		UserID:            req.UserID,
		CurrencyPair:      req.CurrencyPair,
		Direction:         req.Direction,
		EntryPrice:        req.EntryPrice,
		StopLossPrice:     req.StopLossPrice,
		TakeProfitPrice:   req.TakeProfitPrice,
		AccountBalance:    req.AccountBalance,
		RiskPercentage:    req.RiskPercentage,
		StopLossPips:      req.StopLossPips,
		CalculatedLotSize: lotSize,
		ConfluenceScore:   snapshot.Score,
		ConfluenceData:    snapshot,
		Notes:             req.Notes,
		ChartImageURL:     req.ChartImageURL,
		Status:            models.StatusPlanned,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.SaveTrade(ctx, trade); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("event", "trade_planned").
		Str("trade_id", trade.ID).
		Str("pair", trade.CurrencyPair).
		Str("direction", string(trade.Direction)).
		Float64("confluence_score", trade.ConfluenceScore).
		Msg("Trade planned")

	return trade, nil
}

// CloseTrade records a trade outcome. The outcome's P&L and after-trade
// image are both mandatory; a trade closes exactly once and is immutable
// afterwards.
func (s *Service) CloseTrade(ctx context.Context, id string, outcome models.TradeOutcome) (*models.Trade, error) {
	if outcome.AfterTradeImageURL == "" {
		return nil, errors.NewValidationError("after_trade_image_url", outcome.AfterTradeImageURL, "required to close a trade")
	}

	trade, err := s.store.GetTradeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade.IsClosed() {
		return nil, errors.NewTradeStateError(id, string(trade.Status), "close", "outcome already recorded")
	}

	if err := s.store.CloseTrade(ctx, id, outcome, s.now()); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("event", "trade_closed").
		Str("trade_id", id).
		Float64("profit_loss", outcome.ProfitLoss).
		Msg("Trade closed")

	return s.store.GetTradeByID(ctx, id)
}

// UpdatePlanned edits a trade that has not yet closed. Closed trades are
// immutable: the only permitted operation is deletion.
func (s *Service) UpdatePlanned(ctx context.Context, id string, patch models.TradePatch) (*models.Trade, error) {
	trade, err := s.store.GetTradeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trade.IsClosed() {
		return nil, errors.ErrTradeClosed
	}

	if err := s.store.UpdateTrade(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.store.GetTradeByID(ctx, id)
}

// DeleteTrade removes a trade permanently, regardless of status.
func (s *Service) DeleteTrade(ctx context.Context, id string) error {
	if err := s.store.DeleteTrade(ctx, id); err != nil {
		return err
	}
	s.logger.Info().
		Str("event", "trade_deleted").
		Str("trade_id", id).
		Msg("Trade deleted")
	return nil
}

// AddCustomItem validates and persists a user-defined checklist item.
func (s *Service) AddCustomItem(ctx context.Context, userID, label string, weight float64) (*models.CustomChecklistItem, error) {
	if err := checklist.ValidateCustomItem(label, weight); err != nil {
		return nil, err
	}
	item := &models.CustomChecklistItem{
		ID:        newID(),
		UserID:    userID,
		Label:     strings.TrimSpace(label),
		Weight:    weight,
		CreatedAt: s.now(),
	}
	if err := s.store.AddCustomItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Settings returns the user's settings, falling back to defaults when no
// row exists yet.
func (s *Service) Settings(ctx context.Context, userID string) (models.UserSettings, error) {
	settings, err := s.store.GetSettings(ctx, userID)
	if errors.Is(err, errors.ErrSettingsNotFound) {
		return models.DefaultSettings(userID), nil
	}
	if err != nil {
		return models.UserSettings{}, err
	}
	return *settings, nil
}

// newID returns a random 16-hex-char identifier.
func newID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return hex.EncodeToString([]byte(time.Now().Format("20060102150405.000")))[:16]
	}
	return hex.EncodeToString(buf)
}
