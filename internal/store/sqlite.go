// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/betrocker/perfecttrade/internal/errors"
	"github.com/betrocker/perfecttrade/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Trades table: one row per planned or closed trade
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		currency_pair TEXT NOT NULL,
		direction TEXT NOT NULL,
		entry_price REAL NOT NULL,
		stop_loss_price REAL NOT NULL,
		take_profit_price REAL,
		account_balance REAL NOT NULL,
		risk_percentage REAL NOT NULL,
		stop_loss_pips INTEGER NOT NULL,
		calculated_lot_size TEXT,
		confluence_score REAL NOT NULL,
		confluence_data TEXT NOT NULL,
		notes TEXT,
		chart_image_url TEXT,
		after_trade_image_url TEXT,
		status TEXT NOT NULL DEFAULT 'PLANNED',
		profit_loss REAL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	-- Custom checklist items, persisted per user
	CREATE TABLE IF NOT EXISTS custom_checklist_items (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		label TEXT NOT NULL,
		weight REAL NOT NULL,
		created_at DATETIME NOT NULL
	);

	-- User settings: goal configuration, one row per user
	CREATE TABLE IF NOT EXISTS user_settings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		monthly_target REAL NOT NULL,
		max_daily_loss REAL NOT NULL,
		win_rate_goal REAL NOT NULL,
		max_trades_per_day INTEGER NOT NULL,
		daily_reminder_enabled INTEGER DEFAULT 0,
		daily_reminder_time TEXT,
		inactivity_reminder_enabled INTEGER DEFAULT 0,
		inactivity_days INTEGER DEFAULT 3,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_trades_user ON trades(user_id);
	CREATE INDEX IF NOT EXISTS idx_trades_status ON trades(user_id, status);
	CREATE INDEX IF NOT EXISTS idx_trades_created ON trades(created_at);
	CREATE INDEX IF NOT EXISTS idx_custom_items_user ON custom_checklist_items(user_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Trades Methods
// ============================================================================

const tradeColumns = `id, user_id, currency_pair, direction, entry_price, stop_loss_price, take_profit_price, account_balance, risk_percentage, stop_loss_pips, calculated_lot_size, confluence_score, confluence_data, notes, chart_image_url, after_trade_image_url, status, profit_loss, created_at, updated_at`

// SaveTrade inserts a new trade.
func (s *SQLiteStore) SaveTrade(ctx context.Context, trade *models.Trade) error {
	confluenceData, err := json.Marshal(trade.ConfluenceData)
	if err != nil {
		return fmt.Errorf("failed to encode confluence data: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, trade.ID, trade.UserID, trade.CurrencyPair, trade.Direction, trade.EntryPrice,
		trade.StopLossPrice, trade.TakeProfitPrice, trade.AccountBalance, trade.RiskPercentage,
		trade.StopLossPips, trade.CalculatedLotSize, trade.ConfluenceScore, string(confluenceData),
		trade.Notes, trade.ChartImageURL, trade.AfterTradeImageURL, trade.Status,
		trade.ProfitLoss, trade.CreatedAt, trade.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save trade: %w", err)
	}
	return nil
}

// GetTrades retrieves trades matching the filter.
func (s *SQLiteStore) GetTrades(ctx context.Context, filter TradeFilter) ([]models.Trade, error) {
	query := "SELECT " + tradeColumns + " FROM trades WHERE 1=1"
	args := []interface{}{}

	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Pair != "" {
		query += " AND currency_pair = ?"
		args = append(args, filter.Pair)
	}
	if filter.Direction != "" {
		query += " AND direction = ?"
		args = append(args, filter.Direction)
	}
	if !filter.StartDate.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND created_at <= ?"
		args = append(args, filter.EndDate)
	}

	if filter.Ascending {
		query += " ORDER BY created_at ASC"
	} else {
		query += " ORDER BY created_at DESC"
	}
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, *trade)
	}

	return trades, rows.Err()
}

// GetTradeByID retrieves a single trade.
func (s *SQLiteStore) GetTradeByID(ctx context.Context, id string) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+tradeColumns+" FROM trades WHERE id = ?", id)
	trade, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTradeNotFound
	}
	if err != nil {
		return nil, err
	}
	return trade, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var t models.Trade
	var takeProfit, profitLoss sql.NullFloat64
	var lotSize, confluenceJSON, notes, chartURL, afterURL sql.NullString

	err := row.Scan(&t.ID, &t.UserID, &t.CurrencyPair, &t.Direction, &t.EntryPrice,
		&t.StopLossPrice, &takeProfit, &t.AccountBalance, &t.RiskPercentage,
		&t.StopLossPips, &lotSize, &t.ConfluenceScore, &confluenceJSON,
		&notes, &chartURL, &afterURL, &t.Status, &profitLoss, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan trade: %w", err)
	}

	if takeProfit.Valid {
		v := takeProfit.Float64
		t.TakeProfitPrice = &v
	}
	if profitLoss.Valid {
		v := profitLoss.Float64
		t.ProfitLoss = &v
	}
	t.CalculatedLotSize = lotSize.String
	t.Notes = notes.String
	t.ChartImageURL = chartURL.String
	t.AfterTradeImageURL = afterURL.String
	if confluenceJSON.Valid && confluenceJSON.String != "" {
		if err := json.Unmarshal([]byte(confluenceJSON.String), &t.ConfluenceData); err != nil {
			return nil, fmt.Errorf("failed to decode confluence data: %w", err)
		}
	}

	return &t, nil
}

// UpdateTrade applies a patch to a trade row. Lifecycle rules (only planned
// trades may be edited) are enforced by the journal service, not here.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, id string, patch models.TradePatch) error {
	query := "UPDATE trades SET updated_at = ?"
	args := []interface{}{time.Now()}

	if patch.CurrencyPair != nil {
		query += ", currency_pair = ?"
		args = append(args, *patch.CurrencyPair)
	}
	if patch.Direction != nil {
		query += ", direction = ?"
		args = append(args, *patch.Direction)
	}
	if patch.EntryPrice != nil {
		query += ", entry_price = ?"
		args = append(args, *patch.EntryPrice)
	}
	if patch.StopLossPrice != nil {
		query += ", stop_loss_price = ?"
		args = append(args, *patch.StopLossPrice)
	}
	if patch.TakeProfitPrice != nil {
		query += ", take_profit_price = ?"
		args = append(args, *patch.TakeProfitPrice)
	}
	if patch.Notes != nil {
		query += ", notes = ?"
		args = append(args, *patch.Notes)
	}
	if patch.ChartImageURL != nil {
		query += ", chart_image_url = ?"
		args = append(args, *patch.ChartImageURL)
	}

	query += " WHERE id = ?"
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

// CloseTrade records a trade outcome and flips the row to CLOSED. The
// status guard in the WHERE clause makes the transition one-shot even under
// concurrent callers.
func (s *SQLiteStore) CloseTrade(ctx context.Context, id string, outcome models.TradeOutcome, closedAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE trades
		SET status = ?, profit_loss = ?, after_trade_image_url = ?, updated_at = ?
		WHERE id = ? AND status != ?
	`, models.StatusClosed, outcome.ProfitLoss, outcome.AfterTradeImageURL, closedAt, id, models.StatusClosed)
	if err != nil {
		return fmt.Errorf("failed to close trade: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Either the trade does not exist or it is already closed.
		if _, err := s.GetTradeByID(ctx, id); err != nil {
			return err
		}
		return errors.ErrTradeClosed
	}
	return nil
}

// DeleteTrade removes a trade permanently. There is no soft delete.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM trades WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.ErrTradeNotFound
	}
	return nil
}

// ============================================================================
// Custom Checklist Items Methods
// ============================================================================

// AddCustomItem saves a user-defined checklist item.
func (s *SQLiteStore) AddCustomItem(ctx context.Context, item *models.CustomChecklistItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO custom_checklist_items (id, user_id, label, weight, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, item.ID, item.UserID, item.Label, item.Weight, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add custom item: %w", err)
	}
	return nil
}

// GetCustomItems retrieves a user's custom checklist items in creation order.
func (s *SQLiteStore) GetCustomItems(ctx context.Context, userID string) ([]models.CustomChecklistItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, label, weight, created_at
		FROM custom_checklist_items WHERE user_id = ? ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom items: %w", err)
	}
	defer rows.Close()

	var items []models.CustomChecklistItem
	for rows.Next() {
		var item models.CustomChecklistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Label, &item.Weight, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan custom item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// DeleteCustomItem removes a user's custom checklist item.
func (s *SQLiteStore) DeleteCustomItem(ctx context.Context, id, userID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM custom_checklist_items WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete custom item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.ErrItemNotFound
	}
	return nil
}

// ============================================================================
// User Settings Methods
// ============================================================================

// GetSettings retrieves a user's settings row.
func (s *SQLiteStore) GetSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	var st models.UserSettings
	var dailyEnabled, inactivityEnabled int
	var reminderTime sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, monthly_target, max_daily_loss, win_rate_goal, max_trades_per_day,
		       daily_reminder_enabled, daily_reminder_time, inactivity_reminder_enabled, inactivity_days,
		       created_at, updated_at
		FROM user_settings WHERE user_id = ?
	`, userID).Scan(&st.ID, &st.UserID, &st.MonthlyTarget, &st.MaxDailyLoss, &st.WinRateGoal,
		&st.MaxTradesPerDay, &dailyEnabled, &reminderTime, &inactivityEnabled, &st.InactivityDays,
		&st.CreatedAt, &st.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	st.DailyReminderEnabled = dailyEnabled == 1
	st.InactivityReminderEnabled = inactivityEnabled == 1
	st.DailyReminderTime = reminderTime.String
	return &st, nil
}

// SaveSettings upserts a user's settings row.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings *models.UserSettings) error {
	if settings.ID == "" {
		// One settings row per user, so the user ID doubles as the key.
		settings.ID = settings.UserID
	}
	now := time.Now()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	dailyEnabled := 0
	if settings.DailyReminderEnabled {
		dailyEnabled = 1
	}
	inactivityEnabled := 0
	if settings.InactivityReminderEnabled {
		inactivityEnabled = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_settings (id, user_id, monthly_target, max_daily_loss, win_rate_goal, max_trades_per_day,
			daily_reminder_enabled, daily_reminder_time, inactivity_reminder_enabled, inactivity_days, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			monthly_target = excluded.monthly_target,
			max_daily_loss = excluded.max_daily_loss,
			win_rate_goal = excluded.win_rate_goal,
			max_trades_per_day = excluded.max_trades_per_day,
			daily_reminder_enabled = excluded.daily_reminder_enabled,
			daily_reminder_time = excluded.daily_reminder_time,
			inactivity_reminder_enabled = excluded.inactivity_reminder_enabled,
			inactivity_days = excluded.inactivity_days,
			updated_at = excluded.updated_at
	`, settings.ID, settings.UserID, settings.MonthlyTarget, settings.MaxDailyLoss,
		settings.WinRateGoal, settings.MaxTradesPerDay, dailyEnabled, settings.DailyReminderTime,
		inactivityEnabled, settings.InactivityDays, settings.CreatedAt, settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
