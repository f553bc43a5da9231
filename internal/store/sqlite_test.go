package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/betrocker/perfecttrade/internal/errors"
	"github.com/betrocker/perfecttrade/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTrade(id string, createdAt time.Time) *models.Trade {
	return &models.Trade{
		ID:                id,
		UserID:            "u1",
		CurrencyPair:      "EUR/USD",
		Direction:         models.DirectionLong,
		EntryPrice:        1.0850,
		StopLossPrice:     1.0820,
		AccountBalance:    10000,
		RiskPercentage:    1,
		StopLossPips:      30,
		CalculatedLotSize: "0.333 lots",
		ConfluenceScore:   85,
		ConfluenceData: models.ConfluenceSnapshot{
			Score:     85,
			Timestamp: createdAt.UTC().Format(time.RFC3339),
			Items: []models.ConfluenceItem{
				{Timeframe: "Weekly", Label: "Trend", Weight: 10, Checked: true},
			},
		},
		Notes:     "breakout retest",
		Status:    models.StatusPlanned,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestSaveAndGetTrade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	if err := store.SaveTrade(ctx, newTrade("t1", created)); err != nil {
		t.Fatalf("SaveTrade: %v", err)
	}

	got, err := store.GetTradeByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetTradeByID: %v", err)
	}
	if got.CurrencyPair != "EUR/USD" || got.Direction != models.DirectionLong {
		t.Errorf("trade basics = %s %s", got.CurrencyPair, got.Direction)
	}
	if got.Status != models.StatusPlanned || got.ProfitLoss != nil {
		t.Errorf("fresh trade status=%s pnl=%v", got.Status, got.ProfitLoss)
	}
	if got.ConfluenceData.Score != 85 || len(got.ConfluenceData.Items) != 1 {
		t.Errorf("confluence snapshot = %+v", got.ConfluenceData)
	}
	if got.ConfluenceData.Items[0].Label != "Trend" {
		t.Errorf("snapshot item = %+v", got.ConfluenceData.Items[0])
	}
	if got.TakeProfitPrice != nil {
		t.Errorf("expected nil take profit, got %v", *got.TakeProfitPrice)
	}
}

func TestGetTradeByIDNotFound(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetTradeByID(context.Background(), "missing"); !errors.Is(err, errors.ErrTradeNotFound) {
		t.Errorf("error = %v, want ErrTradeNotFound", err)
	}
}

func TestGetTradesFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t1 := newTrade("t1", base)
	t2 := newTrade("t2", base.AddDate(0, 0, 1))
	t2.CurrencyPair = "GBP/USD"
	t2.Direction = models.DirectionShort
	t3 := newTrade("t3", base.AddDate(0, 1, 0))

	for _, tr := range []*models.Trade{t1, t2, t3} {
		if err := store.SaveTrade(ctx, tr); err != nil {
			t.Fatalf("SaveTrade(%s): %v", tr.ID, err)
		}
	}
	if err := store.CloseTrade(ctx, "t1", models.TradeOutcome{ProfitLoss: 120, AfterTradeImageURL: "file:///after.png"}, base.Add(time.Hour)); err != nil {
		t.Fatalf("CloseTrade: %v", err)
	}

	t.Run("by status", func(t *testing.T) {
		trades, err := store.GetTrades(ctx, TradeFilter{UserID: "u1", Status: models.StatusClosed})
		if err != nil {
			t.Fatal(err)
		}
		if len(trades) != 1 || trades[0].ID != "t1" {
			t.Errorf("closed trades = %+v", trades)
		}
	})

	t.Run("by pair", func(t *testing.T) {
		trades, err := store.GetTrades(ctx, TradeFilter{Pair: "GBP/USD"})
		if err != nil {
			t.Fatal(err)
		}
		if len(trades) != 1 || trades[0].ID != "t2" {
			t.Errorf("GBP trades = %+v", trades)
		}
	})

	t.Run("by date range", func(t *testing.T) {
		r := MonthRange(base)
		trades, err := store.GetTrades(ctx, TradeFilter{StartDate: r.Start, EndDate: r.End})
		if err != nil {
			t.Fatal(err)
		}
		if len(trades) != 2 {
			t.Errorf("March trades = %d, want 2", len(trades))
		}
	})

	t.Run("ordering", func(t *testing.T) {
		desc, err := store.GetTrades(ctx, TradeFilter{UserID: "u1"})
		if err != nil {
			t.Fatal(err)
		}
		if desc[0].ID != "t3" {
			t.Errorf("default order starts with %s, want newest", desc[0].ID)
		}
		asc, err := store.GetTrades(ctx, TradeFilter{UserID: "u1", Ascending: true})
		if err != nil {
			t.Fatal(err)
		}
		if asc[0].ID != "t1" {
			t.Errorf("ascending order starts with %s, want oldest", asc[0].ID)
		}
	})

	t.Run("limit", func(t *testing.T) {
		trades, err := store.GetTrades(ctx, TradeFilter{UserID: "u1", Limit: 1})
		if err != nil {
			t.Fatal(err)
		}
		if len(trades) != 1 {
			t.Errorf("limited query returned %d trades", len(trades))
		}
	})
}

func TestCloseTradeOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	if err := store.SaveTrade(ctx, newTrade("t1", created)); err != nil {
		t.Fatal(err)
	}

	outcome := models.TradeOutcome{ProfitLoss: -45.5, AfterTradeImageURL: "file:///after.png"}
	if err := store.CloseTrade(ctx, "t1", outcome, created.Add(2*time.Hour)); err != nil {
		t.Fatalf("first close: %v", err)
	}

	got, err := store.GetTradeByID(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsClosed() || got.PnL() != -45.5 || got.AfterTradeImageURL != "file:///after.png" {
		t.Errorf("closed trade = %+v", got)
	}

	// Second close must fail and leave the outcome untouched.
	err = store.CloseTrade(ctx, "t1", models.TradeOutcome{ProfitLoss: 999, AfterTradeImageURL: "x"}, time.Now())
	if !errors.Is(err, errors.ErrTradeClosed) {
		t.Errorf("second close error = %v, want ErrTradeClosed", err)
	}
	got, _ = store.GetTradeByID(ctx, "t1")
	if got.PnL() != -45.5 {
		t.Errorf("outcome mutated by rejected close: %v", got.PnL())
	}
}

func TestCloseMissingTrade(t *testing.T) {
	store := newTestStore(t)
	err := store.CloseTrade(context.Background(), "missing", models.TradeOutcome{ProfitLoss: 1, AfterTradeImageURL: "x"}, time.Now())
	if !errors.Is(err, errors.ErrTradeNotFound) {
		t.Errorf("error = %v, want ErrTradeNotFound", err)
	}
}

func TestUpdateTrade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.SaveTrade(ctx, newTrade("t1", time.Now())); err != nil {
		t.Fatal(err)
	}

	notes := "revised plan"
	target := 1.0950
	if err := store.UpdateTrade(ctx, "t1", models.TradePatch{Notes: &notes, TakeProfitPrice: &target}); err != nil {
		t.Fatalf("UpdateTrade: %v", err)
	}

	got, err := store.GetTradeByID(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Notes != "revised plan" {
		t.Errorf("Notes = %q", got.Notes)
	}
	if got.TakeProfitPrice == nil || *got.TakeProfitPrice != 1.0950 {
		t.Errorf("TakeProfitPrice = %v", got.TakeProfitPrice)
	}
	// Untouched fields survive the patch.
	if got.EntryPrice != 1.0850 {
		t.Errorf("EntryPrice = %v", got.EntryPrice)
	}

	if err := store.UpdateTrade(ctx, "missing", models.TradePatch{Notes: &notes}); !errors.Is(err, errors.ErrTradeNotFound) {
		t.Errorf("patching missing trade: %v", err)
	}
}

func TestDeleteTrade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	if err := store.SaveTrade(ctx, newTrade("t1", time.Now())); err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteTrade(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTrade: %v", err)
	}
	if _, err := store.GetTradeByID(ctx, "t1"); !errors.Is(err, errors.ErrTradeNotFound) {
		t.Errorf("trade still present after delete: %v", err)
	}
	if err := store.DeleteTrade(ctx, "t1"); !errors.Is(err, errors.ErrTradeNotFound) {
		t.Errorf("double delete error = %v, want ErrTradeNotFound", err)
	}
}

func TestCustomItems(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	items := []*models.CustomChecklistItem{
		{ID: "c1", UserID: "u1", Label: "News aligns", Weight: 5, CreatedAt: base},
		{ID: "c2", UserID: "u1", Label: "Session open", Weight: 10, CreatedAt: base.Add(time.Minute)},
		{ID: "c3", UserID: "u2", Label: "Other user", Weight: 5, CreatedAt: base},
	}
	for _, item := range items {
		if err := store.AddCustomItem(ctx, item); err != nil {
			t.Fatalf("AddCustomItem(%s): %v", item.ID, err)
		}
	}

	got, err := store.GetCustomItems(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c2" {
		t.Errorf("u1 items = %+v", got)
	}

	// Deleting with the wrong user must not touch the row.
	if err := store.DeleteCustomItem(ctx, "c1", "u2"); !errors.Is(err, errors.ErrItemNotFound) {
		t.Errorf("cross-user delete error = %v", err)
	}
	if err := store.DeleteCustomItem(ctx, "c1", "u1"); err != nil {
		t.Fatalf("DeleteCustomItem: %v", err)
	}
	got, _ = store.GetCustomItems(ctx, "u1")
	if len(got) != 1 {
		t.Errorf("items after delete = %+v", got)
	}
}

func TestSettingsUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.GetSettings(ctx, "u1"); !errors.Is(err, errors.ErrSettingsNotFound) {
		t.Errorf("missing settings error = %v", err)
	}

	settings := models.DefaultSettings("u1")
	settings.MonthlyTarget = 2500
	if err := store.SaveSettings(ctx, &settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got, err := store.GetSettings(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got.MonthlyTarget != 2500 || got.WinRateGoal != 60 || got.DailyReminderTime != "18:00" {
		t.Errorf("settings = %+v", got)
	}

	// Second save updates in place.
	got.MaxDailyLoss = 300
	got.DailyReminderEnabled = true
	if err := store.SaveSettings(ctx, got); err != nil {
		t.Fatalf("second SaveSettings: %v", err)
	}
	again, err := store.GetSettings(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if again.MaxDailyLoss != 300 || !again.DailyReminderEnabled {
		t.Errorf("updated settings = %+v", again)
	}
}

func TestDateRanges(t *testing.T) {
	at := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	m := MonthRange(at)
	if m.Start.Day() != 1 || m.Start.Month() != time.March {
		t.Errorf("month start = %v", m.Start)
	}
	if m.End.Before(time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)) {
		t.Errorf("month end = %v", m.End)
	}

	d := DayRange(at)
	if d.Start.Hour() != 0 || d.Start.Day() != 15 {
		t.Errorf("day start = %v", d.Start)
	}
	if !d.End.After(at) {
		t.Errorf("day end %v not after %v", d.End, at)
	}
}
