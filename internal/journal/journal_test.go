package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/betrocker/perfecttrade/internal/checklist"
	"github.com/betrocker/perfecttrade/internal/errors"
	"github.com/betrocker/perfecttrade/internal/models"
	"github.com/betrocker/perfecttrade/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dataStore, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { dataStore.Close() })

	svc := NewService(dataStore, zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func planRequest() PlanRequest {
	return PlanRequest{
		UserID:         "u1",
		CurrencyPair:   "EUR/USD",
		Direction:      models.DirectionLong,
		EntryPrice:     1.0850,
		StopLossPrice:  1.0820,
		AccountBalance: 10000,
		RiskPercentage: 1,
		StopLossPips:   30,
		Notes:          "weekly AOI retest",
		Buckets:        checklist.DefaultBuckets(),
		Checked:        checklist.NewCheckedSet("w1", "w2", "d1", "e1"),
	}
}

func TestPlanTrade(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	trade, err := svc.PlanTrade(ctx, planRequest())
	if err != nil {
		t.Fatalf("PlanTrade: %v", err)
	}

	if trade.ID == "" {
		t.Error("missing trade ID")
	}
	if trade.Status != models.StatusPlanned {
		t.Errorf("status = %s, want PLANNED", trade.Status)
	}
	if trade.ConfluenceScore != 40 {
		t.Errorf("confluence score = %v, want 40", trade.ConfluenceScore)
	}
	if len(trade.ConfluenceData.Items) != 4 {
		t.Errorf("snapshot items = %d, want 4", len(trade.ConfluenceData.Items))
	}
	// 10000 * 1% over 30 pips at $10/pip.
	if trade.CalculatedLotSize != "0.333 lots" {
		t.Errorf("lot size = %q", trade.CalculatedLotSize)
	}

	// Round-trips through the store.
	stored, err := svc.store.GetTradeByID(ctx, trade.ID)
	if err != nil {
		t.Fatalf("GetTradeByID: %v", err)
	}
	if stored.ConfluenceScore != 40 || stored.Notes != "weekly AOI retest" {
		t.Errorf("stored trade = %+v", stored)
	}
}

func TestPlanTradeValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*PlanRequest)
	}{
		{"empty user", func(r *PlanRequest) { r.UserID = "" }},
		{"malformed pair", func(r *PlanRequest) { r.CurrencyPair = "EURUSD" }},
		{"bad direction", func(r *PlanRequest) { r.Direction = "SIDEWAYS" }},
		{"zero balance", func(r *PlanRequest) { r.AccountBalance = 0 }},
		{"zero pips", func(r *PlanRequest) { r.StopLossPips = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := planRequest()
			tc.mutate(&req)
			if _, err := svc.PlanTrade(ctx, req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCloseTradeLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	trade, err := svc.PlanTrade(ctx, planRequest())
	if err != nil {
		t.Fatal(err)
	}

	t.Run("after image required", func(t *testing.T) {
		_, err := svc.CloseTrade(ctx, trade.ID, models.TradeOutcome{ProfitLoss: 50})
		var verr *errors.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})

	t.Run("close records outcome", func(t *testing.T) {
		closed, err := svc.CloseTrade(ctx, trade.ID, models.TradeOutcome{
			ProfitLoss:         50,
			AfterTradeImageURL: "file:///after.png",
		})
		if err != nil {
			t.Fatalf("CloseTrade: %v", err)
		}
		if !closed.IsClosed() || closed.PnL() != 50 {
			t.Errorf("closed trade = %+v", closed)
		}
	})

	t.Run("close is one-shot", func(t *testing.T) {
		_, err := svc.CloseTrade(ctx, trade.ID, models.TradeOutcome{
			ProfitLoss:         -100,
			AfterTradeImageURL: "file:///other.png",
		})
		if err == nil {
			t.Fatal("second close succeeded")
		}
	})

	t.Run("closed trade rejects edits", func(t *testing.T) {
		notes := "hindsight"
		_, err := svc.UpdatePlanned(ctx, trade.ID, models.TradePatch{Notes: &notes})
		if !errors.Is(err, errors.ErrTradeClosed) {
			t.Errorf("error = %v, want ErrTradeClosed", err)
		}
	})

	t.Run("closed trade can be deleted", func(t *testing.T) {
		if err := svc.DeleteTrade(ctx, trade.ID); err != nil {
			t.Fatalf("DeleteTrade: %v", err)
		}
		if _, err := svc.store.GetTradeByID(ctx, trade.ID); !errors.Is(err, errors.ErrTradeNotFound) {
			t.Errorf("trade survives delete: %v", err)
		}
	})
}

func TestUpdatePlanned(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	trade, err := svc.PlanTrade(ctx, planRequest())
	if err != nil {
		t.Fatal(err)
	}

	notes := "moved stop to structure"
	updated, err := svc.UpdatePlanned(ctx, trade.ID, models.TradePatch{Notes: &notes})
	if err != nil {
		t.Fatalf("UpdatePlanned: %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("Notes = %q", updated.Notes)
	}
	if updated.Status != models.StatusPlanned {
		t.Errorf("status changed to %s", updated.Status)
	}
}

func TestAddCustomItem(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	item, err := svc.AddCustomItem(ctx, "u1", "  News aligns  ", 5)
	if err != nil {
		t.Fatalf("AddCustomItem: %v", err)
	}
	if item.Label != "News aligns" {
		t.Errorf("label = %q, want trimmed", item.Label)
	}

	if _, err := svc.AddCustomItem(ctx, "u1", "", 5); err == nil {
		t.Error("empty label accepted")
	}
	if _, err := svc.AddCustomItem(ctx, "u1", "No weight", 0); err == nil {
		t.Error("zero weight accepted")
	}
}

func TestSettingsFallback(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	settings, err := svc.Settings(ctx, "u1")
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	defaults := models.DefaultSettings("u1")
	if settings.MonthlyTarget != defaults.MonthlyTarget || settings.MaxTradesPerDay != defaults.MaxTradesPerDay {
		t.Errorf("fallback settings = %+v", settings)
	}

	settings.MonthlyTarget = 5000
	if err := svc.store.SaveSettings(ctx, &settings); err != nil {
		t.Fatal(err)
	}
	saved, err := svc.Settings(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if saved.MonthlyTarget != 5000 {
		t.Errorf("saved settings = %+v", saved)
	}
}
