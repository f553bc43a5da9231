package dashboard

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/betrocker/perfecttrade/internal/models"
)

// closedTrade builds a closed trade with the given outcome, created i
// minutes after a fixed base time so ordering is deterministic.
func closedTrade(i int, pnl float64, opts ...func(*models.Trade)) models.Trade {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	p := pnl
	t := models.Trade{
		ID:           string(rune('a' + i)),
		UserID:       "u1",
		CurrencyPair: "EUR/USD",
		Direction:    models.DirectionLong,
		Status:       models.StatusClosed,
		ProfitLoss:   &p,
		CreatedAt:    base.Add(time.Duration(i) * time.Minute),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func withPair(pair string) func(*models.Trade) {
	return func(t *models.Trade) { t.CurrencyPair = pair }
}

func withDirection(d models.TradeDirection) func(*models.Trade) {
	return func(t *models.Trade) { t.Direction = d }
}

func withConfluence(score float64) func(*models.Trade) {
	return func(t *models.Trade) { t.ConfluenceScore = score }
}

func withCreatedAt(at time.Time) func(*models.Trade) {
	return func(t *models.Trade) { t.CreatedAt = at }
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats != (Stats{}) {
		t.Errorf("empty input produced %+v, want zero Stats", stats)
	}
}

func TestComputeStats(t *testing.T) {
	trades := []models.Trade{
		closedTrade(0, 100, withConfluence(80)),
		closedTrade(1, -40, withConfluence(60)),
		closedTrade(2, 250, withConfluence(90), withDirection(models.DirectionShort)),
		closedTrade(3, 0, withConfluence(70)),
		closedTrade(4, -60, withConfluence(50), withDirection(models.DirectionShort)),
	}

	stats := ComputeStats(trades)

	if stats.TotalTrades != 5 {
		t.Errorf("TotalTrades = %d", stats.TotalTrades)
	}
	if stats.NetProfitLoss != 250 {
		t.Errorf("NetProfitLoss = %v, want 250", stats.NetProfitLoss)
	}
	if stats.WinningTrades != 2 || stats.LosingTrades != 2 || stats.BreakEvenTrades != 1 {
		t.Errorf("W/L/BE = %d/%d/%d, want 2/2/1", stats.WinningTrades, stats.LosingTrades, stats.BreakEvenTrades)
	}
	if stats.WinRate != 40 {
		t.Errorf("WinRate = %d, want 40", stats.WinRate)
	}
	if stats.TotalProfit != 350 || stats.TotalLoss != 100 {
		t.Errorf("TotalProfit/TotalLoss = %v/%v, want 350/100", stats.TotalProfit, stats.TotalLoss)
	}
	if stats.ProfitFactor != 3.5 {
		t.Errorf("ProfitFactor = %v, want 3.5", stats.ProfitFactor)
	}
	if stats.LargestWin != 250 {
		t.Errorf("LargestWin = %v, want 250", stats.LargestWin)
	}
	if stats.LargestLoss != 60 {
		t.Errorf("LargestLoss = %v, want 60", stats.LargestLoss)
	}
	if stats.AvgConfluence != 70 {
		t.Errorf("AvgConfluence = %d, want 70", stats.AvgConfluence)
	}
	if stats.LongTradesWinRate != 33 {
		t.Errorf("LongTradesWinRate = %d, want 33", stats.LongTradesWinRate)
	}
	if stats.ShortTradesWinRate != 50 {
		t.Errorf("ShortTradesWinRate = %d, want 50", stats.ShortTradesWinRate)
	}
}

func TestProfitFactorNoLosses(t *testing.T) {
	trades := []models.Trade{
		closedTrade(0, 100),
		closedTrade(1, 50),
	}
	if pf := ComputeStats(trades).ProfitFactor; pf != 0 {
		t.Errorf("ProfitFactor with no losses = %v, want 0", pf)
	}
}

func TestProfitFactorRounding(t *testing.T) {
	trades := []models.Trade{
		closedTrade(0, 100),
		closedTrade(1, -30),
	}
	// 100/30 = 3.333... rounds to 3.33.
	if pf := ComputeStats(trades).ProfitFactor; pf != 3.33 {
		t.Errorf("ProfitFactor = %v, want 3.33", pf)
	}
}

func TestLargestWinAllLosses(t *testing.T) {
	trades := []models.Trade{
		closedTrade(0, -20),
		closedTrade(1, -50),
	}
	stats := ComputeStats(trades)
	if stats.LargestWin != -20 {
		t.Errorf("LargestWin over all-loss set = %v, want -20", stats.LargestWin)
	}
	if stats.LargestLoss != 50 {
		t.Errorf("LargestLoss = %v, want 50", stats.LargestLoss)
	}
}

func TestStreaks(t *testing.T) {
	testCases := []struct {
		name      string
		pnls      []float64
		wantBest  int
		wantWorst int
	}{
		{"empty", nil, 0, 0},
		{"single win", []float64{10}, 1, 0},
		{"single loss", []float64{-10}, 0, 1},
		{"mixed", []float64{10, 20, -5, 30, 40, 50, -5, -5}, 3, 2},
		{"all wins", []float64{1, 2, 3}, 3, 0},
		{"all losses", []float64{-1, -2, -3}, 0, 3},
		{"breakeven breaks win streaks", []float64{10, 0, 10}, 1, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trades := make([]models.Trade, len(tc.pnls))
			for i, pnl := range tc.pnls {
				trades[i] = closedTrade(i, pnl)
			}
			best, worst := Streaks(trades)
			if best != tc.wantBest || worst != tc.wantWorst {
				t.Errorf("Streaks(%v) = (%d, %d), want (%d, %d)", tc.pnls, best, worst, tc.wantBest, tc.wantWorst)
			}
		})
	}
}

func TestStreaksIgnoreInputOrder(t *testing.T) {
	// Reversed slice order; CreatedAt ordering decides the walk.
	trades := []models.Trade{
		closedTrade(2, -5),
		closedTrade(0, 10),
		closedTrade(1, 20),
	}
	best, worst := Streaks(trades)
	if best != 2 || worst != 1 {
		t.Errorf("Streaks = (%d, %d), want (2, 1)", best, worst)
	}
}

func TestStatsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genPnLs := gen.SliceOf(gen.Float64Range(-1000, 1000))

	toTrades := func(pnls []float64) []models.Trade {
		trades := make([]models.Trade, len(pnls))
		for i, pnl := range pnls {
			trades[i] = closedTrade(i%26, pnl)
		}
		return trades
	}

	properties.Property("net P&L is profit minus loss", prop.ForAll(
		func(pnls []float64) bool {
			stats := ComputeStats(toTrades(pnls))
			return math.Abs(stats.NetProfitLoss-(stats.TotalProfit-stats.TotalLoss)) < 1e-6
		},
		genPnLs,
	))

	properties.Property("trade counts partition the input", prop.ForAll(
		func(pnls []float64) bool {
			stats := ComputeStats(toTrades(pnls))
			return stats.WinningTrades+stats.LosingTrades+stats.BreakEvenTrades == stats.TotalTrades
		},
		genPnLs,
	))

	properties.Property("win rate stays within 0..100", prop.ForAll(
		func(pnls []float64) bool {
			stats := ComputeStats(toTrades(pnls))
			return stats.WinRate >= 0 && stats.WinRate <= 100
		},
		genPnLs,
	))

	properties.Property("streaks never exceed the trade count", prop.ForAll(
		func(pnls []float64) bool {
			best, worst := Streaks(toTrades(pnls))
			return best >= 0 && worst >= 0 && best <= len(pnls) && worst <= len(pnls)
		},
		genPnLs,
	))

	properties.TestingRun(t)
}
