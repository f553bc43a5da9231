// Package dashboard derives journal statistics from closed trade records.
// Every aggregation is a pure transform over an in-memory snapshot: empty
// input yields zeroed results, never an error.
package dashboard

import (
	"math"
	"sort"

	"github.com/betrocker/perfecttrade/internal/models"
)

// Stats summarizes a collection of closed trades.
type Stats struct {
	NetProfitLoss      float64
	TotalTrades        int
	WinRate            int // percent, rounded
	ProfitFactor       float64
	AvgConfluence      int
	TotalProfit        float64
	WinningTrades      int
	TotalLoss          float64
	LosingTrades       int
	LargestWin         float64
	LargestLoss        float64
	BestStreak         int
	WorstStreak        int
	LongTradesWinRate  int
	ShortTradesWinRate int
	BreakEvenTrades    int
}

// ComputeStats derives dashboard statistics from closed trades. The input
// is expected to be pre-filtered to CLOSED status; trades without an
// outcome count as breakeven.
func ComputeStats(closed []models.Trade) Stats {
	if len(closed) == 0 {
		return Stats{}
	}

	var s Stats
	s.TotalTrades = len(closed)

	var confluenceSum float64
	var longWins, longTotal, shortWins, shortTotal int

	// LargestWin is the max of the full signed set, not the max restricted
	// to wins: with only losing trades it is negative. LargestLoss is the
	// absolute value of the signed minimum.
	maxPnL := math.Inf(-1)
	minPnL := math.Inf(1)

	for _, t := range closed {
		pnl := t.PnL()
		s.NetProfitLoss += pnl
		confluenceSum += t.ConfluenceScore

		switch {
		case pnl > 0:
			s.WinningTrades++
			s.TotalProfit += pnl
		case pnl < 0:
			s.LosingTrades++
			s.TotalLoss += -pnl
		default:
			s.BreakEvenTrades++
		}

		if pnl > maxPnL {
			maxPnL = pnl
		}
		if pnl < minPnL {
			minPnL = pnl
		}

		switch t.Direction {
		case models.DirectionLong:
			longTotal++
			if pnl > 0 {
				longWins++
			}
		case models.DirectionShort:
			shortTotal++
			if pnl > 0 {
				shortWins++
			}
		}
	}

	s.WinRate = roundRate(s.WinningTrades, s.TotalTrades)
	s.LongTradesWinRate = roundRate(longWins, longTotal)
	s.ShortTradesWinRate = roundRate(shortWins, shortTotal)

	if s.TotalLoss > 0 {
		s.ProfitFactor = math.Round(s.TotalProfit/s.TotalLoss*100) / 100
	}

	s.AvgConfluence = int(math.Round(confluenceSum / float64(s.TotalTrades)))
	s.LargestWin = maxPnL
	s.LargestLoss = math.Abs(minPnL)
	s.BestStreak, s.WorstStreak = Streaks(closed)

	return s
}

// Streaks walks trades in ascending CreatedAt order and returns the best
// winning streak and the worst losing streak (reported as a positive
// count). A trade is a win iff its P&L is strictly positive; everything
// else, breakeven included, extends or starts the losing branch.
func Streaks(trades []models.Trade) (best, worst int) {
	if len(trades) == 0 {
		return 0, 0
	}

	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	var streak int
	lastWasWin := false
	for i, t := range sorted {
		isWin := t.PnL() > 0
		if i == 0 {
			if isWin {
				streak = 1
			} else {
				streak = -1
			}
			lastWasWin = isWin
			continue
		}
		if isWin == lastWasWin {
			if isWin {
				streak++
			} else {
				streak--
			}
		} else {
			if streak > best {
				best = streak
			}
			if streak < worst {
				worst = streak
			}
			if isWin {
				streak = 1
			} else {
				streak = -1
			}
			lastWasWin = isWin
		}
	}
	if streak > best {
		best = streak
	}
	if streak < worst {
		worst = streak
	}

	if best < 0 {
		best = 0
	}
	return best, -min(worst, 0)
}

// roundRate returns round(n/total*100), or 0 for an empty subset.
func roundRate(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
