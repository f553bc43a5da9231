package dashboard

import "github.com/betrocker/perfecttrade/internal/models"

// PairStats aggregates closed trades for one currency pair.
type PairStats struct {
	Pair    string
	Profit  float64
	Trades  int
	Wins    int
	Losses  int
	WinRate int
}

// PerformingPairs groups closed trades by currency pair and returns the
// pair with the highest summed profit as best and the lowest as worst.
// Both are nil when there are no closed trades; with a single distinct
// pair, best and worst are the same pair.
func PerformingPairs(closed []models.Trade) (best, worst *PairStats) {
	if len(closed) == 0 {
		return nil, nil
	}

	byPair := make(map[string]*PairStats)
	order := make([]string, 0)

	for _, t := range closed {
		stats, ok := byPair[t.CurrencyPair]
		if !ok {
			stats = &PairStats{Pair: t.CurrencyPair}
			byPair[t.CurrencyPair] = stats
			order = append(order, t.CurrencyPair)
		}
		pnl := t.PnL()
		stats.Profit += pnl
		stats.Trades++
		if pnl > 0 {
			stats.Wins++
		} else if pnl < 0 {
			stats.Losses++
		}
	}

	for _, stats := range byPair {
		stats.WinRate = roundRate(stats.Wins, stats.Trades)
	}

	best = byPair[order[0]]
	worst = byPair[order[0]]
	for _, pair := range order[1:] {
		stats := byPair[pair]
		if stats.Profit > best.Profit {
			best = stats
		}
		if stats.Profit < worst.Profit {
			worst = stats
		}
	}
	return best, worst
}
