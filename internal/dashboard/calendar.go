package dashboard

import (
	"sort"
	"time"

	"github.com/betrocker/perfecttrade/internal/models"
)

// TradingDay aggregates one calendar date's closed trades.
type TradingDay struct {
	Date    string // YYYY-MM-DD
	Profit  float64
	Trades  []models.Trade
	WinRate int
}

// TradingDays groups closed trades by the local calendar date of CreatedAt.
// Pass year = 0 or month = 0 to skip that filter.
func TradingDays(closed []models.Trade, year int, month time.Month) map[string]TradingDay {
	days := make(map[string]TradingDay)

	for _, t := range closed {
		if year != 0 && t.CreatedAt.Year() != year {
			continue
		}
		if month != 0 && t.CreatedAt.Month() != month {
			continue
		}
		key := t.CreatedAt.Format("2006-01-02")
		day, ok := days[key]
		if !ok {
			day = TradingDay{Date: key}
		}
		day.Trades = append(day.Trades, t)
		day.Profit += t.PnL()
		days[key] = day
	}

	for key, day := range days {
		wins := 0
		for _, t := range day.Trades {
			if t.PnL() > 0 {
				wins++
			}
		}
		day.WinRate = roundRate(wins, len(day.Trades))
		days[key] = day
	}

	return days
}

// MonthlyPnL is one month's summed outcome.
type MonthlyPnL struct {
	Month  string // e.g. "Mar 2025"
	Profit float64
	Trades int
}

// ComputeMonthlyPnL groups closed trades by calendar month, sorted
// chronologically ascending and truncated to the most recent monthsBack
// entries.
func ComputeMonthlyPnL(closed []models.Trade, monthsBack int) []MonthlyPnL {
	type monthAgg struct {
		key   string
		value MonthlyPnL
	}
	byKey := make(map[string]MonthlyPnL)

	for _, t := range closed {
		key := t.CreatedAt.Format("2006-01")
		agg, ok := byKey[key]
		if !ok {
			agg = MonthlyPnL{Month: t.CreatedAt.Format("Jan 2006")}
		}
		agg.Profit += t.PnL()
		agg.Trades++
		byKey[key] = agg
	}

	months := make([]monthAgg, 0, len(byKey))
	for key, value := range byKey {
		months = append(months, monthAgg{key: key, value: value})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].key < months[j].key })

	if monthsBack > 0 && len(months) > monthsBack {
		months = months[len(months)-monthsBack:]
	}

	out := make([]MonthlyPnL, len(months))
	for i, m := range months {
		out[i] = m.value
	}
	return out
}

// WeeklySummary is one week-of-month bucket. Weeks partition the month by
// day-of-month (week = ceil(day/7)), not by ISO calendar week.
type WeeklySummary struct {
	Week   int
	Profit float64
	Days   int
	Trades int
}

// ComputeWeeklySummary buckets a month's trading days into ceil(daysInMonth/7)
// weeks. Weeks with no trading activity still appear, zeroed.
func ComputeWeeklySummary(days map[string]TradingDay, year int, month time.Month) []WeeklySummary {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	numWeeks := (daysInMonth + 6) / 7

	weeks := make([]WeeklySummary, numWeeks)
	for i := range weeks {
		weeks[i].Week = i + 1
	}

	for _, day := range days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}
		week := (date.Day() + 6) / 7
		if week < 1 || week > numWeeks {
			continue
		}
		weeks[week-1].Profit += day.Profit
		weeks[week-1].Days++
		weeks[week-1].Trades += len(day.Trades)
	}

	return weeks
}
