// Package goals computes goal progress from trade data and user settings.
package goals

import (
	"fmt"
	"math"
	"time"

	"github.com/betrocker/perfecttrade/internal/models"
)

// Progress combines a month's and a day's trade data with the user's goal
// thresholds into the dashboard goals view model.
type Progress struct {
	// Monthly target
	MonthlyTarget          float64
	MonthlyProgress        float64
	MonthlyProgressPercent int
	DaysLeftInMonth        int
	DailyTargetRemaining   float64
	OnTrackForMonthly      bool

	// Daily loss limit
	MaxDailyLoss      float64
	TodayLoss         float64
	DailyLossPercent  int
	DailyLossWarning  bool
	DailyLossExceeded bool

	// Win rate goal
	WinRateGoal       float64
	CurrentWinRate    int
	WinRateGap        int
	OnTrackForWinRate bool

	// Max trades per day
	MaxTradesPerDay      int
	TodayTradesCount     int
	TradesRemainingToday int
	MaxTradesReached     bool

	// Additional insights
	AvgDailyProfit         float64
	ProjectedMonthlyProfit float64
}

// Compute derives goal progress. monthTrades are the current month's closed
// trades; todayTrades are all of today's trades regardless of status (a
// planned trade still counts toward the daily trade cap).
func Compute(settings models.UserSettings, monthTrades, todayTrades []models.Trade, now time.Time) Progress {
	var p Progress

	var monthlyProfit float64
	wins := 0
	for _, t := range monthTrades {
		monthlyProfit += t.PnL()
		if t.PnL() > 0 {
			wins++
		}
	}

	p.MonthlyTarget = settings.MonthlyTarget
	p.MonthlyProgress = monthlyProfit
	if p.MonthlyTarget > 0 {
		p.MonthlyProgressPercent = int(math.Round(monthlyProfit / p.MonthlyTarget * 100))
	}

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	currentDay := now.Day()
	p.DaysLeftInMonth = daysInMonth - currentDay

	if currentDay > 0 {
		p.AvgDailyProfit = monthlyProfit / float64(currentDay)
	}
	p.ProjectedMonthlyProfit = p.AvgDailyProfit * float64(daysInMonth)
	p.OnTrackForMonthly = p.ProjectedMonthlyProfit >= p.MonthlyTarget

	targetRemaining := math.Max(0, p.MonthlyTarget-monthlyProfit)
	if p.DaysLeftInMonth > 0 {
		p.DailyTargetRemaining = targetRemaining / float64(p.DaysLeftInMonth)
	} else {
		p.DailyTargetRemaining = targetRemaining
	}

	// Daily loss limit: warn at 80% of the limit, block at 100%.
	var todayLoss float64
	for _, t := range todayTrades {
		if t.PnL() < 0 {
			todayLoss += t.PnL()
		}
	}
	p.TodayLoss = math.Abs(todayLoss)
	p.MaxDailyLoss = settings.MaxDailyLoss
	if p.MaxDailyLoss > 0 {
		p.DailyLossPercent = int(math.Round(p.TodayLoss / p.MaxDailyLoss * 100))
	}
	p.DailyLossWarning = p.MaxDailyLoss > 0 && p.TodayLoss/p.MaxDailyLoss >= 0.8
	p.DailyLossExceeded = p.TodayLoss >= p.MaxDailyLoss && p.MaxDailyLoss > 0

	p.WinRateGoal = settings.WinRateGoal
	currentWinRate := 0.0
	if len(monthTrades) > 0 {
		currentWinRate = float64(wins) / float64(len(monthTrades)) * 100
	}
	p.CurrentWinRate = int(math.Round(currentWinRate))
	p.WinRateGap = int(math.Round(currentWinRate - p.WinRateGoal))
	p.OnTrackForWinRate = currentWinRate >= p.WinRateGoal

	p.MaxTradesPerDay = settings.MaxTradesPerDay
	p.TodayTradesCount = len(todayTrades)
	p.TradesRemainingToday = p.MaxTradesPerDay - p.TodayTradesCount
	if p.TradesRemainingToday < 0 {
		p.TradesRemainingToday = 0
	}
	p.MaxTradesReached = p.MaxTradesPerDay > 0 && p.TodayTradesCount >= p.MaxTradesPerDay

	return p
}

// BlockReason reports whether new trades should be blocked right now and
// why. Loss-limit breaches take precedence over the trade cap.
func BlockReason(p Progress) (blocked bool, reason string) {
	if p.DailyLossExceeded {
		return true, fmt.Sprintf("Daily loss limit of $%.0f exceeded. Stop trading for today.", p.MaxDailyLoss)
	}
	if p.MaxTradesReached {
		return true, fmt.Sprintf("Maximum %d trades per day reached. Take a break!", p.MaxTradesPerDay)
	}
	return false, ""
}
