// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/betrocker/perfecttrade/internal/goals"
	"github.com/betrocker/perfecttrade/internal/models"
	"github.com/betrocker/perfecttrade/internal/store"
)

// addGoalsCommands adds goal tracking commands.
func addGoalsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "goals",
		Short: "Show goal progress",
		Long: `Evaluate the monthly profit target, daily loss limit, win rate goal,
and daily trade cap against the current month's trades.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Journal == nil {
				return fmt.Errorf("journal store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			settings, err := app.Journal.Settings(ctx, app.UserID())
			if err != nil {
				return err
			}

			now := time.Now()
			month := store.MonthRange(now)
			day := store.DayRange(now)

			monthTrades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				UserID:    app.UserID(),
				Status:    models.StatusClosed,
				StartDate: month.Start,
				EndDate:   month.End,
			})
			if err != nil {
				return err
			}
			todayTrades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				UserID:    app.UserID(),
				StartDate: day.Start,
				EndDate:   day.End,
			})
			if err != nil {
				return err
			}

			p := goals.Compute(settings, monthTrades, todayTrades, now)
			if output.IsJSON() {
				return output.JSON(p)
			}

			output.Bold("Monthly Target")
			output.Printf("  Progress:     %s of %s (%d%%)\n",
				output.FormatPnL(p.MonthlyProgress), output.FormatPnL(p.MonthlyTarget), p.MonthlyProgressPercent)
			output.Printf("  Days left:    %d\n", p.DaysLeftInMonth)
			output.Printf("  Need per day: %s\n", output.FormatPnL(p.DailyTargetRemaining))
			output.Printf("  Projection:   %s\n", output.FormatPnL(p.ProjectedMonthlyProfit))
			if p.OnTrackForMonthly {
				output.Success("  On track")
			} else {
				output.Warning("  Behind target")
			}
			output.Println()

			output.Bold("Daily Loss Limit")
			output.Printf("  Today:        %s of %s (%d%%)\n",
				output.FormatPnL(-p.TodayLoss), output.FormatPnL(-p.MaxDailyLoss), p.DailyLossPercent)
			switch {
			case p.DailyLossExceeded:
				output.Error("  Limit exceeded, stop trading for today")
			case p.DailyLossWarning:
				output.Warning("  Approaching limit")
			}
			output.Println()

			output.Bold("Win Rate")
			output.Printf("  Current:      %d%% (goal %.0f%%)\n", p.CurrentWinRate, p.WinRateGoal)
			if !p.OnTrackForWinRate && p.WinRateGap < 0 {
				output.Warning("  %d%% below goal", -p.WinRateGap)
			}
			output.Println()

			output.Bold("Daily Trades")
			output.Printf("  Today:        %d of %d (%d remaining)\n",
				p.TodayTradesCount, p.MaxTradesPerDay, p.TradesRemainingToday)
			if p.MaxTradesReached {
				output.Warning("  Daily cap reached")
			}

			if blocked, reason := goals.BlockReason(p); blocked {
				output.Println()
				output.Error("⛔ %s", reason)
			}
			return nil
		},
	})
}
