// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/betrocker/perfecttrade/internal/dashboard"
	"github.com/betrocker/perfecttrade/internal/models"
	"github.com/betrocker/perfecttrade/internal/store"
)

// addDashboardCommands adds statistics and calendar commands.
func addDashboardCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Journal statistics",
		Long:  "Aggregate closed trades into statistics, calendars, and pair rankings.",
	}

	cmd.AddCommand(newDashboardStatsCmd(app))
	cmd.AddCommand(newDashboardCalendarCmd(app))
	cmd.AddCommand(newDashboardMonthlyCmd(app))
	cmd.AddCommand(newDashboardWeeklyCmd(app))
	cmd.AddCommand(newDashboardPairsCmd(app))

	rootCmd.AddCommand(cmd)
}

// closedTrades fetches the user's closed trades, optionally restricted to a
// date range.
func closedTrades(ctx context.Context, app *App, r store.DateRange) ([]models.Trade, error) {
	if app.Store == nil {
		return nil, fmt.Errorf("journal store not initialized")
	}
	return app.Store.GetTrades(ctx, store.TradeFilter{
		UserID:    app.UserID(),
		Status:    models.StatusClosed,
		StartDate: r.Start,
		EndDate:   r.End,
		Ascending: true,
	})
}

func newDashboardStatsCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show trading statistics",
		Long:  "Aggregate statistics over all closed trades, or over one month with --month.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			var r store.DateRange
			if month != "" {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month %q, want YYYY-MM", month)
				}
				r = store.MonthRange(t)
			}

			trades, err := closedTrades(ctx, app, r)
			if err != nil {
				return err
			}

			stats := dashboard.ComputeStats(trades)
			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("Trading Statistics")
			if month != "" {
				output.Dim("Month: %s", month)
			}
			output.Println()
			output.Printf("  Net P&L:        %s\n", output.FormatPnL(stats.NetProfitLoss))
			output.Printf("  Total Trades:   %d\n", stats.TotalTrades)
			output.Printf("  Win Rate:       %d%%\n", stats.WinRate)
			output.Printf("  Profit Factor:  %.2f\n", stats.ProfitFactor)
			output.Printf("  Avg Confluence: %d\n", stats.AvgConfluence)
			output.Println()
			output.Printf("  Wins:           %d (%s)\n", stats.WinningTrades, output.FormatPnL(stats.TotalProfit))
			output.Printf("  Losses:         %d (%s)\n", stats.LosingTrades, output.FormatPnL(-stats.TotalLoss))
			output.Printf("  Breakeven:      %d\n", stats.BreakEvenTrades)
			output.Printf("  Largest Win:    %s\n", output.FormatPnL(stats.LargestWin))
			output.Printf("  Largest Loss:   %s\n", output.FormatPnL(-stats.LargestLoss))
			output.Println()
			output.Printf("  Best Streak:    %d wins\n", stats.BestStreak)
			output.Printf("  Worst Streak:   %d losses\n", stats.WorstStreak)
			output.Printf("  Long Win Rate:  %d%%\n", stats.LongTradesWinRate)
			output.Printf("  Short Win Rate: %d%%\n", stats.ShortTradesWinRate)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "restrict to one month (YYYY-MM)")
	return cmd
}

func newDashboardCalendarCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show per-day results for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			t := time.Now()
			if month != "" {
				var err error
				t, err = time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month %q, want YYYY-MM", month)
				}
			}

			trades, err := closedTrades(ctx, app, store.MonthRange(t))
			if err != nil {
				return err
			}

			days := dashboard.TradingDays(trades, t.Year(), t.Month())
			if output.IsJSON() {
				return output.JSON(days)
			}

			if len(days) == 0 {
				output.Info("No closed trades in %s.", t.Format("Jan 2006"))
				return nil
			}

			keys := make([]string, 0, len(days))
			for k := range days {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			output.Bold("Trading Days - %s", t.Format("Jan 2006"))
			table := NewTable(output, "Date", "Trades", "Win Rate", "P&L")
			for _, k := range keys {
				d := days[k]
				table.AddRow(
					k,
					strconv.Itoa(len(d.Trades)),
					fmt.Sprintf("%d%%", d.WinRate),
					output.FormatPnL(d.Profit),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to show (YYYY-MM, default current)")
	return cmd
}

func newDashboardMonthlyCmd(app *App) *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show monthly P&L history",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			trades, err := closedTrades(ctx, app, store.DateRange{})
			if err != nil {
				return err
			}

			history := dashboard.ComputeMonthlyPnL(trades, months)
			if output.IsJSON() {
				return output.JSON(history)
			}

			if len(history) == 0 {
				output.Info("No closed trades yet.")
				return nil
			}

			table := NewTable(output, "Month", "Trades", "P&L")
			for _, m := range history {
				table.AddRow(m.Month, strconv.Itoa(m.Trades), output.FormatPnL(m.Profit))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 6, "number of months to show")
	return cmd
}

func newDashboardWeeklyCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show weekly summary for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			t := time.Now()
			if month != "" {
				var err error
				t, err = time.Parse("2006-01", month)
				if err != nil {
					return fmt.Errorf("invalid --month %q, want YYYY-MM", month)
				}
			}

			trades, err := closedTrades(ctx, app, store.MonthRange(t))
			if err != nil {
				return err
			}

			days := dashboard.TradingDays(trades, t.Year(), t.Month())
			weeks := dashboard.ComputeWeeklySummary(days, t.Year(), t.Month())
			if output.IsJSON() {
				return output.JSON(weeks)
			}

			output.Bold("Weekly Summary - %s", t.Format("Jan 2006"))
			table := NewTable(output, "Week", "Days", "Trades", "P&L")
			for _, w := range weeks {
				table.AddRow(
					fmt.Sprintf("Week %d", w.Week),
					strconv.Itoa(w.Days),
					strconv.Itoa(w.Trades),
					output.FormatPnL(w.Profit),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to show (YYYY-MM, default current)")
	return cmd
}

func newDashboardPairsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pairs",
		Short: "Show best and worst performing pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			trades, err := closedTrades(ctx, app, store.DateRange{})
			if err != nil {
				return err
			}

			best, worst := dashboard.PerformingPairs(trades)
			if output.IsJSON() {
				return output.JSON(map[string]*dashboard.PairStats{
					"best":  best,
					"worst": worst,
				})
			}

			if best == nil {
				output.Info("No closed trades yet.")
				return nil
			}

			output.Bold("Pair Performance")
			table := NewTable(output, "", "Pair", "Trades", "Win Rate", "P&L")
			table.AddRow(output.Green("Best"), best.Pair, strconv.Itoa(best.Trades),
				fmt.Sprintf("%d%%", best.WinRate), output.FormatPnL(best.Profit))
			table.AddRow(output.Red("Worst"), worst.Pair, strconv.Itoa(worst.Trades),
				fmt.Sprintf("%d%%", worst.WinRate), output.FormatPnL(worst.Profit))
			table.Render()
			return nil
		},
	}
}
