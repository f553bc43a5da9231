// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/betrocker/perfecttrade/internal/reminder"
	"github.com/betrocker/perfecttrade/internal/store"
)

// addSettingsCommands adds user settings and reminder commands.
func addSettingsCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "User settings",
		Long:  "View and update goal thresholds and journaling reminders.",
	}

	cmd.AddCommand(newSettingsShowCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))
	cmd.AddCommand(newSettingsReminderCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
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
			if output.IsJSON() {
				return output.JSON(settings)
			}

			output.Bold("Goals")
			output.Printf("  Monthly target:    %.2f\n", settings.MonthlyTarget)
			output.Printf("  Max daily loss:    %.2f\n", settings.MaxDailyLoss)
			output.Printf("  Win rate goal:     %.0f%%\n", settings.WinRateGoal)
			output.Printf("  Max trades/day:    %d\n", settings.MaxTradesPerDay)
			output.Println()
			output.Bold("Reminders")
			output.Printf("  Daily:             %v (%s)\n", settings.DailyReminderEnabled, settings.DailyReminderTime)
			output.Printf("  Inactivity:        %v (%d days)\n", settings.InactivityReminderEnabled, settings.InactivityDays)
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var (
		monthlyTarget float64
		maxDailyLoss  float64
		winRateGoal   float64
		maxTrades     int
		dailyEnabled  bool
		dailyTime     string
		inactEnabled  bool
		inactDays     int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		Long:  "Update only the settings whose flags are given; the rest keep their values.",
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

			if cmd.Flags().Changed("monthly-target") {
				settings.MonthlyTarget = monthlyTarget
			}
			if cmd.Flags().Changed("max-daily-loss") {
				settings.MaxDailyLoss = maxDailyLoss
			}
			if cmd.Flags().Changed("win-rate-goal") {
				settings.WinRateGoal = winRateGoal
			}
			if cmd.Flags().Changed("max-trades") {
				settings.MaxTradesPerDay = maxTrades
			}
			if cmd.Flags().Changed("daily-reminder") {
				settings.DailyReminderEnabled = dailyEnabled
			}
			if cmd.Flags().Changed("daily-time") {
				probe := settings
				probe.DailyReminderEnabled = true
				probe.DailyReminderTime = dailyTime
				if _, err := reminder.NextDaily(probe, time.Now()); err != nil {
					return err
				}
				settings.DailyReminderTime = dailyTime
			}
			if cmd.Flags().Changed("inactivity-reminder") {
				settings.InactivityReminderEnabled = inactEnabled
			}
			if cmd.Flags().Changed("inactivity-days") {
				settings.InactivityDays = inactDays
			}

			if err := app.Store.SaveSettings(ctx, &settings); err != nil {
				return err
			}
			output.Success("✓ Settings saved")
			return nil
		},
	}

	cmd.Flags().Float64Var(&monthlyTarget, "monthly-target", 0, "monthly profit target")
	cmd.Flags().Float64Var(&maxDailyLoss, "max-daily-loss", 0, "daily loss limit")
	cmd.Flags().Float64Var(&winRateGoal, "win-rate-goal", 0, "win rate goal percent")
	cmd.Flags().IntVar(&maxTrades, "max-trades", 0, "max trades per day (0 disables)")
	cmd.Flags().BoolVar(&dailyEnabled, "daily-reminder", false, "enable daily reminder")
	cmd.Flags().StringVar(&dailyTime, "daily-time", "", "daily reminder time (HH:MM)")
	cmd.Flags().BoolVar(&inactEnabled, "inactivity-reminder", false, "enable inactivity reminder")
	cmd.Flags().IntVar(&inactDays, "inactivity-days", 0, "days before inactivity nudge")

	return cmd
}

func newSettingsReminderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "Show pending reminders",
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
			next, err := reminder.NextDaily(settings, now)
			if err != nil {
				return err
			}

			// Inactivity is judged against the most recent trade of any status.
			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				UserID: app.UserID(),
				Limit:  1,
			})
			if err != nil {
				return err
			}
			var lastTradeAt time.Time
			if len(trades) > 0 {
				lastTradeAt = trades[0].CreatedAt
			}
			inactive := reminder.InactivityDue(settings, lastTradeAt, now)

			if output.IsJSON() {
				resp := map[string]interface{}{
					"inactivity_due": inactive,
				}
				if !next.IsZero() {
					resp["next_daily"] = next.Format(time.RFC3339)
				}
				return output.JSON(resp)
			}

			if next.IsZero() {
				output.Dim("Daily reminder disabled.")
			} else {
				output.Printf("Next daily reminder: %s\n", FormatDateTime(next))
			}
			if inactive {
				output.Warning("No trades for %d+ days. Time to journal!", settings.InactivityDays)
			}
			return nil
		},
	}
}
