// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/betrocker/perfecttrade/internal/checklist"
	"github.com/betrocker/perfecttrade/internal/goals"
	"github.com/betrocker/perfecttrade/internal/journal"
	"github.com/betrocker/perfecttrade/internal/models"
	"github.com/betrocker/perfecttrade/internal/store"
)

const commandTimeout = 30 * time.Second

// addTradeCommands adds trade lifecycle commands.
func addTradeCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade lifecycle management",
		Long:  "Plan trades with a confluence score, close them with an outcome, and review them.",
	}

	cmd.AddCommand(newTradePlanCmd(app))
	cmd.AddCommand(newTradeCloseCmd(app))
	cmd.AddCommand(newTradeEditCmd(app))
	cmd.AddCommand(newTradeDeleteCmd(app))
	cmd.AddCommand(newTradeListCmd(app))
	cmd.AddCommand(newTradeShowCmd(app))

	rootCmd.AddCommand(cmd)
}

func newTradePlanCmd(app *App) *cobra.Command {
	var (
		pair    string
		dir     string
		entry   float64
		stop    float64
		target  float64
		balance float64
		risk    float64
		pips    int
		notes   string
		chart   string
		checks  []string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a new trade",
		Long: `Record a planned trade with its confluence score and position size.

Checklist items are referenced by ID (see 'perfecttrade checklist show').
The trade is blocked when the daily loss limit or trade cap is hit,
unless --force is given.`,
		Example: `  perfecttrade trade plan --pair EUR/USD --direction LONG \
      --entry 1.0850 --stop 1.0820 --pips 30 \
      --check w1,w2,d1,d3,e1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Journal == nil {
				return fmt.Errorf("journal store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if balance == 0 {
				balance = app.Config.Journal.AccountBalance
			}
			if risk == 0 {
				risk = app.Config.Journal.RiskPercentage
			}

			if !force {
				if blocked, reason := checkGoalsBlock(ctx, app); blocked {
					output.Error("%s", reason)
					output.Dim("Use --force to record the trade anyway.")
					return fmt.Errorf("trade blocked by goals")
				}
			}

			custom, err := app.Store.GetCustomItems(ctx, app.UserID())
			if err != nil {
				return err
			}
			buckets := checklist.WithCustom(custom)
			checked := checklist.NewCheckedSet(splitChecks(checks)...)

			var targetPtr *float64
			if target != 0 {
				targetPtr = &target
			}

			trade, err := app.Journal.PlanTrade(ctx, journal.PlanRequest{
				UserID:          app.UserID(),
				CurrencyPair:    strings.ToUpper(pair),
				Direction:       models.TradeDirection(strings.ToUpper(dir)),
				EntryPrice:      entry,
				StopLossPrice:   stop,
				TakeProfitPrice: targetPtr,
				AccountBalance:  balance,
				RiskPercentage:  risk,
				StopLossPips:    pips,
				Notes:           notes,
				ChartImageURL:   chart,
				Buckets:         buckets,
				Checked:         checked,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}

			cat := checklist.Categorize(trade.ConfluenceScore)
			output.Success("✓ Trade planned: %s", trade.ID)
			output.Printf("  Pair:       %s %s\n", trade.CurrencyPair, trade.Direction)
			output.Printf("  Entry/Stop: %.5f / %.5f\n", trade.EntryPrice, trade.StopLossPrice)
			output.Printf("  Position:   %s\n", trade.CalculatedLotSize)
			output.Printf("  Confluence: %.0f (%s)\n", trade.ConfluenceScore, output.CategoryTag(cat))
			return nil
		},
	}

	cmd.Flags().StringVar(&pair, "pair", "", "currency pair, e.g. EUR/USD (required)")
	cmd.Flags().StringVar(&dir, "direction", "", "LONG or SHORT (required)")
	cmd.Flags().Float64Var(&entry, "entry", 0, "entry price (required)")
	cmd.Flags().Float64Var(&stop, "stop", 0, "stop-loss price (required)")
	cmd.Flags().Float64Var(&target, "target", 0, "take-profit price")
	cmd.Flags().Float64Var(&balance, "balance", 0, "account balance (default from config)")
	cmd.Flags().Float64Var(&risk, "risk", 0, "risk percentage (default from config)")
	cmd.Flags().IntVar(&pips, "pips", 0, "stop-loss distance in pips (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "trade notes")
	cmd.Flags().StringVar(&chart, "chart", "", "chart image URL")
	cmd.Flags().StringSliceVar(&checks, "check", nil, "checked checklist item IDs")
	cmd.Flags().BoolVar(&force, "force", false, "bypass goal-based trade blocking")
	cmd.MarkFlagRequired("pair")
	cmd.MarkFlagRequired("direction")
	cmd.MarkFlagRequired("entry")
	cmd.MarkFlagRequired("stop")
	cmd.MarkFlagRequired("pips")

	return cmd
}

func newTradeCloseCmd(app *App) *cobra.Command {
	var (
		pnl      float64
		afterImg string
	)

	cmd := &cobra.Command{
		Use:   "close <trade-id>",
		Short: "Close a trade with its outcome",
		Long: `Record a trade's result. Both the P&L and an after-trade chart image
are required. A trade closes exactly once; closed trades cannot be
edited, only deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Journal == nil {
				return fmt.Errorf("journal store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if !cmd.Flags().Changed("pnl") {
				return fmt.Errorf("--pnl is required to close a trade")
			}

			trade, err := app.Journal.CloseTrade(ctx, args[0], models.TradeOutcome{
				ProfitLoss:         pnl,
				AfterTradeImageURL: afterImg,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade closed: %s", trade.ID)
			output.Printf("  Result: %s\n", output.FormatPnL(trade.PnL()))
			return nil
		},
	}

	cmd.Flags().Float64Var(&pnl, "pnl", 0, "realized profit or loss (required)")
	cmd.Flags().StringVar(&afterImg, "after-image", "", "after-trade chart image URL (required)")
	cmd.MarkFlagRequired("after-image")

	return cmd
}

func newTradeEditCmd(app *App) *cobra.Command {
	var (
		notes  string
		chart  string
		target float64
	)

	cmd := &cobra.Command{
		Use:   "edit <trade-id>",
		Short: "Edit a planned trade",
		Long:  "Update fields of a trade that has not yet closed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Journal == nil {
				return fmt.Errorf("journal store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			var patch models.TradePatch
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if cmd.Flags().Changed("chart") {
				patch.ChartImageURL = &chart
			}
			if cmd.Flags().Changed("target") {
				patch.TakeProfitPrice = &target
			}

			trade, err := app.Journal.UpdatePlanned(ctx, args[0], patch)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}
			output.Success("✓ Trade updated: %s", trade.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "trade notes")
	cmd.Flags().StringVar(&chart, "chart", "", "chart image URL")
	cmd.Flags().Float64Var(&target, "target", 0, "take-profit price")

	return cmd
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Journal == nil {
				return fmt.Errorf("journal store not initialized")
			}
			if !yes {
				output.Warning("Deletion is permanent. Re-run with --yes to confirm.")
				return nil
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if err := app.Journal.DeleteTrade(ctx, args[0]); err != nil {
				return err
			}
			output.Success("✓ Trade deleted: %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

func newTradeListCmd(app *App) *cobra.Command {
	var (
		status string
		pair   string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("journal store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			trades, err := app.Store.GetTrades(ctx, store.TradeFilter{
				UserID: app.UserID(),
				Status: models.TradeStatus(strings.ToUpper(status)),
				Pair:   strings.ToUpper(pair),
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Info("No trades recorded.")
				return nil
			}

			table := NewTable(output, "ID", "Date", "Pair", "Dir", "Score", "Size", "Status", "P&L")
			for _, t := range trades {
				pnl := "-"
				if t.IsClosed() {
					pnl = output.FormatPnL(t.PnL())
				}
				table.AddRow(
					t.ID,
					FormatDate(t.CreatedAt),
					t.CurrencyPair,
					string(t.Direction),
					strconv.FormatFloat(t.ConfluenceScore, 'f', 0, 64),
					t.CalculatedLotSize,
					string(t.Status),
					pnl,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (PLANNED, CLOSED)")
	cmd.Flags().StringVar(&pair, "pair", "", "filter by currency pair")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of trades")

	return cmd
}

func newTradeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show full trade details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("journal store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			trade, err := app.Store.GetTradeByID(ctx, args[0])
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(trade)
			}

			cat := checklist.Categorize(trade.ConfluenceScore)
			output.Bold("Trade %s", trade.ID)
			output.Printf("  Pair:       %s %s\n", trade.CurrencyPair, trade.Direction)
			output.Printf("  Status:     %s\n", trade.Status)
			output.Printf("  Planned:    %s\n", FormatDateTime(trade.CreatedAt))
			output.Printf("  Entry:      %.5f\n", trade.EntryPrice)
			output.Printf("  Stop:       %.5f (%d pips)\n", trade.StopLossPrice, trade.StopLossPips)
			if trade.TakeProfitPrice != nil {
				output.Printf("  Target:     %.5f\n", *trade.TakeProfitPrice)
			}
			output.Printf("  Position:   %s\n", trade.CalculatedLotSize)
			output.Printf("  Confluence: %.0f (%s)\n", trade.ConfluenceScore, output.CategoryTag(cat))
			if trade.IsClosed() {
				output.Printf("  Result:     %s\n", output.FormatPnL(trade.PnL()))
			}
			if trade.Notes != "" {
				output.Println()
				output.Bold("Notes")
				output.Printf("  %s\n", trade.Notes)
			}
			if len(trade.ConfluenceData.Items) > 0 {
				output.Println()
				output.Bold("Checked confluences")
				for _, item := range trade.ConfluenceData.Items {
					if item.Checked {
						output.Printf("  %s %s (%s, %.0f)\n", output.Checkbox(true), item.Label, item.Timeframe, item.Weight)
					}
				}
			}
			return nil
		},
	}
}

// checkGoalsBlock evaluates the daily guardrails before planning a trade.
func checkGoalsBlock(ctx context.Context, app *App) (bool, string) {
	settings, err := app.Journal.Settings(ctx, app.UserID())
	if err != nil {
		return false, ""
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
		return false, ""
	}
	todayTrades, err := app.Store.GetTrades(ctx, store.TradeFilter{
		UserID:    app.UserID(),
		StartDate: day.Start,
		EndDate:   day.End,
	})
	if err != nil {
		return false, ""
	}

	progress := goals.Compute(settings, monthTrades, todayTrades, now)
	return goals.BlockReason(progress)
}

// splitChecks accepts both repeated --check flags and comma-joined lists.
func splitChecks(checks []string) []string {
	var ids []string
	for _, c := range checks {
		for _, id := range strings.Split(c, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
