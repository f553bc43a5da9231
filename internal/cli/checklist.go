// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/betrocker/perfecttrade/internal/checklist"
)

// addChecklistCommands adds confluence checklist commands.
func addChecklistCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Confluence checklist",
		Long:  "Inspect the checklist, score a set of checked items, and manage custom items.",
	}

	cmd.AddCommand(newChecklistShowCmd(app))
	cmd.AddCommand(newChecklistScoreCmd(app))
	cmd.AddCommand(newChecklistCustomCmd(app))

	rootCmd.AddCommand(cmd)
}

func newChecklistShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show all checklist items grouped by timeframe",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			buckets, err := loadBuckets(app)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(buckets)
			}

			for _, bucket := range buckets {
				output.Bold("%s", bucket.Label)
				for _, item := range bucket.Items {
					output.Printf("  %-6s %-45s %s\n",
						item.ID, TruncateString(item.Label, 45), output.DimText(fmt.Sprintf("%.0f", item.Weight)))
				}
				output.Println()
			}
			return nil
		},
	}
}

func newChecklistScoreCmd(app *App) *cobra.Command {
	var checks []string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a set of checked items",
		Long: `Compute the confluence score for the given checked item IDs and show
the per-timeframe breakdown with the score category.`,
		Example: `  perfecttrade checklist score --check w1,w2,d1,d3,4h1,e1,e2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			buckets, err := loadBuckets(app)
			if err != nil {
				return err
			}

			checked := checklist.NewCheckedSet(splitChecks(checks)...)
			score := checklist.OverallScore(buckets, checked)
			cat := checklist.Categorize(score)

			if output.IsJSON() {
				breakdown := make(map[string]float64, len(buckets))
				for _, b := range buckets {
					breakdown[string(b.Timeframe)] = checklist.TimeframeScore(b.Items, checked)
				}
				return output.JSON(map[string]interface{}{
					"score":     score,
					"category":  cat.Label,
					"color":     cat.Color,
					"breakdown": breakdown,
				})
			}

			table := NewTable(output, "Timeframe", "Score")
			for _, b := range buckets {
				table.AddRow(b.Label, strconv.FormatFloat(checklist.TimeframeScore(b.Items, checked), 'f', 0, 64))
			}
			table.Render()
			output.Println()
			output.Bold("Total: %.0f", score)
			output.Printf("Category: %s\n", output.CategoryTag(cat))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&checks, "check", nil, "checked checklist item IDs")
	return cmd
}

func newChecklistCustomCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Manage custom checklist items",
	}

	var (
		label  string
		weight float64
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom checklist item",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Journal == nil {
				return fmt.Errorf("journal store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			item, err := app.Journal.AddCustomItem(ctx, app.UserID(), label, weight)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(item)
			}
			output.Success("✓ Custom item added: %s (%s, weight %.0f)", item.ID, item.Label, item.Weight)
			return nil
		},
	}
	addCmd.Flags().StringVar(&label, "label", "", "item label (required)")
	addCmd.Flags().Float64Var(&weight, "weight", 5, "item weight")
	addCmd.MarkFlagRequired("label")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List custom checklist items",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("journal store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			items, err := app.Store.GetCustomItems(ctx, app.UserID())
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(items)
			}
			if len(items) == 0 {
				output.Info("No custom items.")
				return nil
			}
			table := NewTable(output, "ID", "Label", "Weight", "Added")
			for _, item := range items {
				table.AddRow(item.ID, item.Label, strconv.FormatFloat(item.Weight, 'f', 0, 64), FormatDate(item.CreatedAt))
			}
			table.Render()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a custom checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("journal store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
			defer cancel()

			if err := app.Store.DeleteCustomItem(ctx, args[0], app.UserID()); err != nil {
				return err
			}
			output.Success("✓ Custom item removed: %s", args[0])
			return nil
		},
	})

	return cmd
}

// loadBuckets returns the default buckets plus the user's custom items.
func loadBuckets(app *App) ([]checklist.Bucket, error) {
	if app.Store == nil {
		return checklist.DefaultBuckets(), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	custom, err := app.Store.GetCustomItems(ctx, app.UserID())
	if err != nil {
		return nil, err
	}
	return checklist.WithCustom(custom), nil
}
