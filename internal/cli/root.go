// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/betrocker/perfecttrade/internal/config"
	"github.com/betrocker/perfecttrade/internal/journal"
	"github.com/betrocker/perfecttrade/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-08-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Store   store.DataStore
	Journal *journal.Service
}

// UserID returns the configured journal owner.
func (a *App) UserID() string {
	return a.Config.Journal.UserID
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	dataStore, err := store.NewSQLiteStore(cfg.Journal.DatabasePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize store, journal features unavailable")
	} else {
		app.Store = dataStore
		app.Journal = journal.NewService(dataStore, logger)
		logger.Debug().Str("path", cfg.Journal.DatabasePath).Msg("SQLite store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "perfecttrade",
		Short: "PerfectTrade - confluence checklist trading journal",
		Long: `PerfectTrade is a trading journal built around a weighted confluence
checklist. Score a setup across timeframes before entering, record the
plan with its position size, then close the trade with its outcome and
review your statistics.

Use 'perfecttrade help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/perfecttrade)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addChecklistCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addDashboardCommands(rootCmd, app)
	addGoalsCommands(rootCmd, app)
	addSettingsCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("PerfectTrade v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Journal")
	output.Printf("  Database:        %s\n", cfg.Journal.DatabasePath)
	output.Printf("  User:            %s\n", cfg.Journal.UserID)
	output.Printf("  Balance:         %.2f\n", cfg.Journal.AccountBalance)
	output.Printf("  Risk per trade:  %.2f%%\n", cfg.Journal.RiskPercentage)
	output.Println()

	output.Bold("Goals")
	output.Printf("  Monthly target:  %.2f\n", cfg.Goals.MonthlyTarget)
	output.Printf("  Max daily loss:  %.2f\n", cfg.Goals.MaxDailyLoss)
	output.Printf("  Win rate goal:   %.0f%%\n", cfg.Goals.WinRateGoal)
	output.Printf("  Trades per day:  %d\n", cfg.Goals.MaxTradesPerDay)
	output.Println()

	output.Bold("Reminders")
	output.Printf("  Daily:           %v (%s)\n", cfg.Reminder.DailyEnabled, cfg.Reminder.DailyTime)
	output.Printf("  Inactivity:      %v (%d days)\n", cfg.Reminder.InactivityEnabled, cfg.Reminder.InactivityDays)
}
