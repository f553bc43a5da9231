// Package config provides configuration management for the trading journal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Journal  JournalConfig  `mapstructure:"journal"`
	Goals    GoalsConfig    `mapstructure:"goals"`
	UI       UIConfig       `mapstructure:"ui"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Log      LogConfig      `mapstructure:"log"`
}

// JournalConfig holds journal-related configuration.
type JournalConfig struct {
	DatabasePath   string  `mapstructure:"database_path"`
	UserID         string  `mapstructure:"user_id"`
	AccountBalance float64 `mapstructure:"account_balance"`
	RiskPercentage float64 `mapstructure:"risk_percentage"`
}

// GoalsConfig holds default goal settings applied to new users.
type GoalsConfig struct {
	MonthlyTarget   float64 `mapstructure:"monthly_target"`
	MaxDailyLoss    float64 `mapstructure:"max_daily_loss"`
	WinRateGoal     float64 `mapstructure:"win_rate_goal"`
	MaxTradesPerDay int     `mapstructure:"max_trades_per_day"`
}

// UIConfig holds terminal output configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// ReminderConfig holds journaling reminder configuration.
type ReminderConfig struct {
	DailyEnabled      bool   `mapstructure:"daily_enabled"`
	DailyTime         string `mapstructure:"daily_time"` // HH:MM
	InactivityEnabled bool   `mapstructure:"inactivity_enabled"`
	InactivityDays    int    `mapstructure:"inactivity_days"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/perfecttrade"
	}
	return filepath.Join(home, ".config", "perfecttrade")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyDefaults(cfg, configDir)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template
			return createTemplateConfig(configDir, name)
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyDefaults(cfg *Config, configDir string) {
	if cfg.Journal.DatabasePath == "" {
		cfg.Journal.DatabasePath = filepath.Join(configDir, "journal.db")
	}
	if cfg.Journal.UserID == "" {
		cfg.Journal.UserID = "default"
	}
	if cfg.UI.DateFormat == "" {
		cfg.UI.DateFormat = "02-Jan-2006"
	}
	if cfg.UI.TimeFormat == "" {
		cfg.UI.TimeFormat = "15:04:05"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.FilePath == "" {
		cfg.Log.FilePath = filepath.Join(configDir, "logs", "perfecttrade.log")
	}
	if cfg.Log.MaxSize == 0 {
		cfg.Log.MaxSize = 100
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 7
	}
	if cfg.Log.MaxAge == 0 {
		cfg.Log.MaxAge = 30
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PERFECTTRADE_DB"); v != "" {
		cfg.Journal.DatabasePath = v
	}
	if v := os.Getenv("PERFECTTRADE_USER"); v != "" {
		cfg.Journal.UserID = v
	}
	if v := os.Getenv("PERFECTTRADE_BALANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Journal.AccountBalance = f
		}
	}
	if v := os.Getenv("PERFECTTRADE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Journal.RiskPercentage < 0 || c.Journal.RiskPercentage > 100 {
		return fmt.Errorf("risk_percentage must be between 0 and 100")
	}
	if c.Journal.AccountBalance < 0 {
		return fmt.Errorf("account_balance must be non-negative")
	}
	if c.Goals.WinRateGoal < 0 || c.Goals.WinRateGoal > 100 {
		return fmt.Errorf("win_rate_goal must be between 0 and 100")
	}
	if c.Goals.MaxTradesPerDay < 0 {
		return fmt.Errorf("max_trades_per_day must be non-negative")
	}
	if c.Reminder.InactivityDays < 0 {
		return fmt.Errorf("inactivity_days must be non-negative")
	}
	return nil
}
