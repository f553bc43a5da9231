package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# PerfectTrade Journal Configuration

[journal]
# Path to the SQLite journal database (defaults to the config directory)
database_path = ""
# Journal owner identifier
user_id = "default"
# Default account balance for position sizing
account_balance = 10000.0
# Default risk per trade as percentage of balance
risk_percentage = 1.0

[goals]
# Monthly profit target in USD
monthly_target = 1000.0
# Maximum acceptable loss per day in USD
max_daily_loss = 200.0
# Target win rate percentage
win_rate_goal = 60.0
# Maximum trades per day (0 disables the cap)
max_trades_per_day = 5

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"
# Time format
time_format = "15:04:05"

[reminder]
# Daily journaling reminder
daily_enabled = false
daily_time = "18:00"
# Nudge after this many days without a trade (0 disables)
inactivity_enabled = false
inactivity_days = 3

[log]
# Log level: debug, info, warn, error
level = "info"
# Write logs to the console
console = false
# Write logs to a rotating file
file = true
# Log file path (defaults to the config directory)
file_path = ""
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return fmt.Errorf("config file not found, created template at %s", path)
}
