package models

import "time"

// UserSettings holds per-user goal configuration read by the goals
// component and mutated by the settings surface.
type UserSettings struct {
	ID                        string
	UserID                    string
	MonthlyTarget             float64
	MaxDailyLoss              float64
	WinRateGoal               float64 // 0-100
	MaxTradesPerDay           int
	DailyReminderEnabled      bool
	DailyReminderTime         string // "HH:MM"
	InactivityReminderEnabled bool
	InactivityDays            int
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// DefaultSettings returns the settings applied to a user with no saved row.
func DefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:               userID,
		MonthlyTarget:        1000,
		MaxDailyLoss:         100,
		WinRateGoal:          60,
		MaxTradesPerDay:      3,
		DailyReminderEnabled: false,
		DailyReminderTime:    "18:00",
		InactivityDays:       3,
	}
}
