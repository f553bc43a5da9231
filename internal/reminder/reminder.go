// Package reminder computes when journaling nudges are due from the user's
// settings. It performs no scheduling itself; callers decide how to deliver
// a due reminder.
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/betrocker/perfecttrade/internal/errors"
	"github.com/betrocker/perfecttrade/internal/models"
)

// NextDaily returns the next occurrence of the daily reminder after now,
// in now's location. Returns the zero time when the daily reminder is
// disabled.
func NextDaily(settings models.UserSettings, now time.Time) (time.Time, error) {
	if !settings.DailyReminderEnabled {
		return time.Time{}, nil
	}
	hour, minute, err := parseClock(settings.DailyReminderTime)
	if err != nil {
		return time.Time{}, err
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}

// InactivityDue reports whether the inactivity nudge should fire: the user
// has it enabled and their last trade is older than the configured number
// of days. A user with no trades at all is never nudged.
func InactivityDue(settings models.UserSettings, lastTradeAt time.Time, now time.Time) bool {
	if !settings.InactivityReminderEnabled || settings.InactivityDays <= 0 {
		return false
	}
	if lastTradeAt.IsZero() {
		return false
	}
	cutoff := now.AddDate(0, 0, -settings.InactivityDays)
	return lastTradeAt.Before(cutoff)
}

// parseClock parses "HH:MM" in 24-hour form.
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, errors.NewValidationError("reminder_time", s, "must be HH:MM")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, errors.NewValidationError("reminder_time", s, fmt.Sprintf("invalid hour %q", parts[0]))
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, errors.NewValidationError("reminder_time", s, fmt.Sprintf("invalid minute %q", parts[1]))
	}
	return hour, minute, nil
}
