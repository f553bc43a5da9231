// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"time"
)

// FormatDate formats a date for display.
func FormatDate(t time.Time) string {
	return t.Format("02-Jan-2006")
}

// FormatTime formats a timestamp for display.
func FormatTime(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatDateTime formats a full timestamp for display.
func FormatDateTime(t time.Time) string {
	return t.Format("02-Jan-2006 15:04")
}

// TruncateString shortens a string to max characters, appending an ellipsis.
func TruncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
