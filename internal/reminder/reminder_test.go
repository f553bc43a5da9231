package reminder

import (
	"testing"
	"time"

	"github.com/betrocker/perfecttrade/internal/models"
)

func enabledSettings(at string) models.UserSettings {
	return models.UserSettings{
		UserID:               "u1",
		DailyReminderEnabled: true,
		DailyReminderTime:    at,
	}
}

func TestNextDaily(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	t.Run("later today", func(t *testing.T) {
		next, err := NextDaily(enabledSettings("18:00"), now)
		if err != nil {
			t.Fatalf("NextDaily error: %v", err)
		}
		want := time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("next = %v, want %v", next, want)
		}
	})

	t.Run("already passed rolls to tomorrow", func(t *testing.T) {
		next, err := NextDaily(enabledSettings("08:30"), now)
		if err != nil {
			t.Fatalf("NextDaily error: %v", err)
		}
		want := time.Date(2026, 3, 6, 8, 30, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("next = %v, want %v", next, want)
		}
	})

	t.Run("exactly now rolls to tomorrow", func(t *testing.T) {
		next, err := NextDaily(enabledSettings("12:00"), now)
		if err != nil {
			t.Fatalf("NextDaily error: %v", err)
		}
		if !next.Equal(now.AddDate(0, 0, 1)) {
			t.Errorf("next = %v, want tomorrow noon", next)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		s := enabledSettings("18:00")
		s.DailyReminderEnabled = false
		next, err := NextDaily(s, now)
		if err != nil {
			t.Fatalf("NextDaily error: %v", err)
		}
		if !next.IsZero() {
			t.Errorf("disabled reminder produced %v", next)
		}
	})
}

func TestNextDailyInvalidTime(t *testing.T) {
	now := time.Now()
	for _, bad := range []string{"", "25:00", "12:60", "noon", "1200", "-1:30"} {
		if _, err := NextDaily(enabledSettings(bad), now); err == nil {
			t.Errorf("NextDaily(%q) accepted invalid time", bad)
		}
	}
}

func TestInactivityDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := models.UserSettings{
		UserID:                    "u1",
		InactivityReminderEnabled: true,
		InactivityDays:            3,
	}

	testCases := []struct {
		name        string
		lastTradeAt time.Time
		want        bool
	}{
		{"recent trade", now.AddDate(0, 0, -1), false},
		{"exactly at threshold", now.AddDate(0, 0, -3), false},
		{"past threshold", now.AddDate(0, 0, -4), true},
		{"never traded", time.Time{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InactivityDue(s, tc.lastTradeAt, now); got != tc.want {
				t.Errorf("InactivityDue = %v, want %v", got, tc.want)
			}
		})
	}

	t.Run("disabled", func(t *testing.T) {
		off := s
		off.InactivityReminderEnabled = false
		if InactivityDue(off, now.AddDate(0, 0, -10), now) {
			t.Error("disabled reminder must not fire")
		}
	})
}
