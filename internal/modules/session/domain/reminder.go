package domain

import (
	"strings"
	"time"
)

const (
	ReminderTitle   = "Study Buddy"
	CategoryCheckIn = "checkin-actions"
)

// Notification is the content of a local reminder.
type Notification struct {
	Title      string
	Body       string
	CategoryID string
}

// ScheduledReminder is a reminder handed to the notification system while
// the app is in the background.
type ScheduledReminder struct {
	ID            string
	FireOffsetSec int
	PayloadText   string
}

// ReminderOffsets spaces count reminders one check-in interval apart, never
// sooner than floor.
func ReminderOffsets(count int, interval, floor time.Duration) []time.Duration {
	out := make([]time.Duration, 0, count)
	for i := 1; i <= count; i++ {
		d := time.Duration(i) * interval
		if d < floor {
			d = floor
		}
		out = append(out, d.Truncate(time.Second))
	}
	return out
}

// Action is a notification button identifier.
type Action string

const (
	ActionResume Action = "RESUME"
	ActionBreak  Action = "BREAK"
	ActionDone   Action = "DONE"
)

// ParseAction accepts the stored identifier, ignoring case and blanks.
func ParseAction(raw string) (Action, bool) {
	switch a := Action(strings.ToUpper(strings.TrimSpace(raw))); a {
	case ActionResume, ActionBreak, ActionDone:
		return a, true
	default:
		return "", false
	}
}
