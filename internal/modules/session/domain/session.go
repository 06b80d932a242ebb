package domain

import "time"

type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusBreak
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusBreak:
		return "break"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Active reports whether the session still counts as in progress for
// background reminders.
func (s Status) Active() bool {
	return s == StatusRunning
}

// InteractionEntry is one answered prompt. JSON names match the stored
// lastSessionLog format.
type InteractionEntry struct {
	AtElapsedSec  int    `json:"time"`
	PromptID      string `json:"question"`
	ResponseValue string `json:"response"`
	TimestampISO  string `json:"timestamp"`
}

// Display holds the orthogonal presentation flags of a running session.
// Prompt is nil when no interaction prompt is on screen.
type Display struct {
	BuddyFaded bool
	CheckIn    string
	Prompt     *Prompt
}

// Totals is the persisted aggregate progress.
type Totals struct {
	TotalFocusTimeSec  int
	CurrentStreakCount int
	LastSessionDate    time.Time
}

// Outcome is the result of finalizing a session.
type Outcome struct {
	ElapsedSec   int
	TotalTimeSec int
	NewStreak    int
}

// Persisted key names, stored under the configured prefix.
const (
	KeyTotalFocusTime  = "totalFocusTime"
	KeyCurrentStreak   = "currentStreak"
	KeyLastSessionLog  = "lastSessionLog"
	KeyLastSessionDate = "lastSessionDate"
	KeySelectedAge     = "selectedAge"
	KeySelectedBuddy   = "selectedBuddy"
	KeySpeechSettings  = "speechSettings"
	KeyLastNotifAction = "lastNotifAction"
	KeyFeedbackHistory = "feedbackHistory"
	KeyCalmStreak      = "calmStreak"
	KeyLastCalmSession = "lastCalmSession"
	KeyLastCalmLog     = "lastCalmLog"
)

// FeedbackHistoryLimit caps the stored "what helped" answers.
const FeedbackHistoryLimit = 30

// FeedbackEntry is one "what helped you today" answer, stored in
// feedbackHistory.
type FeedbackEntry struct {
	WhatWorked   []string `json:"whatWorked"`
	SessionSec   int      `json:"sessionTime"`
	Age          string   `json:"ageGroup"`
	TimestampISO string   `json:"timestamp"`
}
