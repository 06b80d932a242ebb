package dto

import "time"

type StartInput struct {
	SubjectID string
	// Age overrides the stored age group when set.
	Age          string
	WorkMinutes  int
	BreakMinutes int
}

type ThemeOutput struct {
	Name  string
	Emoji string
	Color string
}

type StartOutput struct {
	SessionID     string
	SubjectID     string
	SubjectLabel  string
	Age           string
	Status        string
	Resumed       bool
	WorkSec       int
	BreakSec      int
	StartMessage  string
	MysteryMonday string
	Season        ThemeOutput
}

type BreakOutput struct {
	Title      string
	Message    string
	ResumeText string
	BreakSec   int
}

type OptionOutput struct {
	Label string
	Value string
}

type PromptOutput struct {
	ID      string
	Text    string
	Options []OptionOutput
}

type RespondInput struct {
	PromptID string
	Value    string
}

type InteractionOutput struct {
	AtElapsedSec  int
	PromptID      string
	ResponseValue string
	Timestamp     string
}

type RespondOutput struct {
	Entry    InteractionOutput
	Answered bool
	NeedHelp bool
	// Feedback is the encouragement or, for help requests, the parent notice.
	Feedback string
}

type EndOutput struct {
	SessionID         string
	ElapsedSec        int
	TotalTimeSec      int
	NewStreak         int
	CompletionMessage string
	Celebration       string
	// Quality is excellent, good or okay by focused time.
	Quality       string
	Badge         string
	BadgeEmoji    string
	Encouragement string
	ReportPath    string
}

type FeedbackInput struct {
	WhatWorked []string
}

type FeedbackOutput struct {
	WhatWorked []string
	// Stored is the number of answers kept after this one.
	Stored int
}

type ReminderOutput struct {
	ID            string
	FireOffsetSec int
	PayloadText   string
}

type AppStateOutput struct {
	Reminders   []ReminderOutput
	Cancelled   int
	Action      string
	WelcomeBack string
}

type SnapshotOutput struct {
	SessionID    string
	Status       string
	SubjectID    string
	SubjectLabel string
	Age          string
	ElapsedSec   int
	WorkSec      int
	BuddyFaded   bool
	CheckIn      string
	Prompt       *PromptOutput
	Interactions []InteractionOutput
}

type ProgressOutput struct {
	TotalFocusTimeSec int
	CurrentStreak     int
	CalmStreak        int
	LastSessionDate   time.Time
	LastSessionLog    []InteractionOutput
	FeedbackCount     int
}

type SpeechSettingsInput struct {
	MainScreenEnabled  *bool
	CalmModeEnabled    *bool
	CelebrationEnabled *bool
	Rate               *float64
	Pitch              *float64
}

type SettingsOutput struct {
	Age                string
	BuddyID            string
	BuddyName          string
	MainScreenEnabled  bool
	CalmModeEnabled    bool
	CelebrationEnabled bool
	Rate               float64
	Pitch              float64
}

// Event is a session event as seen by front ends.
type Event struct {
	Kind       string
	SessionID  string
	At         time.Time
	ElapsedSec int
	Title      string
	Text       string
	Emoji      string
	Prompt     *PromptOutput
	Outcome    *EndOutput
}
