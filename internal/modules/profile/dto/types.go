package dto

import "time"

type ThemeOutput struct {
	Primary    string
	Secondary  string
	Accent     string
	Background string
}

type ProfileOutput struct {
	Age                 string
	DisplayRange        string
	SessionMinutes      int
	BreakMinutes        int
	MaxMinutes          int
	CheckInEveryMin     int
	InteractionEveryMin int
	VoicePitch          float64
	VoiceRate           float64
	StartButtonText     string
	BreakButtonText     string
	EndButtonText       string
	StreakLabel         string
	StatsLabel          string
	Theme               ThemeOutput
}

type SubjectOutput struct {
	ID         string
	Label      string
	Emoji      string
	Category   string
	Difficulty string
}

type BuddyOutput struct {
	ID    string
	Name  string
	Emoji string
	Color string
}

type GateChallengeOutput struct {
	Question string
}

type GateSubmitOutput struct {
	Passed       bool
	Locked       bool
	AttemptsLeft int
	LockedFor    time.Duration
}
