package domain

import (
	"time"

	profile "studybuddy/internal/modules/profile/domain"
)

// PromptEvery is the number of breaths between spoken prompts.
const PromptEvery = 3

// Calm speech is lower and slower than the age voice.
const (
	PitchShift      = -0.2
	IntroRateShift  = -0.1
	PromptRateShift = -0.3
	ReadyTitle      = "Feeling Better?"
	ReadyText       = "You've been calming for 5 minutes. Ready to stop?"
	FinishTitle     = "Great Job! 🌟"
)

type EventKind string

const (
	EventStarted  EventKind = "calm_started"
	EventBreath   EventKind = "breath"
	EventPrompt   EventKind = "breath_prompt"
	EventReady    EventKind = "calm_ready"
	EventFinished EventKind = "calm_finished"
)

type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseExhale Phase = "exhale"
)

// PhaseAfter is the phase shown once breaths cycles have completed.
func PhaseAfter(breaths int) Phase {
	if breaths%2 == 0 {
		return PhaseInhale
	}
	return PhaseExhale
}

type ageCopy struct {
	intro   string
	prompts []string
	finish  string
}

var copyByAge = map[profile.AgeKey]ageCopy{
	profile.AgeYoung: {
		intro:   "Let's take some big breaths together. You're safe.",
		prompts: []string{"Big breath in... and out...", "You're doing great", "Nice and slow", "Feel better"},
		finish:  "You did amazing at calming down! Want to tell someone you're ready?",
	},
	profile.AgeElementary: {
		intro:   "Time to calm down. Breathe with me.",
		prompts: []string{"In... and out...", "You're doing great", "Nice and slow", "Feel calmer"},
		finish:  "You did great at calming down. Want to tell someone you're ready?",
	},
	profile.AgeTween: {
		intro:   "Let's reset. Deep breaths.",
		prompts: []string{"Breathe in... breathe out...", "Good", "Stay calm", "Reset"},
		finish:  "Good work calming down. Want to let someone know you're ready?",
	},
	profile.AgeTeen: {
		intro:   "Breathing exercise. Follow the circle.",
		prompts: []string{"In... out...", "Focus", "Steady", "Center"},
		finish:  "Well done. Ready to tell someone you're good?",
	},
}

func lookup(key profile.AgeKey) ageCopy {
	if c, ok := copyByAge[key]; ok {
		return c
	}
	return copyByAge[profile.DefaultAge]
}

func IntroMessage(key profile.AgeKey) string  { return lookup(key).intro }
func FinishMessage(key profile.AgeKey) string { return lookup(key).finish }

// BreathPrompt is the guidance spoken after the given breath, on every
// PromptEvery-th breath only.
func BreathPrompt(key profile.AgeKey, breath int) (string, bool) {
	if breath <= 0 || breath%PromptEvery != 0 {
		return "", false
	}
	prompts := lookup(key).prompts
	return prompts[breath%len(prompts)], true
}

// Log is the record of one finished calm session, stored as lastCalmLog.
type Log struct {
	DurationSec int
	BreathCount int
	At          time.Time
}
