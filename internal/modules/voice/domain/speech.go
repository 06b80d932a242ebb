package domain

import (
	"regexp"
	"strings"

	"studybuddy/internal/modules/voice/dto"
)

// ExcitedPitchBump is added to the pitch of surprise announcements.
const ExcitedPitchBump = 0.1

var (
	notSpeakable = regexp.MustCompile(`[^\w\s]`)
	spaces       = regexp.MustCompile(`\s+`)
)

// Speakable strips emoji and punctuation so engines do not read them aloud.
func Speakable(text string) string {
	out := notSpeakable.ReplaceAllString(text, "")
	return strings.TrimSpace(spaces.ReplaceAllString(out, " "))
}

// ScreenEnabled reports the learner's toggle for a screen. Unknown screens
// count as the main screen.
func ScreenEnabled(s dto.Settings, screen dto.Screen) bool {
	switch screen {
	case dto.ScreenCalm:
		return s.CalmModeEnabled
	case dto.ScreenCelebration:
		return s.CelebrationEnabled
	default:
		return s.MainScreenEnabled
	}
}

// Multiplier treats an unset value as neutral.
func Multiplier(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
