package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studybuddy/internal/modules/calm/domain"
	profile "studybuddy/internal/modules/profile/domain"
)

func TestBreathPromptEveryThirdBreath(t *testing.T) {
	t.Parallel()
	cases := []struct {
		age    profile.AgeKey
		breath int
		want   string
		ok     bool
	}{
		{profile.AgeElementary, 0, "", false},
		{profile.AgeElementary, 1, "", false},
		{profile.AgeElementary, 2, "", false},
		{profile.AgeElementary, 3, "Feel calmer", true},
		{profile.AgeElementary, 6, "Nice and slow", true},
		{profile.AgeTeen, 9, "Focus", true},
		{profile.AgeYoung, 12, "Big breath in... and out...", true},
		{profile.AgeKey("adult"), 3, "Feel calmer", true},
	}
	for _, tc := range cases {
		got, ok := domain.BreathPrompt(tc.age, tc.breath)
		assert.Equal(t, tc.ok, ok, "%s breath %d", tc.age, tc.breath)
		assert.Equal(t, tc.want, got, "%s breath %d", tc.age, tc.breath)
	}
}

func TestCalmCopyFallsBackToElementary(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Time to calm down. Breathe with me.", domain.IntroMessage("adult"))
	assert.Equal(t, "Let's reset. Deep breaths.", domain.IntroMessage(profile.AgeTween))
	assert.Equal(t, "Well done. Ready to tell someone you're good?", domain.FinishMessage(profile.AgeTeen))
	assert.Equal(t, domain.PhaseInhale, domain.PhaseAfter(0))
	assert.Equal(t, domain.PhaseExhale, domain.PhaseAfter(1))
}
