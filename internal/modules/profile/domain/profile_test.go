package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/modules/profile/domain"
	"studybuddy/internal/platform/random"
)

func TestResolveFallsBackToElementary(t *testing.T) {
	t.Parallel()
	want := domain.Resolve("elementary")
	for _, key := range []string{"", "toddler", "ELEMENTARYX", "adult", "  "} {
		if diff := cmp.Diff(want, domain.Resolve(key)); diff != "" {
			t.Fatalf("resolve(%q) mismatch (-want +got):\n%s", key, diff)
		}
	}
}

func TestResolveIsFullyPopulated(t *testing.T) {
	t.Parallel()
	for _, key := range domain.Ages() {
		p := domain.Resolve(string(key))
		assert.Equal(t, key, p.Key)
		assert.Positive(t, p.Session.DefaultDurationSec, key)
		assert.Positive(t, p.Session.BreakDurationSec, key)
		assert.GreaterOrEqual(t, p.Session.MaxDurationSec, p.Session.DefaultDurationSec, key)
		assert.Positive(t, p.Cadence.CheckInFrequencyMin, key)
		assert.Greater(t, p.Cadence.InteractionFrequencyMin, p.Cadence.CheckInFrequencyMin, key)
		assert.Positive(t, p.Voice.Pitch, key)
		assert.Positive(t, p.Voice.Rate, key)
		assert.Len(t, p.Content.CheckInMessages, 5, key)
		assert.NotEmpty(t, p.Content.StartMessage, key)
		assert.NotEmpty(t, p.Content.Break.ResumeText, key)
		assert.NotEmpty(t, p.Content.StartButtonText, key)
		assert.Less(t, p.Gate.MinNumber, p.Gate.MaxNumber, key)
		assert.NotEmpty(t, p.Theme.Primary, key)
	}
}

func TestResolveElementaryValues(t *testing.T) {
	t.Parallel()
	p := domain.Resolve("elementary")
	assert.Equal(t, domain.SessionDefaults{DefaultDurationSec: 900, BreakDurationSec: 300, MaxDurationSec: 1800}, p.Session)
	assert.Equal(t, domain.Cadence{CheckInFrequencyMin: 5, InteractionFrequencyMin: 20}, p.Cadence)
	assert.Equal(t, "Start Studying! 📚", p.Content.StartButtonText)
	assert.Equal(t, "Welcome back! Ready to continue?", p.Content.WelcomeBackMessage)
}

func TestContentIsSharedByDescriptor(t *testing.T) {
	t.Parallel()
	elementary := domain.Resolve("elementary")
	tween := domain.Resolve("tween")
	// both carry the medium encouragement level
	assert.Equal(t, elementary.Content.CheckInMessages, tween.Content.CheckInMessages)
	assert.NotEqual(t, elementary.Content.Labels, tween.Content.Labels)
}

func TestResolveReturnsPrivateCopy(t *testing.T) {
	t.Parallel()
	p := domain.Resolve("young")
	p.Content.CheckInMessages[0] = "mutated"
	assert.NotEqual(t, "mutated", domain.Resolve("young").Content.CheckInMessages[0])
}

func TestSubjectsForAge(t *testing.T) {
	t.Parallel()
	ids := func(list []domain.Subject) []string {
		out := make([]string, 0, len(list))
		for _, s := range list {
			out = append(out, s.ID)
		}
		return out
	}
	assert.Equal(t, []string{"math", "reading", "writing", "other"}, ids(domain.SubjectsForAge("young")))
	assert.Equal(t, []string{"math", "reading", "writing", "science", "history", "geography", "other"}, ids(domain.SubjectsForAge("tween")))
	assert.Len(t, domain.SubjectsForAge("teen"), 9)
	assert.Equal(t, ids(domain.SubjectsForAge("elementary")), ids(domain.SubjectsForAge("unknown")))
}

func TestSubjectCheckInsFallBackToOther(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.SubjectCheckIns("other"), domain.SubjectCheckIns("underwater-basket-weaving"))
	assert.Contains(t, domain.SubjectCheckIns("math"), "Show your work!")
	_, ok := domain.LookupSubject("nope")
	assert.False(t, ok)
}

func TestTeacherFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Professor Numbers", domain.TeacherFor("math").Name)
	assert.Equal(t, "en-GB", domain.TeacherFor("english").Language)
	assert.Equal(t, "Study Buddy", domain.TeacherFor("reading").Name)
}

func TestPersonalizedMessageQuirks(t *testing.T) {
	t.Parallel()
	teacher := domain.TeacherFor("math")

	plain := teacher.PersonalizedMessage(domain.PhraseEncouragement, &random.Scripted{Ints: []int{0}, Floats: []float64{0.5}})
	assert.Equal(t, "Excellent calculation!", plain)

	thinking := teacher.PersonalizedMessage(domain.PhraseEncouragement, &random.Scripted{Ints: []int{0}, Floats: []float64{0.1, 0.2}})
	assert.Equal(t, "Hmm... Excellent calculation!", thinking)

	favourite := teacher.PersonalizedMessage(domain.PhraseCelebration, &random.Scripted{Ints: []int{1}, Floats: []float64{0.1, 0.7}})
	assert.Equal(t, "You've solved it perfectly! Let's calculate this step by step!", favourite)
}

func TestGenerateGate(t *testing.T) {
	t.Parallel()
	spec := domain.Resolve("young").Gate
	g := domain.GenerateGate(spec, &random.Scripted{Ints: []int{2, 6}})
	assert.Equal(t, "What's 3 + 7?", g.Question)
	assert.Equal(t, "10", g.Answer)

	src := random.NewSeeded(42)
	for range 200 {
		g := domain.GenerateGate(domain.Resolve("teen").Gate, src)
		require.NotEmpty(t, g.Answer)
	}
}

func TestMilestone(t *testing.T) {
	t.Parallel()
	msg, ok := domain.Milestone(domain.AgeTween, 600)
	require.True(t, ok)
	assert.Equal(t, "🔥 10 minutes! Crushing it!", msg)

	_, ok = domain.Milestone(domain.AgeTween, 601)
	assert.False(t, ok)
	_, ok = domain.Milestone(domain.AgeTween, 0)
	assert.False(t, ok)
}

func TestBuddyFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Blaze", domain.BuddyFor("tween", "dragon").Name)
	assert.Equal(t, "Whiskers", domain.BuddyFor("elementary", "dragon").Name)
	assert.Len(t, domain.BuddiesForAge("nobody"), 3)
}

func TestQualityFor(t *testing.T) {
	t.Parallel()
	cases := []struct {
		elapsed int
		want    domain.TimeQuality
	}{
		{0, domain.QualityOkay},
		{899, domain.QualityOkay},
		{900, domain.QualityGood},
		{1799, domain.QualityGood},
		{1800, domain.QualityExcellent},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.QualityFor(tc.elapsed), "elapsed %d", tc.elapsed)
	}
}

func TestBadgeFor(t *testing.T) {
	t.Parallel()
	cases := []struct {
		age     domain.AgeKey
		elapsed int
		want    domain.Badge
	}{
		{domain.AgeYoung, 600, domain.BadgeTrophy},
		{domain.AgeYoung, 300, domain.BadgeGold},
		{domain.AgeYoung, 180, domain.BadgeSilver},
		{domain.AgeYoung, 179, domain.BadgeBronze},
		{domain.AgeElementary, 1200, domain.BadgeTrophy},
		{domain.AgeElementary, 1199, domain.BadgeGold},
		{domain.AgeElementary, 300, domain.BadgeSilver},
		{domain.AgeTween, 900, domain.BadgeGold},
		{domain.AgeTween, 599, domain.BadgeBronze},
		{domain.AgeTeen, 1800, domain.BadgeTrophy},
		{domain.AgeTeen, 1200, domain.BadgeGold},
		{domain.AgeTeen, 900, domain.BadgeSilver},
		{domain.AgeTeen, 600, domain.BadgeBronze},
		{domain.AgeKey("adult"), 600, domain.BadgeGold},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.BadgeFor(tc.age, tc.elapsed), "%s at %ds", tc.age, tc.elapsed)
	}
}

func TestCelebrationCopyByQuality(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Incredible focus! You crushed it!", domain.CelebrationMessage(domain.AgeTween, domain.QualityExcellent))
	assert.Equal(t, "Good work. Consistency is key.", domain.EncouragementMessage(domain.AgeTeen, domain.QualityOkay))
	assert.Equal(t, "Great job! You're building strong study habits!",
		domain.CelebrationMessage(domain.AgeKey("adult"), domain.QualityGood))
	for _, age := range domain.Ages() {
		for _, q := range []domain.TimeQuality{domain.QualityExcellent, domain.QualityGood, domain.QualityOkay} {
			assert.NotEmpty(t, domain.CelebrationMessage(age, q))
			assert.NotEmpty(t, domain.EncouragementMessage(age, q))
		}
	}
	_, ok := domain.LookupHelper("checkins")
	assert.True(t, ok)
	_, ok = domain.LookupHelper("snacks")
	assert.False(t, ok)
}
