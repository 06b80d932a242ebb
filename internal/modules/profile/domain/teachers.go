package domain

import "studybuddy/internal/platform/random"

const (
	PhraseEncouragement = "encouragement"
	PhraseCelebration   = "celebration"
)

// TeacherVoice is a subject persona layered over the age profile's voice.
type TeacherVoice struct {
	Name            string
	PitchMultiplier float64
	RateMultiplier  float64
	Language        string
	Personality     string
	FavoritePhrase  string
	ThinkingSound   string
	Encouragement   []string
	Celebration     []string
}

var teacherVoices = map[string]TeacherVoice{
	"math": {
		Name: "Professor Numbers", PitchMultiplier: 0.8, RateMultiplier: 0.9, Language: "en-US", Personality: "precise",
		FavoritePhrase: "Let's calculate this step by step!", ThinkingSound: "Hmm...",
		Encouragement: []string{"Excellent calculation!", "You're thinking like a mathematician!", "That's the right approach!", "Keep up the logical thinking!"},
		Celebration:   []string{"Outstanding mathematical work!", "You've solved it perfectly!", "Brilliant problem-solving!", "Your math skills are growing!"},
	},
	"science": {
		Name: "Dr. Discovery", PitchMultiplier: 1.1, RateMultiplier: 1.1, Language: "en-US", Personality: "curious",
		FavoritePhrase: "Fascinating!", ThinkingSound: "Interesting...",
		Encouragement: []string{"What an amazing discovery!", "You're thinking like a scientist!", "Keep exploring and asking questions!", "Your curiosity is wonderful!"},
		Celebration:   []string{"Fantastic scientific thinking!", "You've made a great observation!", "Your research skills are excellent!", "You're becoming a great scientist!"},
	},
	"english": {
		Name: "Ms. Literature", PitchMultiplier: 1.0, RateMultiplier: 0.95, Language: "en-GB", Personality: "expressive",
		FavoritePhrase: "How splendid!", ThinkingSound: "Let me see...",
		Encouragement: []string{"Your writing is beautiful!", "You have such a way with words!", "Keep expressing yourself!", "Your creativity is inspiring!"},
		Celebration:   []string{"Magnificent literary work!", "Your storytelling is wonderful!", "You've crafted something special!", "Your words have power!"},
	},
	"art": {
		Name: "Ms. Creative", PitchMultiplier: 1.2, RateMultiplier: 1.0, Language: "en-US", Personality: "artistic",
		FavoritePhrase: "That's beautiful!", ThinkingSound: "Oh my...",
		Encouragement: []string{"Your creativity is flowing!", "You're making something beautiful!", "Trust your artistic instincts!", "Your imagination is wonderful!"},
		Celebration:   []string{"What a masterpiece you've created!", "Your artistic vision is amazing!", "You've made something unique!", "Your creativity knows no bounds!"},
	},
	"history": {
		Name: "Professor Time", PitchMultiplier: 0.9, RateMultiplier: 0.85, Language: "en-US", Personality: "storyteller",
		FavoritePhrase: "Back in my day...", ThinkingSound: "Ah yes...",
		Encouragement: []string{"You're connecting with the past!", "History is coming alive for you!", "You're learning from those who came before!", "Your understanding is growing!"},
		Celebration:   []string{"You've uncovered something important!", "Your historical knowledge is impressive!", "You're preserving our stories!", "You've learned from history!"},
	},
	"music": {
		Name: "Maestro Melody", PitchMultiplier: 1.0, RateMultiplier: 1.05, Language: "en-US", Personality: "musical",
		FavoritePhrase: "Listen to that rhythm!", ThinkingSound: "La la la...",
		Encouragement: []string{"You're finding your rhythm!", "Your musical ear is developing!", "Keep making beautiful sounds!", "You're creating harmony!"},
		Celebration:   []string{"What beautiful music you've made!", "Your musical talent is shining!", "You've created something harmonious!", "Your rhythm is perfect!"},
	},
	"default": {
		Name: "Study Buddy", PitchMultiplier: 1.0, RateMultiplier: 1.0, Language: "en-US", Personality: "friendly",
		FavoritePhrase: "You've got this!", ThinkingSound: "Hmm...",
		Encouragement: []string{"You're doing great!", "Keep up the excellent work!", "You're making progress!", "You've got this!"},
		Celebration:   []string{"Amazing job!", "You've accomplished so much!", "You're incredible!", "Fantastic work!"},
	},
}

const quirkChance = 0.3

// TeacherFor returns the persona for a subject, or the default persona.
func TeacherFor(subjectID string) TeacherVoice {
	t, ok := teacherVoices[subjectID]
	if !ok {
		t = teacherVoices["default"]
	}
	t.Encouragement = append([]string(nil), t.Encouragement...)
	t.Celebration = append([]string(nil), t.Celebration...)
	return t
}

// PersonalizedMessage picks a phrase of the given kind and sometimes adds the
// teacher's thinking sound or favourite phrase.
func (t TeacherVoice) PersonalizedMessage(kind string, rnd random.Source) string {
	pool := t.Encouragement
	if kind == PhraseCelebration {
		pool = t.Celebration
	}
	phrase := random.Pick(rnd, pool)
	if rnd.Float64() >= quirkChance {
		return phrase
	}
	if rnd.Float64() < 0.5 {
		return t.ThinkingSound + " " + phrase
	}
	return phrase + " " + t.FavoritePhrase
}
