package dto

type Screen string

const (
	ScreenMain        Screen = "main"
	ScreenCalm        Screen = "calm"
	ScreenCelebration Screen = "celebration"
)

// Settings is the learner's stored speech preference, refreshed by the
// session orchestrator and handed over with every utterance.
type Settings struct {
	MainScreenEnabled  bool    `json:"mainScreenEnabled"`
	CalmModeEnabled    bool    `json:"calmModeEnabled"`
	CelebrationEnabled bool    `json:"celebrationEnabled"`
	Rate               float64 `json:"rate"`
	Pitch              float64 `json:"pitch"`
}

func DefaultSettings() Settings {
	return Settings{
		MainScreenEnabled:  true,
		CalmModeEnabled:    true,
		CelebrationEnabled: true,
		Rate:               1.0,
		Pitch:              1.0,
	}
}

// Utterance asks for one line of speech. Age and SubjectID select the base
// voice and the teacher overlay.
type Utterance struct {
	Text      string
	Screen    Screen
	Age       string
	SubjectID string
	// Force bypasses screen toggles and the rate limit.
	Force bool
	// Excited raises the pitch for surprises.
	Excited bool
	// PitchShift and RateShift are added after the multipliers.
	PitchShift float64
	RateShift  float64
	Settings   Settings
}

type SpeechParams struct {
	Language string
	Pitch    float64
	Rate     float64
	Volume   float64
}

type SayOutput struct {
	Spoken bool
	Text   string
	Params SpeechParams
	// Reason explains why nothing was spoken.
	Reason string
}
