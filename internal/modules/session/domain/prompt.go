package domain

import (
	profile "studybuddy/internal/modules/profile/domain"
)

const (
	PromptSubject    = "subject"
	PromptProgress   = "progress"
	PromptDifficulty = "difficulty"
	// PromptHelp and PromptFree label responses given with no prompt on
	// screen.
	PromptHelp = "help"
	PromptFree = "free"

	// ResponseHelp routes to the parental-notice branch.
	ResponseHelp = "help"

	HelpMessage   = "Should I let your parent know?"
	TimeoutNotice = "Tap to continue when ready!"
)

type Option struct {
	Label string
	Value string
}

type Prompt struct {
	ID      string
	Text    string
	Options []Option
}

// HasOption reports whether value is one of the prompt's answers.
func (p Prompt) HasOption(value string) bool {
	for _, o := range p.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Prompts lists the interaction questions for an age group. The subject
// question offers the first four subjects of the group.
func Prompts(age string) []Prompt {
	subjects := profile.SubjectsForAge(age)
	if len(subjects) > 4 {
		subjects = subjects[:4]
	}
	subjectOptions := make([]Option, 0, len(subjects))
	for _, s := range subjects {
		subjectOptions = append(subjectOptions, Option{Label: s.Emoji + " " + s.Label, Value: s.ID})
	}
	return []Prompt{
		{ID: PromptSubject, Text: "What are you working on?", Options: subjectOptions},
		{ID: PromptProgress, Text: "How much have you finished?", Options: []Option{
			{Label: "All done! ✅", Value: "complete"},
			{Label: "Most 🔵", Value: "most"},
			{Label: "Half 🟡", Value: "half"},
			{Label: "Just started 🔴", Value: "started"},
		}},
		{ID: PromptDifficulty, Text: "How's it going?", Options: []Option{
			{Label: "Easy! 😊", Value: "easy"},
			{Label: "OK 😐", Value: "ok"},
			{Label: "Hard 😟", Value: "hard"},
			{Label: "Need help 🆘", Value: ResponseHelp},
		}},
	}
}

// StandalonePrompt is the prompt id recorded for a response that answers no
// prompt.
func StandalonePrompt(value string) string {
	if value == ResponseHelp {
		return PromptHelp
	}
	return PromptFree
}

var encouragements = map[string]string{
	"easy":     "Great! Keep crushing it!",
	"ok":       "Nice steady progress!",
	"hard":     "You're doing great even though it's tough!",
	"complete": "Amazing! You finished!",
	"most":     "Almost there, fantastic!",
	"half":     "Halfway is great progress!",
	"started":  "Good start, keep going!",
}

// Encouragement is the spoken feedback for a response value, if any.
func Encouragement(value string) (string, bool) {
	msg, ok := encouragements[value]
	return msg, ok
}
