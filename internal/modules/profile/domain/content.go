package domain

// Labels is the button and heading copy for one personality.
type Labels struct {
	BuddySelectionTitle    string
	BuddySelectionSubtitle string
	NamePrompt             string
	ReadyMessage           string
	StartButtonText        string
	BreakButtonText        string
	EndButtonText          string
	StreakLabel            string
	StatsLabel             string
}

type BreakCopy struct {
	Title      string
	Message    string
	ResumeText string
}

// Content is derived from a Personality, never stored per age.
type Content struct {
	Labels
	CheckInMessages    []string
	Break              BreakCopy
	StartMessage       string
	WelcomeBackMessage string
	CompletionMessage  string
}

var labelTemplates = map[string]Labels{
	"simple_enthusiastic": {
		BuddySelectionTitle:    "Pick Your Friend!",
		BuddySelectionSubtitle: "Who will help you today?",
		NamePrompt:             "Tell me your name, superstar!",
		ReadyMessage:           "so excited to be your friend!",
		StartButtonText:        "Let's Learn! 🌈",
		BreakButtonText:        "Break Time! 🎈",
		EndButtonText:          "All Done! 🌟",
		StreakLabel:            "day streak",
		StatsLabel:             "Learning time",
	},
	"moderate_balanced": {
		BuddySelectionTitle:    "Choose Your Buddy!",
		BuddySelectionSubtitle: "Pick your study partner!",
		NamePrompt:             "What should I call you?",
		ReadyMessage:           "ready to help you focus!",
		StartButtonText:        "Start Studying! 📚",
		BreakButtonText:        "Break Time! 🌟",
		EndButtonText:          "Finished! 🎉",
		StreakLabel:            "day streak",
		StatsLabel:             "Study time",
	},
	"advanced_cool": {
		BuddySelectionTitle:    "Pick Your Focus Friend",
		BuddySelectionSubtitle: "Choose your style",
		NamePrompt:             "What's your name?",
		ReadyMessage:           "here to help you crush it!",
		StartButtonText:        "Let's Go 💪",
		BreakButtonText:        "Quick Break",
		EndButtonText:          "Done ✓",
		StreakLabel:            "days",
		StatsLabel:             "Focus time",
	},
	"mature_minimal": {
		BuddySelectionTitle:    "Focus Mode",
		BuddySelectionSubtitle: "Select your vibe",
		NamePrompt:             "Name (optional)",
		ReadyMessage:           "ready.",
		StartButtonText:        "Start",
		BreakButtonText:        "Break",
		EndButtonText:          "End",
		StreakLabel:            "days",
		StatsLabel:             "Total",
	},
}

var messagePools = map[string][]string{
	"high": {
		"You're doing AMAZING! 🌟",
		"Wow! Look at you go! 🚀",
		"Super duper job! 🌈",
		"You're the best! 💖",
		"Keep being awesome! ⭐",
	},
	"medium": {
		"Great focus! Keep it up! 🌟",
		"You're doing awesome! 💪",
		"Nice work! Stay strong! 🚀",
		"Fantastic job! 🎯",
		"Keep going, you've got this! ⭐",
	},
	"low": {
		"In the zone 🎯",
		"Solid 💯",
		"Keep going 📈",
		"Progress ✓",
		"On track 🎪",
	},
}

var breakTemplates = map[string]BreakCopy{
	"enthusiastic": {Title: "Wiggle Break! 🎉", Message: "Time to jump, dance, or get a snack!", ResumeText: "More Learning!"},
	"balanced":     {Title: "Break Time!", Message: "Great work! Take 5 minutes to stretch or grab water.", ResumeText: "Back to Work!"},
	"cool":         {Title: "Break Time", Message: "Good session. Take 5.", ResumeText: "Continue"},
	"minimal":      {Title: "Break", Message: "5 minute break.", ResumeText: "Resume"},
}

var (
	startMessages = map[string]string{
		"simple":   "Yay! Let's learn together! You're amazing!",
		"moderate": "Let's do this! I'm right here with you.",
		"advanced": "Let's get this done.",
		"mature":   "Focus mode activated.",
	}
	welcomeBackMessages = map[string]string{
		"simple":   "Welcome back superstar!",
		"moderate": "Welcome back! Ready to continue?",
		"advanced": "Back at it. Nice.",
		"mature":   "Resuming.",
	}
	completionMessages = map[string]string{
		"simple":   "Amazing job! You're a superstar!",
		"moderate": "Excellent work! You did it!",
		"advanced": "Solid work today.",
		"mature":   "Session complete.",
	}
)

func lookup[T any](m map[string]T, key, fallback string) T {
	if v, ok := m[key]; ok {
		return v
	}
	return m[fallback]
}

func composeContent(p Personality) Content {
	return Content{
		Labels:             lookup(labelTemplates, p.LanguageComplexity+"_"+p.CelebrationStyle, "moderate_balanced"),
		CheckInMessages:    lookup(messagePools, p.EncouragementLevel, "medium"),
		Break:              lookup(breakTemplates, p.CelebrationStyle, "balanced"),
		StartMessage:       lookup(startMessages, p.LanguageComplexity, "moderate"),
		WelcomeBackMessage: lookup(welcomeBackMessages, p.LanguageComplexity, "moderate"),
		CompletionMessage:  lookup(completionMessages, p.LanguageComplexity, "moderate"),
	}
}
