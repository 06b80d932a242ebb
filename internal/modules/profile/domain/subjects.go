package domain

// FallbackSubject is used for unknown subject ids.
const FallbackSubject = "other"

type Subject struct {
	ID         string
	Label      string
	Emoji      string
	Category   string
	Difficulty string
	CheckIns   []string
}

var subjects = map[string]Subject{
	"math": {
		ID: "math", Label: "Math", Emoji: "🔢", Category: "core", Difficulty: "medium",
		CheckIns: []string{"Check your calculations!", "Show your work!", "One problem at a time", "Double-check that answer", "Remember your formulas"},
	},
	"reading": {
		ID: "reading", Label: "Reading", Emoji: "📚", Category: "core", Difficulty: "easy",
		CheckIns: []string{"What's happening now?", "Who's the main character?", "What do you think happens next?", "Picture the scene", "Keep going, great reading!"},
	},
	"writing": {
		ID: "writing", Label: "Writing", Emoji: "✏️", Category: "core", Difficulty: "medium",
		CheckIns: []string{"Check your spelling!", "Add more details", "How many sentences so far?", "Remember punctuation", "Great writing flow!"},
	},
	"other": {
		ID: "other", Label: "Other", Emoji: "📝", Category: "flexible", Difficulty: "easy",
		CheckIns: []string{"Keep it up!", "You're doing great!", "Stay focused!", "Almost there!", "Excellent work!"},
	},
	"science": {
		ID: "science", Label: "Science", Emoji: "🔬", Category: "stem", Difficulty: "medium",
		CheckIns: []string{"Test your hypothesis", "Check your method", "What's the evidence?", "Think like a scientist", "Record your observations"},
	},
	"chemistry": {
		ID: "chemistry", Label: "Chemistry", Emoji: "⚗️", Category: "stem", Difficulty: "hard",
		CheckIns: []string{"Balance those equations!", "Check your formulas", "Remember units!", "Think about reactions", "Safety first!"},
	},
	"biology": {
		ID: "biology", Label: "Biology", Emoji: "🧬", Category: "stem", Difficulty: "medium",
		CheckIns: []string{"Think about the process", "Draw it out if it helps", "Check your terms", "Remember the system", "Life is amazing!"},
	},
	"history": {
		ID: "history", Label: "History", Emoji: "🏛️", Category: "social", Difficulty: "medium",
		CheckIns: []string{"Dates and names matter", "What caused this?", "Think about the timeline", "Connect the events", "History repeats!"},
	},
	"geography": {
		ID: "geography", Label: "Geography", Emoji: "🌍", Category: "social", Difficulty: "easy",
		CheckIns: []string{"Picture the map", "Remember locations", "Think about connections", "Climate matters", "Explore the world!"},
	},
}

var subjectsByAge = map[AgeKey][]string{
	AgeYoung:      {"math", "reading", "writing", "other"},
	AgeElementary: {"math", "reading", "writing", "other"},
	AgeTween:      {"math", "reading", "writing", "science", "history", "geography", "other"},
	AgeTeen:       {"math", "reading", "writing", "science", "chemistry", "biology", "history", "geography", "other"},
}

func cloneSubject(s Subject) Subject {
	s.CheckIns = append([]string(nil), s.CheckIns...)
	return s
}

// LookupSubject reports whether id names a catalogued subject.
func LookupSubject(id string) (Subject, bool) {
	s, ok := subjects[id]
	if !ok {
		return Subject{}, false
	}
	return cloneSubject(s), true
}

// SubjectsForAge lists the subjects offered to an age group in display order.
func SubjectsForAge(key string) []Subject {
	ids := subjectsByAge[ParseAge(key)]
	out := make([]Subject, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneSubject(subjects[id]))
	}
	return out
}

// SubjectCheckIns returns the check-in pool for id, or the fallback subject's
// pool when id is unknown.
func SubjectCheckIns(id string) []string {
	s, ok := subjects[id]
	if !ok {
		s = subjects[FallbackSubject]
	}
	return append([]string(nil), s.CheckIns...)
}
