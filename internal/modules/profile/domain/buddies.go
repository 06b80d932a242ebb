package domain

// Buddy is the companion character, stored as JSON under selectedBuddy.
type Buddy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

var buddiesByAge = map[AgeKey][]Buddy{
	AgeYoung: {
		{ID: "bunny", Name: "Bouncy", Emoji: "🐰", Color: "#FFB6C1"},
		{ID: "unicorn", Name: "Sparkles", Emoji: "🦄", Color: "#E6E6FA"},
		{ID: "dino", Name: "Rex", Emoji: "🦕", Color: "#98FB98"},
	},
	AgeElementary: {
		{ID: "cat", Name: "Whiskers", Emoji: "🐱", Color: "#FFD93D"},
		{ID: "dog", Name: "Buddy", Emoji: "🐶", Color: "#8B4513"},
		{ID: "robot", Name: "Beep", Emoji: "🤖", Color: "#C0C0C0"},
	},
	AgeTween: {
		{ID: "dragon", Name: "Blaze", Emoji: "🐉", Color: "#FF6B6B"},
		{ID: "wolf", Name: "Shadow", Emoji: "🐺", Color: "#4A5568"},
		{ID: "alien", Name: "Cosmic", Emoji: "👽", Color: "#00D9FF"},
	},
	AgeTeen: {
		{ID: "geometric", Name: "Hex", Emoji: "⬡", Color: "#7C3AED"},
		{ID: "plant", Name: "Zen", Emoji: "🌱", Color: "#10B981"},
		{ID: "orb", Name: "Focus", Emoji: "🔮", Color: "#EC4899"},
	},
}

func BuddiesForAge(key string) []Buddy {
	return append([]Buddy(nil), buddiesByAge[ParseAge(key)]...)
}

// BuddyFor finds a buddy by id within the age group, or the group's first.
func BuddyFor(key, id string) Buddy {
	list := buddiesByAge[ParseAge(key)]
	for _, b := range list {
		if b.ID == id {
			return b
		}
	}
	return list[0]
}
