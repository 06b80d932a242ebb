package domain

import (
	"time"

	"studybuddy/internal/platform/random"
)

// SurpriseChance is the per-tick probability of a surprise replacing a
// routine check-in.
const SurpriseChance = 0.05

type Surprise struct {
	ID      string
	Emoji   string
	Message string
}

// Text is the surprise as shown on screen.
func (s Surprise) Text() string {
	return s.Emoji + " " + s.Message
}

var surprises = []Surprise{
	{ID: "power_hour", Emoji: "⚡", Message: "Power Hour! Everything counts double!"},
	{ID: "buddy_birthday", Emoji: "🎂", Message: "It's Buddy's Birthday!"},
	{ID: "opposite_day", Emoji: "🔄", Message: "Opposite Day! Breaks are longer!"},
	{ID: "challenge_mode", Emoji: "🏆", Message: "Challenge Mode! Beat yesterday!"},
	{ID: "guest_buddy", Emoji: "👋", Message: "Guest Buddy visiting!"},
	{ID: "speed_round", Emoji: "💨", Message: "Speed Round! Quick focus!"},
	{ID: "quiet_mode", Emoji: "🤫", Message: "Shh... Library Mode!"},
	{ID: "party_mode", Emoji: "🎉", Message: "Party Mode! Extra celebrations!"},
}

// MysteryMondayEmoji decorates the weekly mystery announcement.
const MysteryMondayEmoji = "🎭"

var mysteryMondayChanges = []string{
	"Buddy has a hat today!",
	"Timer counts UP instead of down!",
	"Everything is backwards!",
	"Night mode activated!",
	"Speed mode - shorter sessions!",
	"Buddy is feeling quiet today",
	"Double points day!",
	"Surprise colors everywhere!",
}

type Theme struct {
	Name  string
	Emoji string
	Color string
}

// indexed by time.Month - 1
var seasonalThemes = [12]Theme{
	{Name: "New Year", Emoji: "🎊", Color: "#FFD700"},
	{Name: "Hearts", Emoji: "💕", Color: "#FF69B4"},
	{Name: "Spring", Emoji: "🌸", Color: "#98FB98"},
	{Name: "Rain", Emoji: "🌧️", Color: "#87CEEB"},
	{Name: "Flowers", Emoji: "🌺", Color: "#FF6347"},
	{Name: "Summer", Emoji: "☀️", Color: "#FFD700"},
	{Name: "Beach", Emoji: "🏖️", Color: "#20B2AA"},
	{Name: "Back to School", Emoji: "🎒", Color: "#FF8C00"},
	{Name: "Fall", Emoji: "🍂", Color: "#D2691E"},
	{Name: "Halloween", Emoji: "🎃", Color: "#FF8C00"},
	{Name: "Thankful", Emoji: "🦃", Color: "#8B4513"},
	{Name: "Winter", Emoji: "❄️", Color: "#00CED1"},
}

// Engine makes the chance-based decisions. Calendar decisions are plain
// functions of time.
type Engine struct {
	rnd random.Source
}

func NewEngine(rnd random.Source) Engine {
	return Engine{rnd: rnd}
}

// ShouldTriggerSurprise is an independent trial on every call.
func (e Engine) ShouldTriggerSurprise() bool {
	return e.rnd.Float64() < SurpriseChance
}

func (e Engine) RandomSurprise() Surprise {
	return random.Pick(e.rnd, surprises)
}

func Surprises() []Surprise {
	return append([]Surprise(nil), surprises...)
}

// MysteryMondayChange returns this week's change when now is a Monday. The
// week index is the day of month divided by seven.
func MysteryMondayChange(now time.Time) (string, bool) {
	if now.Weekday() != time.Monday {
		return "", false
	}
	week := now.Day() / 7
	return mysteryMondayChanges[week%len(mysteryMondayChanges)], true
}

// SeasonalTheme looks the theme up by the calendar month of now, in now's
// own location.
func SeasonalTheme(now time.Time) Theme {
	return seasonalThemes[int(now.Month())-1]
}
