package domain

// TimeQuality grades a finished session by its focused time.
type TimeQuality string

const (
	QualityExcellent TimeQuality = "excellent"
	QualityGood      TimeQuality = "good"
	QualityOkay      TimeQuality = "okay"
)

// QualityFor is excellent from 30 minutes, good from 15 and okay below.
func QualityFor(elapsedSec int) TimeQuality {
	switch {
	case elapsedSec >= 1800:
		return QualityExcellent
	case elapsedSec >= 900:
		return QualityGood
	default:
		return QualityOkay
	}
}

type Badge struct {
	Name  string
	Emoji string
}

var (
	BadgeTrophy = Badge{Name: "trophy", Emoji: "🏆"}
	BadgeGold   = Badge{Name: "gold", Emoji: "🥇"}
	BadgeSilver = Badge{Name: "silver", Emoji: "🥈"}
	BadgeBronze = Badge{Name: "bronze", Emoji: "🥉"}
)

// badgeThresholds are the trophy, gold and silver floors in seconds. Anything
// shorter earns bronze.
var badgeThresholds = map[AgeKey][3]int{
	AgeYoung:      {600, 300, 180},
	AgeElementary: {1200, 600, 300},
	AgeTween:      {1500, 900, 600},
	AgeTeen:       {1800, 1200, 900},
}

func BadgeFor(key AgeKey, elapsedSec int) Badge {
	t, ok := badgeThresholds[key]
	if !ok {
		t = badgeThresholds[DefaultAge]
	}
	switch {
	case elapsedSec >= t[0]:
		return BadgeTrophy
	case elapsedSec >= t[1]:
		return BadgeGold
	case elapsedSec >= t[2]:
		return BadgeSilver
	default:
		return BadgeBronze
	}
}

var celebrations = map[AgeKey]map[TimeQuality]string{
	AgeYoung: {
		QualityExcellent: "WOW! You're AMAZING! Super duper job!",
		QualityGood:      "Yay! You did it! I'm so proud!",
		QualityOkay:      "Great job! You're learning so well!",
	},
	AgeElementary: {
		QualityExcellent: "Amazing job! You did it! I'm so proud of you!",
		QualityGood:      "Excellent work! You stayed focused so well!",
		QualityOkay:      "Great job! You're building strong study habits!",
	},
	AgeTween: {
		QualityExcellent: "Incredible focus! You crushed it!",
		QualityGood:      "Solid work! Nice focus.",
		QualityOkay:      "Good session. Keep it up.",
	},
	AgeTeen: {
		QualityExcellent: "Outstanding work. Impressive focus.",
		QualityGood:      "Good session. Well done.",
		QualityOkay:      "Decent work. Progress made.",
	},
}

var encouragements = map[AgeKey]map[TimeQuality]string{
	AgeYoung: {
		QualityExcellent: "Incredible focus! You're a study champion!",
		QualityGood:      "Amazing work! You stayed focused so well!",
		QualityOkay:      "Great job! Every minute counts!",
	},
	AgeElementary: {
		QualityExcellent: "Incredible focus! You're a study champion!",
		QualityGood:      "Amazing work! You stayed focused so well!",
		QualityOkay:      "Great job! You're building strong study habits!",
	},
	AgeTween: {
		QualityExcellent: "Outstanding focus! You're on fire!",
		QualityGood:      "Great work! Your focus is getting stronger!",
		QualityOkay:      "Good start! Building those focus muscles!",
	},
	AgeTeen: {
		QualityExcellent: "Exceptional focus. You're developing real discipline.",
		QualityGood:      "Solid session. Your concentration is improving.",
		QualityOkay:      "Good work. Consistency is key.",
	},
}

// CelebrationMessage is spoken at the end of a session with no subject.
func CelebrationMessage(key AgeKey, q TimeQuality) string {
	return lookupCopy(celebrations, key, q)
}

// EncouragementMessage is shown under the session stats.
func EncouragementMessage(key AgeKey, q TimeQuality) string {
	return lookupCopy(encouragements, key, q)
}

func lookupCopy(table map[AgeKey]map[TimeQuality]string, key AgeKey, q TimeQuality) string {
	if msg, ok := table[key][q]; ok {
		return msg
	}
	return table[DefaultAge][QualityOkay]
}

// Helper is one answer to "What helped you today?".
type Helper struct {
	ID    string
	Emoji string
	Label string
}

var helpers = []Helper{
	{ID: "buddy", Emoji: "🤖", Label: "Buddy"},
	{ID: "timer", Emoji: "⏰", Label: "Timer"},
	{ID: "checkins", Emoji: "💬", Label: "Check-ins"},
	{ID: "breaks", Emoji: "🌟", Label: "Breaks"},
}

func Helpers() []Helper {
	out := make([]Helper, len(helpers))
	copy(out, helpers)
	return out
}

func LookupHelper(id string) (Helper, bool) {
	for _, h := range helpers {
		if h.ID == id {
			return h, true
		}
	}
	return Helper{}, false
}
