package domain

import "fmt"

const milestoneEverySec = 300

var milestoneFormats = map[AgeKey]string{
	AgeYoung:      "🎉 %d minutes! You're amazing!",
	AgeElementary: "🎉 %d minutes! Great job!",
	AgeTween:      "🔥 %d minutes! Crushing it!",
	AgeTeen:       "💯 %d minutes. Solid.",
}

// Milestone returns the banner shown on every fifth elapsed minute.
func Milestone(key AgeKey, elapsedSec int) (string, bool) {
	if elapsedSec <= 0 || elapsedSec%milestoneEverySec != 0 {
		return "", false
	}
	format, ok := milestoneFormats[key]
	if !ok {
		format = milestoneFormats[DefaultAge]
	}
	return fmt.Sprintf(format, elapsedSec/60), true
}
