package domain

import (
	"strings"
	"time"
)

type AgeKey string

const (
	AgeYoung      AgeKey = "young"
	AgeElementary AgeKey = "elementary"
	AgeTween      AgeKey = "tween"
	AgeTeen       AgeKey = "teen"
)

// DefaultAge is used for every unrecognized key.
const DefaultAge = AgeElementary

func Ages() []AgeKey {
	return []AgeKey{AgeYoung, AgeElementary, AgeTween, AgeTeen}
}

// ParseAge maps free input onto a known age key, falling back to DefaultAge.
func ParseAge(raw string) AgeKey {
	key := AgeKey(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := ageTemplates[key]; ok {
		return key
	}
	return DefaultAge
}

type SessionDefaults struct {
	DefaultDurationSec int
	BreakDurationSec   int
	MaxDurationSec     int
}

type Cadence struct {
	CheckInFrequencyMin     int
	InteractionFrequencyMin int
}

func (c Cadence) CheckInInterval() time.Duration {
	return time.Duration(c.CheckInFrequencyMin) * time.Minute
}

func (c Cadence) InteractionInterval() time.Duration {
	return time.Duration(c.InteractionFrequencyMin) * time.Minute
}

type VoiceParams struct {
	Pitch  float64
	Rate   float64
	Volume float64
}

type Personality struct {
	LanguageComplexity string
	CelebrationStyle   string
	EncouragementLevel string
	EmojiUsage         string
}

type GateSpec struct {
	MinNumber int
	MaxNumber int
	Operation string
}

type Theme struct {
	Primary    string
	Secondary  string
	Accent     string
	Background string
}

// AgeProfile is the fully resolved configuration for one age bracket.
type AgeProfile struct {
	Key          AgeKey
	DisplayRange string
	AgeRange     [2]int
	Session      SessionDefaults
	Cadence      Cadence
	Voice        VoiceParams
	Personality  Personality
	Content      Content
	Gate         GateSpec
	Theme        Theme
}

type ageTemplate struct {
	displayRange string
	ageRange     [2]int
	// minutes
	defaultDuration      int
	breakDuration        int
	checkInFrequency     int
	interactionFrequency int
	maxDuration          int
	voice                VoiceParams
	theme                Theme
	personality          Personality
	gate                 GateSpec
}

var ageTemplates = map[AgeKey]ageTemplate{
	AgeYoung: {
		displayRange: "5-7", ageRange: [2]int{5, 7},
		defaultDuration: 10, breakDuration: 3, checkInFrequency: 2, interactionFrequency: 15, maxDuration: 20,
		voice:       VoiceParams{Pitch: 1.3, Rate: 0.8, Volume: 1.0},
		theme:       Theme{Primary: "#FFB6C1", Secondary: "#FFE4E1", Accent: "#FF69B4", Background: "#FFF8F9"},
		personality: Personality{LanguageComplexity: "simple", CelebrationStyle: "enthusiastic", EncouragementLevel: "high", EmojiUsage: "frequent"},
		gate:        GateSpec{MinNumber: 1, MaxNumber: 10, Operation: OperationAddition},
	},
	AgeElementary: {
		displayRange: "8-10", ageRange: [2]int{8, 10},
		defaultDuration: 15, breakDuration: 5, checkInFrequency: 5, interactionFrequency: 20, maxDuration: 30,
		voice:       VoiceParams{Pitch: 1.1, Rate: 0.9, Volume: 1.0},
		theme:       Theme{Primary: "#87CEEB", Secondary: "#E0F6FF", Accent: "#4682B4", Background: "#F0F8FF"},
		personality: Personality{LanguageComplexity: "moderate", CelebrationStyle: "balanced", EncouragementLevel: "medium", EmojiUsage: "moderate"},
		gate:        GateSpec{MinNumber: 10, MaxNumber: 30, Operation: OperationAddition},
	},
	AgeTween: {
		displayRange: "11-13", ageRange: [2]int{11, 13},
		defaultDuration: 20, breakDuration: 5, checkInFrequency: 7, interactionFrequency: 25, maxDuration: 45,
		voice:       VoiceParams{Pitch: 1.0, Rate: 0.95, Volume: 0.9},
		theme:       Theme{Primary: "#98FB98", Secondary: "#F0FFF0", Accent: "#228B22", Background: "#F8FFF8"},
		personality: Personality{LanguageComplexity: "advanced", CelebrationStyle: "cool", EncouragementLevel: "medium", EmojiUsage: "minimal"},
		gate:        GateSpec{MinNumber: 20, MaxNumber: 50, Operation: OperationAddition},
	},
	AgeTeen: {
		displayRange: "14+", ageRange: [2]int{14, 18},
		defaultDuration: 25, breakDuration: 5, checkInFrequency: 10, interactionFrequency: 30, maxDuration: 60,
		voice:       VoiceParams{Pitch: 0.95, Rate: 1.0, Volume: 0.8},
		theme:       Theme{Primary: "#DDA0DD", Secondary: "#F8F0FF", Accent: "#9370DB", Background: "#FDFBFF"},
		personality: Personality{LanguageComplexity: "mature", CelebrationStyle: "minimal", EncouragementLevel: "low", EmojiUsage: "none"},
		gate:        GateSpec{MinNumber: 50, MaxNumber: 100, Operation: OperationAddition},
	},
}

var profiles = buildProfiles()

func buildProfiles() map[AgeKey]AgeProfile {
	out := make(map[AgeKey]AgeProfile, len(ageTemplates))
	for key, tmpl := range ageTemplates {
		out[key] = AgeProfile{
			Key:          key,
			DisplayRange: tmpl.displayRange,
			AgeRange:     tmpl.ageRange,
			Session: SessionDefaults{
				DefaultDurationSec: tmpl.defaultDuration * 60,
				BreakDurationSec:   tmpl.breakDuration * 60,
				MaxDurationSec:     tmpl.maxDuration * 60,
			},
			Cadence: Cadence{
				CheckInFrequencyMin:     tmpl.checkInFrequency,
				InteractionFrequencyMin: tmpl.interactionFrequency,
			},
			Voice:       tmpl.voice,
			Personality: tmpl.personality,
			Content:     composeContent(tmpl.personality),
			Gate:        tmpl.gate,
			Theme:       tmpl.theme,
		}
	}
	return out
}

// Resolve returns the profile for key. It never fails: unknown keys resolve
// to the elementary profile. The result is a private copy.
func Resolve(key string) AgeProfile {
	p := profiles[ParseAge(key)]
	p.Content.CheckInMessages = append([]string(nil), p.Content.CheckInMessages...)
	return p
}
