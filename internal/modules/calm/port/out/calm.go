package out

import (
	"context"

	"studybuddy/internal/modules/calm/domain"
	"studybuddy/internal/modules/calm/dto"
	profile "studybuddy/internal/modules/profile/domain"
	voicedto "studybuddy/internal/modules/voice/dto"
)

// Store is the slice of the learner's progress the exercise reads and
// writes.
type Store interface {
	Age(ctx context.Context) (profile.AgeKey, error)
	SpeechSettings(ctx context.Context) (voicedto.Settings, error)
	CalmStreak(ctx context.Context) (int, error)
	SaveCalm(ctx context.Context, streak int, log domain.Log) error
}

type EventSink interface {
	Publish(e dto.Event)
}
