package out

import (
	"context"

	"studybuddy/internal/modules/voice/dto"
)

// Speaker renders speech. Implementations may return before the audio ends.
type Speaker interface {
	Speak(ctx context.Context, text string, params dto.SpeechParams) error
	Stop(ctx context.Context) error
}
