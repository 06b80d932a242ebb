package out

import (
	"context"
	"fmt"
	"io"
	"sync"

	"studybuddy/internal/modules/voice/dto"
	voiceout "studybuddy/internal/modules/voice/port/out"
)

// ConsoleSpeaker prints utterances instead of playing them.
type ConsoleSpeaker struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleSpeaker(w io.Writer) voiceout.Speaker {
	return &ConsoleSpeaker{w: w}
}

func (s *ConsoleSpeaker) Speak(_ context.Context, text string, params dto.SpeechParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "🔊 %s (pitch %.2f, rate %.2f, %s)\n", text, params.Pitch, params.Rate, params.Language)
	return err
}

func (s *ConsoleSpeaker) Stop(context.Context) error { return nil }

// NoopSpeaker discards speech.
type NoopSpeaker struct{}

func (NoopSpeaker) Speak(context.Context, string, dto.SpeechParams) error { return nil }
func (NoopSpeaker) Stop(context.Context) error                           { return nil }
