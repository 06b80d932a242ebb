package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	profile "studybuddy/internal/modules/profile/domain"
	"studybuddy/internal/modules/voice/domain"
	"studybuddy/internal/modules/voice/dto"
	voiceout "studybuddy/internal/modules/voice/port/out"
	"studybuddy/internal/platform/clock"
)

const (
	reasonEmpty       = "nothing speakable"
	reasonDisabled    = "screen muted"
	reasonRateLimited = "rate limited"
	reasonFailed      = "speaker failed"
)

// VoiceService composes voice parameters and keeps utterances at least
// minInterval apart unless forced.
type VoiceService struct {
	speaker     voiceout.Speaker
	clock       clock.Clock
	log         *zap.Logger
	minInterval time.Duration
	language    string

	mu       sync.Mutex
	said     bool
	lastSaid time.Time
}

func NewVoiceService(speaker voiceout.Speaker, clk clock.Clock, log *zap.Logger, minInterval time.Duration, language string) *VoiceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &VoiceService{speaker: speaker, clock: clk, log: log, minInterval: minInterval, language: language}
}

func (s *VoiceService) Say(ctx context.Context, u dto.Utterance) dto.SayOutput {
	text := domain.Speakable(u.Text)
	if text == "" {
		return dto.SayOutput{Reason: reasonEmpty}
	}
	if !u.Force && !domain.ScreenEnabled(u.Settings, u.Screen) {
		return dto.SayOutput{Text: text, Reason: reasonDisabled}
	}

	s.mu.Lock()
	now := s.clock.Now()
	if !u.Force && s.said && now.Sub(s.lastSaid) < s.minInterval {
		s.mu.Unlock()
		return dto.SayOutput{Text: text, Reason: reasonRateLimited}
	}
	s.said = true
	s.lastSaid = now
	s.mu.Unlock()

	params := s.Params(u)
	if err := s.speaker.Stop(ctx); err != nil {
		s.log.Warn("stop speech", zap.Error(err))
	}
	if err := s.speaker.Speak(ctx, text, params); err != nil {
		s.log.Warn("speak", zap.String("screen", string(u.Screen)), zap.Error(err))
		return dto.SayOutput{Text: text, Params: params, Reason: reasonFailed}
	}
	return dto.SayOutput{Spoken: true, Text: text, Params: params}
}

// Params multiplies the age voice, the subject teacher and the learner's
// settings.
func (s *VoiceService) Params(u dto.Utterance) dto.SpeechParams {
	base := profile.Resolve(u.Age).Voice
	teacher := profile.TeacherFor(u.SubjectID)
	pitch := base.Pitch * teacher.PitchMultiplier * domain.Multiplier(u.Settings.Pitch)
	if u.Excited {
		pitch += domain.ExcitedPitchBump
	}
	language := teacher.Language
	if language == "" {
		language = s.language
	}
	return dto.SpeechParams{
		Language: language,
		Pitch:    pitch + u.PitchShift,
		Rate:     base.Rate*teacher.RateMultiplier*domain.Multiplier(u.Settings.Rate) + u.RateShift,
		Volume:   base.Volume,
	}
}

func (s *VoiceService) Stop(ctx context.Context) {
	if err := s.speaker.Stop(ctx); err != nil {
		s.log.Warn("stop speech", zap.Error(err))
	}
}
