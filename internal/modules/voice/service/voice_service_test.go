package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/modules/voice/dto"
	"studybuddy/internal/modules/voice/service"
	"studybuddy/internal/platform/clock"
)

type recordingSpeaker struct {
	calls []string
	texts []string
	err   error
}

func (r *recordingSpeaker) Speak(_ context.Context, text string, _ dto.SpeechParams) error {
	r.calls = append(r.calls, "speak")
	r.texts = append(r.texts, text)
	return r.err
}

func (r *recordingSpeaker) Stop(context.Context) error {
	r.calls = append(r.calls, "stop")
	return nil
}

func newService(clk clock.Clock, sp *recordingSpeaker) *service.VoiceService {
	return service.NewVoiceService(sp, clk, nil, time.Second, "en-US")
}

func TestSayStopsBeforeSpeaking(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	sp := &recordingSpeaker{}
	out := newService(clk, sp).Say(context.Background(), dto.Utterance{Text: "Keep it up! 🌟", Screen: dto.ScreenMain, Settings: dto.DefaultSettings()})

	require.True(t, out.Spoken)
	assert.Equal(t, "Keep it up", out.Text)
	assert.Equal(t, []string{"stop", "speak"}, sp.calls)
}

func TestSayRateLimitsUnlessForced(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	sp := &recordingSpeaker{}
	svc := newService(clk, sp)
	settings := dto.DefaultSettings()

	assert.True(t, svc.Say(context.Background(), dto.Utterance{Text: "one", Settings: settings}).Spoken)
	clk.Advance(500 * time.Millisecond)
	assert.False(t, svc.Say(context.Background(), dto.Utterance{Text: "two", Settings: settings}).Spoken)
	assert.True(t, svc.Say(context.Background(), dto.Utterance{Text: "three", Settings: settings, Force: true}).Spoken)
	clk.Advance(time.Second)
	assert.True(t, svc.Say(context.Background(), dto.Utterance{Text: "four", Settings: settings}).Spoken)

	assert.Equal(t, []string{"one", "three", "four"}, sp.texts)
}

func TestSayHonoursScreenToggles(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	sp := &recordingSpeaker{}
	svc := newService(clk, sp)
	muted := dto.DefaultSettings()
	muted.MainScreenEnabled = false

	out := svc.Say(context.Background(), dto.Utterance{Text: "hello", Screen: dto.ScreenMain, Settings: muted})
	assert.False(t, out.Spoken)
	assert.Empty(t, sp.calls)

	out = svc.Say(context.Background(), dto.Utterance{Text: "done", Screen: dto.ScreenMain, Settings: muted, Force: true})
	assert.True(t, out.Spoken)
}

func TestParamsComposeProfileTeacherAndSettings(t *testing.T) {
	t.Parallel()
	svc := newService(clock.NewManual(time.Time{}), &recordingSpeaker{})
	settings := dto.Settings{Pitch: 1.5, Rate: 2}

	p := svc.Params(dto.Utterance{Age: "elementary", SubjectID: "math", Settings: settings})
	assert.InDelta(t, 1.1*0.8*1.5, p.Pitch, 1e-9)
	assert.InDelta(t, 0.9*0.9*2, p.Rate, 1e-9)
	assert.Equal(t, "en-US", p.Language)

	excited := svc.Params(dto.Utterance{Age: "young", Excited: true})
	assert.InDelta(t, 1.3+0.1, excited.Pitch, 1e-9)

	plain := svc.Params(dto.Utterance{Age: "young"})
	calm := svc.Params(dto.Utterance{Age: "young", PitchShift: -0.2, RateShift: -0.3})
	assert.InDelta(t, plain.Pitch-0.2, calm.Pitch, 1e-9)
	assert.InDelta(t, plain.Rate-0.3, calm.Rate, 1e-9)

	english := svc.Params(dto.Utterance{Age: "teen", SubjectID: "english"})
	assert.Equal(t, "en-GB", english.Language)
}

func TestSaySwallowsSpeakerErrors(t *testing.T) {
	t.Parallel()
	sp := &recordingSpeaker{err: errors.New("no audio device")}
	out := newService(clock.NewManual(time.Time{}), sp).Say(context.Background(), dto.Utterance{Text: "hi", Settings: dto.DefaultSettings()})
	assert.False(t, out.Spoken)
	assert.NotEmpty(t, out.Reason)
}
