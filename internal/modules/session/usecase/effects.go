package usecase

import (
	"context"

	"studybuddy/internal/modules/session/domain"
	sessiondto "studybuddy/internal/modules/session/dto"
	sessionout "studybuddy/internal/modules/session/port/out"
	voicedto "studybuddy/internal/modules/voice/dto"
)

// effects are side effects gathered under the interactor lock and run, in
// order, once it is released.
type effects []func()

func (f *effects) add(fn func()) { *f = append(*f, fn) }

func (f effects) run() {
	for _, fn := range f {
		fn()
	}
}

func (i *Interactor) say(ctx context.Context, fx *effects, s *activeSession, text string, screen voicedto.Screen, force bool) {
	if i.deps.Voice == nil || text == "" {
		return
	}
	u := voicedto.Utterance{
		Text:      text,
		Screen:    screen,
		Age:       string(s.age),
		SubjectID: s.subject.ID,
		Force:     force,
		Settings:  s.settings,
	}
	fx.add(func() { i.deps.Voice.Say(ctx, u) })
}

func (i *Interactor) sayExcited(ctx context.Context, fx *effects, s *activeSession, text string) {
	if i.deps.Voice == nil || text == "" {
		return
	}
	u := voicedto.Utterance{
		Text:      text,
		Screen:    voicedto.ScreenMain,
		Age:       string(s.age),
		SubjectID: s.subject.ID,
		Excited:   true,
		Settings:  s.settings,
	}
	fx.add(func() { i.deps.Voice.Say(ctx, u) })
}

func (i *Interactor) haptic(ctx context.Context, fx *effects, kind sessionout.HapticKind) {
	if i.deps.Haptics == nil {
		return
	}
	fx.add(func() { i.deps.Haptics.Signal(ctx, kind) })
}

func (i *Interactor) publish(fx *effects, e domain.Event) {
	if i.deps.Sink == nil {
		return
	}
	out := eventOutput(e)
	fx.add(func() { i.deps.Sink.Publish(out) })
}

func (i *Interactor) event(s *activeSession, kind domain.EventKind, text string) domain.Event {
	return domain.Event{
		Kind:       kind,
		SessionID:  s.id,
		At:         i.deps.Clock.Now(),
		ElapsedSec: s.timer.ElapsedSeconds(),
		Text:       text,
	}
}

func eventOutput(e domain.Event) sessiondto.Event {
	out := sessiondto.Event{
		Kind:       string(e.Kind),
		SessionID:  e.SessionID,
		At:         e.At,
		ElapsedSec: e.ElapsedSec,
		Title:      e.Title,
		Text:       e.Text,
		Emoji:      e.Emoji,
	}
	if e.Prompt != nil {
		p := promptOutput(*e.Prompt)
		out.Prompt = &p
	}
	if e.Outcome != nil {
		out.Outcome = &sessiondto.EndOutput{
			SessionID:    e.SessionID,
			ElapsedSec:   e.Outcome.ElapsedSec,
			TotalTimeSec: e.Outcome.TotalTimeSec,
			NewStreak:    e.Outcome.NewStreak,
		}
	}
	return out
}

func promptOutput(p domain.Prompt) sessiondto.PromptOutput {
	out := sessiondto.PromptOutput{ID: p.ID, Text: p.Text, Options: make([]sessiondto.OptionOutput, 0, len(p.Options))}
	for _, o := range p.Options {
		out.Options = append(out.Options, sessiondto.OptionOutput{Label: o.Label, Value: o.Value})
	}
	return out
}

func interactionOutput(e domain.InteractionEntry) sessiondto.InteractionOutput {
	return sessiondto.InteractionOutput{
		AtElapsedSec:  e.AtElapsedSec,
		PromptID:      e.PromptID,
		ResponseValue: e.ResponseValue,
		Timestamp:     e.TimestampISO,
	}
}
