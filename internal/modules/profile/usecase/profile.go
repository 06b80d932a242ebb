package usecase

import (
	"context"

	"studybuddy/internal/modules/profile/domain"
	"studybuddy/internal/modules/profile/dto"
	"studybuddy/internal/modules/profile/service"
)

type Interactor struct {
	gate *service.GateService
}

func NewInteractor(gate *service.GateService) *Interactor {
	return &Interactor{gate: gate}
}

func (i *Interactor) Describe(_ context.Context, age string) dto.ProfileOutput {
	p := domain.Resolve(age)
	return dto.ProfileOutput{
		Age:                 string(p.Key),
		DisplayRange:        p.DisplayRange,
		SessionMinutes:      p.Session.DefaultDurationSec / 60,
		BreakMinutes:        p.Session.BreakDurationSec / 60,
		MaxMinutes:          p.Session.MaxDurationSec / 60,
		CheckInEveryMin:     p.Cadence.CheckInFrequencyMin,
		InteractionEveryMin: p.Cadence.InteractionFrequencyMin,
		VoicePitch:          p.Voice.Pitch,
		VoiceRate:           p.Voice.Rate,
		StartButtonText:     p.Content.StartButtonText,
		BreakButtonText:     p.Content.BreakButtonText,
		EndButtonText:       p.Content.EndButtonText,
		StreakLabel:         p.Content.StreakLabel,
		StatsLabel:          p.Content.StatsLabel,
		Theme: dto.ThemeOutput{
			Primary:    p.Theme.Primary,
			Secondary:  p.Theme.Secondary,
			Accent:     p.Theme.Accent,
			Background: p.Theme.Background,
		},
	}
}

func (i *Interactor) Subjects(_ context.Context, age string) []dto.SubjectOutput {
	list := domain.SubjectsForAge(age)
	out := make([]dto.SubjectOutput, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SubjectOutput{ID: s.ID, Label: s.Label, Emoji: s.Emoji, Category: s.Category, Difficulty: s.Difficulty})
	}
	return out
}

func (i *Interactor) Buddies(_ context.Context, age string) []dto.BuddyOutput {
	list := domain.BuddiesForAge(age)
	out := make([]dto.BuddyOutput, 0, len(list))
	for _, b := range list {
		out = append(out, dto.BuddyOutput{ID: b.ID, Name: b.Name, Emoji: b.Emoji, Color: b.Color})
	}
	return out
}

func (i *Interactor) Milestone(_ context.Context, age string, elapsedSec int) (string, bool) {
	return domain.Milestone(domain.ParseAge(age), elapsedSec)
}

func (i *Interactor) Open(_ context.Context, age string) (dto.GateChallengeOutput, error) {
	challenge, err := i.gate.Open(age)
	if err != nil {
		return dto.GateChallengeOutput{}, err
	}
	return dto.GateChallengeOutput{Question: challenge.Question}, nil
}

func (i *Interactor) Submit(_ context.Context, answer string) (dto.GateSubmitOutput, error) {
	res, err := i.gate.Submit(answer)
	if err != nil {
		return dto.GateSubmitOutput{}, err
	}
	return dto.GateSubmitOutput{Passed: res.Passed, Locked: res.Locked, AttemptsLeft: res.AttemptsLeft, LockedFor: res.LockedFor}, nil
}

func (i *Interactor) Cancel(context.Context) {
	i.gate.Cancel()
}
