package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	profile "studybuddy/internal/modules/profile/domain"
	"studybuddy/internal/modules/session/domain"
	sessiondto "studybuddy/internal/modules/session/dto"
	sessionin "studybuddy/internal/modules/session/port/in"
	sessionout "studybuddy/internal/modules/session/port/out"
	"studybuddy/internal/modules/session/service"
	voicedto "studybuddy/internal/modules/voice/dto"
	apperrors "studybuddy/internal/platform/errors"
)

// ProgressInteractor reads and edits the learner's stored progress and
// preferences. Callers gate the destructive operations.
type ProgressInteractor struct {
	store *service.ProgressStore
	inbox sessionout.ActionInbox
}

func NewProgressInteractor(kv sessionout.KVStore, inbox sessionout.ActionInbox, log *zap.Logger) *ProgressInteractor {
	return &ProgressInteractor{store: service.NewProgressStore(kv, log), inbox: inbox}
}

var _ sessionin.ProgressUsecase = (*ProgressInteractor)(nil)

func (p *ProgressInteractor) Progress(ctx context.Context) (sessiondto.ProgressOutput, error) {
	totals, err := p.store.Totals(ctx)
	if err != nil {
		return sessiondto.ProgressOutput{}, err
	}
	entries, err := p.store.LastSessionLog(ctx)
	if err != nil {
		return sessiondto.ProgressOutput{}, err
	}
	calmStreak, err := p.store.CalmStreak(ctx)
	if err != nil {
		return sessiondto.ProgressOutput{}, err
	}
	feedback, err := p.store.FeedbackHistory(ctx)
	if err != nil {
		return sessiondto.ProgressOutput{}, err
	}
	out := sessiondto.ProgressOutput{
		TotalFocusTimeSec: totals.TotalFocusTimeSec,
		CurrentStreak:     totals.CurrentStreakCount,
		CalmStreak:        calmStreak,
		LastSessionDate:   totals.LastSessionDate,
		LastSessionLog:    make([]sessiondto.InteractionOutput, 0, len(entries)),
		FeedbackCount:     len(feedback),
	}
	for _, e := range entries {
		out.LastSessionLog = append(out.LastSessionLog, interactionOutput(e))
	}
	return out, nil
}

func (p *ProgressInteractor) ResetProgress(ctx context.Context) error {
	return p.store.Reset(ctx)
}

func (p *ProgressInteractor) Settings(ctx context.Context) (sessiondto.SettingsOutput, error) {
	age, err := p.store.Age(ctx)
	if err != nil {
		return sessiondto.SettingsOutput{}, err
	}
	buddy, err := p.store.Buddy(ctx, age)
	if err != nil {
		return sessiondto.SettingsOutput{}, err
	}
	speech, err := p.store.SpeechSettings(ctx)
	if err != nil {
		return sessiondto.SettingsOutput{}, err
	}
	return settingsOutput(age, buddy, speech), nil
}

func (p *ProgressInteractor) UpdateSpeech(ctx context.Context, input sessiondto.SpeechSettingsInput) (sessiondto.SettingsOutput, error) {
	speech, err := p.store.SpeechSettings(ctx)
	if err != nil {
		return sessiondto.SettingsOutput{}, err
	}
	if input.MainScreenEnabled != nil {
		speech.MainScreenEnabled = *input.MainScreenEnabled
	}
	if input.CalmModeEnabled != nil {
		speech.CalmModeEnabled = *input.CalmModeEnabled
	}
	if input.CelebrationEnabled != nil {
		speech.CelebrationEnabled = *input.CelebrationEnabled
	}
	if input.Rate != nil {
		if *input.Rate <= 0 || *input.Rate > 2 {
			return sessiondto.SettingsOutput{}, fmt.Errorf("%w: rate must be in (0, 2]", apperrors.ErrInvalidInput)
		}
		speech.Rate = *input.Rate
	}
	if input.Pitch != nil {
		if *input.Pitch <= 0 || *input.Pitch > 2 {
			return sessiondto.SettingsOutput{}, fmt.Errorf("%w: pitch must be in (0, 2]", apperrors.ErrInvalidInput)
		}
		speech.Pitch = *input.Pitch
	}
	if err := p.store.SaveSpeechSettings(ctx, speech); err != nil {
		return sessiondto.SettingsOutput{}, err
	}
	return p.Settings(ctx)
}

// SelectAge stores a known age group. Unlike reads, writes reject unknown
// keys instead of falling back.
func (p *ProgressInteractor) SelectAge(ctx context.Context, age string) (sessiondto.SettingsOutput, error) {
	key := profile.ParseAge(age)
	if string(key) != strings.ToLower(strings.TrimSpace(age)) {
		return sessiondto.SettingsOutput{}, fmt.Errorf("%w: unknown age group %q", apperrors.ErrInvalidInput, age)
	}
	if err := p.store.SetAge(ctx, key); err != nil {
		return sessiondto.SettingsOutput{}, err
	}
	return p.Settings(ctx)
}

// SelectBuddy stores one of the buddies offered to the current age group.
func (p *ProgressInteractor) SelectBuddy(ctx context.Context, buddyID string) (sessiondto.SettingsOutput, error) {
	age, err := p.store.Age(ctx)
	if err != nil {
		return sessiondto.SettingsOutput{}, err
	}
	id := strings.TrimSpace(buddyID)
	for _, b := range profile.BuddiesForAge(string(age)) {
		if b.ID == id {
			if err := p.store.SetBuddy(ctx, b); err != nil {
				return sessiondto.SettingsOutput{}, err
			}
			return p.Settings(ctx)
		}
	}
	return sessiondto.SettingsOutput{}, fmt.Errorf("%w: buddy %q for age %s", apperrors.ErrNotFound, buddyID, age)
}

// RecordAction stores a notification button press for the next foreground
// transition.
func (p *ProgressInteractor) RecordAction(ctx context.Context, action string) error {
	parsed, ok := domain.ParseAction(action)
	if !ok {
		return fmt.Errorf("%w: unknown action %q", apperrors.ErrInvalidInput, action)
	}
	return p.inbox.Record(ctx, string(parsed))
}

func settingsOutput(age profile.AgeKey, buddy profile.Buddy, speech voicedto.Settings) sessiondto.SettingsOutput {
	return sessiondto.SettingsOutput{
		Age:                string(age),
		BuddyID:            buddy.ID,
		BuddyName:          buddy.Name,
		MainScreenEnabled:  speech.MainScreenEnabled,
		CalmModeEnabled:    speech.CalmModeEnabled,
		CelebrationEnabled: speech.CelebrationEnabled,
		Rate:               speech.Rate,
		Pitch:              speech.Pitch,
	}
}
