package in

import (
	"context"

	"studybuddy/internal/modules/session/dto"
)

// Usecase drives one study session at a time.
type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	TakeBreak(ctx context.Context) (dto.BreakOutput, error)
	Respond(ctx context.Context, input dto.RespondInput) (dto.RespondOutput, error)
	End(ctx context.Context) (dto.EndOutput, error)
	// RecordFeedback stores what helped during the session that just ended.
	RecordFeedback(ctx context.Context, input dto.FeedbackInput) (dto.FeedbackOutput, error)
	AppStateChanged(ctx context.Context, foreground bool) (dto.AppStateOutput, error)
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
	// Teardown discards the session without recording it. Safe to repeat.
	Teardown(ctx context.Context)
}

type ProgressUsecase interface {
	Progress(ctx context.Context) (dto.ProgressOutput, error)
	ResetProgress(ctx context.Context) error
	Settings(ctx context.Context) (dto.SettingsOutput, error)
	UpdateSpeech(ctx context.Context, input dto.SpeechSettingsInput) (dto.SettingsOutput, error)
	SelectAge(ctx context.Context, age string) (dto.SettingsOutput, error)
	SelectBuddy(ctx context.Context, buddyID string) (dto.SettingsOutput, error)
	RecordAction(ctx context.Context, action string) error
}
