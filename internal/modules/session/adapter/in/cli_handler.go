package in

import (
	"context"

	sessiondto "studybuddy/internal/modules/session/dto"
	sessionin "studybuddy/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase  sessionin.Usecase
	progress sessionin.ProgressUsecase
}

func NewCLIHandler(usecase sessionin.Usecase, progress sessionin.ProgressUsecase) CLIHandler {
	return CLIHandler{usecase: usecase, progress: progress}
}

func (h CLIHandler) Start(ctx context.Context, subjectID, age string, workMin, breakMin int) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{SubjectID: subjectID, Age: age, WorkMinutes: workMin, BreakMinutes: breakMin})
}

func (h CLIHandler) Pause(ctx context.Context) error {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) error {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) TakeBreak(ctx context.Context) (sessiondto.BreakOutput, error) {
	return h.usecase.TakeBreak(ctx)
}

func (h CLIHandler) Respond(ctx context.Context, promptID, value string) (sessiondto.RespondOutput, error) {
	return h.usecase.Respond(ctx, sessiondto.RespondInput{PromptID: promptID, Value: value})
}

func (h CLIHandler) End(ctx context.Context) (sessiondto.EndOutput, error) {
	return h.usecase.End(ctx)
}

func (h CLIHandler) RecordFeedback(ctx context.Context, whatWorked []string) (sessiondto.FeedbackOutput, error) {
	return h.usecase.RecordFeedback(ctx, sessiondto.FeedbackInput{WhatWorked: whatWorked})
}

func (h CLIHandler) Foreground(ctx context.Context, foreground bool) (sessiondto.AppStateOutput, error) {
	return h.usecase.AppStateChanged(ctx, foreground)
}

func (h CLIHandler) Snapshot(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx)
}

func (h CLIHandler) Teardown(ctx context.Context) {
	h.usecase.Teardown(ctx)
}

func (h CLIHandler) Progress(ctx context.Context) (sessiondto.ProgressOutput, error) {
	return h.progress.Progress(ctx)
}

func (h CLIHandler) ResetProgress(ctx context.Context) error {
	return h.progress.ResetProgress(ctx)
}

func (h CLIHandler) Settings(ctx context.Context) (sessiondto.SettingsOutput, error) {
	return h.progress.Settings(ctx)
}

func (h CLIHandler) UpdateSpeech(ctx context.Context, input sessiondto.SpeechSettingsInput) (sessiondto.SettingsOutput, error) {
	return h.progress.UpdateSpeech(ctx, input)
}

func (h CLIHandler) SelectAge(ctx context.Context, age string) (sessiondto.SettingsOutput, error) {
	return h.progress.SelectAge(ctx, age)
}

func (h CLIHandler) SelectBuddy(ctx context.Context, buddyID string) (sessiondto.SettingsOutput, error) {
	return h.progress.SelectBuddy(ctx, buddyID)
}

func (h CLIHandler) RecordAction(ctx context.Context, action string) error {
	return h.progress.RecordAction(ctx, action)
}
