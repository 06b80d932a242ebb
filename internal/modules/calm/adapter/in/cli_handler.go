package in

import (
	"context"

	calmdto "studybuddy/internal/modules/calm/dto"
	calmin "studybuddy/internal/modules/calm/port/in"
)

type CLIHandler struct {
	usecase calmin.Usecase
}

func NewCLIHandler(usecase calmin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) StartCalm(ctx context.Context, age string) (calmdto.StartOutput, error) {
	return h.usecase.Start(ctx, age)
}

func (h CLIHandler) FinishCalm(ctx context.Context) (calmdto.FinishOutput, error) {
	return h.usecase.Finish(ctx)
}

func (h CLIHandler) StopCalm(ctx context.Context) {
	h.usecase.Stop(ctx)
}

func (h CLIHandler) CalmSnapshot(ctx context.Context) calmdto.SnapshotOutput {
	return h.usecase.Snapshot(ctx)
}
