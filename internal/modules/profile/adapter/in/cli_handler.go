package in

import (
	"context"

	"studybuddy/internal/modules/profile/dto"
	profilein "studybuddy/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profilein.Usecase
	gate    profilein.GateUsecase
}

func NewCLIHandler(usecase profilein.Usecase, gate profilein.GateUsecase) CLIHandler {
	return CLIHandler{usecase: usecase, gate: gate}
}

func (h CLIHandler) Show(ctx context.Context, age string) (dto.ProfileOutput, []dto.SubjectOutput) {
	return h.usecase.Describe(ctx, age), h.usecase.Subjects(ctx, age)
}

func (h CLIHandler) Buddies(ctx context.Context, age string) []dto.BuddyOutput {
	return h.usecase.Buddies(ctx, age)
}

func (h CLIHandler) Milestone(ctx context.Context, age string, elapsedSec int) (string, bool) {
	return h.usecase.Milestone(ctx, age, elapsedSec)
}

func (h CLIHandler) OpenGate(ctx context.Context, age string) (dto.GateChallengeOutput, error) {
	return h.gate.Open(ctx, age)
}

func (h CLIHandler) SubmitGate(ctx context.Context, answer string) (dto.GateSubmitOutput, error) {
	return h.gate.Submit(ctx, answer)
}

func (h CLIHandler) CancelGate(ctx context.Context) {
	h.gate.Cancel(ctx)
}
