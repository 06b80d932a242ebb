package in

import (
	"context"

	"studybuddy/internal/modules/profile/dto"
)

type Usecase interface {
	Describe(ctx context.Context, age string) dto.ProfileOutput
	Subjects(ctx context.Context, age string) []dto.SubjectOutput
	Buddies(ctx context.Context, age string) []dto.BuddyOutput
	// Milestone returns the celebration line due at elapsedSec, if any.
	Milestone(ctx context.Context, age string, elapsedSec int) (string, bool)
}

// GateUsecase guards parent-only operations behind an arithmetic challenge.
type GateUsecase interface {
	Open(ctx context.Context, age string) (dto.GateChallengeOutput, error)
	Submit(ctx context.Context, answer string) (dto.GateSubmitOutput, error)
	Cancel(ctx context.Context)
}
