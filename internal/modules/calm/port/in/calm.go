package in

import (
	"context"

	"studybuddy/internal/modules/calm/dto"
)

// Usecase runs one breathing exercise at a time.
type Usecase interface {
	// Start begins an exercise. An empty age uses the stored age group.
	Start(ctx context.Context, age string) (dto.StartOutput, error)
	// Finish stops the exercise and counts it towards the calm streak.
	Finish(ctx context.Context) (dto.FinishOutput, error)
	// Stop abandons the exercise without recording it. Safe to repeat.
	Stop(ctx context.Context)
	Snapshot(ctx context.Context) dto.SnapshotOutput
}
