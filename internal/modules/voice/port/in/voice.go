package in

import (
	"context"

	"studybuddy/internal/modules/voice/dto"
)

type Usecase interface {
	Say(ctx context.Context, u dto.Utterance) dto.SayOutput
	Stop(ctx context.Context)
}
