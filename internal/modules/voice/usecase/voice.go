package usecase

import (
	"context"

	"studybuddy/internal/modules/voice/dto"
	"studybuddy/internal/modules/voice/service"
)

type Interactor struct {
	svc *service.VoiceService
}

func NewInteractor(svc *service.VoiceService) *Interactor {
	return &Interactor{svc: svc}
}

func (i *Interactor) Say(ctx context.Context, u dto.Utterance) dto.SayOutput {
	return i.svc.Say(ctx, u)
}

func (i *Interactor) Stop(ctx context.Context) {
	i.svc.Stop(ctx)
}
