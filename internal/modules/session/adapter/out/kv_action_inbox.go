package out

import (
	"context"

	"studybuddy/internal/modules/session/domain"
	sessionout "studybuddy/internal/modules/session/port/out"
)

// KVActionInbox keeps the last notification action in the key store so a
// separate process (the remind command) can record it.
type KVActionInbox struct {
	kv sessionout.KVStore
}

func NewKVActionInbox(kv sessionout.KVStore) sessionout.ActionInbox {
	return &KVActionInbox{kv: kv}
}

func (b *KVActionInbox) Record(ctx context.Context, action string) error {
	return b.kv.Set(ctx, domain.KeyLastNotifAction, action)
}

func (b *KVActionInbox) Take(ctx context.Context) (string, error) {
	action, ok, err := b.kv.Get(ctx, domain.KeyLastNotifAction)
	if err != nil || !ok || action == "" {
		return "", err
	}
	if err := b.kv.Set(ctx, domain.KeyLastNotifAction, ""); err != nil {
		return "", err
	}
	return action, nil
}
