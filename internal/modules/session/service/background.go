package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"studybuddy/internal/modules/session/domain"
	"studybuddy/internal/modules/session/port/out"
	voice "studybuddy/internal/modules/voice/domain"
	"studybuddy/internal/platform/random"
)

// Background tracks the foreground flag and the reminders handed to the
// notifier while the app is hidden. Notifier failures never change session
// state.
type Background struct {
	notifier out.Notifier
	inbox    out.ActionInbox
	rnd      random.Source
	log      *zap.Logger
	count    int
	floor    time.Duration

	mu         sync.Mutex
	foreground bool
	pending    []domain.ScheduledReminder
}

func NewBackground(notifier out.Notifier, inbox out.ActionInbox, rnd random.Source, log *zap.Logger, count int, floor time.Duration) *Background {
	if log == nil {
		log = zap.NewNop()
	}
	return &Background{
		notifier:   notifier,
		inbox:      inbox,
		rnd:        rnd,
		log:        log,
		count:      count,
		floor:      floor,
		foreground: true,
	}
}

func (b *Background) Foreground() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.foreground
}

// EnterBackground records the transition and, for an active session,
// schedules reminders spaced by interval. It reports false when the app was
// already in the background.
func (b *Background) EnterBackground(ctx context.Context, active bool, interval time.Duration, messages []string) ([]domain.ScheduledReminder, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.foreground {
		return nil, false
	}
	b.foreground = false
	if !active || len(messages) == 0 {
		return nil, true
	}
	for _, offset := range domain.ReminderOffsets(b.count, interval, b.floor) {
		body := voice.Speakable(random.Pick(b.rnd, messages))
		n := domain.Notification{Title: domain.ReminderTitle, Body: body, CategoryID: domain.CategoryCheckIn}
		id, err := b.notifier.Schedule(ctx, n, offset)
		if err != nil {
			b.log.Warn("schedule reminder failed", zap.Duration("fire_in", offset), zap.Error(err))
			continue
		}
		b.pending = append(b.pending, domain.ScheduledReminder{
			ID:            id,
			FireOffsetSec: int(offset / time.Second),
			PayloadText:   body,
		})
	}
	b.log.Debug("reminders scheduled", zap.Int("count", len(b.pending)))
	return append([]domain.ScheduledReminder(nil), b.pending...), true
}

// EnterForeground cancels outstanding reminders and takes the pending
// notification action, if any. It reports false when the app was already in
// the foreground.
func (b *Background) EnterForeground(ctx context.Context) (cancelled int, action domain.Action, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.foreground {
		return 0, "", false
	}
	b.foreground = true
	cancelled = b.cancelLocked(ctx)

	raw, err := b.inbox.Take(ctx)
	if err != nil {
		b.log.Warn("read notification action failed", zap.Error(err))
		return cancelled, "", true
	}
	if raw == "" {
		return cancelled, "", true
	}
	parsed, valid := domain.ParseAction(raw)
	if !valid {
		b.log.Warn("ignore notification action", zap.String("action", raw))
		return cancelled, "", true
	}
	return cancelled, parsed, true
}

// CancelAll drops every outstanding reminder, for example on session end.
func (b *Background) CancelAll(ctx context.Context) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancelLocked(ctx)
}

func (b *Background) cancelLocked(ctx context.Context) int {
	n := len(b.pending)
	for _, r := range b.pending {
		if err := b.notifier.Cancel(ctx, r.ID); err != nil {
			b.log.Debug("cancel reminder failed", zap.String("id", r.ID), zap.Error(err))
		}
	}
	b.pending = nil
	return n
}
