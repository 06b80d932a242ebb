package out

import (
	"context"
	"time"

	"studybuddy/internal/modules/session/domain"
	"studybuddy/internal/modules/session/dto"
)

// KVStore is the namespaced string store. A missing key is ("", false, nil).
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Notifier schedules local reminders and returns an opaque handle.
type Notifier interface {
	Schedule(ctx context.Context, n domain.Notification, fireIn time.Duration) (string, error)
	Cancel(ctx context.Context, id string) error
}

// ActionInbox holds the identifier of the last notification button pressed.
type ActionInbox interface {
	Record(ctx context.Context, action string) error
	// Take returns the recorded action and clears it.
	Take(ctx context.Context) (string, error)
}

type HapticKind string

const (
	HapticSuccess     HapticKind = "success"
	HapticLightImpact HapticKind = "light_impact"
)

// Haptics is fire-and-forget.
type Haptics interface {
	Signal(ctx context.Context, kind HapticKind)
}

type ReportStore interface {
	Save(ctx context.Context, report domain.Report) (string, error)
}

// EventSink receives engine events after all session locks are released.
type EventSink interface {
	Publish(e dto.Event)
}
