package out

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"studybuddy/internal/modules/session/domain"
	sessionout "studybuddy/internal/modules/session/port/out"
	"studybuddy/internal/platform/clock"
)

// TerminalNotifier stands in for the platform notification centre: a
// scheduled reminder is written to w when it falls due.
type TerminalNotifier struct {
	clock clock.Clock
	w     io.Writer

	mu      sync.Mutex
	pending map[string]clock.Timer
}

func NewTerminalNotifier(clk clock.Clock, w io.Writer) *TerminalNotifier {
	return &TerminalNotifier{clock: clk, w: w, pending: map[string]clock.Timer{}}
}

var _ sessionout.Notifier = (*TerminalNotifier)(nil)

func (n *TerminalNotifier) Schedule(_ context.Context, note domain.Notification, fireIn time.Duration) (string, error) {
	id := uuid.NewString()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending[id] = n.clock.AfterFunc(fireIn, func() { n.deliver(id, note) })
	return id, nil
}

func (n *TerminalNotifier) Cancel(_ context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	t, ok := n.pending[id]
	if !ok {
		return fmt.Errorf("reminder %s is not pending", id)
	}
	t.Stop()
	delete(n.pending, id)
	return nil
}

// Pending reports how many reminders have not fired or been cancelled.
func (n *TerminalNotifier) Pending() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pending)
}

func (n *TerminalNotifier) deliver(id string, note domain.Notification) {
	n.mu.Lock()
	if _, ok := n.pending[id]; !ok {
		n.mu.Unlock()
		return
	}
	delete(n.pending, id)
	n.mu.Unlock()
	fmt.Fprintf(n.w, "🔔 %s: %s [%s: RESUME | BREAK | DONE]\n", note.Title, note.Body, note.CategoryID)
}

// NoopNotifier accepts and forgets every reminder, for when notifications
// are turned off.
type NoopNotifier struct{}

func (NoopNotifier) Schedule(context.Context, domain.Notification, time.Duration) (string, error) {
	return uuid.NewString(), nil
}

func (NoopNotifier) Cancel(context.Context, string) error { return nil }
