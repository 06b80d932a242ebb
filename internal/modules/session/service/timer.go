package service

import (
	"sync"

	"studybuddy/internal/modules/session/domain"
	"studybuddy/internal/platform/clock"
)

// SessionTimer guards a SessionClock and reads time from clk. It takes no
// other lock, so schedulers may query it from timer callbacks.
type SessionTimer struct {
	clk clock.Clock

	mu sync.Mutex
	c  domain.SessionClock
}

func NewSessionTimer(clk clock.Clock) *SessionTimer {
	return &SessionTimer{clk: clk}
}

func (t *SessionTimer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.c.Start(t.clk.Now())
}

func (t *SessionTimer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.c.Pause(t.clk.Now())
}

func (t *SessionTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.c.Stop(t.clk.Now())
}

func (t *SessionTimer) ElapsedSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.c.ElapsedSeconds(t.clk.Now())
}

func (t *SessionTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.c.Running()
}
