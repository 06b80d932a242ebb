package domain

import (
	"time"

	apperrors "studybuddy/internal/platform/errors"
)

// SessionClock accounts elapsed study time from wall-clock deltas. It keeps
// the time accumulated over finished running intervals plus the anchor of
// the current one.
type SessionClock struct {
	accumulated time.Duration
	anchor      time.Time
	running     bool
	ended       bool
}

// Start begins or resumes timing. It is a no-op while running and fails once
// the clock has been stopped.
func (c *SessionClock) Start(now time.Time) error {
	if c.ended {
		return apperrors.ErrSessionEnded
	}
	if c.running {
		return nil
	}
	c.anchor = now
	c.running = true
	return nil
}

// Pause freezes the elapsed value. Pausing a paused clock does nothing.
func (c *SessionClock) Pause(now time.Time) {
	if !c.running {
		return
	}
	c.accumulated += nonNegative(now.Sub(c.anchor))
	c.running = false
}

// Stop freezes the clock for good; the elapsed value stays readable.
func (c *SessionClock) Stop(now time.Time) {
	c.Pause(now)
	c.ended = true
}

func (c *SessionClock) Elapsed(now time.Time) time.Duration {
	if !c.running {
		return c.accumulated
	}
	return c.accumulated + nonNegative(now.Sub(c.anchor))
}

// ElapsedSeconds floors Elapsed to whole seconds.
func (c *SessionClock) ElapsedSeconds(now time.Time) int {
	return int(c.Elapsed(now) / time.Second)
}

func (c *SessionClock) Running() bool { return c.running }
func (c *SessionClock) Ended() bool   { return c.ended }

// RunningSince is the anchor of the current running interval.
func (c *SessionClock) RunningSince() (time.Time, bool) {
	return c.anchor, c.running
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
