package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/platform/clock"
)

var epoch = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()
	m := clock.NewManual(epoch)
	var fired []string
	m.AfterFunc(3*time.Second, func() { fired = append(fired, "c") })
	m.AfterFunc(time.Second, func() { fired = append(fired, "a") })
	m.AfterFunc(time.Second, func() { fired = append(fired, "b") })

	m.Advance(2 * time.Second)
	assert.Equal(t, []string{"a", "b"}, fired)
	assert.Equal(t, epoch.Add(2*time.Second), m.Now())

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, fired)
	assert.Zero(t, m.Pending())
}

func TestManualRunsCallbacksScheduledDuringAdvance(t *testing.T) {
	t.Parallel()
	m := clock.NewManual(epoch)
	var at []time.Duration
	var tick func()
	tick = func() {
		at = append(at, m.Now().Sub(epoch))
		m.AfterFunc(time.Minute, tick)
	}
	m.AfterFunc(time.Minute, tick)

	m.Advance(3*time.Minute + 30*time.Second)
	assert.Equal(t, []time.Duration{time.Minute, 2 * time.Minute, 3 * time.Minute}, at)
	assert.Equal(t, 1, m.Pending())
}

func TestManualStop(t *testing.T) {
	t.Parallel()
	m := clock.NewManual(epoch)
	ran := false
	timer := m.AfterFunc(time.Second, func() { ran = true })

	require.True(t, timer.Stop())
	require.False(t, timer.Stop())
	m.Advance(time.Hour)
	assert.False(t, ran)
}
