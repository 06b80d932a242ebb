package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"studybuddy/internal/modules/calm/service"
	"studybuddy/internal/platform/clock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var start = time.Date(2026, 3, 3, 16, 0, 0, 0, time.UTC)

func TestBreatherCountsCyclesAndSignalsReadyOnce(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	b := service.NewBreather(clk, 8*time.Second, 5*time.Minute, nil)
	var breaths []int
	ready := 0
	assert.True(t, b.Start(service.Hooks{
		Breath: func(n int) { breaths = append(breaths, n) },
		Ready:  func() { ready++ },
	}))
	assert.False(t, b.Start(service.Hooks{}))

	clk.Advance(25 * time.Second)
	assert.Equal(t, []int{1, 2, 3}, breaths)
	assert.Equal(t, service.State{Running: true, ElapsedSec: 25, Breaths: 3}, b.State())

	clk.Advance(5 * time.Minute)
	assert.Equal(t, 1, ready)
	assert.True(t, b.State().Ready)
	assert.Len(t, breaths, 40)
}

func TestBreatherStopFreezesAndCancels(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	b := service.NewBreather(clk, 8*time.Second, 5*time.Minute, nil)
	calls := 0
	b.Start(service.Hooks{Breath: func(int) { calls++ }})
	clk.Advance(17 * time.Second)

	st := b.Stop()
	assert.Equal(t, service.State{ElapsedSec: 17, Breaths: 2}, st)
	assert.Zero(t, clk.Pending())

	clk.Advance(time.Minute)
	assert.Equal(t, 2, calls)
	assert.Equal(t, st, b.Stop())

	assert.True(t, b.Start(service.Hooks{}))
	assert.Zero(t, b.State().Breaths)
	b.Stop()
}
