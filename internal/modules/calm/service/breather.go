package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"studybuddy/internal/platform/clock"
)

// Hooks receive breather ticks after its lock is released.
type Hooks struct {
	// Breath runs once per completed cycle with the running count.
	Breath func(breaths int)
	// Ready runs once, readyAfter into the exercise.
	Ready func()
}

type State struct {
	Running    bool
	ElapsedSec int
	Breaths    int
	Ready      bool
}

// Breather counts breathing cycles on the injected clock. Each Start opens a
// new generation; callbacks of an earlier generation do nothing.
type Breather struct {
	clock      clock.Clock
	cycle      time.Duration
	readyAfter time.Duration
	log        *zap.Logger

	mu         sync.Mutex
	gen        uint64
	running    bool
	started    time.Time
	stopped    time.Time
	breaths    int
	ready      bool
	hooks      Hooks
	breath     clock.Timer
	readyTimer clock.Timer
}

func NewBreather(clk clock.Clock, cycle, readyAfter time.Duration, log *zap.Logger) *Breather {
	if log == nil {
		log = zap.NewNop()
	}
	return &Breather{clock: clk, cycle: cycle, readyAfter: readyAfter, log: log}
}

// Start resets the counters and arms the first cycle. It reports false, and
// changes nothing, while already running.
func (b *Breather) Start(hooks Hooks) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return false
	}
	b.gen++
	b.running = true
	b.started = b.clock.Now()
	b.breaths = 0
	b.ready = false
	b.hooks = hooks
	gen := b.gen
	b.armBreath(gen, b.started)
	if b.readyAfter > 0 {
		b.readyTimer = b.clock.AfterFunc(b.readyAfter, func() { b.fireReady(gen) })
	}
	b.log.Debug("breathing started", zap.Uint64("generation", gen), zap.Duration("cycle", b.cycle))
	return true
}

// Stop cancels pending ticks and freezes the counters. Safe to repeat.
func (b *Breather) Stop() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		b.gen++
		b.running = false
		b.stopped = b.clock.Now()
		for _, slot := range []*clock.Timer{&b.breath, &b.readyTimer} {
			if *slot != nil {
				(*slot).Stop()
				*slot = nil
			}
		}
	}
	return b.stateLocked()
}

func (b *Breather) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Breather) stateLocked() State {
	end := b.stopped
	if b.running {
		end = b.clock.Now()
	}
	elapsed := 0
	if !b.started.IsZero() && end.After(b.started) {
		elapsed = int(end.Sub(b.started) / time.Second)
	}
	return State{Running: b.running, ElapsedSec: elapsed, Breaths: b.breaths, Ready: b.ready}
}

// armBreath schedules the cycle ending one period after from. Must hold b.mu.
func (b *Breather) armBreath(gen uint64, from time.Time) {
	if b.cycle <= 0 {
		return
	}
	due := from.Add(b.cycle)
	b.breath = b.clock.AfterFunc(due.Sub(b.clock.Now()), func() {
		b.mu.Lock()
		if !b.running || gen != b.gen {
			b.mu.Unlock()
			return
		}
		b.breaths++
		n, hook := b.breaths, b.hooks.Breath
		b.armBreath(gen, due)
		b.mu.Unlock()
		if hook != nil {
			hook(n)
		}
	})
}

func (b *Breather) fireReady(gen uint64) {
	b.mu.Lock()
	if !b.running || gen != b.gen || b.ready {
		b.mu.Unlock()
		return
	}
	b.ready = true
	b.readyTimer = nil
	hook := b.hooks.Ready
	b.mu.Unlock()
	if hook != nil {
		hook()
	}
}
