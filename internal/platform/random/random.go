// Package random supplies the uniform source behind every chance-based
// decision, so tests can replace it with a seeded one.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source is a uniform random source. Implementations are shared between the
// session orchestrator and scheduler callbacks and must be safe for
// concurrent use.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// IntN returns a value in [0, n). n must be positive.
	IntN(n int) int
}

// System draws from the runtime's global generator.
type System struct{}

func (System) Float64() float64 { return rand.Float64() }
func (System) IntN(n int) int   { return rand.IntN(n) }

// NewSeeded returns a reproducible source.
func NewSeeded(seed uint64) Source {
	return &locked{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Pick returns a uniformly chosen element, or the zero value for an empty
// slice.
func Pick[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[src.IntN(len(items))]
}
