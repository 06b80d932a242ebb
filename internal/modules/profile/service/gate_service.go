package service

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"studybuddy/internal/modules/profile/domain"
	"studybuddy/internal/platform/clock"
	apperrors "studybuddy/internal/platform/errors"
	"studybuddy/internal/platform/random"
)

type GateResult struct {
	Passed       bool
	Locked       bool
	AttemptsLeft int
	LockedFor    time.Duration
}

// GateService tracks one challenge at a time. Consecutive wrong answers lock
// the gate for a fixed period.
type GateService struct {
	clock       clock.Clock
	rnd         random.Source
	log         *zap.Logger
	maxAttempts int
	lockout     time.Duration

	mu          sync.Mutex
	current     *domain.GateChallenge
	wrong       int
	lockedUntil time.Time
}

func NewGateService(clk clock.Clock, rnd random.Source, log *zap.Logger, maxAttempts int, lockout time.Duration) *GateService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GateService{clock: clk, rnd: rnd, log: log, maxAttempts: maxAttempts, lockout: lockout}
}

// Open issues a fresh challenge for the age group's gate difficulty.
func (s *GateService) Open(age string) (domain.GateChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lockedErr(); err != nil {
		return domain.GateChallenge{}, err
	}
	challenge := domain.GenerateGate(domain.Resolve(age).Gate, s.rnd)
	s.current = &challenge
	return challenge, nil
}

func (s *GateService) Submit(answer string) (GateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lockedErr(); err != nil {
		return GateResult{}, err
	}
	if s.current == nil {
		return GateResult{}, fmt.Errorf("%w: no open gate challenge", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(answer) == s.current.Answer {
		s.current = nil
		s.wrong = 0
		return GateResult{Passed: true}, nil
	}
	s.wrong++
	if s.wrong >= s.maxAttempts {
		s.current = nil
		s.wrong = 0
		s.lockedUntil = s.clock.Now().Add(s.lockout)
		s.log.Info("parent gate locked", zap.Duration("lockout", s.lockout))
		return GateResult{Locked: true, LockedFor: s.lockout}, nil
	}
	return GateResult{AttemptsLeft: s.maxAttempts - s.wrong}, nil
}

// Cancel closes the open challenge and forgets wrong answers. An active
// lockout stays in place.
func (s *GateService) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.wrong = 0
}

func (s *GateService) lockedErr() error {
	remaining := s.lockedUntil.Sub(s.clock.Now())
	if remaining <= 0 {
		return nil
	}
	secs := int(math.Ceil(remaining.Seconds()))
	return fmt.Errorf("%w for %d more seconds", apperrors.ErrGateLocked, secs)
}
