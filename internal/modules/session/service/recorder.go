package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"studybuddy/internal/modules/session/domain"
	"studybuddy/internal/platform/clock"
)

// Recorder collects the interaction log of one session and folds the session
// into the persisted totals exactly once.
type Recorder struct {
	store *ProgressStore
	clock clock.Clock
	log   *zap.Logger

	mu        sync.Mutex
	entries   []domain.InteractionEntry
	finalized bool
	outcome   domain.Outcome
}

func NewRecorder(store *ProgressStore, clk clock.Clock, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{store: store, clock: clk, log: log}
}

// Record appends an entry. Values outside the prompt's options are kept.
func (r *Recorder) Record(elapsedSec int, promptID, value string) domain.InteractionEntry {
	entry := domain.InteractionEntry{
		AtElapsedSec:  elapsedSec,
		PromptID:      promptID,
		ResponseValue: value,
		TimestampISO:  domain.FormatISO(r.clock.Now()),
	}
	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
	return entry
}

func (r *Recorder) Entries() []domain.InteractionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.InteractionEntry(nil), r.entries...)
}

// Finalize adds elapsedSec and one streak to the stored totals and writes the
// interaction log. Later calls return the first outcome unchanged. Storage
// failures are logged; the returned outcome still reflects the new totals.
// When the totals cannot be read they count from zero, and the write then
// replaces whatever was stored.
func (r *Recorder) Finalize(ctx context.Context, elapsedSec int) domain.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finalized {
		return r.outcome
	}
	r.finalized = true

	totals, err := r.store.Totals(ctx)
	if err != nil {
		r.log.Warn("read totals failed, starting from zero", zap.Error(err))
		totals = domain.Totals{}
	}
	if elapsedSec < 0 {
		elapsedSec = 0
	}
	totals.TotalFocusTimeSec += elapsedSec
	totals.CurrentStreakCount++
	totals.LastSessionDate = r.clock.Now()

	if err := r.store.SaveSession(ctx, totals, r.entries); err != nil {
		r.log.Warn("persist session outcome failed", zap.Error(err))
	}
	r.outcome = domain.Outcome{
		ElapsedSec:   elapsedSec,
		TotalTimeSec: totals.TotalFocusTimeSec,
		NewStreak:    totals.CurrentStreakCount,
	}
	r.log.Info("session finalized",
		zap.Int("elapsed_sec", elapsedSec),
		zap.Int("total_focus_sec", r.outcome.TotalTimeSec),
		zap.Int("streak", r.outcome.NewStreak),
		zap.Int("interactions", len(r.entries)))
	return r.outcome
}

func (r *Recorder) Finalized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finalized
}
