package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	calm "studybuddy/internal/modules/calm/domain"
	profile "studybuddy/internal/modules/profile/domain"
	"studybuddy/internal/modules/session/domain"
	"studybuddy/internal/modules/session/port/out"
	voicedto "studybuddy/internal/modules/voice/dto"
)

// ProgressStore owns the persisted keys. Unparseable values read as their
// zero value and are logged, never returned as errors.
type ProgressStore struct {
	kv  out.KVStore
	log *zap.Logger
}

func NewProgressStore(kv out.KVStore, log *zap.Logger) *ProgressStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProgressStore{kv: kv, log: log}
}

func (p *ProgressStore) Totals(ctx context.Context) (domain.Totals, error) {
	var (
		totals        domain.Totals
		total, streak string
		last          string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, _, err = p.kv.Get(gctx, domain.KeyTotalFocusTime)
		return err
	})
	g.Go(func() (err error) {
		streak, _, err = p.kv.Get(gctx, domain.KeyCurrentStreak)
		return err
	})
	g.Go(func() (err error) {
		last, _, err = p.kv.Get(gctx, domain.KeyLastSessionDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Totals{}, fmt.Errorf("read totals: %w", err)
	}
	totals.TotalFocusTimeSec = p.parseInt(domain.KeyTotalFocusTime, total)
	totals.CurrentStreakCount = p.parseInt(domain.KeyCurrentStreak, streak)
	if last != "" {
		at, err := time.Parse(domain.ISOLayout, last)
		if err != nil {
			p.log.Warn("ignore stored value", zap.String("key", domain.KeyLastSessionDate), zap.Error(err))
		} else {
			totals.LastSessionDate = at
		}
	}
	return totals, nil
}

func (p *ProgressStore) parseInt(key, raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.log.Warn("ignore stored value", zap.String("key", key), zap.String("value", raw))
		return 0
	}
	return v
}

// SaveSession writes the new totals and the session log. The writes are
// independent and go out together.
func (p *ProgressStore) SaveSession(ctx context.Context, totals domain.Totals, entries []domain.InteractionEntry) error {
	if entries == nil {
		entries = []domain.InteractionEntry{}
	}
	encoded, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode session log: %w", err)
	}
	writes := map[string]string{
		domain.KeyTotalFocusTime: strconv.Itoa(totals.TotalFocusTimeSec),
		domain.KeyCurrentStreak:  strconv.Itoa(totals.CurrentStreakCount),
		domain.KeyLastSessionLog: string(encoded),
	}
	if !totals.LastSessionDate.IsZero() {
		writes[domain.KeyLastSessionDate] = domain.FormatISO(totals.LastSessionDate)
	}
	return p.setAll(ctx, writes)
}

func (p *ProgressStore) setAll(ctx context.Context, writes map[string]string) error {
	g, gctx := errgroup.WithContext(ctx)
	for key, value := range writes {
		g.Go(func() error {
			if err := p.kv.Set(gctx, key, value); err != nil {
				return fmt.Errorf("write %s: %w", key, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Reset zeroes the focus and calm counters and clears the last session log.
// Feedback history is kept.
func (p *ProgressStore) Reset(ctx context.Context) error {
	return p.setAll(ctx, map[string]string{
		domain.KeyTotalFocusTime: "0",
		domain.KeyCurrentStreak:  "0",
		domain.KeyCalmStreak:     "0",
		domain.KeyLastSessionLog: "[]",
	})
}

func (p *ProgressStore) CalmStreak(ctx context.Context) (int, error) {
	raw, _, err := p.kv.Get(ctx, domain.KeyCalmStreak)
	if err != nil {
		return 0, fmt.Errorf("read calm streak: %w", err)
	}
	return p.parseInt(domain.KeyCalmStreak, raw), nil
}

type calmLogJSON struct {
	Duration    int    `json:"duration"`
	BreathCount int    `json:"breathCount"`
	Timestamp   string `json:"timestamp"`
}

// SaveCalm stores the new calm streak with the finished exercise.
func (p *ProgressStore) SaveCalm(ctx context.Context, streak int, log calm.Log) error {
	at := domain.FormatISO(log.At)
	encoded, err := json.Marshal(calmLogJSON{Duration: log.DurationSec, BreathCount: log.BreathCount, Timestamp: at})
	if err != nil {
		return fmt.Errorf("encode calm log: %w", err)
	}
	return p.setAll(ctx, map[string]string{
		domain.KeyCalmStreak:      strconv.Itoa(streak),
		domain.KeyLastCalmSession: at,
		domain.KeyLastCalmLog:     string(encoded),
	})
}

func (p *ProgressStore) FeedbackHistory(ctx context.Context) ([]domain.FeedbackEntry, error) {
	raw, ok, err := p.kv.Get(ctx, domain.KeyFeedbackHistory)
	if err != nil {
		return nil, fmt.Errorf("read feedback history: %w", err)
	}
	history := []domain.FeedbackEntry{}
	if !ok || raw == "" {
		return history, nil
	}
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		p.log.Warn("ignore stored value", zap.String("key", domain.KeyFeedbackHistory), zap.Error(err))
		return []domain.FeedbackEntry{}, nil
	}
	return history, nil
}

// AppendFeedback adds entry and drops the oldest answers beyond
// FeedbackHistoryLimit. It returns the stored length.
func (p *ProgressStore) AppendFeedback(ctx context.Context, entry domain.FeedbackEntry) (int, error) {
	history, err := p.FeedbackHistory(ctx)
	if err != nil {
		return 0, err
	}
	history = append(history, entry)
	if extra := len(history) - domain.FeedbackHistoryLimit; extra > 0 {
		history = history[extra:]
	}
	encoded, err := json.Marshal(history)
	if err != nil {
		return 0, fmt.Errorf("encode feedback history: %w", err)
	}
	if err := p.kv.Set(ctx, domain.KeyFeedbackHistory, string(encoded)); err != nil {
		return 0, fmt.Errorf("write feedback history: %w", err)
	}
	return len(history), nil
}

func (p *ProgressStore) LastSessionLog(ctx context.Context) ([]domain.InteractionEntry, error) {
	raw, ok, err := p.kv.Get(ctx, domain.KeyLastSessionLog)
	if err != nil {
		return nil, fmt.Errorf("read session log: %w", err)
	}
	entries := []domain.InteractionEntry{}
	if !ok || raw == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		p.log.Warn("ignore stored value", zap.String("key", domain.KeyLastSessionLog), zap.Error(err))
		return []domain.InteractionEntry{}, nil
	}
	return entries, nil
}

// SpeechSettings falls back to the defaults when nothing valid is stored.
// Stored fields override defaults one by one.
func (p *ProgressStore) SpeechSettings(ctx context.Context) (voicedto.Settings, error) {
	settings := voicedto.DefaultSettings()
	raw, ok, err := p.kv.Get(ctx, domain.KeySpeechSettings)
	if err != nil {
		return settings, fmt.Errorf("read speech settings: %w", err)
	}
	if !ok || raw == "" {
		return settings, nil
	}
	stored := settings
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		p.log.Warn("ignore stored value", zap.String("key", domain.KeySpeechSettings), zap.Error(err))
		return settings, nil
	}
	return stored, nil
}

func (p *ProgressStore) SaveSpeechSettings(ctx context.Context, settings voicedto.Settings) error {
	encoded, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode speech settings: %w", err)
	}
	return p.kv.Set(ctx, domain.KeySpeechSettings, string(encoded))
}

// Age returns the stored age key, or the default group when none is stored.
func (p *ProgressStore) Age(ctx context.Context) (profile.AgeKey, error) {
	raw, ok, err := p.kv.Get(ctx, domain.KeySelectedAge)
	if err != nil {
		return profile.DefaultAge, fmt.Errorf("read age: %w", err)
	}
	if !ok {
		return profile.DefaultAge, nil
	}
	return profile.ParseAge(raw), nil
}

func (p *ProgressStore) SetAge(ctx context.Context, key profile.AgeKey) error {
	return p.kv.Set(ctx, domain.KeySelectedAge, string(key))
}

// Buddy returns the stored buddy, or the first buddy of the age group.
func (p *ProgressStore) Buddy(ctx context.Context, age profile.AgeKey) (profile.Buddy, error) {
	raw, ok, err := p.kv.Get(ctx, domain.KeySelectedBuddy)
	if err != nil {
		return profile.BuddyFor(string(age), ""), fmt.Errorf("read buddy: %w", err)
	}
	if !ok || raw == "" {
		return profile.BuddyFor(string(age), ""), nil
	}
	var stored profile.Buddy
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		p.log.Warn("ignore stored value", zap.String("key", domain.KeySelectedBuddy), zap.Error(err))
		return profile.BuddyFor(string(age), ""), nil
	}
	return stored, nil
}

func (p *ProgressStore) SetBuddy(ctx context.Context, buddy profile.Buddy) error {
	encoded, err := json.Marshal(buddy)
	if err != nil {
		return fmt.Errorf("encode buddy: %w", err)
	}
	return p.kv.Set(ctx, domain.KeySelectedBuddy, string(encoded))
}
