package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"studybuddy/internal/modules/calm/domain"
	calmdto "studybuddy/internal/modules/calm/dto"
	calmin "studybuddy/internal/modules/calm/port/in"
	calmout "studybuddy/internal/modules/calm/port/out"
	"studybuddy/internal/modules/calm/service"
	profile "studybuddy/internal/modules/profile/domain"
	voicedto "studybuddy/internal/modules/voice/dto"
	voicein "studybuddy/internal/modules/voice/port/in"
	"studybuddy/internal/platform/clock"
	"studybuddy/internal/platform/config"
	apperrors "studybuddy/internal/platform/errors"
)

// Deps are the collaborators of the breathing exercise. Voice and Sink may be
// nil.
type Deps struct {
	Clock  clock.Clock
	Store  calmout.Store
	Voice  voicein.Usecase
	Sink   calmout.EventSink
	Log    *zap.Logger
	Timing config.Timing
}

type exercise struct {
	seq      uint64
	age      profile.AgeKey
	settings voicedto.Settings
	streak   int
}

// Interactor runs one breathing exercise at a time. Its lock is taken before
// the breather's; speech and events go out after it is released.
type Interactor struct {
	deps     Deps
	log      *zap.Logger
	breather *service.Breather

	mu  sync.Mutex
	seq uint64
	cur *exercise
}

func NewInteractor(deps Deps) *Interactor {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{
		deps:     deps,
		log:      log,
		breather: service.NewBreather(deps.Clock, deps.Timing.BreathingCycle, deps.Timing.CalmReadyAfter, log),
	}
}

var _ calmin.Usecase = (*Interactor)(nil)

func (i *Interactor) Start(ctx context.Context, age string) (calmdto.StartOutput, error) {
	var after []func()
	defer func() { run(after) }()
	i.mu.Lock()
	defer i.mu.Unlock()

	if e := i.cur; e != nil {
		return i.startOutput(e, true), nil
	}
	key := profile.ParseAge(age)
	if strings.TrimSpace(age) == "" {
		stored, err := i.deps.Store.Age(ctx)
		if err != nil {
			i.log.Warn("read age failed", zap.Error(err))
		}
		key = profile.ParseAge(string(stored))
	}
	settings, err := i.deps.Store.SpeechSettings(ctx)
	if err != nil {
		i.log.Warn("read speech settings failed", zap.Error(err))
	}
	streak, err := i.deps.Store.CalmStreak(ctx)
	if err != nil {
		i.log.Warn("read calm streak failed", zap.Error(err))
	}

	i.seq++
	e := &exercise{seq: i.seq, age: key, settings: settings, streak: streak}
	i.cur = e
	seq := e.seq
	i.breather.Start(service.Hooks{
		Breath: func(n int) { i.onBreath(seq, n) },
		Ready:  func() { i.onReady(seq) },
	})

	intro := domain.IntroMessage(key)
	after = append(after, i.say(ctx, e, intro, domain.IntroRateShift)...)
	after = append(after, i.publish(i.event(domain.EventStarted, intro))...)
	i.log.Info("calm session started", zap.String("age", string(key)), zap.Int("calm_streak", streak))
	return i.startOutput(e, false), nil
}

// Finish records the exercise: the stored calm streak grows by one and the
// exercise log replaces the previous one. A failed write is logged and the
// result still reports the new streak.
func (i *Interactor) Finish(ctx context.Context) (calmdto.FinishOutput, error) {
	var after []func()
	defer func() { run(after) }()
	i.mu.Lock()
	defer i.mu.Unlock()

	e := i.cur
	if e == nil {
		return calmdto.FinishOutput{}, apperrors.ErrNoActiveSession
	}
	st := i.breather.Stop()
	i.cur = nil

	streak, err := i.deps.Store.CalmStreak(ctx)
	if err != nil {
		i.log.Warn("read calm streak failed, counting from zero", zap.Error(err))
		streak = 0
	}
	streak++
	log := domain.Log{DurationSec: st.ElapsedSec, BreathCount: st.Breaths, At: i.deps.Clock.Now()}
	if err := i.deps.Store.SaveCalm(ctx, streak, log); err != nil {
		i.log.Warn("persist calm session failed", zap.Error(err))
	}

	out := calmdto.FinishOutput{
		DurationSec: st.ElapsedSec,
		Breaths:     st.Breaths,
		NewStreak:   streak,
		Title:       domain.FinishTitle,
		Message:     domain.FinishMessage(e.age),
	}
	ev := i.event(domain.EventFinished, out.Message)
	ev.ElapsedSec, ev.Breaths, ev.Title = st.ElapsedSec, st.Breaths, out.Title
	after = append(after, i.publish(ev)...)
	i.log.Info("calm session finished",
		zap.Int("duration_sec", st.ElapsedSec),
		zap.Int("breaths", st.Breaths),
		zap.Int("calm_streak", streak))
	return out, nil
}

func (i *Interactor) Stop(ctx context.Context) {
	i.mu.Lock()
	active := i.cur != nil
	i.breather.Stop()
	i.cur = nil
	i.mu.Unlock()
	if active && i.deps.Voice != nil {
		i.deps.Voice.Stop(ctx)
	}
}

func (i *Interactor) Snapshot(context.Context) calmdto.SnapshotOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	e := i.cur
	if e == nil {
		return calmdto.SnapshotOutput{}
	}
	st := i.breather.State()
	return calmdto.SnapshotOutput{
		Active:     true,
		Age:        string(e.age),
		ElapsedSec: st.ElapsedSec,
		Breaths:    st.Breaths,
		Phase:      string(domain.PhaseAfter(st.Breaths)),
		Ready:      st.Ready,
		Streak:     e.streak,
	}
}

func (i *Interactor) onBreath(seq uint64, n int) {
	var after []func()
	defer func() { run(after) }()
	i.mu.Lock()
	defer i.mu.Unlock()
	e := i.cur
	if e == nil || e.seq != seq {
		return
	}
	ev := i.event(domain.EventBreath, "")
	ev.Breaths = n
	ev.Phase = string(domain.PhaseAfter(n))
	after = append(after, i.publish(ev)...)
	if prompt, ok := domain.BreathPrompt(e.age, n); ok {
		after = append(after, i.say(context.Background(), e, prompt, domain.PromptRateShift)...)
		pe := i.event(domain.EventPrompt, prompt)
		pe.Breaths = n
		after = append(after, i.publish(pe)...)
	}
}

func (i *Interactor) onReady(seq uint64) {
	var after []func()
	defer func() { run(after) }()
	i.mu.Lock()
	defer i.mu.Unlock()
	if e := i.cur; e == nil || e.seq != seq {
		return
	}
	ev := i.event(domain.EventReady, domain.ReadyText)
	ev.Title = domain.ReadyTitle
	after = append(after, i.publish(ev)...)
}

func (i *Interactor) say(ctx context.Context, e *exercise, text string, rateShift float64) []func() {
	if i.deps.Voice == nil {
		return nil
	}
	u := voicedto.Utterance{
		Text:       text,
		Screen:     voicedto.ScreenCalm,
		Age:        string(e.age),
		PitchShift: domain.PitchShift,
		RateShift:  rateShift,
		Settings:   e.settings,
	}
	return []func(){func() { i.deps.Voice.Say(ctx, u) }}
}

func (i *Interactor) publish(ev calmdto.Event) []func() {
	if i.deps.Sink == nil {
		return nil
	}
	return []func(){func() { i.deps.Sink.Publish(ev) }}
}

// event stamps a new event with the breather's current counters. Must hold
// i.mu.
func (i *Interactor) event(kind domain.EventKind, text string) calmdto.Event {
	st := i.breather.State()
	return calmdto.Event{
		Kind:       string(kind),
		At:         i.deps.Clock.Now(),
		ElapsedSec: st.ElapsedSec,
		Breaths:    st.Breaths,
		Phase:      string(domain.PhaseAfter(st.Breaths)),
		Text:       text,
	}
}

func (i *Interactor) startOutput(e *exercise, resumed bool) calmdto.StartOutput {
	return calmdto.StartOutput{
		Age:      string(e.age),
		Message:  domain.IntroMessage(e.age),
		Streak:   e.streak,
		CycleSec: int(i.deps.Timing.BreathingCycle / time.Second),
		Resumed:  resumed,
	}
}

func run(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
