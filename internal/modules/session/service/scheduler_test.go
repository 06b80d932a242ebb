package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/modules/session/domain"
	"studybuddy/internal/modules/session/service"
	"studybuddy/internal/platform/clock"
	"studybuddy/internal/platform/random"
)

var start = time.Date(2026, 3, 3, 16, 0, 0, 0, time.UTC)

type recorded struct {
	gen uint64
	e   domain.Event
}

type eventLog struct {
	mu     sync.Mutex
	events []recorded
}

func (l *eventLog) listen(gen uint64, e domain.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, recorded{gen: gen, e: e})
}

func (l *eventLog) kinds() []domain.EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.EventKind, 0, len(l.events))
	for _, r := range l.events {
		out = append(out, r.e.Kind)
	}
	return out
}

func (l *eventLog) offsets() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]int, 0, len(l.events))
	for _, r := range l.events {
		out = append(out, int(r.e.At.Sub(start)/time.Second))
	}
	return out
}

func testTiming() service.SchedulerTiming {
	return service.SchedulerTiming{
		FadeDelay:      60 * time.Second,
		CheckInDisplay: 5 * time.Second,
		PromptTimeout:  30 * time.Second,
	}
}

func newScheduler(clk clock.Clock, rnd random.Source, log *eventLog) *service.Scheduler {
	return service.NewScheduler(clk, rnd, testTiming(), nil, log.listen)
}

func elementaryPlan(clk *clock.Manual) service.Plan {
	return service.Plan{
		SessionID:        "s1",
		CheckInEvery:     5 * time.Minute,
		InteractionEvery: 20 * time.Minute,
		CheckIns:         []string{"How's it going?"},
		Prompts:          domain.Prompts("elementary"),
		Elapsed:          func() int { return int(clk.Now().Sub(start) / time.Second) },
	}
}

func TestSchedulerTwelveMinuteElementarySession(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	log := &eventLog{}
	s := newScheduler(clk, &random.Scripted{Floats: []float64{0.5}}, log)

	_, started := s.Start(elementaryPlan(clk))
	require.True(t, started)
	clk.Advance(12 * time.Minute)

	want := []domain.EventKind{
		domain.EventBuddyFaded,
		domain.EventCheckInShown, domain.EventBuddyShown,
		domain.EventCheckInHidden, domain.EventBuddyFaded,
		domain.EventCheckInShown, domain.EventBuddyShown,
		domain.EventCheckInHidden, domain.EventBuddyFaded,
	}
	if diff := cmp.Diff(want, log.kinds()); diff != "" {
		t.Fatalf("event kinds mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{60, 300, 300, 305, 305, 600, 600, 605, 605}, log.offsets()); diff != "" {
		t.Fatalf("event offsets mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, s.Display().BuddyFaded)
	assert.Empty(t, s.Display().CheckIn)
}

func TestSchedulerFadeDuringCheckInWaitsForHide(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	log := &eventLog{}
	s := newScheduler(clk, &random.Scripted{Floats: []float64{0.5}}, log)

	plan := elementaryPlan(clk)
	plan.CheckInEvery = 58 * time.Second
	s.Start(plan)

	clk.Advance(60 * time.Second)
	assert.False(t, s.Display().BuddyFaded)
	assert.NotEmpty(t, s.Display().CheckIn)

	clk.Advance(3 * time.Second)
	assert.True(t, s.Display().BuddyFaded)
	want := []domain.EventKind{domain.EventCheckInShown, domain.EventCheckInHidden, domain.EventBuddyFaded}
	if diff := cmp.Diff(want, log.kinds()); diff != "" {
		t.Fatalf("event kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedulerSurpriseReplacesCheckIn(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	log := &eventLog{}
	s := newScheduler(clk, &random.Scripted{Floats: []float64{0.01}}, log)

	s.Start(elementaryPlan(clk))
	clk.Advance(5 * time.Minute)

	kinds := log.kinds()
	require.Contains(t, kinds, domain.EventSurprise)
	assert.NotContains(t, kinds, domain.EventCheckInShown)
	assert.NotEmpty(t, s.Display().CheckIn)
}

func TestSchedulerPromptTimesOut(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	log := &eventLog{}
	s := newScheduler(clk, &random.Scripted{Floats: []float64{0.5}, Ints: []int{2}}, log)

	plan := elementaryPlan(clk)
	plan.CheckInEvery = 0
	s.Start(plan)

	clk.Advance(20 * time.Minute)
	prompt := s.Display().Prompt
	require.NotNil(t, prompt)
	assert.Equal(t, domain.PromptDifficulty, prompt.ID)

	clk.Advance(30 * time.Second)
	assert.Nil(t, s.Display().Prompt)
	kinds := log.kinds()
	assert.Equal(t, domain.EventPromptTimedOut, kinds[len(kinds)-1])

	// the scheduler keeps running; pausing is the owner's call
	assert.True(t, s.Running())
}

func TestSchedulerAnswerCancelsTimeout(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	log := &eventLog{}
	s := newScheduler(clk, &random.Scripted{Floats: []float64{0.5}, Ints: []int{1}}, log)

	plan := elementaryPlan(clk)
	plan.CheckInEvery = 0
	s.Start(plan)
	clk.Advance(20 * time.Minute)

	_, ok := s.Answer(domain.PromptSubject)
	assert.False(t, ok, "wrong prompt id must not settle")
	p, ok := s.Answer(domain.PromptProgress)
	require.True(t, ok)
	assert.Equal(t, domain.PromptProgress, p.ID)

	clk.Advance(time.Minute)
	assert.NotContains(t, log.kinds(), domain.EventPromptTimedOut)
}

func TestSchedulerSkipsInteractionWhilePromptPending(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	log := &eventLog{}
	timing := testTiming()
	timing.PromptTimeout = time.Hour
	s := service.NewScheduler(clk, &random.Scripted{Floats: []float64{0.5}}, timing, nil, log.listen)

	plan := elementaryPlan(clk)
	plan.CheckInEvery = 0
	plan.InteractionEvery = time.Minute
	s.Start(plan)
	clk.Advance(5 * time.Minute)

	shown := 0
	for _, k := range log.kinds() {
		if k == domain.EventPromptShown {
			shown++
		}
	}
	assert.Equal(t, 1, shown)
}

func TestSchedulerStopCancelsEverything(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	log := &eventLog{}
	s := newScheduler(clk, &random.Scripted{Floats: []float64{0.5}}, log)

	s.Start(elementaryPlan(clk))
	clk.Advance(5 * time.Minute)
	require.NotZero(t, clk.Pending())

	s.Stop()
	s.Stop()
	assert.Zero(t, clk.Pending())
	assert.Equal(t, domain.Display{}, s.Display())
	before := len(log.kinds())

	clk.Advance(time.Hour)
	assert.Len(t, log.kinds(), before)
	assert.False(t, s.Running())
}

func TestSchedulerStartIsIdempotentAndRestartsOpenNewGeneration(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	log := &eventLog{}
	s := newScheduler(clk, &random.Scripted{Floats: []float64{0.5}}, log)

	g1, ok := s.Start(elementaryPlan(clk))
	require.True(t, ok)
	again, ok := s.Start(elementaryPlan(clk))
	assert.False(t, ok)
	assert.Equal(t, g1, again)
	assert.True(t, s.Current(g1))

	s.Stop()
	assert.False(t, s.Current(g1))
	g2, ok := s.Start(elementaryPlan(clk))
	require.True(t, ok)
	assert.NotEqual(t, g1, g2)

	// fade delay counts from the restart
	clk.Advance(59 * time.Second)
	assert.False(t, s.Display().BuddyFaded)
	clk.Advance(time.Second)
	assert.True(t, s.Display().BuddyFaded)
}

func TestSchedulerListenerSeesOnlyCurrentGeneration(t *testing.T) {
	t.Parallel()
	clk := clock.NewManual(start)
	var s *service.Scheduler
	var got []domain.EventKind
	s = service.NewScheduler(clk, &random.Scripted{Floats: []float64{0.5}}, testTiming(), nil, func(gen uint64, e domain.Event) {
		got = append(got, e.Kind)
		if e.Kind == domain.EventCheckInShown {
			s.Stop()
		}
	})

	plan := elementaryPlan(clk)
	s.Start(plan)
	clk.Advance(15 * time.Minute)

	// stopping inside the listener drops the rest of the batch
	if diff := cmp.Diff([]domain.EventKind{domain.EventBuddyFaded, domain.EventCheckInShown}, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSchedulerRealClockStopsCleanly(t *testing.T) {
	t.Parallel()
	log := &eventLog{}
	timing := service.SchedulerTiming{
		FadeDelay:      5 * time.Millisecond,
		CheckInDisplay: 2 * time.Millisecond,
		PromptTimeout:  3 * time.Millisecond,
	}
	s := service.NewScheduler(clock.SystemClock{}, random.NewSeeded(7), timing, nil, log.listen)
	s.Start(service.Plan{
		SessionID:        "real",
		CheckInEvery:     4 * time.Millisecond,
		InteractionEvery: 6 * time.Millisecond,
		CheckIns:         []string{"hi"},
		Prompts:          domain.Prompts("teen"),
	})
	time.Sleep(40 * time.Millisecond)
	s.Stop()
	assert.False(t, s.Running())
	assert.NotEmpty(t, log.kinds())
}
