package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	gamification "studybuddy/internal/modules/gamification/domain"
	"studybuddy/internal/modules/session/domain"
	"studybuddy/internal/platform/clock"
	"studybuddy/internal/platform/random"
)

type SchedulerTiming struct {
	FadeDelay      time.Duration
	CheckInDisplay time.Duration
	PromptTimeout  time.Duration
}

// Plan describes one running stretch of a session.
type Plan struct {
	SessionID        string
	CheckInEvery     time.Duration
	InteractionEvery time.Duration
	CheckIns         []string
	Prompts          []domain.Prompt
	// Elapsed reports session seconds. It must not block on the scheduler's
	// owner.
	Elapsed func() int
}

// Listener receives events together with the generation that produced them.
type Listener func(gen uint64, e domain.Event)

// Scheduler runs the check-in, interaction and fade behaviours of a running
// session. Every Start opens a new generation; Stop closes it and cancels all
// of its timers before returning, and callbacks from a closed generation do
// nothing. Events are delivered after the scheduler lock is released.
type Scheduler struct {
	clock  clock.Clock
	engine gamification.Engine
	rnd    random.Source
	timing SchedulerTiming
	log    *zap.Logger
	listen Listener

	mu            sync.Mutex
	gen           uint64
	running       bool
	plan          Plan
	display       domain.Display
	fadeDue       bool
	checkIn       clock.Timer
	interaction   clock.Timer
	fade          clock.Timer
	hide          clock.Timer
	promptTimeout clock.Timer
}

func NewScheduler(clk clock.Clock, rnd random.Source, timing SchedulerTiming, log *zap.Logger, listen Listener) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	if listen == nil {
		listen = func(uint64, domain.Event) {}
	}
	return &Scheduler{
		clock:  clk,
		engine: gamification.NewEngine(rnd),
		rnd:    rnd,
		timing: timing,
		log:    log,
		listen: listen,
	}
}

// Start begins all three behaviours. It returns the active generation and
// whether a new one was opened; calling it while running changes nothing.
func (s *Scheduler) Start(plan Plan) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return s.gen, false
	}
	if plan.Elapsed == nil {
		plan.Elapsed = func() int { return 0 }
	}
	s.gen++
	s.running = true
	s.plan = plan
	s.display = domain.Display{}
	s.fadeDue = false

	gen := s.gen
	now := s.clock.Now()
	s.periodic(&s.checkIn, gen, now, plan.CheckInEvery, s.checkInTick)
	s.periodic(&s.interaction, gen, now, plan.InteractionEvery, s.interactionTick)
	s.fade = s.clock.AfterFunc(s.timing.FadeDelay, s.guarded(gen, s.fadeTick))
	s.log.Debug("scheduler started",
		zap.String("session_id", plan.SessionID),
		zap.Uint64("generation", gen),
		zap.Duration("check_in_every", plan.CheckInEvery),
		zap.Duration("interaction_every", plan.InteractionEvery))
	return gen, true
}

// Stop cancels every pending timer and clears the display. It is safe to call
// repeatedly.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.gen++
	s.running = false
	for _, slot := range []*clock.Timer{&s.checkIn, &s.interaction, &s.fade, &s.hide, &s.promptTimeout} {
		if *slot != nil {
			(*slot).Stop()
			*slot = nil
		}
	}
	s.display = domain.Display{}
	s.fadeDue = false
	s.log.Debug("scheduler stopped", zap.String("session_id", s.plan.SessionID))
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Current reports whether gen is the generation of the running schedule.
func (s *Scheduler) Current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && s.gen == gen
}

func (s *Scheduler) Display() domain.Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.display
	if d.Prompt != nil {
		p := *d.Prompt
		d.Prompt = &p
	}
	return d
}

// Answer settles the pending prompt if promptID matches it, cancelling its
// timeout. Whichever of Answer and the timeout takes the lock first wins.
func (s *Scheduler) Answer(promptID string) (domain.Prompt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.display.Prompt == nil || s.display.Prompt.ID != promptID {
		return domain.Prompt{}, false
	}
	p := *s.display.Prompt
	s.display.Prompt = nil
	if s.promptTimeout != nil {
		s.promptTimeout.Stop()
		s.promptTimeout = nil
	}
	return p, true
}

// periodic arms slot for the next due time, then re-arms it from the planned
// due time so late callbacks do not shift the cadence. Must hold s.mu.
func (s *Scheduler) periodic(slot *clock.Timer, gen uint64, from time.Time, period time.Duration, tick func(gen uint64) []domain.Event) {
	if period <= 0 {
		return
	}
	due := from.Add(period)
	*slot = s.clock.AfterFunc(due.Sub(s.clock.Now()), s.guarded(gen, func() []domain.Event {
		events := tick(gen)
		next := due
		if now := s.clock.Now(); now.Sub(due) >= period {
			next = now
		}
		s.periodic(slot, gen, next, period, tick)
		return events
	}))
}

// guarded runs fn under the lock only while gen is current.
func (s *Scheduler) guarded(gen uint64, fn func() []domain.Event) func() {
	return func() {
		s.mu.Lock()
		if !s.running || gen != s.gen {
			s.mu.Unlock()
			return
		}
		events := fn()
		s.mu.Unlock()
		s.deliver(gen, events)
	}
}

func (s *Scheduler) deliver(gen uint64, events []domain.Event) {
	for _, e := range events {
		if !s.Current(gen) {
			return
		}
		s.listen(gen, e)
	}
}

func (s *Scheduler) event(kind domain.EventKind) domain.Event {
	return domain.Event{
		Kind:       kind,
		SessionID:  s.plan.SessionID,
		At:         s.clock.Now(),
		ElapsedSec: s.plan.Elapsed(),
	}
}

func (s *Scheduler) checkInTick(gen uint64) []domain.Event {
	var events []domain.Event
	if s.engine.ShouldTriggerSurprise() {
		surprise := s.engine.RandomSurprise()
		s.display.CheckIn = surprise.Text()
		e := s.event(domain.EventSurprise)
		e.Title, e.Emoji, e.Text = surprise.ID, surprise.Emoji, surprise.Message
		events = append(events, e)
	} else {
		msg := random.Pick(s.rnd, s.plan.CheckIns)
		s.display.CheckIn = msg
		e := s.event(domain.EventCheckInShown)
		e.Text = msg
		events = append(events, e)
	}
	if s.display.BuddyFaded {
		s.display.BuddyFaded = false
		events = append(events, s.event(domain.EventBuddyShown))
	}
	if s.hide != nil {
		s.hide.Stop()
	}
	s.hide = s.clock.AfterFunc(s.timing.CheckInDisplay, s.guarded(gen, s.hideCheckIn))
	return events
}

func (s *Scheduler) hideCheckIn() []domain.Event {
	s.hide = nil
	s.display.CheckIn = ""
	events := []domain.Event{s.event(domain.EventCheckInHidden)}
	if s.fadeDue && !s.display.BuddyFaded {
		s.display.BuddyFaded = true
		events = append(events, s.event(domain.EventBuddyFaded))
	}
	return events
}

func (s *Scheduler) fadeTick() []domain.Event {
	s.fade = nil
	s.fadeDue = true
	// a check-in on screen re-fades the buddy when it hides
	if s.display.CheckIn != "" || s.display.BuddyFaded {
		return nil
	}
	s.display.BuddyFaded = true
	return []domain.Event{s.event(domain.EventBuddyFaded)}
}

func (s *Scheduler) interactionTick(gen uint64) []domain.Event {
	if s.display.Prompt != nil || len(s.plan.Prompts) == 0 {
		s.log.Debug("interaction tick skipped", zap.Bool("prompt_pending", s.display.Prompt != nil))
		return nil
	}
	p := random.Pick(s.rnd, s.plan.Prompts)
	pending := &p
	s.display.Prompt = pending
	if s.promptTimeout != nil {
		s.promptTimeout.Stop()
	}
	s.promptTimeout = s.clock.AfterFunc(s.timing.PromptTimeout, s.guarded(gen, func() []domain.Event {
		if s.display.Prompt != pending {
			return nil
		}
		s.display.Prompt = nil
		s.promptTimeout = nil
		e := s.event(domain.EventPromptTimedOut)
		e.Prompt = &p
		e.Text = domain.TimeoutNotice
		return []domain.Event{e}
	}))
	e := s.event(domain.EventPromptShown)
	e.Prompt = &p
	e.Text = p.Text
	return []domain.Event{e}
}
