package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	gamification "studybuddy/internal/modules/gamification/domain"
	profile "studybuddy/internal/modules/profile/domain"
	"studybuddy/internal/modules/session/domain"
	sessiondto "studybuddy/internal/modules/session/dto"
	sessionin "studybuddy/internal/modules/session/port/in"
	sessionout "studybuddy/internal/modules/session/port/out"
	"studybuddy/internal/modules/session/service"
	voicedto "studybuddy/internal/modules/voice/dto"
	voicein "studybuddy/internal/modules/voice/port/in"
	"studybuddy/internal/platform/clock"
	"studybuddy/internal/platform/config"
	apperrors "studybuddy/internal/platform/errors"
	"studybuddy/internal/platform/id"
	"studybuddy/internal/platform/random"
)

// Deps are the collaborators of the session orchestrator. Reports may be nil
// to skip writing session notes.
type Deps struct {
	Clock    clock.Clock
	Random   random.Source
	IDs      id.Generator
	Log      *zap.Logger
	Store    sessionout.KVStore
	Notifier sessionout.Notifier
	Inbox    sessionout.ActionInbox
	Haptics  sessionout.Haptics
	Reports  sessionout.ReportStore
	Sink     sessionout.EventSink
	Voice    voicein.Usecase
	Timing   config.Timing
}

type activeSession struct {
	id        string
	subject   profile.Subject
	age       profile.AgeKey
	profile   profile.AgeProfile
	workSec   int
	breakSec  int
	startedAt time.Time
	status    domain.Status
	settings  voicedto.Settings
	checkIns  []string
	prompts   []domain.Prompt
	timer     *service.SessionTimer
	recorder  *service.Recorder
	// suspended is set while the scheduler is stopped for backgrounding.
	suspended  bool
	breakTimer clock.Timer
	breakSeq   uint64
	ended      *sessiondto.EndOutput
}

// Interactor orchestrates one session at a time. Its lock is taken before
// the scheduler's; speech, haptics and events are flushed after it is
// released.
type Interactor struct {
	deps     Deps
	log      *zap.Logger
	progress *service.ProgressStore
	bg       *service.Background
	sched    *service.Scheduler

	mu  sync.Mutex
	cur *activeSession
}

func NewInteractor(deps Deps) *Interactor {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	i := &Interactor{
		deps:     deps,
		log:      log,
		progress: service.NewProgressStore(deps.Store, log),
		bg:       service.NewBackground(deps.Notifier, deps.Inbox, deps.Random, log, deps.Timing.ReminderCount, deps.Timing.MinReminderOffset),
	}
	i.sched = service.NewScheduler(deps.Clock, deps.Random, service.SchedulerTiming{
		FadeDelay:      deps.Timing.BuddyFadeDelay,
		CheckInDisplay: deps.Timing.CheckInDisplay,
		PromptTimeout:  deps.Timing.PromptTimeout,
	}, log, i.onSchedule)
	return i
}

var _ sessionin.Usecase = (*Interactor)(nil)

// Start opens a new session, or resumes a paused one. It does nothing while a
// session is already running.
func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	var fx effects
	defer func() { fx.run() }()
	i.mu.Lock()
	defer i.mu.Unlock()

	if s := i.cur; s != nil {
		switch s.status {
		case domain.StatusRunning:
			return i.startOutput(s, false), nil
		case domain.StatusPaused, domain.StatusBreak:
			i.resumeLocked(&fx, s)
			return i.startOutput(s, true), nil
		}
	}
	if input.WorkMinutes < 0 || input.BreakMinutes < 0 {
		return sessiondto.StartOutput{}, fmt.Errorf("%w: negative duration", apperrors.ErrInvalidInput)
	}

	s := i.newSession(ctx, input)
	if err := s.timer.Start(); err != nil {
		return sessiondto.StartOutput{}, err
	}
	i.cur = s
	s.status = domain.StatusRunning
	i.sched.Start(i.plan(s))

	now := i.deps.Clock.Now()
	out := i.startOutput(s, false)
	line := s.profile.Content.StartMessage
	if s.subject.ID != "" {
		line = fmt.Sprintf("Let's work on %s! %s", s.subject.Label, line)
	}
	i.say(ctx, &fx, s, line, voicedto.ScreenMain, false)
	i.haptic(ctx, &fx, sessionout.HapticSuccess)
	i.publish(&fx, i.event(s, domain.EventSessionStarted, line))
	if change, ok := gamification.MysteryMondayChange(now); ok {
		out.MysteryMonday = change
		e := i.event(s, domain.EventSpecial, change)
		e.Title = "Mystery Monday! " + gamification.MysteryMondayEmoji
		e.Emoji = gamification.MysteryMondayEmoji
		i.publish(&fx, e)
	}
	i.log.Info("session started",
		zap.String("session_id", s.id),
		zap.String("subject", s.subject.ID),
		zap.String("age", string(s.age)),
		zap.Int("work_sec", s.workSec),
		zap.String("season", out.Season.Name))
	return out, nil
}

func (i *Interactor) newSession(ctx context.Context, input sessiondto.StartInput) *activeSession {
	age := profile.ParseAge(input.Age)
	if strings.TrimSpace(input.Age) == "" {
		stored, err := i.progress.Age(ctx)
		if err != nil {
			i.log.Warn("read age failed", zap.Error(err))
		}
		age = stored
	}
	settings, err := i.progress.SpeechSettings(ctx)
	if err != nil {
		i.log.Warn("read speech settings failed", zap.Error(err))
	}
	prof := profile.Resolve(string(age))

	var subject profile.Subject
	checkIns := prof.Content.CheckInMessages
	if raw := strings.TrimSpace(input.SubjectID); raw != "" {
		found, ok := profile.LookupSubject(raw)
		if !ok {
			i.log.Warn("unknown subject, using fallback", zap.String("subject", raw))
			found, _ = profile.LookupSubject(profile.FallbackSubject)
		}
		subject = found
		checkIns = profile.SubjectCheckIns(found.ID)
	}

	workSec := prof.Session.DefaultDurationSec
	if input.WorkMinutes > 0 {
		workSec = input.WorkMinutes * 60
	}
	breakSec := prof.Session.BreakDurationSec
	if input.BreakMinutes > 0 {
		breakSec = input.BreakMinutes * 60
	}

	return &activeSession{
		id:        i.deps.IDs.New(),
		subject:   subject,
		age:       age,
		profile:   prof,
		workSec:   workSec,
		breakSec:  breakSec,
		startedAt: i.deps.Clock.Now(),
		status:    domain.StatusIdle,
		settings:  settings,
		checkIns:  checkIns,
		prompts:   domain.Prompts(string(age)),
		timer:     service.NewSessionTimer(i.deps.Clock),
		recorder:  service.NewRecorder(i.progress, i.deps.Clock, i.log),
	}
}

func (i *Interactor) plan(s *activeSession) service.Plan {
	return service.Plan{
		SessionID:        s.id,
		CheckInEvery:     s.profile.Cadence.CheckInInterval(),
		InteractionEvery: s.profile.Cadence.InteractionInterval(),
		CheckIns:         s.checkIns,
		Prompts:          s.prompts,
		Elapsed:          s.timer.ElapsedSeconds,
	}
}

func (i *Interactor) Pause(ctx context.Context) error {
	var fx effects
	defer func() { fx.run() }()
	i.mu.Lock()
	defer i.mu.Unlock()

	s, err := i.live()
	if err != nil {
		return err
	}
	if s.status != domain.StatusRunning {
		return apperrors.ErrNotRunning
	}
	i.pauseLocked(&fx, s, "")
	return nil
}

func (i *Interactor) pauseLocked(fx *effects, s *activeSession, notice string) {
	i.sched.Stop()
	s.timer.Pause()
	s.status = domain.StatusPaused
	s.suspended = false
	i.publish(fx, i.event(s, domain.EventPaused, notice))
}

// Resume continues a paused session or one on a break. Resuming a running
// session does nothing.
func (i *Interactor) Resume(ctx context.Context) error {
	var fx effects
	defer func() { fx.run() }()
	i.mu.Lock()
	defer i.mu.Unlock()

	s, err := i.live()
	if err != nil {
		return err
	}
	i.resumeLocked(&fx, s)
	return nil
}

func (i *Interactor) resumeLocked(fx *effects, s *activeSession) {
	if s.status == domain.StatusRunning {
		return
	}
	i.stopBreakTimer(s)
	if err := s.timer.Start(); err != nil {
		i.log.Warn("resume clock failed", zap.Error(err))
		return
	}
	s.status = domain.StatusRunning
	s.suspended = false
	i.sched.Start(i.plan(s))
	i.publish(fx, i.event(s, domain.EventResumed, ""))
}

// TakeBreak stops all schedules and starts the break countdown. A BreakOver
// event follows when it elapses; the session stays on break until resumed.
func (i *Interactor) TakeBreak(ctx context.Context) (sessiondto.BreakOutput, error) {
	var fx effects
	defer func() { fx.run() }()
	i.mu.Lock()
	defer i.mu.Unlock()

	s, err := i.live()
	if err != nil {
		return sessiondto.BreakOutput{}, err
	}
	i.breakLocked(ctx, &fx, s)
	return breakOutput(s), nil
}

func (i *Interactor) breakLocked(ctx context.Context, fx *effects, s *activeSession) {
	if s.status == domain.StatusBreak {
		return
	}
	i.sched.Stop()
	s.timer.Pause()
	s.status = domain.StatusBreak
	s.suspended = false
	s.breakSeq++
	seq := s.breakSeq
	s.breakTimer = i.deps.Clock.AfterFunc(time.Duration(s.breakSec)*time.Second, func() {
		i.breakOver(s, seq)
	})
	brk := s.profile.Content.Break
	i.say(ctx, fx, s, brk.Message, voicedto.ScreenCalm, false)
	e := i.event(s, domain.EventBreakStarted, brk.Message)
	e.Title = brk.Title
	i.publish(fx, e)
}

func (i *Interactor) breakOver(s *activeSession, seq uint64) {
	var fx effects
	defer func() { fx.run() }()
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.cur != s || s.status != domain.StatusBreak || s.breakSeq != seq {
		return
	}
	s.breakTimer = nil
	brk := s.profile.Content.Break
	e := i.event(s, domain.EventBreakOver, brk.ResumeText)
	e.Title = brk.Title
	i.publish(&fx, e)
	i.say(context.Background(), &fx, s, brk.ResumeText, voicedto.ScreenCalm, false)
}

func (i *Interactor) stopBreakTimer(s *activeSession) {
	s.breakSeq++
	if s.breakTimer != nil {
		s.breakTimer.Stop()
		s.breakTimer = nil
	}
}

// Respond records an answer. Answers are always logged; only an answer to
// the prompt on screen settles it. A response sent without a prompt, such as
// the help key, is logged under its own prompt id.
func (i *Interactor) Respond(ctx context.Context, input sessiondto.RespondInput) (sessiondto.RespondOutput, error) {
	var fx effects
	defer func() { fx.run() }()
	i.mu.Lock()
	defer i.mu.Unlock()

	s, err := i.live()
	if err != nil {
		return sessiondto.RespondOutput{}, err
	}
	value := strings.TrimSpace(input.Value)
	if value == "" {
		return sessiondto.RespondOutput{}, fmt.Errorf("%w: a response value is required", apperrors.ErrInvalidInput)
	}
	promptID := strings.TrimSpace(input.PromptID)
	answered := false
	if promptID == "" {
		promptID = domain.StandalonePrompt(value)
	} else {
		var shown domain.Prompt
		shown, answered = i.sched.Answer(promptID)
		if answered && !shown.HasOption(value) {
			i.log.Info("response outside prompt options", zap.String("prompt", promptID), zap.String("value", value))
		}
	}

	entry := s.recorder.Record(s.timer.ElapsedSeconds(), promptID, value)
	out := sessiondto.RespondOutput{Entry: interactionOutput(entry), Answered: answered}

	if value == domain.ResponseHelp {
		out.NeedHelp = true
		out.Feedback = domain.HelpMessage
		i.say(ctx, &fx, s, domain.HelpMessage, voicedto.ScreenMain, false)
		i.publish(&fx, i.event(s, domain.EventNeedHelp, domain.HelpMessage))
		return out, nil
	}
	if msg, ok := domain.Encouragement(value); ok {
		out.Feedback = msg
		i.say(ctx, &fx, s, msg, voicedto.ScreenMain, false)
		i.publish(&fx, i.event(s, domain.EventFeedback, msg))
	}
	return out, nil
}

// End records the session exactly once. Ending an ended session returns the
// first result.
func (i *Interactor) End(ctx context.Context) (sessiondto.EndOutput, error) {
	var fx effects
	defer func() { fx.run() }()
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.cur == nil {
		return sessiondto.EndOutput{}, apperrors.ErrNoActiveSession
	}
	return i.endLocked(ctx, &fx, i.cur), nil
}

func (i *Interactor) endLocked(ctx context.Context, fx *effects, s *activeSession) sessiondto.EndOutput {
	if s.ended != nil {
		return *s.ended
	}
	i.sched.Stop()
	i.stopBreakTimer(s)
	s.timer.Stop()
	if n := i.bg.CancelAll(ctx); n > 0 {
		i.log.Debug("reminders cancelled on end", zap.Int("count", n))
	}
	s.status = domain.StatusEnded

	elapsed := s.timer.ElapsedSeconds()
	outcome := s.recorder.Finalize(ctx, elapsed)
	quality := profile.QualityFor(outcome.ElapsedSec)
	badge := profile.BadgeFor(s.age, outcome.ElapsedSec)
	celebration := profile.CelebrationMessage(s.age, quality)
	if s.subject.ID != "" {
		celebration = profile.TeacherFor(s.subject.ID).PersonalizedMessage(profile.PhraseCelebration, i.deps.Random)
	}
	out := sessiondto.EndOutput{
		SessionID:         s.id,
		ElapsedSec:        outcome.ElapsedSec,
		TotalTimeSec:      outcome.TotalTimeSec,
		NewStreak:         outcome.NewStreak,
		CompletionMessage: s.profile.Content.CompletionMessage,
		Celebration:       celebration,
		Quality:           string(quality),
		Badge:             badge.Name,
		BadgeEmoji:        badge.Emoji,
		Encouragement:     profile.EncouragementMessage(s.age, quality),
	}
	if i.deps.Reports != nil {
		path, err := i.deps.Reports.Save(ctx, domain.Report{
			SessionID:    s.id,
			SubjectID:    s.subject.ID,
			SubjectLabel: s.subject.Label,
			Age:          string(s.age),
			StartedAt:    s.startedAt,
			EndedAt:      i.deps.Clock.Now(),
			ElapsedSec:   outcome.ElapsedSec,
			TotalTimeSec: outcome.TotalTimeSec,
			Streak:       outcome.NewStreak,
			Quality:      out.Quality,
			Badge:        badge.Name,
			Completion:   out.CompletionMessage,
			Interactions: s.recorder.Entries(),
		})
		if err != nil {
			i.log.Warn("write session report failed", zap.String("session_id", s.id), zap.Error(err))
		}
		out.ReportPath = path
	}
	s.ended = &out

	e := i.event(s, domain.EventSessionEnded, out.CompletionMessage)
	e.Outcome = &outcome
	i.publish(fx, e)
	i.say(ctx, fx, s, out.Celebration, voicedto.ScreenCelebration, true)
	i.haptic(ctx, fx, sessionout.HapticSuccess)
	return out
}

// RecordFeedback stores the helpers picked after the last session ended.
// Unknown helper ids are rejected and repeats are dropped.
func (i *Interactor) RecordFeedback(ctx context.Context, input sessiondto.FeedbackInput) (sessiondto.FeedbackOutput, error) {
	i.mu.Lock()
	s := i.cur
	if s == nil || s.ended == nil {
		i.mu.Unlock()
		return sessiondto.FeedbackOutput{}, apperrors.ErrNoActiveSession
	}
	elapsed, age := s.ended.ElapsedSec, s.age
	i.mu.Unlock()

	picked := make([]string, 0, len(input.WhatWorked))
	seen := map[string]bool{}
	for _, raw := range input.WhatWorked {
		id := strings.ToLower(strings.TrimSpace(raw))
		if _, ok := profile.LookupHelper(id); !ok {
			return sessiondto.FeedbackOutput{}, fmt.Errorf("%w: unknown helper %q", apperrors.ErrInvalidInput, raw)
		}
		if !seen[id] {
			seen[id] = true
			picked = append(picked, id)
		}
	}
	stored, err := i.progress.AppendFeedback(ctx, domain.FeedbackEntry{
		WhatWorked:   picked,
		SessionSec:   elapsed,
		Age:          string(age),
		TimestampISO: domain.FormatISO(i.deps.Clock.Now()),
	})
	if err != nil {
		return sessiondto.FeedbackOutput{}, err
	}
	i.log.Info("session feedback stored", zap.Strings("what_worked", picked), zap.Int("history", stored))
	return sessiondto.FeedbackOutput{WhatWorked: picked, Stored: stored}, nil
}

// Teardown drops the current session without recording it.
func (i *Interactor) Teardown(ctx context.Context) {
	i.mu.Lock()
	s := i.cur
	i.sched.Stop()
	i.bg.CancelAll(ctx)
	if s != nil {
		i.stopBreakTimer(s)
		s.timer.Stop()
		i.cur = nil
	}
	i.mu.Unlock()
	if s != nil && i.deps.Voice != nil {
		i.deps.Voice.Stop(ctx)
	}
}

func (i *Interactor) Snapshot(ctx context.Context) (sessiondto.SnapshotOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	s := i.cur
	if s == nil {
		return sessiondto.SnapshotOutput{Status: domain.StatusIdle.String()}, nil
	}
	out := sessiondto.SnapshotOutput{
		SessionID:    s.id,
		Status:       s.status.String(),
		SubjectID:    s.subject.ID,
		SubjectLabel: s.subject.Label,
		Age:          string(s.age),
		ElapsedSec:   s.timer.ElapsedSeconds(),
		WorkSec:      s.workSec,
	}
	if s.status == domain.StatusRunning {
		d := i.sched.Display()
		out.BuddyFaded = d.BuddyFaded
		out.CheckIn = d.CheckIn
		if d.Prompt != nil {
			p := promptOutput(*d.Prompt)
			out.Prompt = &p
		}
	}
	for _, e := range s.recorder.Entries() {
		out.Interactions = append(out.Interactions, interactionOutput(e))
	}
	return out, nil
}

// live returns the current session unless there is none or it has ended.
func (i *Interactor) live() (*activeSession, error) {
	if i.cur == nil {
		return nil, apperrors.ErrNoActiveSession
	}
	if i.cur.status == domain.StatusEnded {
		return nil, apperrors.ErrSessionEnded
	}
	return i.cur, nil
}

func (i *Interactor) startOutput(s *activeSession, resumed bool) sessiondto.StartOutput {
	season := gamification.SeasonalTheme(i.deps.Clock.Now())
	return sessiondto.StartOutput{
		SessionID:    s.id,
		SubjectID:    s.subject.ID,
		SubjectLabel: s.subject.Label,
		Age:          string(s.age),
		Status:       s.status.String(),
		Resumed:      resumed,
		WorkSec:      s.workSec,
		BreakSec:     s.breakSec,
		StartMessage: s.profile.Content.StartMessage,
		Season:       sessiondto.ThemeOutput{Name: season.Name, Emoji: season.Emoji, Color: season.Color},
	}
}

func breakOutput(s *activeSession) sessiondto.BreakOutput {
	brk := s.profile.Content.Break
	return sessiondto.BreakOutput{
		Title:      brk.Title,
		Message:    brk.Message,
		ResumeText: brk.ResumeText,
		BreakSec:   s.breakSec,
	}
}
