package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"studybuddy/internal/modules/session/domain"
	sessiondto "studybuddy/internal/modules/session/dto"
	sessionout "studybuddy/internal/modules/session/port/out"
	voicedto "studybuddy/internal/modules/voice/dto"
)

// AppStateChanged reacts to the app being hidden or shown. Hiding a running
// session suspends in-app check-ins, while the session clock keeps counting,
// and hands reminders to the notifier. Showing it again cancels them,
// welcomes the learner back and dispatches a pending notification action.
func (i *Interactor) AppStateChanged(ctx context.Context, foreground bool) (sessiondto.AppStateOutput, error) {
	var fx effects
	defer func() { fx.run() }()
	i.mu.Lock()
	defer i.mu.Unlock()

	if !foreground {
		return i.backgroundLocked(ctx), nil
	}
	return i.foregroundLocked(ctx, &fx), nil
}

func (i *Interactor) backgroundLocked(ctx context.Context) sessiondto.AppStateOutput {
	s := i.cur
	active := s != nil && s.status.Active()
	var (
		interval time.Duration
		messages []string
	)
	if active {
		interval = s.profile.Cadence.CheckInInterval()
		messages = s.checkIns
	}
	reminders, changed := i.bg.EnterBackground(ctx, active, interval, messages)
	if !changed {
		return sessiondto.AppStateOutput{}
	}
	if active {
		i.sched.Stop()
		s.suspended = true
	}
	out := sessiondto.AppStateOutput{Reminders: make([]sessiondto.ReminderOutput, 0, len(reminders))}
	for _, r := range reminders {
		out.Reminders = append(out.Reminders, sessiondto.ReminderOutput{ID: r.ID, FireOffsetSec: r.FireOffsetSec, PayloadText: r.PayloadText})
	}
	i.log.Debug("app backgrounded", zap.Bool("session_active", active), zap.Int("reminders", len(reminders)))
	return out
}

func (i *Interactor) foregroundLocked(ctx context.Context, fx *effects) sessiondto.AppStateOutput {
	cancelled, action, changed := i.bg.EnterForeground(ctx)
	if !changed {
		return sessiondto.AppStateOutput{}
	}
	out := sessiondto.AppStateOutput{Cancelled: cancelled, Action: string(action)}

	if s := i.cur; s != nil && s.status == domain.StatusRunning && s.suspended {
		if settings, err := i.progress.SpeechSettings(ctx); err != nil {
			i.log.Warn("refresh speech settings failed", zap.Error(err))
		} else {
			s.settings = settings
		}
		s.suspended = false
		i.sched.Start(i.plan(s))
		out.WelcomeBack = s.profile.Content.WelcomeBackMessage
		i.say(ctx, fx, s, out.WelcomeBack, voicedto.ScreenMain, false)
		i.publish(fx, i.event(s, domain.EventWelcomeBack, out.WelcomeBack))
	}

	if action != "" {
		i.dispatchLocked(ctx, fx, action)
	}
	return out
}

func (i *Interactor) dispatchLocked(ctx context.Context, fx *effects, action domain.Action) {
	s, err := i.live()
	if err != nil {
		i.log.Info("notification action without a session", zap.String("action", string(action)))
		return
	}
	switch action {
	case domain.ActionResume:
		i.resumeLocked(fx, s)
	case domain.ActionBreak:
		i.breakLocked(ctx, fx, s)
	case domain.ActionDone:
		i.endLocked(ctx, fx, s)
	}
}

// onSchedule handles scheduler events. Events from a generation that was
// stopped after they were produced are dropped here.
func (i *Interactor) onSchedule(gen uint64, e domain.Event) {
	var fx effects
	defer func() { fx.run() }()
	i.mu.Lock()
	defer i.mu.Unlock()

	s := i.cur
	if s == nil || s.status != domain.StatusRunning || !i.sched.Current(gen) {
		return
	}
	ctx := context.Background()
	i.publish(&fx, e)

	switch e.Kind {
	case domain.EventCheckInShown:
		i.say(ctx, &fx, s, e.Text, voicedto.ScreenMain, false)
		i.haptic(ctx, &fx, sessionout.HapticLightImpact)
	case domain.EventSurprise:
		i.sayExcited(ctx, &fx, s, e.Text)
		i.haptic(ctx, &fx, sessionout.HapticSuccess)
	case domain.EventPromptShown:
		i.say(ctx, &fx, s, e.Text, voicedto.ScreenMain, false)
	case domain.EventPromptTimedOut:
		i.log.Info("prompt unanswered, pausing",
			zap.String("session_id", s.id),
			zap.Int("elapsed_sec", e.ElapsedSec))
		i.pauseLocked(&fx, s, domain.TimeoutNotice)
	}
}
