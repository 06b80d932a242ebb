package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"studybuddy/internal/modules/session/domain"
	sessiondto "studybuddy/internal/modules/session/dto"
	sessionout "studybuddy/internal/modules/session/port/out"
	"studybuddy/internal/modules/session/usecase"
	voicedto "studybuddy/internal/modules/voice/dto"
	"studybuddy/internal/platform/clock"
	"studybuddy/internal/platform/config"
	"studybuddy/internal/platform/random"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// Tuesday, so no Mystery Monday event unless a test asks for one.
var tuesday = time.Date(2026, 3, 3, 16, 0, 0, 0, time.UTC)

type memKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemKV(seed map[string]string) *memKV {
	kv := &memKV{data: map[string]string{}}
	for k, v := range seed {
		kv.data[k] = v
	}
	return kv
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memKV) value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

type fakeNotifier struct {
	mu        sync.Mutex
	scheduled int
	cancelled []string
}

func (f *fakeNotifier) Schedule(context.Context, domain.Notification, time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled++
	return fmt.Sprintf("r%d", f.scheduled), nil
}

func (f *fakeNotifier) Cancel(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeInbox struct {
	mu     sync.Mutex
	action string
}

func (f *fakeInbox) Record(_ context.Context, action string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.action = action
	return nil
}

func (f *fakeInbox) Take(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.action
	f.action = ""
	return a, nil
}

type fakeVoice struct {
	mu    sync.Mutex
	said  []voicedto.Utterance
	stops int
}

func (f *fakeVoice) Say(_ context.Context, u voicedto.Utterance) voicedto.SayOutput {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.said = append(f.said, u)
	return voicedto.SayOutput{Spoken: true, Text: u.Text}
}

func (f *fakeVoice) Stop(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeVoice) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.said))
	for _, u := range f.said {
		out = append(out, u.Text)
	}
	return out
}

type fakeHaptics struct {
	mu    sync.Mutex
	kinds []sessionout.HapticKind
}

func (f *fakeHaptics) Signal(_ context.Context, kind sessionout.HapticKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = append(f.kinds, kind)
}

type fakeSink struct {
	mu     sync.Mutex
	events []sessiondto.Event
}

func (f *fakeSink) Publish(e sessiondto.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakeSink) count(kind domain.EventKind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.Kind == string(kind) {
			n++
		}
	}
	return n
}

func (f *fakeSink) last(kind domain.EventKind) (sessiondto.Event, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for j := len(f.events) - 1; j >= 0; j-- {
		if f.events[j].Kind == string(kind) {
			return f.events[j], true
		}
	}
	return sessiondto.Event{}, false
}

type fakeReports struct {
	mu    sync.Mutex
	saved []domain.Report
}

func (f *fakeReports) Save(_ context.Context, r domain.Report) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, r)
	return "/vault/sessions/" + r.SessionID + ".md", nil
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) New() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("session-%d", s.n)
}

type harness struct {
	clk      *clock.Manual
	kv       *memKV
	notifier *fakeNotifier
	inbox    *fakeInbox
	voice    *fakeVoice
	haptics  *fakeHaptics
	sink     *fakeSink
	reports  *fakeReports
	rnd      *random.Scripted
	ia       *usecase.Interactor
}

func newHarness(t *testing.T, at time.Time, seed map[string]string) *harness {
	t.Helper()
	h := &harness{
		clk:      clock.NewManual(at),
		kv:       newMemKV(seed),
		notifier: &fakeNotifier{},
		inbox:    &fakeInbox{},
		voice:    &fakeVoice{},
		haptics:  &fakeHaptics{},
		sink:     &fakeSink{},
		reports:  &fakeReports{},
		rnd:      &random.Scripted{Floats: []float64{0.5}},
	}
	h.ia = usecase.NewInteractor(usecase.Deps{
		Clock:    h.clk,
		Random:   h.rnd,
		IDs:      &seqIDs{},
		Store:    h.kv,
		Notifier: h.notifier,
		Inbox:    h.inbox,
		Haptics:  h.haptics,
		Reports:  h.reports,
		Sink:     h.sink,
		Voice:    h.voice,
		Timing:   config.DefaultTiming(),
	})
	t.Cleanup(func() { h.ia.Teardown(context.Background()) })
	return h
}
