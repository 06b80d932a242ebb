package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profiledto "studybuddy/internal/modules/profile/dto"
	sessiondto "studybuddy/internal/modules/session/dto"
)

type stubSession struct{ snapshot sessiondto.SnapshotOutput }

func (s *stubSession) Start(context.Context, string, string, int, int) (sessiondto.StartOutput, error) {
	return sessiondto.StartOutput{}, nil
}
func (s *stubSession) Pause(context.Context) error  { return nil }
func (s *stubSession) Resume(context.Context) error { return nil }
func (s *stubSession) TakeBreak(context.Context) (sessiondto.BreakOutput, error) {
	return sessiondto.BreakOutput{}, nil
}
func (s *stubSession) Respond(context.Context, string, string) (sessiondto.RespondOutput, error) {
	return sessiondto.RespondOutput{}, nil
}
func (s *stubSession) End(context.Context) (sessiondto.EndOutput, error) {
	return sessiondto.EndOutput{}, nil
}
func (s *stubSession) Foreground(context.Context, bool) (sessiondto.AppStateOutput, error) {
	return sessiondto.AppStateOutput{}, nil
}
func (s *stubSession) Snapshot(context.Context) (sessiondto.SnapshotOutput, error) {
	return s.snapshot, nil
}

type stubProgress struct{ resets int }

func (p *stubProgress) Progress(context.Context) (sessiondto.ProgressOutput, error) {
	return sessiondto.ProgressOutput{}, nil
}
func (p *stubProgress) ResetProgress(context.Context) error {
	p.resets++
	return nil
}
func (p *stubProgress) Settings(context.Context) (sessiondto.SettingsOutput, error) {
	return sessiondto.SettingsOutput{Age: "elementary"}, nil
}
func (p *stubProgress) UpdateSpeech(context.Context, sessiondto.SpeechSettingsInput) (sessiondto.SettingsOutput, error) {
	return sessiondto.SettingsOutput{}, nil
}
func (p *stubProgress) SelectAge(context.Context, string) (sessiondto.SettingsOutput, error) {
	return sessiondto.SettingsOutput{}, nil
}
func (p *stubProgress) SelectBuddy(context.Context, string) (sessiondto.SettingsOutput, error) {
	return sessiondto.SettingsOutput{}, nil
}

type stubProfile struct {
	answer    string
	cancelled int
}

func (p *stubProfile) Show(context.Context, string) (profiledto.ProfileOutput, []profiledto.SubjectOutput) {
	return profiledto.ProfileOutput{Age: "elementary"}, nil
}
func (p *stubProfile) Buddies(context.Context, string) []profiledto.BuddyOutput { return nil }
func (p *stubProfile) Milestone(_ context.Context, _ string, elapsedSec int) (string, bool) {
	return "🎉 5 minutes! Great job!", elapsedSec == 300
}
func (p *stubProfile) OpenGate(context.Context, string) (profiledto.GateChallengeOutput, error) {
	return profiledto.GateChallengeOutput{Question: "What's 10 + 10?"}, nil
}
func (p *stubProfile) SubmitGate(_ context.Context, answer string) (profiledto.GateSubmitOutput, error) {
	if answer == p.answer {
		return profiledto.GateSubmitOutput{Passed: true}, nil
	}
	return profiledto.GateSubmitOutput{AttemptsLeft: 2}, nil
}
func (p *stubProfile) CancelGate(context.Context) { p.cancelled++ }

func newTestModel() (Model, *stubProgress, *stubProfile) {
	progress := &stubProgress{}
	profile := &stubProfile{answer: "20"}
	return NewModel(&stubSession{}, progress, profile, nil, Options{}), progress, profile
}

// step executes cmd and feeds the resulting message back into the model.
func step(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	next, out := m.Update(cmd())
	return next.(Model), out
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// openGate runs the reset command up to the gate question.
func openGate(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.executePalette("reset")
	m, _ = step(t, next.(Model), cmd)
	require.True(t, m.palette.Asking())
	return m
}

func answerGate(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd = step(t, m, cmd)
	return step(t, m, cmd)
}

func TestResetRequiresGate(t *testing.T) {
	m, progress, _ := newTestModel()
	m = openGate(t, m)

	m, cmd := answerGate(t, m, "20")
	assert.Equal(t, "grown-up check passed", m.status)
	assert.Nil(t, m.gated)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, 1, progress.resets)
}

func TestWrongGateAnswerAsksAgain(t *testing.T) {
	m, progress, _ := newTestModel()
	m = openGate(t, m)

	m, cmd := answerGate(t, m, "7")
	assert.Equal(t, "not quite, 2 tries left", m.status)
	assert.NotNil(t, m.gated)
	require.NotNil(t, cmd)
	_, ok := cmd().(gateOpenedMsg)
	assert.True(t, ok)
	assert.Zero(t, progress.resets)
}

func TestCancelledGateForgetsAction(t *testing.T) {
	m, progress, profile := newTestModel()
	m = openGate(t, m)

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = step(t, m, cmd)
	assert.Nil(t, m.gated)
	assert.Equal(t, 1, profile.cancelled)
	assert.Zero(t, progress.resets)
}

func TestParseSpeech(t *testing.T) {
	in, err := parseSpeech([]string{"calm", "off"})
	require.NoError(t, err)
	require.NotNil(t, in.CalmModeEnabled)
	assert.False(t, *in.CalmModeEnabled)
	assert.Nil(t, in.MainScreenEnabled)

	_, err = parseSpeech([]string{"calm", "maybe"})
	assert.Error(t, err)
	_, err = parseSpeech([]string{"loud", "on"})
	assert.Error(t, err)
}

func TestMilestoneShownOnBoundary(t *testing.T) {
	m, _, _ := newTestModel()
	m.applySnapshot(snapshotMsg{out: sessiondto.SnapshotOutput{Status: "running", Age: "elementary", ElapsedSec: 299}})
	assert.True(t, m.milestoneTill.IsZero())

	m.applySnapshot(snapshotMsg{out: sessiondto.SnapshotOutput{Status: "running", Age: "elementary", ElapsedSec: 301}})
	assert.False(t, m.milestoneTill.IsZero())
	assert.Equal(t, 301, m.lastElapsed)
}
