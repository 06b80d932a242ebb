package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/modules/session/domain"
)

func TestBackgroundReminderLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t, tuesday, nil)
	startMath(t, h)

	hidden, err := h.ia.AppStateChanged(ctx, false)
	require.NoError(t, err)
	require.Len(t, hidden.Reminders, 3)
	assert.Equal(t, 300, hidden.Reminders[0].FireOffsetSec)
	assert.Equal(t, 900, hidden.Reminders[2].FireOffsetSec)

	// in-app check-ins are suspended while the clock keeps counting
	h.clk.Advance(10 * time.Minute)
	assert.Zero(t, h.sink.count(domain.EventCheckInShown))

	shown, err := h.ia.AppStateChanged(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 3, shown.Cancelled)
	assert.NotEmpty(t, shown.WelcomeBack)
	assert.Equal(t, 1, h.sink.count(domain.EventWelcomeBack))

	again, err := h.ia.AppStateChanged(ctx, true)
	require.NoError(t, err)
	assert.Zero(t, again.Cancelled)
	assert.Equal(t, []string{"r1", "r2", "r3"}, h.notifier.cancelled)

	snap, err := h.ia.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 600, snap.ElapsedSec)

	h.clk.Advance(5 * time.Minute)
	assert.Equal(t, 1, h.sink.count(domain.EventCheckInShown))
}

func TestBackgroundWithoutRunningSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(t, tuesday, nil)

	hidden, err := h.ia.AppStateChanged(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, hidden.Reminders)
	shown, err := h.ia.AppStateChanged(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, shown.WelcomeBack)
	assert.Zero(t, h.notifier.scheduled)
}

func TestNotificationActionsDispatchOnForeground(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("done ends the session", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, tuesday, nil)
		startMath(t, h)
		_, err := h.ia.AppStateChanged(ctx, false)
		require.NoError(t, err)
		h.clk.Advance(2 * time.Minute)
		require.NoError(t, h.inbox.Record(ctx, "DONE"))

		shown, err := h.ia.AppStateChanged(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, "DONE", shown.Action)
		snap, err := h.ia.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, "ended", snap.Status)
		assert.Equal(t, "120", h.kv.value(domain.KeyTotalFocusTime))

		// the action is cleared once taken
		_, err = h.ia.AppStateChanged(ctx, false)
		require.NoError(t, err)
		shown, err = h.ia.AppStateChanged(ctx, true)
		require.NoError(t, err)
		assert.Empty(t, shown.Action)
		assert.Equal(t, "1", h.kv.value(domain.KeyCurrentStreak))
	})

	t.Run("break starts a break", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, tuesday, nil)
		startMath(t, h)
		_, err := h.ia.AppStateChanged(ctx, false)
		require.NoError(t, err)
		require.NoError(t, h.inbox.Record(ctx, "BREAK"))

		_, err = h.ia.AppStateChanged(ctx, true)
		require.NoError(t, err)
		snap, err := h.ia.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, "break", snap.Status)
	})

	t.Run("resume continues a paused session", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, tuesday, nil)
		startMath(t, h)
		require.NoError(t, h.ia.Pause(ctx))
		_, err := h.ia.AppStateChanged(ctx, false)
		require.NoError(t, err)
		require.NoError(t, h.inbox.Record(ctx, "RESUME"))

		shown, err := h.ia.AppStateChanged(ctx, true)
		require.NoError(t, err)
		assert.Empty(t, shown.WelcomeBack)
		snap, err := h.ia.Snapshot(ctx)
		require.NoError(t, err)
		assert.Equal(t, "running", snap.Status)
	})
}
