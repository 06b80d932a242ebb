package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studybuddy/internal/modules/session/domain"
	"studybuddy/internal/modules/session/service"
	"studybuddy/internal/platform/random"
)

func newBackground(n *fakeNotifier, inbox *fakeInbox) *service.Background {
	return service.NewBackground(n, inbox, &random.Scripted{}, nil, 3, 5*time.Second)
}

func TestBackgroundSchedulesAndCancelsEachReminderOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	n := &fakeNotifier{}
	bg := newBackground(n, &fakeInbox{})

	reminders, changed := bg.EnterBackground(ctx, true, 5*time.Minute, []string{"Still going strong? 💪"})
	require.True(t, changed)
	require.Len(t, reminders, 3)
	assert.Equal(t, []int{300, 600, 900}, []int{reminders[0].FireOffsetSec, reminders[1].FireOffsetSec, reminders[2].FireOffsetSec})
	assert.Equal(t, domain.Notification{Title: "Study Buddy", Body: "Still going strong", CategoryID: "checkin-actions"}, n.scheduled[0].n)

	_, changed = bg.EnterBackground(ctx, true, 5*time.Minute, []string{"x"})
	assert.False(t, changed)
	assert.Len(t, n.scheduled, 3)

	cancelled, _, changed := bg.EnterForeground(ctx)
	require.True(t, changed)
	assert.Equal(t, 3, cancelled)
	_, _, changed = bg.EnterForeground(ctx)
	assert.False(t, changed)
	assert.Zero(t, bg.CancelAll(ctx))
	assert.Equal(t, []string{"r1", "r2", "r3"}, n.cancelled)
}

func TestBackgroundInactiveSessionSchedulesNothing(t *testing.T) {
	t.Parallel()
	n := &fakeNotifier{}
	bg := newBackground(n, &fakeInbox{})

	reminders, changed := bg.EnterBackground(context.Background(), false, time.Minute, []string{"x"})
	assert.True(t, changed)
	assert.Empty(t, reminders)
	assert.Empty(t, n.scheduled)
	assert.False(t, bg.Foreground())
}

func TestBackgroundCancelFailuresAreSwallowed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	n := &fakeNotifier{failCancel: true}
	bg := newBackground(n, &fakeInbox{})

	bg.EnterBackground(ctx, true, time.Second, []string{"hi"})
	cancelled, _, _ := bg.EnterForeground(ctx)
	assert.Equal(t, 3, cancelled)
	assert.Zero(t, bg.CancelAll(ctx))
	assert.Len(t, n.cancelled, 3)
	// the floor keeps reminders at least five seconds out
	assert.Equal(t, 5*time.Second, n.scheduled[0].fireIn)
}

func TestBackgroundTakesPendingActionOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	inbox := &fakeInbox{}
	bg := newBackground(&fakeNotifier{}, inbox)

	bg.EnterBackground(ctx, true, time.Minute, []string{"hi"})
	require.NoError(t, inbox.Record(ctx, "break"))
	_, action, _ := bg.EnterForeground(ctx)
	assert.Equal(t, domain.ActionBreak, action)

	bg.EnterBackground(ctx, true, time.Minute, []string{"hi"})
	_, action, _ = bg.EnterForeground(ctx)
	assert.Empty(t, action)
}
