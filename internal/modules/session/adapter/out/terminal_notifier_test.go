package out_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	sessionout "studybuddy/internal/modules/session/adapter/out"
	"studybuddy/internal/modules/session/domain"
	"studybuddy/internal/platform/clock"
)

func TestTerminalNotifierDeliversAndCancels(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clk := clock.NewManual(time.Date(2026, 3, 3, 16, 0, 0, 0, time.UTC))
	var buf bytes.Buffer
	n := sessionout.NewTerminalNotifier(clk, &buf)
	note := domain.Notification{Title: domain.ReminderTitle, CategoryID: domain.CategoryCheckIn}

	note.Body = "first"
	first, err := n.Schedule(ctx, note, 5*time.Minute)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	note.Body = "second"
	second, err := n.Schedule(ctx, note, 10*time.Minute)
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if first == second {
		t.Fatalf("handles must differ")
	}

	clk.Advance(5 * time.Minute)
	if !strings.Contains(buf.String(), "Study Buddy: first") {
		t.Fatalf("first reminder not delivered: %q", buf.String())
	}
	if err := n.Cancel(ctx, first); err == nil {
		t.Fatalf("cancelling a delivered reminder should report it")
	}
	if err := n.Cancel(ctx, second); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	clk.Advance(time.Hour)
	if strings.Contains(buf.String(), "second") {
		t.Fatalf("cancelled reminder was delivered")
	}
	if n.Pending() != 0 {
		t.Fatalf("pending = %d", n.Pending())
	}
}
