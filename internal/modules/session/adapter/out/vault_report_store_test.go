package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sessionout "studybuddy/internal/modules/session/adapter/out"
	"studybuddy/internal/modules/session/domain"
	"studybuddy/internal/platform/markdown"
)

func TestVaultReportStoreWritesNote(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := sessionout.NewVaultReportStore(dir)
	started := time.Date(2026, 3, 3, 16, 4, 5, 0, time.UTC)

	path, err := store.Save(context.Background(), domain.Report{
		SessionID:    "01HZX",
		SubjectID:    "math",
		SubjectLabel: "Math",
		Age:          "elementary",
		StartedAt:    started,
		EndedAt:      started.Add(12 * time.Minute),
		ElapsedSec:   720,
		TotalTimeSec: 1920,
		Streak:       5,
		Badge:        "gold",
		Completion:   "Great job today!",
		Interactions: []domain.InteractionEntry{{AtElapsedSec: 65, PromptID: "difficulty", ResponseValue: "easy"}},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	want := filepath.Join(dir, "2026", "03", "03", "160405-math.md")
	if path != want {
		t.Fatalf("path = %s, want %s", path, want)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	var meta map[string]any
	body, err := markdown.Split(string(raw), &meta)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["id"] != "01HZX" || meta["streak"] != 5 || meta["elapsed_seconds"] != 720 || meta["badge"] != "gold" {
		t.Fatalf("unexpected frontmatter: %v", meta)
	}
	if meta["started_at"] != "2026-03-03T16:04:05.000Z" {
		t.Fatalf("started_at = %v", meta["started_at"])
	}
	for _, want := range []string{"# Math session", "- Focused: 12 min 00 s", "- 01:05 difficulty: easy", "- Badge: gold", "Great job today!"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}
