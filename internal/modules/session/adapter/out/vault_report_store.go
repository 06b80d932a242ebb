package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studybuddy/internal/modules/session/domain"
	sessionout "studybuddy/internal/modules/session/port/out"
	"studybuddy/internal/platform/markdown"
	"studybuddy/internal/platform/slug"
)

type VaultReportStore struct {
	dir string
}

// NewVaultReportStore writes notes under dir/YYYY/MM/DD.
func NewVaultReportStore(dir string) sessionout.ReportStore {
	return &VaultReportStore{dir: dir}
}

type reportMeta struct {
	ID           string `yaml:"id"`
	Subject      string `yaml:"subject,omitempty"`
	Age          string `yaml:"age"`
	StartedAt    string `yaml:"started_at"`
	EndedAt      string `yaml:"ended_at"`
	ElapsedSec   int    `yaml:"elapsed_seconds"`
	TotalTimeSec int    `yaml:"total_focus_seconds"`
	Streak       int    `yaml:"streak"`
	Quality      string `yaml:"quality,omitempty"`
	Badge        string `yaml:"badge,omitempty"`
	Interactions int    `yaml:"interactions"`
}

func (s *VaultReportStore) Save(_ context.Context, report domain.Report) (string, error) {
	date := report.StartedAt
	dir := filepath.Join(s.dir, date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(report.SubjectLabel))
	path := filepath.Join(dir, name)

	meta := reportMeta{
		ID:           report.SessionID,
		Subject:      report.SubjectID,
		Age:          report.Age,
		StartedAt:    domain.FormatISO(report.StartedAt),
		EndedAt:      domain.FormatISO(report.EndedAt),
		ElapsedSec:   report.ElapsedSec,
		TotalTimeSec: report.TotalTimeSec,
		Streak:       report.Streak,
		Quality:      report.Quality,
		Badge:        report.Badge,
		Interactions: len(report.Interactions),
	}
	rendered, err := markdown.Render(meta, reportBody(report))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session report: %w", err)
	}
	return path, nil
}

func reportBody(r domain.Report) string {
	title := r.SubjectLabel
	if title == "" {
		title = "Study"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s session\n\n", title)
	fmt.Fprintf(&b, "- Focused: %d min %02d s\n", r.ElapsedSec/60, r.ElapsedSec%60)
	fmt.Fprintf(&b, "- Total focus: %d min\n", r.TotalTimeSec/60)
	fmt.Fprintf(&b, "- Streak: %d\n", r.Streak)
	if r.Badge != "" {
		fmt.Fprintf(&b, "- Badge: %s\n", r.Badge)
	}
	if r.Completion != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Completion)
	}
	if len(r.Interactions) > 0 {
		b.WriteString("\n## Check-ins\n\n")
		for _, e := range r.Interactions {
			fmt.Fprintf(&b, "- %02d:%02d %s: %s\n", e.AtElapsedSec/60, e.AtElapsedSec%60, e.PromptID, e.ResponseValue)
		}
	}
	return b.String()
}
