package session

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "studybuddy/internal/modules/session/dto"
	"studybuddy/internal/ui/theme"
)

const maxLogLines = 50

// Buddy is what the view shows for the companion character.
type Buddy struct {
	Name  string
	Emoji string
}

// Model renders the running session. It holds no session state of its own
// beyond the latest snapshot and a short activity log.
type Model struct {
	snapshot  sessiondto.SnapshotOutput
	buddy     Buddy
	palette   theme.Age
	milestone string
	breakText string
	log       []string
	activity  viewport.Model
	spinner   spinner.Model
	width     int
	height    int
}

func New() Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Subtext0)

	sp := spinner.New()
	sp.Spinner = spinner.Moon

	return Model{
		palette:  theme.NewAge("", "", ""),
		activity: vp,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd { return m.spinner.Tick }

func (m *Model) SetBuddy(b Buddy) { m.buddy = b }

func (m *Model) SetPalette(p theme.Age) {
	m.palette = p
	m.spinner.Style = lipgloss.NewStyle().Foreground(p.Secondary)
}

// SetSnapshot replaces the displayed state. A status change away from break
// clears the break banner.
func (m *Model) SetSnapshot(s sessiondto.SnapshotOutput) {
	if s.Status != "break" {
		m.breakText = ""
	}
	m.snapshot = s
}

func (m *Model) SetMilestone(text string) { m.milestone = text }

// Observe appends a session event to the activity log.
func (m *Model) Observe(e sessiondto.Event) {
	line := describe(e)
	if line == "" {
		return
	}
	switch e.Kind {
	case "break_started":
		m.breakText = e.Title
	case "break_over":
		m.breakText = e.Text
	}
	stamp := fmt.Sprintf("%02d:%02d", e.ElapsedSec/60, e.ElapsedSec%60)
	m.log = append(m.log, theme.Muted.Render(stamp)+"  "+line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
	m.activity.SetContent(strings.Join(m.log, "\n"))
	m.activity.GotoBottom()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.activity.Width = msg.Width - 4
		m.activity.Height = max(msg.Height/3, 3)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.activity, cmd = m.activity.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	s := m.snapshot
	if s.Status == "" || s.Status == "idle" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("No session yet. Pick a subject and press enter."))
	}

	var top strings.Builder
	heading := s.SubjectLabel
	if heading == "" {
		heading = "Focus time"
	}
	top.WriteString(m.palette.Heading().Render(heading) + "  " + theme.Muted.Render(s.Status) + "\n\n")
	top.WriteString(m.renderClock() + "\n")
	top.WriteString(m.renderBar() + "\n\n")
	top.WriteString(m.renderBuddy() + "\n")

	if m.milestone != "" {
		top.WriteString("\n" + m.palette.Banner().Render(m.milestone) + "\n")
	}
	if s.Status == "break" && m.breakText != "" {
		top.WriteString("\n" + m.spinner.View() + " " + m.breakText + "\n")
	}
	if s.CheckIn != "" {
		top.WriteString("\n" + m.palette.Highlight().Render(s.CheckIn) + "\n")
	}
	if s.Prompt != nil {
		top.WriteString("\n" + renderPrompt(*s.Prompt, m.palette) + "\n")
	}

	pane := m.palette.Pane(s.Status == "running").Width(max(m.width-2, 20)).Render(top.String())
	return lipgloss.JoinVertical(lipgloss.Left, pane, m.activity.View())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderClock() string {
	s := m.snapshot
	return fmt.Sprintf("%s %02d:%02d %s",
		theme.Hot.Render("⏱"), s.ElapsedSec/60, s.ElapsedSec%60,
		theme.Muted.Render(fmt.Sprintf("/ %02d:00", s.WorkSec/60)))
}

func (m Model) renderBar() string {
	width := max(m.width-8, 10)
	filled := 0
	if m.snapshot.WorkSec > 0 {
		filled = min(width*m.snapshot.ElapsedSec/m.snapshot.WorkSec, width)
	}
	done := lipgloss.NewStyle().Foreground(m.palette.Primary).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(theme.Surface1).Render(strings.Repeat("░", width-filled))
	return done + rest
}

func (m Model) renderBuddy() string {
	if m.buddy.Emoji == "" {
		return ""
	}
	label := m.buddy.Emoji + " " + m.buddy.Name
	if m.snapshot.BuddyFaded {
		return theme.Muted.Faint(true).Render(label + " is quietly watching")
	}
	return m.palette.Highlight().Render(label)
}

func renderPrompt(p sessiondto.PromptOutput, palette theme.Age) string {
	var sb strings.Builder
	sb.WriteString(palette.Heading().Render(p.Text) + "\n")
	for i, opt := range p.Options {
		sb.WriteString(fmt.Sprintf("  %s %s\n", theme.Hot.Render(fmt.Sprintf("[%d]", i+1)), opt.Label))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func describe(e sessiondto.Event) string {
	switch e.Kind {
	case "session_started":
		return "Session started"
	case "special":
		return e.Title
	case "check_in_shown", "prompt_shown", "feedback", "need_help", "welcome_back", "prompt_timed_out":
		return e.Text
	case "surprise":
		return e.Emoji + " " + e.Text
	case "paused":
		return "Paused"
	case "resumed":
		return "Back to work"
	case "break_started":
		return e.Title
	case "break_over":
		return e.Text
	case "session_ended":
		if e.Outcome != nil {
			return e.Outcome.Celebration
		}
		return "Session finished"
	}
	return ""
}
