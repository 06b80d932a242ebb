package subjects

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	profiledto "studybuddy/internal/modules/profile/dto"
	"studybuddy/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ProfilePort interface {
	Show(ctx context.Context, age string) (profiledto.ProfileOutput, []profiledto.SubjectOutput)
	Buddies(ctx context.Context, age string) []profiledto.BuddyOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Profile  profiledto.ProfileOutput
	Subjects []profiledto.SubjectOutput
	Buddies  []profiledto.BuddyOutput
}

// ─── list item ───────────────────────────────────────────────────────────────

type subjectItem struct {
	subject profiledto.SubjectOutput
}

func (i subjectItem) Title() string { return i.subject.Emoji + "  " + i.subject.Label }
func (i subjectItem) Description() string {
	return fmt.Sprintf("%s  %s", i.subject.Category, i.subject.Difficulty)
}
func (i subjectItem) FilterValue() string { return i.subject.Label }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ProfilePort
	age     string
	profile profiledto.ProfileOutput
	buddies []profiledto.BuddyOutput
	palette theme.Age
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ProfilePort, age string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Pick a subject"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		age:     age,
		palette: theme.NewAge("", "", ""),
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Reload switches the list to another age group.
func (m *Model) Reload(age string) tea.Cmd {
	m.age = age
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case LoadedMsg:
		m.loading = false
		m.profile = msg.Profile
		m.buddies = msg.Buddies
		m.palette = theme.NewAge(msg.Profile.Theme.Primary, msg.Profile.Theme.Secondary, msg.Profile.Theme.Accent)
		m.list.Styles.Title = m.palette.Heading()
		items := make([]list.Item, len(msg.Subjects))
		for i, s := range msg.Subjects {
			items[i] = subjectItem{subject: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Getting ready…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(m.palette.Primary).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Selected returns the highlighted subject, if any.
func (m Model) Selected() (profiledto.SubjectOutput, bool) {
	if item, ok := m.list.SelectedItem().(subjectItem); ok {
		return item.subject, true
	}
	return profiledto.SubjectOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Profile() profiledto.ProfileOutput { return m.profile }

func (m Model) Palette() theme.Age { return m.palette }

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	p := m.profile
	if p.Age == "" {
		return theme.Muted.Render("No profile loaded")
	}
	var sb strings.Builder
	sb.WriteString(m.palette.Heading().Render(fmt.Sprintf("Ages %s", p.DisplayRange)) + "\n\n")
	if s, ok := m.Selected(); ok {
		sb.WriteString(m.palette.Highlight().Render(s.Emoji+" "+s.Label) + "\n\n")
	}
	sb.WriteString(theme.Muted.Render("focus:     ") + fmt.Sprintf("%d min (up to %d)", p.SessionMinutes, p.MaxMinutes) + "\n")
	sb.WriteString(theme.Muted.Render("break:     ") + fmt.Sprintf("%d min", p.BreakMinutes) + "\n")
	sb.WriteString(theme.Muted.Render("check-ins: ") + fmt.Sprintf("every %d min", p.CheckInEveryMin) + "\n")
	sb.WriteString(theme.Muted.Render("questions: ") + fmt.Sprintf("every %d min", p.InteractionEveryMin) + "\n")
	if len(m.buddies) > 0 {
		names := make([]string, 0, len(m.buddies))
		for _, b := range m.buddies {
			names = append(names, b.Emoji+" "+b.Name)
		}
		sb.WriteString(theme.Muted.Render("buddies:   ") + strings.Join(names, ", ") + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: "+strings.ToLower(p.StartButtonText)+"  /: filter"))
	return sb.String()
}

func (m Model) loadCmd() tea.Cmd {
	age := m.age
	return func() tea.Msg {
		ctx := context.Background()
		profile, subjects := m.port.Show(ctx, age)
		return LoadedMsg{Profile: profile, Subjects: subjects, Buddies: m.port.Buddies(ctx, profile.Age)}
	}
}
