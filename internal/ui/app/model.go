package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	profiledto "studybuddy/internal/modules/profile/dto"
	sessiondto "studybuddy/internal/modules/session/dto"
	apperrors "studybuddy/internal/platform/errors"
	"studybuddy/internal/ui/components"
	"studybuddy/internal/ui/theme"
	sessionview "studybuddy/internal/ui/views/session"
	subjectsview "studybuddy/internal/ui/views/subjects"
)

const milestoneShowFor = 5 * time.Second

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.

type sessionPort interface {
	Start(ctx context.Context, subjectID, age string, workMin, breakMin int) (sessiondto.StartOutput, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
	TakeBreak(ctx context.Context) (sessiondto.BreakOutput, error)
	Respond(ctx context.Context, promptID, value string) (sessiondto.RespondOutput, error)
	End(ctx context.Context) (sessiondto.EndOutput, error)
	Foreground(ctx context.Context, foreground bool) (sessiondto.AppStateOutput, error)
	Snapshot(ctx context.Context) (sessiondto.SnapshotOutput, error)
}

type progressPort interface {
	Progress(ctx context.Context) (sessiondto.ProgressOutput, error)
	ResetProgress(ctx context.Context) error
	Settings(ctx context.Context) (sessiondto.SettingsOutput, error)
	UpdateSpeech(ctx context.Context, input sessiondto.SpeechSettingsInput) (sessiondto.SettingsOutput, error)
	SelectAge(ctx context.Context, age string) (sessiondto.SettingsOutput, error)
	SelectBuddy(ctx context.Context, buddyID string) (sessiondto.SettingsOutput, error)
}

type profilePort interface {
	Show(ctx context.Context, age string) (profiledto.ProfileOutput, []profiledto.SubjectOutput)
	Buddies(ctx context.Context, age string) []profiledto.BuddyOutput
	Milestone(ctx context.Context, age string, elapsedSec int) (string, bool)
	OpenGate(ctx context.Context, age string) (profiledto.GateChallengeOutput, error)
	SubmitGate(ctx context.Context, answer string) (profiledto.GateSubmitOutput, error)
	CancelGate(ctx context.Context)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabSubjects tabID = iota
	tabSession
	tabProgress
	tabCount
)

var tabLabels = [tabCount]string{
	"Subjects", "Session", "Progress",
}

// ─── async messages ───────────────────────────────────────────────────────────

type tickMsg time.Time

type snapshotMsg struct {
	out sessiondto.SnapshotOutput
	err error
}

type eventMsg struct {
	event sessiondto.Event
	ok    bool
}

type startedMsg struct {
	out sessiondto.StartOutput
	err error
}

type endedMsg struct {
	out sessiondto.EndOutput
	err error
}

type appStateMsg struct {
	out        sessiondto.AppStateOutput
	foreground bool
	err        error
}

type statusMsg struct {
	text string
	err  error
}

type settingsMsg struct {
	out sessiondto.SettingsOutput
	err error
}

type progressMsg struct {
	out sessiondto.ProgressOutput
	err error
}

type gateOpenedMsg struct {
	challenge profiledto.GateChallengeOutput
	err       error
}

type gateResultMsg struct {
	out profiledto.GateSubmitOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Pause   key.Binding
	Break   key.Binding
	End     key.Binding
	Answer  key.Binding
	Stuck   key.Binding
	Reset   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start subject")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause/resume")),
		Break:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "take a break")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "finish")),
		Answer:  key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "answer")),
		Stuck:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "need help")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset progress")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter},
		{k.Pause, k.Break, k.End, k.Answer, k.Stuck},
		{k.Reset, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the once-a-second
// snapshot poll, the event feed, the help overlay and the command palette.
// All behaviour is delegated to the ports.
type Model struct {
	session  sessionPort
	progress progressPort
	profile  profilePort
	events   <-chan sessiondto.Event

	subjectsView subjectsview.Model
	sessionView  sessionview.Model

	// quick-start overrides from the command line
	ageFlag  string
	workMin  int
	breakMin int

	settings      sessiondto.SettingsOutput
	stats         sessiondto.ProgressOutput
	lastElapsed   int
	milestoneTill time.Time
	gated         func() tea.Cmd
	ended         *sessiondto.EndOutput

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

type Options struct {
	Age          string
	WorkMinutes  int
	BreakMinutes int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(session sessionPort, progress progressPort, profile profilePort, events <-chan sessiondto.Event, opts Options) Model {
	return Model{
		session:      session,
		progress:     progress,
		profile:      profile,
		events:       events,
		subjectsView: subjectsview.New(profilePortBridge{p: profile}, opts.Age),
		sessionView:  sessionview.New(),
		ageFlag:      opts.Age,
		workMin:      opts.WorkMinutes,
		breakMin:     opts.BreakMinutes,
		settings:     sessiondto.SettingsOutput{Age: opts.Age},
		activeTab:    tabSubjects,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.subjectsView.Init(),
		m.sessionView.Init(),
		m.loadSettingsCmd(),
		m.loadProgressCmd(),
		m.waitEventCmd(),
		tick(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Background data keeps flowing while the palette is open.
	switch msg := msg.(type) {
	case tickMsg:
		return m, tea.Batch(m.snapshotCmd(), tick())
	case snapshotMsg:
		m.applySnapshot(msg)
		return m, nil
	case eventMsg:
		if !msg.ok {
			return m, nil
		}
		m.sessionView.Observe(msg.event)
		if msg.event.Kind == "session_ended" && msg.event.Outcome != nil {
			m.ended = msg.event.Outcome
			cmds = append(cmds, m.loadProgressCmd())
		}
		cmds = append(cmds, m.waitEventCmd())
		return m, tea.Batch(cmds...)
	case subjectsview.LoadedMsg:
		m.sessionView.SetPalette(theme.NewAge(msg.Profile.Theme.Primary, msg.Profile.Theme.Secondary, msg.Profile.Theme.Accent))
		var cmd tea.Cmd
		m.subjectsView, cmd = m.subjectsView.Update(msg)
		return m, cmd
	case spinner.TickMsg:
		var subjectsCmd, sessionCmd tea.Cmd
		m.subjectsView, subjectsCmd = m.subjectsView.Update(msg)
		m.sessionView, sessionCmd = m.sessionView.Update(msg)
		return m, tea.Batch(subjectsCmd, sessionCmd)
	case tea.FocusMsg:
		return m, m.appStateCmd(true)
	case tea.BlurMsg:
		return m, m.appStateCmd(false)
	}

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case startedMsg:
		if msg.err != nil {
			m.status = "could not start: " + msg.err.Error()
		} else {
			m.ended = nil
			m.lastElapsed = 0
			m.activeTab = tabSession
			if msg.out.Resumed {
				m.status = "welcome back"
			} else {
				m.status = msg.out.StartMessage
			}
			cmds = append(cmds, m.snapshotCmd())
		}

	case endedMsg:
		if msg.err != nil {
			m.status = "finish failed: " + msg.err.Error()
		} else {
			m.ended = &msg.out
			m.status = msg.out.CompletionMessage
			cmds = append(cmds, m.loadProgressCmd(), m.snapshotCmd())
		}

	case appStateMsg:
		switch {
		case msg.err != nil:
			m.status = "app state: " + msg.err.Error()
		case !msg.foreground && len(msg.out.Reminders) > 0:
			m.status = fmt.Sprintf("%d reminders scheduled", len(msg.out.Reminders))
		case msg.foreground && msg.out.WelcomeBack != "":
			m.status = msg.out.WelcomeBack
		}
		cmds = append(cmds, m.snapshotCmd())

	case statusMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else if msg.text != "" {
			m.status = msg.text
		}
		cmds = append(cmds, m.snapshotCmd())

	case settingsMsg:
		if msg.err != nil {
			m.status = "settings: " + msg.err.Error()
			break
		}
		if m.ageFlag != "" {
			msg.out.Age = m.ageFlag
		}
		ageChanged := msg.out.Age != m.settings.Age
		m.settings = msg.out
		m.applyBuddy()
		if ageChanged {
			cmds = append(cmds, m.subjectsView.Reload(msg.out.Age))
		}

	case progressMsg:
		if msg.err != nil {
			m.status = "progress: " + msg.err.Error()
		} else {
			m.stats = msg.out
		}

	case gateOpenedMsg:
		if msg.err != nil {
			m.gated = nil
			m.status = gateError(msg.err)
			return m, nil
		}
		cmd := m.palette.Ask(msg.challenge.Question)
		return m, cmd

	case gateResultMsg:
		return m.handleGateResult(msg)

	case components.PaletteSubmitMsg:
		if msg.Question != "" {
			return m, m.submitGateCmd(msg.Input)
		}
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		if msg.Question != "" {
			m.gated = nil
			m.profile.CancelGate(context.Background())
		}
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the subject filter while it is open.
		if m.activeTab == tabSubjects && m.subjectsView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "enter":
			if m.activeTab == tabSubjects {
				if s, ok := m.subjectsView.Selected(); ok {
					return m, m.startCmd(s.ID)
				}
			}
		case "p":
			return m, m.togglePauseCmd()
		case "b":
			return m, m.breakCmd()
		case "e":
			return m, m.endCmd()
		case "h":
			return m, m.respondCmd("help")
		case "1", "2", "3", "4":
			n, _ := strconv.Atoi(msg.String())
			return m, m.answerOptionCmd(n - 1)
		case "r":
			if m.activeTab == tabProgress {
				return m.requireGate(m.resetProgressCmd)
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabSubjects:
		m.subjectsView, tabCmd = m.subjectsView.Update(msg)
	case tabSession:
		m.sessionView, tabCmd = m.sessionView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := max(m.height-tabBarH-statusBarH, 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabSubjects:
		return m.subjectsView.View()
	case tabSession:
		return m.sessionView.View()
	case tabProgress:
		return m.renderProgress()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "studybuddy  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.settings.BuddyName != "" {
		left = m.subjectsView.Palette().Highlight().Render("● "+m.settings.BuddyName) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderProgress() string {
	profile := m.subjectsView.Profile()
	heading := m.subjectsView.Palette().Heading()
	var sb strings.Builder
	sb.WriteString(heading.Render(orDefault(profile.StatsLabel, "Your progress")) + "\n\n")
	sb.WriteString(theme.Muted.Render("total focus: ") + formatMinutes(m.stats.TotalFocusTimeSec) + "\n")
	sb.WriteString(theme.Muted.Render(orDefault(profile.StreakLabel, "streak")+": ") + strconv.Itoa(m.stats.CurrentStreak) + "\n")
	sb.WriteString(theme.Muted.Render("calm streak: ") + strconv.Itoa(m.stats.CalmStreak) + "\n")
	if !m.stats.LastSessionDate.IsZero() {
		sb.WriteString(theme.Muted.Render("last session: ") + m.stats.LastSessionDate.Local().Format("Mon 2 Jan 15:04") + "\n")
	}
	if m.ended != nil {
		sb.WriteString("\n" + theme.Hot.Render(m.ended.Celebration) + "\n")
		if m.ended.Badge != "" {
			sb.WriteString(m.ended.BadgeEmoji + " " + m.ended.Badge + theme.Muted.Render(" badge, "+m.ended.Quality+" focus") + "\n")
		}
		if m.ended.Encouragement != "" {
			sb.WriteString(m.ended.Encouragement + "\n")
		}
		if m.ended.ReportPath != "" {
			sb.WriteString(theme.Muted.Render("report: ") + m.ended.ReportPath + "\n")
		}
	}
	if len(m.stats.LastSessionLog) > 0 {
		sb.WriteString("\n" + theme.Title.Render("Last session") + "\n")
		for _, e := range m.stats.LastSessionLog {
			sb.WriteString(fmt.Sprintf("  %02d:%02d  %s: %s\n", e.AtElapsedSec/60, e.AtElapsedSec%60, e.PromptID, e.ResponseValue))
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("r: reset progress (grown-ups)"))
	return theme.Pane.Width(max(m.width-2, 20)).Render(sb.String())
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "start":
		subject := ""
		if len(parts) >= 2 {
			subject = parts[1]
		} else if s, ok := m.subjectsView.Selected(); ok {
			subject = s.ID
		}
		if len(parts) >= 3 {
			if n, err := strconv.Atoi(parts[2]); err == nil {
				m.workMin = n
			}
		}
		if len(parts) >= 4 {
			if n, err := strconv.Atoi(parts[3]); err == nil {
				m.breakMin = n
			}
		}
		return m, m.startCmd(subject)

	case "pause":
		return m, m.pauseCmd()

	case "resume":
		return m, m.resumeCmd()

	case "break":
		return m, m.breakCmd()

	case "end":
		return m, m.endCmd()

	case "answer":
		if len(parts) < 2 {
			m.status = "usage: answer <value>"
			return m, nil
		}
		return m, m.respondCmd(parts[1])

	case "help":
		return m, m.respondCmd("help")

	case "background":
		return m, m.appStateCmd(false)

	case "foreground":
		return m, m.appStateCmd(true)

	case "progress":
		m.activeTab = tabProgress
		return m, m.loadProgressCmd()

	case "reset":
		return m.requireGate(m.resetProgressCmd)

	case "age":
		if len(parts) < 2 {
			m.status = "usage: age <young|elementary|tween|teen>"
			return m, nil
		}
		age := parts[1]
		m.ageFlag = ""
		next := func() tea.Cmd {
			return m.settingsCmd(func(ctx context.Context) (sessiondto.SettingsOutput, error) {
				return m.progress.SelectAge(ctx, age)
			})
		}
		return m.requireGate(next)

	case "buddy":
		if len(parts) < 2 {
			m.status = "usage: buddy <id>"
			return m, nil
		}
		buddy := parts[1]
		return m, m.settingsCmd(func(ctx context.Context) (sessiondto.SettingsOutput, error) {
			return m.progress.SelectBuddy(ctx, buddy)
		})

	case "speech":
		input, err := parseSpeech(parts[1:])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		next := func() tea.Cmd {
			return m.settingsCmd(func(ctx context.Context) (sessiondto.SettingsOutput, error) {
				return m.progress.UpdateSpeech(ctx, input)
			})
		}
		return m.requireGate(next)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func parseSpeech(args []string) (sessiondto.SpeechSettingsInput, error) {
	usage := errors.New("usage: speech <main|calm|celebration> <on|off>")
	if len(args) != 2 {
		return sessiondto.SpeechSettingsInput{}, usage
	}
	var on bool
	switch args[1] {
	case "on":
		on = true
	case "off":
	default:
		return sessiondto.SpeechSettingsInput{}, usage
	}
	var input sessiondto.SpeechSettingsInput
	switch args[0] {
	case "main":
		input.MainScreenEnabled = &on
	case "calm":
		input.CalmModeEnabled = &on
	case "celebration":
		input.CelebrationEnabled = &on
	default:
		return sessiondto.SpeechSettingsInput{}, usage
	}
	return input, nil
}

// ─── parent gate ─────────────────────────────────────────────────────────────

func (m Model) requireGate(next func() tea.Cmd) (tea.Model, tea.Cmd) {
	m.gated = next
	age := m.settings.Age
	return m, func() tea.Msg {
		challenge, err := m.profile.OpenGate(context.Background(), age)
		return gateOpenedMsg{challenge: challenge, err: err}
	}
}

func (m Model) handleGateResult(msg gateResultMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err != nil:
		m.gated = nil
		m.status = gateError(msg.err)
		return m, nil
	case msg.out.Passed:
		next := m.gated
		m.gated = nil
		m.status = "grown-up check passed"
		if next == nil {
			return m, nil
		}
		return m, next()
	case msg.out.Locked:
		m.gated = nil
		m.status = fmt.Sprintf("too many tries, locked for %d seconds", int(msg.out.LockedFor.Seconds()))
		return m, nil
	default:
		m.status = fmt.Sprintf("not quite, %d tries left", msg.out.AttemptsLeft)
		next := m.gated
		return m.requireGate(next)
	}
}

func gateError(err error) string {
	if errors.Is(err, apperrors.ErrGateLocked) {
		return "grown-up check is locked: " + err.Error()
	}
	return "grown-up check: " + err.Error()
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) applySnapshot(msg snapshotMsg) {
	if msg.err != nil {
		return
	}
	s := msg.out
	m.sessionView.SetSnapshot(s)
	now := time.Now()
	if s.Status == "running" && s.ElapsedSec > m.lastElapsed {
		boundary := s.ElapsedSec - s.ElapsedSec%300
		if boundary > m.lastElapsed {
			if text, ok := m.profile.Milestone(context.Background(), s.Age, boundary); ok {
				m.sessionView.SetMilestone(text)
				m.milestoneTill = now.Add(milestoneShowFor)
			}
		}
	}
	if s.Status == "idle" || s.ElapsedSec < m.lastElapsed {
		m.milestoneTill = time.Time{}
	}
	m.lastElapsed = s.ElapsedSec
	if now.After(m.milestoneTill) {
		m.sessionView.SetMilestone("")
	}
}

func (m *Model) applyBuddy() {
	for _, b := range m.profile.Buddies(context.Background(), m.settings.Age) {
		if b.ID == m.settings.BuddyID {
			m.sessionView.SetBuddy(sessionview.Buddy{Name: b.Name, Emoji: b.Emoji})
			return
		}
	}
	m.sessionView.SetBuddy(sessionview.Buddy{Name: m.settings.BuddyName})
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.subjectsView, _ = m.subjectsView.Update(sz)
	m.sessionView, _ = m.sessionView.Update(sz)
}

func formatMinutes(sec int) string {
	return fmt.Sprintf("%d min %02d s", sec/60, sec%60)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// ─── async commands ───────────────────────────────────────────────────────────

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) waitEventCmd() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		e, ok := <-events
		return eventMsg{event: e, ok: ok}
	}
}

func (m Model) snapshotCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Snapshot(context.Background())
		return snapshotMsg{out: out, err: err}
	}
}

func (m Model) startCmd(subjectID string) tea.Cmd {
	age, work, brk := m.settings.Age, m.workMin, m.breakMin
	return func() tea.Msg {
		out, err := m.session.Start(context.Background(), subjectID, age, work, brk)
		return startedMsg{out: out, err: err}
	}
}

func (m Model) togglePauseCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		snap, err := m.session.Snapshot(ctx)
		if err != nil {
			return statusMsg{err: err}
		}
		if snap.Status == "running" {
			return statusMsg{text: "paused", err: m.session.Pause(ctx)}
		}
		return statusMsg{text: "back to work", err: m.session.Resume(ctx)}
	}
}

func (m Model) pauseCmd() tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: "paused", err: m.session.Pause(context.Background())}
	}
}

func (m Model) resumeCmd() tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: "back to work", err: m.session.Resume(context.Background())}
	}
}

func (m Model) breakCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.TakeBreak(context.Background())
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: out.Message}
	}
}

func (m Model) endCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.End(context.Background())
		return endedMsg{out: out, err: err}
	}
}

func (m Model) respondCmd(value string) tea.Cmd {
	promptID := ""
	if p := m.currentPrompt(); p != nil {
		promptID = p.ID
	}
	return func() tea.Msg {
		out, err := m.session.Respond(context.Background(), promptID, value)
		if err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: out.Feedback}
	}
}

func (m Model) answerOptionCmd(index int) tea.Cmd {
	p := m.currentPrompt()
	if p == nil || index < 0 || index >= len(p.Options) {
		return nil
	}
	return m.respondCmd(p.Options[index].Value)
}

func (m Model) currentPrompt() *sessiondto.PromptOutput {
	snap, err := m.session.Snapshot(context.Background())
	if err != nil {
		return nil
	}
	return snap.Prompt
}

func (m Model) appStateCmd(foreground bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Foreground(context.Background(), foreground)
		return appStateMsg{out: out, foreground: foreground, err: err}
	}
}

func (m Model) loadSettingsCmd() tea.Cmd {
	return m.settingsCmd(m.progress.Settings)
}

func (m Model) settingsCmd(call func(ctx context.Context) (sessiondto.SettingsOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := call(context.Background())
		return settingsMsg{out: out, err: err}
	}
}

func (m Model) loadProgressCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.Progress(context.Background())
		return progressMsg{out: out, err: err}
	}
}

func (m Model) resetProgressCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.progress.ResetProgress(context.Background()); err != nil {
			return progressMsg{err: err}
		}
		out, err := m.progress.Progress(context.Background())
		return progressMsg{out: out, err: err}
	}
}

func (m Model) submitGateCmd(answer string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.profile.SubmitGate(context.Background(), answer)
		return gateResultMsg{out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type profilePortBridge struct{ p profilePort }

func (b profilePortBridge) Show(ctx context.Context, age string) (profiledto.ProfileOutput, []profiledto.SubjectOutput) {
	return b.p.Show(ctx, age)
}
func (b profilePortBridge) Buddies(ctx context.Context, age string) []profiledto.BuddyOutput {
	return b.p.Buddies(ctx, age)
}
