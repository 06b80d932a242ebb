package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studybuddy/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command. Question is
// set when the palette was opened as a prompt.
type PaletteSubmitMsg struct {
	Input    string
	Question string
}

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{ Question string }

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// hints must stay in sync with the switch in app/model.go executePalette.
var paletteHints = []string{
	"start [subject] [work-min] [break-min]",
	"pause",
	"resume",
	"break",
	"end",
	"answer <value>",
	"help",
	"background",
	"foreground",
	"age <young|elementary|tween|teen>",
	"buddy <id>",
	"speech <main|calm|celebration> <on|off>",
	"progress",
	"reset",
}

// Palette is a command-palette overlay backed by bubbles/textinput.
type Palette struct {
	input    textinput.Model
	visible  bool
	question string
	width    int
}

// NewPalette creates an inactive Palette ready to be opened.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

// Visible reports whether the palette is currently shown.
func (p Palette) Visible() bool { return p.visible }

// Open shows the palette, clears the input, and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.question = ""
	p.input.Placeholder = "type a command…"
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// Ask shows the palette as a one-off question without command hints.
func (p *Palette) Ask(question string) tea.Cmd {
	p.question = question
	p.input.Placeholder = "your answer"
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

// Asking reports whether the palette is showing a question.
func (p Palette) Asking() bool { return p.visible && p.question != "" }

// SetWidth sets the render width for the overlay.
func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			question := p.question
			p.visible = false
			p.question = ""
			p.input.Blur()
			return p, func() tea.Msg { return PaletteCancelMsg{Question: question} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			question := p.question
			p.visible = false
			p.question = ""
			p.input.Blur()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val, Question: question} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	if p.question != "" {
		sb.WriteString(theme.Title.Render("Grown-ups only") + "\n")
		sb.WriteString(p.question + "\n")
		sb.WriteString("> " + p.input.View() + "\n")
		return paletteStyle.Width(p.renderWidth()).Render(sb.String())
	}

	prefix := strings.ToLower(p.input.Value())
	var matching []string
	for _, h := range paletteHints {
		if prefix == "" || strings.HasPrefix(h, prefix) {
			matching = append(matching, h)
			if len(matching) == 5 {
				break
			}
		}
	}

	sb.WriteString(theme.Title.Render("Commands") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if len(matching) > 0 {
		sb.WriteString("\n")
		for _, h := range matching {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}

	return paletteStyle.Width(p.renderWidth()).Render(sb.String())
}

func (p Palette) renderWidth() int {
	if p.width < 20 {
		return 62
	}
	return p.width - 2
}
