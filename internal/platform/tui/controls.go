package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ControlsModel lists the in-game key bindings.
type ControlsModel struct {
	keys   GameKeyMap
	help   help.Model
	back   key.Binding
	width  int
	height int
	done   bool
}

// NewControlsModel creates the controls screen.
func NewControlsModel(keys GameKeyMap, width, height int) ControlsModel {
	h := help.New()
	h.ShowAll = true
	h.Width = width

	return ControlsModel{
		keys: keys,
		help: h,
		back: key.NewBinding(
			key.WithKeys("esc", "b", "enter", "q"),
			key.WithHelp("esc", "back"),
		),
		width:  width,
		height: height,
	}
}

// Init initializes the controls screen.
func (m ControlsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the controls screen.
func (m ControlsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.back) {
			m.done = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the controls screen.
func (m ControlsModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("CONTROLS"), m.width))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2).
		Render(m.help.View(m.keys))
	for _, line := range strings.Split(body, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuFooterStyle.Render("Held keys stay down while the terminal repeats them."), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuFooterStyle.Render("esc: back"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Done reports whether the user left the screen.
func (m ControlsModel) Done() bool {
	return m.done
}
