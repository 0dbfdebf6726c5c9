package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuChoice identifies a main menu entry.
type MenuChoice int

const (
	MenuNone MenuChoice = iota
	MenuResume
	MenuNewGame
	MenuControls
	MenuHighScores
	MenuQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice   MenuChoice
	Title    string
	Disabled bool
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuItemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	menuFooterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  MenuChoice
}

// NewMenuModel creates a new menu model. Resume is only selectable when a
// game is in progress.
func NewMenuModel(width, height int, inProgress bool) MenuModel {
	items := []MenuItem{
		{Choice: MenuResume, Title: "Resume", Disabled: !inProgress},
		{Choice: MenuNewGame, Title: "New Game"},
		{Choice: MenuControls, Title: "Controls"},
		{Choice: MenuHighScores, Title: "High Scores"},
		{Choice: MenuQuit, Title: "Quit"},
	}

	m := MenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	if !inProgress {
		m.cursor = 1
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.selected = MenuQuit

	case MenuActionUp:
		m.cursor = m.step(-1)

	case MenuActionDown:
		m.cursor = m.step(1)

	case MenuActionSelect:
		if item := m.items[m.cursor]; !item.Disabled {
			m.selected = item.Choice
		}

	case MenuActionBack:
		// Esc in the menu returns to a running game.
		if !m.items[0].Disabled {
			m.selected = MenuResume
		}
	}

	return m, nil
}

// step moves the cursor by dir, skipping disabled entries.
func (m MenuModel) step(dir int) int {
	for i := m.cursor + dir; i >= 0 && i < len(m.items); i += dir {
		if !m.items[i].Disabled {
			return i
		}
	}
	return m.cursor
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	top := (m.height - len(m.items) - 8) / 2
	if top > 0 {
		b.WriteString(strings.Repeat("\n", top))
	}

	b.WriteString(centerText(menuTitleStyle.Render("A S T E R O I D S"), m.width))
	b.WriteString("\n\n\n")

	for i, item := range m.items {
		label := "  " + item.Title + "  "
		var line string
		switch {
		case item.Disabled:
			line = menuDisabledStyle.Render(label)
		case i == m.cursor:
			line = menuSelectedStyle.Render(label)
		default:
			line = menuItemStyle.Render(label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(menuFooterStyle.Render(footer), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or MenuNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// Cursor returns the highlighted entry.
func (m MenuModel) Cursor() MenuChoice {
	return m.items[m.cursor].Choice
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
