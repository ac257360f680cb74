package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/star-collider/internal/registry"
	"github.com/vovakirdan/star-collider/internal/storage"
)

// MenuItem represents a selectable entry in the launcher.
type MenuItem struct {
	Frontend string // frontend ID; empty for the fixed entries below
	Title    string
	action   MenuAction
}

// MenuModel is the Bubble Tea model for the launcher menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	highScore      int
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a frontend
	openScoreboard bool      // True if user picked the scoreboard
}

// NewMenuModel creates a menu offering the given frontends, the
// scoreboard and quit.
func NewMenuModel(store *storage.Store, frontends []registry.Info, width, height int) MenuModel {
	items := make([]MenuItem, 0, len(frontends)+2)
	for _, f := range frontends {
		items = append(items, MenuItem{Frontend: f.ID, Title: "Play: " + f.Title, action: MenuActionSelect})
	}
	items = append(items,
		MenuItem{Title: "High scores", action: MenuActionScoreboard},
		MenuItem{Title: "Quit", action: MenuActionQuit},
	)

	m := MenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if high, err := store.HighScore(); err == nil {
			m.highScore = high
		}
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
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		item := m.items[m.cursor]
		switch item.action {
		case MenuActionQuit:
			m.quitting = true
		case MenuActionScoreboard:
			m.openScoreboard = true
		default:
			m.selected = &item
		}
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S T A R   C O L L I D E R"), m.width))
	b.WriteString("\n\n")
	if m.highScore > 0 {
		b.WriteString(centerText(fmt.Sprintf("Best score: %d", m.highScore), m.width))
		b.WriteString("\n\n")
	}

	for i, item := range m.items {
		line := "  " + item.Title + "  "
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title + "  ")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within given width, measuring styled text by
// its printable width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Frontend        string
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, frontends []registry.Info, width, height int) (MenuResult, error) {
	model := NewMenuModel(store, frontends, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{}, fmt.Errorf("tui: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}

	switch {
	case m.WantsScoreboard():
		return MenuResult{WantsScoreboard: true}, nil
	case m.Selected() != nil:
		return MenuResult{Frontend: m.Selected().Frontend}, nil
	default:
		return MenuResult{Quit: true}, nil
	}
}
