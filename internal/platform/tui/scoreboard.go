package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/star-collider/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the stats sidebar
	sidebarWidth       = 26  // Width of stats sidebar
	maxScores          = 100 // Max runs to load
)

// scoreView selects which runs the table lists.
type scoreView int

const (
	viewTopWins scoreView = iota
	viewRecent
)

func (v scoreView) String() string {
	if v == viewRecent {
		return "Recent runs"
	}
	return "Top wins"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextView key.Binding
	PrevView key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev view"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next view"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "wins/recent"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	view        scoreView
	store       *storage.Store
	runs        []storage.Run
	stats       *storage.Stats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show the stats sidebar

	// Embedded scoreboards hand control back instead of quitting.
	embedded bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadRuns()

	return m
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.view == viewRecent {
		return []table.Column{
			{Title: "#", Width: 5},
			{Title: "Result", Width: 14},
			{Title: "Stage", Width: 6},
			{Title: "Time", Width: 8},
			{Title: "Via", Width: 9},
			{Title: "Date", Width: 13},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Player", Width: 12},
		{Title: "Via", Width: 9},
		{Title: "Date", Width: 13},
	}
}

// createTable creates a new table with the columns of the current view.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns reloads the current view and the stats.
func (m *ScoreboardModel) loadRuns() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		var err error
		if m.view == viewRecent {
			m.runs, err = m.store.RecentRuns(maxScores)
		} else {
			m.runs, err = m.store.TopScores(maxScores)
		}
		if err != nil {
			m.loadErr = err
		}
		if stats, err := m.store.Stats(); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		elapsed := formatElapsed(r.ElapsedMillis)
		date := r.CreatedAt.Local().Format("Jan 02 15:04")
		if m.view == viewRecent {
			result := string(r.Outcome)
			switch {
			case r.LoseReason != "":
				result += " (" + r.LoseReason + ")"
			case r.Score > 0:
				result += fmt.Sprintf(" %d", r.Score)
			}
			rows[i] = table.Row{fmt.Sprintf("%d", r.ID), result, fmt.Sprintf("%d", r.Stage), elapsed, r.Frontend, date}
			continue
		}
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), fmt.Sprintf("%d", r.Score), elapsed, player, r.Frontend, date}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// formatElapsed renders milliseconds as m:ss.s.
func formatElapsed(ms int64) string {
	return fmt.Sprintf("%d:%04.1f", ms/60_000, float64(ms%60_000)/1000)
}

func (m *ScoreboardModel) switchView(v scoreView) {
	m.view = v
	m.table = m.createTable()
	m.loadRuns()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, m.exit()

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, m.exit()

		case key.Matches(msg, m.keys.NextView), key.Matches(msg, m.keys.Right),
			key.Matches(msg, m.keys.PrevView), key.Matches(msg, m.keys.Left):
			m.switchView(1 - m.view)
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, v := range []scoreView{viewTopWins, viewRecent} {
		if v == m.view {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(" "+v.String()+" "))
		}
	}
	return strings.Join(tabs, " ")
}

// renderSidebar shows aggregate stats over every stored run.
func (m ScoreboardModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Stats\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	st := m.stats
	if st == nil || st.Runs == 0 {
		sb.WriteString("no runs yet")
		return sidebarStyle.Render(sb.String())
	}
	fmt.Fprintf(&sb, "runs     %d\n", st.Runs)
	fmt.Fprintf(&sb, "wins     %d\n", st.Wins)
	fmt.Fprintf(&sb, "losses   %d\n", st.Losses)
	fmt.Fprintf(&sb, "quits    %d\n", st.Quits)
	fmt.Fprintf(&sb, "best     %d\n", st.HighScore)
	fmt.Fprintf(&sb, "average  %.1f\n", st.AvgScore)
	if st.FastestWin > 0 {
		fmt.Fprintf(&sb, "fastest  %s\n", formatElapsed(st.FastestWin.Milliseconds()))
	}
	for stage := 1; stage < len(st.StageCounts); stage++ {
		fmt.Fprintf(&sb, "stage %d  %d\n", stage, st.StageCounts[stage])
	}
	if !st.LastPlayed.IsZero() {
		fmt.Fprintf(&sb, "last     %s", st.LastPlayed.Local().Format("Jan 02 15:04"))
	}
	return sidebarStyle.Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		switch {
		case m.store == nil:
			return emptyStyle.Render("Scores database unavailable.")
		case m.loadErr != nil:
			return emptyStyle.Render("Could not load runs:\n" + m.loadErr.Error())
		case m.view == viewTopWins:
			return emptyStyle.Render("No wins recorded yet.\nClear all three stages to set a score!")
		default:
			return emptyStyle.Render("No runs recorded yet.")
		}
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: %w", err)
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
