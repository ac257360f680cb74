package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/star-collider/internal/config"
	"github.com/vovakirdan/star-collider/internal/core"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
	"github.com/vovakirdan/star-collider/internal/registry"
)

// Options configure a game Model.
type Options struct {
	Env      registry.Env
	Frontend string // stored with each run
	Audio    starcollider.Audio

	// Renderer styles output for a specific terminal; nil means stdout.
	Renderer *lipgloss.Renderer
	// Embedded models belong to a SessionModel: finishing marks the model
	// done instead of quitting the program.
	Embedded bool
	// Clipboard enables ctrl+y screenshots to the local clipboard.
	Clipboard bool
}

// configMsg carries a reloaded config from the watcher.
type configMsg config.Config

// configErrMsg carries a watcher error.
type configErrMsg struct{ err error }

// Model is the Bubble Tea model for one game of Star Collider.
type Model struct {
	opts      Options
	cfg       config.Config
	session   *starcollider.Session
	cells     *CellRenderer
	input     *HeldKeys
	painter   *Painter
	keyMapper *KeyMapper
	watcher   *config.Watcher

	width    int
	height   int
	saved    bool // current run recorded
	last     starcollider.Result
	status   string
	quitting bool
	done     bool
}

// NewModel creates a model on the title screen.
func NewModel(opts Options) Model {
	if opts.Audio == nil {
		opts.Audio = starcollider.NopAudio{}
	}
	if opts.Frontend == "" {
		opts.Frontend = "terminal"
	}
	cfg := opts.Env.Config
	metrics := starcollider.DefaultMetrics()

	m := Model{
		opts:      opts,
		cfg:       cfg,
		input:     NewHeldKeys(cfg.Controls.HoldFrames),
		painter:   NewPainter(opts.Renderer),
		keyMapper: NewKeyMapper(),
	}
	screen := core.NewScreen(cfg.TerminalSize(starcollider.ScreenWidth, starcollider.ScreenHeight))
	m.cells = NewCellRenderer(screen, metrics, cfg.Terminal.CellWidth, cfg.Terminal.CellHeight)
	m.session = m.newSession(opts.Env.Seed)

	if path := opts.Env.ConfigPath; path != "" {
		w, err := config.Watch(path, config.DefaultDebounce)
		if err != nil {
			m.logWarn("config reload disabled", "error", err)
		} else {
			m.watcher = w
		}
	}
	return m
}

func (m Model) newSession(seed int64) *starcollider.Session {
	metrics := m.cells.metrics
	s := starcollider.NewSession(m.cfg.Runtime(seed), starcollider.Deps{
		Renderer: m.cells,
		Input:    m.input,
		Audio:    m.opts.Audio,
		Logger:   m.opts.Env.Logger,
		Metrics:  &metrics,
	})
	s.SetVolume(m.cfg.Audio.Volume)
	s.Render()
	return s
}

// Init starts the tick loop and the config watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.cfg.TickRate), m.waitForConfig())
}

func (m Model) waitForConfig() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Configs:
			if !ok {
				return nil
			}
			return configMsg(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrMsg{err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		return m.handleTick()

	case configMsg:
		m.applyConfig(config.Config(msg))
		return m, m.waitForConfig()

	case configErrMsg:
		m.logWarn("config reload failed", "error", msg.err)
		return m, m.waitForConfig()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	if m.keyMapper.IsQuit(msg) {
		return m.finish()
	}
	if msg.String() == "ctrl+y" {
		m.screenshot()
		return m, nil
	}

	if m.session.Settled() {
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionRestart, MenuActionSelect:
			m.restart()
		case MenuActionQuit, MenuActionBack:
			return m.finish()
		}
		return m, nil
	}

	k, ok := m.keyMapper.MapKey(msg)
	if !ok {
		return m, nil
	}
	switch k {
	case starcollider.KeyVolumeUp, starcollider.KeyVolumeDown, starcollider.KeyEscape:
		m.input.Tap(k)
	default:
		m.input.Press(k)
	}
	return m, nil
}

// handleTick runs one frame of the simulation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	running := m.session.Frame()
	m.input.Tick()

	if m.session.Settled() && !m.saved {
		m.record()
	}
	if !running {
		return m.finish()
	}
	return m, tickCmd(m.cfg.TickRate)
}

// record saves the current run once.
func (m *Model) record() {
	m.last = m.session.Result()
	m.saved = true
	m.opts.Env.Record(m.opts.Frontend, m.last)
}

// restart begins a new run with a fresh seed.
func (m *Model) restart() {
	m.input.Release()
	m.session = m.newSession(0)
	m.saved = false
	m.status = ""
}

// finish records an unfinished run as quit and stops the model.
func (m Model) finish() (tea.Model, tea.Cmd) {
	if !m.saved {
		m.record()
	}
	m.done = true
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	if m.opts.Embedded {
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// applyConfig takes the live-tunable parts of a reloaded config. The rest
// applies from the next run.
func (m *Model) applyConfig(cfg config.Config) {
	m.cfg = cfg
	m.opts.Env.Config = cfg
	m.input.SetHold(cfg.Controls.HoldFrames)
	m.session.SetVolume(cfg.Audio.Volume)
	m.status = "config reloaded"
	if m.opts.Env.Logger != nil {
		m.opts.Env.Logger.Info("config reloaded", "volume", cfg.Audio.Volume, "hold_frames", cfg.Controls.HoldFrames)
	}
}

// screenshot saves the current screen as text and copies it to the
// clipboard when allowed.
func (m *Model) screenshot() {
	shot := Screenshot(m.cells.Screen())

	dir := filepath.Join(config.Dir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logWarn("screenshot failed", "error", err)
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("starcollider_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(shot), 0o600); err != nil {
		m.logWarn("screenshot failed", "error", err)
		return
	}
	m.status = "screenshot saved"

	if m.opts.Clipboard && !clipboard.Unsupported {
		if err := clipboard.WriteAll(shot); err != nil {
			m.logWarn("clipboard copy failed", "error", err)
			return
		}
		m.status = "screenshot copied"
	}
}

func (m Model) logWarn(msg string, kv ...any) {
	if m.opts.Env.Logger != nil {
		m.opts.Env.Logger.Warn(msg, kv...)
	}
}

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	winStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	loseStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	screen := m.cells.Screen()
	needW, needH := screen.Cols(), screen.Rows()+1
	if m.width > 0 && (m.width < needW || m.height < needH) {
		msg := fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", needW, needH, m.width, m.height)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, warningStyle.Render(msg))
	}

	view := lipgloss.JoinVertical(lipgloss.Center, m.painter.Render(screen), m.statusLine())
	if m.width == 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
}

// statusLine shows run progress, or the result once the run is settled.
func (m Model) statusLine() string {
	s := m.session
	if s.Settled() {
		res := s.Result()
		if res.Outcome == starcollider.OutcomeWin {
			return winStyle.Render(fmt.Sprintf("VICTORY  score %d  |  r: play again  q: quit", res.Score))
		}
		return loseStyle.Render(fmt.Sprintf("DEFEAT (%s) at stage %d  |  r: play again  q: quit", res.LoseReason, res.StageReached))
	}

	left := (starcollider.TimeLimitMillis - s.ElapsedMillis()) / 1000
	line := fmt.Sprintf("stage %d  time %3ds  hp %3d  vol %3d", s.StageReached(), max(left, 0), s.Player().Health, s.Volume())
	if m.status != "" {
		line += "  " + m.status
	}
	return statusStyle.Render(line)
}

// Session returns the running session.
func (m Model) Session() *starcollider.Session { return m.session }

// Result returns the last recorded run, or the current one if none was
// recorded yet.
func (m Model) Result() starcollider.Result {
	if m.saved {
		return m.last
	}
	return m.session.Result()
}

// Done reports whether the player has left the game.
func (m Model) Done() bool { return m.done }

// Run starts the Bubble Tea program and blocks until the player quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) (starcollider.Result, error) {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	m, ok := final.(Model)
	if !ok {
		m = model
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		if !m.saved {
			m.record()
		}
		return m.Result(), nil
	}
	if err != nil {
		return m.Result(), fmt.Errorf("tui: %w", err)
	}
	return m.Result(), nil
}
