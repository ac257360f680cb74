package window

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/star-collider/internal/config"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
	"github.com/vovakirdan/star-collider/internal/registry"
)

// Options configure a windowed game.
type Options struct {
	Env      registry.Env
	Frontend string // stored with each run
	Audio    starcollider.Audio
}

// Game implements ebiten.Game around a starcollider.Session.
type Game struct {
	ctx      context.Context
	opts     Options
	cfg      config.Config
	session  *starcollider.Session
	renderer *SpriteRenderer
	input    *Input
	watcher  *config.Watcher

	saved bool
	last  starcollider.Result
}

// NewGame creates a game on the title screen. The config watcher starts
// when opts.Env.ConfigPath is set.
func NewGame(ctx context.Context, opts Options) *Game {
	if opts.Audio == nil {
		opts.Audio = starcollider.NopAudio{}
	}
	if opts.Frontend == "" {
		opts.Frontend = "window"
	}
	cfg := opts.Env.Config
	g := &Game{
		ctx:      ctx,
		opts:     opts,
		cfg:      cfg,
		renderer: NewSpriteRenderer(starcollider.DefaultMetrics()),
		input:    NewInput(cfg.Controls.JoystickDeadZone),
	}
	g.session = g.newSession(opts.Env.Seed)

	if path := opts.Env.ConfigPath; path != "" {
		w, err := config.Watch(path, config.DefaultDebounce)
		if err != nil {
			g.logWarn("config reload disabled", "error", err)
		} else {
			g.watcher = w
		}
	}
	return g
}

func (g *Game) newSession(seed int64) *starcollider.Session {
	metrics := g.renderer.metrics
	s := starcollider.NewSession(g.cfg.Runtime(seed), starcollider.Deps{
		Renderer: g.renderer,
		Input:    g.input,
		Audio:    g.opts.Audio,
		Logger:   g.opts.Env.Logger,
		Metrics:  &metrics,
	})
	s.SetVolume(g.cfg.Audio.Volume)
	return s
}

// Update implements ebiten.Game. It advances the session by one frame.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		g.session.RequestQuit()
	}
	g.applyReloads()

	if g.session.Settled() && restartPressed() {
		g.restart()
	}

	g.input.Poll()
	running := g.session.Step()
	if g.session.Settled() && !g.saved {
		g.record()
	}
	if !running {
		return ebiten.Termination
	}
	return nil
}

// applyReloads takes any config the watcher produced since the last frame.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-g.watcher.Configs:
			if !ok {
				g.watcher = nil
				return
			}
			g.cfg = cfg
			g.opts.Env.Config = cfg
			g.input.SetDeadZone(cfg.Controls.JoystickDeadZone)
			g.session.SetVolume(cfg.Audio.Volume)
			if g.opts.Env.Logger != nil {
				g.opts.Env.Logger.Info("config reloaded", "volume", cfg.Audio.Volume, "dead_zone", cfg.Controls.JoystickDeadZone)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logWarn("config reload failed", "error", err)
		default:
			return
		}
	}
}

func (g *Game) record() {
	g.last = g.session.Result()
	g.saved = true
	g.opts.Env.Record(g.opts.Frontend, g.last)
}

func (g *Game) restart() {
	g.session = g.newSession(0)
	g.saved = false
}

var overlayColor = color.RGBA{A: 170}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetTarget(screen)
	g.session.Render()

	if g.session.Settled() {
		const barH = 28
		vector.FillRect(screen, 0, starcollider.ScreenHeight-barH, starcollider.ScreenWidth, barH, overlayColor, false)
		op := &text.DrawOptions{}
		op.GeoM.Translate(starcollider.ScreenWidth/2, starcollider.ScreenHeight-barH/2)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(screen, "R: play again   Esc: quit", g.renderer.face, op)
	}
}

// Layout implements ebiten.Game. The playfield has a fixed size and is
// scaled to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return starcollider.ScreenWidth, starcollider.ScreenHeight
}

// Result returns the last recorded run, or the current one.
func (g *Game) Result() starcollider.Result {
	if g.saved {
		return g.last
	}
	return g.session.Result()
}

// Close stops the config watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
		g.watcher = nil
	}
}

func (g *Game) logWarn(msg string, kv ...any) {
	if g.opts.Env.Logger != nil {
		g.opts.Env.Logger.Warn(msg, kv...)
	}
}

// Run opens the window and plays until the player quits, the window is
// closed or ctx is cancelled. An unfinished run is recorded as quit.
func Run(ctx context.Context, opts Options) (starcollider.Result, error) {
	cfg := opts.Env.Config
	scale := max(cfg.Window.Scale, 0.25)

	ebiten.SetWindowTitle("Star Collider")
	ebiten.SetWindowSize(int(starcollider.ScreenWidth*scale), int(starcollider.ScreenHeight*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetTPS(max(cfg.TickRate, 1))
	ebiten.SetWindowClosingHandled(true)

	g := NewGame(ctx, opts)
	defer g.Close()

	err := ebiten.RunGame(g)
	if !g.saved {
		g.record()
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return g.Result(), fmt.Errorf("window: %w", err)
	}
	return g.Result(), nil
}
