// Package starcollider implements the Star Collider simulation: a
// single-player vertical shooter with three boss fights. All state lives in
// a Session that a frontend drives one frame at a time through the
// Renderer, Input, Audio and Clock capabilities. The package never touches
// a terminal, a window or a sound device.
package starcollider

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/star-collider/internal/core"
)

// Session limits.
const (
	TimeLimitMillis = 179_000 // a run lasts at most this long
	DefaultVolume   = 64
)

// Deps are the capabilities a session needs. Any nil member is replaced
// by a no-op (or, for Clock, the system clock).
type Deps struct {
	Renderer Renderer
	Input    Input
	Audio    Audio
	Clock    Clock
	Logger   *log.Logger
	Metrics  *Metrics
}

// Session is one run of the game, from the title screen to a win or loss.
type Session struct {
	cfg     core.RuntimeConfig
	metrics Metrics

	renderer Renderer
	input    Input
	audio    Audio
	clock    Clock
	logger   *log.Logger
	rng      *rand.Rand
	seed     int64

	phase   Phase
	player  Player
	heat    Heat
	pool    *Pool
	enemies [3]Enemy
	shot    Shot
	pickups [2]Pickup
	bg      Background

	now        int64 // clock reading for the current frame
	startTime  int64 // when the launch finished
	stageStart int64 // when the current stage (or the win) began

	// Joystick state carried between frames.
	dir     struct{ X, Y int }
	aButton bool

	launchAccel float64
	titleAlpha  int
	pulse       uint8 // press-start pulse phase, wraps

	winAccel float64
	winDone  bool // ship has cleared the top of the screen

	score      int
	scored     bool
	loseReason string
	lastStage  int // 1-based furthest stage entered

	volume     int
	lastVolume int

	frames int64
	quit   bool
}

// NewSession creates a session on the title screen.
func NewSession(cfg core.RuntimeConfig, deps Deps) *Session {
	if cfg.Difficulty == 0 {
		cfg.Difficulty = core.DefaultConfig().Difficulty
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	s := &Session{
		cfg:      cfg,
		renderer: deps.Renderer,
		input:    deps.Input,
		audio:    deps.Audio,
		clock:    deps.Clock,
		logger:   deps.Logger,
		pool:     NewPool(DefaultPoolCapacity),
		volume:   DefaultVolume,
	}
	if deps.Metrics != nil {
		s.metrics = *deps.Metrics
	} else {
		s.metrics = DefaultMetrics()
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if s.input == nil {
		s.input = noInput{}
	}
	if s.audio == nil {
		s.audio = NopAudio{}
	}
	if s.clock == nil {
		s.clock = NewSystemClock()
	}

	s.Reset()
	return s
}

// Reset returns the session to the title screen with fresh actors. The
// volume survives a reset.
func (s *Session) Reset() {
	seed := s.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))

	s.phase = PhaseTitle
	s.player = NewPlayer(s.metrics)
	s.heat = NewHeat()
	s.pool.Clear()
	for k := range s.enemies {
		s.enemies[k] = NewEnemy(EnemyKind(k), s.cfg.Difficulty, s.metrics)
	}
	s.pickups[SpeedPickup] = NewPickup(SpeedPickup, s.metrics)
	s.pickups[DamagePickup] = NewPickup(DamagePickup, s.metrics)
	s.bg = NewBackground(ScreenHeight, s.metrics.Size(TexBackground).H)
	s.idleShot()

	s.now = s.clock.NowMillis()
	s.startTime, s.stageStart = 0, 0
	s.dir.X, s.dir.Y = 0, 0
	s.aButton = false
	s.titleAlpha = 255
	s.launchAccel = 0
	s.pulse = 0
	s.winAccel = 1.0
	s.winDone = false
	s.score, s.scored = 0, false
	s.loseReason = ""
	s.lastStage = 0
	s.frames = 0
	s.quit = false

	s.lastVolume = -1
	s.audio.PlayMusic(TrackIdle, true)
	s.syncVolume()
}

// Step advances the simulation by one frame. It returns false once a quit
// has been requested; the frame that saw the request still completes.
func (s *Session) Step() bool {
	s.now = s.clock.NowMillis()
	s.frames++

	s.handleEvents()
	s.handleKeys()

	if s.phase == PhaseLaunch {
		s.stepLaunch()
		s.syncVolume()
		return !s.quit
	}

	s.bg.Advance()
	s.stepWeapons()
	s.pool.Advance(s.player.BulletSpeed)
	s.stepStage()
	s.watchdog()

	switch s.phase {
	case PhaseTitle:
		s.pulse++
	case PhaseWin:
		s.stepWin()
	case PhaseLose:
		s.volume = max(s.volume-1, 0)
	}

	s.player.ClampTurret(s.metrics)
	s.syncVolume()
	return !s.quit
}

// Frame runs Step then Render.
func (s *Session) Frame() bool {
	ok := s.Step()
	s.Render()
	return ok
}

// stepWeapons runs the heat model and spawns or prunes bullets.
func (s *Session) stepWeapons() {
	p := &s.player
	firing := p.Shooting && s.heat.Cooled()
	barrel := s.heat.Advance(firing, p.HeatSpeed, p.CoolSpeed)

	ship := s.metrics.Size(TexFighter)
	bulletW := s.metrics.Size(TexBullet).W
	switch {
	case barrel == BarrelLeft:
		s.pool.Append(p.X+ship.W/6+bulletW*3/2, p.TurretY)
	case barrel == BarrelRight:
		s.pool.Append(p.X+ship.W*4/6+bulletW, p.TurretY)
	case !firing:
		s.pool.PruneAbove(0)
	}
}

// watchdog clamps player health and forces a loss on zero health or when
// the time limit runs out.
func (s *Session) watchdog() {
	p := &s.player
	if p.Health <= MinHealth {
		p.Health = MinHealth
		p.Shooting = false
		if s.phase.Combat() {
			s.enterLose("health")
		}
	} else if p.Health > MaxHealth {
		p.Health = MaxHealth
	}

	if s.phase.Started() && s.now-s.startTime >= TimeLimitMillis {
		p.Shooting = false
		if s.phase.Combat() {
			s.enterLose("time")
		}
	}
}

func (s *Session) setPhase(next Phase) {
	if next == s.phase {
		return
	}
	s.logDebug("phase", "from", s.phase, "to", next, "frame", s.frames)
	s.phase = next
	if i := next.Stage(); i >= 0 {
		s.lastStage = i + 1
	}
}

// syncVolume pushes the volume to the audio device when it changed.
func (s *Session) syncVolume() {
	s.volume = core.Clamp(s.volume, 0, MaxVolume)
	if s.volume != s.lastVolume {
		s.audio.SetVolume(s.volume)
		s.lastVolume = s.volume
	}
}

func (s *Session) logDebug(msg string, kv ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, kv...)
	}
}

// SetVolume sets the music volume, clamped to [0, MaxVolume].
func (s *Session) SetVolume(v int) {
	s.volume = v
	s.syncVolume()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Player returns a copy of the player.
func (s *Session) Player() Player { return s.player }

// Heat returns a copy of the turret heat state.
func (s *Session) Heat() Heat { return s.heat }

// Enemy returns a copy of one boss.
func (s *Session) Enemy(k EnemyKind) Enemy { return s.enemies[k] }

// Pickup returns a copy of one pickup.
func (s *Session) Pickup(k PickupKind) Pickup { return s.pickups[k] }

// Bullets returns the player bullet pool. Callers must not modify it.
func (s *Session) Bullets() *Pool { return s.pool }

// Background returns the background state.
func (s *Session) Background() Background { return s.bg }

// Score returns the final score, zero until a win sets it.
func (s *Session) Score() int { return s.score }

// Volume returns the music volume.
func (s *Session) Volume() int { return s.volume }

// Metrics returns the texture sizes the session positions actors with.
func (s *Session) Metrics() Metrics { return s.metrics }

// Seed returns the seed the current run was started with.
func (s *Session) Seed() int64 { return s.seed }

// Frames returns the number of frames stepped since the last reset.
func (s *Session) Frames() int64 { return s.frames }

// Quit reports whether a quit was requested.
func (s *Session) Quit() bool { return s.quit }

// RequestQuit asks the session to stop at the end of the current frame.
func (s *Session) RequestQuit() { s.quit = true }

// GameOver reports whether the run ended in a win or a loss.
func (s *Session) GameOver() bool { return s.phase.Over() }

// Won reports whether the run ended in a win.
func (s *Session) Won() bool { return s.phase == PhaseWin }

// ElapsedMillis returns the time since the launch finished, zero before.
func (s *Session) ElapsedMillis() int64 {
	if !s.phase.Started() {
		return 0
	}
	return s.now - s.startTime
}

// SystemClock reads milliseconds from the monotonic system clock.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock returns a clock whose zero is now. Readings start at one
// so that zero can mean "unset" in timers.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// NowMillis implements Clock.
func (c *SystemClock) NowMillis() int64 {
	return time.Since(c.origin).Milliseconds() + 1
}

type nopRenderer struct{}

func (nopRenderer) Render(Texture, int, int, *DrawOptions)   {}
func (nopRenderer) SetColorMod(Texture, uint8, uint8, uint8) {}
func (nopRenderer) SetAlphaMod(Texture, uint8)               {}
func (nopRenderer) Clear()                                   {}
func (nopRenderer) Present()                                 {}

type noInput struct{}

func (noInput) IsKeyDown(Key) bool  { return false }
func (noInput) PollEvents() []Event { return nil }
