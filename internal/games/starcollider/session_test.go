package starcollider

import (
	"testing"

	"github.com/vovakirdan/star-collider/internal/core"
)

const testFrameMillis = 16

type fakeClock struct {
	now int64
}

func (c *fakeClock) NowMillis() int64 { return c.now }

type scriptInput struct {
	down   map[Key]bool
	events []Event
}

func newScriptInput() *scriptInput {
	return &scriptInput{down: make(map[Key]bool)}
}

func (in *scriptInput) IsKeyDown(k Key) bool { return in.down[k] }

func (in *scriptInput) PollEvents() []Event {
	out := in.events
	in.events = nil
	return out
}

type recordingAudio struct {
	tracks  []Track
	fades   int
	volumes []int
}

func (a *recordingAudio) PlayMusic(t Track, _ bool) { a.tracks = append(a.tracks, t) }
func (a *recordingAudio) FadeOut(int)               { a.fades++ }
func (a *recordingAudio) SetVolume(v int)           { a.volumes = append(a.volumes, v) }

type harness struct {
	s     *Session
	clock *fakeClock
	in    *scriptInput
	audio *recordingAudio
	frame int64 // clock advance per step
}

func newHarness(t *testing.T, seed int64) *harness {
	t.Helper()
	h := &harness{
		clock: &fakeClock{now: 1},
		in:    newScriptInput(),
		audio: &recordingAudio{},
		frame: testFrameMillis,
	}
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	h.s = NewSession(cfg, Deps{Input: h.in, Clock: h.clock, Audio: h.audio})
	return h
}

func (h *harness) step() bool {
	h.clock.now += h.frame
	return h.s.Step()
}

// launch presses fire on the title screen and steps until the first fight.
func (h *harness) launch(t *testing.T) {
	t.Helper()
	h.in.down[KeyFire] = true
	h.step()
	h.in.down[KeyFire] = false
	for range 1000 {
		if h.s.Phase() != PhaseLaunch {
			break
		}
		h.step()
	}
	if got := h.s.Phase(); got != PhaseRaider {
		t.Fatalf("phase after launch = %v, want %v", got, PhaseRaider)
	}
}

// skipDelay moves the clock past the current stage's start delay.
func (h *harness) skipDelay() {
	h.clock.now = h.s.stageStart + 2001
}

func TestNewSessionStartsOnTitle(t *testing.T) {
	h := newHarness(t, 1)
	s := h.s

	if s.Phase() != PhaseTitle {
		t.Errorf("phase = %v, want title", s.Phase())
	}
	if s.Stages() != [3]bool{} {
		t.Errorf("stages = %v, want none active", s.Stages())
	}
	if s.Volume() != DefaultVolume {
		t.Errorf("volume = %d, want %d", s.Volume(), DefaultVolume)
	}
	if len(h.audio.tracks) != 1 || h.audio.tracks[0] != TrackIdle {
		t.Errorf("tracks = %v, want [idle]", h.audio.tracks)
	}
	if s.ElapsedMillis() != 0 {
		t.Errorf("elapsed = %d before launch", s.ElapsedMillis())
	}
}

func TestTitleIgnoresMovement(t *testing.T) {
	h := newHarness(t, 1)
	before := h.s.Player()

	h.in.down[KeyLeft] = true
	h.in.down[KeyUp] = true
	for range 10 {
		h.step()
	}

	after := h.s.Player()
	if after.X != before.X || after.Y != before.Y {
		t.Errorf("ship moved on title: (%d,%d) -> (%d,%d)", before.X, before.Y, after.X, after.Y)
	}
}

func TestLaunch(t *testing.T) {
	h := newHarness(t, 1)
	h.launch(t)
	s := h.s
	ship := s.Metrics().Size(TexFighter)

	p := s.Player()
	if p.Y != ScreenHeight*3/5 {
		t.Errorf("Y = %d, want %d", p.Y, ScreenHeight*3/5)
	}
	if p.TurretY != p.Y+ship.H/2 {
		t.Errorf("TurretY = %d, want %d", p.TurretY, p.Y+ship.H/2)
	}
	if s.Stages() != [3]bool{true, false, false} {
		t.Errorf("stages = %v, want raider active", s.Stages())
	}
	if h.audio.fades != 1 {
		t.Errorf("fades = %d, want 1", h.audio.fades)
	}
	if last := h.audio.tracks[len(h.audio.tracks)-1]; last != TrackBattle {
		t.Errorf("last track = %v, want battle", last)
	}
	if tex, ok := s.Banner(); !ok || tex != TexLevel1 {
		t.Errorf("banner = %v %v, want level-1", tex, ok)
	}
}

func TestButtonStartsLaunch(t *testing.T) {
	h := newHarness(t, 1)
	h.in.events = []Event{{Kind: EventButtonDown, Button: 3}}
	h.step()
	if h.s.Phase() != PhaseLaunch {
		t.Errorf("phase = %v, want launch", h.s.Phase())
	}
}

func TestQuit(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
	}{
		{"escape", func(h *harness) { h.in.down[KeyEscape] = true }},
		{"quit event", func(h *harness) { h.in.events = []Event{{Kind: EventQuit}} }},
		{"back button", func(h *harness) { h.in.events = []Event{{Kind: EventButtonDown, Button: ButtonBack}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 1)
			tt.setup(h)
			if h.step() {
				t.Error("Step returned true after a quit request")
			}
			if !h.s.Quit() {
				t.Error("Quit() = false")
			}
			if h.s.Result().Outcome != OutcomeQuit {
				t.Errorf("outcome = %v, want quit", h.s.Result().Outcome)
			}
		})
	}
}

func TestMovementBounds(t *testing.T) {
	h := newHarness(t, 1)
	h.launch(t)
	h.frame = 1 // stay inside the raider's start delay
	ship := h.s.Metrics().Size(TexFighter)

	h.in.down[KeyUp] = true
	h.in.down[KeyLeft] = true
	for range 200 {
		h.step()
	}
	p := h.s.Player()
	if p.Y > ScreenHeight*3/5 || p.Y < ScreenHeight*3/5-p.Speed {
		t.Errorf("Y = %d, want within one step of %d", p.Y, ScreenHeight*3/5)
	}
	if p.X > 0 || p.X < -p.Speed {
		t.Errorf("X = %d, want within one step of 0", p.X)
	}

	h.in.down[KeyUp] = false
	h.in.down[KeyLeft] = false
	h.in.down[KeyDown] = true
	h.in.down[KeyRight] = true
	for range 200 {
		h.step()
	}
	p = h.s.Player()
	if p.Y < ScreenHeight-ship.H || p.Y > ScreenHeight-ship.H+p.Speed {
		t.Errorf("Y = %d, want within one step of %d", p.Y, ScreenHeight-ship.H)
	}
	if p.X < ScreenWidth-ship.W || p.X > ScreenWidth-ship.W+p.Speed {
		t.Errorf("X = %d, want within one step of %d", p.X, ScreenWidth-ship.W)
	}
}

func TestJoystickDiagonalFullSpeed(t *testing.T) {
	h := newHarness(t, 1)
	h.launch(t)
	h.s.player.Y = ScreenHeight * 4 / 5
	h.s.player.TurretY = h.s.player.Y + h.s.Metrics().Size(TexFighter).H/2
	before := h.s.Player()

	h.in.events = []Event{
		{Kind: EventAxisMotion, Axis: AxisX, Value: 1},
		{Kind: EventAxisMotion, Axis: AxisY, Value: -1},
	}
	h.step()

	after := h.s.Player()
	if dx := after.X - before.X; dx != before.Speed {
		t.Errorf("dx = %d, want %d", dx, before.Speed)
	}
	if dy := after.Y - before.Y; dy != -before.Speed {
		t.Errorf("dy = %d, want %d", dy, -before.Speed)
	}
	if after.TurretY-after.Y != before.TurretY-before.Y {
		t.Error("turrets did not follow the ship")
	}
}

func TestTurretBandInvariant(t *testing.T) {
	h := newHarness(t, 7)
	h.launch(t)
	m := h.s.Metrics()

	for i := range 600 {
		h.in.down[KeyFire] = i%90 < 60
		h.in.down[KeyUp] = i%50 < 20
		h.in.down[KeyDown] = i%70 > 40
		h.step()

		p := h.s.Player()
		ext, ret := p.TurretBand(m)
		if p.TurretY < ext || p.TurretY > ret {
			t.Fatalf("frame %d: TurretY %d outside [%d, %d]", i, p.TurretY, ext, ret)
		}
		if p.Health < MinHealth || p.Health > MaxHealth {
			t.Fatalf("frame %d: health %d outside [%d, %d]", i, p.Health, MinHealth, MaxHealth)
		}
	}
}

func TestFiringSpawnsBullets(t *testing.T) {
	h := newHarness(t, 1)
	h.launch(t)
	h.frame = 1 // stay inside the raider's start delay

	h.in.down[KeyFire] = true
	for range 80 {
		h.step()
	}
	if !h.s.Player().Shooting {
		t.Fatal("not shooting with fire held")
	}
	if h.s.Bullets().Len() == 0 {
		t.Error("no bullets after holding fire")
	}

	h.in.down[KeyFire] = false
	for range 100 {
		h.step()
	}
	if h.s.Player().Shooting {
		t.Error("still shooting after release")
	}
	if n := h.s.Bullets().Len(); n != 0 {
		t.Errorf("bullets = %d after release, want 0", n)
	}
}

func TestHealthClamp(t *testing.T) {
	h := newHarness(t, 1)
	h.launch(t)

	h.s.player.Health = 180
	h.step()
	if got := h.s.Player().Health; got != MaxHealth {
		t.Errorf("health = %d, want %d", got, MaxHealth)
	}
}

func TestLoseOnHealth(t *testing.T) {
	h := newHarness(t, 1)
	h.launch(t)

	h.s.player.Health = 1
	h.step()

	s := h.s
	if s.Phase() != PhaseLose {
		t.Fatalf("phase = %v, want lose", s.Phase())
	}
	if s.LoseReason() != "health" {
		t.Errorf("reason = %q, want health", s.LoseReason())
	}
	if s.Player().Health != MinHealth {
		t.Errorf("health = %d, want %d", s.Player().Health, MinHealth)
	}
	if !s.GameOver() || s.Won() {
		t.Errorf("GameOver=%v Won=%v, want true false", s.GameOver(), s.Won())
	}

	res := s.Result()
	if res.Outcome != OutcomeLose || res.StageReached != 1 || res.Score != 0 {
		t.Errorf("result = %+v", res)
	}

	vol := s.Volume()
	h.step()
	if s.Volume() != vol-1 {
		t.Errorf("volume = %d, want %d", s.Volume(), vol-1)
	}
}

func TestLoseOnTime(t *testing.T) {
	h := newHarness(t, 1)
	h.launch(t)

	h.clock.now = h.s.startTime + TimeLimitMillis - testFrameMillis
	h.s.Step()
	if h.s.Phase() == PhaseLose {
		t.Fatal("lost before the time limit")
	}

	h.step()
	if h.s.Phase() != PhaseLose {
		t.Fatalf("phase = %v, want lose", h.s.Phase())
	}
	if h.s.LoseReason() != "time" {
		t.Errorf("reason = %q, want time", h.s.LoseReason())
	}
}

func TestLoseVolumeDecaysToZero(t *testing.T) {
	h := newHarness(t, 1)
	h.launch(t)
	h.s.player.Health = 1
	for range MaxVolume + 10 {
		h.step()
	}
	if h.s.Volume() != 0 {
		t.Errorf("volume = %d, want 0", h.s.Volume())
	}
	if last := h.audio.volumes[len(h.audio.volumes)-1]; last != 0 {
		t.Errorf("last volume pushed = %d, want 0", last)
	}
}

func TestVolumeKeys(t *testing.T) {
	h := newHarness(t, 1)
	h.launch(t)
	h.frame = 1 // stay inside the raider's start delay

	h.in.down[KeyVolumeUp] = true
	for range 200 {
		h.step()
	}
	if h.s.Volume() != MaxVolume {
		t.Errorf("volume = %d, want %d", h.s.Volume(), MaxVolume)
	}

	h.in.down[KeyVolumeUp] = false
	h.in.down[KeyVolumeDown] = true
	for range 200 {
		h.step()
	}
	if h.s.Volume() != 0 {
		t.Errorf("volume = %d, want 0", h.s.Volume())
	}
}

func TestStageTransition(t *testing.T) {
	h := newHarness(t, 3)
	h.launch(t)
	s := h.s
	m := s.Metrics()

	h.step()
	if y := s.Enemy(Raider).Y; y != -m.Size(TexRaider).H {
		t.Fatalf("raider moved during the start delay: Y = %d", y)
	}

	h.skipDelay()
	s.enemies[Raider].Health = 0
	s.Step()

	if s.Phase() != PhaseStrikerIntro {
		t.Fatalf("phase = %v, want striker-intro", s.Phase())
	}
	if y := s.Enemy(Raider).Y; y != -m.Size(TexRaider).H {
		t.Errorf("raider Y = %d, want %d", y, -m.Size(TexRaider).H)
	}
	if s.Stages() != [3]bool{false, true, false} {
		t.Errorf("stages = %v", s.Stages())
	}
	if !s.Pickup(SpeedPickup).OnScreen {
		t.Error("speed pickup not armed")
	}
	if _, ok := s.AlienShot(); ok {
		t.Error("alien shot still active after defeat")
	}

	// Keep the ship under the pickup until it is collected.
	for range 1000 {
		if s.Phase() != PhaseStrikerIntro {
			break
		}
		s.player.X = s.pickups[SpeedPickup].X - 8
		h.step()
	}
	if s.Phase() != PhaseStriker {
		t.Fatalf("phase = %v, want striker", s.Phase())
	}
	p := s.Player()
	if p.Speed != 9 || p.BulletSpeed != 15 || p.CoolSpeed != 2 {
		t.Errorf("boost not applied: speed %d bullet %d cool %d", p.Speed, p.BulletSpeed, p.CoolSpeed)
	}
	if s.Pickup(SpeedPickup).OnScreen {
		t.Error("speed pickup still on screen")
	}
	if tex, ok := s.Banner(); !ok || tex != TexLevel2 {
		t.Errorf("banner = %v %v, want level-2", tex, ok)
	}
}

func TestOverheatedDefeatWaits(t *testing.T) {
	tests := []struct {
		phase Phase
		kind  EnemyKind
		next  Phase
	}{
		{PhaseRaider, Raider, PhaseStrikerIntro},
		{PhaseStriker, Striker, PhaseThrasherIntro},
		{PhaseThrasher, Thrasher, PhaseWin},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			h := newHarness(t, 3)
			h.launch(t)
			s := h.s

			s.setPhase(tt.phase)
			s.stageStart = h.clock.now
			h.skipDelay()
			s.enemies[tt.kind].Health = 0
			s.heat.State = Overheated
			s.heat.Red, s.heat.Blue = 250, 5
			s.Step()

			if s.Phase() != tt.phase {
				t.Fatalf("phase = %v, want %v while overheated", s.Phase(), tt.phase)
			}
			for range 5000 {
				if s.Phase() != tt.phase {
					break
				}
				h.step()
			}
			if s.Phase() != tt.next {
				t.Fatalf("phase = %v, want %v once cooled", s.Phase(), tt.next)
			}
		})
	}
}

func TestWinPath(t *testing.T) {
	h := newHarness(t, 5)
	h.launch(t)
	s := h.s
	ship := s.Metrics().Size(TexFighter)

	s.setPhase(PhaseThrasher)
	s.stageStart = h.clock.now
	s.player.Health = 50
	h.skipDelay()
	s.enemies[Thrasher].Health = 0
	s.Step()

	if s.Phase() != PhaseWin {
		t.Fatalf("phase = %v, want win", s.Phase())
	}
	if got := s.Player().Health; got != 60 {
		t.Errorf("health = %d, want 60 after the kill bonus", got)
	}
	if s.Stages() != [3]bool{} {
		t.Errorf("stages = %v, want none", s.Stages())
	}

	var want int
	for range 2000 {
		if s.Settled() {
			break
		}
		h.step()
		want = scoreBaseSecond - int(s.ElapsedMillis()/1000)
	}
	if !s.Settled() {
		t.Fatal("win animation never finished")
	}
	if s.Player().Y > -ship.H {
		t.Errorf("ship Y = %d, want off screen", s.Player().Y)
	}
	if s.Player().X+ship.W/2 != ScreenWidth/2 {
		t.Errorf("ship not centered: X = %d", s.Player().X)
	}
	if s.Score() != want {
		t.Errorf("score = %d, want %d", s.Score(), want)
	}
	if !s.WinnerVisible() {
		t.Error("winner banner not visible")
	}

	first := s.Score()
	h.clock.now += 20_000
	for range 10 {
		h.step()
	}
	if s.Score() != first {
		t.Errorf("score rewritten: %d -> %d", first, s.Score())
	}

	res := s.Result()
	if res.Outcome != OutcomeWin || res.StageReached != 3 || res.Score != first {
		t.Errorf("result = %+v", res)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		h := newHarness(t, 12345)
		h.launch(t)
		for i := range 3000 {
			h.in.down[KeyFire] = i%120 < 90
			h.in.down[KeyLeft] = i%40 < 10
			h.in.down[KeyRight] = i%40 > 25
			h.step()
		}
		return h.s.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("hashes differ: %d vs %d", a.Hash(), b.Hash())
	}
	if a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestResetRestoresTitle(t *testing.T) {
	h := newHarness(t, 9)
	h.launch(t)
	h.in.down[KeyFire] = true
	for range 100 {
		h.step()
	}
	h.s.SetVolume(20)

	h.s.Reset()
	s := h.s
	if s.Phase() != PhaseTitle {
		t.Errorf("phase = %v, want title", s.Phase())
	}
	if s.Bullets().Len() != 0 {
		t.Errorf("bullets = %d, want 0", s.Bullets().Len())
	}
	if s.Frames() != 0 {
		t.Errorf("frames = %d, want 0", s.Frames())
	}
	if s.Volume() != 20 {
		t.Errorf("volume = %d, want 20", s.Volume())
	}
	if s.Enemy(Thrasher).Health != s.Enemy(Thrasher).MaxHealth {
		t.Error("enemy health not restored")
	}
}

func TestAxisValue(t *testing.T) {
	tests := []struct {
		raw, dead, want int
	}{
		{0, 8000, 0},
		{8000, 8000, 0},
		{8001, 8000, 1},
		{-8001, 8000, -1},
		{-32768, 8000, -1},
	}
	for _, tt := range tests {
		if got := AxisValue(tt.raw, tt.dead); got != tt.want {
			t.Errorf("AxisValue(%d, %d) = %d, want %d", tt.raw, tt.dead, got, tt.want)
		}
	}
}
