package headless

import "github.com/vovakirdan/star-collider/internal/games/starcollider"

// dodgeMargin widens the ship when deciding whether the alien shot will hit.
const dodgeMargin = 12

// Autopilot is a starcollider.Input that plays the game well enough to
// exercise every stage: it starts the run, lines up under the boss, holds
// fire, sidesteps the alien shot and chases pickups.
type Autopilot struct {
	session *starcollider.Session
	keys    [8]bool
}

// NewAutopilot creates an autopilot. Attach it to the session it plays
// before the first frame.
func NewAutopilot() *Autopilot { return &Autopilot{} }

// Attach sets the session the autopilot reads.
func (a *Autopilot) Attach(s *starcollider.Session) { a.session = s }

// Think chooses the keys for the next frame.
func (a *Autopilot) Think() {
	a.keys = [8]bool{}
	s := a.session
	if s == nil {
		return
	}

	phase := s.Phase()
	switch {
	case phase == starcollider.PhaseTitle:
		a.keys[starcollider.KeyFire] = true
		return
	case !phase.Combat():
		return
	}

	p := s.Player()
	ship := s.Metrics().Size(starcollider.TexFighter)
	target, fire := a.target(phase, ship)

	if shot, live := s.AlienShot(); live && shot.Y < p.Y+ship.H &&
		shot.X > p.X-dodgeMargin && shot.X < p.X+ship.W+dodgeMargin {
		// Step out of the way, toward the side with more room.
		if p.X+ship.W/2 > starcollider.ScreenWidth/2 {
			target = shot.X - ship.W - dodgeMargin*2
		} else {
			target = shot.X + dodgeMargin*2
		}
	}

	switch {
	case target < p.X-p.Speed:
		a.keys[starcollider.KeyLeft] = true
	case target > p.X+p.Speed:
		a.keys[starcollider.KeyRight] = true
	}
	a.keys[starcollider.KeyFire] = fire
}

// target returns where the ship's left edge should go and whether to
// shoot on the way.
func (a *Autopilot) target(phase starcollider.Phase, ship starcollider.Size) (int, bool) {
	s := a.session
	switch phase {
	case starcollider.PhaseStrikerIntro, starcollider.PhaseThrasherIntro:
		kind := starcollider.SpeedPickup
		if phase == starcollider.PhaseThrasherIntro {
			kind = starcollider.DamagePickup
		}
		pk := s.Pickup(kind)
		if !pk.OnScreen {
			return s.Player().X, false
		}
		w := s.Metrics().Size(kind.Texture()).W
		return pk.X + w/2 - ship.W/2, false
	}

	kind := starcollider.EnemyKind(phase.Stage())
	e := s.Enemy(kind)
	w := e.Size(s.Metrics()).W
	return e.X + w/2 - ship.W/2, true
}

// IsKeyDown implements starcollider.Input.
func (a *Autopilot) IsKeyDown(k starcollider.Key) bool {
	if k < 0 || int(k) >= len(a.keys) {
		return false
	}
	return a.keys[k]
}

// PollEvents implements starcollider.Input. The autopilot only uses keys.
func (a *Autopilot) PollEvents() []starcollider.Event { return nil }
