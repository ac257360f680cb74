package starcollider

import "github.com/vovakirdan/star-collider/internal/core"

const strikerHopCooldown = 300 // ms between Striker vertical hops

// Shot is the single alien bullet shared by all three bosses.
type Shot struct {
	X, Y int
}

// stepEncounter runs one frame of a boss fight once its start delay has
// passed: approach, aim, fire, resolve both sides' hits, check defeat.
func (s *Session) stepEncounter(enc *encounter) {
	e := &s.enemies[enc.kind]
	p := &s.player
	size := e.Size(s.metrics)
	ship := s.metrics.Size(TexFighter)

	// Drop in from above, then track the player while not firing.
	if e.Y < 0 {
		e.Y += e.Speed
	}
	if e.X <= p.X && !e.Shooting {
		e.X += e.Speed
	}
	if e.X >= p.X && !e.Shooting {
		e.X -= e.Speed
	}

	if enc.jitter {
		s.jitter(e, size)
	}

	center := e.X + size.W/2
	if !e.Shooting && center >= p.X && center <= p.X+ship.W/2 {
		e.Shooting = true
		s.shot = Shot{X: center, Y: e.Y + size.H*2/3}
	}
	if e.Shooting {
		s.shot.Y += p.BulletSpeed * e.FireRate
	}

	s.resolveShot(e, enc)
	s.resolvePlayerBullets(e, size)

	if e.Health <= 0 {
		e.Park(s.metrics)
		e.Shooting = false
		s.idleShot()
		if s.heat.Cooled() {
			s.logDebug("boss defeated", "kind", e.Kind)
			s.completeStage(enc)
		}
	}
}

// jitter hops the Striker up or down by a third of its speed, at most once
// per cooldown, staying in the top half of the screen.
func (s *Session) jitter(e *Enemy, size Size) {
	if e.TimeSinceMove == 0 {
		e.TimeSinceMove = s.now
	}
	roll := s.rng.Intn(10)
	ready := e.TimeSinceMove+strikerHopCooldown < s.now
	switch {
	case roll > 6 && ready && e.Y+size.H+e.Speed < ScreenHeight/2:
		e.Y += e.Speed / 3
		e.TimeSinceMove = s.now
	case roll < 1 && ready && e.Y+e.Speed > 0:
		e.Y -= e.Speed / 3
		e.TimeSinceMove = s.now
	}
}

// resolveShot idles the alien bullet once it leaves the encounter's range
// and applies damage when it strikes the ship.
func (s *Session) resolveShot(e *Enemy, enc *encounter) {
	p := &s.player
	ship := p.Box(s.metrics)
	bulletH := s.metrics.Size(TexBullet).H
	limit := ScreenHeight*enc.rangeNum/enc.rangeDen + bulletH

	if s.shot.Y > limit {
		e.Shooting = false
		s.idleShot()
		return
	}

	// The Striker's hit band reaches down to the end of the shot's range.
	band := ship
	if enc.openBelow {
		band.H = limit + 1 - ship.Y
	}
	if !band.StrictlyContains(s.shot.X, s.shot.Y) {
		return
	}

	p.Health -= e.Damage
	if enc.resetOnHit {
		e.Shooting = false
		s.idleShot()
		return
	}
	// Push the bullet below the ship; it keeps falling until out of range.
	s.shot.Y = ScreenHeight
}

// resolvePlayerBullets removes every player bullet inside the boss's
// column and above its bottom edge, damaging the boss once per bullet.
// Each hit has a one in ten chance to heal the player by one.
func (s *Session) resolvePlayerBullets(e *Enemy, size Size) {
	box := core.NewRect(e.X, e.Y, size.W, size.H)
	hits := s.pool.RemoveWhere(func(b Bullet) bool {
		return b.Y < box.Bottom() && b.X > box.X && b.X < box.Right()
	})
	for range hits {
		e.Health -= s.player.Damage
		if s.rng.Intn(10) == 0 {
			s.player.Health++
		}
	}
}

// idleShot parks the alien bullet above the screen.
func (s *Session) idleShot() {
	s.shot.Y = -s.metrics.Size(TexBullet).H
}

// AlienShot returns the alien bullet and whether any boss is firing it.
func (s *Session) AlienShot() (Shot, bool) {
	for i := range s.enemies {
		if s.enemies[i].Shooting {
			return s.shot, true
		}
	}
	return s.shot, false
}
