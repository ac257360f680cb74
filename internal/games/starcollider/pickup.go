package starcollider

import "github.com/vovakirdan/star-collider/internal/core"

// PickupKind is one of the two intermission power-ups.
type PickupKind uint8

const (
	SpeedPickup PickupKind = iota
	DamagePickup
)

func (k PickupKind) String() string {
	if k == DamagePickup {
		return "damage"
	}
	return "speed"
}

const (
	pickupFallSpeed = 5
	pickupDrift     = 5
)

// Pickup is a power-up dropped between boss fights.
type Pickup struct {
	Kind     PickupKind
	X, Y     int
	OnScreen bool
}

// NewPickup builds an inert pickup centered above the playfield.
func NewPickup(kind PickupKind, m Metrics) Pickup {
	size := m.Size(kind.Texture())
	return Pickup{
		Kind: kind,
		X:    ScreenWidth/2 - size.W/2,
		Y:    -size.H,
	}
}

// Texture returns the sprite for the pickup kind.
func (k PickupKind) Texture() Texture {
	if k == DamagePickup {
		return TexDamagePickup
	}
	return TexSpeedPickup
}

// Step drops the pickup toward the player's band and random-walks it
// sideways. roll must be uniform in [0, 20).
func (p *Pickup) Step(roll int) {
	if p.Y < ScreenHeight*4/5 {
		p.Y += pickupFallSpeed
	}
	switch {
	case roll > 16:
		p.X -= pickupDrift
	case roll < 4:
		p.X += pickupDrift
	}
}

// Touches reports whether the pickup's bottom has reached the ship and
// either its right half or its left edge lies over the ship.
func (p *Pickup) Touches(ship core.Rect, m Metrics) bool {
	size := m.Size(p.Kind.Texture())
	if p.Y+size.H <= ship.Y {
		return false
	}
	if p.X+size.W > ship.X && p.X+size.W/2 < ship.Right() {
		return true
	}
	return p.X > ship.X && p.X < ship.Right()
}

// Apply grants the pickup's boost.
func (p *Pickup) Apply(pl *Player) {
	switch p.Kind {
	case SpeedPickup:
		pl.Speed += 4
		pl.BulletSpeed += 5
		pl.CoolSpeed++
		pl.Health += 30
	case DamagePickup:
		pl.Health += 40
		pl.Damage += 30
	}
}

// Retire parks the pickup above the screen and turns it off.
func (p *Pickup) Retire(m Metrics) {
	p.Y = -m.Size(p.Kind.Texture()).H
	p.OnScreen = false
}

// Lost reports whether the random walk has carried the pickup entirely
// off the left or right edge.
func (p *Pickup) Lost(m Metrics) bool {
	size := m.Size(p.Kind.Texture())
	return p.X+size.W <= 0 || p.X >= ScreenWidth
}
