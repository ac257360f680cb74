package starcollider

import (
	"fmt"

	"github.com/vovakirdan/star-collider/internal/core"
)

// Player health bounds, enforced every frame.
const (
	MinHealth = 1
	MaxHealth = 100
)

// Player is the fighter ship and its two retractable turrets.
type Player struct {
	Health    int
	MaxHealth int
	X, Y      int
	TurretY   int // top of both turrets, between Y+h/3 (out) and Y+h/2 (in)

	Speed       int
	BulletSpeed int
	Damage      int
	TurretSpeed int
	HeatSpeed   int
	CoolSpeed   int

	Shooting bool
}

// NewPlayer places the ship centered and just below the playfield, ready
// for the launch.
func NewPlayer(m Metrics) Player {
	ship := m.Size(TexFighter)
	p := Player{
		Health:      MaxHealth,
		MaxHealth:   MaxHealth,
		X:           ScreenWidth/2 - ship.W/2,
		Y:           ScreenHeight,
		Speed:       5,
		BulletSpeed: 10,
		Damage:      10,
		TurretSpeed: 1,
		HeatSpeed:   2,
		CoolSpeed:   1,
	}
	p.TurretY = p.Y + ship.H/2
	return p
}

// Box returns the ship's bounding box.
func (p *Player) Box(m Metrics) core.Rect {
	ship := m.Size(TexFighter)
	return core.NewRect(p.X, p.Y, ship.W, ship.H)
}

// TurretBand returns the fully extended and fully retracted turret tops.
func (p *Player) TurretBand(m Metrics) (extended, retracted int) {
	h := m.Size(TexFighter).H
	return p.Y + h/3, p.Y + h/2
}

// ClampTurret forces TurretY into the turret band.
func (p *Player) ClampTurret(m Metrics) {
	lo, hi := p.TurretBand(m)
	p.TurretY = core.Clamp(p.TurretY, lo, hi)
}

// EnemyKind is one of the three bosses.
type EnemyKind uint8

const (
	Raider EnemyKind = iota
	Striker
	Thrasher
)

func (k EnemyKind) String() string {
	switch k {
	case Raider:
		return "raider"
	case Striker:
		return "striker"
	case Thrasher:
		return "thrasher"
	default:
		return fmt.Sprintf("enemy(%d)", k)
	}
}

// tierTextures lists each boss's sprites from intact to most damaged.
var tierTextures = [3][DamageTiers]Texture{
	Raider:   {TexRaider, TexRaiderDam1, TexRaiderDam2, TexRaiderDam3},
	Striker:  {TexStriker, TexStrikerDam1, TexStrikerDam2, TexStrikerDam3},
	Thrasher: {TexThrasher, TexThrasherDam1, TexThrasherDam2, TexThrasherDam3},
}

// DamageTiers is the number of sprites per boss, intact first.
const DamageTiers = 4

// TierTexture returns the sprite for a damage tier in [0, DamageTiers).
func (k EnemyKind) TierTexture(tier int) Texture {
	return tierTextures[k][tier]
}

// Texture returns the intact sprite for the kind.
func (k EnemyKind) Texture() Texture {
	return tierTextures[k][0]
}

// Enemy is one boss. Bosses are never destroyed: defeat parks them above
// the screen and their stage ends.
type Enemy struct {
	Kind      EnemyKind
	Health    int
	MaxHealth int
	X, Y      int
	Speed     int
	FireRate  int // alien shot speed, in multiples of the player bullet speed
	Damage    int
	Shooting  bool

	// TimeSinceMove is when the Striker last jittered vertically, in clock
	// millis. Zero means not armed yet.
	TimeSinceMove int64
}

type enemyBase struct {
	health int
	speed  int
	rate   int
	damage int
}

var enemyBases = [3]enemyBase{
	Raider:   {health: 1000, speed: 5, rate: 1, damage: 20},
	Striker:  {health: 750, speed: 7, rate: 1, damage: 15},
	Thrasher: {health: 2000, speed: 2, rate: 2, damage: 40},
}

// BossHealth scales a base health by difficulty: base / (20 / difficulty),
// in integer arithmetic. Difficulty is clamped to [1, 20].
func BossHealth(base, difficulty int) int {
	difficulty = core.Clamp(difficulty, 1, 20)
	return base / (20 / difficulty)
}

// NewEnemy builds a boss centered above the playfield.
func NewEnemy(kind EnemyKind, difficulty int, m Metrics) Enemy {
	base := enemyBases[kind]
	size := m.Size(kind.Texture())
	hp := BossHealth(base.health, difficulty)
	return Enemy{
		Kind:      kind,
		Health:    hp,
		MaxHealth: hp,
		X:         ScreenWidth/2 - size.W/2,
		Y:         -size.H,
		Speed:     base.speed,
		FireRate:  base.rate,
		Damage:    base.damage,
	}
}

// Size returns the boss sprite size.
func (e *Enemy) Size(m Metrics) Size {
	return m.Size(e.Kind.Texture())
}

// Tier returns the damage tier: 0 above 75% health, then 1, 2 and 3 below
// 25%.
func (e *Enemy) Tier() int {
	switch {
	case e.Health > e.MaxHealth*3/4:
		return 0
	case e.Health > e.MaxHealth/2:
		return 1
	case e.Health > e.MaxHealth/4:
		return 2
	default:
		return 3
	}
}

// Texture returns the sprite for the boss's current damage tier.
func (e *Enemy) Texture() Texture {
	return tierTextures[e.Kind][e.Tier()]
}

// Park moves the boss just above the screen.
func (e *Enemy) Park(m Metrics) {
	e.Y = -e.Size(m).H
}
