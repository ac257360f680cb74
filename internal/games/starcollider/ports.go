package starcollider

import "github.com/vovakirdan/star-collider/internal/core"

// Texture identifies one drawable asset. Frontends own the actual pixels;
// the simulation only knows IDs and sizes (see Metrics).
type Texture int

const (
	TexBackground Texture = iota
	TexFighter
	TexTurret
	TexBullet
	TexAlienBullet
	TexHealth
	TexAmmo
	TexRaider
	TexRaiderDam1
	TexRaiderDam2
	TexRaiderDam3
	TexStriker
	TexStrikerDam1
	TexStrikerDam2
	TexStrikerDam3
	TexThrasher
	TexThrasherDam1
	TexThrasherDam2
	TexThrasherDam3
	TexWinner
	TexSpeedPickup
	TexDamagePickup
	TexTitleStar
	TexTitleCollider
	TexPressStart
	TexLevel1
	TexLevel2
	TexLevel3
	TexGame
	TexOver

	textureCount
)

var textureNames = [textureCount]string{
	"background", "fighter", "turret", "bullet", "alien-bullet", "health", "ammo",
	"raider", "raider-dam1", "raider-dam2", "raider-dam3",
	"striker", "striker-dam1", "striker-dam2", "striker-dam3",
	"thrasher", "thrasher-dam1", "thrasher-dam2", "thrasher-dam3",
	"winner", "speed-pickup", "damage-pickup",
	"title-star", "title-collider", "press-start", "level-1", "level-2", "level-3", "game", "over",
}

// String returns the asset name.
func (t Texture) String() string {
	if t < 0 || t >= textureCount {
		return "unknown"
	}
	return textureNames[t]
}

// Textures returns every texture ID, in declaration order.
func Textures() []Texture {
	out := make([]Texture, textureCount)
	for i := range out {
		out[i] = Texture(i)
	}
	return out
}

// Label returns the text a rendered-text texture shows, or "" for sprites.
func (t Texture) Label() string {
	switch t {
	case TexTitleStar:
		return "Star"
	case TexTitleCollider:
		return "Collider"
	case TexPressStart:
		return "Press space to start"
	case TexLevel1:
		return "level 1"
	case TexLevel2:
		return "level 2"
	case TexLevel3:
		return "level 3"
	case TexGame:
		return "Game"
	case TexOver:
		return "Over"
	case TexWinner:
		return "WINNER"
	default:
		return ""
	}
}

// Flip mirrors a texture when drawn.
type Flip uint8

const (
	FlipNone Flip = iota
	FlipHorizontal
)

// DrawOptions are the optional arguments of Renderer.Render.
type DrawOptions struct {
	Clip  *core.Rect // source sub-rectangle, nil for the whole texture
	Angle float64    // degrees, clockwise
	Flip  Flip
}

// Renderer draws textures onto a surface. Color and alpha mods stick to
// the texture until changed, like SDL texture mods.
type Renderer interface {
	Render(tex Texture, x, y int, opts *DrawOptions)
	SetColorMod(tex Texture, r, g, b uint8)
	SetAlphaMod(tex Texture, a uint8)
	Clear()
	Present()
}

// Key is a logical key the simulation polls. Frontends map physical keys
// onto these (WASD and arrows both map to the direction keys).
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	KeyEscape
	KeyVolumeUp
	KeyVolumeDown

	keyCount
)

// EventKind enumerates discrete input events.
type EventKind int

const (
	EventQuit EventKind = iota
	EventButtonDown
	EventButtonUp
	EventAxisMotion
)

// Axis is a joystick axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Joystick buttons the game reacts to.
const (
	ButtonA    = 0 // fire
	ButtonBack = 1 // quit
)

// Event is one discrete input event. For EventAxisMotion, Value is already
// thresholded against the dead zone to -1, 0 or +1.
type Event struct {
	Kind   EventKind
	Button int
	Axis   Axis
	Value  int
}

// Input exposes held keys and drains the pending event queue. PollEvents
// must never block.
type Input interface {
	IsKeyDown(k Key) bool
	PollEvents() []Event
}

// Track is a music track.
type Track int

const (
	TrackIdle Track = iota
	TrackBattle
)

func (t Track) String() string {
	if t == TrackBattle {
		return "battle"
	}
	return "idle"
}

// MaxVolume is the top of the music volume range.
const MaxVolume = 128

// Audio controls music. Volume is in [0, MaxVolume].
type Audio interface {
	PlayMusic(t Track, loop bool)
	FadeOut(ms int)
	SetVolume(v int)
}

// Clock is a monotonic millisecond tick counter.
type Clock interface {
	NowMillis() int64
}

// NopAudio discards every call. Used when no audio device is available.
type NopAudio struct{}

func (NopAudio) PlayMusic(Track, bool) {}
func (NopAudio) FadeOut(int)           {}
func (NopAudio) SetVolume(int)         {}
