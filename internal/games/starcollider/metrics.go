package starcollider

// Playfield size in pixels.
const (
	ScreenWidth  = 480
	ScreenHeight = 640
)

// Size is a texture's width and height in pixels.
type Size struct {
	W, H int
}

// Metrics holds the pixel size of every texture. The simulation positions
// and collides actors using these sizes, so every frontend must draw its
// art at exactly these dimensions.
type Metrics struct {
	sizes [textureCount]Size
}

// DefaultMetrics returns the sizes the bundled placeholder art is drawn at.
func DefaultMetrics() Metrics {
	var m Metrics
	set := func(t Texture, w, h int) { m.sizes[t] = Size{W: w, H: h} }

	set(TexBackground, ScreenWidth, 6400)
	set(TexFighter, 64, 64)
	set(TexTurret, 8, 24)
	set(TexBullet, 6, 14)
	set(TexAlienBullet, 10, 20)
	set(TexHealth, 20, 100)
	set(TexAmmo, 24, 48)
	for _, t := range []Texture{TexRaider, TexRaiderDam1, TexRaiderDam2, TexRaiderDam3} {
		set(t, 96, 72)
	}
	for _, t := range []Texture{TexStriker, TexStrikerDam1, TexStrikerDam2, TexStrikerDam3} {
		set(t, 80, 64)
	}
	for _, t := range []Texture{TexThrasher, TexThrasherDam1, TexThrasherDam2, TexThrasherDam3} {
		set(t, 160, 112)
	}
	set(TexWinner, ScreenWidth, 120)
	set(TexSpeedPickup, 32, 32)
	set(TexDamagePickup, 32, 32)

	// Rendered text: 72pt title font, 24pt for the prompt.
	set(TexTitleStar, 150, 80)
	set(TexTitleCollider, 300, 80)
	set(TexPressStart, 260, 28)
	set(TexLevel1, 220, 80)
	set(TexLevel2, 220, 80)
	set(TexLevel3, 220, 80)
	set(TexGame, 180, 80)
	set(TexOver, 160, 80)
	return m
}

// Size returns the size of t.
func (m Metrics) Size(t Texture) Size {
	if t < 0 || t >= textureCount {
		return Size{}
	}
	return m.sizes[t]
}

// SetSize overrides the size of t, for frontends that measure real assets.
func (m *Metrics) SetSize(t Texture, s Size) {
	if t < 0 || t >= textureCount {
		return
	}
	m.sizes[t] = s
}
