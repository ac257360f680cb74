package starcollider

// Background scroll speeds.
const (
	BackgroundSpeed     = 10
	BackgroundSlowSpeed = 6 // while the ship flies off after a win
	reseatOverlap       = 100
)

// Scroll advances one background tile. While the tile's top edge plus speed
// is still above the bottom of the screen it just moves down; otherwise it
// wraps to sit directly above the other tile.
func Scroll(offset, other, speed, screenH, bgH int) int {
	if offset+speed < screenH {
		return offset + speed
	}
	return other - bgH + speed
}

// Background is two vertically tiled copies of a tall texture scrolling
// down to fake forward motion.
type Background struct {
	Offsets [2]int
	Speed   int
	height  int
	screenH int
}

// NewBackground places both tiles above the screen so the first one's
// bottom edge lines up with the bottom of the playfield.
func NewBackground(screenH, bgH int) Background {
	return Background{
		Offsets: [2]int{-bgH + screenH, -2*bgH + screenH},
		Speed:   BackgroundSpeed,
		height:  bgH,
		screenH: screenH,
	}
}

// Advance scrolls both tiles by one frame.
func (b *Background) Advance() {
	b.Offsets[0] = Scroll(b.Offsets[0], b.Offsets[1], b.Speed, b.screenH, b.height)
	b.Offsets[1] = Scroll(b.Offsets[1], b.Offsets[0], b.Speed, b.screenH, b.height)
}

// Reseat pulls the second tile down to overlap the first by a small margin.
// Applied once when the launch ends.
func (b *Background) Reseat() {
	b.Offsets[1] = b.Offsets[0] - (b.height - reseatOverlap)
}
