package tui

import (
	"image"
	"image/color"

	"github.com/vovakirdan/star-collider/internal/core"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
	"github.com/vovakirdan/star-collider/internal/platform/art"
)

// CellRenderer implements starcollider.Renderer on a core.Screen. Every
// screen pixel covers a block of game pixels, so sprites are painted once
// at the reduced resolution and then blitted.
type CellRenderer struct {
	screen  *core.Screen
	metrics starcollider.Metrics
	pxW     int // game pixels per screen pixel, horizontally
	pxH     int // and vertically (half a cell)

	sprites map[starcollider.Texture]*image.RGBA
	color   map[starcollider.Texture]core.Color
	alpha   map[starcollider.Texture]uint8

	presented int
}

// NewCellRenderer sizes screen for the playfield and paints the sprites.
// cellW and cellH are game pixels per terminal column and row.
func NewCellRenderer(screen *core.Screen, m starcollider.Metrics, cellW, cellH int) *CellRenderer {
	cellW, cellH = max(cellW, 1), max(cellH, 2)
	r := &CellRenderer{
		screen:  screen,
		metrics: m,
		pxW:     cellW,
		pxH:     cellH / 2,
		sprites: make(map[starcollider.Texture]*image.RGBA),
		color:   make(map[starcollider.Texture]core.Color),
		alpha:   make(map[starcollider.Texture]uint8),
	}
	screen.Resize(starcollider.ScreenWidth/cellW, starcollider.ScreenHeight/cellH)

	for _, t := range starcollider.Textures() {
		if art.IsText(t) {
			continue
		}
		size := m.Size(t)
		w := max(ceilDiv(size.W, r.pxW), 1)
		h := max(ceilDiv(size.H, r.pxH), 1)
		r.sprites[t] = art.Paint(t, size, w, h)
	}
	return r
}

// Screen returns the target screen.
func (r *CellRenderer) Screen() *core.Screen { return r.screen }

// Presented returns how many frames have been presented.
func (r *CellRenderer) Presented() int { return r.presented }

// Clear implements starcollider.Renderer.
func (r *CellRenderer) Clear() {
	r.screen.Clear(core.ColorBlack)
}

// Present implements starcollider.Renderer. The screen is read by View, so
// there is nothing to flush.
func (r *CellRenderer) Present() {
	r.presented++
}

// SetColorMod implements starcollider.Renderer.
func (r *CellRenderer) SetColorMod(t starcollider.Texture, red, green, blue uint8) {
	r.color[t] = core.RGB(red, green, blue)
}

// SetAlphaMod implements starcollider.Renderer.
func (r *CellRenderer) SetAlphaMod(t starcollider.Texture, a uint8) {
	r.alpha[t] = a
}

func (r *CellRenderer) mods(t starcollider.Texture) (core.Color, uint8) {
	c, ok := r.color[t]
	if !ok {
		c = core.ColorWhite
	}
	a, ok := r.alpha[t]
	if !ok {
		a = 255
	}
	return c, a
}

// Render implements starcollider.Renderer. Angle is ignored: nothing the
// game draws is rotated by more than the cell grid can show.
func (r *CellRenderer) Render(t starcollider.Texture, x, y int, opts *starcollider.DrawOptions) {
	if art.IsText(t) {
		r.renderLabel(t, x, y)
		return
	}
	img := r.sprites[t]
	if img == nil {
		return
	}
	mod, alpha := r.mods(t)
	if alpha == 0 {
		return
	}

	src := img.Bounds()
	if opts != nil && opts.Clip != nil {
		c := opts.Clip
		src = image.Rect(c.X/r.pxW, c.Y/r.pxH, ceilDiv(c.X+c.W, r.pxW), ceilDiv(c.Y+c.H, r.pxH)).Intersect(src)
	}
	flip := opts != nil && opts.Flip == starcollider.FlipHorizontal

	dx, dy := floorDiv(x, r.pxW), floorDiv(y, r.pxH)
	for sy := src.Min.Y; sy < src.Max.Y; sy++ {
		py := dy + sy - src.Min.Y
		if py < 0 || py >= r.screen.Height() {
			continue
		}
		for sx := src.Min.X; sx < src.Max.X; sx++ {
			px := dx + sx - src.Min.X
			if px < 0 || px >= r.screen.Width() {
				continue
			}
			from := sx
			if flip {
				from = src.Max.X - 1 - (sx - src.Min.X)
			}
			c := img.RGBAAt(from, sy)
			if c.A == 0 {
				continue
			}
			a := uint8(uint16(c.A) * uint16(alpha) / 255)
			r.screen.BlendPixel(px, py, fromRGBA(c).Modulate(mod), a)
		}
	}
}

// renderLabel prints a text texture centered in the box it would occupy.
// Faded text blends toward whatever is underneath.
func (r *CellRenderer) renderLabel(t starcollider.Texture, x, y int) {
	mod, alpha := r.mods(t)
	if alpha < 16 {
		return
	}
	label := []rune(t.Label())
	size := r.metrics.Size(t)
	cellW, cellH := r.pxW, r.pxH*2

	row := floorDiv(y+size.H/2, cellH)
	col := floorDiv(x+size.W/2, cellW) - len(label)/2
	fg := fromRGBA(art.TextColor(t)).Modulate(mod)
	for i, ch := range label {
		top, bottom, _ := r.screen.Cell(col+i, row)
		under := top.Blend(bottom, 128)
		r.screen.SetGlyph(col+i, row, ch, under.Blend(fg, alpha))
	}
}

func fromRGBA(c color.RGBA) core.Color {
	return core.RGB(c.R, c.G, c.B)
}

func ceilDiv(a, b int) int {
	return floorDiv(a+b-1, b)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
