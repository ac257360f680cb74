// Package window runs Star Collider in a desktop window with Ebitengine.
// Keyboard and gamepad are supported; the gamepad left stick and A/Back
// buttons arrive as discrete input events, like a joystick.
package window

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/star-collider/internal/core"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
	"github.com/vovakirdan/star-collider/internal/platform/art"
)

// maxTextureSide is the largest sprite side painted at full resolution.
// Taller sprites (the scrolling background) are painted smaller and
// scaled up when drawn.
const maxTextureSide = 4096

// sprite is a painted texture and the factor it was shrunk by.
type sprite struct {
	img    *ebiten.Image
	shrink int
}

// SpriteRenderer implements starcollider.Renderer on an Ebitengine image.
// The target is set by Game.Draw before the session renders.
type SpriteRenderer struct {
	target  *ebiten.Image
	metrics starcollider.Metrics
	sprites map[starcollider.Texture]sprite
	color   map[starcollider.Texture]color.RGBA
	alpha   map[starcollider.Texture]uint8
	face    text.Face

	presented int
}

// NewSpriteRenderer paints every sprite at its metric size.
func NewSpriteRenderer(m starcollider.Metrics) *SpriteRenderer {
	r := &SpriteRenderer{
		metrics: m,
		sprites: make(map[starcollider.Texture]sprite),
		color:   make(map[starcollider.Texture]color.RGBA),
		alpha:   make(map[starcollider.Texture]uint8),
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
	for _, t := range starcollider.Textures() {
		if art.IsText(t) {
			continue
		}
		size := m.Size(t)
		k := shrinkFor(size)
		img := art.Paint(t, size, max(size.W/k, 1), max(size.H/k, 1))
		r.sprites[t] = sprite{img: ebiten.NewImageFromImage(img), shrink: k}
	}
	return r
}

func shrinkFor(s starcollider.Size) int {
	k := 1
	for max(s.W, s.H)/k > maxTextureSide {
		k *= 2
	}
	return k
}

// SetTarget selects the image the next frame is drawn on.
func (r *SpriteRenderer) SetTarget(img *ebiten.Image) { r.target = img }

// Presented returns how many frames have been presented.
func (r *SpriteRenderer) Presented() int { return r.presented }

// Clear implements starcollider.Renderer.
func (r *SpriteRenderer) Clear() {
	if r.target != nil {
		r.target.Fill(color.Black)
	}
}

// Present implements starcollider.Renderer. Ebitengine shows the frame
// when Draw returns.
func (r *SpriteRenderer) Present() { r.presented++ }

// SetColorMod implements starcollider.Renderer.
func (r *SpriteRenderer) SetColorMod(t starcollider.Texture, red, green, blue uint8) {
	r.color[t] = color.RGBA{R: red, G: green, B: blue, A: 255}
}

// SetAlphaMod implements starcollider.Renderer.
func (r *SpriteRenderer) SetAlphaMod(t starcollider.Texture, a uint8) {
	r.alpha[t] = a
}

func (r *SpriteRenderer) mods(t starcollider.Texture) (color.RGBA, uint8) {
	c, ok := r.color[t]
	if !ok {
		c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	a, ok := r.alpha[t]
	if !ok {
		a = 255
	}
	return c, a
}

// Render implements starcollider.Renderer.
func (r *SpriteRenderer) Render(t starcollider.Texture, x, y int, opts *starcollider.DrawOptions) {
	if r.target == nil {
		return
	}
	tint, a := r.mods(t)
	if a == 0 {
		return
	}
	if art.IsText(t) {
		r.renderLabel(t, x, y, tint, a)
		return
	}
	sp, ok := r.sprites[t]
	if !ok {
		return
	}

	src, geo := place(r.metrics.Size(t), sp.shrink, x, y, opts)
	if src.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{GeoM: geo}
	op.ColorScale.ScaleWithColor(tint)
	op.ColorScale.ScaleAlpha(float32(a) / 255)
	r.target.DrawImage(sp.img.SubImage(src).(*ebiten.Image), op)
}

// place works out which part of a sprite to draw and where. Clip is in
// game pixels; the returned rectangle is in the painted image, which is
// shrink times smaller. Rotation and flip happen about the drawn region's
// center.
func place(size starcollider.Size, shrink, x, y int, opts *starcollider.DrawOptions) (image.Rectangle, ebiten.GeoM) {
	var geo ebiten.GeoM
	c := core.Rect{W: size.W, H: size.H}
	var angle float64
	var flip bool
	if opts != nil {
		if opts.Clip != nil {
			c = opts.Clip.Intersect(c)
		}
		angle = opts.Angle
		flip = opts.Flip == starcollider.FlipHorizontal
	}
	if c.Empty() {
		return image.Rectangle{}, geo
	}
	w, h := c.W, c.H
	src := image.Rect(c.X/shrink, c.Y/shrink, ceilDiv(c.Right(), shrink), ceilDiv(c.Bottom(), shrink))

	geo.Scale(float64(shrink), float64(shrink))
	if flip {
		geo.Scale(-1, 1)
		geo.Translate(float64(w), 0)
	}
	if angle != 0 {
		geo.Translate(-float64(w)/2, -float64(h)/2)
		geo.Rotate(angle * math.Pi / 180)
		geo.Translate(float64(w)/2, float64(h)/2)
	}
	geo.Translate(float64(x), float64(y))
	return src, geo
}

// renderLabel draws a text texture centered in its box, scaled up from
// the bitmap font to roughly fill the box height.
func (r *SpriteRenderer) renderLabel(t starcollider.Texture, x, y int, tint color.RGBA, a uint8) {
	label := t.Label()
	size := r.metrics.Size(t)
	tw, th := text.Measure(label, r.face, 0)
	k := labelScale(size, tw, th)

	op := &text.DrawOptions{}
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(float64(x)+(float64(size.W)-tw*k)/2, float64(y)+(float64(size.H)-th*k)/2)
	op.ColorScale.ScaleWithColor(art.TextColor(t))
	op.ColorScale.ScaleWithColor(tint)
	op.ColorScale.ScaleAlpha(float32(a) / 255)
	text.Draw(r.target, label, r.face, op)
}

// labelScale is the whole-number factor that fits tw x th text into
// two thirds of the box height without overflowing its width.
func labelScale(box starcollider.Size, tw, th float64) float64 {
	if tw <= 0 || th <= 0 {
		return 1
	}
	k := math.Floor(math.Min(float64(box.H)*2/3/th, float64(box.W)/tw))
	return math.Max(k, 1)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
