// Package art paints the placeholder sprites every frontend shares. Each
// texture is a function of normalized coordinates, so it can be painted at
// any resolution: full size for the window, a few pixels per cell for the
// terminal.
package art

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/colornames"

	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

// painter returns the color at (u, v) in [0,1)x[0,1) of a texture whose
// game size is s. A zero alpha means transparent.
type painter func(u, v float64, s starcollider.Size) color.RGBA

var transparent = color.RGBA{}

// IsText reports whether the texture is a rendered string rather than a
// sprite. Frontends draw those with their own font.
func IsText(t starcollider.Texture) bool {
	return t.Label() != ""
}

// TextColor is the color a frontend should draw a text texture in.
func TextColor(t starcollider.Texture) color.RGBA {
	switch t {
	case starcollider.TexTitleStar, starcollider.TexTitleCollider:
		return colornames.Gold
	case starcollider.TexPressStart:
		return colornames.White
	case starcollider.TexGame, starcollider.TexOver:
		return colornames.Crimson
	case starcollider.TexWinner:
		return colornames.Lime
	default:
		return colornames.Lightskyblue
	}
}

// Paint renders texture t at w x h pixels. Text textures paint fully
// transparent.
func Paint(t starcollider.Texture, size starcollider.Size, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	p := painterFor(t)
	if p == nil {
		return img
	}
	for y := range h {
		v := (float64(y) + 0.5) / float64(h)
		for x := range w {
			u := (float64(x) + 0.5) / float64(w)
			img.SetRGBA(x, y, p(u, v, size))
		}
	}
	return img
}

func painterFor(t starcollider.Texture) painter {
	switch t {
	case starcollider.TexBackground:
		return background
	case starcollider.TexFighter:
		return fighter
	case starcollider.TexTurret:
		return turret
	case starcollider.TexBullet:
		return bullet
	case starcollider.TexAlienBullet:
		return alienBullet
	case starcollider.TexHealth:
		return health
	case starcollider.TexAmmo:
		return ammo
	case starcollider.TexSpeedPickup:
		return pickup(colornames.Dodgerblue, chevron)
	case starcollider.TexDamagePickup:
		return pickup(colornames.Orangered, cross)
	}
	for kind := starcollider.Raider; kind <= starcollider.Thrasher; kind++ {
		for tier := range starcollider.DamageTiers {
			if kind.TierTexture(tier) == t {
				return damaged(bossPainter(kind), tier)
			}
		}
	}
	return nil
}

func background(u, v float64, s starcollider.Size) color.RGBA {
	// Nebula bands repeat a whole number of times so the tile wraps cleanly.
	band := (math.Sin(v*2*math.Pi*5+math.Sin(u*3)*0.8) + 1) / 2
	base := mix(color.RGBA{4, 4, 16, 255}, color.RGBA{24, 8, 40, 255}, band*band*0.8)

	gx, gy := int(u*float64(s.W))/6, int(v*float64(s.H))/6
	switch h := hash2(gx, gy); {
	case h%211 == 0:
		return colornames.White
	case h%97 == 0:
		return colornames.Lightsteelblue
	case h%53 == 0:
		return mix(base, colornames.Slategray, 0.6)
	}
	return base
}

func fighter(u, v float64, _ starcollider.Size) color.RGBA {
	du := math.Abs(u - 0.5)
	switch {
	case dist(u, v, 0.5, 0.42) < 0.08:
		return colornames.Cyan
	case v > 0.88 && du < 0.1:
		return colornames.Orange
	case v > 0.1 && v < 0.9 && du < 0.22*v:
		return colornames.Lightsteelblue
	case v > 0.55 && v < 0.82 && du < 0.5:
		return colornames.Steelblue
	}
	return transparent
}

func turret(u, _ float64, _ starcollider.Size) color.RGBA {
	if math.Abs(u-0.5) < 0.2 {
		return colornames.Silver
	}
	return colornames.Dimgray
}

func bullet(u, v float64, _ starcollider.Size) color.RGBA {
	if ellipse(u, v, 0.5, 0.5, 0.5, 0.5) >= 1 {
		return transparent
	}
	if math.Abs(u-0.5) < 0.2 {
		return colornames.Lightyellow
	}
	return colornames.Gold
}

func alienBullet(u, v float64, _ starcollider.Size) color.RGBA {
	switch e := ellipse(u, v, 0.5, 0.5, 0.5, 0.5); {
	case e < 0.3:
		return colornames.Yellow
	case e < 1:
		return colornames.Orangered
	}
	return transparent
}

func health(_, v float64, _ starcollider.Size) color.RGBA {
	return mix(colornames.Lime, colornames.Darkgreen, v)
}

// ammo is white so the heat color mod shows through unchanged.
func ammo(u, v float64, _ starcollider.Size) color.RGBA {
	du := math.Abs(u - 0.5)
	switch {
	case v > 0.35 && du < 0.35:
		return colornames.White
	case ellipse(u, v, 0.5, 0.35, 0.35, 0.3) < 1:
		return colornames.Whitesmoke
	}
	return transparent
}

func pickup(fill color.RGBA, mark func(u, v float64) bool) painter {
	return func(u, v float64, _ starcollider.Size) color.RGBA {
		if dist(u, v, 0.5, 0.5) >= 0.5 {
			return transparent
		}
		if mark(u, v) {
			return colornames.White
		}
		return fill
	}
}

func chevron(u, v float64) bool {
	d := v - 0.3 - math.Abs(u-0.5)
	return math.Abs(u-0.5) < 0.3 && (math.Abs(d) < 0.07 || math.Abs(d-0.22) < 0.07)
}

func cross(u, v float64) bool {
	return (math.Abs(u-0.5) < 0.08 && math.Abs(v-0.5) < 0.3) ||
		(math.Abs(v-0.5) < 0.08 && math.Abs(u-0.5) < 0.3)
}

func bossPainter(kind starcollider.EnemyKind) painter {
	switch kind {
	case starcollider.Striker:
		return func(u, v float64, _ starcollider.Size) color.RGBA {
			d := math.Abs(u-0.5)/0.5 + math.Abs(v-0.5)/0.5
			switch {
			case d < 0.35:
				return colornames.Violet
			case d < 1:
				return colornames.Darkviolet
			}
			return transparent
		}
	case starcollider.Thrasher:
		return func(u, v float64, _ starcollider.Size) color.RGBA {
			switch {
			case dist(u, v, 0.3, 0.6) < 0.06, dist(u, v, 0.7, 0.6) < 0.06:
				return colornames.Red
			case ellipse(u, v, 0.5, 0.45, 0.48, 0.4) < 1:
				return colornames.Darkolivegreen
			case v > 0.7 && math.Mod(u*8, 1) < 0.35:
				return colornames.Olive
			}
			return transparent
		}
	default:
		return func(u, v float64, _ starcollider.Size) color.RGBA {
			switch {
			case ellipse(u, v, 0.5, 0.35, 0.18, 0.2) < 1:
				return colornames.Lightpink
			case ellipse(u, v, 0.5, 0.55, 0.5, 0.25) < 1:
				return colornames.Crimson
			case v > 0.75 && math.Abs(u-0.5) < 0.3 && math.Mod(u*6, 1) < 0.4:
				return colornames.Darkred
			}
			return transparent
		}
	}
}

// damaged darkens a boss sprite and adds scorch marks per damage tier.
func damaged(p painter, tier int) painter {
	if tier == 0 {
		return p
	}
	return func(u, v float64, s starcollider.Size) color.RGBA {
		c := p(u, v, s)
		if c.A == 0 {
			return c
		}
		if hash2(int(u*24), int(v*24))%uint32(9-2*tier) == 0 {
			return color.RGBA{30, 20, 10, 255}
		}
		return mix(c, colornames.Black, 0.18*float64(tier))
	}
}

func dist(u, v, cu, cv float64) float64 {
	return math.Hypot(u-cu, v-cv)
}

func ellipse(u, v, cu, cv, ru, rv float64) float64 {
	du, dv := (u-cu)/ru, (v-cv)/rv
	return du*du + dv*dv
}

func mix(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A)}
}

func hash2(x, y int) uint32 {
	h := uint32(x)*374761393 + uint32(y)*668265263 //#nosec G115 -- hash computation
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}
