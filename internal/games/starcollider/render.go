package starcollider

import (
	"math"

	"github.com/vovakirdan/star-collider/internal/core"
)

// HUD placement.
const (
	hudMarginX = ScreenWidth / 30
	hudMarginY = ScreenHeight / 40
	healthBarH = 100
)

// PulseAlpha returns the "press start" opacity for a pulse phase.
func PulseAlpha(pulse uint8) uint8 {
	v := (math.Sin(float64(pulse)/255*2*math.Pi) + 1) / 2 * 283
	return uint8(min(255, v))
}

// Render issues this frame's draw calls, back to front.
func (s *Session) Render() {
	r := s.renderer
	m := s.metrics
	r.Clear()

	r.Render(TexBackground, 0, s.bg.Offsets[0], nil)
	r.Render(TexBackground, 0, s.bg.Offsets[1], nil)

	for b := range s.pool.All() {
		r.Render(TexBullet, b.X, b.Y, nil)
	}
	if shot, ok := s.AlienShot(); ok {
		r.Render(TexAlienBullet, shot.X, shot.Y, nil)
	}
	for _, pk := range s.pickups {
		if pk.OnScreen {
			r.Render(pk.Kind.Texture(), pk.X, pk.Y, nil)
		}
	}
	for i := range s.enemies {
		e := &s.enemies[i]
		r.Render(e.Texture(), e.X, e.Y, nil)
	}

	switch {
	case s.phase.Started():
		if s.phase != PhaseWin {
			s.renderHUD()
		}
		s.renderShip()
	case s.phase == PhaseLaunch:
		s.renderShip()
		s.renderTitle(s.TitleAlpha(), s.TitleAlpha())
	default:
		s.renderTitle(255, PulseAlpha(s.pulse))
	}

	if tex, ok := s.Banner(); ok {
		sz := m.Size(tex)
		r.Render(tex, ScreenWidth/2-sz.W/2, ScreenHeight/2-sz.H/2, nil)
	}

	switch {
	case s.phase == PhaseLose:
		game, over := m.Size(TexGame), m.Size(TexOver)
		r.Render(TexGame, (ScreenWidth-game.W)/2, ScreenHeight/2-game.H, nil)
		r.Render(TexOver, (ScreenWidth-over.W)/2, ScreenHeight/2, nil)
	case s.WinnerVisible():
		r.Render(TexWinner, 0, ScreenHeight/2-m.Size(TexWinner).H/2, nil)
	}

	r.Present()
}

// renderHUD draws the health bar and the heat-tinted ammo icon.
func (s *Session) renderHUD() {
	r := s.renderer
	health := core.Clamp(s.player.Health, 0, healthBarH)
	bar := s.metrics.Size(TexHealth)
	r.Render(TexHealth, hudMarginX, hudMarginY+healthBarH-health, &DrawOptions{
		Clip: &core.Rect{X: 0, Y: healthBarH - health, W: bar.W, H: health},
	})

	red, green, blue := s.heat.Tint()
	r.SetColorMod(TexAmmo, red, green, blue)
	ammo := s.metrics.Size(TexAmmo)
	r.Render(TexAmmo, ScreenWidth-hudMarginX-ammo.W, hudMarginY, nil)
}

// renderShip draws both turrets, the right one mirrored, then the fighter
// over them.
func (s *Session) renderShip() {
	r := s.renderer
	p := &s.player
	ship := s.metrics.Size(TexFighter)
	r.Render(TexTurret, p.X+ship.W/6, p.TurretY, nil)
	r.Render(TexTurret, p.X+ship.W*4/6, p.TurretY, &DrawOptions{Flip: FlipHorizontal})
	r.Render(TexFighter, p.X, p.Y, nil)
}

func (s *Session) renderTitle(titleAlpha, promptAlpha uint8) {
	r := s.renderer
	m := s.metrics
	star, collider, prompt := m.Size(TexTitleStar), m.Size(TexTitleCollider), m.Size(TexPressStart)

	r.SetAlphaMod(TexTitleStar, titleAlpha)
	r.SetAlphaMod(TexTitleCollider, titleAlpha)
	r.SetAlphaMod(TexPressStart, promptAlpha)

	r.Render(TexTitleStar, (ScreenWidth-star.W)/2, ScreenHeight/2-star.H, nil)
	r.Render(TexTitleCollider, (ScreenWidth-collider.W)/2, ScreenHeight/2, nil)
	r.Render(TexPressStart, ScreenWidth/2-prompt.W/2, ScreenHeight*2/3, nil)
}
