package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/vovakirdan/star-collider/internal/core"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

func newTestCells(t *testing.T) *CellRenderer {
	t.Helper()
	r := NewCellRenderer(core.NewScreen(0, 0), starcollider.DefaultMetrics(), 8, 16)
	r.Clear()
	return r
}

func TestCellRendererSizesScreen(t *testing.T) {
	r := newTestCells(t)
	if r.Screen().Cols() != 60 || r.Screen().Rows() != 40 {
		t.Errorf("screen = %dx%d cells, want 60x40", r.Screen().Cols(), r.Screen().Rows())
	}
	if r.Screen().Height() != 80 {
		t.Errorf("pixel height = %d, want 80", r.Screen().Height())
	}
}

func TestCellRendererClip(t *testing.T) {
	r := newTestCells(t)
	s := r.Screen()

	// Health bar is 20x100 game px: 3x13 screen px. Draw its lower half.
	r.Render(starcollider.TexHealth, 8, 16, &starcollider.DrawOptions{Clip: &core.Rect{X: 0, Y: 50, W: 20, H: 50}})

	if s.Get(1, 2) == core.ColorBlack {
		t.Error("first clipped row not drawn")
	}
	if s.Get(1, 2+6) == core.ColorBlack {
		t.Error("last clipped row not drawn")
	}
	if s.Get(1, 2+7) != core.ColorBlack {
		t.Error("drew past the clip height")
	}
}

func TestCellRendererMods(t *testing.T) {
	r := newTestCells(t)
	s := r.Screen()

	r.SetColorMod(starcollider.TexAmmo, 255, 0, 0)
	r.Render(starcollider.TexAmmo, 0, 0, nil)
	if got := s.Get(1, 4); got != core.RGB(255, 0, 0) {
		t.Errorf("tinted ammo pixel = %+v, want pure red", got)
	}

	r.Clear()
	r.SetAlphaMod(starcollider.TexAmmo, 0)
	r.Render(starcollider.TexAmmo, 0, 0, nil)
	if got := s.Get(1, 4); got != core.ColorBlack {
		t.Errorf("transparent ammo drew %+v", got)
	}
}

func TestCellRendererFlip(t *testing.T) {
	r := newTestCells(t)
	s := r.Screen()

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 255, 255})
	r.sprites[starcollider.TexBullet] = img

	r.Render(starcollider.TexBullet, 0, 0, nil)
	if s.Get(0, 0) != core.RGB(255, 0, 0) || s.Get(1, 0) != core.RGB(0, 0, 255) {
		t.Fatalf("unflipped = %+v %+v", s.Get(0, 0), s.Get(1, 0))
	}

	r.Render(starcollider.TexBullet, 0, 0, &starcollider.DrawOptions{Flip: starcollider.FlipHorizontal})
	if s.Get(0, 0) != core.RGB(0, 0, 255) || s.Get(1, 0) != core.RGB(255, 0, 0) {
		t.Errorf("flipped = %+v %+v", s.Get(0, 0), s.Get(1, 0))
	}
}

func TestCellRendererNegativeOrigin(t *testing.T) {
	r := newTestCells(t)
	s := r.Screen()

	// Background starts far above the screen while scrolling.
	r.Render(starcollider.TexBackground, 0, -6400+640, nil)
	for _, y := range []int{0, s.Height() - 1} {
		if s.Get(0, y) == core.ColorBlack {
			t.Errorf("background row %d not drawn", y)
		}
	}
}

func TestCellRendererLabel(t *testing.T) {
	r := newTestCells(t)

	r.Render(starcollider.TexGame, 150, 240, nil)
	if !strings.Contains(Screenshot(r.Screen()), "Game") {
		t.Errorf("label missing:\n%s", Screenshot(r.Screen()))
	}

	r.Clear()
	r.SetAlphaMod(starcollider.TexGame, 0)
	r.Render(starcollider.TexGame, 150, 240, nil)
	if strings.Contains(Screenshot(r.Screen()), "Game") {
		t.Error("fully faded label still drawn")
	}
}

func TestCellRendererPresent(t *testing.T) {
	r := newTestCells(t)
	r.Present()
	r.Present()
	if r.Presented() != 2 {
		t.Errorf("Presented() = %d, want 2", r.Presented())
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, want int }{
		{7, 8, 0}, {8, 8, 1}, {-1, 8, -1}, {-8, 8, -1}, {-9, 8, -2}, {0, 8, 0},
	}
	for _, tc := range tests {
		if got := floorDiv(tc.a, tc.b); got != tc.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
