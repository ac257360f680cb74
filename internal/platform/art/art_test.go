package art

import (
	"testing"

	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

func opaque(t starcollider.Texture, w, h int) (n int) {
	m := starcollider.DefaultMetrics()
	img := Paint(t, m.Size(t), w, h)
	for y := range h {
		for x := range w {
			if img.RGBAAt(x, y).A != 0 {
				n++
			}
		}
	}
	return n
}

func TestEverySpriteHasPixels(t *testing.T) {
	for _, tex := range starcollider.Textures() {
		if IsText(tex) {
			continue
		}
		if n := opaque(tex, 16, 16); n == 0 {
			t.Errorf("%v paints nothing", tex)
		}
	}
}

func TestTextTexturesAreTransparent(t *testing.T) {
	for _, tex := range starcollider.Textures() {
		if !IsText(tex) {
			continue
		}
		if n := opaque(tex, 8, 8); n != 0 {
			t.Errorf("%v has %d opaque pixels", tex, n)
		}
		if TextColor(tex).A != 255 {
			t.Errorf("%v text color is not opaque", tex)
		}
	}
}

func TestBackgroundIsOpaque(t *testing.T) {
	if n := opaque(starcollider.TexBackground, 12, 40); n != 12*40 {
		t.Errorf("background opaque pixels = %d, want %d", n, 12*40)
	}
}

func TestDamageTiersDiffer(t *testing.T) {
	m := starcollider.DefaultMetrics()
	kind := starcollider.Thrasher
	intact := Paint(kind.TierTexture(0), m.Size(kind.Texture()), 32, 32)
	worst := Paint(kind.TierTexture(3), m.Size(kind.Texture()), 32, 32)
	if string(intact.Pix) == string(worst.Pix) {
		t.Error("damage tier 3 looks identical to the intact sprite")
	}
}

func TestPaintSize(t *testing.T) {
	img := Paint(starcollider.TexFighter, starcollider.Size{W: 64, H: 64}, 7, 5)
	if b := img.Bounds(); b.Dx() != 7 || b.Dy() != 5 {
		t.Errorf("bounds = %v, want 7x5", b)
	}
}
