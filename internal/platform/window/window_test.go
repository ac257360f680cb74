package window

import (
	"math"
	"testing"

	"github.com/vovakirdan/star-collider/internal/core"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPlaceWholeSprite(t *testing.T) {
	src, geo := place(starcollider.Size{W: 64, H: 64}, 1, 100, 200, nil)
	if src.Dx() != 64 || src.Dy() != 64 {
		t.Errorf("src = %v, want 64x64", src)
	}
	if x, y := geo.Apply(0, 0); !near(x, 100) || !near(y, 200) {
		t.Errorf("origin maps to (%v, %v), want (100, 200)", x, y)
	}
}

func TestPlaceClip(t *testing.T) {
	clip := &core.Rect{X: 0, Y: 50, W: 20, H: 50}
	src, geo := place(starcollider.Size{W: 20, H: 100}, 1, 5, 5, &starcollider.DrawOptions{Clip: clip})
	if src.Min.Y != 50 || src.Max.Y != 100 || src.Dx() != 20 {
		t.Errorf("src = %v", src)
	}
	// Sub-images are drawn from their own top-left.
	if x, y := geo.Apply(0, 0); !near(x, 5) || !near(y, 5) {
		t.Errorf("origin maps to (%v, %v), want (5, 5)", x, y)
	}

	empty := &core.Rect{X: 30, Y: 0, W: 10, H: 10}
	if src, _ := place(starcollider.Size{W: 20, H: 100}, 1, 0, 0, &starcollider.DrawOptions{Clip: empty}); !src.Empty() {
		t.Errorf("clip outside the sprite gave %v", src)
	}
}

func TestPlaceFlip(t *testing.T) {
	_, geo := place(starcollider.Size{W: 10, H: 4}, 1, 0, 0, &starcollider.DrawOptions{Flip: starcollider.FlipHorizontal})
	if x, _ := geo.Apply(0, 0); !near(x, 10) {
		t.Errorf("left edge maps to x=%v, want 10", x)
	}
	if x, _ := geo.Apply(10, 0); !near(x, 0) {
		t.Errorf("right edge maps to x=%v, want 0", x)
	}
}

func TestPlaceRotateAboutCenter(t *testing.T) {
	_, geo := place(starcollider.Size{W: 10, H: 10}, 1, 0, 0, &starcollider.DrawOptions{Angle: 90})
	if x, y := geo.Apply(5, 5); !near(x, 5) || !near(y, 5) {
		t.Errorf("center moved to (%v, %v)", x, y)
	}
	if x, y := geo.Apply(0, 0); !near(x, 10) || !near(y, 0) {
		t.Errorf("top-left rotated to (%v, %v), want (10, 0)", x, y)
	}
}

func TestPlaceShrunkSprite(t *testing.T) {
	size := starcollider.Size{W: 480, H: 6400}
	k := shrinkFor(size)
	if k != 2 {
		t.Fatalf("shrinkFor(%v) = %d, want 2", size, k)
	}
	src, geo := place(size, k, 0, -5760, nil)
	if src.Dx() != 240 || src.Dy() != 3200 {
		t.Errorf("src = %v, want 240x3200", src)
	}
	if _, y := geo.Apply(0, 3200); !near(y, 640) {
		t.Errorf("bottom maps to y=%v, want 640", y)
	}
}

func TestLabelScale(t *testing.T) {
	tests := []struct {
		box    starcollider.Size
		tw, th float64
		want   float64
	}{
		{starcollider.Size{W: 180, H: 80}, 28, 13, 4},
		{starcollider.Size{W: 40, H: 80}, 28, 13, 1},
		{starcollider.Size{W: 10, H: 10}, 70, 13, 1},
		{starcollider.Size{W: 10, H: 10}, 0, 0, 1},
	}
	for _, tc := range tests {
		if got := labelScale(tc.box, tc.tw, tc.th); got != tc.want {
			t.Errorf("labelScale(%v, %v, %v) = %v, want %v", tc.box, tc.tw, tc.th, got, tc.want)
		}
	}
}

func TestGamepadEvents(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur padState
		want      []starcollider.Event
	}{
		{"idle", padState{}, padState{}, nil},
		{
			"stick right and up",
			padState{connected: true},
			padState{connected: true, x: 1, y: -1},
			[]starcollider.Event{
				{Kind: starcollider.EventAxisMotion, Axis: starcollider.AxisX, Value: 1},
				{Kind: starcollider.EventAxisMotion, Axis: starcollider.AxisY, Value: -1},
			},
		},
		{
			"fire pressed",
			padState{connected: true},
			padState{connected: true, a: true},
			[]starcollider.Event{{Kind: starcollider.EventButtonDown, Button: starcollider.ButtonA}},
		},
		{
			"back pressed",
			padState{connected: true},
			padState{connected: true, back: true},
			[]starcollider.Event{{Kind: starcollider.EventButtonDown, Button: starcollider.ButtonBack}},
		},
		{
			"disconnect releases",
			padState{connected: true, x: -1, a: true},
			padState{},
			[]starcollider.Event{
				{Kind: starcollider.EventAxisMotion, Axis: starcollider.AxisX, Value: 0},
				{Kind: starcollider.EventButtonUp, Button: starcollider.ButtonA},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := gamepadEvents(tc.prev, tc.cur)
			if len(got) != len(tc.want) {
				t.Fatalf("events = %+v, want %+v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("event %d = %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestBindingsCoverEveryKey(t *testing.T) {
	keys := []starcollider.Key{
		starcollider.KeyUp, starcollider.KeyDown, starcollider.KeyLeft, starcollider.KeyRight,
		starcollider.KeyFire, starcollider.KeyEscape, starcollider.KeyVolumeUp, starcollider.KeyVolumeDown,
	}
	in := NewInput(8000)
	for _, k := range keys {
		if len(bindings[k]) == 0 {
			t.Errorf("no binding for key %d", k)
		}
		if int(k) >= len(in.held) {
			t.Errorf("key %d outside the held table", k)
		}
	}
	if in.IsKeyDown(starcollider.Key(99)) {
		t.Error("unknown key reported down")
	}
	if len(in.PollEvents()) != 0 {
		t.Error("fresh input has events")
	}
}
