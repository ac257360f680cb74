package starcollider

import "github.com/vovakirdan/star-collider/internal/core"

// HeatState is the turret's thermal gate.
type HeatState uint8

const (
	// Cooled turrets may fire.
	Cooled HeatState = iota
	// Overheated turrets are locked out until they cool fully.
	Overheated
)

func (s HeatState) String() string {
	if s == Overheated {
		return "overheated"
	}
	return "cooled"
}

// Barrel says which turret fires on a given frame.
type Barrel uint8

const (
	BarrelNone Barrel = iota
	BarrelLeft
	BarrelRight
)

// Heat color baseline and gate thresholds.
const (
	HeatBaseRed   = 75
	HeatGreen     = 75
	HeatBaseBlue  = 255
	heatRampAfter = 100 // frames of sustained fire before heat builds

	overheatRed  = 240
	overheatBlue = 10
	cooledRed    = 85
	cooledBlue   = 240
)

// Heat tracks turret temperature as the tint of the ammo icon. Red climbs
// and blue falls under sustained fire; they recover while idle.
type Heat struct {
	Red, Blue int
	ShootTime int // consecutive firing frames, 0 while not firing
	CoolTime  int // cooling ticks since the last full recovery
	State     HeatState
}

// NewHeat returns a cold turret.
func NewHeat() Heat {
	return Heat{Red: HeatBaseRed, Blue: HeatBaseBlue, State: Cooled}
}

// Cooled reports whether the turrets may fire.
func (h *Heat) Cooled() bool {
	return h.State == Cooled
}

// Advance runs one frame of the heat model. firing must already include the
// cooled gate (shooting && Cooled()). It returns the barrel that fires this
// frame; BarrelNone also covers the non-firing case, where the caller prunes
// off-screen bullets.
func (h *Heat) Advance(firing bool, heatSpeed, coolSpeed int) Barrel {
	barrel := BarrelNone
	if firing {
		switch {
		case h.ShootTime%20 == 0:
			barrel = BarrelRight
		case h.ShootTime%10 == 0:
			barrel = BarrelLeft
		}
		h.ShootTime++
	} else {
		h.ShootTime = 0
	}

	if h.ShootTime > heatRampAfter && h.ShootTime%2 == 0 {
		if h.Red < 255-heatSpeed {
			h.Red += heatSpeed
		}
		if h.Blue > 1+heatSpeed {
			h.Blue -= heatSpeed
		}
	} else if h.ShootTime == 0 {
		if h.CoolTime%3 == 0 {
			if h.Red > HeatBaseRed+coolSpeed {
				h.Red -= coolSpeed
			}
			if h.Blue < 255-coolSpeed {
				h.Blue += coolSpeed
			}
		}
		h.CoolTime += coolSpeed
	}

	if h.Red > overheatRed && h.Blue < overheatBlue {
		h.State = Overheated
	}
	h.Red = core.Clamp(h.Red, 1, 255)
	h.Blue = core.Clamp(h.Blue, 1, 255)
	if h.Red < cooledRed && h.Blue > cooledBlue {
		h.State = Cooled
		h.CoolTime = 0
	}
	return barrel
}

// Tint is the color mod applied to the ammo icon.
func (h *Heat) Tint() (r, g, b uint8) {
	return uint8(h.Red), HeatGreen, uint8(h.Blue)
}
