package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

// stickRange converts Ebitengine's [-1, 1] axis values to the 16-bit
// joystick range the dead zone is expressed in.
const stickRange = 32767

// bindings maps each logical key to the physical keys that hold it.
var bindings = map[starcollider.Key][]ebiten.Key{
	starcollider.KeyUp:         {ebiten.KeyW, ebiten.KeyArrowUp},
	starcollider.KeyDown:       {ebiten.KeyS, ebiten.KeyArrowDown},
	starcollider.KeyLeft:       {ebiten.KeyA, ebiten.KeyArrowLeft},
	starcollider.KeyRight:      {ebiten.KeyD, ebiten.KeyArrowRight},
	starcollider.KeyFire:       {ebiten.KeySpace},
	starcollider.KeyEscape:     {ebiten.KeyEscape},
	starcollider.KeyVolumeUp:   {ebiten.KeyEqual, ebiten.KeyNumpadAdd},
	starcollider.KeyVolumeDown: {ebiten.KeyMinus, ebiten.KeyNumpadSubtract},
}

// padState is the part of a gamepad the game reads.
type padState struct {
	connected bool
	x, y      int // thresholded stick direction
	a, back   bool
}

// gamepadEvents turns a change of pad state into joystick events. A pad
// that disconnects releases everything it held.
func gamepadEvents(prev, cur padState) []starcollider.Event {
	var out []starcollider.Event
	if cur.x != prev.x {
		out = append(out, starcollider.Event{Kind: starcollider.EventAxisMotion, Axis: starcollider.AxisX, Value: cur.x})
	}
	if cur.y != prev.y {
		out = append(out, starcollider.Event{Kind: starcollider.EventAxisMotion, Axis: starcollider.AxisY, Value: cur.y})
	}
	out = appendButton(out, starcollider.ButtonA, prev.a, cur.a)
	out = appendButton(out, starcollider.ButtonBack, prev.back, cur.back)
	return out
}

func appendButton(out []starcollider.Event, button int, was, is bool) []starcollider.Event {
	switch {
	case is && !was:
		return append(out, starcollider.Event{Kind: starcollider.EventButtonDown, Button: button})
	case was && !is:
		return append(out, starcollider.Event{Kind: starcollider.EventButtonUp, Button: button})
	}
	return out
}

// Input implements starcollider.Input from Ebitengine's keyboard and the
// first connected gamepad. Poll samples the devices once per tick.
type Input struct {
	deadZone int
	held     [8]bool
	pad      padState
	events   []starcollider.Event
}

// NewInput creates an input reader with the given stick dead zone.
func NewInput(deadZone int) *Input {
	return &Input{deadZone: deadZone}
}

// SetDeadZone changes the stick dead zone.
func (in *Input) SetDeadZone(dz int) { in.deadZone = dz }

// Poll samples the keyboard and gamepad. It must run on the game thread,
// inside Update.
func (in *Input) Poll() {
	for k, keys := range bindings {
		in.held[k] = false
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				in.held[k] = true
				break
			}
		}
	}

	cur := in.readPad()
	in.events = append(in.events, gamepadEvents(in.pad, cur)...)
	in.pad = cur

	if ebiten.IsWindowBeingClosed() {
		in.events = append(in.events, starcollider.Event{Kind: starcollider.EventQuit})
	}
}

func (in *Input) readPad() padState {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return padState{}
	}
	id := ids[0]
	if !ebiten.IsStandardGamepadLayoutAvailable(id) {
		return padState{connected: true}
	}
	axis := func(a ebiten.StandardGamepadAxis) int {
		raw := int(ebiten.StandardGamepadAxisValue(id, a) * stickRange)
		return starcollider.AxisValue(raw, in.deadZone)
	}
	return padState{
		connected: true,
		x:         axis(ebiten.StandardGamepadAxisLeftStickHorizontal),
		y:         axis(ebiten.StandardGamepadAxisLeftStickVertical),
		a:         ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom),
		back:      ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterLeft),
	}
}

// IsKeyDown implements starcollider.Input.
func (in *Input) IsKeyDown(k starcollider.Key) bool {
	if k < 0 || int(k) >= len(in.held) {
		return false
	}
	return in.held[k]
}

// PollEvents implements starcollider.Input.
func (in *Input) PollEvents() []starcollider.Event {
	out := in.events
	in.events = nil
	return out
}

// restartPressed reports a fresh press of a restart key or the pad's
// start button.
func restartPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}
