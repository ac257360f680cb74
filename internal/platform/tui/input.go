package tui

import "github.com/vovakirdan/star-collider/internal/games/starcollider"

// opposite pairs cancel each other: pressing one releases the other.
var opposite = map[starcollider.Key]starcollider.Key{
	starcollider.KeyUp:    starcollider.KeyDown,
	starcollider.KeyDown:  starcollider.KeyUp,
	starcollider.KeyLeft:  starcollider.KeyRight,
	starcollider.KeyRight: starcollider.KeyLeft,
}

// HeldKeys implements starcollider.Input for terminals. A terminal only
// reports key presses (repeated while the key is held), so each press
// counts as held for a few frames and is refreshed by autorepeat.
type HeldKeys struct {
	hold   int
	frames map[starcollider.Key]int
	events []starcollider.Event
}

// NewHeldKeys creates an input that holds each press for hold frames.
func NewHeldKeys(hold int) *HeldKeys {
	return &HeldKeys{
		hold:   max(hold, 1),
		frames: make(map[starcollider.Key]int),
	}
}

// SetHold changes the hold time for later presses.
func (h *HeldKeys) SetHold(hold int) {
	h.hold = max(hold, 1)
}

// Press marks k as held.
func (h *HeldKeys) Press(k starcollider.Key) {
	h.frames[k] = h.hold
	if o, ok := opposite[k]; ok {
		delete(h.frames, o)
	}
}

// Tap marks k as held for the next frame only. Used for keys whose effect
// repeats every frame they are down.
func (h *HeldKeys) Tap(k starcollider.Key) {
	h.frames[k] = 1
}

// Quit queues a quit event.
func (h *HeldKeys) Quit() {
	h.events = append(h.events, starcollider.Event{Kind: starcollider.EventQuit})
}

// Tick ages every held key by one frame. Call it after each Step.
func (h *HeldKeys) Tick() {
	for k, n := range h.frames {
		if n <= 1 {
			delete(h.frames, k)
			continue
		}
		h.frames[k] = n - 1
	}
}

// Release drops every held key.
func (h *HeldKeys) Release() {
	clear(h.frames)
}

// IsKeyDown implements starcollider.Input.
func (h *HeldKeys) IsKeyDown(k starcollider.Key) bool {
	return h.frames[k] > 0
}

// PollEvents implements starcollider.Input.
func (h *HeldKeys) PollEvents() []starcollider.Event {
	ev := h.events
	h.events = nil
	return ev
}
