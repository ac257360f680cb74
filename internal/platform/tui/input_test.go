package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

func TestHeldKeysHold(t *testing.T) {
	h := NewHeldKeys(3)
	h.Press(starcollider.KeyLeft)

	for frame := range 3 {
		if !h.IsKeyDown(starcollider.KeyLeft) {
			t.Fatalf("key released after %d frames, want 3", frame)
		}
		h.Tick()
	}
	if h.IsKeyDown(starcollider.KeyLeft) {
		t.Error("key still held after the hold time")
	}
}

func TestHeldKeysRepeatRefreshes(t *testing.T) {
	h := NewHeldKeys(2)
	h.Press(starcollider.KeyFire)
	h.Tick()
	h.Press(starcollider.KeyFire) // autorepeat
	h.Tick()
	if !h.IsKeyDown(starcollider.KeyFire) {
		t.Error("autorepeat did not extend the hold")
	}
}

func TestHeldKeysOppositeReleases(t *testing.T) {
	h := NewHeldKeys(8)
	h.Press(starcollider.KeyLeft)
	h.Press(starcollider.KeyUp)
	h.Press(starcollider.KeyRight)

	if h.IsKeyDown(starcollider.KeyLeft) {
		t.Error("right did not release left")
	}
	if !h.IsKeyDown(starcollider.KeyRight) || !h.IsKeyDown(starcollider.KeyUp) {
		t.Error("unrelated keys released")
	}
}

func TestHeldKeysTapAndRelease(t *testing.T) {
	h := NewHeldKeys(8)
	h.Tap(starcollider.KeyVolumeUp)
	h.Press(starcollider.KeyDown)
	if !h.IsKeyDown(starcollider.KeyVolumeUp) {
		t.Fatal("tapped key not down")
	}
	h.Tick()
	if h.IsKeyDown(starcollider.KeyVolumeUp) {
		t.Error("tapped key held past one frame")
	}

	h.Release()
	if h.IsKeyDown(starcollider.KeyDown) {
		t.Error("Release() kept a key")
	}
}

func TestHeldKeysEvents(t *testing.T) {
	h := NewHeldKeys(1)
	h.Quit()
	ev := h.PollEvents()
	if len(ev) != 1 || ev[0].Kind != starcollider.EventQuit {
		t.Fatalf("events = %+v", ev)
	}
	if len(h.PollEvents()) != 0 {
		t.Error("PollEvents() did not drain the queue")
	}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want starcollider.Key
		ok   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, starcollider.KeyUp, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, starcollider.KeyUp, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, starcollider.KeyLeft, true},
		{tea.KeyMsg{Type: tea.KeyRight}, starcollider.KeyRight, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}}, starcollider.KeyDown, true},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, starcollider.KeyFire, true},
		{tea.KeyMsg{Type: tea.KeyEsc}, starcollider.KeyEscape, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}, starcollider.KeyVolumeUp, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}}, starcollider.KeyVolumeDown, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			got, ok := km.MapKey(tc.msg)
			if got != tc.want || ok != tc.ok {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tc.msg.String(), got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestKeyMapperMenuActions(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, MenuActionRestart},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}
