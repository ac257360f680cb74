package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/star-collider/internal/games/starcollider"
)

// KeyMapper translates Bubble Tea key messages to game keys and menu
// actions. This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game key.
// Returns false for keys the game does not use.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (starcollider.Key, bool) {
	switch msg.String() {
	case "w", "up":
		return starcollider.KeyUp, true
	case "s", "down":
		return starcollider.KeyDown, true
	case "a", "left":
		return starcollider.KeyLeft, true
	case "d", "right":
		return starcollider.KeyRight, true
	case " ":
		return starcollider.KeyFire, true
	case "esc":
		return starcollider.KeyEscape, true
	case "+", "=":
		return starcollider.KeyVolumeUp, true
	case "-", "_":
		return starcollider.KeyVolumeDown, true
	}
	return 0, false
}

// IsQuit reports whether a key quits the program outright.
func (km *KeyMapper) IsQuit(msg tea.KeyMsg) bool {
	return msg.String() == "ctrl+c"
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionRestart
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "r":
		return MenuActionRestart
	}

	return MenuActionNone
}
