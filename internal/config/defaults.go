package config

import (
	_ "embed"
)

//go:embed defaults/starcollider.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Difficulty: 10,
		TickRate:   60,
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     64,
			SampleRate: 44100,
		},
		Controls: ControlsConfig{
			JoystickDeadZone: 8000,
			HoldFrames:       8,
		},
		Window: WindowConfig{
			Scale: 1,
		},
		Terminal: TerminalConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
	}
}
