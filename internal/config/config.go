// Package config provides YAML-based configuration loading and live
// reloading for Star Collider.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/star-collider/internal/core"
)

// Config is the whole user-tunable configuration.
type Config struct {
	// Difficulty is the single hand-tuned balance constant: boss health is
	// base/(20/difficulty). Range 1..20.
	Difficulty int            `yaml:"difficulty"`
	TickRate   int            `yaml:"tick_rate"`
	Audio      AudioConfig    `yaml:"audio"`
	Controls   ControlsConfig `yaml:"controls"`
	Window     WindowConfig   `yaml:"window"`
	Terminal   TerminalConfig `yaml:"terminal"`
}

// AudioConfig controls the synthesized music.
type AudioConfig struct {
	Enabled    bool `yaml:"enabled"`
	Volume     int  `yaml:"volume"`      // 0..128
	SampleRate int  `yaml:"sample_rate"` // Hz
}

// ControlsConfig tunes input handling.
type ControlsConfig struct {
	JoystickDeadZone int `yaml:"joystick_dead_zone"` // of 32767
	// HoldFrames is how long a terminal key press counts as held. Terminals
	// report presses only, never releases.
	HoldFrames int `yaml:"hold_frames"`
}

// WindowConfig controls the desktop window frontend.
type WindowConfig struct {
	Scale      float64 `yaml:"scale"`
	Fullscreen bool    `yaml:"fullscreen"`
}

// TerminalConfig controls how the playfield maps onto terminal cells.
type TerminalConfig struct {
	CellWidth  int    `yaml:"cell_width"`  // game pixels per column
	CellHeight int    `yaml:"cell_height"` // game pixels per row (two half-block pixels)
	LogFile    string `yaml:"log_file"`    // where the terminal frontend logs; "" for ~/.starcollider/starcollider.log
}

// Limits enforced by Validate.
const (
	MinDifficulty = 1
	MaxDifficulty = 20
	MinTickRate   = 15
	MaxTickRate   = 240
	MaxVolume     = 128
	MaxDeadZone   = 32767
)

// Validate clamps out-of-range values in place. The returned error lists
// every adjustment; the config is usable either way.
func (c *Config) Validate() error {
	var errs []error
	clamp := func(name string, v *int, lo, hi int) {
		if *v < lo || *v > hi {
			errs = append(errs, fmt.Errorf("%s %d out of range [%d, %d]", name, *v, lo, hi))
			*v = core.Clamp(*v, lo, hi)
		}
	}

	clamp("difficulty", &c.Difficulty, MinDifficulty, MaxDifficulty)
	clamp("tick_rate", &c.TickRate, MinTickRate, MaxTickRate)
	clamp("audio.volume", &c.Audio.Volume, 0, MaxVolume)
	clamp("audio.sample_rate", &c.Audio.SampleRate, 8000, 96000)
	clamp("controls.joystick_dead_zone", &c.Controls.JoystickDeadZone, 0, MaxDeadZone)
	clamp("controls.hold_frames", &c.Controls.HoldFrames, 1, 60)
	clamp("terminal.cell_width", &c.Terminal.CellWidth, 1, 64)
	clamp("terminal.cell_height", &c.Terminal.CellHeight, 2, 128)

	if c.Window.Scale <= 0 || c.Window.Scale > 8 {
		errs = append(errs, fmt.Errorf("window.scale %.2f out of range (0, 8]", c.Window.Scale))
		c.Window.Scale = 1
	}
	if c.Terminal.CellHeight%2 != 0 {
		errs = append(errs, fmt.Errorf("terminal.cell_height %d must be even", c.Terminal.CellHeight))
		c.Terminal.CellHeight++
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Runtime returns the simulation parameters for a run.
func (c Config) Runtime(seed int64) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.Difficulty = c.Difficulty
	rc.TickRate = c.TickRate
	rc.Seed = seed
	return rc
}

// TerminalSize returns the terminal columns and rows the playfield needs.
func (c Config) TerminalSize(screenW, screenH int) (cols, rows int) {
	return screenW / c.Terminal.CellWidth, screenH / c.Terminal.CellHeight
}
