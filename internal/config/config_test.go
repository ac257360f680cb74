package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default %+v differs from Default() %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse([]byte("difficulty: 15\naudio:\n  volume: 20\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Difficulty != 15 {
		t.Errorf("difficulty = %d, want 15", cfg.Difficulty)
	}
	if cfg.Audio.Volume != 20 {
		t.Errorf("volume = %d, want 20", cfg.Audio.Volume)
	}
	if !cfg.Audio.Enabled {
		t.Error("audio.enabled lost its default")
	}
	if cfg.TickRate != 60 {
		t.Errorf("tick_rate = %d, want 60", cfg.TickRate)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("difficulty: [1, 2")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestValidateClamps(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		check func(Config) bool
	}{
		{"difficulty high", func(c *Config) { c.Difficulty = 50 }, func(c Config) bool { return c.Difficulty == MaxDifficulty }},
		{"difficulty zero", func(c *Config) { c.Difficulty = 0 }, func(c Config) bool { return c.Difficulty == MinDifficulty }},
		{"volume", func(c *Config) { c.Audio.Volume = 300 }, func(c Config) bool { return c.Audio.Volume == MaxVolume }},
		{"dead zone", func(c *Config) { c.Controls.JoystickDeadZone = -5 }, func(c Config) bool { return c.Controls.JoystickDeadZone == 0 }},
		{"scale", func(c *Config) { c.Window.Scale = 0 }, func(c Config) bool { return c.Window.Scale == 1 }},
		{"odd cell height", func(c *Config) { c.Terminal.CellHeight = 15 }, func(c Config) bool { return c.Terminal.CellHeight == 16 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.edit(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() returned nil for an out-of-range value")
			}
			if !tt.check(cfg) {
				t.Errorf("value not clamped: %+v", cfg)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("second Validate() = %v, want nil", err)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("difficulty: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, from, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if from != path {
		t.Errorf("source = %q, want %q", from, path)
	}
	if cfg.Difficulty != 4 {
		t.Errorf("difficulty = %d, want 4", cfg.Difficulty)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestRuntime(t *testing.T) {
	cfg := Default()
	cfg.Difficulty = 7
	rc := cfg.Runtime(99)
	if rc.Difficulty != 7 || rc.Seed != 99 || rc.TickRate != cfg.TickRate {
		t.Errorf("Runtime() = %+v", rc)
	}
}

func TestTerminalSize(t *testing.T) {
	cols, rows := Default().TerminalSize(480, 640)
	if cols != 60 || rows != 40 {
		t.Errorf("TerminalSize = %dx%d, want 60x40", cols, rows)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("difficulty: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("difficulty: 12\naudio:\n  volume: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Configs:
		if cfg.Difficulty != 12 || cfg.Audio.Volume != 5 {
			t.Errorf("reloaded config = %+v", cfg)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatchCloseClosesChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("difficulty: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := Watch(path, 0)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, ok := <-w.Configs; ok {
		t.Error("Configs still open after Close")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
