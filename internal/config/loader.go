package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name in the search directories.
const FileName = "starcollider.yaml"

// Load loads the configuration and reports which file it came from ("" for
// the embedded default). Values absent from the file keep their defaults.
// Search order: customPath -> ~/.starcollider/config.yaml -> ./configs/starcollider.yaml -> embedded default
func Load(customPath string) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, "", err
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, userCfgPath, nil
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", FileName)
	if cfg, err := loadFile(local); err == nil {
		return cfg, local, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

// Parse decodes YAML over the defaults and validates the result. Clamped
// values are not an error here; call Validate to see them.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Dir returns ~/.starcollider, or empty if home is unavailable.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".starcollider")
}

// UserConfigPath returns the path to the user config file, or empty if home
// is unavailable.
func UserConfigPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LogPath returns the terminal frontend's log file.
func (c Config) LogPath() string {
	if c.Terminal.LogFile != "" {
		return c.Terminal.LogFile
	}
	if dir := Dir(); dir != "" {
		return filepath.Join(dir, "starcollider.log")
	}
	return filepath.Join(os.TempDir(), "starcollider.log")
}
