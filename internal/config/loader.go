package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source names for configurations that do not come from a file.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// Load reads the application configuration and reports where it came from.
// Search order: customPath -> ~/.flappy/config.yaml -> ./configs/config.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (Config, string, error) {
	// A path given explicitly must load.
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	// Files in the search path are skipped when unreadable or invalid.
	for _, path := range []string{userConfigPath(), filepath.Join("configs", "config.yaml")} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", "config.yaml")
}

// Dir returns ~/.flappy, the directory for user data.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot find home directory: %w", err)
	}
	return filepath.Join(home, ".flappy"), nil
}
