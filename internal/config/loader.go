package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config file locations relative to the XDG and working directories.
const (
	userConfigFile  = "blindfour/blindfour.yaml"
	localConfigFile = "configs/blindfour.yaml"
)

// LoadBlindfour loads Blind Four configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/blindfour/blindfour.yaml ->
// ./configs/blindfour.yaml -> embedded default.
// Keys missing from the file keep their default values.
func LoadBlindfour(customPath string) (BlindfourConfig, error) {
	cfg := DefaultBlindfourConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(expandHome(customPath))
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath, err := xdg.SearchConfigFile(userConfigFile); err == nil {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultBlindfourConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(localConfigFile); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultBlindfourConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBlindfourYAML, &cfg); err != nil {
		return DefaultBlindfourConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// UserConfigPath returns where the user config file lives, creating its
// parent directory.
func UserConfigPath() (string, error) {
	path, err := xdg.ConfigFile(userConfigFile)
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve user config path: %w", err)
	}
	return path, nil
}

// WriteDefault writes the embedded default YAML to path.
// It refuses to overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	path = expandHome(path)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config: %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory: %w", err)
	}
	if err := os.WriteFile(path, defaultBlindfourYAML, 0o644); err != nil {
		return fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg BlindfourConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
