package config

import (
	_ "embed"
)

//go:embed defaults/blindfour.yaml
var defaultBlindfourYAML []byte

// DefaultBlindfourConfig returns the default Blind Four configuration.
func DefaultBlindfourConfig() BlindfourConfig {
	return BlindfourConfig{
		Board: BoardConfig{
			Width:  7,
			Height: 6,
		},
		Rules: RulesConfig{
			TurnTimeSeconds: 0,
			Invert:          false,
			BlindHorizontal: 0,
			BlindVertical:   0,
		},
		Server: ServerConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// GetDefaultYAML returns the embedded default configuration file.
func GetDefaultYAML() []byte {
	return defaultBlindfourYAML
}
