package config

import "fmt"

// Preset names.
const (
	PresetClassic = "classic"
	PresetTimed   = "timed"
	PresetBlind   = "blind"
	PresetChaos   = "chaos"
)

type preset struct {
	title string
	rules RulesConfig
}

var presets = map[string]preset{
	PresetClassic: {"Classic", RulesConfig{}},
	PresetTimed:   {"Timed", RulesConfig{TurnTimeSeconds: 15}},
	PresetBlind:   {"Blind", RulesConfig{BlindHorizontal: 4, BlindVertical: 3}},
	PresetChaos: {"Chaos", RulesConfig{
		TurnTimeSeconds: 10,
		Invert:          true,
		BlindHorizontal: 3,
		BlindVertical:   3,
	}},
}

// presetOrder is the display order of the built-in presets.
var presetOrder = []string{PresetClassic, PresetTimed, PresetBlind, PresetChaos}

// PresetNames returns the built-in preset names in display order.
func PresetNames() []string {
	return append([]string(nil), presetOrder...)
}

// Preset returns the rules of a built-in preset.
func Preset(name string) (RulesConfig, bool) {
	p, ok := presets[name]
	return p.rules, ok
}

// PresetTitle returns the display name of a preset, or the name itself.
func PresetTitle(name string) string {
	if p, ok := presets[name]; ok {
		return p.title
	}
	return name
}

// ApplyPreset replaces the rules of cfg with a built-in preset.
// The board, server and history sections are left alone.
func ApplyPreset(cfg *BlindfourConfig, name string) error {
	p, ok := presets[name]
	if !ok {
		return fmt.Errorf("config: unknown preset %q (valid: %v)", name, presetOrder)
	}
	cfg.Rules = p.rules
	return nil
}
