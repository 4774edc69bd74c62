// Package config provides YAML-based configuration loading, rule presets
// and validation for Blind Four.
package config

import (
	"errors"
	"fmt"
)

// Board size limits accepted by Validate.
const (
	MinBoardSize   = 4
	MaxBoardWidth  = 12
	MaxBoardHeight = 10
)

// Turn time limits in seconds. 0 disables the clock.
const (
	TurnTimeMin = 3
	TurnTimeMax = 300
)

// BlindfourConfig contains all configuration for Blind Four.
type BlindfourConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Rules   RulesConfig   `yaml:"rules"`
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// RulesConfig defines the optional twists of a match.
type RulesConfig struct {
	TurnTimeSeconds int  `yaml:"turn_time_seconds"` // 0 = no clock
	Invert          bool `yaml:"invert"`
	BlindHorizontal int  `yaml:"blind_horizontal"` // row fill threshold, 0 = off
	BlindVertical   int  `yaml:"blind_vertical"`   // column fill threshold, 0 = off
}

// ServerConfig defines the SSH server defaults.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"` // empty = generated under the XDG data dir
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// HistoryConfig defines where finished matches are recorded.
type HistoryConfig struct {
	Path    string `yaml:"path"` // empty = XDG data dir
	Enabled bool   `yaml:"enabled"`
}

// ValidationError describes one out-of-range configuration value.
type ValidationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s = %d: %s", e.Field, e.Value, e.Reason)
}

// Validate checks the board size and rule ranges. All problems are reported,
// joined into one error.
func (c *BlindfourConfig) Validate() error {
	var errs []error
	check := func(field string, value int, ok bool, reason string) {
		if !ok {
			errs = append(errs, &ValidationError{Field: field, Value: value, Reason: reason})
		}
	}

	w, h := c.Board.Width, c.Board.Height
	check("board.width", w, w >= MinBoardSize && w <= MaxBoardWidth,
		fmt.Sprintf("must be between %d and %d", MinBoardSize, MaxBoardWidth))
	check("board.height", h, h >= MinBoardSize && h <= MaxBoardHeight,
		fmt.Sprintf("must be between %d and %d", MinBoardSize, MaxBoardHeight))

	t := c.Rules.TurnTimeSeconds
	check("rules.turn_time_seconds", t, t == 0 || (t >= TurnTimeMin && t <= TurnTimeMax),
		fmt.Sprintf("must be 0 (off) or between %d and %d", TurnTimeMin, TurnTimeMax))
	check("rules.blind_horizontal", c.Rules.BlindHorizontal, c.Rules.BlindHorizontal >= 0 && c.Rules.BlindHorizontal <= w,
		"must be between 0 and the board width")
	check("rules.blind_vertical", c.Rules.BlindVertical, c.Rules.BlindVertical >= 0 && c.Rules.BlindVertical <= h,
		"must be between 0 and the board height")
	check("server.idle_timeout_minutes", c.Server.IdleTimeoutMinutes, c.Server.IdleTimeoutMinutes >= 0,
		"must not be negative")

	return errors.Join(errs...)
}

// Normalize clamps the rules into range the way the title screen editor
// does: a turn time below the minimum becomes OFF, above the maximum is capped.
func (c *BlindfourConfig) Normalize() {
	switch t := c.Rules.TurnTimeSeconds; {
	case t < TurnTimeMin:
		c.Rules.TurnTimeSeconds = 0
	case t > TurnTimeMax:
		c.Rules.TurnTimeSeconds = TurnTimeMax
	}
	c.Rules.BlindHorizontal = clamp(c.Rules.BlindHorizontal, 0, c.Board.Width)
	c.Rules.BlindVertical = clamp(c.Rules.BlindVertical, 0, c.Board.Height)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
