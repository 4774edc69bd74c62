package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the coarse status a game reports to the platform each tick.
type GameState struct {
	Over   bool     // A match has finished and its result is on screen
	Winner PlayerID // PlayerNone for a draw or while playing
	InMenu bool     // Title/options screen is showing
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State GameState
}
