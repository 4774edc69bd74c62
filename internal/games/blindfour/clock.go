package blindfour

import "time"

// TurnClock is the optional per-turn countdown.
// A zero limit disables it for the whole match.
type TurnClock struct {
	limit     time.Duration
	remaining time.Duration
	running   bool
}

// NewTurnClock creates a stopped clock with the given per-turn limit.
func NewTurnClock(limit time.Duration) *TurnClock {
	if limit < 0 {
		limit = 0
	}
	return &TurnClock{limit: limit, remaining: limit}
}

// Enabled reports whether the clock has a limit.
func (c *TurnClock) Enabled() bool {
	return c.limit > 0
}

// Limit returns the configured per-turn time.
func (c *TurnClock) Limit() time.Duration {
	return c.limit
}

// Remaining returns the time left in the current turn.
func (c *TurnClock) Remaining() time.Duration {
	return c.remaining
}

// Running reports whether the clock is counting down.
func (c *TurnClock) Running() bool {
	return c.running && c.Enabled()
}

// Reset refills the clock to its limit without changing whether it runs.
func (c *TurnClock) Reset() {
	c.remaining = c.limit
}

// Start resumes counting down.
func (c *TurnClock) Start() {
	c.running = true
}

// Suspend stops counting down; used while a drop or inversion resolves.
func (c *TurnClock) Suspend() {
	c.running = false
}

// Advance subtracts delta while running and reports whether the clock just ran out.
// An expired clock stops itself.
func (c *TurnClock) Advance(delta time.Duration) bool {
	if !c.Running() || delta <= 0 {
		return false
	}
	c.remaining -= delta
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		return true
	}
	return false
}

// DisplaySeconds returns the remaining time rounded up to whole seconds.
func (c *TurnClock) DisplaySeconds() int {
	if c.remaining <= 0 {
		return 0
	}
	return int((c.remaining + time.Second - 1) / time.Second)
}
