package core

import "time"

// MatchResult is the summary of one finished match, handed to storage.
type MatchResult struct {
	MatchID    string
	GameID     string
	Rules      string // human-readable rule summary
	Winner     PlayerID
	Reason     string // "line", "inversion", "mutual_inversion", "timeout", "draw"
	Moves      int
	Inversions int
	Duration   time.Duration // simulated play time
}

// Draw reports whether the match ended without a winner.
func (r MatchResult) Draw() bool {
	return r.Winner == PlayerNone
}
