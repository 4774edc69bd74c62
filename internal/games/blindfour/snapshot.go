package blindfour

import "github.com/vovakirdan/blindfour/internal/core"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Flow       Flow
	Phase      Phase
	Current    core.PlayerID
	Cursor     int
	Board      [][]core.PlayerID // [y][x], row 0 at the bottom
	Obscured   []Point
	BlindCols  []int
	BlindRows  []int
	Winner     core.PlayerID
	WinCells   WinRecord
	Reason     EndReason
	Remaining  int // whole seconds, 0 when the clock is off
	Moves      int
	Inversions int
	Options    Options
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	m := g.match
	snap := Snapshot{
		Flow:       g.flow,
		Phase:      m.Phase(),
		Current:    m.CurrentPlayer(),
		Cursor:     m.Cursor(),
		Board:      m.Board(),
		Obscured:   m.ObscuredCells(),
		Winner:     m.Winner(),
		WinCells:   m.WinCells(),
		Reason:     m.EndReason(),
		Moves:      m.Moves(),
		Inversions: m.Inversions(),
		Options:    m.Options(),
	}
	if m.ClockEnabled() {
		snap.Remaining = m.RemainingSeconds()
	}
	for c := 0; c < m.Width(); c++ {
		if m.ColumnBlind(c) {
			snap.BlindCols = append(snap.BlindCols, c)
		}
	}
	for r := 0; r < m.Height(); r++ {
		if m.RowBlind(r) {
			snap.BlindRows = append(snap.BlindRows, r)
		}
	}
	return snap
}
