package blindfour

import (
	"time"

	"github.com/vovakirdan/blindfour/internal/core"
)

// Event is an immutable record of something the engine decided.
// The presentation layer consumes events; it never feeds them back.
type Event interface {
	matchEvent()
}

// EndReason describes how a match was decided.
type EndReason int

const (
	EndNone             EndReason = iota
	EndLine                       // four in a row after a drop
	EndInversion                  // exactly one player has a line after an inversion
	EndMutualInversion            // both have a line; the requester loses
	EndTimeout                    // the player to move ran out of time
	EndDraw                       // no open column remains
)

func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndLine:
		return "line"
	case EndInversion:
		return "inversion"
	case EndMutualInversion:
		return "mutual_inversion"
	case EndTimeout:
		return "timeout"
	case EndDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// BlockPlaced is emitted when a dropped piece lands.
type BlockPlaced struct {
	Player core.PlayerID
	Column int
	Row    int
}

func (BlockPlaced) matchEvent() {}

// BlindApplied is emitted once when a column or row latches blind.
type BlindApplied struct {
	Axis  Axis
	Index int
}

func (BlindApplied) matchEvent() {}

// CellObscured is emitted for each cell that becomes covered.
type CellObscured struct {
	Cell Point
}

func (CellObscured) matchEvent() {}

// CursorMoved is emitted when the target column changes,
// including the center placement at the start of each turn.
type CursorMoved struct {
	Column int
}

func (CursorMoved) matchEvent() {}

// Inverted is emitted after the board has been flipped.
type Inverted struct {
	Requester core.PlayerID
}

func (Inverted) matchEvent() {}

// PlayerWon ends the match. Cells is empty for a timeout.
type PlayerWon struct {
	Player core.PlayerID
	Cells  WinRecord
	Reason EndReason
}

func (PlayerWon) matchEvent() {}

// Draw ends the match without a winner.
type Draw struct{}

func (Draw) matchEvent() {}

// TurnChanged is emitted when a player gets control.
type TurnChanged struct {
	Player core.PlayerID
}

func (TurnChanged) matchEvent() {}

// ClockUpdated is emitted when the whole-second countdown value changes.
type ClockUpdated struct {
	Player    core.PlayerID
	Remaining time.Duration
}

func (ClockUpdated) matchEvent() {}
