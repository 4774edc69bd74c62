package blindfour

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/blindfour/internal/core"
)

// ErrPieceCountChanged signals that a flip created or destroyed pieces.
var ErrPieceCountChanged = errors.New("blindfour: inversion changed piece count")

// InversionOutcome is the result of re-evaluating both players after a flip.
type InversionOutcome struct {
	Winner core.PlayerID // PlayerNone when the turn simply passes
	Cells  WinRecord
	Reason EndReason
}

// InvertBoard flips every column of g (and the covered cells of mask with it),
// then checks both players for a line on the new board.
//
// Resolution order:
//   - both players have a line: the player who did not request the flip wins
//   - exactly one has a line: that player wins, even if it is the requester
//   - neither: no winner
func InvertBoard(g *Grid, mask *BlindMask, requester core.PlayerID) (InversionOutcome, error) {
	before1, before2 := g.Count(core.Player1), g.Count(core.Player2)

	if mask != nil {
		mask.Invert(g)
	}
	g.Invert()

	after1, after2 := g.Count(core.Player1), g.Count(core.Player2)
	if before1 != after1 || before2 != after2 {
		return InversionOutcome{}, fmt.Errorf("%w: P1 %d->%d, P2 %d->%d",
			ErrPieceCountChanged, before1, after1, before2, after2)
	}
	if err := g.Verify(); err != nil {
		return InversionOutcome{}, err
	}

	win1, ok1 := g.CheckAnyWin(core.Player1)
	win2, ok2 := g.CheckAnyWin(core.Player2)

	switch {
	case ok1 && ok2:
		winner := requester.Opponent()
		cells := win1
		if winner == core.Player2 {
			cells = win2
		}
		return InversionOutcome{Winner: winner, Cells: cells, Reason: EndMutualInversion}, nil
	case ok1:
		return InversionOutcome{Winner: core.Player1, Cells: win1, Reason: EndInversion}, nil
	case ok2:
		return InversionOutcome{Winner: core.Player2, Cells: win2, Reason: EndInversion}, nil
	default:
		return InversionOutcome{}, nil
	}
}
