package core

import "fmt"

// PlayerID identifies one side of a two-player match.
// The zero value is used for empty board cells and "no winner".
type PlayerID int

const (
	PlayerNone PlayerID = 0
	Player1    PlayerID = 1
	Player2    PlayerID = 2
)

// Opponent returns the other player. PlayerNone has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return PlayerNone
	}
}

// Valid reports whether p is one of the two seated players.
func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

// String returns a short label such as "P1".
func (p PlayerID) String() string {
	switch p {
	case PlayerNone:
		return "none"
	case Player1, Player2:
		return fmt.Sprintf("P%d", int(p))
	default:
		return fmt.Sprintf("PlayerID(%d)", int(p))
	}
}

// Players lists the seated players in turn order.
var Players = [2]PlayerID{Player1, Player2}
