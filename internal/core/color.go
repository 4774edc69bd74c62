package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Colors used by the board renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorBlue
	ColorCyan
	ColorBrightRed
	ColorBrightYellow
	ColorBrightGreen
	ColorBrightWhite
	ColorGray
)

// PlayerColor returns the piece color for a player.
func PlayerColor(p PlayerID) Color {
	switch p {
	case Player1:
		return ColorRed
	case Player2:
		return ColorYellow
	default:
		return ColorDefault
	}
}
