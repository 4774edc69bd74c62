package blindfour

import (
	"fmt"

	"github.com/vovakirdan/blindfour/internal/core"
)

// Visual characters for rendering
const (
	PieceChar   = '●'
	WinChar     = '◉'
	EmptyChar   = '·'
	BlindChar   = '▒'
	CursorChar  = '▼'
	cellWidth   = 4 // "│ ● " per column
	boardMargin = 10
)

// boardLayout holds the screen positions of the board for one frame.
type boardLayout struct {
	left    int // x of the left border
	cursorY int // row above the board for the cursor piece
	topY    int // screen row of board row height-1
	height  int
}

func (l boardLayout) cellX(col int) int { return l.left + col*cellWidth + 2 }
func (l boardLayout) cellY(row int) int { return l.topY + (l.height - 1 - row) }

// Render draws the current screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := g.match.Width(), g.match.Height()
	if dst.Width() < w*cellWidth+1 || dst.Height() < h+boardMargin {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", w*cellWidth+1, h+boardMargin))
		return
	}

	if g.flow == FlowTitle {
		g.renderTitle(dst)
		return
	}

	top := (dst.Height() - (h + boardMargin)) / 2
	layout := boardLayout{
		left:    (dst.Width() - (w*cellWidth + 1)) / 2,
		cursorY: top + 4,
		topY:    top + 5,
		height:  h,
	}

	dst.DrawTextCentered(top, "B L I N D   F O U R")
	g.renderHUD(dst, top+2)
	g.renderBoard(dst, layout)

	status := top + h + 8
	switch g.flow {
	case FlowPlaying:
		g.renderStatus(dst, status)
	case FlowWinAnimation:
		dst.DrawTextCentered(status, fmt.Sprintf("Player %d Wins!", int(g.match.Winner())))
	case FlowWinResult:
		g.drawMessage(dst,
			fmt.Sprintf("Player %d Wins!", int(g.match.Winner())),
			reasonText(g.match.EndReason()),
			"Press Enter to return to title")
	case FlowDrawResult:
		g.drawMessage(dst, "Draw!", "the board is full", "Press Enter to return to title")
	}
}

func (g *Game) renderTitle(dst *core.Screen) {
	lines := g.settings.Lines()
	top := (dst.Height() - (len(lines) + 8)) / 2

	dst.DrawTextCentered(top, "B L I N D   F O U R")
	dst.DrawTextCentered(top+1, "connect four, with the lights off")

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	x := (dst.Width() - width) / 2
	for i, l := range lines {
		c := core.ColorDefault
		if OptionField(i) == g.settings.Selected() {
			c = core.ColorBrightWhite
		}
		dst.DrawTextColor(x, top+3+i, l, c)
	}

	dst.DrawTextCentered(top+4+len(lines), "↑/↓ select   ←/→ change")
	dst.DrawTextCentered(top+6+len(lines), "Press Enter to start")
}

func (g *Game) renderHUD(dst *core.Screen, y int) {
	m := g.match
	label := func(p core.PlayerID) string {
		s := fmt.Sprintf("%s %c", p, PieceChar)
		if g.flow == FlowPlaying && p == m.CurrentPlayer() {
			s = "▶ " + s
			if m.ClockEnabled() {
				s += fmt.Sprintf("  %3ds", m.RemainingSeconds())
			}
		} else {
			s = "  " + s
		}
		return s
	}

	left := label(core.Player1)
	dst.DrawTextColor(2, y, left, core.PlayerColor(core.Player1))
	right := label(core.Player2)
	dst.DrawTextColor(dst.Width()-len([]rune(right))-2, y, right, core.PlayerColor(core.Player2))

	rules := m.Options().Summary()
	dst.DrawTextCentered(y, rules)
}

func (g *Game) renderBoard(dst *core.Screen, l boardLayout) {
	m := g.match
	w, h := m.Width(), m.Height()
	ended := m.Phase() == PhaseEnded
	falling := g.fallTicks > 0 && !g.flipping

	win := make(map[Point]bool)
	for _, p := range m.WinCells() {
		win[p] = true
	}

	// Cursor piece
	if g.flow == FlowPlaying && !falling && m.Phase() == PhaseAwaitingInput {
		p := m.CurrentPlayer()
		dst.SetColor(l.cellX(m.Cursor()), l.cursorY, PieceChar, core.PlayerColor(p))
		dst.SetColor(l.cellX(m.Cursor()), l.cursorY-1, CursorChar, core.ColorGray)
	}

	for row := 0; row < h; row++ {
		y := l.cellY(row)
		for col := 0; col < w; col++ {
			x := l.left + col*cellWidth
			dst.SetColor(x, y, '│', g.lineColor(col, row))
			g.drawCell(dst, l, Point{X: col, Y: row}, ended, falling, win)
		}
		dst.SetColor(l.left+w*cellWidth, y, '│', g.lineColor(w-1, row))
	}

	bottom := l.cellY(0) + 1
	for col := 0; col < w; col++ {
		x := l.left + col*cellWidth
		corner := '┴'
		if col == 0 {
			corner = '└'
		}
		dst.Set(x, bottom, corner)
		dst.DrawText(x+1, bottom, "───")
		dst.DrawText(l.cellX(col), bottom+1, fmt.Sprintf("%d", col+1))
	}
	dst.Set(l.left+w*cellWidth, bottom, '┘')

	if falling {
		g.drawFalling(dst, l)
	}
}

// lineColor dims the separators of blind columns and rows while a match runs.
func (g *Game) lineColor(col, row int) core.Color {
	if g.match.Phase() != PhaseEnded && (g.match.ColumnBlind(col) || g.match.RowBlind(row)) {
		return core.ColorGray
	}
	return core.ColorDefault
}

func (g *Game) drawCell(dst *core.Screen, l boardLayout, p Point, ended, falling bool, win map[Point]bool) {
	x, y := l.cellX(p.X), l.cellY(p.Y)
	owner := g.match.Cell(p.X, p.Y)

	switch {
	case owner == core.PlayerNone, falling && p == g.fallAt:
		dst.SetColor(x, y, EmptyChar, core.ColorGray)
	case win[p]:
		dst.SetColor(x, y, WinChar, brightColor(owner))
	case !ended && g.match.Obscured(p.X, p.Y):
		dst.SetColor(x, y, BlindChar, core.ColorGray)
	default:
		dst.SetColor(x, y, PieceChar, core.PlayerColor(owner))
	}
}

// drawFalling draws the piece that just landed on its way down the column.
func (g *Game) drawFalling(dst *core.Screen, l boardLayout) {
	owner := g.match.Cell(g.fallAt.X, g.fallAt.Y)
	if owner == core.PlayerNone || g.fallTotal == 0 {
		return
	}
	start, end := l.cursorY, l.cellY(g.fallAt.Y)
	done := g.fallTotal - g.fallTicks
	y := start + (end-start)*done/g.fallTotal
	dst.SetColor(l.cellX(g.fallAt.X), y, PieceChar, core.PlayerColor(owner))
}

func (g *Game) renderStatus(dst *core.Screen, y int) {
	m := g.match
	switch {
	case g.flipping:
		dst.DrawTextCentered(y, "INVERT!")
	case m.Phase() == PhaseAwaitingInput:
		msg := fmt.Sprintf("Player %d to move", int(m.CurrentPlayer()))
		if m.Options().InvertEnabled {
			msg += "  (invert available)"
		}
		dst.DrawTextCentered(y, msg)
	}
}

// drawMessage draws a message box in the center of the screen.
func (g *Game) drawMessage(dst *core.Screen, title, subtitle, hint string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle)), len([]rune(hint))) + 4
	boxH := 7
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	center := func(y int, text string, c core.Color) {
		dst.DrawTextColor(box.X+(boxW-len([]rune(text)))/2, y, text, c)
	}
	center(box.Y+1, title, brightColor(g.match.Winner()))
	center(box.Y+3, subtitle, core.ColorDefault)
	center(box.Y+5, hint, core.ColorGray)
}

func reasonText(r EndReason) string {
	switch r {
	case EndLine:
		return "four in a row"
	case EndInversion:
		return "four in a row after the flip"
	case EndMutualInversion:
		return "both lined up; the flipper loses"
	case EndTimeout:
		return "opponent ran out of time"
	default:
		return ""
	}
}

func brightColor(p core.PlayerID) core.Color {
	switch p {
	case core.Player1:
		return core.ColorBrightRed
	case core.Player2:
		return core.ColorBrightYellow
	default:
		return core.ColorBrightWhite
	}
}
