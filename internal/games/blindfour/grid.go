package blindfour

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/blindfour/internal/core"
)

// Board defaults.
const (
	DefaultWidth  = 7
	DefaultHeight = 6
	WinLength     = 4
)

var (
	// ErrColumnFull is returned by Drop when the column has no open cell.
	ErrColumnFull = errors.New("blindfour: column is full")
	// ErrOutOfBounds is returned by Drop for a column outside the board.
	ErrOutOfBounds = errors.New("blindfour: column out of bounds")
)

// Point is a cell coordinate. Y grows upward from the bottom row.
type Point struct {
	X, Y int
}

// WinRecord lists the collinear cells of a qualifying line.
// The first entry is the origin of the scan.
type WinRecord []Point

// winAxes is the fixed scan order: horizontal, vertical, diagonal, anti-diagonal.
// The order decides which line is reported when several qualify.
var winAxes = [4]Point{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// Grid is the cell matrix plus per-column and per-row fill counters.
// Pieces stack from row 0 upward; a column is always contiguous from the bottom.
type Grid struct {
	width   int
	height  int
	cells   [][]core.PlayerID // [y][x]
	colFill []int
	rowFill []int
}

// NewGrid allocates an empty width x height grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height}
	g.Reset()
	return g
}

// Reset empties every cell and counter.
func (g *Grid) Reset() {
	g.cells = make([][]core.PlayerID, g.height)
	for y := range g.cells {
		g.cells[y] = make([]core.PlayerID, g.width)
	}
	g.colFill = make([]int, g.width)
	g.rowFill = make([]int, g.height)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) is on the board.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the owner of (x, y), or PlayerNone when empty or out of bounds.
func (g *Grid) At(x, y int) core.PlayerID {
	if !g.InBounds(x, y) {
		return core.PlayerNone
	}
	return g.cells[y][x]
}

// ColumnFill returns how many pieces column c holds.
func (g *Grid) ColumnFill(c int) int {
	if c < 0 || c >= g.width {
		return 0
	}
	return g.colFill[c]
}

// RowFill returns how many pieces row r holds.
func (g *Grid) RowFill(r int) int {
	if r < 0 || r >= g.height {
		return 0
	}
	return g.rowFill[r]
}

// CanDrop reports whether column c has an open cell.
func (g *Grid) CanDrop(c int) bool {
	return c >= 0 && c < g.width && g.colFill[c] < g.height
}

// Drop places player's piece on top of column c and returns where it landed.
// Callers check CanDrop first; the errors signal a broken precondition.
func (g *Grid) Drop(c int, player core.PlayerID) (Point, error) {
	if c < 0 || c >= g.width {
		return Point{}, fmt.Errorf("%w: %d", ErrOutOfBounds, c)
	}
	if g.colFill[c] >= g.height {
		return Point{}, fmt.Errorf("%w: %d", ErrColumnFull, c)
	}

	y := g.colFill[c]
	g.cells[y][c] = player
	g.colFill[c]++
	g.rowFill[y]++
	return Point{X: c, Y: y}, nil
}

// IsFull reports whether every column is filled to the top.
func (g *Grid) IsFull() bool {
	for _, n := range g.colFill {
		if n < g.height {
			return false
		}
	}
	return true
}

// Count returns how many cells player owns.
func (g *Grid) Count(player core.PlayerID) int {
	n := 0
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] == player {
				n++
			}
		}
	}
	return n
}

// CheckWin looks for a line of at least WinLength through (x, y) owned by player.
// Axes are tried in winAxes order and the first qualifying one is returned,
// listing the origin, then cells in the positive direction, then the negative.
func (g *Grid) CheckWin(player core.PlayerID, x, y int) (WinRecord, bool) {
	if !player.Valid() || g.At(x, y) != player {
		return nil, false
	}
	for _, axis := range winAxes {
		line := WinRecord{{X: x, Y: y}}
		line = g.collect(line, player, x, y, axis.X, axis.Y)
		line = g.collect(line, player, x, y, -axis.X, -axis.Y)
		if len(line) >= WinLength {
			return line, true
		}
	}
	return nil, false
}

func (g *Grid) collect(line WinRecord, player core.PlayerID, x, y, dx, dy int) WinRecord {
	nx, ny := x+dx, y+dy
	for g.InBounds(nx, ny) && g.cells[ny][nx] == player {
		line = append(line, Point{X: nx, Y: ny})
		nx += dx
		ny += dy
	}
	return line
}

// CheckAnyWin scans player's cells row-major from the bottom-left and returns
// the first line found. Used after an inversion, where no "last move" exists.
func (g *Grid) CheckAnyWin(player core.PlayerID) (WinRecord, bool) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] != player {
				continue
			}
			if line, ok := g.CheckWin(player, x, y); ok {
				return line, true
			}
		}
	}
	return nil, false
}

// Invert reverses every column's occupied sub-stack in place:
// new[y] = old[h-1-y] for y in [0, h). Cells above the stack stay empty.
// Column heights are unchanged, so both counter sets remain valid.
func (g *Grid) Invert() {
	for x := 0; x < g.width; x++ {
		h := g.colFill[x]
		for lo, hi := 0, h-1; lo < hi; lo, hi = lo+1, hi-1 {
			g.cells[lo][x], g.cells[hi][x] = g.cells[hi][x], g.cells[lo][x]
		}
	}
}

// Cells returns a copy of the matrix indexed [y][x].
func (g *Grid) Cells() [][]core.PlayerID {
	out := make([][]core.PlayerID, g.height)
	for y := range g.cells {
		out[y] = append([]core.PlayerID(nil), g.cells[y]...)
	}
	return out
}

// Verify checks the counters and gravity against the matrix.
func (g *Grid) Verify() error {
	rows := make([]int, g.height)
	for x := 0; x < g.width; x++ {
		n := 0
		gap := false
		for y := 0; y < g.height; y++ {
			if g.cells[y][x] == core.PlayerNone {
				gap = true
				continue
			}
			if gap {
				return fmt.Errorf("blindfour: floating piece at (%d,%d)", x, y)
			}
			n++
			rows[y]++
		}
		if n != g.colFill[x] {
			return fmt.Errorf("blindfour: column %d fill %d, matrix has %d", x, g.colFill[x], n)
		}
	}
	for y, n := range rows {
		if n != g.rowFill[y] {
			return fmt.Errorf("blindfour: row %d fill %d, matrix has %d", y, g.rowFill[y], n)
		}
	}
	return nil
}
