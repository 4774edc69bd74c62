package blindfour

import (
	"sort"

	"github.com/vovakirdan/blindfour/internal/core"
)

// Axis says whether a blind latch covers a column or a row.
type Axis int

const (
	AxisColumn Axis = iota
	AxisRow
)

func (a Axis) String() string {
	if a == AxisRow {
		return "row"
	}
	return "column"
}

// BlindResult reports what one drop changed in the mask.
type BlindResult struct {
	ColumnLatched bool // the drop's column became blind
	RowLatched    bool // the drop's row became blind
	Obscured      []Point
}

// BlindMask holds the one-way blind latches and the set of obscured cells.
// Latches only ever go from false to true within a match.
// Blind status never affects move legality or win detection.
type BlindMask struct {
	columnThreshold int // blindV; 0 disables columns
	rowThreshold    int // blindH; 0 disables rows
	columns         []bool
	rows            []bool
	obscured        map[Point]bool
}

// NewBlindMask creates a cleared mask for a width x height board.
func NewBlindMask(width, height, columnThreshold, rowThreshold int) *BlindMask {
	return &BlindMask{
		columnThreshold: columnThreshold,
		rowThreshold:    rowThreshold,
		columns:         make([]bool, width),
		rows:            make([]bool, height),
		obscured:        make(map[Point]bool),
	}
}

// ColumnBlind reports whether column c is latched.
func (b *BlindMask) ColumnBlind(c int) bool {
	return c >= 0 && c < len(b.columns) && b.columns[c]
}

// RowBlind reports whether row r is latched.
func (b *BlindMask) RowBlind(r int) bool {
	return r >= 0 && r < len(b.rows) && b.rows[r]
}

// Obscured reports whether the cell at p is covered.
func (b *BlindMask) Obscured(p Point) bool {
	return b.obscured[p]
}

// ObscuredCells returns the covered cells sorted row-major.
func (b *BlindMask) ObscuredCells() []Point {
	out := make([]Point, 0, len(b.obscured))
	for p := range b.obscured {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Apply runs the threshold checks for a piece that just landed at p.
// A newly latched line covers every piece already in it; afterwards each
// piece landing in a latched column or row is covered as it arrives.
func (b *BlindMask) Apply(g *Grid, p Point) BlindResult {
	var res BlindResult

	if !b.columns[p.X] && b.columnThreshold > 0 && g.ColumnFill(p.X) >= b.columnThreshold {
		b.columns[p.X] = true
		res.ColumnLatched = true
		for y := 0; y < g.Height(); y++ {
			if g.At(p.X, y) != core.PlayerNone {
				res.Obscured = b.cover(res.Obscured, Point{X: p.X, Y: y})
			}
		}
	}
	if b.columns[p.X] {
		res.Obscured = b.cover(res.Obscured, p)
	}

	if !b.rows[p.Y] && b.rowThreshold > 0 && g.RowFill(p.Y) >= b.rowThreshold {
		b.rows[p.Y] = true
		res.RowLatched = true
		for x := 0; x < g.Width(); x++ {
			if g.At(x, p.Y) != core.PlayerNone {
				res.Obscured = b.cover(res.Obscured, Point{X: x, Y: p.Y})
			}
		}
	}
	if b.rows[p.Y] {
		res.Obscured = b.cover(res.Obscured, p)
	}

	return res
}

// cover marks p and appends it to newly if it was not covered before.
func (b *BlindMask) cover(newly []Point, p Point) []Point {
	if b.obscured[p] {
		return newly
	}
	b.obscured[p] = true
	return append(newly, p)
}

// Invert moves each covered cell with its piece when the column stack is
// reversed. Latches are kept as they are and thresholds are not re-checked.
func (b *BlindMask) Invert(g *Grid) {
	moved := make(map[Point]bool, len(b.obscured))
	for p := range b.obscured {
		h := g.ColumnFill(p.X)
		moved[Point{X: p.X, Y: h - 1 - p.Y}] = true
	}
	b.obscured = moved
}
