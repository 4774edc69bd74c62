package blindfour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blindfour/internal/core"
)

func blindEvents(events []Event) (applied []BlindApplied, obscured []Point) {
	for _, e := range events {
		switch ev := e.(type) {
		case BlindApplied:
			applied = append(applied, ev)
		case CellObscured:
			obscured = append(obscured, ev.Cell)
		}
	}
	return applied, obscured
}

func TestColumnBlindLatches(t *testing.T) {
	m := newTestMatch(t, Options{BlindVertical: 3})

	dropAt(t, m, core.Player1, 2)
	dropAt(t, m, core.Player2, 2)
	assert.False(t, m.ColumnBlind(2))
	m.Events()

	dropAt(t, m, core.Player1, 2)
	applied, obscured := blindEvents(m.Events())
	assert.Equal(t, []BlindApplied{{Axis: AxisColumn, Index: 2}}, applied)
	assert.ElementsMatch(t, []Point{{2, 0}, {2, 1}, {2, 2}}, obscured)
	assert.True(t, m.ColumnBlind(2))

	dropAt(t, m, core.Player2, 2)
	applied, obscured = blindEvents(m.Events())
	assert.Empty(t, applied, "a latched column is not latched again")
	assert.Equal(t, []Point{{2, 3}}, obscured)
	assert.True(t, m.Obscured(2, 3))
	assert.False(t, m.Obscured(3, 0))
}

func TestRowBlindLatches(t *testing.T) {
	m := newTestMatch(t, Options{BlindHorizontal: 2})

	dropAt(t, m, core.Player1, 0)
	assert.False(t, m.RowBlind(0))
	dropAt(t, m, core.Player2, 1)
	assert.True(t, m.RowBlind(0))
	assert.Equal(t, []Point{{0, 0}, {1, 0}}, m.ObscuredCells())

	dropAt(t, m, core.Player1, 0)
	assert.False(t, m.Obscured(0, 1), "row 1 is below threshold and column blinds are off")

	dropAt(t, m, core.Player2, 5)
	assert.True(t, m.Obscured(5, 0))
}

func TestBlindMaskApplyIsIdempotent(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	mask := NewBlindMask(g.Width(), g.Height(), 2, 2)

	drop := func(x int, p core.PlayerID) BlindResult {
		at, err := g.Drop(x, p)
		require.NoError(t, err)
		return mask.Apply(g, at)
	}

	assert.Equal(t, BlindResult{}, drop(0, core.Player1))

	res := drop(1, core.Player2)
	assert.True(t, res.RowLatched)
	assert.False(t, res.ColumnLatched)
	assert.Equal(t, []Point{{0, 0}, {1, 0}}, res.Obscured)

	// (0,0) is already covered by the row; only the new piece is reported.
	res = drop(0, core.Player1)
	assert.True(t, res.ColumnLatched)
	assert.False(t, res.RowLatched)
	assert.Equal(t, []Point{{0, 1}}, res.Obscured)
	assert.Len(t, mask.ObscuredCells(), 3)
}

func TestBlindDoesNotAffectWins(t *testing.T) {
	m := newTestMatch(t, Options{BlindVertical: 1, BlindHorizontal: 1})

	for i, col := range []int{0, 1, 2, 3} {
		dropAt(t, m, core.Player1, col)
		if i < 3 {
			dropAt(t, m, core.Player2, col)
		}
	}
	require.Equal(t, PhaseEnded, m.Phase())
	assert.Equal(t, core.Player1, m.Winner())
	assert.Equal(t, EndLine, m.EndReason())
}

func TestBlindDisabled(t *testing.T) {
	m := newTestMatch(t, DefaultOptions())
	for i := 0; i < 4; i++ {
		dropAt(t, m, m.CurrentPlayer(), i)
	}
	assert.Empty(t, m.ObscuredCells())
	for c := 0; c < DefaultWidth; c++ {
		assert.False(t, m.ColumnBlind(c))
	}
}
