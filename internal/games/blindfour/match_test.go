package blindfour

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blindfour/internal/core"
)

func newTestMatch(t *testing.T, opts Options, options ...Option) *Match {
	t.Helper()
	options = append([]Option{WithFaultHandler(func(err error) {
		t.Fatalf("unexpected engine fault: %v", err)
	})}, options...)
	m := NewMatch(opts, options...)
	m.StartNewGame()
	return m
}

// dropAt steers the cursor to col and drops for player.
func dropAt(t *testing.T, m *Match, player core.PlayerID, col int) {
	t.Helper()
	for m.Cursor() != col {
		dir := 1
		if col < m.Cursor() {
			dir = -1
		}
		require.True(t, m.RequestMove(player, dir), "cursor stuck at %d moving to %d", m.Cursor(), col)
	}
	require.True(t, m.RequestDrop(player), "drop at column %d rejected", col)
}

func wins(events []Event) []PlayerWon {
	var out []PlayerWon
	for _, e := range events {
		if w, ok := e.(PlayerWon); ok {
			out = append(out, w)
		}
	}
	return out
}

func TestStartNewGame(t *testing.T) {
	m := newTestMatch(t, DefaultOptions())

	assert.Equal(t, PhaseAwaitingInput, m.Phase())
	assert.Equal(t, core.Player1, m.CurrentPlayer())
	assert.Equal(t, 3, m.Cursor())
	assert.Equal(t, []Event{TurnChanged{Player: core.Player1}, CursorMoved{Column: 3}}, m.Events())
}

func TestRequestsBeforeStartAreIgnored(t *testing.T) {
	m := NewMatch(DefaultOptions())

	assert.Equal(t, PhaseIdle, m.Phase())
	assert.False(t, m.RequestDrop(core.Player1))
	assert.False(t, m.RequestMove(core.Player1, 1))
	assert.False(t, m.RequestInvert(core.Player1))
	assert.Empty(t, m.Events())
}

func TestHorizontalWinEndToEnd(t *testing.T) {
	m := newTestMatch(t, DefaultOptions())

	for i, col := range []int{0, 1, 2, 3} {
		dropAt(t, m, core.Player1, col)
		if i == 3 {
			break
		}
		dropAt(t, m, core.Player2, 6)
	}

	require.Equal(t, PhaseEnded, m.Phase())
	won := wins(m.Events())
	require.Len(t, won, 1)
	assert.Equal(t, core.Player1, won[0].Player)
	assert.Equal(t, EndLine, won[0].Reason)
	// Origin first, then the positive direction, then the negative.
	assert.Equal(t, WinRecord{{3, 0}, {2, 0}, {1, 0}, {0, 0}}, won[0].Cells)
	assert.Equal(t, 7, m.Moves())
}

func TestWrongPlayerIsIgnored(t *testing.T) {
	m := newTestMatch(t, DefaultOptions())
	m.Events()

	assert.False(t, m.RequestMove(core.Player2, 1))
	assert.False(t, m.RequestDrop(core.Player2))
	assert.Equal(t, 3, m.Cursor())
	assert.Equal(t, 0, m.ColumnFill(3))
	assert.Empty(t, m.Events())
}

func TestTurnPassesAndCursorRecenters(t *testing.T) {
	m := newTestMatch(t, DefaultOptions())
	dropAt(t, m, core.Player1, 0)

	assert.Equal(t, core.Player2, m.CurrentPlayer())
	assert.Equal(t, 3, m.Cursor())
	assert.Equal(t, PhaseAwaitingInput, m.Phase())
	assert.Equal(t, []Event{
		BlockPlaced{Player: core.Player1, Column: 0, Row: 0},
		TurnChanged{Player: core.Player2},
		CursorMoved{Column: 3},
	}, m.Events()[5:])
}

func TestMoveSkipsFullColumnsWithoutWrapping(t *testing.T) {
	m := newTestMatch(t, DefaultOptions())

	// Fill column 4 with alternating pieces so nobody wins.
	for i := 0; i < DefaultHeight; i++ {
		dropAt(t, m, m.CurrentPlayer(), 4)
	}
	require.False(t, m.grid.CanDrop(4))

	p := m.CurrentPlayer()
	require.Equal(t, 3, m.Cursor())
	require.True(t, m.RequestMove(p, 1))
	assert.Equal(t, 5, m.Cursor(), "full column 4 should be skipped")
	require.True(t, m.RequestMove(p, 1))
	assert.Equal(t, 6, m.Cursor())
	assert.False(t, m.RequestMove(p, 1), "moving past the edge must not wrap")
	assert.Equal(t, 6, m.Cursor())
	assert.False(t, m.RequestMove(p, 0))
}

func TestCursorAvoidsFullCenter(t *testing.T) {
	m := newTestMatch(t, DefaultOptions())
	for i := 0; i < DefaultHeight; i++ {
		dropAt(t, m, m.CurrentPlayer(), 3)
	}
	assert.Equal(t, 2, m.Cursor())
}

func TestDrawWhenLastCellFilled(t *testing.T) {
	m := newTestMatch(t, DefaultOptions())
	m.grid = gridFromRows(t, DefaultWidth, DefaultHeight,
		"121212.",
		"1212121",
		"2121212",
		"2121212",
		"1212121",
		"1212121",
	)
	m.cursor = 6
	m.Events()

	require.True(t, m.RequestDrop(core.Player1))
	assert.Equal(t, PhaseEnded, m.Phase())
	assert.Equal(t, EndDraw, m.EndReason())
	assert.Equal(t, core.PlayerNone, m.Winner())
	events := m.Events()
	assert.Equal(t, Draw{}, events[len(events)-1])
}

func TestResolutionHoldBlocksRequests(t *testing.T) {
	m := newTestMatch(t, Options{TurnTime: 5 * time.Second}, WithResolutionHold())

	require.True(t, m.RequestDrop(core.Player1))
	require.Equal(t, PhaseResolving, m.Phase())

	assert.False(t, m.RequestDrop(core.Player1))
	assert.False(t, m.RequestDrop(core.Player2))
	assert.False(t, m.RequestMove(core.Player2, 1))
	m.Tick(10 * time.Second)
	assert.Equal(t, PhaseResolving, m.Phase(), "clock must be inert while resolving")

	require.True(t, m.Acknowledge())
	assert.Equal(t, PhaseAwaitingInput, m.Phase())
	assert.Equal(t, core.Player2, m.CurrentPlayer())
	assert.Equal(t, 5*time.Second, m.Remaining())
	assert.False(t, m.Acknowledge())
}

func TestEventSinkReceivesEvents(t *testing.T) {
	var seen []Event
	m := newTestMatch(t, DefaultOptions(), WithEventSink(func(e Event) {
		seen = append(seen, e)
	}))

	dropAt(t, m, core.Player1, 3)
	assert.Equal(t, m.Events(), seen)
}

func TestFaultOnCorruptedCounters(t *testing.T) {
	var fault error
	m := NewMatch(DefaultOptions(), WithFaultHandler(func(err error) { fault = err }))
	m.StartNewGame()
	m.grid.rowFill[3] = 2

	m.RequestDrop(core.Player1)
	require.Error(t, fault)
}

func TestStartNewGameResetsState(t *testing.T) {
	m := newTestMatch(t, Options{BlindVertical: 1, InvertEnabled: true})
	dropAt(t, m, core.Player1, 3)
	require.True(t, m.ColumnBlind(3))

	m.StartNewGame()
	assert.False(t, m.ColumnBlind(3))
	assert.Empty(t, m.ObscuredCells())
	assert.Equal(t, 0, m.ColumnFill(3))
	assert.Equal(t, 0, m.Moves())
	assert.Equal(t, core.Player1, m.CurrentPlayer())
}

func TestConfigure(t *testing.T) {
	m := NewMatch(DefaultOptions())
	m.Configure(30, true, 5, -2)

	opts := m.NextOptions()
	assert.Equal(t, 30*time.Second, opts.TurnTime)
	assert.True(t, opts.InvertEnabled)
	assert.Equal(t, 5, opts.BlindHorizontal)
	assert.Equal(t, 0, opts.BlindVertical)
	assert.Equal(t, DefaultOptions(), m.Options(), "rules apply from the next game")

	m.StartNewGame()
	assert.Equal(t, opts, m.Options())
	assert.True(t, m.ClockEnabled())
	assert.Equal(t, 30, m.RemainingSeconds())
}

func TestConfigureDuringMatchWaitsForNextGame(t *testing.T) {
	m := newTestMatch(t, DefaultOptions())
	m.Configure(10, true, 0, 0)

	assert.False(t, m.RequestInvert(core.Player1), "invert stays off for the running match")
	assert.False(t, m.ClockEnabled())
	assert.False(t, m.Options().InvertEnabled)

	m.StartNewGame()
	assert.True(t, m.Options().InvertEnabled)
	assert.True(t, m.RequestInvert(core.Player1))
}

func TestErrColumnFullIsWrapped(t *testing.T) {
	g := NewGrid(1, 1)
	_, _ = g.Drop(0, core.Player1)
	_, err := g.Drop(0, core.Player2)
	assert.True(t, errors.Is(err, ErrColumnFull))
}
