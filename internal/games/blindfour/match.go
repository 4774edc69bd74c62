// Package blindfour implements the match engine for a two-player
// connect-four variant with blind overlays and gravity inversion.
//
// The engine is step driven: it advances only when the host calls
// RequestMove, RequestDrop, RequestInvert or Tick, and it reports what
// happened through immutable Event records. Rendering, audio and animation
// timing live outside this package.
package blindfour

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blindfour/internal/core"
)

// Phase is the turn controller state.
type Phase int

const (
	PhaseIdle          Phase = iota // no match started yet
	PhaseAwaitingInput              // current player may move, drop or invert
	PhaseResolving                  // a drop or inversion is being resolved
	PhaseEnded                      // win, draw or timeout
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseResolving:
		return "resolving"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Options are the per-match rules chosen before StartNewGame.
type Options struct {
	Width           int
	Height          int
	TurnTime        time.Duration // 0 disables the turn clock
	InvertEnabled   bool
	BlindHorizontal int // row fill threshold, 0 disables
	BlindVertical   int // column fill threshold, 0 disables
}

// DefaultOptions returns a 7x6 board with every twist disabled.
func DefaultOptions() Options {
	return Options{
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Option configures a Match.
type Option func(*Match)

// WithLogger sets the logger used for turn-by-turn debug output.
func WithLogger(l *log.Logger) Option {
	return func(m *Match) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithEventSink registers a callback that receives every event synchronously,
// in addition to the queue drained by Events.
func WithEventSink(fn func(Event)) Option {
	return func(m *Match) {
		m.sink = fn
	}
}

// WithFaultHandler replaces the default fatal handler for invariant violations.
func WithFaultHandler(fn FaultHandler) Option {
	return func(m *Match) {
		m.fault = fn
	}
}

// WithResolutionHold keeps the match in PhaseResolving after a non-ending
// drop or inversion until Acknowledge is called. A presentation host uses it
// to finish its animation before the next player gets control.
func WithResolutionHold() Option {
	return func(m *Match) {
		m.hold = true
	}
}

// Match owns all state of one game: grid, blind mask, turn state and clock.
// It is not safe for concurrent use; the host serializes calls.
type Match struct {
	opts   Options // rules of the running match
	next   Options // rules StartNewGame will use
	logger *log.Logger
	sink   func(Event)
	fault  FaultHandler
	hold   bool

	grid  *Grid
	blind *BlindMask
	clock *TurnClock

	phase   Phase
	current core.PlayerID
	cursor  int
	pending bool // non-ending resolution waiting for Acknowledge

	winner   core.PlayerID
	winCells WinRecord
	reason   EndReason

	moves       int
	inversions  int
	shownSecond int
	events      []Event
}

// NewMatch creates an idle match. Call StartNewGame to begin play.
func NewMatch(opts Options, options ...Option) *Match {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	m := &Match{
		opts:   opts,
		next:   opts,
		logger: log.Default().WithPrefix("blindfour"),
	}
	for _, o := range options {
		o(m)
	}
	if m.fault == nil {
		m.fault = fatalFault(m.logger)
	}
	m.allocate()
	return m
}

func (m *Match) allocate() {
	m.grid = NewGrid(m.opts.Width, m.opts.Height)
	m.blind = NewBlindMask(m.opts.Width, m.opts.Height, m.opts.BlindVertical, m.opts.BlindHorizontal)
	m.clock = NewTurnClock(m.opts.TurnTime)
}

// Configure sets the rules for the next StartNewGame. A running match
// keeps the rules it started with.
// turnTimeSeconds <= 0 disables the clock; blind thresholds <= 0 disable that axis.
func (m *Match) Configure(turnTimeSeconds int, invertEnabled bool, blindHorizontal, blindVertical int) {
	m.next.TurnTime = time.Duration(max(turnTimeSeconds, 0)) * time.Second
	m.next.InvertEnabled = invertEnabled
	m.next.BlindHorizontal = max(blindHorizontal, 0)
	m.next.BlindVertical = max(blindVertical, 0)
}

// Options returns the rules of the current match.
func (m *Match) Options() Options {
	return m.opts
}

// NextOptions returns the rules the next StartNewGame will use.
func (m *Match) NextOptions() Options {
	return m.next
}

// StartNewGame discards the previous match and gives Player 1 the first turn.
func (m *Match) StartNewGame() {
	m.opts = m.next
	m.allocate()
	m.events = nil
	m.pending = false
	m.winner = core.PlayerNone
	m.winCells = nil
	m.reason = EndNone
	m.moves = 0
	m.inversions = 0
	m.current = core.Player1

	m.logger.Debug("new game",
		"width", m.opts.Width, "height", m.opts.Height,
		"turn_time", m.opts.TurnTime, "invert", m.opts.InvertEnabled,
		"blind_h", m.opts.BlindHorizontal, "blind_v", m.opts.BlindVertical)

	m.beginTurn()
}

// CenterOrder returns column indices ordered by distance from the board
// center, ties broken toward the lower index: {3,2,4,1,5,0,6} for width 7.
func CenterOrder(width int) []int {
	order := make([]int, width)
	for i := range order {
		order[i] = i
	}
	dist := func(c int) int { return core.Abs(2*c - (width - 1)) }
	sort.SliceStable(order, func(i, j int) bool {
		return dist(order[i]) < dist(order[j])
	})
	return order
}

func (m *Match) centerColumn() (int, bool) {
	for _, c := range CenterOrder(m.grid.Width()) {
		if m.grid.CanDrop(c) {
			return c, true
		}
	}
	return 0, false
}

// beginTurn hands control to m.current, or ends in a draw if no column is open.
func (m *Match) beginTurn() {
	col, ok := m.centerColumn()
	if !ok {
		m.endDraw()
		return
	}

	m.cursor = col
	m.phase = PhaseAwaitingInput
	m.clock.Reset()
	m.clock.Start()
	m.shownSecond = m.clock.DisplaySeconds()

	m.logger.Debug("turn", "player", m.current, "cursor", col)
	m.emit(TurnChanged{Player: m.current})
	m.emit(CursorMoved{Column: col})
	if m.clock.Enabled() {
		m.emit(ClockUpdated{Player: m.current, Remaining: m.clock.Remaining()})
	}
}

func (m *Match) passTurn() {
	m.current = m.current.Opponent()
	m.beginTurn()
}

// accepts reports whether player may act right now.
func (m *Match) accepts(player core.PlayerID) bool {
	return m.phase == PhaseAwaitingInput && player == m.current
}

// RequestMove shifts the cursor to the next open column in direction dir
// (-1 or +1). It does not wrap; with no open column before the edge the
// cursor stays put. Returns whether the cursor moved.
func (m *Match) RequestMove(player core.PlayerID, dir int) bool {
	if !m.accepts(player) || (dir != -1 && dir != 1) {
		return false
	}

	x := m.cursor
	for i := 0; i < m.grid.Width(); i++ {
		x += dir
		if x < 0 || x >= m.grid.Width() {
			return false
		}
		if m.grid.CanDrop(x) {
			m.cursor = x
			m.emit(CursorMoved{Column: x})
			return true
		}
	}
	return false
}

// RequestDrop drops the current player's piece into the cursor column.
// Illegal requests are ignored and return false.
func (m *Match) RequestDrop(player core.PlayerID) bool {
	if !m.accepts(player) || !m.grid.CanDrop(m.cursor) {
		return false
	}

	m.clock.Reset()
	m.clock.Suspend()
	m.phase = PhaseResolving

	at, err := m.grid.Drop(m.cursor, player)
	if err != nil {
		m.fault(err)
		return false
	}
	m.moves++
	m.logger.Debug("drop", "player", player, "column", at.X, "row", at.Y)
	m.emit(BlockPlaced{Player: player, Column: at.X, Row: at.Y})

	m.applyBlind(at)

	if err := m.grid.Verify(); err != nil {
		m.fault(err)
		return true
	}

	if cells, ok := m.grid.CheckWin(player, at.X, at.Y); ok {
		m.endWin(player, cells, EndLine)
		return true
	}
	if m.grid.IsFull() {
		m.endDraw()
		return true
	}

	m.release()
	return true
}

func (m *Match) applyBlind(at Point) {
	res := m.blind.Apply(m.grid, at)
	if res.ColumnLatched {
		m.logger.Debug("blind", "axis", AxisColumn, "index", at.X)
		m.emit(BlindApplied{Axis: AxisColumn, Index: at.X})
	}
	if res.RowLatched {
		m.logger.Debug("blind", "axis", AxisRow, "index", at.Y)
		m.emit(BlindApplied{Axis: AxisRow, Index: at.Y})
	}
	for _, p := range res.Obscured {
		m.emit(CellObscured{Cell: p})
	}
}

// RequestInvert flips the board for the current player when the rule is
// enabled. Illegal requests are ignored and return false.
func (m *Match) RequestInvert(player core.PlayerID) bool {
	if !m.accepts(player) || !m.opts.InvertEnabled {
		return false
	}

	m.clock.Reset()
	m.clock.Suspend()
	m.phase = PhaseResolving

	out, err := InvertBoard(m.grid, m.blind, player)
	if err != nil {
		m.fault(err)
		return true
	}
	m.inversions++
	m.logger.Debug("invert", "player", player, "winner", out.Winner)
	m.emit(Inverted{Requester: player})

	if out.Winner != core.PlayerNone {
		m.endWin(out.Winner, out.Cells, out.Reason)
		return true
	}

	m.release()
	return true
}

// release finishes a non-ending resolution, or parks it until Acknowledge.
func (m *Match) release() {
	if m.hold {
		m.pending = true
		return
	}
	m.passTurn()
}

// Acknowledge tells a held match that the presentation of the last drop or
// inversion is complete. Returns whether a pending resolution was released.
func (m *Match) Acknowledge() bool {
	if m.phase != PhaseResolving || !m.pending {
		return false
	}
	m.pending = false
	m.passTurn()
	return true
}

// Tick advances the turn clock. Running out of time loses the match.
func (m *Match) Tick(delta time.Duration) {
	if m.phase != PhaseAwaitingInput || !m.clock.Running() {
		return
	}

	expired := m.clock.Advance(delta)
	if s := m.clock.DisplaySeconds(); s != m.shownSecond {
		m.shownSecond = s
		m.emit(ClockUpdated{Player: m.current, Remaining: m.clock.Remaining()})
	}
	if expired {
		m.logger.Debug("timeout", "player", m.current)
		m.endWin(m.current.Opponent(), nil, EndTimeout)
	}
}

func (m *Match) endWin(player core.PlayerID, cells WinRecord, reason EndReason) {
	m.phase = PhaseEnded
	m.clock.Suspend()
	m.winner = player
	m.winCells = cells
	m.reason = reason
	m.logger.Debug("win", "player", player, "reason", reason, "cells", len(cells))
	m.emit(PlayerWon{Player: player, Cells: append(WinRecord(nil), cells...), Reason: reason})
}

func (m *Match) endDraw() {
	m.phase = PhaseEnded
	m.clock.Suspend()
	m.winner = core.PlayerNone
	m.winCells = nil
	m.reason = EndDraw
	m.logger.Debug("draw")
	m.emit(Draw{})
}

func (m *Match) emit(e Event) {
	m.events = append(m.events, e)
	if m.sink != nil {
		m.sink(e)
	}
}

// Events returns and clears the queued events in emission order.
func (m *Match) Events() []Event {
	out := m.events
	m.events = nil
	return out
}

// Phase returns the turn controller state.
func (m *Match) Phase() Phase { return m.phase }

// CurrentPlayer returns whose turn it is (or was, once ended).
func (m *Match) CurrentPlayer() core.PlayerID { return m.current }

// Cursor returns the target column.
func (m *Match) Cursor() int { return m.cursor }

// Width returns the board width.
func (m *Match) Width() int { return m.grid.Width() }

// Height returns the board height.
func (m *Match) Height() int { return m.grid.Height() }

// Cell returns the owner of (x, y).
func (m *Match) Cell(x, y int) core.PlayerID { return m.grid.At(x, y) }

// ColumnFill returns how many pieces column c holds.
func (m *Match) ColumnFill(c int) int { return m.grid.ColumnFill(c) }

// RowFill returns how many pieces row r holds.
func (m *Match) RowFill(r int) int { return m.grid.RowFill(r) }

// Board returns a copy of the grid indexed [y][x].
func (m *Match) Board() [][]core.PlayerID { return m.grid.Cells() }

// ColumnBlind reports whether column c is latched blind.
func (m *Match) ColumnBlind(c int) bool { return m.blind.ColumnBlind(c) }

// RowBlind reports whether row r is latched blind.
func (m *Match) RowBlind(r int) bool { return m.blind.RowBlind(r) }

// Obscured reports whether (x, y) is covered.
func (m *Match) Obscured(x, y int) bool { return m.blind.Obscured(Point{X: x, Y: y}) }

// ObscuredCells returns every covered cell, row-major.
func (m *Match) ObscuredCells() []Point { return m.blind.ObscuredCells() }

// Winner returns the winner once ended, PlayerNone for a draw.
func (m *Match) Winner() core.PlayerID { return m.winner }

// WinCells returns the winning line, empty for a draw or timeout.
func (m *Match) WinCells() WinRecord { return append(WinRecord(nil), m.winCells...) }

// EndReason returns how the match was decided.
func (m *Match) EndReason() EndReason { return m.reason }

// ClockEnabled reports whether turns are timed.
func (m *Match) ClockEnabled() bool { return m.clock.Enabled() }

// Remaining returns the time left for the current turn.
func (m *Match) Remaining() time.Duration { return m.clock.Remaining() }

// RemainingSeconds returns the time left rounded up to whole seconds.
func (m *Match) RemainingSeconds() int { return m.clock.DisplaySeconds() }

// Moves returns the number of pieces dropped.
func (m *Match) Moves() int { return m.moves }

// Inversions returns the number of board flips.
func (m *Match) Inversions() int { return m.inversions }
