package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blindfour/internal/core"
	"github.com/vovakirdan/blindfour/internal/games/blindfour"
)

type fakeStore struct {
	results []core.MatchResult
}

func (f *fakeStore) SaveMatchResult(r core.MatchResult) (int64, error) {
	f.results = append(f.results, r)
	return int64(len(f.results)), nil
}

func newTestModel(t *testing.T, store ResultStore) (Model, *blindfour.Game) {
	t.Helper()
	game := blindfour.New()
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10}
	m := NewModel(game, store, cfg, nil)
	m.Init()
	return m, game
}

// press feeds key messages followed by one tick, then idles until the
// presentation hold is over.
func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	var next tea.Model = m
	for _, msg := range msgs {
		next, _ = next.Update(msg)
	}
	for range 5 {
		next, _ = next.Update(TickMsg{})
	}
	return next.(Model)
}

func TestModelHotseatMatchIsRecordedOnce(t *testing.T) {
	store := &fakeStore{}
	m, game := newTestModel(t, store)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if game.Flow() != blindfour.FlowPlaying {
		t.Fatalf("flow = %v, want playing", game.Flow())
	}

	for i := range 4 {
		m = press(t, m, runeKey('s')) // P1 drops in the center column
		if i == 3 {
			break
		}
		m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}

	if len(store.results) != 1 {
		t.Fatalf("saved %d results, want 1", len(store.results))
	}
	r := store.results[0]
	if r.Winner != core.Player1 || r.Reason != "line" || r.Moves != 7 {
		t.Errorf("result = %+v", r)
	}
	if r.MatchID == "" || r.MatchID != game.MatchID() {
		t.Errorf("match id %q, game has %q", r.MatchID, game.MatchID())
	}

	for range 20 {
		m = press(t, m)
	}
	if game.Flow() != blindfour.FlowWinResult {
		t.Errorf("flow = %v, want win result", game.Flow())
	}
	if len(store.results) != 1 {
		t.Errorf("result saved again: %d", len(store.results))
	}
	if m.Saved() != 1 {
		t.Errorf("Saved() = %d", m.Saved())
	}
}

func TestModelWaitingPlayerCannotMove(t *testing.T) {
	m, game := newTestModel(t, nil)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// P2 keys do nothing on P1's turn.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if game.Match().Moves() != 0 {
		t.Fatalf("P2 dropped on P1's turn")
	}
	press(t, m, runeKey('s'))
	if game.Match().Moves() != 1 || game.Match().CurrentPlayer() != core.Player2 {
		t.Errorf("moves = %d, current = %v", game.Match().Moves(), game.Match().CurrentPlayer())
	}
}

func TestModelViewShowsTitleAndHelp(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m)

	view := m.View()
	if !strings.Contains(view, "B L I N D   F O U R") {
		t.Error("title missing from view")
	}
	if !strings.Contains(view, "Time Limit") {
		t.Error("options missing from view")
	}
	if !strings.Contains(view, "P1 drop") {
		t.Error("help bar missing from view")
	}
}

func TestModelQuitAndHistory(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(Model).WantsHistory() {
		t.Error("tab on the title screen should open history")
	}

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil || next.(Model).View() != "" {
		t.Error("q should quit")
	}
}
