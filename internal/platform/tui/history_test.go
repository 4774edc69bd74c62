package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blindfour/internal/core"
	"github.com/vovakirdan/blindfour/internal/games/blindfour"
	"github.com/vovakirdan/blindfour/internal/storage"
)

type fakeHistory struct {
	records []storage.MatchRecord
	asked   []string
	err     error
}

func (f *fakeHistory) RecentResults(gameID string, limit int) ([]storage.MatchRecord, error) {
	f.asked = append(f.asked, gameID)
	if f.err != nil {
		return nil, f.err
	}
	var out []storage.MatchRecord
	for _, r := range f.records {
		if gameID == "" || r.GameID == gameID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeHistory) Stats(gameID string) (storage.Stats, error) {
	st := storage.Stats{ByReason: map[string]int{}}
	for _, r := range f.records {
		if gameID != "" && r.GameID != gameID {
			continue
		}
		st.Matches++
		switch r.Winner {
		case core.Player1:
			st.P1Wins++
		case core.Player2:
			st.P2Wins++
		default:
			st.Draws++
		}
	}
	return st, nil
}

func sampleRecords() []storage.MatchRecord {
	at := time.Date(2026, 3, 4, 15, 6, 0, 0, time.UTC)
	return []storage.MatchRecord{
		{MatchID: "a", GameID: "blindfour", Rules: "classic", Winner: core.Player1, Reason: "line", Moves: 7, Duration: 75 * time.Second, CreatedAt: at},
		{MatchID: "b", GameID: "blindfour_chaos", Rules: "time 10s, invert", Winner: core.PlayerNone, Reason: "draw", Moves: 42, CreatedAt: at},
	}
}

func TestHistoryRow(t *testing.T) {
	recs := sampleRecords()

	row := HistoryRow(recs[0])
	want := []string{"Mar 04 15:06", "P1", "four in a row", "7", "1:15", "classic"}
	for i, w := range want {
		if row[i] != w {
			t.Errorf("cell %d = %q, want %q", i, row[i], w)
		}
	}

	if row := HistoryRow(recs[1]); row[1] != "draw" || row[2] != "full board" {
		t.Errorf("draw row = %v", row)
	}
}

func TestHistoryModelCyclesRuleSets(t *testing.T) {
	src := &fakeHistory{records: sampleRecords()}
	m := NewHistoryModel(src, blindfour.GameID, 100, 30)

	if got := src.asked[len(src.asked)-1]; got != blindfour.GameID {
		t.Fatalf("first load asked for %q", got)
	}
	if !strings.Contains(m.View(), "1 matches") {
		t.Errorf("stats line missing:\n%s", m.View())
	}

	// Going back one from the first registered game lands on "all".
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	if got := src.asked[len(src.asked)-1]; got != "" {
		t.Errorf("prev asked for %q, want all", got)
	}
	if !strings.Contains(m.View(), "2 matches") {
		t.Errorf("all-games stats missing:\n%s", m.View())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if got := src.asked[len(src.asked)-1]; got != blindfour.GameID {
		t.Errorf("next asked for %q", got)
	}
}

func TestHistoryModelEmptyAndErrors(t *testing.T) {
	if v := NewHistoryModel(nil, "", 80, 24).View(); !strings.Contains(v, "History is disabled") {
		t.Errorf("nil source view:\n%s", v)
	}
	if v := NewHistoryModel(&fakeHistory{}, "", 80, 24).View(); !strings.Contains(v, "No matches recorded yet") {
		t.Errorf("empty view:\n%s", v)
	}
	bad := &fakeHistory{err: errors.New("disk on fire")}
	if v := NewHistoryModel(bad, "", 80, 24).View(); !strings.Contains(v, "disk on fire") {
		t.Errorf("error view:\n%s", v)
	}
}

func TestHistoryModelBackAndQuit(t *testing.T) {
	m := NewHistoryModel(nil, "", 80, 24)

	next, cmd := m.Update(runeKey('b'))
	if !next.(HistoryModel).IsGoingBack() || cmd == nil {
		t.Error("b should go back")
	}
	next, _ = m.Update(runeKey('q'))
	if !next.(HistoryModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestSessionModelSwitchesToHistory(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10}
	var m tea.Model = NewSessionModel(blindfour.New(), nil, cfg, nil)
	m.Init()
	m, _ = m.Update(TickMsg{})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !m.(SessionModel).InHistory() {
		t.Fatal("tab should open history inside the session")
	}
	if cmd != nil {
		t.Error("opening history must not quit the session")
	}
	if !strings.Contains(m.View(), "MATCH HISTORY") {
		t.Errorf("history view:\n%s", m.View())
	}

	if _, cmd := m.Update(TickMsg{}); cmd != nil {
		t.Error("ticks should pause while history is shown")
	}

	m, cmd = m.Update(runeKey('b'))
	if m.(SessionModel).InHistory() || cmd == nil {
		t.Error("b should return to the game and restart ticking")
	}
	if !strings.Contains(m.View(), "B L I N D   F O U R") {
		t.Errorf("game view:\n%s", m.View())
	}
}
