package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blindfour/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapPlayers(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		player core.PlayerID
		want   []core.Action
	}{
		{"a", runeKey('a'), core.Player1, []core.Action{core.ActionLeft}},
		{"d", runeKey('d'), core.Player1, []core.Action{core.ActionRight}},
		{"s", runeKey('s'), core.Player1, []core.Action{core.ActionDrop, core.ActionDown}},
		{"w", runeKey('w'), core.Player1, []core.Action{core.ActionInvert, core.ActionUp}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.Player2, []core.Action{core.ActionLeft}},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.Player2, []core.Action{core.ActionRight}},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.Player2, []core.Action{core.ActionDrop, core.ActionDown}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.Player2, []core.Action{core.ActionInvert, core.ActionUp}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.Player1, []core.Action{core.ActionConfirm}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.Player1, []core.Action{core.ActionBack}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var frame core.MultiInputFrame
			if km.MapKey(tt.msg, &frame) {
				t.Fatal("unexpected quit")
			}
			for _, a := range tt.want {
				if !frame.Player(tt.player).Has(a) {
					t.Errorf("%s: %v not set for %v", tt.name, a, tt.player)
				}
			}
			other := frame.Player(tt.player.Opponent())
			if len(other.Actions) != 0 {
				t.Errorf("%s: opponent got input %v", tt.name, other.Actions)
			}
		})
	}
}

func TestKeyMapQuit(t *testing.T) {
	km := DefaultKeyMap()
	var frame core.MultiInputFrame
	if !km.MapKey(runeKey('q'), &frame) {
		t.Error("q should quit")
	}
	if !km.MapKey(tea.KeyMsg{Type: tea.KeyCtrlC}, &frame) {
		t.Error("ctrl+c should quit")
	}
}
