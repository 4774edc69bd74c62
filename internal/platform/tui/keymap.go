package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blindfour/internal/core"
)

// PlayerKeys are one hotseat player's bindings.
type PlayerKeys struct {
	Left   key.Binding
	Right  key.Binding
	Drop   key.Binding
	Invert key.Binding
}

// KeyMap translates Bubble Tea key messages to per-player game actions.
// Player 1 plays on WASD, Player 2 on the arrow keys; menu keys are shared.
type KeyMap struct {
	P1      PlayerKeys
	P2      PlayerKeys
	Confirm key.Binding
	Back    key.Binding
	History key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default hotseat bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		P1: PlayerKeys{
			Left:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a/d", "P1 move")),
			Right:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "P1 right")),
			Drop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "P1 drop")),
			Invert: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "P1 invert")),
		},
		P2: PlayerKeys{
			Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "P2 move")),
			Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "P2 right")),
			Drop:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "P2 drop")),
			Invert: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "P2 invert")),
		},
		Confirm: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "start/continue")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "title")),
		History: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "history")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1.Left, k.P1.Drop, k.P1.Invert, k.P2.Left, k.P2.Drop, k.P2.Invert, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1.Left, k.P1.Right, k.P1.Drop, k.P1.Invert},
		{k.P2.Left, k.P2.Right, k.P2.Drop, k.P2.Invert},
		{k.Confirm, k.Back, k.History, k.Quit},
	}
}

// MapKey adds the actions for msg to frame. Menu navigation (Up/Down) rides
// on the same keys as Invert/Drop; the game uses whichever fits its screen.
// Returns true if the key was a quit request.
func (k KeyMap) MapKey(msg tea.KeyMsg, frame *core.MultiInputFrame) (quit bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return true
	case key.Matches(msg, k.Confirm):
		frame.Set(core.Player1, core.ActionConfirm)
	case key.Matches(msg, k.Back):
		frame.Set(core.Player1, core.ActionBack)
	}

	for _, pk := range []struct {
		id   core.PlayerID
		keys PlayerKeys
	}{{core.Player1, k.P1}, {core.Player2, k.P2}} {
		switch {
		case key.Matches(msg, pk.keys.Left):
			frame.Set(pk.id, core.ActionLeft)
		case key.Matches(msg, pk.keys.Right):
			frame.Set(pk.id, core.ActionRight)
		case key.Matches(msg, pk.keys.Drop):
			frame.Set(pk.id, core.ActionDrop)
			frame.Set(pk.id, core.ActionDown)
		case key.Matches(msg, pk.keys.Invert):
			frame.Set(pk.id, core.ActionInvert)
			frame.Set(pk.id, core.ActionUp)
		}
	}
	return false
}
