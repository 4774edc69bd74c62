package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blindfour/internal/core"
	"github.com/vovakirdan/blindfour/internal/registry"
	"github.com/vovakirdan/blindfour/internal/storage"
)

// helpHeight is the number of rows reserved below the game screen.
const helpHeight = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// ResultStore persists finished matches. *storage.Store implements it.
type ResultStore interface {
	SaveMatchResult(r core.MatchResult) (int64, error)
}

// Model is the Bubble Tea model for a local hotseat session.
type Model struct {
	game      registry.MultiGame
	screen    *core.Screen
	store     ResultStore
	logger    *log.Logger
	config    core.RuntimeConfig
	input     core.MultiInputFrame
	keys      KeyMap
	help      help.Model
	gameState core.GameState
	saved     int // matches recorded this session

	quitting    bool
	wantHistory bool
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil to disable history.
func NewModel(game registry.MultiGame, store ResultStore, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Default()
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-helpHeight)),
		store:  store,
		logger: logger,
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.History) && m.gameState.InMenu:
		m.wantHistory = true
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKey(msg, &m.input) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-helpHeight))
	m.help.Width = msg.Width

	// A running match survives a resize; the title screen just re-lays out.
	if m.gameState.InMenu {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.StepMulti(m.input)
	m.gameState = result.State
	m.recordResult()
	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordResult saves a finished match once.
func (m *Model) recordResult() {
	rep, ok := m.game.(registry.Reporter)
	if !ok {
		return
	}
	r, ok := rep.TakeResult()
	if !ok {
		return
	}
	m.saved++
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveMatchResult(r); err != nil {
		m.logger.Warn("could not save match result", "match", r.MatchID, "error", err)
	}
}

// saveScreenshot saves the current screen under the XDG state directory.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	timestamp := time.Now().Format("20060102_150405")
	path, err := xdg.StateFile(filepath.Join("blindfour", "screenshots",
		fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)))
	if err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.wantHistory {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// WantsHistory reports whether the player asked for the history view.
func (m Model) WantsHistory() bool { return m.wantHistory }

// Saved returns how many matches finished during this model's lifetime.
func (m Model) Saved() int { return m.saved }

// Run starts the Bubble Tea program with the given game. It alternates
// between the game and the history view until the player quits.
func Run(game registry.MultiGame, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	var rs ResultStore
	if store != nil {
		rs = store
	}

	for {
		p := tea.NewProgram(NewModel(game, rs, cfg, logger), tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return err
		}
		m, ok := final.(Model)
		if !ok || !m.WantsHistory() {
			return nil
		}
		cfg = m.config

		back, err := RunHistory(store, game.ID(), cfg.ScreenW, cfg.ScreenH)
		if err != nil || !back {
			return err
		}
	}
}
