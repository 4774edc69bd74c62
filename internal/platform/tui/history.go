package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blindfour/internal/core"
	"github.com/vovakirdan/blindfour/internal/registry"
	"github.com/vovakirdan/blindfour/internal/storage"
)

// maxHistory is the number of matches loaded into the table.
const maxHistory = 100

// HistoryKeyMap defines the key bindings for the history view.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next rule set"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev rule set"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistorySource reads stored matches. *storage.Store implements it.
type HistorySource interface {
	RecentResults(gameID string, limit int) ([]storage.MatchRecord, error)
	Stats(gameID string) (storage.Stats, error)
}

// HistoryModel is the Bubble Tea model for the match history screen.
// Tab cycles through "all games" and each registered rule set.
type HistoryModel struct {
	games     []registry.GameInfo // index 0 is the "all" pseudo entry
	cursor    int
	source    HistorySource
	records   []storage.MatchRecord
	stats     storage.Stats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      HistoryKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewHistoryModel creates a history view starting on gameID ("" for all).
func NewHistoryModel(source HistorySource, gameID string, width, height int) HistoryModel {
	games := append([]registry.GameInfo{{ID: "", Title: "All matches"}}, registry.List()...)
	cursor := 0
	for i, g := range games {
		if g.ID == gameID {
			cursor = i
		}
	}

	h := help.New()
	h.Width = width

	m := HistoryModel{
		games:  games,
		cursor: cursor,
		source: source,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Winner", Width: 7},
		{Title: "How", Width: 17},
		{Title: "Moves", Width: 5},
		{Title: "Time", Width: 6},
		{Title: "Rules", Width: 24},
	}

	// Give spare width to the rules column
	used := 0
	for _, c := range columns[:len(columns)-1] {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > columns[len(columns)-1].Width {
		columns[len(columns)-1].Width = min(spare, 40)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats, help and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads matches for the selected rule set.
func (m *HistoryModel) load() {
	m.records, m.stats, m.loadErr = nil, storage.Stats{}, nil
	if m.source != nil {
		id := m.games[m.cursor].ID
		if m.records, m.loadErr = m.source.RecentResults(id, maxHistory); m.loadErr == nil {
			m.stats, m.loadErr = m.source.Stats(id)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded matches.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, r := range m.records {
		rows[i] = HistoryRow(r)
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// HistoryRow formats one stored match as table cells.
func HistoryRow(r storage.MatchRecord) table.Row {
	winner := "draw"
	if r.Winner != core.PlayerNone {
		winner = r.Winner.String()
	}
	return table.Row{
		r.CreatedAt.Format("Jan 02 15:04"),
		winner,
		reasonLabel(r.Reason),
		fmt.Sprintf("%d", r.Moves),
		fmt.Sprintf("%d:%02d", int(r.Duration.Minutes()), int(r.Duration.Seconds())%60),
		r.Rules,
	}
}

func reasonLabel(reason string) string {
	switch reason {
	case "line":
		return "four in a row"
	case "inversion":
		return "inversion"
	case "mutual_inversion":
		return "mutual inversion"
	case "timeout":
		return "timeout"
	case "draw":
		return "full board"
	default:
		return reason
	}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.cursor = (m.cursor + 1) % len(m.games)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.cursor = (m.cursor - 1 + len(m.games)) % len(m.games)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("MATCH HISTORY - "+m.games[m.cursor].Title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m HistoryModel) statsLine() string {
	st := m.stats
	if st.Matches == 0 {
		return "no matches yet"
	}
	return fmt.Sprintf("%d matches   P1 %d   P2 %d   draws %d   avg %.1f moves",
		st.Matches, st.P1Wins, st.P2Wins, st.Draws, st.AvgMoves)
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.source == nil:
		return emptyStyle.Render("History is disabled.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load history:\n" + m.loadErr.Error())
	case len(m.records) == 0:
		return emptyStyle.Render("No matches recorded yet.\nFinish a match to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if the user wants to return to the game.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the history screen.
// Returns true if the user wants to go back to the game, false if quitting.
func RunHistory(store *storage.Store, gameID string, width, height int) (goBack bool, err error) {
	var source HistorySource
	if store != nil {
		source = store
	}
	model := NewHistoryModel(source, gameID, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
