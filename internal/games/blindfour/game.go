package blindfour

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/blindfour/internal/config"
	"github.com/vovakirdan/blindfour/internal/core"
	"github.com/vovakirdan/blindfour/internal/registry"
)

// Presentation timings.
const (
	FallDuration    = 300 * time.Millisecond // piece drop and board flip
	WinHoldDuration = time.Second            // board stays visible before the result screen
)

// GameID is the registry ID of the rule set loaded from configuration.
const GameID = "blindfour"

// Flow is the screen the game is showing.
type Flow int

const (
	FlowTitle        Flow = iota // option editor
	FlowPlaying                  // match in progress
	FlowWinAnimation             // match won, winning line on the board
	FlowWinResult                // "Player N Wins!"
	FlowDrawResult               // "Draw"
)

func (f Flow) String() string {
	switch f {
	case FlowTitle:
		return "title"
	case FlowPlaying:
		return "playing"
	case FlowWinAnimation:
		return "win_animation"
	case FlowWinResult:
		return "win_result"
	case FlowDrawResult:
		return "draw_result"
	default:
		return "unknown"
	}
}

// Package-level defaults used by registry factories; set from the loaded
// configuration before games are created.
var (
	defaultsMu       sync.RWMutex
	defaultOptions   = DefaultOptions()
	defaultOverrides RuleOverrides
	defaultLogger    *log.Logger
)

// RuleOverrides are rule values set explicitly by the user, e.g. from
// command-line flags. They take precedence over a preset's rules.
// Nil fields leave the rule alone.
type RuleOverrides struct {
	TurnTime        *time.Duration
	InvertEnabled   *bool
	BlindHorizontal *int
	BlindVertical   *int
}

func (o RuleOverrides) apply(opts *Options) {
	if o.TurnTime != nil {
		opts.TurnTime = *o.TurnTime
	}
	if o.InvertEnabled != nil {
		opts.InvertEnabled = *o.InvertEnabled
	}
	if o.BlindHorizontal != nil {
		opts.BlindHorizontal = *o.BlindHorizontal
	}
	if o.BlindVertical != nil {
		opts.BlindVertical = *o.BlindVertical
	}
}

// SetDefaultOptions sets the rules new games start with.
func SetDefaultOptions(opts Options) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultOptions = opts
}

// SetRuleOverrides sets the rules every new game, presets included, starts with.
func SetRuleOverrides(o RuleOverrides) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultOverrides = o
}

// SetLogger sets the logger passed to matches of new games.
func SetLogger(l *log.Logger) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultLogger = l
}

func defaults() (Options, RuleOverrides, *log.Logger) {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaultOptions, defaultOverrides, defaultLogger
}

// OptionsFromConfig converts a loaded configuration into match options.
func OptionsFromConfig(cfg config.BlindfourConfig) Options {
	return Options{
		Width:           cfg.Board.Width,
		Height:          cfg.Board.Height,
		TurnTime:        time.Duration(cfg.Rules.TurnTimeSeconds) * time.Second,
		InvertEnabled:   cfg.Rules.Invert,
		BlindHorizontal: cfg.Rules.BlindHorizontal,
		BlindVertical:   cfg.Rules.BlindVertical,
	}
}

// Game adapts a Match to the platform: title screen, hotseat input,
// presentation holds and result screens.
type Game struct {
	id       string
	title    string
	settings *Settings
	match    *Match
	flow     Flow
	logger   *log.Logger

	runtime core.RuntimeConfig
	dt      time.Duration

	// presentation holds, in ticks
	fallTicks int
	fallTotal int
	fallAt    Point
	flipping  bool
	winTicks  int

	matchID   string
	playTicks int
	result    *core.MatchResult
}

// New creates a game using the configured default rules.
func New() *Game {
	opts, overrides, logger := defaults()
	overrides.apply(&opts)
	return newGame(GameID, "Blind Four", opts, logger)
}

// NewPreset creates a game whose title screen starts on a named preset.
// The board size still comes from the configured defaults, and rule
// overrides are layered on top of the preset.
func NewPreset(name string) (*Game, error) {
	rules, ok := config.Preset(name)
	if !ok {
		return nil, fmt.Errorf("blindfour: unknown preset %q", name)
	}
	opts, overrides, logger := defaults()
	opts.TurnTime = time.Duration(rules.TurnTimeSeconds) * time.Second
	opts.InvertEnabled = rules.Invert
	opts.BlindHorizontal = rules.BlindHorizontal
	opts.BlindVertical = rules.BlindVertical
	overrides.apply(&opts)
	return newGame(GameID+"_"+name, fmt.Sprintf("Blind Four (%s)", config.PresetTitle(name)), opts, logger), nil
}

func newGame(id, title string, opts Options, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default().WithPrefix("blindfour")
	}
	g := &Game{
		id:       id,
		title:    title,
		settings: NewSettings(opts),
		logger:   logger,
	}
	g.match = NewMatch(g.settings.Options(), WithLogger(logger), WithResolutionHold())
	return g
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	for _, name := range config.PresetNames() {
		if name == config.PresetClassic {
			continue
		}
		registry.Register(GameID+"_"+name, func() registry.Game {
			g, err := NewPreset(name)
			if err != nil {
				return New()
			}
			return g
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Reset returns to the title screen. Edited settings are kept.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = cfg
	g.dt = time.Second / time.Duration(cfg.TickRate)
	g.flow = FlowTitle
	g.clearHolds()
	g.result = nil
}

func (g *Game) clearHolds() {
	g.fallTicks = 0
	g.fallTotal = 0
	g.flipping = false
	g.winTicks = 0
}

// ticksFor converts a duration to a whole number of ticks, at least one.
func (g *Game) ticksFor(d time.Duration) int {
	return max(1, int((d+g.dt-1)/g.dt))
}

// Step feeds one frame of input to whichever player should act: the mover
// while playing, and either player on menus.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var multi core.MultiInputFrame
	for a, on := range in.Actions {
		if on {
			multi.Set(g.match.CurrentPlayer(), a)
		}
	}
	return g.StepMulti(multi)
}

// StepMulti advances the game by one tick.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	if g.dt == 0 {
		g.Reset(core.DefaultConfig())
	}

	switch g.flow {
	case FlowTitle:
		g.stepTitle(in)
	case FlowPlaying:
		g.stepPlaying(in)
	case FlowWinAnimation:
		if g.fallTicks > 0 {
			g.fallTicks--
		}
		g.winTicks--
		if g.winTicks <= 0 {
			g.flow = FlowWinResult
		}
	case FlowWinResult, FlowDrawResult:
		if in.Any(core.ActionConfirm) || in.Any(core.ActionBack) {
			g.flow = FlowTitle
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) stepTitle(in core.MultiInputFrame) {
	switch {
	case in.Any(core.ActionUp):
		g.settings.Select(-1)
	case in.Any(core.ActionDown):
		g.settings.Select(1)
	case in.Any(core.ActionLeft):
		g.settings.Modify(-1)
	case in.Any(core.ActionRight):
		g.settings.Modify(1)
	case in.Any(core.ActionConfirm):
		g.startMatch()
	}
}

func (g *Game) startMatch() {
	opts := g.settings.Options()
	g.match.Configure(int(opts.TurnTime/time.Second), opts.InvertEnabled, opts.BlindHorizontal, opts.BlindVertical)
	g.match.StartNewGame()
	g.match.Events()

	g.matchID = uuid.NewString()
	g.playTicks = 0
	g.result = nil
	g.clearHolds()
	g.flow = FlowPlaying
	g.logger.Info("match started", "id", g.matchID, "rules", opts.Summary())
}

func (g *Game) stepPlaying(in core.MultiInputFrame) {
	g.playTicks++

	if in.Any(core.ActionBack) {
		g.logger.Info("match abandoned", "id", g.matchID, "moves", g.match.Moves())
		g.flow = FlowTitle
		g.clearHolds()
		return
	}

	if g.fallTicks > 0 {
		g.fallTicks--
		if g.fallTicks == 0 {
			g.flipping = false
			g.match.Acknowledge()
		}
		g.consumeEvents()
		return
	}

	p := g.match.CurrentPlayer()
	frame := in.Player(p)
	switch {
	case frame.Has(core.ActionDrop):
		g.match.RequestDrop(p)
	case frame.Has(core.ActionInvert):
		g.match.RequestInvert(p)
	case frame.Has(core.ActionLeft):
		g.match.RequestMove(p, -1)
	case frame.Has(core.ActionRight):
		g.match.RequestMove(p, 1)
	}
	g.match.Tick(g.dt)
	g.consumeEvents()
}

// consumeEvents turns engine events into presentation holds and flow changes.
func (g *Game) consumeEvents() {
	for _, e := range g.match.Events() {
		switch ev := e.(type) {
		case BlockPlaced:
			g.fallAt = Point{X: ev.Column, Y: ev.Row}
			g.fallTotal = g.ticksFor(FallDuration)
			g.fallTicks = g.fallTotal
		case Inverted:
			g.flipping = true
			g.fallTotal = g.ticksFor(FallDuration)
			g.fallTicks = g.fallTotal
		case BlindApplied:
			g.logger.Debug("blind latched", "axis", ev.Axis, "index", ev.Index)
		case PlayerWon:
			if g.flipping {
				// the board shows the flipped result at once
				g.fallTicks = 0
				g.flipping = false
			}
			g.flow = FlowWinAnimation
			g.winTicks = g.ticksFor(WinHoldDuration)
			g.finish(ev.Player, ev.Reason)
		case Draw:
			g.flow = FlowDrawResult
			g.finish(core.PlayerNone, EndDraw)
		}
	}
}

func (g *Game) finish(winner core.PlayerID, reason EndReason) {
	g.result = &core.MatchResult{
		MatchID:    g.matchID,
		GameID:     g.id,
		Rules:      g.match.Options().Summary(),
		Winner:     winner,
		Reason:     reason.String(),
		Moves:      g.match.Moves(),
		Inversions: g.match.Inversions(),
		Duration:   time.Duration(g.playTicks) * g.dt,
	}
	g.logger.Info("match over", "id", g.matchID, "winner", winner, "reason", reason,
		"moves", g.result.Moves, "inversions", g.result.Inversions)
}

// TakeResult returns the last finished match once.
func (g *Game) TakeResult() (core.MatchResult, bool) {
	if g.result == nil {
		return core.MatchResult{}, false
	}
	r := *g.result
	g.result = nil
	return r, true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{InMenu: g.flow == FlowTitle}
	switch g.flow {
	case FlowWinAnimation, FlowWinResult:
		st.Over = true
		st.Winner = g.match.Winner()
	case FlowDrawResult:
		st.Over = true
	}
	return st
}

// Flow returns the screen currently shown.
func (g *Game) Flow() Flow { return g.flow }

// Settings returns the title screen rule editor.
func (g *Game) Settings() *Settings { return g.settings }

// Match returns the underlying engine.
func (g *Game) Match() *Match { return g.match }

// MatchID returns the identifier of the current or last match.
func (g *Game) MatchID() string { return g.matchID }

var (
	_ registry.MultiGame = (*Game)(nil)
	_ registry.Reporter  = (*Game)(nil)
)
