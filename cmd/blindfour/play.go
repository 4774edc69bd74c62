package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blindfour/internal/config"
	"github.com/vovakirdan/blindfour/internal/core"
	"github.com/vovakirdan/blindfour/internal/games/blindfour"
	"github.com/vovakirdan/blindfour/internal/platform/tui"
	"github.com/vovakirdan/blindfour/internal/registry"
	"github.com/vovakirdan/blindfour/internal/storage"
)

var (
	flagPreset   string
	flagTurnTime int
	flagInvert   bool
	flagBlindH   int
	flagBlindV   int
	flagNoSave   bool
)

var playCmd = &cobra.Command{
	Use:   "play [rule set]",
	Short: "Play a hotseat match",
	Long: `Start a two-player match on this terminal.

Controls:
  A/D  ←/→     - Move the piece (P1 / P2)
  S    ↓       - Drop
  W    ↑       - Invert the board (when enabled)
  Enter        - Start / continue
  Esc          - Abandon match, back to title
  Tab          - Match history (title screen)
  Q/Ctrl+C     - Quit

Rule flags override the configuration and the chosen preset:
  --turn-time 0 turns the clock off, otherwise 3 to 300 seconds.
  --blind-h N hides a row once it holds N pieces, --blind-v N a column.

Examples:
  blindfour play
  blindfour play blindfour_timed
  blindfour play --preset chaos
  blindfour play --turn-time 15 --blind-v 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Rule preset: classic, timed, blind, chaos")
	playCmd.Flags().IntVar(&flagTurnTime, "turn-time", 0, "Seconds per turn (0 = off)")
	playCmd.Flags().BoolVar(&flagInvert, "invert", false, "Allow inverting the board")
	playCmd.Flags().IntVar(&flagBlindH, "blind-h", 0, "Row fill that hides a row (0 = off)")
	playCmd.Flags().IntVar(&flagBlindV, "blind-v", 0, "Column fill that hides a column (0 = off)")
	playCmd.Flags().BoolVar(&flagNoSave, "no-history", false, "Do not record finished matches")
}

// applyRuleFlags copies explicitly set rule flags onto cfg.
func applyRuleFlags(cmd *cobra.Command, cfg *config.BlindfourConfig) {
	flags := cmd.Flags()
	if flags.Changed("turn-time") {
		cfg.Rules.TurnTimeSeconds = flagTurnTime
	}
	if flags.Changed("invert") {
		cfg.Rules.Invert = flagInvert
	}
	if flags.Changed("blind-h") {
		cfg.Rules.BlindHorizontal = flagBlindH
	}
	if flags.Changed("blind-v") {
		cfg.Rules.BlindVertical = flagBlindV
	}
}

// ruleOverrides returns the rules whose flags were set, taken from the
// normalized cfg, so that preset rule sets keep them too.
func ruleOverrides(cmd *cobra.Command, cfg config.BlindfourConfig) blindfour.RuleOverrides {
	var o blindfour.RuleOverrides
	flags := cmd.Flags()
	if flags.Changed("turn-time") {
		d := time.Duration(cfg.Rules.TurnTimeSeconds) * time.Second
		o.TurnTime = &d
	}
	if flags.Changed("invert") {
		v := cfg.Rules.Invert
		o.InvertEnabled = &v
	}
	if flags.Changed("blind-h") {
		v := cfg.Rules.BlindHorizontal
		o.BlindHorizontal = &v
	}
	if flags.Changed("blind-v") {
		v := cfg.Rules.BlindVertical
		o.BlindVertical = &v
	}
	return o
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := blindfour.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown rule set %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blindfour list' to see available rule sets.")
		os.Exit(1)
	}

	cfg, err := config.LoadBlindfour(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagPreset != "" {
		if err := config.ApplyPreset(&cfg, flagPreset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	applyRuleFlags(cmd, &cfg)
	if err := applyConfig(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	blindfour.SetRuleOverrides(ruleOverrides(cmd, cfg))

	logOut, closeLog := openLogFile()
	defer closeLog()
	logger := newLogger(logOut, "blindfour")

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	// Create game instance
	g, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := g.(registry.MultiGame)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %q does not support hotseat play\n", gameID)
		os.Exit(1)
	}

	// Open history storage
	var store *storage.Store
	if cfg.History.Enabled && !flagNoSave {
		store, err = storage.Open(historyPath(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
			// Continue without storage - game still works
			store = nil
		}
	}

	// Run the game
	runErr := tui.Run(game, store, runtime, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
