// blindfour is a two-player hotseat connect-four variant for the terminal,
// with blind overlays, gravity inversion and a turn clock.
//
// Usage:
//
//	blindfour play [rule set]  - Play a hotseat match
//	blindfour list             - List available rule sets
//	blindfour serve            - Start SSH server for remote play
//	blindfour history          - Show recorded matches
//	blindfour config show      - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--config <path>   - Load configuration from a YAML file
//	--db <path>       - Set history database path (default: XDG data dir)
//	--debug           - Log engine events
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blindfour/internal/config"
	"github.com/vovakirdan/blindfour/internal/games/blindfour"
)

var (
	// Global flags
	flagFPS    int
	flagConfig string
	flagDBPath string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blindfour",
	Short: "Blind Four - connect four with the lights off",
	Long: `Blind Four is a two-player connect-four variant played on one keyboard.

Optional rules:
  turn clock  - the mover loses when the clock runs out
  invert      - spend your turn flipping the board upside down
  blinds      - rows and columns hide their pieces once they fill up

Available commands:
  play     - Play a hotseat match
  list     - Show all rule sets
  serve    - Start SSH server for remote play
  history  - View recorded matches
  config   - Show or create the configuration file

Examples:
  blindfour play
  blindfour play blindfour_chaos
  blindfour play --turn-time 20 --invert
  blindfour serve --ssh :2222
  blindfour history`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (default: XDG data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log engine events")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the process logger and hands it to new games.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level := log.InfoLevel
	if flagDebug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	blindfour.SetLogger(logger.WithPrefix(prefix + "/match"))
	return logger
}

// openLogFile opens the log file used while the terminal is taken over
// by the game. It falls back to discarding output.
func openLogFile() (io.Writer, func()) {
	path, err := xdg.StateFile(filepath.Join("blindfour", "blindfour.log"))
	if err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

// loadConfig loads, normalizes and validates the configuration, then
// installs its rules as the defaults of new games.
func loadConfig() (config.BlindfourConfig, error) {
	cfg, err := config.LoadBlindfour(flagConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, applyConfig(&cfg)
}

func applyConfig(cfg *config.BlindfourConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration:\n%w", err)
	}
	cfg.Normalize()
	blindfour.SetDefaultOptions(blindfour.OptionsFromConfig(*cfg))
	return nil
}

// historyPath returns the database path from the flag or the config.
func historyPath(cfg config.BlindfourConfig) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.History.Path
}
