package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blindfour/internal/core"
	"github.com/vovakirdan/blindfour/internal/registry"
	"github.com/vovakirdan/blindfour/internal/storage"
)

var (
	flagHistoryLimit int
	flagClear        bool
)

var historyCmd = &cobra.Command{
	Use:   "history [rule set]",
	Short: "Show recorded matches",
	Long: `Display recent finished matches and win statistics.
Without a rule set, matches of every rule set are shown.

Examples:
  blindfour history
  blindfour history blindfour_chaos --limit 5
  blindfour history --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded matches instead of showing them")
}

func runHistory(_ *cobra.Command, args []string) {
	gameID, title := "", "All rule sets"
	if len(args) == 1 {
		gameID = args[0]
		game, err := registry.Create(gameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown rule set %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'blindfour list' to see available rule sets.")
			os.Exit(1)
		}
		title = game.Title()
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(historyPath(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			return
		}
		fmt.Printf("Cleared history - %s\n", title)
		return
	}

	records, err := store.RecentResults(gameID, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving history: %v\n", err)
		return
	}

	fmt.Printf("Match History - %s\n", title)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blindfour play' and finish a match to see it here!")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-6s  %-16s  %5s  %s\n", "Date", "Winner", "How", "Moves", "Rules")
	fmt.Printf("  %-16s  %-6s  %-16s  %5s  %s\n", "----", "------", "---", "-----", "-----")

	for _, r := range records {
		winner := "draw"
		if r.Winner != core.PlayerNone {
			winner = r.Winner.String()
		}
		fmt.Printf("  %-16s  %-6s  %-16s  %5d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), winner, r.Reason, r.Moves, r.Rules)
	}

	st, err := store.Stats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Matches: %d   P1: %d   P2: %d   Draws: %d   Avg moves: %.1f\n",
		st.Matches, st.P1Wins, st.P2Wins, st.Draws, st.AvgMoves)

	reasons := make([]string, 0, len(st.ByReason))
	for reason := range st.ByReason {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Printf("  %-16s %d\n", reason, st.ByReason[reason])
	}
}
