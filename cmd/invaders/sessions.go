package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagSessionsLimit int
	flagBrowse        bool
	flagClear         bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [game]",
	Short: "Show recorded play sessions",
	Long: `Display the most recent play sessions and totals for a game.

Examples:
  invaders sessions
  invaders sessions --limit 50
  invaders sessions --browse      # interactive table
  invaders sessions --clear       # delete the history of a game`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSessions,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML. Save it to
~/.invaders/configs/invaders.yaml or pass it with --config to customize.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Stdout.Write(config.GetDefaultYAML(gameArg(nil)))
	},
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionsLimit, "limit", 10, "Number of sessions to show")
	sessionsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse sessions in an interactive table")
	sessionsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all sessions of the game")
}

func runSessions(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'invaders list' to see available games.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all %s sessions.\n", gameID)
		return
	}

	if flagBrowse && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(store, gameID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	records, err := store.RecentSessions(gameID, flagSessionsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sessions - %s\n", game.Title())
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'invaders play %s' to record the first one!\n", gameID)
		return
	}

	fmt.Printf("  %-16s  %-8s  %-12s  %8s  %8s  %6s  %s\n",
		"Date", "Platform", "User", "Ticks", "Overruns", "Shots", "Duration")
	fmt.Printf("  %-16s  %-8s  %-12s  %8s  %8s  %6s  %s\n",
		"----", "--------", "----", "-----", "--------", "-----", "--------")
	for _, r := range records {
		user := r.User
		if user == "" {
			user = "-"
		}
		fmt.Printf("  %-16s  %-8s  %-12s  %8d  %8d  %6d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Platform, user,
			r.Ticks, r.Overruns, r.ShotsFired, r.Duration.Round(100*time.Millisecond))
	}

	totals, err := store.GameTotals(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving totals: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Printf("Total: %d sessions, %d ticks, %d shots, %s played\n",
		totals.Sessions, totals.Ticks, totals.ShotsFired, totals.PlayTime.Round(time.Second))
}
