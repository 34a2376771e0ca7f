package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hexwild/manifoldcube/internal/analysis"
	"github.com/hexwild/manifoldcube/internal/recorder"
	"github.com/hexwild/manifoldcube/internal/storage"
)

var (
	listLimit int
	showLast  bool
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage recorded games",
	Long:  `Commands for listing and inspecting recorded games.`,
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent games",
	Long:  `Display a list of recent games with basic statistics.`,
	RunE:  runGamesList,
}

var gamesEndCmd = &cobra.Command{
	Use:   "end",
	Short: "End the active game",
	Long: `Finish the game the state file still marks as active, for example
after the TUI was interrupted without quitting cleanly.`,
	RunE: runGamesEnd,
}

var gamesShowCmd = &cobra.Command{
	Use:   "show [game-id]",
	Short: "Show details of a game",
	Long: `Display detailed information about a specific game including
flip totals, chain cascades, and win timings.

Use --last to show the most recent game.`,
	RunE: runGamesShow,
}

func init() {
	rootCmd.AddCommand(gamesCmd)

	gamesCmd.AddCommand(gamesListCmd)
	gamesListCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of games to display")

	gamesCmd.AddCommand(gamesShowCmd)
	gamesShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent game")

	gamesCmd.AddCommand(gamesEndCmd)
}

func runGamesList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	games, err := storage.NewGameRepository(db).List(listLimit)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %4s  %5s  %8s\n", "GAME ID", "STARTED", "SIZE", "CHAOS", "DURATION")
	for _, g := range games {
		duration := "active"
		if g.DurationMs != nil {
			duration = formatDuration(time.Duration(*g.DurationMs) * time.Millisecond)
		}
		fmt.Printf("%-36s  %-20s  %4d  %5d  %8s\n",
			g.GameID,
			g.StartedAt.Format("2006-01-02 15:04:05"),
			g.Size,
			g.ChaosLevel,
			duration,
		)
	}

	return nil
}

func runGamesShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	gameID, err := resolveGameID(db, args)
	if err != nil {
		return err
	}

	summary, err := analysis.Summarize(db, gameID)
	if err != nil {
		return err
	}

	fmt.Printf("Game:        %s\n", summary.GameID)
	fmt.Printf("Started:     %s\n", summary.StartedAt)
	if summary.EndedAt != "" {
		fmt.Printf("Ended:       %s\n", summary.EndedAt)
	}
	if summary.DurationMs > 0 {
		fmt.Printf("Duration:    %s\n", formatDuration(time.Duration(summary.DurationMs)*time.Millisecond))
	}
	fmt.Printf("Size:        %d\n", summary.Size)
	fmt.Printf("Chaos level: %d\n", summary.ChaosLevel)
	fmt.Println()
	fmt.Printf("Rotations:   %d\n", summary.TotalRotations)
	fmt.Printf("Flips:       %d (%d applied, %d suppressed)\n",
		summary.TotalFlips, summary.AppliedFlips, summary.SuppressedFlips)
	fmt.Printf("Chains:      %d cascades, %d events, longest %d\n",
		summary.ChainCount, summary.ChainEvents, summary.LongestChain)
	if summary.FlipsPerMinute > 0 {
		fmt.Printf("Flip rate:   %.1f/min\n", summary.FlipsPerMinute)
	}
	if len(summary.WinKinds) > 0 {
		fmt.Println()
		fmt.Printf("Wins:        %v\n", summary.WinKinds)
		fmt.Printf("First win:   after %s\n", formatDuration(time.Duration(summary.FirstWinMs)*time.Millisecond))
	}

	return nil
}

func runGamesEnd(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return err
	}

	gameID, err := endActiveGame(db, stateFile)
	if err != nil {
		return err
	}

	fmt.Printf("Ended game %s\n", gameID)
	return nil
}

// endActiveGame finishes the game named by the state file and clears it.
func endActiveGame(db *storage.DB, stateFile *recorder.StateFile) (string, error) {
	if !stateFile.HasActiveGame() {
		return "", fmt.Errorf("no active game")
	}
	gameID := stateFile.ActiveGameID()

	session := recorder.NewSession(db, stateFile)
	if err := session.Resume(gameID); err != nil {
		return "", err
	}
	if err := session.End(); err != nil {
		return "", err
	}
	return gameID, nil
}

// resolveGameID picks the game from args or the most recent one with --last.
func resolveGameID(db *storage.DB, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !showLast {
		return "", fmt.Errorf("specify a game ID or use --last")
	}

	games, err := storage.NewGameRepository(db).List(1)
	if err != nil {
		return "", fmt.Errorf("failed to list games: %w", err)
	}
	if len(games) == 0 {
		return "", fmt.Errorf("no games found")
	}
	return games[0].GameID, nil
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
