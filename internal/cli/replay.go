package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexwild/manifoldcube"
	"github.com/hexwild/manifoldcube/internal/recorder"
	"github.com/hexwild/manifoldcube/internal/storage"
)

var replayLast bool

var replayCmd = &cobra.Command{
	Use:   "replay [game-id]",
	Short: "Replay a recorded game",
	Long: `Re-drive a recorded game against a fresh cube and print the
resulting state: first the scramble stored with the game, then every
recorded rotation and flip. Flips suppressed by the refractory gate in
the original run are skipped, so the replayed state matches the state
the game ended in.

Use --last to replay the most recent game.`,
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the most recent game")
}

// replayStats counts what a replay applied.
type replayStats struct {
	ScrambleMoves int
	Rotations     int
	Flips         int
	Skipped       int
}

// replayGame rebuilds the cube a recorded game ended in.
func replayGame(db *storage.DB, game *storage.Game, trace io.Writer) (*manifoldcube.Cube, replayStats, error) {
	cube, err := manifoldcube.NewCube(game.Size)
	if err != nil {
		return nil, replayStats{}, err
	}
	stats, err := replayInto(cube, db, game, trace)
	return cube, stats, err
}

// replayInto re-drives a recorded game against cube: the scramble stored
// in the game row first (it ran before the first event was recorded),
// then the event stream in timestamp order.
func replayInto(cube *manifoldcube.Cube, db *storage.DB, game *storage.Game, trace io.Writer) (replayStats, error) {
	var stats replayStats

	if game.ScrambleText != nil && *game.ScrambleText != "" {
		moves := manifoldcube.ParseMoves(*game.ScrambleText)
		stats.ScrambleMoves = cube.ApplyMoves(moves)
		if trace != nil {
			fmt.Fprintf(trace, "scramble  %s\n", manifoldcube.FormatMoves(moves))
		}
	}

	events, err := storage.NewEventRepository(db).GetByGame(game.GameID)
	if err != nil {
		return stats, fmt.Errorf("failed to get events: %w", err)
	}

	for _, e := range events {
		switch e.EventType {
		case storage.EventRotate:
			var p recorder.RotatePayload
			if err := json.Unmarshal([]byte(e.PayloadJSON), &p); err != nil {
				stats.Skipped++
				continue
			}
			mv, err := manifoldcube.ParseMove(p.Notation)
			if err != nil {
				stats.Skipped++
				continue
			}
			if cube.Apply(mv) {
				stats.Rotations++
				if trace != nil {
					fmt.Fprintf(trace, "%8dms  rotate %s\n", e.TsMs, mv.Notation())
				}
			}

		case storage.EventFlip:
			var p recorder.FlipPayload
			if err := json.Unmarshal([]byte(e.PayloadJSON), &p); err != nil {
				stats.Skipped++
				continue
			}
			if p.Status != "applied" {
				continue
			}
			if replayFlip(cube, p.ID) {
				stats.Flips++
				if trace != nil {
					fmt.Fprintf(trace, "%8dms  flip %s\n", e.TsMs, p.ID)
				}
			} else {
				stats.Skipped++
			}

		case storage.EventChain:
			var p recorder.ChainPayload
			if err := json.Unmarshal([]byte(e.PayloadJSON), &p); err != nil {
				stats.Skipped++
				continue
			}
			if !p.Applied {
				continue
			}
			if replayFlip(cube, p.From) {
				stats.Flips++
				if trace != nil {
					fmt.Fprintf(trace, "%8dms  chain %s -> %s\n", e.TsMs, p.From, p.To)
				}
			} else {
				stats.Skipped++
			}
		}
	}

	return stats, nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	showLast = replayLast
	gameID, err := resolveGameID(db, args)
	if err != nil {
		return err
	}

	game, err := storage.NewGameRepository(db).Get(gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return fmt.Errorf("game not found: %s", gameID)
	}

	var trace io.Writer
	if verbose {
		trace = os.Stdout
	}
	cube, stats, err := replayGame(db, game, trace)
	if err != nil {
		return err
	}

	fmt.Printf("Replayed game %s (size %d)\n", gameID, game.Size)
	if stats.ScrambleMoves > 0 {
		fmt.Printf("Applied %d scramble moves, ", stats.ScrambleMoves)
	} else {
		fmt.Printf("Applied ")
	}
	fmt.Printf("%d rotations and %d flips", stats.Rotations, stats.Flips)
	if stats.Skipped > 0 {
		fmt.Printf(", skipped %d malformed events", stats.Skipped)
	}
	fmt.Println()
	fmt.Println()
	fmt.Println(cube.String())

	win := cube.Win()
	fmt.Printf("Win state: classic=%v sudokube=%v ultimate=%v\n",
		win.Classic, win.Sudokube, win.Ultimate)

	return nil
}

// replayFlip flips the tile behind a grid ID, bypassing the refractory
// gate since the recording already reflects it.
func replayFlip(cube *manifoldcube.Cube, id string) bool {
	loc, ok := cube.Resolve(id)
	if !ok {
		return false
	}
	return cube.Flip(loc, nil).Applied()
}
