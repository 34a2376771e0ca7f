package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hexwild/manifoldcube/internal/analysis"
	"github.com/hexwild/manifoldcube/internal/storage"
)

var (
	exportLast   bool
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [game-id]",
	Short: "Export game data as JSON",
	Long: `Export a recorded game, its full event stream, and its computed
summary as a single JSON document.

Examples:
  manifold export --last
  manifold export <game-id> -o game.json`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&exportLast, "last", false, "Export the most recent game")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// exportDoc is the JSON document shape for a full game export.
type exportDoc struct {
	Game    exportGame            `json:"game"`
	Summary *analysis.GameSummary `json:"summary"`
	Events  []exportEvent         `json:"events"`
}

type exportGame struct {
	GameID     string `json:"game_id"`
	StartedAt  string `json:"started_at"`
	EndedAt    string `json:"ended_at,omitempty"`
	Size       int    `json:"size"`
	Seed       int64  `json:"seed"`
	ChaosLevel int    `json:"chaos_level"`
	Scramble   string `json:"scramble,omitempty"`
}

type exportEvent struct {
	TsMs    int64           `json:"ts_ms"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	showLast = exportLast
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

	summary, err := analysis.Summarize(db, gameID)
	if err != nil {
		return err
	}

	events, err := storage.NewEventRepository(db).GetByGame(gameID)
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}

	doc := exportDoc{
		Game: exportGame{
			GameID:     game.GameID,
			StartedAt:  summary.StartedAt,
			EndedAt:    summary.EndedAt,
			Size:       game.Size,
			Seed:       game.Seed,
			ChaosLevel: game.ChaosLevel,
		},
		Summary: summary,
	}
	if game.ScrambleText != nil {
		doc.Game.Scramble = *game.ScrambleText
	}
	for _, e := range events {
		doc.Events = append(doc.Events, exportEvent{
			TsMs:    e.TsMs,
			Type:    e.EventType,
			Payload: json.RawMessage(e.PayloadJSON),
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	data = append(data, '\n')

	if exportOutput == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported to %s\n", exportOutput)
	return nil
}
