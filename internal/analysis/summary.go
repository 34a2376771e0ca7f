// Package analysis computes statistics from recorded game events.
package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/hexwild/manifoldcube/internal/storage"
)

// GameSummary contains comprehensive statistics for a single game.
type GameSummary struct {
	GameID          string      `json:"game_id"`
	StartedAt       string      `json:"started_at"`
	EndedAt         string      `json:"ended_at,omitempty"`
	DurationMs      int64       `json:"duration_ms"`
	Size            int         `json:"size"`
	ChaosLevel      int         `json:"chaos_level"`
	TotalRotations  int         `json:"total_rotations"`
	TotalFlips      int         `json:"total_flips"`
	AppliedFlips    int         `json:"applied_flips"`
	SuppressedFlips int         `json:"suppressed_flips"`
	FlipsByFace     map[int]int `json:"flips_by_face,omitempty"`
	ChainEvents     int         `json:"chain_events"`
	ChainCount      int         `json:"chain_count"`
	ChainLengths    []int       `json:"chain_lengths,omitempty"`
	LongestChain    int         `json:"longest_chain"`
	FirstWinMs      int64       `json:"first_win_ms,omitempty"`
	WinKinds        []string    `json:"win_kinds,omitempty"`
	FlipsPerMinute  float64     `json:"flips_per_minute"`
}

// ChainRun describes one contiguous cascade in a recorded game.
type ChainRun struct {
	StartTsMs int64 `json:"start_ts_ms"`
	EndTsMs   int64 `json:"end_ts_ms"`
	Length    int   `json:"length"`
}

type flipPayload struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// faceOfID extracts the face number from a grid ID like "M3-012".
func faceOfID(id string) (int, bool) {
	var face, cell int
	if _, err := fmt.Sscanf(id, "M%d-%03d", &face, &cell); err != nil {
		return 0, false
	}
	if face < 1 || face > 6 {
		return 0, false
	}
	return face, true
}

type chainPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Summarize computes a full summary for a recorded game.
func Summarize(db *storage.DB, gameID string) (*GameSummary, error) {
	games := storage.NewGameRepository(db)
	events := storage.NewEventRepository(db)
	wins := storage.NewWinRepository(db)

	game, err := games.Get(gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}

	summary := &GameSummary{
		GameID:     game.GameID,
		StartedAt:  game.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		Size:       game.Size,
		ChaosLevel: game.ChaosLevel,
	}
	if game.EndedAt != nil {
		summary.EndedAt = game.EndedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	if game.DurationMs != nil {
		summary.DurationMs = *game.DurationMs
	}

	rotations, err := events.GetByType(gameID, storage.EventRotate)
	if err != nil {
		return nil, err
	}
	summary.TotalRotations = len(rotations)

	flips, err := events.GetByType(gameID, storage.EventFlip)
	if err != nil {
		return nil, err
	}
	summary.TotalFlips = len(flips)
	for _, e := range flips {
		var p flipPayload
		if err := json.Unmarshal([]byte(e.PayloadJSON), &p); err != nil {
			continue
		}
		switch p.Status {
		case "applied":
			summary.AppliedFlips++
			if face, ok := faceOfID(p.ID); ok {
				if summary.FlipsByFace == nil {
					summary.FlipsByFace = make(map[int]int)
				}
				summary.FlipsByFace[face]++
			}
		case "suppressed":
			summary.SuppressedFlips++
		}
	}

	chains, err := events.GetByType(gameID, storage.EventChain)
	if err != nil {
		return nil, err
	}
	summary.ChainEvents = len(chains)
	runs := ChainRuns(chains)
	summary.ChainCount = len(runs)
	for _, run := range runs {
		summary.ChainLengths = append(summary.ChainLengths, run.Length)
		if run.Length > summary.LongestChain {
			summary.LongestChain = run.Length
		}
	}

	winRecords, err := wins.GetByGame(gameID)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for i, w := range winRecords {
		if i == 0 {
			summary.FirstWinMs = w.TsMs
		}
		if !seen[w.Kind] {
			seen[w.Kind] = true
			summary.WinKinds = append(summary.WinKinds, w.Kind)
		}
	}

	if summary.DurationMs > 0 {
		summary.FlipsPerMinute = float64(summary.AppliedFlips) / (float64(summary.DurationMs) / 60000.0)
	}

	return summary, nil
}

// ChainRuns groups chain events into contiguous cascades. A single
// chain walks tile to tile, so a new run starts whenever an event's From
// tile is not the previous event's To tile, or right after a terminal
// event (From == To, where the chain died).
func ChainRuns(events []storage.Event) []ChainRun {
	var runs []ChainRun
	var cur *ChainRun
	lastTo := ""
	ended := true

	for _, e := range events {
		var p chainPayload
		if err := json.Unmarshal([]byte(e.PayloadJSON), &p); err != nil {
			continue
		}

		if cur == nil || ended || p.From != lastTo {
			if cur != nil {
				runs = append(runs, *cur)
			}
			cur = &ChainRun{StartTsMs: e.TsMs, EndTsMs: e.TsMs, Length: 1}
		} else {
			cur.EndTsMs = e.TsMs
			cur.Length++
		}
		lastTo = p.To
		ended = p.From == p.To
	}
	if cur != nil {
		runs = append(runs, *cur)
	}

	return runs
}

// FlipRate calculates applied flips per minute over a duration.
func FlipRate(appliedFlips int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(appliedFlips) / (float64(durationMs) / 60000.0)
}
