package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Game represents a play session in the database.
type Game struct {
	GameID       string
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
	Size         int
	Seed         int64
	ChaosLevel   int
	ScrambleText *string
	Notes        *string
	AppVersion   *string
}

// GameRepository provides CRUD operations for games.
type GameRepository struct {
	db *DB
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create creates a new game and returns its ID.
func (r *GameRepository) Create(size int, seed int64, chaosLevel int, scramble, notes, appVersion string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	var scramblePtr, notesPtr, appVersionPtr *string
	if scramble != "" {
		scramblePtr = &scramble
	}
	if notes != "" {
		notesPtr = &notes
	}
	if appVersion != "" {
		appVersionPtr = &appVersion
	}

	_, err := r.db.Exec(`
		INSERT INTO games (game_id, started_at, size, seed, chaos_level, scramble_text, notes, app_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, startedAt.Format(time.RFC3339), size, seed, chaosLevel, scramblePtr, notesPtr, appVersionPtr)

	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return id, nil
}

// End marks a game as complete.
func (r *GameRepository) End(gameID string) error {
	endedAt := time.Now().UTC()

	var startedAtStr string
	err := r.db.QueryRow("SELECT started_at FROM games WHERE game_id = ?", gameID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get game start time: %w", err)
	}

	startedAt, err := time.Parse(time.RFC3339, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse game start time: %w", err)
	}

	durationMs := endedAt.Sub(startedAt).Milliseconds()

	_, err = r.db.Exec(`
		UPDATE games SET ended_at = ?, duration_ms = ? WHERE game_id = ?
	`, endedAt.Format(time.RFC3339), durationMs, gameID)

	if err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	return nil
}

// Get retrieves a game by ID. Returns nil when not found.
func (r *GameRepository) Get(gameID string) (*Game, error) {
	row := r.db.QueryRow(`
		SELECT game_id, started_at, ended_at, duration_ms, size, seed, chaos_level, scramble_text, notes, app_version
		FROM games WHERE game_id = ?
	`, gameID)

	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}

// List retrieves the most recent games, newest first.
func (r *GameRepository) List(limit int) ([]Game, error) {
	rows, err := r.db.Query(`
		SELECT game_id, started_at, ended_at, duration_ms, size, seed, chaos_level, scramble_text, notes, app_version
		FROM games ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, *g)
	}

	return games, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (*Game, error) {
	var g Game
	var startedAtStr string
	var endedAtStr *string

	err := row.Scan(&g.GameID, &startedAtStr, &endedAtStr, &g.DurationMs, &g.Size, &g.Seed, &g.ChaosLevel, &g.ScrambleText, &g.Notes, &g.AppVersion)
	if err != nil {
		return nil, err
	}

	g.StartedAt, err = time.Parse(time.RFC3339, startedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if endedAtStr != nil {
		t, err := time.Parse(time.RFC3339, *endedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ended_at: %w", err)
		}
		g.EndedAt = &t
	}

	return &g, nil
}
