package storage

import (
	"fmt"
)

// Event types recorded during a game.
const (
	EventRotate = "rotate"
	EventFlip   = "flip"
	EventChain  = "chain"
	EventWin    = "win"
)

// Event represents a recorded engine event in the database.
type Event struct {
	EventID     int64
	GameID      string
	TsMs        int64
	EventType   string
	PayloadJSON string
}

// EventRepository provides CRUD operations for events.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event and returns its ID.
func (r *EventRepository) Create(gameID string, tsMs int64, eventType, payloadJSON string) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO events (game_id, ts_ms, event_type, payload_json)
		VALUES (?, ?, ?, ?)
	`, gameID, tsMs, eventType, payloadJSON)

	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get event ID: %w", err)
	}

	return id, nil
}

// GetByGame retrieves all events for a game, ordered by timestamp.
func (r *EventRepository) GetByGame(gameID string) ([]Event, error) {
	return r.query(`
		SELECT event_id, game_id, ts_ms, event_type, payload_json
		FROM events
		WHERE game_id = ?
		ORDER BY ts_ms, event_id
	`, gameID)
}

// GetByType retrieves all events of a specific type for a game.
func (r *EventRepository) GetByType(gameID, eventType string) ([]Event, error) {
	return r.query(`
		SELECT event_id, game_id, ts_ms, event_type, payload_json
		FROM events
		WHERE game_id = ? AND event_type = ?
		ORDER BY ts_ms, event_id
	`, gameID, eventType)
}

// Count returns the number of events for a game.
func (r *EventRepository) Count(gameID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM events WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (r *EventRepository) query(q string, args ...any) ([]Event, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.EventID, &e.GameID, &e.TsMs, &e.EventType, &e.PayloadJSON); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	return events, nil
}

// WinRecord marks the moment a win predicate was first satisfied.
type WinRecord struct {
	WinID  int64
	GameID string
	TsMs   int64
	Kind   string
}

// WinRepository provides CRUD operations for win records.
type WinRepository struct {
	db *DB
}

// NewWinRepository creates a new win repository.
func NewWinRepository(db *DB) *WinRepository {
	return &WinRepository{db: db}
}

// Create records a win.
func (r *WinRepository) Create(gameID string, tsMs int64, kind string) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO wins (game_id, ts_ms, kind) VALUES (?, ?, ?)
	`, gameID, tsMs, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to create win: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get win ID: %w", err)
	}
	return id, nil
}

// GetByGame retrieves all wins for a game, ordered by timestamp.
func (r *WinRepository) GetByGame(gameID string) ([]WinRecord, error) {
	rows, err := r.db.Query(`
		SELECT win_id, game_id, ts_ms, kind FROM wins
		WHERE game_id = ? ORDER BY ts_ms
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wins: %w", err)
	}
	defer rows.Close()

	var wins []WinRecord
	for rows.Next() {
		var w WinRecord
		if err := rows.Scan(&w.WinID, &w.GameID, &w.TsMs, &w.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan win: %w", err)
		}
		wins = append(wins, w)
	}

	return wins, nil
}
