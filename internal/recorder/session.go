package recorder

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hexwild/manifoldcube"
	"github.com/hexwild/manifoldcube/internal/storage"
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// RotatePayload is the JSON payload stored for rotation events.
type RotatePayload struct {
	Notation string `json:"notation"`
	Axis     int    `json:"axis"`
	Slice    int    `json:"slice"`
	Dir      int    `json:"dir"`
}

// FlipPayload is the JSON payload stored for flip events.
type FlipPayload struct {
	ID     string `json:"id"`
	TwinID string `json:"twin_id"`
	Status string `json:"status"`
}

// ChainPayload is the JSON payload stored for chain propagation events.
type ChainPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Applied bool   `json:"applied"`
}

// WinPayload is the JSON payload stored for win events.
type WinPayload struct {
	Classic  bool `json:"classic"`
	Sudokube bool `json:"sudokube"`
	Ultimate bool `json:"ultimate"`
}

// Session manages a game recording session. It persists every rotation,
// flip, chain event, and win transition so a game can be replayed or
// analyzed later.
type Session struct {
	db        *storage.DB
	stateFile *StateFile

	mu        sync.RWMutex
	state     SessionState
	gameID    string
	startTime time.Time

	gameRepo  *storage.GameRepository
	eventRepo *storage.EventRepository
	winRepo   *storage.WinRepository

	onEvent func(eventType string)
}

// NewSession creates a new session manager.
func NewSession(db *storage.DB, stateFile *StateFile) *Session {
	return &Session{
		db:        db,
		stateFile: stateFile,
		state:     StateIdle,
		gameRepo:  storage.NewGameRepository(db),
		eventRepo: storage.NewEventRepository(db),
		winRepo:   storage.NewWinRepository(db),
	}
}

// SetEventCallback sets the callback fired after each recorded event.
func (s *Session) SetEventCallback(cb func(eventType string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvent = cb
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// GameID returns the current game ID.
func (s *Session) GameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gameID
}

// ElapsedMs returns the elapsed time since game start in milliseconds.
func (s *Session) ElapsedMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRecording {
		return 0
	}
	return time.Since(s.startTime).Milliseconds()
}

// Start starts a new game recording session.
func (s *Session) Start(size int, seed int64, chaosLevel int, scramble, notes, appVersion string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", fmt.Errorf("game already in progress")
	}

	gameID, err := s.gameRepo.Create(size, seed, chaosLevel, scramble, notes, appVersion)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	s.gameID = gameID
	s.startTime = time.Now()
	s.state = StateRecording

	if s.stateFile != nil {
		if err := s.stateFile.SetActiveGame(gameID); err != nil {
			// Non-fatal: recording continues without resume support.
		}
		if err := s.stateFile.SetLastConfig(size, chaosLevel); err != nil {
			// Non-fatal.
		}
	}

	return gameID, nil
}

// End ends the current game recording session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return fmt.Errorf("no game in progress")
	}

	if err := s.gameRepo.End(s.gameID); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	s.state = StateEnded

	if s.stateFile != nil {
		if err := s.stateFile.ClearActiveGame(); err != nil {
			// Non-fatal.
		}
	}

	return nil
}

// Resume attempts to resume an interrupted game.
func (s *Session) Resume(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.gameRepo.Get(gameID)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return fmt.Errorf("game not found: %s", gameID)
	}
	if game.EndedAt != nil {
		return fmt.Errorf("game already ended")
	}

	s.gameID = gameID
	s.startTime = game.StartedAt
	s.state = StateRecording

	return nil
}

// Attach wires the session to a game's callbacks so that flips, chain
// events, and wins are recorded as they happen. Rotations go through
// RecordRotate since the engine reports them synchronously.
func (s *Session) Attach(g *manifoldcube.Game) {
	g.OnFlip(func(loc manifoldcube.Location, status manifoldcube.FlipStatus) {
		s.RecordFlip(g.Cube(), loc, status)
	})
	g.OnChain(func(ev manifoldcube.ChainEvent) {
		s.RecordChain(g.Cube(), ev)
	})
	g.OnWin(func(w manifoldcube.WinState) {
		s.RecordWin(w)
	})
}

// RecordRotate records a slice rotation.
func (s *Session) RecordRotate(m manifoldcube.Move) error {
	payload := RotatePayload{
		Notation: m.Notation(),
		Axis:     int(m.Axis),
		Slice:    m.Slice,
		Dir:      m.Dir,
	}
	return s.record(storage.EventRotate, payload)
}

// RecordFlip records a flip attempt and its outcome.
func (s *Session) RecordFlip(c *manifoldcube.Cube, loc manifoldcube.Location, status manifoldcube.FlipStatus) error {
	payload := FlipPayload{Status: status.String()}
	if st := c.StickerAt(loc); st != nil {
		payload.ID = st.GridID(c.Size())
		payload.TwinID = st.AntipodalID(c.Size())
	}
	return s.record(storage.EventFlip, payload)
}

// RecordChain records a chaos propagation step.
func (s *Session) RecordChain(c *manifoldcube.Cube, ev manifoldcube.ChainEvent) error {
	payload := ChainPayload{Applied: ev.Applied}
	if st := c.StickerAt(ev.From); st != nil {
		payload.From = st.GridID(c.Size())
	}
	if st := c.StickerAt(ev.To); st != nil {
		payload.To = st.GridID(c.Size())
	}
	return s.record(storage.EventChain, payload)
}

// RecordWin records a win-state transition, plus one row in the wins
// table for every predicate that is newly satisfied.
func (s *Session) RecordWin(w manifoldcube.WinState) error {
	if err := s.record(storage.EventWin, WinPayload{
		Classic:  w.Classic,
		Sudokube: w.Sudokube,
		Ultimate: w.Ultimate,
	}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return nil
	}
	tsMs := time.Since(s.startTime).Milliseconds()
	kinds := []struct {
		on   bool
		name string
	}{
		{w.Classic, "classic"},
		{w.Sudokube, "sudokube"},
		{w.Ultimate, "ultimate"},
	}
	for _, k := range kinds {
		if !k.on {
			continue
		}
		if _, err := s.winRepo.Create(s.gameID, tsMs, k.name); err != nil {
			return fmt.Errorf("failed to store win: %w", err)
		}
	}
	return nil
}

func (s *Session) record(eventType string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil // Not recording, ignore
	}

	tsMs := time.Since(s.startTime).Milliseconds()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if _, err := s.eventRepo.Create(s.gameID, tsMs, eventType, string(data)); err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}

	if s.onEvent != nil {
		go s.onEvent(eventType)
	}

	return nil
}
