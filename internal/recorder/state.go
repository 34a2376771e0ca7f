// Package recorder manages game recording sessions.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppState represents the persistent application state.
type AppState struct {
	DBPath         string `json:"db_path"`
	ActiveGameID   string `json:"active_game_id,omitempty"`
	LastSize       int    `json:"last_size,omitempty"`
	LastChaosLevel int    `json:"last_chaos_level,omitempty"`
}

// StateFile manages the application state file.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".manifoldcube")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(dir, "state.json"), nil
}

// NewStateFile creates a new state file manager.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}

	// Try to load existing state
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return sf, nil
}

// NewDefaultStateFile creates a state file manager with the default path.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

// Load loads the state from disk.
func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &sf.state)
}

// Save saves the state to disk.
func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// State returns the current state.
func (sf *StateFile) State() AppState {
	return sf.state
}

// SetDBPath sets the database path.
func (sf *StateFile) SetDBPath(path string) error {
	sf.state.DBPath = path
	return sf.Save()
}

// SetActiveGame sets the active game ID.
func (sf *StateFile) SetActiveGame(gameID string) error {
	sf.state.ActiveGameID = gameID
	return sf.Save()
}

// ClearActiveGame clears the active game ID.
func (sf *StateFile) ClearActiveGame() error {
	sf.state.ActiveGameID = ""
	return sf.Save()
}

// SetLastConfig records the most recently used cube size and chaos level.
func (sf *StateFile) SetLastConfig(size, chaosLevel int) error {
	sf.state.LastSize = size
	sf.state.LastChaosLevel = chaosLevel
	return sf.Save()
}

// HasActiveGame returns true if there is an active game.
func (sf *StateFile) HasActiveGame() bool {
	return sf.state.ActiveGameID != ""
}

// ActiveGameID returns the active game ID.
func (sf *StateFile) ActiveGameID() string {
	return sf.state.ActiveGameID
}

// DBPath returns the database path.
func (sf *StateFile) DBPath() string {
	return sf.state.DBPath
}
