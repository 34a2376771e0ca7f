package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LogEventType identifies the type of logged event
type LogEventType string

const (
	LogEventKeyPress LogEventType = "key_press"
	LogEventRotate   LogEventType = "rotate"
	LogEventFlip     LogEventType = "flip"
	LogEventChain    LogEventType = "chain"
	LogEventWin      LogEventType = "win"
)

// LogEvent represents a single logged event
type LogEvent struct {
	Timestamp   time.Time    `json:"timestamp"`
	ElapsedMs   int64        `json:"elapsed_ms"`
	EventType   LogEventType `json:"event_type"`
	KeyPress    string       `json:"key_press,omitempty"`
	Description string       `json:"description,omitempty"`
}

// GameLogger writes a JSONL trace of events during an interactive game.
type GameLogger struct {
	startTime time.Time
	file      *os.File
	enabled   bool
}

// NewGameLogger creates a new logger
func NewGameLogger() *GameLogger {
	return &GameLogger{
		enabled: false,
	}
}

// Start begins logging to a file
func (l *GameLogger) Start(logDir string) error {
	// Create log directory if needed
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create log file with timestamp
	filename := fmt.Sprintf("game_%s.jsonl", time.Now().Format("20060102_150405"))
	path := filepath.Join(logDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	l.file = file
	l.startTime = time.Now()
	l.enabled = true

	// Write header
	header := map[string]interface{}{
		"version":    "1.0",
		"created_at": l.startTime,
		"type":       "header",
	}
	return l.writeJSON(header)
}

// LogKeyPress logs a key press
func (l *GameLogger) LogKeyPress(key string) {
	if !l.enabled || l.file == nil {
		return
	}

	l.writeJSON(LogEvent{
		Timestamp: time.Now(),
		ElapsedMs: time.Since(l.startTime).Milliseconds(),
		EventType: LogEventKeyPress,
		KeyPress:  key,
	})
}

// LogEvent logs a game event with a description.
func (l *GameLogger) LogEvent(eventType LogEventType, description string) {
	if !l.enabled || l.file == nil {
		return
	}

	l.writeJSON(LogEvent{
		Timestamp:   time.Now(),
		ElapsedMs:   time.Since(l.startTime).Milliseconds(),
		EventType:   eventType,
		Description: description,
	})
}

// FilePath returns the log file path.
func (l *GameLogger) FilePath() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

// Close finishes the log file.
func (l *GameLogger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.enabled = false
	return err
}

func (l *GameLogger) writeJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}
