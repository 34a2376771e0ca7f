package recorder

import (
	"path/filepath"
	"testing"

	"github.com/hexwild/manifoldcube"
	"github.com/hexwild/manifoldcube/internal/storage"
)

func testSession(t *testing.T) (*Session, *storage.DB, *StateFile) {
	t.Helper()
	dir := t.TempDir()

	db, err := storage.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}

	sf, err := NewStateFile(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("NewStateFile failed: %v", err)
	}

	return NewSession(db, sf), db, sf
}

func TestStateFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")

	sf, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("NewStateFile failed: %v", err)
	}
	if sf.HasActiveGame() {
		t.Error("fresh state file should have no active game")
	}

	if err := sf.SetActiveGame("game-1"); err != nil {
		t.Fatalf("SetActiveGame failed: %v", err)
	}
	if err := sf.SetLastConfig(4, 3); err != nil {
		t.Fatalf("SetLastConfig failed: %v", err)
	}

	reloaded, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !reloaded.HasActiveGame() || reloaded.ActiveGameID() != "game-1" {
		t.Errorf("active game = %q, want game-1", reloaded.ActiveGameID())
	}
	st := reloaded.State()
	if st.LastSize != 4 || st.LastChaosLevel != 3 {
		t.Errorf("last config = (%d, %d), want (4, 3)", st.LastSize, st.LastChaosLevel)
	}

	if err := reloaded.ClearActiveGame(); err != nil {
		t.Fatalf("ClearActiveGame failed: %v", err)
	}
	if reloaded.HasActiveGame() {
		t.Error("active game should be cleared")
	}
}

func TestSessionLifecycle(t *testing.T) {
	s, _, sf := testSession(t)

	if s.State() != StateIdle {
		t.Errorf("initial state = %v, want idle", s.State())
	}

	gameID, err := s.Start(3, 42, 2, "X0 Y1'", "", "dev")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.State() != StateRecording {
		t.Errorf("state = %v, want recording", s.State())
	}
	if sf.ActiveGameID() != gameID {
		t.Errorf("state file active game = %q, want %q", sf.ActiveGameID(), gameID)
	}

	if _, err := s.Start(3, 42, 2, "", "", ""); err == nil {
		t.Error("second Start should fail while recording")
	}

	if err := s.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if s.State() != StateEnded {
		t.Errorf("state = %v, want ended", s.State())
	}
	if sf.HasActiveGame() {
		t.Error("state file should be cleared after End")
	}
}

func TestSessionRecordsEvents(t *testing.T) {
	s, db, _ := testSession(t)

	game, err := manifoldcube.NewGame(manifoldcube.WithSize(3), manifoldcube.WithSeed(7))
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}

	gameID, err := s.Start(3, game.Seed(), 2, "", "", "dev")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Attach(game)

	move := manifoldcube.Move{Axis: manifoldcube.AxisX, Slice: 0, Dir: 1}
	if !game.Rotate(move) {
		t.Fatal("Rotate failed")
	}
	if err := s.RecordRotate(move); err != nil {
		t.Fatalf("RecordRotate failed: %v", err)
	}

	loc := manifoldcube.Location{X: 2, Y: 1, Z: 1, Dir: manifoldcube.PosX}
	status := game.FlipAt(loc)
	if !status.Applied() {
		t.Fatalf("flip status = %v, want applied", status)
	}

	events := storage.NewEventRepository(db)
	rotates, err := events.GetByType(gameID, storage.EventRotate)
	if err != nil {
		t.Fatalf("GetByType failed: %v", err)
	}
	if len(rotates) != 1 {
		t.Fatalf("recorded %d rotate events, want 1", len(rotates))
	}

	flips, err := events.GetByType(gameID, storage.EventFlip)
	if err != nil {
		t.Fatalf("GetByType failed: %v", err)
	}
	if len(flips) != 1 {
		t.Fatalf("recorded %d flip events, want 1", len(flips))
	}
}

func TestSessionResume(t *testing.T) {
	s, db, sf := testSession(t)

	gameID, err := s.Start(3, 1, 1, "", "", "")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Simulate a crash: new session against the same database.
	s2 := NewSession(db, sf)
	if err := s2.Resume(gameID); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if s2.State() != StateRecording {
		t.Errorf("resumed state = %v, want recording", s2.State())
	}
	if s2.GameID() != gameID {
		t.Errorf("resumed game = %q, want %q", s2.GameID(), gameID)
	}

	if err := s2.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if err := s2.Resume(gameID); err == nil {
		t.Error("Resume of an ended game should fail")
	}
}
