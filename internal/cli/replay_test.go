package cli

import (
	"path/filepath"
	"testing"

	"github.com/hexwild/manifoldcube"
	"github.com/hexwild/manifoldcube/internal/recorder"
	"github.com/hexwild/manifoldcube/internal/storage"
)

func testDB(t *testing.T) (*storage.DB, *recorder.StateFile) {
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

	sf, err := recorder.NewStateFile(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("NewStateFile failed: %v", err)
	}
	return db, sf
}

func TestReplayAppliesStoredScramble(t *testing.T) {
	db, sf := testDB(t)

	// The scramble runs before the first event is recorded, so it lives
	// only in the game row. A replay that skips it diverges immediately.
	const scramble = "X0 Y1 Z2' X1"
	session := recorder.NewSession(db, sf)
	gameID, err := session.Start(3, 42, 2, scramble, "", "test")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := session.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	game, err := storage.NewGameRepository(db).Get(gameID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if game == nil {
		t.Fatal("game row missing")
	}

	cube, stats, err := replayGame(db, game, nil)
	if err != nil {
		t.Fatalf("replayGame failed: %v", err)
	}
	if stats.ScrambleMoves != 4 {
		t.Errorf("scramble moves = %d, want 4", stats.ScrambleMoves)
	}

	want, err := manifoldcube.NewCube(3)
	if err != nil {
		t.Fatalf("NewCube failed: %v", err)
	}
	want.ApplyMoves(manifoldcube.ParseMoves(scramble))

	if cube.String() != want.String() {
		t.Errorf("replayed board differs from the scrambled board:\n%s\nwant:\n%s",
			cube.String(), want.String())
	}
	if cube.Win().Classic {
		t.Error("a scrambled game with no events must not replay to a solved cube")
	}
}

func TestResumeSessionRebuildsBoard(t *testing.T) {
	db, sf := testDB(t)

	const scramble = "X0 Z1"
	session := recorder.NewSession(db, sf)
	gameID, err := session.Start(3, 7, 2, scramble, "", "test")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	mv, err := manifoldcube.ParseMove("Y2")
	if err != nil {
		t.Fatalf("ParseMove failed: %v", err)
	}
	if err := session.RecordRotate(mv); err != nil {
		t.Fatalf("RecordRotate failed: %v", err)
	}

	// Drop the session without ending it, as after a crash. The state
	// file still names the game.
	if !sf.HasActiveGame() {
		t.Fatal("state file should still name the active game")
	}

	game, resumed, err := resumeSession(db, sf)
	if err != nil {
		t.Fatalf("resumeSession failed: %v", err)
	}
	if resumed.GameID() != gameID {
		t.Errorf("resumed game = %s, want %s", resumed.GameID(), gameID)
	}

	want, err := manifoldcube.NewCube(3)
	if err != nil {
		t.Fatalf("NewCube failed: %v", err)
	}
	want.ApplyMoves(manifoldcube.ParseMoves(scramble))
	want.Apply(mv)
	if game.Cube().String() != want.String() {
		t.Errorf("resumed board differs from the interrupted board:\n%s\nwant:\n%s",
			game.Cube().String(), want.String())
	}

	// The resumed session records into the same game and ends cleanly.
	if err := resumed.End(); err != nil {
		t.Fatalf("End after resume failed: %v", err)
	}
	row, err := storage.NewGameRepository(db).Get(gameID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if row.EndedAt == nil {
		t.Error("resumed game should be marked ended")
	}
	if sf.HasActiveGame() {
		t.Error("ending should clear the active game from the state file")
	}
}

func TestResumeSessionWithoutActiveGame(t *testing.T) {
	db, sf := testDB(t)
	if _, _, err := resumeSession(db, sf); err == nil {
		t.Error("resume with no active game should fail")
	}
}

func TestEndActiveGameClearsState(t *testing.T) {
	db, sf := testDB(t)

	session := recorder.NewSession(db, sf)
	gameID, err := session.Start(3, 1, 1, "", "", "test")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Crash: the session is never ended.
	ended, err := endActiveGame(db, sf)
	if err != nil {
		t.Fatalf("endActiveGame failed: %v", err)
	}
	if ended != gameID {
		t.Errorf("ended game = %s, want %s", ended, gameID)
	}

	row, err := storage.NewGameRepository(db).Get(gameID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if row.EndedAt == nil {
		t.Error("game row should be marked ended")
	}
	if sf.HasActiveGame() {
		t.Error("state file should no longer name an active game")
	}

	if _, err := endActiveGame(db, sf); err == nil {
		t.Error("ending again should fail with no active game")
	}
}
