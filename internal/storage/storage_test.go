package storage

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	return db
}

func TestMigrations(t *testing.T) {
	db := openTestDB(t)

	version, err := db.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("schema version = %d, want %d", version, len(migrations))
	}

	// Running migrations again must be a no-op.
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}
}

func TestGameLifecycle(t *testing.T) {
	db := openTestDB(t)
	games := NewGameRepository(db)

	gameID, err := games.Create(3, 42, 2, "X0 Y1' Z2", "test game", "dev")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if gameID == "" {
		t.Fatal("Create returned empty game ID")
	}

	game, err := games.Get(gameID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if game == nil {
		t.Fatal("Get returned nil for existing game")
	}
	if game.Size != 3 {
		t.Errorf("size = %d, want 3", game.Size)
	}
	if game.Seed != 42 {
		t.Errorf("seed = %d, want 42", game.Seed)
	}
	if game.ChaosLevel != 2 {
		t.Errorf("chaos level = %d, want 2", game.ChaosLevel)
	}
	if game.EndedAt != nil {
		t.Error("new game should not have an end time")
	}

	if err := games.End(gameID); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	game, err = games.Get(gameID)
	if err != nil {
		t.Fatalf("Get after End failed: %v", err)
	}
	if game.EndedAt == nil {
		t.Error("ended game should have an end time")
	}
	if game.DurationMs == nil {
		t.Error("ended game should have a duration")
	}
}

func TestGameGetMissing(t *testing.T) {
	db := openTestDB(t)
	games := NewGameRepository(db)

	game, err := games.Get("no-such-game")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if game != nil {
		t.Error("Get for unknown ID should return nil")
	}
}

func TestGameList(t *testing.T) {
	db := openTestDB(t)
	games := NewGameRepository(db)

	ids := make([]string, 3)
	for i := range ids {
		id, err := games.Create(3, int64(i), 1, "", "", "")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids[i] = id
	}

	list, err := games.List(10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("List returned %d games, want 3", len(list))
	}

	list, err = games.List(2)
	if err != nil {
		t.Fatalf("List with limit failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("List with limit 2 returned %d games", len(list))
	}
}

func TestEventRecording(t *testing.T) {
	db := openTestDB(t)
	games := NewGameRepository(db)
	events := NewEventRepository(db)

	gameID, err := games.Create(3, 7, 1, "", "", "")
	if err != nil {
		t.Fatalf("Create game failed: %v", err)
	}

	recorded := []struct {
		ts      int64
		kind    string
		payload string
	}{
		{100, EventRotate, `{"axis":0,"slice":1,"dir":1}`},
		{250, EventFlip, `{"id":"M1-005","status":"applied"}`},
		{400, EventChain, `{"from":"M1-005","to":"M1-006"}`},
		{900, EventWin, `{"kind":"classic"}`},
	}
	for _, rec := range recorded {
		if _, err := events.Create(gameID, rec.ts, rec.kind, rec.payload); err != nil {
			t.Fatalf("Create event failed: %v", err)
		}
	}

	all, err := events.GetByGame(gameID)
	if err != nil {
		t.Fatalf("GetByGame failed: %v", err)
	}
	if len(all) != len(recorded) {
		t.Fatalf("GetByGame returned %d events, want %d", len(all), len(recorded))
	}
	for i, e := range all {
		if e.TsMs != recorded[i].ts {
			t.Errorf("event %d ts = %d, want %d", i, e.TsMs, recorded[i].ts)
		}
		if e.EventType != recorded[i].kind {
			t.Errorf("event %d type = %q, want %q", i, e.EventType, recorded[i].kind)
		}
	}

	flips, err := events.GetByType(gameID, EventFlip)
	if err != nil {
		t.Fatalf("GetByType failed: %v", err)
	}
	if len(flips) != 1 {
		t.Fatalf("GetByType returned %d flip events, want 1", len(flips))
	}
	if flips[0].PayloadJSON != recorded[1].payload {
		t.Errorf("flip payload = %q, want %q", flips[0].PayloadJSON, recorded[1].payload)
	}

	count, err := events.Count(gameID)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != len(recorded) {
		t.Errorf("Count = %d, want %d", count, len(recorded))
	}
}

func TestWinRecords(t *testing.T) {
	db := openTestDB(t)
	games := NewGameRepository(db)
	wins := NewWinRepository(db)

	gameID, err := games.Create(2, 1, 3, "", "", "")
	if err != nil {
		t.Fatalf("Create game failed: %v", err)
	}

	if _, err := wins.Create(gameID, 1200, "sudokube"); err != nil {
		t.Fatalf("Create win failed: %v", err)
	}
	if _, err := wins.Create(gameID, 3400, "classic"); err != nil {
		t.Fatalf("Create win failed: %v", err)
	}

	got, err := wins.GetByGame(gameID)
	if err != nil {
		t.Fatalf("GetByGame failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByGame returned %d wins, want 2", len(got))
	}
	if got[0].Kind != "sudokube" || got[1].Kind != "classic" {
		t.Errorf("wins out of order: %q, %q", got[0].Kind, got[1].Kind)
	}
}
