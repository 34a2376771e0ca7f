package manifoldcube

import (
	"testing"
	"time"
)

func TestNewGameDefaults(t *testing.T) {
	g, err := NewGame(WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if g.Cube().Size() != 3 {
		t.Errorf("default size %d, want 3", g.Cube().Size())
	}
	if g.ChaosLevel() != ChaosUneasy {
		t.Errorf("default chaos level %v, want uneasy", g.ChaosLevel())
	}
	if !g.Win().Ultimate {
		t.Error("new game should start solved")
	}
	if g.ChaosEnabled() {
		t.Error("chaos should start disabled")
	}
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	if _, err := NewGame(WithSize(1)); err != ErrInvalidSize {
		t.Errorf("size 1: got %v", err)
	}
	if _, err := NewGame(WithChaosLevel(9)); err != ErrInvalidChaosLevel {
		t.Errorf("chaos 9: got %v", err)
	}
}

func TestGameFlipGoesThroughRefractory(t *testing.T) {
	g, err := NewGame(WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	loc := Location{X: 2, Y: 1, Z: 1, Dir: PosX}

	if status := g.FlipAt(loc); status != FlipApplied {
		t.Fatalf("first flip: %v", status)
	}
	if status := g.FlipAt(loc); status != FlipSuppressed {
		t.Fatalf("immediate second flip: %v, want suppressed", status)
	}

	g.Tick(DefaultRefractoryWindow)
	if status := g.FlipAt(loc); status != FlipApplied {
		t.Fatalf("flip after window: %v, want applied", status)
	}
}

func TestGameWinCallbackFiresOnChange(t *testing.T) {
	g, err := NewGame(WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	var wins []WinState
	g.OnWin(func(w WinState) { wins = append(wins, w) })

	m := Move{Axis: AxisX, Slice: 0, Dir: 1}
	g.Rotate(m)
	if len(wins) != 1 || wins[0].Classic {
		t.Fatalf("breaking the cube should report an unsolved state, got %v", wins)
	}

	g.Rotate(m.Inverse())
	if len(wins) != 2 || !wins[1].Ultimate {
		t.Fatalf("restoring the cube should report the solved state, got %v", wins)
	}
}

func TestGameChaosLifecycle(t *testing.T) {
	g, err := NewGame(WithSeed(42), WithChaosLevel(ChaosFeral))
	if err != nil {
		t.Fatal(err)
	}

	if g.Chain() != nil {
		t.Fatal("chain state should not exist before chaos is enabled")
	}
	g.SetChaos(true)
	if g.Chain() == nil {
		t.Fatal("enabling chaos should create chain state")
	}

	// Seed a flipped pair so the chain has somewhere to start, then run.
	g.FlipAt(Location{X: 2, Y: 1, Z: 1, Dir: PosX})
	flips := 0
	g.OnFlip(func(Location, FlipStatus) { flips++ })

	for i := 0; i < 600; i++ {
		g.Tick(500 * time.Millisecond)
	}

	total := uint32(0)
	g.Cube().ForEachSticker(func(_ Location, s *Sticker) { total += s.FlipCount })
	if total <= 2 {
		t.Error("chaos mode never flipped a tile")
	}

	g.SetChaos(false)
	if g.Chain() != nil {
		t.Error("disabling chaos should discard the chain state")
	}
}

func TestGameChaosDeterministicBySeed(t *testing.T) {
	run := func() string {
		g, err := NewGame(WithSeed(7), WithChaosLevel(ChaosStormy))
		if err != nil {
			t.Fatal(err)
		}
		g.FlipAt(Location{X: 0, Y: 1, Z: 1, Dir: NegX})
		g.SetChaos(true)
		for i := 0; i < 400; i++ {
			g.Tick(time.Second)
		}
		return snapshot(g.Cube())
	}
	if run() != run() {
		t.Error("identical seeds should produce identical chaos runs")
	}
}

func TestGameResetClearsEverything(t *testing.T) {
	g, err := NewGame(WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	g.Scramble(20)
	g.SetChaos(true)
	g.FlipAt(Location{X: 2, Y: 1, Z: 1, Dir: PosX})

	if err := g.Reset(4); err != nil {
		t.Fatal(err)
	}
	if g.Cube().Size() != 4 {
		t.Errorf("size after reset %d, want 4", g.Cube().Size())
	}
	if !g.Win().Ultimate {
		t.Error("reset cube should be solved")
	}
	// Refractory table was cleared wholesale: a fresh flip goes through.
	if status := g.FlipAt(Location{X: 3, Y: 1, Z: 1, Dir: PosX}); status != FlipApplied {
		t.Errorf("flip after reset: %v", status)
	}
}

func TestGameScrambleIsReproducible(t *testing.T) {
	g1, _ := NewGame(WithSeed(9))
	g2, _ := NewGame(WithSeed(9))
	if FormatMoves(g1.Scramble(25)) != FormatMoves(g2.Scramble(25)) {
		t.Error("same-seed games should scramble identically")
	}
	if snapshot(g1.Cube()) != snapshot(g2.Cube()) {
		t.Error("same-seed scrambles should land in the same state")
	}
}
