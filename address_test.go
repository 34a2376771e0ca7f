package manifoldcube

import (
	"testing"

	"github.com/hexwild/manifoldcube/pkg/rng"
)

func TestGridIDInvariantUnderRotations(t *testing.T) {
	c := mustCube(t, 3)

	ids := make(map[*Sticker]string)
	c.ForEachSticker(func(_ Location, s *Sticker) {
		ids[s] = s.GridID(3)
	})

	r := rng.New(7)
	c.Scramble(r, 40)

	c.ForEachSticker(func(_ Location, s *Sticker) {
		if got := s.GridID(3); got != ids[s] {
			t.Errorf("grid id changed under rotation: %s -> %s", ids[s], got)
		}
	})
}

func TestIndexIsBijective(t *testing.T) {
	for _, n := range []int{2, 3, 5} {
		c := mustCube(t, n)
		c.Scramble(rng.New(int64(n)), 25)

		seen := make(map[string]bool)
		c.ForEachSticker(func(loc Location, s *Sticker) {
			id := s.GridID(n)
			if seen[id] {
				t.Fatalf("size %d: duplicate grid id %s", n, id)
			}
			seen[id] = true

			resolved, ok := c.Resolve(id)
			if !ok {
				t.Fatalf("size %d: id %s not in index", n, id)
			}
			if c.StickerAt(resolved) != s {
				t.Fatalf("size %d: id %s resolves to the wrong sticker", n, id)
			}
		})
		if want := 6 * n * n; len(seen) != want {
			t.Errorf("size %d: %d distinct ids, want %d", n, len(seen), want)
		}
	}
}

func TestAntipodalContract(t *testing.T) {
	// The contract must hold for all sizes and reachable states: the twin
	// shares the row/col component and the face components are paired by
	// the involution.
	for _, n := range []int{2, 3, 4, 5} {
		c := mustCube(t, n)
		c.Scramble(rng.New(99), 30)

		c.ForEachSticker(func(_ Location, s *Sticker) {
			twinLoc, ok := c.Resolve(s.AntipodalID(n))
			if !ok {
				t.Fatalf("size %d: antipodal id %s unresolved", n, s.AntipodalID(n))
			}
			twin := c.StickerAt(twinLoc)
			if twin == nil {
				t.Fatalf("size %d: antipodal location %v holds no sticker", n, twinLoc)
			}
			if twin.Grid(n) != s.Grid(n) {
				t.Errorf("size %d: twin row/col %v != %v", n, twin.Grid(n), s.Grid(n))
			}
			if twin.Original != s.Original.Antipode() {
				t.Errorf("size %d: twin face %v, want %v", n, twin.Original, s.Original.Antipode())
			}
			if twin == s {
				t.Errorf("size %d: sticker is its own twin", n)
			}
		})
	}
}

func TestLocationAtInvertsGridCoord(t *testing.T) {
	const n = 4
	c := mustCube(t, n)
	c.ForEachSticker(func(loc Location, _ *Sticker) {
		g := gridCoord(n, loc.X, loc.Y, loc.Z, loc.Dir)
		if got := locationAt(n, loc.Dir, g.Row, g.Col); got != loc {
			t.Errorf("locationAt(gridCoord(%v)) = %v", loc, got)
		}
	})
}

func TestGridIDFormat(t *testing.T) {
	c := mustCube(t, 3)
	s := c.StickerAt(Location{X: 2, Y: 1, Z: 1, Dir: PosX})
	// PosX maps (y=1,z=1) to row 1, col 1 -> cell 5 on face 1.
	if got := s.GridID(3); got != "M1-005" {
		t.Errorf("GridID = %q, want %q", got, "M1-005")
	}
	if got := s.AntipodalID(3); got != "M4-005" {
		t.Errorf("AntipodalID = %q, want %q", got, "M4-005")
	}
}
