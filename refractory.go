package manifoldcube

import "time"

// DefaultRefractoryWindow is how long a freshly flipped sticker stays
// protected from further flips.
const DefaultRefractoryWindow = 7 * time.Second

// RefractoryTable is the per-sticker cooldown gate shared by manual and
// chaos-driven flips. Keys are current locations; entries expire after
// the window. Time is a simple accumulator advanced by the host, so the
// table never reads a wall clock.
type RefractoryTable struct {
	window time.Duration
	now    time.Duration
	stamps map[Location]time.Duration
}

// NewRefractoryTable creates a table with the given window. A window of
// zero or less falls back to DefaultRefractoryWindow.
func NewRefractoryTable(window time.Duration) *RefractoryTable {
	if window <= 0 {
		window = DefaultRefractoryWindow
	}
	return &RefractoryTable{
		window: window,
		stamps: make(map[Location]time.Duration),
	}
}

// Window returns the refractory window.
func (t *RefractoryTable) Window() time.Duration {
	return t.window
}

// Advance moves the table's clock forward and drops expired entries.
func (t *RefractoryTable) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	t.now += dt
	for loc, stamp := range t.stamps {
		if t.now-stamp >= t.window {
			delete(t.stamps, loc)
		}
	}
}

// Allows reports whether a flip at loc is currently permitted.
func (t *RefractoryTable) Allows(loc Location) bool {
	stamp, ok := t.stamps[loc]
	if !ok {
		return true
	}
	return t.now-stamp >= t.window
}

// Stamp records a successful flip at loc.
func (t *RefractoryTable) Stamp(loc Location) {
	t.stamps[loc] = t.now
}

// Reset clears every entry. Called wholesale on reset, shuffle, and
// resize.
func (t *RefractoryTable) Reset() {
	t.stamps = make(map[Location]time.Duration)
}
