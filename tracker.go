package manifoldcube

// WinKind names one solved-state predicate for tracking and recording.
type WinKind int

const (
	WinClassic WinKind = iota
	WinSudokube
	WinUltimate

	numWinKinds = 3
)

func (k WinKind) String() string {
	switch k {
	case WinClassic:
		return "classic"
	case WinSudokube:
		return "sudokube"
	case WinUltimate:
		return "ultimate"
	default:
		return "unknown"
	}
}

// Tracker watches a cube and detects the first time each win predicate
// is satisfied. Detection is monotonic: once a predicate has been
// reached it stays reached until Reset, even if later mutations break
// it again.
type Tracker struct {
	cube    *Cube
	reached [numWinKinds]bool
	cb      func(WinKind)
}

// NewTracker creates a tracker over the given cube. Predicates already
// satisfied at creation (a fresh cube is classically solved) count as
// reached without firing the callback.
func NewTracker(cube *Cube) *Tracker {
	t := &Tracker{cube: cube}
	t.mark(cube.Win(), false)
	return t
}

// OnReached sets a callback fired the first time a predicate becomes
// satisfied.
func (t *Tracker) OnReached(cb func(WinKind)) {
	t.cb = cb
}

// Check re-evaluates the predicates and fires the callback for any that
// are newly reached. Hosts call it after mutations.
func (t *Tracker) Check() WinState {
	w := t.cube.Win()
	t.mark(w, true)
	return w
}

// Reached reports whether the predicate has ever been satisfied since
// the last Reset.
func (t *Tracker) Reached(k WinKind) bool {
	if k < 0 || k >= numWinKinds {
		return false
	}
	return t.reached[k]
}

// Reset forgets all reached predicates and re-baselines on the cube's
// current state.
func (t *Tracker) Reset(cube *Cube) {
	t.cube = cube
	t.reached = [numWinKinds]bool{}
	t.mark(cube.Win(), false)
}

func (t *Tracker) mark(w WinState, notify bool) {
	for k, ok := range [numWinKinds]bool{w.Classic, w.Sudokube, w.Ultimate} {
		if !ok || t.reached[k] {
			continue
		}
		t.reached[k] = true
		if notify && t.cb != nil {
			t.cb(WinKind(k))
		}
	}
}
