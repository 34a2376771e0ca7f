package manifoldcube

// FlipStatus is the outcome of a flip attempt. Nothing here is fatal:
// every non-applied outcome leaves the cube untouched.
type FlipStatus int

const (
	// FlipApplied means the sticker and its antipodal twin were both
	// toggled.
	FlipApplied FlipStatus = iota

	// FlipSuppressed means the target was inside its refractory window.
	FlipSuppressed

	// FlipNotFound means the location holds no sticker.
	FlipNotFound

	// FlipUnresolved means the antipodal address could not be resolved
	// through the manifold index.
	FlipUnresolved
)

func (s FlipStatus) String() string {
	switch s {
	case FlipApplied:
		return "applied"
	case FlipSuppressed:
		return "suppressed"
	case FlipNotFound:
		return "not_found"
	case FlipUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Applied reports whether the flip mutated the cube.
func (s FlipStatus) Applied() bool {
	return s == FlipApplied
}

// Flip toggles the sticker at loc together with its antipodal twin.
// The twin is found by taking the target's rotation-invariant grid id,
// substituting the involution-paired face, and resolving the result
// through the manifold index to a current location.
//
// The operation is atomic: it updates exactly two stickers or none.
// Both stickers get Current replaced by its antipode and FlipCount
// incremented; FlipCount is a history counter, not a parity bit.
//
// rt may be nil to bypass the refractory gate (reset and shuffle paths).
func (c *Cube) Flip(loc Location, rt *RefractoryTable) FlipStatus {
	s := c.StickerAt(loc)
	if s == nil {
		return FlipNotFound
	}

	if rt != nil && !rt.Allows(loc) {
		return FlipSuppressed
	}

	twinLoc, ok := c.Resolve(s.AntipodalID(c.n))
	if !ok {
		return FlipUnresolved
	}
	twin := c.StickerAt(twinLoc)
	if twin == nil {
		return FlipUnresolved
	}

	s.Current = s.Current.Antipode()
	s.FlipCount++
	twin.Current = twin.Current.Antipode()
	twin.FlipCount++

	if rt != nil {
		rt.Stamp(loc)
		rt.Stamp(twinLoc)
	}

	return FlipApplied
}
