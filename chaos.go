package manifoldcube

import (
	"time"

	"github.com/hexwild/manifoldcube/pkg/rng"
)

// ChaosLevel sets how aggressive the cascade simulation is. Higher
// levels tick faster, propagate more eagerly, and cool down sooner.
type ChaosLevel int

const (
	ChaosCalm   ChaosLevel = 1
	ChaosUneasy ChaosLevel = 2
	ChaosStormy ChaosLevel = 3
	ChaosFeral  ChaosLevel = 4
)

// Valid reports whether l is one of the four levels.
func (l ChaosLevel) Valid() bool {
	return l >= ChaosCalm && l <= ChaosFeral
}

func (l ChaosLevel) String() string {
	switch l {
	case ChaosCalm:
		return "calm"
	case ChaosUneasy:
		return "uneasy"
	case ChaosStormy:
		return "stormy"
	case ChaosFeral:
		return "feral"
	default:
		return "unknown"
	}
}

// chaosParams are the per-level cascade tuning knobs.
type chaosParams struct {
	tickPeriod      time.Duration
	baseProbability float64
	strengthDecay   float64
	chainCooldown   time.Duration
}

var chaosLevels = [...]chaosParams{
	ChaosCalm:   {tickPeriod: 4000 * time.Millisecond, baseProbability: 0.25, strengthDecay: 0.70, chainCooldown: 5000 * time.Millisecond},
	ChaosUneasy: {tickPeriod: 2800 * time.Millisecond, baseProbability: 0.35, strengthDecay: 0.78, chainCooldown: 4000 * time.Millisecond},
	ChaosStormy: {tickPeriod: 1800 * time.Millisecond, baseProbability: 0.50, strengthDecay: 0.85, chainCooldown: 3000 * time.Millisecond},
	ChaosFeral:  {tickPeriod: 1000 * time.Millisecond, baseProbability: 0.65, strengthDecay: 0.90, chainCooldown: 2000 * time.Millisecond},
}

// minChainStrength is the strength below which an active chain dies.
const minChainStrength = 0.1

// ChainState is the ephemeral state of the single cascade. It lives only
// while chaos mode is on; disabling chaos discards it.
type ChainState struct {
	// Active is the tile the chain currently sits on, nil when idle.
	Active *Location

	// Strength is the chain's remaining energy, in (0,1].
	Strength float64

	// Cooldown is the time left before the chain may start again.
	Cooldown time.Duration

	elapsed time.Duration
}

// NewChainState returns an idle chain.
func NewChainState() *ChainState {
	return &ChainState{}
}

// Idle reports whether the chain is neither active nor cooling down.
func (cs *ChainState) Idle() bool {
	return cs.Active == nil && cs.Cooldown <= 0
}

// ChainEvent records one propagation step for the host to animate. A
// terminal event has To equal to From: the chain visited that tile and
// died there. Applied reports whether the visit actually flipped the
// tile or was suppressed by the refractory gate.
type ChainEvent struct {
	From    Location
	To      Location
	Applied bool
}

// Terminal reports whether the chain ended on this event's tile.
func (e ChainEvent) Terminal() bool {
	return e.From == e.To
}

// TickChaos advances the cascade simulation by dt. It is the only
// time-driven mutation path in the engine; the host calls it every frame
// with the elapsed time and a seeded RNG, which makes the whole
// simulation deterministic and replayable.
//
// The chain is a state machine: idle until a tick period elapses, then a
// start tile is drawn weighted by flip tally among stickers whose
// current color differs from their original; while active, each tick
// flips the active tile (through the shared refractory gate), decays the
// strength, and hands the chain to the first surface neighbor that
// passes a Bernoulli trial; when the strength dies or no neighbor
// accepts, the chain cools down. At most one chain runs at a time.
//
// An invalid level is a no-op.
func (c *Cube) TickChaos(cs *ChainState, rt *RefractoryTable, level ChaosLevel, dt time.Duration, r *rng.RNG) []ChainEvent {
	if cs == nil || r == nil || !level.Valid() || dt <= 0 {
		return nil
	}
	p := chaosLevels[level]

	if cs.Cooldown > 0 {
		cs.Cooldown -= dt
		if cs.Cooldown < 0 {
			cs.Cooldown = 0
		}
		return nil
	}

	cs.elapsed += dt

	var events []ChainEvent
	for cs.elapsed >= p.tickPeriod {
		cs.elapsed -= p.tickPeriod

		if cs.Active == nil {
			loc, ok := c.pickChainStart(r)
			if !ok {
				continue
			}
			cs.Active = &loc
			cs.Strength = 1.0
			continue
		}

		from := *cs.Active
		applied := c.Flip(from, rt).Applied()
		cs.Strength *= p.strengthDecay

		if cs.Strength < minChainStrength {
			events = append(events, ChainEvent{From: from, To: from, Applied: applied})
			cs.endChain(p)
			break
		}

		next, ok := c.nextChainTile(from, cs.Strength, p.baseProbability, r)
		if !ok {
			events = append(events, ChainEvent{From: from, To: from, Applied: applied})
			cs.endChain(p)
			break
		}
		events = append(events, ChainEvent{From: from, To: next, Applied: applied})
		*cs.Active = next
	}

	return events
}

func (cs *ChainState) endChain(p chaosParams) {
	cs.Active = nil
	cs.Strength = 0
	cs.Cooldown = p.chainCooldown
	cs.elapsed = 0
}

// pickChainStart draws a start tile among all shell stickers whose
// current color differs from their original, weighted by flip tally.
// Iteration order is fixed, so the draw is reproducible.
func (c *Cube) pickChainStart(r *rng.RNG) (Location, bool) {
	type candidate struct {
		loc    Location
		weight uint64
	}
	var cands []candidate
	var total uint64

	c.ForEachSticker(func(loc Location, s *Sticker) {
		if s.Current == s.Original {
			return
		}
		w := uint64(s.FlipCount)
		if w == 0 {
			w = 1
		}
		cands = append(cands, candidate{loc: loc, weight: w})
		total += w
	})

	if total == 0 {
		return Location{}, false
	}

	pick := r.Uint64N(total)
	for _, cand := range cands {
		if pick < cand.weight {
			return cand.loc, true
		}
		pick -= cand.weight
	}
	return cands[len(cands)-1].loc, true
}

// nextChainTile tries the tile's surface neighbors in random order and
// returns the first one that passes its Bernoulli trial. The acceptance
// probability scales with the chain strength, the level's base
// probability, and the neighbor's flip tally (floored at 1, so untouched
// tiles can still catch).
func (c *Cube) nextChainTile(from Location, strength, baseProb float64, r *rng.RNG) (Location, bool) {
	neighbors := c.surfaceNeighbors(from)
	if len(neighbors) == 0 {
		return Location{}, false
	}

	for _, i := range r.Perm(len(neighbors)) {
		nb := neighbors[i]
		s := c.StickerAt(nb)
		if s == nil {
			continue
		}
		tally := float64(s.FlipCount)
		if tally < 1 {
			tally = 1
		}
		p := strength * baseProb * tally
		if p > 1 {
			p = 1
		}
		if r.Float64() < p {
			return nb, true
		}
	}
	return Location{}, false
}

// surfaceNeighbors returns the up-to-four stickers adjacent to loc on
// the cube's surface: the sticker on the laterally adjacent cubie facing
// the same way, or, past a cube edge, the sticker on the same cubie
// facing the lateral direction. This realizes the unfolded-net adjacency
// for every edge crossing.
func (c *Cube) surfaceNeighbors(loc Location) []Location {
	out := make([]Location, 0, 4)
	for _, lat := range Directions {
		if lat == loc.Dir || lat == loc.Dir.Opposite() {
			continue
		}
		dx, dy, dz := lat.Vector()
		nx, ny, nz := loc.X+dx, loc.Y+dy, loc.Z+dz
		if c.inBounds(nx, ny, nz) {
			nb := Location{X: nx, Y: ny, Z: nz, Dir: loc.Dir}
			if c.StickerAt(nb) != nil {
				out = append(out, nb)
			}
			continue
		}
		nb := Location{X: loc.X, Y: loc.Y, Z: loc.Z, Dir: lat}
		if c.StickerAt(nb) != nil {
			out = append(out, nb)
		}
	}
	return out
}
