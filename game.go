package manifoldcube

import (
	"time"

	"github.com/hexwild/manifoldcube/pkg/rng"
)

// Game bundles a cube with the shared refractory gate, the chaos chain,
// and a seeded RNG, and exposes the intent surface a host loop drives:
// Rotate and FlipAt on user input, Tick every frame. The engine is
// single-threaded and cooperative; a multi-threaded host must treat a
// Game as one atomically-swapped unit.
type Game struct {
	cube       *Cube
	refractory *RefractoryTable
	chain      *ChainState
	rng        *rng.RNG
	seed       int64

	chaosLevel ChaosLevel
	chaosOn    bool
	window     time.Duration

	lastWin WinState

	onFlip  func(Location, FlipStatus)
	onChain func(ChainEvent)
	onWin   func(WinState)
}

// NewGame creates a game with a solved cube.
func NewGame(opts ...Option) (*Game, error) {
	cfg := defaultGameConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.chaosLevel.Valid() {
		return nil, ErrInvalidChaosLevel
	}

	cube, err := NewCube(cfg.size)
	if err != nil {
		return nil, err
	}

	seed := cfg.seed
	if !cfg.seedSet {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cube:       cube,
		refractory: NewRefractoryTable(cfg.refractoryWindow),
		rng:        rng.New(seed),
		seed:       seed,
		chaosLevel: cfg.chaosLevel,
		window:     cfg.refractoryWindow,
	}
	g.lastWin = cube.Win()
	return g, nil
}

// Cube exposes the underlying cube for inspection and rendering.
func (g *Game) Cube() *Cube {
	return g.cube
}

// Seed returns the seed the game's RNG was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// OnFlip sets a callback fired after every flip attempt.
func (g *Game) OnFlip(cb func(Location, FlipStatus)) {
	g.onFlip = cb
}

// OnChain sets a callback fired for every chaos propagation event.
func (g *Game) OnChain(cb func(ChainEvent)) {
	g.onChain = cb
}

// OnWin sets a callback fired whenever the win state changes.
func (g *Game) OnWin(cb func(WinState)) {
	g.onWin = cb
}

// Rotate applies a slice turn and reports whether it was applied.
func (g *Game) Rotate(m Move) bool {
	applied := g.cube.Apply(m)
	if applied {
		g.checkWin()
	}
	return applied
}

// FlipAt attempts a paired flip at the given current location. Both
// manual flips and chaos flips go through the same refractory gate.
func (g *Game) FlipAt(loc Location) FlipStatus {
	status := g.cube.Flip(loc, g.refractory)
	if g.onFlip != nil {
		g.onFlip(loc, status)
	}
	if status.Applied() {
		g.checkWin()
	}
	return status
}

// SetChaos enables or disables chaos mode. Disabling discards the chain
// state immediately; no partial flip is ever left behind because flips
// are atomic.
func (g *Game) SetChaos(on bool) {
	if on == g.chaosOn {
		return
	}
	g.chaosOn = on
	if on {
		g.chain = NewChainState()
	} else {
		g.chain = nil
	}
}

// ChaosEnabled reports whether chaos mode is on.
func (g *Game) ChaosEnabled() bool {
	return g.chaosOn
}

// SetChaosLevel changes the cascade aggressiveness. Invalid levels are
// ignored.
func (g *Game) SetChaosLevel(level ChaosLevel) {
	if level.Valid() {
		g.chaosLevel = level
	}
}

// ChaosLevel returns the current cascade level.
func (g *Game) ChaosLevel() ChaosLevel {
	return g.chaosLevel
}

// Chain exposes the live chain state, nil while chaos is off.
func (g *Game) Chain() *ChainState {
	return g.chain
}

// Tick advances all time-based behavior by dt: the refractory clock
// always, the chaos chain when enabled. Returned events are the chain's
// propagation steps during this tick, for the host to animate.
func (g *Game) Tick(dt time.Duration) []ChainEvent {
	g.refractory.Advance(dt)
	if !g.chaosOn {
		return nil
	}

	events := g.cube.TickChaos(g.chain, g.refractory, g.chaosLevel, dt, g.rng)
	if g.onChain != nil {
		for _, ev := range events {
			g.onChain(ev)
		}
	}
	if len(events) > 0 || g.chain.Active != nil {
		g.checkWin()
	}
	return events
}

// Win returns the current solved-state predicates.
func (g *Game) Win() WinState {
	return g.cube.Win()
}

// Scramble replaces the cube position with a scrambled one using the
// game's RNG and clears the refractory table wholesale.
func (g *Game) Scramble(count int) []Move {
	moves := g.cube.Scramble(g.rng, count)
	g.refractory.Reset()
	g.lastWin = g.cube.Win()
	return moves
}

// Reset replaces the cube with a solved one of the given size and
// clears the refractory table and chain state.
func (g *Game) Reset(size int) error {
	cube, err := NewCube(size)
	if err != nil {
		return err
	}
	g.cube = cube
	g.refractory = NewRefractoryTable(g.window)
	if g.chaosOn {
		g.chain = NewChainState()
	}
	g.lastWin = cube.Win()
	return nil
}

func (g *Game) checkWin() {
	w := g.cube.Win()
	if w != g.lastWin {
		g.lastWin = w
		if g.onWin != nil {
			g.onWin(w)
		}
	}
}
