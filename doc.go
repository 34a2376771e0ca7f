// Package manifoldcube implements an N×N×N twisty puzzle whose stickers
// are paired by a fixed antipodal identification: every sticker has a
// topological twin on the involution-paired face, and flipping one
// always flips both.
//
// # Quick Start
//
// Drive a game from a host loop:
//
//	game, err := manifoldcube.NewGame(
//	    manifoldcube.WithSize(3),
//	    manifoldcube.WithSeed(42),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	game.Rotate(manifoldcube.Move{Axis: manifoldcube.AxisY, Slice: 0, Dir: 1})
//	game.FlipAt(manifoldcube.Location{X: 2, Y: 1, Z: 1, Dir: manifoldcube.PosX})
//
//	game.SetChaos(true)
//	for _, ev := range game.Tick(16 * time.Millisecond) {
//	    animate(ev.From, ev.To)
//	}
//
//	fmt.Println(game.Win().Classic)
//
// # Model
//
// The cube is an arena of cubies addressed by position. Each shell cubie
// face carries a Sticker whose original position and direction are its
// permanent identity; the manifold grid id derived from that identity is
// invariant under all rotations and is what links a sticker to its
// antipodal twin.
//
// All operations are synchronous and non-blocking. Time-based behavior
// (refractory windows, chaos tick periods, chain cooldowns) advances
// only through explicit Tick(dt) calls, and every probabilistic choice
// draws from a seeded RNG, so simulations replay deterministically.
package manifoldcube
