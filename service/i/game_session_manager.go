package i

import (
	"time"

	"github.com/beka-birhanu/mazerun/game"
)

// GameSession is a single game driven by the session manager.
type GameSession interface {
	// Begin leaves the start screen and starts the simulation.
	Begin() game.State

	// HandleIntent moves the player one tile in the given direction.
	HandleIntent(game.Direction) game.State

	// Advance runs one simulation tick of the given length.
	Advance(time.Duration) game.State

	// CurrentState returns the phase and outcome of the session.
	CurrentState() game.State

	// Snapshot returns a read-only copy of the session for rendering.
	Snapshot() game.Snapshot
}
