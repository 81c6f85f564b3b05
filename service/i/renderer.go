package i

import "github.com/beka-birhanu/mazerun/game"

// Renderer draws session snapshots.
type Renderer interface {
	Render(game.Snapshot) error
}
