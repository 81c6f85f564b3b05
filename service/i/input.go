package i

import (
	"context"

	"github.com/beka-birhanu/mazerun/game"
)

// CommandKind tells what a player command asks for.
type CommandKind int

const (
	CommandMove    CommandKind = iota // Move the player in Direction
	CommandConfirm                    // Start the game, or start a new one once ended
	CommandQuit                       // Leave the application
)

// Command is a single player input.
type Command struct {
	Kind      CommandKind
	Direction game.Direction
}

// InputSource turns raw input events into commands.
type InputSource interface {
	// Listen sends commands until ctx is done or the source is closed.
	Listen(ctx context.Context, commands chan<- Command)
}
