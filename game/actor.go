package game

// Player is the actor steered by the user.
type Player struct {
	Pos      Position
	Facing   Direction // Last requested direction, kept even when the move was blocked.
	HasKey   bool
	IsOnExit bool // Standing on the exit without the key.
}

// Bot is the antagonist wandering the maze.
type Bot struct {
	Pos       Position
	Direction Direction
	IsOnExit  bool
	IsOnKey   bool
}

// actor is the mover view of a Player or Bot used by attemptMove.
type actor interface {
	position() Position
	tile() Tile
	// restoreTile returns what the vacated tile becomes once the actor leaves it.
	restoreTile() Tile
	// moveTo updates the position and the flags from the tile stepped onto.
	moveTo(p Position, onto Tile)
}

func (p *Player) position() Position { return p.Pos }
func (p *Player) tile() Tile         { return TilePlayer }

func (p *Player) restoreTile() Tile {
	if p.IsOnExit {
		return TileExit
	}
	return TileFloor
}

func (p *Player) moveTo(pos Position, onto Tile) {
	p.Pos = pos
	p.IsOnExit = onto == TileExit
	if onto == TileKey {
		p.HasKey = true
	}
}

func (b *Bot) position() Position { return b.Pos }
func (b *Bot) tile() Tile         { return TileBot }

func (b *Bot) restoreTile() Tile {
	switch {
	case b.IsOnExit:
		return TileExit
	case b.IsOnKey:
		return TileKey
	default:
		return TileFloor
	}
}

func (b *Bot) moveTo(pos Position, onto Tile) {
	b.Pos = pos
	b.IsOnExit = onto == TileExit
	b.IsOnKey = onto == TileKey
}
