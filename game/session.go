package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Session-related errors.
var (
	ErrNotBigEnoughDimension = errors.New("dimension is not big enough")
	ErrTooBigDimension       = errors.New("dimension is too big")
	ErrMissingLayout         = errors.New("no maze layout provided")
	ErrInvalidLayout         = errors.New("layout must hold exactly one player, bot, exit and key")
	ErrNoFreeTile            = errors.New("no free floor tile left")
)

const (
	minDimension = 2  // Minimum maze dimension in cells (width or height).
	maxDimension = 64 // Maximum maze dimension in cells (width or height).
)

// LayoutFunc builds the initial tile grid of a width x height cell maze.
type LayoutFunc func(width, height int, rng *rand.Rand) *Grid

// SessionConfig describes how to build a session.
type SessionConfig struct {
	Width  int        // Maze width in cells
	Height int        // Maze height in cells
	Seed   int64      // Seed for generation and bot choices (0 = time based)
	Rand   *rand.Rand // Overrides Seed when set
	Layout LayoutFunc // Maze generator
	Bot    BotConfig  // Bot timings
}

// Session is one game: a maze, a player, a bot and the rules binding them.
// It is not safe for concurrent use; a single driver owns it.
type Session struct {
	ID     uuid.UUID
	grid   *Grid
	player *Player
	bot    *Bot
	policy *BotPolicy
	state  State
}

// Snapshot is a read-only copy of a session for renderers.
type Snapshot struct {
	ID           uuid.UUID
	Grid         *Grid
	Player       Player
	Bot          Bot
	State        State
	StepInterval time.Duration
}

// NewSession generates a maze and seeds it with the player at the entry, the
// exit in the far corner, and the bot and key on random floor tiles.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Width < minDimension || cfg.Height < minDimension {
		return nil, ErrNotBigEnoughDimension
	}
	if cfg.Width > maxDimension || cfg.Height > maxDimension {
		return nil, ErrTooBigDimension
	}
	if cfg.Layout == nil {
		return nil, ErrMissingLayout
	}

	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	grid := cfg.Layout(cfg.Width, cfg.Height, rng)

	grid.Set(1, 1, TilePlayer)
	grid.Set(grid.Width()-2, grid.Height()-2, TileExit)
	for _, t := range []Tile{TileBot, TileKey} {
		pos, err := randomFloor(grid, rng)
		if err != nil {
			return nil, fmt.Errorf("placing %s: %w", t, err)
		}
		grid.Set(pos.X, pos.Y, t)
	}

	return newSession(grid, cfg.Bot, rng)
}

// NewSessionFromGrid starts a session on a prepared grid holding exactly one
// player, bot, exit and key tile. The grid is copied.
func NewSessionFromGrid(grid *Grid, bot BotConfig, rng *rand.Rand) (*Session, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return newSession(grid.Clone(), bot, rng)
}

func newSession(grid *Grid, botCfg BotConfig, rng *rand.Rand) (*Session, error) {
	for _, t := range []Tile{TilePlayer, TileBot, TileExit, TileKey} {
		if grid.Count(t) != 1 {
			return nil, fmt.Errorf("%w: found %d %s tiles", ErrInvalidLayout, grid.Count(t), t)
		}
	}

	policy := NewBotPolicy(botCfg, rng)
	return &Session{
		ID:     uuid.New(),
		grid:   grid,
		player: &Player{Pos: grid.Positions(TilePlayer)[0], Facing: Right},
		bot:    &Bot{Pos: grid.Positions(TileBot)[0], Direction: policy.RandomDirection()},
		policy: policy,
		state:  State{Phase: PhaseStart},
	}, nil
}

// randomFloor picks a uniformly random floor tile.
func randomFloor(grid *Grid, rng *rand.Rand) (Position, error) {
	free := grid.Positions(TileFloor)
	if len(free) == 0 {
		return Position{}, ErrNoFreeTile
	}
	return free[rng.Intn(len(free))], nil
}

// Begin moves the session from Start to Playing. It does nothing in any other phase.
func (s *Session) Begin() State {
	if s.state.Phase == PhaseStart {
		s.state.Phase = PhasePlaying
	}
	return s.state
}

// HandleIntent applies a player move one tile in direction d.
func (s *Session) HandleIntent(d Direction) State {
	if s.state.Phase != PhasePlaying {
		return s.state
	}

	s.player.Facing = d
	s.attemptMove(s.player, s.player.Pos.Step(d))
	return s.state
}

// Advance runs one simulation tick of length tick. The bot looks for the
// player on every tick and moves whenever its step timer runs out.
func (s *Session) Advance(tick time.Duration) State {
	if s.state.Phase != PhasePlaying {
		return s.state
	}

	dir, seen := s.policy.ScanForPlayer(s.grid, s.bot.Pos)
	if seen {
		s.bot.Direction = dir
	}

	if s.policy.Tick(tick) {
		if !seen && s.grid.IsJunction(s.bot.Pos) {
			s.bot.Direction = s.policy.ChooseDirection(s.bot.Direction, true)
		}
		s.attemptMove(s.bot, s.bot.Pos.Step(s.bot.Direction))
		s.policy.RestartTimer()
	}

	return s.state
}

// attemptMove validates a move of a onto target and applies it.
// It reports whether the mover changed tile.
func (s *Session) attemptMove(a actor, target Position) bool {
	onto := s.grid.At(target.X, target.Y)

	switch onto {
	case TileWall:
		if b, ok := a.(*Bot); ok {
			b.Direction = s.policy.ChooseDirection(b.Direction, false)
		}
		return false
	case TilePlayer, TileBot:
		s.end(OutcomeLost)
		return false
	case TileExit:
		if p, ok := a.(*Player); ok && p.HasKey {
			s.end(OutcomeWon)
			return false
		}
	}

	// The restored tile depends on the flags of the tile being left, so it
	// must be read before moveTo overwrites them.
	from := a.position()
	s.grid.Set(from.X, from.Y, a.restoreTile())
	a.moveTo(target, onto)
	s.grid.Set(target.X, target.Y, a.tile())
	return true
}

func (s *Session) end(o Outcome) {
	s.state = State{Phase: PhaseEnded, Outcome: o}
}

// CurrentState returns the state of the session.
func (s *Session) CurrentState() State {
	return s.state
}

// CurrentGrid returns a copy of the tile grid.
func (s *Session) CurrentGrid() *Grid {
	return s.grid.Clone()
}

// Player returns a copy of the player record.
func (s *Session) Player() Player {
	return *s.player
}

// Bot returns a copy of the bot record.
func (s *Session) Bot() Bot {
	return *s.bot
}

// Snapshot creates a snapshot of the current session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:           s.ID,
		Grid:         s.grid.Clone(),
		Player:       *s.player,
		Bot:          *s.bot,
		State:        s.state,
		StepInterval: s.policy.StepInterval(),
	}
}
