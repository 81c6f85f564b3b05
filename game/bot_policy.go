package game

import (
	"math/rand"
	"time"
)

// Default bot timings.
const (
	DefaultBotStepInterval    = 100 * time.Millisecond
	DefaultBotSpeedUpPeriod   = time.Second
	DefaultBotSpeedUpDelta    = 20 * time.Millisecond
	DefaultBotMinStepInterval = 10 * time.Millisecond
)

// scanOrder is the order in which ScanForPlayer casts its rays.
var scanOrder = [...]Direction{Up, Left, Down, Right}

// BotConfig holds the timing knobs of a BotPolicy. Zero fields take the defaults.
type BotConfig struct {
	StepInterval    time.Duration // Initial time between two steps
	SpeedUpPeriod   time.Duration // Time between two speed-ups
	SpeedUpDelta    time.Duration // Step interval decrease per speed-up
	MinStepInterval time.Duration // Floor of the step interval, must be positive
}

// BotPolicy decides where the bot heads and when it steps.
// It owns the step timer and the speed-up schedule.
type BotPolicy struct {
	rng             *rand.Rand
	stepInterval    time.Duration
	stepTimer       time.Duration
	speedUpPeriod   time.Duration
	speedUpTimer    time.Duration
	speedUpDelta    time.Duration
	minStepInterval time.Duration
}

// NewBotPolicy returns a policy with both timers armed.
func NewBotPolicy(cfg BotConfig, rng *rand.Rand) *BotPolicy {
	if cfg.StepInterval <= 0 {
		cfg.StepInterval = DefaultBotStepInterval
	}
	if cfg.SpeedUpPeriod <= 0 {
		cfg.SpeedUpPeriod = DefaultBotSpeedUpPeriod
	}
	if cfg.SpeedUpDelta <= 0 {
		cfg.SpeedUpDelta = DefaultBotSpeedUpDelta
	}
	if cfg.MinStepInterval <= 0 {
		cfg.MinStepInterval = DefaultBotMinStepInterval
	}

	p := &BotPolicy{
		rng:             rng,
		stepInterval:    max(cfg.StepInterval, cfg.MinStepInterval),
		speedUpPeriod:   cfg.SpeedUpPeriod,
		speedUpTimer:    cfg.SpeedUpPeriod,
		speedUpDelta:    cfg.SpeedUpDelta,
		minStepInterval: cfg.MinStepInterval,
	}
	p.RestartTimer()
	return p
}

// StepInterval returns the current time between two bot steps.
func (p *BotPolicy) StepInterval() time.Duration {
	return p.stepInterval
}

// ScanForPlayer casts a ray from the bot's tile in each direction, in the order
// Up, Left, Down, Right, and returns the direction of the first ray that meets
// the player before a wall. Rays start on the bot's own tile.
func (p *BotPolicy) ScanForPlayer(grid *Grid, from Position) (Direction, bool) {
	for _, d := range scanOrder {
		pos := from.Step(d)
		for grid.InBound(pos.X, pos.Y) {
			t := grid.At(pos.X, pos.Y)
			if t == TileWall {
				break
			}
			if t == TilePlayer {
				return d, true
			}
			pos = pos.Step(d)
		}
	}
	return 0, false
}

// ChooseDirection picks a new heading uniformly at random. At a junction the
// direction opposite to current is excluded so the bot never turns back there.
func (p *BotPolicy) ChooseDirection(current Direction, atJunction bool) Direction {
	if !atJunction {
		return Directions[p.rng.Intn(len(Directions))]
	}

	candidates := make([]Direction, 0, len(Directions)-1)
	back := current.Opposite()
	for _, d := range Directions {
		if d != back {
			candidates = append(candidates, d)
		}
	}
	return candidates[p.rng.Intn(len(candidates))]
}

// RandomDirection returns a uniformly chosen direction.
func (p *BotPolicy) RandomDirection() Direction {
	return p.ChooseDirection(Up, false)
}

// RestartTimer re-arms the step timer with the current step interval.
func (p *BotPolicy) RestartTimer() {
	p.stepTimer = p.stepInterval
}

// SpeedUp shortens the step interval by one delta, never below the minimum.
func (p *BotPolicy) SpeedUp() {
	p.stepInterval = max(p.stepInterval-p.speedUpDelta, p.minStepInterval)
}

// Tick advances both timers by dt. Every elapsed speed-up period applies one
// SpeedUp. It reports whether the step timer has run out.
func (p *BotPolicy) Tick(dt time.Duration) bool {
	p.speedUpTimer -= dt
	for p.speedUpTimer <= 0 {
		p.SpeedUp()
		p.speedUpTimer += p.speedUpPeriod
	}

	p.stepTimer -= dt
	return p.stepTimer <= 0
}
