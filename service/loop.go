package service

import "time"

const (
	defaultTickRate = 60
	maxStepsPerCall = 8
)

// Loop converts wall-clock time into a whole number of fixed simulation ticks.
// Time that does not fill a tick is carried over to the next call.
type Loop struct {
	tick        time.Duration
	accumulator time.Duration
}

// NewLoop returns a loop running tickRate ticks per second. A non-positive rate
// falls back to 60.
func NewLoop(tickRate int) *Loop {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return &Loop{tick: time.Second / time.Duration(tickRate)}
}

// Tick returns the fixed length of one simulation tick.
func (l *Loop) Tick() time.Duration {
	return l.tick
}

// Step adds elapsed to the accumulator and calls advance once per whole tick.
// At most maxStepsPerCall ticks run per call; a longer backlog is dropped so a
// stalled frame cannot snowball. It returns the number of ticks run.
func (l *Loop) Step(elapsed time.Duration, advance func(time.Duration)) int {
	if elapsed > 0 {
		l.accumulator += elapsed
	}

	steps := 0
	for l.accumulator >= l.tick {
		if steps == maxStepsPerCall {
			l.accumulator %= l.tick
			break
		}
		advance(l.tick)
		l.accumulator -= l.tick
		steps++
	}
	return steps
}

// Reset drops any carried time.
func (l *Loop) Reset() {
	l.accumulator = 0
}
