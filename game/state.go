package game

// Phase is the coarse stage of a session.
type Phase int

const (
	// PhaseStart waits for the begin signal.
	PhaseStart Phase = iota
	// PhasePlaying accepts intents and simulation ticks.
	PhasePlaying
	// PhaseEnded is terminal; Outcome tells how it ended.
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome is the result of an ended session.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

// Message returns the text shown to the player for the outcome.
func (o Outcome) Message() string {
	switch o {
	case OutcomeWon:
		return "You found the exit!"
	case OutcomeLost:
		return "Game Over!"
	default:
		return ""
	}
}

// State is the observable state of a session.
type State struct {
	Phase   Phase
	Outcome Outcome
}

// Ended reports whether the session reached a terminal state.
func (s State) Ended() bool {
	return s.Phase == PhaseEnded
}

// Message returns the outcome text, empty while the session is not ended.
func (s State) Message() string {
	return s.Outcome.Message()
}
