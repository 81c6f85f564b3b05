package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/beka-birhanu/mazerun/config"
	"github.com/beka-birhanu/mazerun/game"
	"github.com/beka-birhanu/mazerun/service/i"
	"github.com/google/uuid"
)

const defaultFrameRate = 30

var (
	ErrMissingSessionFactory = errors.New("session factory is required")
	ErrMissingLogger         = errors.New("logger is required")
	ErrNoSession             = errors.New("no game session")
)

// SessionManager owns the running game session. It is the only writer of the
// session: commands, ticks and frames all pass through Run.
type SessionManager struct {
	session        i.GameSession
	sessionID      uuid.UUID
	sessionFactory func() (i.GameSession, error)
	loop           *Loop
	frameInterval  time.Duration
	logger         *log.Logger
}

type Config struct {
	SessionFactory func() (i.GameSession, error)
	TickRate       int
	FrameRate      int
	Logger         *log.Logger
}

func NewSessionManager(c *Config) (*SessionManager, error) {
	if c.SessionFactory == nil {
		return nil, ErrMissingSessionFactory
	}
	if c.Logger == nil {
		return nil, ErrMissingLogger
	}

	frameRate := c.FrameRate
	if frameRate <= 0 {
		frameRate = defaultFrameRate
	}

	return &SessionManager{
		sessionFactory: c.SessionFactory,
		loop:           NewLoop(c.TickRate),
		frameInterval:  time.Second / time.Duration(frameRate),
		logger:         c.Logger,
	}, nil
}

// NewSession replaces the current session with a fresh one on the start screen.
func (m *SessionManager) NewSession() (uuid.UUID, error) {
	session, err := m.sessionFactory()
	if err != nil {
		m.logger.Printf("%s[ERROR]%s creating game session: %s", config.LogErrorColor, config.LogColorReset, err)
		return uuid.Nil, fmt.Errorf("creating game session: %w", err)
	}

	m.session = session
	m.sessionID = session.Snapshot().ID
	m.loop.Reset()
	m.logger.Printf("%s[INFO]%s created game session: %s", config.LogInfoColor, config.LogColorReset, m.sessionID)
	return m.sessionID, nil
}

// Session returns the current session, or nil before the first NewSession.
func (m *SessionManager) Session() i.GameSession {
	return m.session
}

// Begin starts play in the current session.
func (m *SessionManager) Begin() game.State {
	if m.session == nil {
		return game.State{}
	}

	m.loop.Reset()
	state := m.session.Begin()
	m.logger.Printf("%s[INFO]%s game started: %s", config.LogInfoColor, config.LogColorReset, m.sessionID)
	return state
}

// Intent forwards a player move to the current session.
func (m *SessionManager) Intent(d game.Direction) game.State {
	if m.session == nil {
		return game.State{}
	}

	before := m.session.CurrentState()
	state := m.session.HandleIntent(d)
	m.logTransition(before, state)
	return state
}

// Step advances the current session by elapsed wall-clock time. Time spent
// outside play is discarded.
func (m *SessionManager) Step(elapsed time.Duration) game.State {
	if m.session == nil {
		return game.State{}
	}

	before := m.session.CurrentState()
	if before.Phase != game.PhasePlaying {
		m.loop.Reset()
		return before
	}

	state := before
	m.loop.Step(elapsed, func(tick time.Duration) {
		if !state.Ended() {
			state = m.session.Advance(tick)
		}
	})
	m.logTransition(before, state)
	return state
}

// Dispatch applies a single command and reports whether the player asked to
// quit.
func (m *SessionManager) Dispatch(cmd i.Command) (bool, error) {
	if cmd.Kind == i.CommandQuit {
		m.logger.Printf("%s[INFO]%s quit requested", config.LogInfoColor, config.LogColorReset)
		return true, nil
	}
	if m.session == nil {
		return false, ErrNoSession
	}

	switch phase := m.session.CurrentState().Phase; {
	case cmd.Kind == i.CommandConfirm && phase == game.PhaseStart:
		m.Begin()
	case cmd.Kind == i.CommandConfirm && phase == game.PhaseEnded:
		if _, err := m.NewSession(); err != nil {
			return false, err
		}
	case cmd.Kind == i.CommandMove && phase == game.PhasePlaying:
		m.Intent(cmd.Direction)
	}
	return false, nil
}

// Run drives the session until ctx is done, the input channel closes or a quit
// command arrives. A frame is rendered after every tick and command.
func (m *SessionManager) Run(ctx context.Context, input <-chan i.Command, r i.Renderer) error {
	if m.session == nil {
		if _, err := m.NewSession(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(m.frameInterval)
	defer ticker.Stop()
	last := time.Now()

	if err := m.render(r); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			m.logger.Printf("%s[INFO]%s stopping game loop: %s", config.LogInfoColor, config.LogColorReset, ctx.Err())
			return nil
		case now := <-ticker.C:
			m.Step(now.Sub(last))
			last = now
		case cmd, ok := <-input:
			if !ok {
				m.logger.Printf("%s[WARN]%s input closed", config.LogWarnColor, config.LogColorReset)
				return nil
			}
			quit, err := m.Dispatch(cmd)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}

		if err := m.render(r); err != nil {
			return err
		}
	}
}

func (m *SessionManager) render(r i.Renderer) error {
	if err := r.Render(m.session.Snapshot()); err != nil {
		m.logger.Printf("%s[ERROR]%s rendering frame: %s", config.LogErrorColor, config.LogColorReset, err)
		return fmt.Errorf("rendering frame: %w", err)
	}
	return nil
}

func (m *SessionManager) logTransition(before, after game.State) {
	if before.Ended() || !after.Ended() {
		return
	}
	m.logger.Printf("%s[INFO]%s game %s ended: %s", config.LogInfoColor, config.LogColorReset, m.sessionID, after.Message())
}
