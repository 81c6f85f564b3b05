package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"math/rand"
	"testing"
	"time"

	"github.com/beka-birhanu/mazerun/game"
	"github.com/beka-birhanu/mazerun/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The bot is walled in, so only the player ever moves.
const corridor = `
	WWWWWWW
	WP.VK.W
	WWWWWWW
	WEWWWWW
	WWWWWWW`

func corridorFactory(t *testing.T) func() (i.GameSession, error) {
	grid, err := game.ParseGrid(corridor)
	require.NoError(t, err)

	return func() (i.GameSession, error) {
		s, err := game.NewSessionFromGrid(grid, game.BotConfig{}, rand.New(rand.NewSource(1)))
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

func newTestManager(t *testing.T, factory func() (i.GameSession, error), w io.Writer) *SessionManager {
	t.Helper()
	m, err := NewSessionManager(&Config{
		SessionFactory: factory,
		TickRate:       100,
		Logger:         log.New(w, "", 0),
	})
	require.NoError(t, err)
	return m
}

type fakeSession struct {
	state game.State
	ticks []time.Duration
	id    uuid.UUID
}

func (f *fakeSession) Begin() game.State {
	f.state.Phase = game.PhasePlaying
	return f.state
}

func (f *fakeSession) HandleIntent(game.Direction) game.State { return f.state }

func (f *fakeSession) Advance(tick time.Duration) game.State {
	f.ticks = append(f.ticks, tick)
	return f.state
}

func (f *fakeSession) CurrentState() game.State { return f.state }

func (f *fakeSession) Snapshot() game.Snapshot {
	return game.Snapshot{ID: f.id, State: f.state}
}

type fakeRenderer struct {
	frames []game.Snapshot
	err    error
}

func (r *fakeRenderer) Render(s game.Snapshot) error {
	r.frames = append(r.frames, s)
	return r.err
}

func TestNewSessionManager(t *testing.T) {
	_, err := NewSessionManager(&Config{Logger: log.New(io.Discard, "", 0)})
	assert.True(t, errors.Is(err, ErrMissingSessionFactory))

	_, err = NewSessionManager(&Config{SessionFactory: corridorFactory(t)})
	assert.True(t, errors.Is(err, ErrMissingLogger))
}

func TestSessionManagerNewSession(t *testing.T) {
	t.Run("Factory error is wrapped", func(t *testing.T) {
		errBoom := errors.New("boom")
		m := newTestManager(t, func() (i.GameSession, error) { return nil, errBoom }, io.Discard)

		_, err := m.NewSession()
		assert.True(t, errors.Is(err, errBoom))
		assert.Nil(t, m.Session())
	})

	t.Run("Each session gets its own ID", func(t *testing.T) {
		var logs bytes.Buffer
		m := newTestManager(t, corridorFactory(t), &logs)

		first, err := m.NewSession()
		require.NoError(t, err)
		second, err := m.NewSession()
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.Equal(t, second, m.Session().Snapshot().ID)
		assert.Contains(t, logs.String(), second.String())
	})
}

func TestSessionManagerStep(t *testing.T) {
	t.Run("No ticks outside play", func(t *testing.T) {
		fake := &fakeSession{}
		m := newTestManager(t, func() (i.GameSession, error) { return fake, nil }, io.Discard)
		_, err := m.NewSession()
		require.NoError(t, err)

		m.Step(time.Second)
		assert.Empty(t, fake.ticks)

		m.Begin()
		m.Step(25 * time.Millisecond)
		assert.Equal(t, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond}, fake.ticks)

		m.Step(5 * time.Millisecond)
		assert.Len(t, fake.ticks, 3, "the carried 5ms completes a tick")
	})

	t.Run("Ticks stop once the game ends", func(t *testing.T) {
		fake := &fakeSession{}
		m := newTestManager(t, func() (i.GameSession, error) { return fake, nil }, io.Discard)
		_, err := m.NewSession()
		require.NoError(t, err)
		m.Begin()

		fake.state = game.State{Phase: game.PhaseEnded, Outcome: game.OutcomeLost}
		assert.Equal(t, game.PhaseEnded, m.Step(time.Second).Phase)
		assert.Empty(t, fake.ticks)
	})

	t.Run("Without a session nothing happens", func(t *testing.T) {
		m := newTestManager(t, corridorFactory(t), io.Discard)
		assert.Equal(t, game.State{}, m.Step(time.Second))
		assert.Equal(t, game.State{}, m.Intent(game.Right))
		assert.Equal(t, game.State{}, m.Begin())
	})
}

func TestSessionManagerDispatch(t *testing.T) {
	var logs bytes.Buffer
	m := newTestManager(t, corridorFactory(t), &logs)

	_, err := m.Dispatch(i.Command{Kind: i.CommandConfirm})
	assert.True(t, errors.Is(err, ErrNoSession))

	first, err := m.NewSession()
	require.NoError(t, err)

	move := func(d game.Direction) {
		t.Helper()
		quit, err := m.Dispatch(i.Command{Kind: i.CommandMove, Direction: d})
		require.NoError(t, err)
		require.False(t, quit)
	}

	move(game.Right)
	assert.Equal(t, game.Position{X: 1, Y: 1}, m.Session().Snapshot().Player.Pos, "moves are ignored on the start screen")

	quit, err := m.Dispatch(i.Command{Kind: i.CommandConfirm})
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, game.PhasePlaying, m.Session().CurrentState().Phase)

	for _, d := range []game.Direction{game.Right, game.Right, game.Right, game.Left} {
		move(d)
	}
	state := m.Session().CurrentState()
	assert.Equal(t, game.OutcomeWon, state.Outcome)
	assert.Contains(t, logs.String(), "You found the exit!")

	_, err = m.Dispatch(i.Command{Kind: i.CommandConfirm})
	require.NoError(t, err)
	assert.NotEqual(t, first, m.Session().Snapshot().ID, "confirm on the end screen starts a new game")
	assert.Equal(t, game.PhaseStart, m.Session().CurrentState().Phase)

	quit, err = m.Dispatch(i.Command{Kind: i.CommandQuit})
	require.NoError(t, err)
	assert.True(t, quit)
}

func runManager(ctx context.Context, m *SessionManager, input <-chan i.Command, r i.Renderer) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx, input, r)
	}()
	return done
}

func TestSessionManagerRun(t *testing.T) {
	t.Run("Quit stops the loop", func(t *testing.T) {
		m := newTestManager(t, corridorFactory(t), io.Discard)
		input := make(chan i.Command)
		r := &fakeRenderer{}
		done := runManager(context.Background(), m, input, r)

		input <- i.Command{Kind: i.CommandConfirm}
		input <- i.Command{Kind: i.CommandMove, Direction: game.Right}
		input <- i.Command{Kind: i.CommandQuit}
		require.NoError(t, <-done)

		require.GreaterOrEqual(t, len(r.frames), 3)
		last := r.frames[len(r.frames)-1]
		assert.Equal(t, game.PhasePlaying, last.State.Phase)
		assert.Equal(t, game.Position{X: 2, Y: 1}, last.Player.Pos)
	})

	t.Run("Cancelled context stops the loop", func(t *testing.T) {
		m := newTestManager(t, corridorFactory(t), io.Discard)
		ctx, cancel := context.WithCancel(context.Background())
		done := runManager(ctx, m, make(chan i.Command), &fakeRenderer{})

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("run did not stop")
		}
	})

	t.Run("Closed input stops the loop", func(t *testing.T) {
		m := newTestManager(t, corridorFactory(t), io.Discard)
		input := make(chan i.Command)
		close(input)
		assert.NoError(t, <-runManager(context.Background(), m, input, &fakeRenderer{}))
	})

	t.Run("Render error is returned", func(t *testing.T) {
		errScreen := errors.New("screen gone")
		m := newTestManager(t, corridorFactory(t), io.Discard)
		err := <-runManager(context.Background(), m, make(chan i.Command), &fakeRenderer{err: errScreen})
		assert.True(t, errors.Is(err, errScreen))
	})
}
