// Package terminal draws game snapshots with tcell and turns key presses into
// player commands.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/beka-birhanu/mazerun/game"
	"github.com/beka-birhanu/mazerun/service/i"
	"github.com/gdamore/tcell/v2"
)

const (
	statusRow = 0
	gridRow   = 1
)

var ErrScreenClosed = errors.New("screen is closed")

var (
	defaultStyle = tcell.StyleDefault
	wallStyle    = defaultStyle.Foreground(tcell.ColorGray).Background(tcell.ColorGray)
	playerStyle  = defaultStyle.Foreground(tcell.ColorAqua).Bold(true)
	botStyle     = defaultStyle.Foreground(tcell.ColorRed).Bold(true)
	exitStyle    = defaultStyle.Foreground(tcell.ColorGreen).Bold(true)
	keyStyle     = defaultStyle.Foreground(tcell.ColorYellow).Bold(true)
	wonStyle     = defaultStyle.Foreground(tcell.ColorGreen)
	lostStyle    = defaultStyle.Foreground(tcell.ColorRed)
)

// Screen is both the renderer and the input source of the game.
type Screen struct {
	screen tcell.Screen
	closed atomic.Bool
	last   *game.Snapshot // Last frame drawn, only touched by Render
}

// New wraps an initialised tcell screen.
func New(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// Open creates and initialises a screen on the controlling terminal.
func Open() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initialising screen: %w", err)
	}
	s.HideCursor()
	return New(s), nil
}

// Close restores the terminal and unblocks Listen.
func (s *Screen) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.screen.Fini()
}

// Render draws the status line and the maze, then shows the frame. A snapshot
// identical to the previous one is skipped.
func (s *Screen) Render(snap game.Snapshot) error {
	if s.closed.Load() {
		return ErrScreenClosed
	}
	if s.last != nil && sameFrame(*s.last, snap) {
		return nil
	}

	s.screen.Clear()
	text, style := statusLine(snap)
	s.drawText(0, statusRow, text, style)

	if snap.Grid != nil {
		for y := 0; y < snap.Grid.Height(); y++ {
			for x := 0; x < snap.Grid.Width(); x++ {
				r, style := tileCell(snap, snap.Grid.At(x, y))
				s.screen.SetContent(x, gridRow+y, r, nil, style)
			}
		}
	}

	s.screen.Show()
	s.last = &snap
	return nil
}

func sameFrame(a, b game.Snapshot) bool {
	return a.ID == b.ID &&
		a.State == b.State &&
		a.Player == b.Player &&
		a.Bot == b.Bot &&
		a.StepInterval == b.StepInterval &&
		a.Grid != nil && a.Grid.Equal(b.Grid)
}

func (s *Screen) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func statusLine(snap game.Snapshot) (string, tcell.Style) {
	switch snap.State.Phase {
	case game.PhaseStart:
		return "Find the key, then the exit. Press Enter to start.", defaultStyle
	case game.PhaseEnded:
		style := lostStyle
		if snap.State.Outcome == game.OutcomeWon {
			style = wonStyle
		}
		return snap.State.Message() + " Press Enter to play again, q to quit.", style
	}

	key := "no"
	if snap.Player.HasKey {
		key = "yes"
	}
	return fmt.Sprintf("Key: %s  Bot step: %s", key, snap.StepInterval), defaultStyle
}

func tileCell(snap game.Snapshot, t game.Tile) (rune, tcell.Style) {
	switch t {
	case game.TileWall:
		return '#', wallStyle
	case game.TilePlayer:
		return directionGlyph(snap.Player.Facing), playerStyle
	case game.TileBot:
		return directionGlyph(snap.Bot.Direction), botStyle
	case game.TileExit:
		return 'E', exitStyle
	case game.TileKey:
		return 'K', keyStyle
	default:
		return ' ', defaultStyle
	}
}

func directionGlyph(d game.Direction) rune {
	switch d {
	case game.Up:
		return '^'
	case game.Down:
		return 'v'
	case game.Left:
		return '<'
	default:
		return '>'
	}
}

// Listen polls terminal events and sends the commands they map to. It returns
// when ctx is done or the screen is closed.
func (s *Screen) Listen(ctx context.Context, commands chan<- i.Command) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			cmd, ok := CommandForKey(ev)
			if !ok {
				continue
			}
			select {
			case commands <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}
}

// CommandForKey maps arrows and WASD to moves, Enter and space to confirm,
// and Esc, q and Ctrl-C to quit.
func CommandForKey(ev *tcell.EventKey) (i.Command, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return move(game.Up), true
	case tcell.KeyDown:
		return move(game.Down), true
	case tcell.KeyLeft:
		return move(game.Left), true
	case tcell.KeyRight:
		return move(game.Right), true
	case tcell.KeyEnter:
		return i.Command{Kind: i.CommandConfirm}, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return i.Command{Kind: i.CommandQuit}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return move(game.Up), true
		case 's', 'S':
			return move(game.Down), true
		case 'a', 'A':
			return move(game.Left), true
		case 'd', 'D':
			return move(game.Right), true
		case ' ':
			return i.Command{Kind: i.CommandConfirm}, true
		case 'q', 'Q':
			return i.Command{Kind: i.CommandQuit}, true
		}
	}
	return i.Command{}, false
}

func move(d game.Direction) i.Command {
	return i.Command{Kind: i.CommandMove, Direction: d}
}
