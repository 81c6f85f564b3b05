package maze

import "github.com/beka-birhanu/mazerun/game"

// Cell represents a single cell of the logical maze.
// A true flag means the wall on that side is still standing.
type Cell struct {
	X     int  // Column of the cell
	Y     int  // Row of the cell
	Up    bool // Up indicates whether there is a wall on the upper side of the cell.
	Down  bool // Down indicates whether there is a wall on the lower side of the cell.
	Left  bool // Left indicates whether there is a wall on the left side of the cell.
	Right bool // Right indicates whether there is a wall on the right side of the cell.
}

// HasWall reports whether the wall on side d is standing.
func (c *Cell) HasWall(d game.Direction) bool {
	switch d {
	case game.Up:
		return c.Up
	case game.Down:
		return c.Down
	case game.Left:
		return c.Left
	default:
		return c.Right
	}
}

// openWall clears the wall on side d.
func (c *Cell) openWall(d game.Direction) {
	switch d {
	case game.Up:
		c.Up = false
	case game.Down:
		c.Down = false
	case game.Left:
		c.Left = false
	default:
		c.Right = false
	}
}

// Position returns the coordinates of the cell.
func (c *Cell) Position() game.Position {
	return game.Position{X: c.X, Y: c.Y}
}
