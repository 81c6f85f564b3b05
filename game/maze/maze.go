/*
Package maze provides tools for creating perfect rectangular mazes.

It defines the `Graph` structure, a grid of `Cell` objects carrying one wall flag
per side. Graphs are carved with a randomized depth-first backtracker, which
yields a spanning tree over all cells: every cell is reachable from every other
one and there are no loops.

Render turns a carved graph into the double-resolution tile grid used by the
game, and Layout chains generation and rendering for game sessions.
*/
package maze

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/beka-birhanu/mazerun/game"
	"github.com/zyedidia/generic/mapset"
)

// Graph represents a rectangular maze of cells.
type Graph struct {
	Width     int                       // Width of the maze (number of columns)
	Height    int                       // Height of the maze (number of rows)
	cells     []Cell                    // Cells indexed by y*Width + x
	visited   mapset.Set[game.Position] // Cells already reached by the generator
	backTrack []game.Position           // Most recently visited cell on top
	rng       *rand.Rand
}

// New returns a fully walled width x height maze. Nothing is carved until Generate is called.
func New(width, height int, rng *rand.Rand) *Graph {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("maze: invalid dimensions %dx%d", width, height))
	}

	cells := make([]Cell, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells = append(cells, Cell{X: x, Y: y, Up: true, Down: true, Left: true, Right: true})
		}
	}

	return &Graph{
		Width:   width,
		Height:  height,
		cells:   cells,
		visited: mapset.New[game.Position](),
		rng:     rng,
	}
}

// Layout generates a width x height maze from the top-left cell and renders it.
// It panics if the generator left a cell unreached.
func Layout(width, height int, rng *rand.Rand) *game.Grid {
	g := New(width, height, rng)
	g.Generate(0, 0)
	if g.Visited() != width*height {
		panic(fmt.Sprintf("maze: generator reached %d of %d cells", g.Visited(), width*height))
	}
	return Render(g)
}

// InBound reports whether (x, y) addresses a cell of the maze.
func (g *Graph) InBound(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Cell returns a copy of the cell at (x, y). It panics when the position is outside the maze.
func (g *Graph) Cell(x, y int) Cell {
	return *g.cell(game.Position{X: x, Y: y})
}

func (g *Graph) cell(p game.Position) *Cell {
	if !g.InBound(p.X, p.Y) {
		panic(fmt.Sprintf("maze: cell (%d,%d) outside %dx%d maze", p.X, p.Y, g.Width, g.Height))
	}
	return &g.cells[g.Width*p.Y+p.X]
}

// Generate carves the maze with a randomized depth-first backtracker starting at (x, y).
// A maze with a zero dimension is left untouched.
func (g *Graph) Generate(x, y int) {
	if g.Width == 0 || g.Height == 0 {
		return
	}

	current := game.Position{X: x, Y: y}
	if !g.InBound(x, y) {
		panic(fmt.Sprintf("maze: start (%d,%d) outside %dx%d maze", x, y, g.Width, g.Height))
	}

	for {
		if !g.visited.Has(current) {
			g.visited.Put(current)
			g.backTrack = append(g.backTrack, current)
		}

		if next, dir, ok := g.randomNeighbor(current); ok {
			g.cell(current).openWall(dir)
			g.cell(next).openWall(dir.Opposite())
			current = next
			continue
		}

		if len(g.backTrack) == 0 {
			return
		}
		current = g.backTrack[len(g.backTrack)-1]
		g.backTrack = g.backTrack[:len(g.backTrack)-1]
	}
}

// randomNeighbor picks one of the unvisited neighbours of pos uniformly.
func (g *Graph) randomNeighbor(pos game.Position) (game.Position, game.Direction, bool) {
	dirs := g.unvisitedNeighbors(pos)
	if len(dirs) == 0 {
		return game.Position{}, 0, false
	}
	d := dirs[g.rng.Intn(len(dirs))]
	return pos.Step(d), d, true
}

// unvisitedNeighbors lists the directions from pos leading to cells not yet visited.
func (g *Graph) unvisitedNeighbors(pos game.Position) []game.Direction {
	var result []game.Direction
	for _, d := range []game.Direction{game.Left, game.Right, game.Up, game.Down} {
		n := pos.Step(d)
		if g.InBound(n.X, n.Y) && !g.visited.Has(n) {
			result = append(result, d)
		}
	}
	return result
}

// Visited returns how many cells the generator reached.
func (g *Graph) Visited() int {
	return g.visited.Size()
}

// IsOpen reports whether a passage leads from the cell at pos towards d.
func (g *Graph) IsOpen(pos game.Position, d game.Direction) bool {
	return !g.cell(pos).HasWall(d)
}

// OpenEdges counts the carved passages between cells.
func (g *Graph) OpenEdges() int {
	edges := 0
	for i := range g.cells {
		// Right and Down cover every shared wall exactly once.
		if !g.cells[i].Right {
			edges++
		}
		if !g.cells[i].Down {
			edges++
		}
	}
	return edges
}

// String provides a textual representation of the maze.
func (g *Graph) String() string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", g.Width) + "\n")

	for y := 0; y < g.Height; y++ {
		cellRow := "|"
		wallRow := "+"
		for x := 0; x < g.Width; x++ {
			c := g.cell(game.Position{X: x, Y: y})
			if c.Right {
				cellRow += "   |"
			} else {
				cellRow += "    "
			}
			if c.Down {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		output.WriteString(cellRow + "\n")
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}
