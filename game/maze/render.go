package maze

import "github.com/beka-birhanu/mazerun/game"

// Render converts the cell graph into a (2*Width+1) x (2*Height+1) tile grid.
// Cell (x, y) lands on tile (2x+1, 2y+1); the tile to its right and the tile
// below it are floor when the matching wall was carved. Everything else,
// including the outer ring, is wall.
func Render(g *Graph) *game.Grid {
	grid := game.NewGrid(2*g.Width+1, 2*g.Height+1)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			pos := game.Position{X: x, Y: y}
			tx, ty := 2*x+1, 2*y+1

			grid.Set(tx, ty, game.TileFloor)
			if g.IsOpen(pos, game.Right) {
				grid.Set(tx+1, ty, game.TileFloor)
			}
			if g.IsOpen(pos, game.Down) {
				grid.Set(tx, ty+1, game.TileFloor)
			}
		}
	}

	return grid
}
