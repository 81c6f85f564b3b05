package game

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedGrid is returned by ParseGrid for ragged rows or unknown glyphs.
var ErrMalformedGrid = errors.New("malformed grid")

// Tile is the content of one square of the rendered maze.
type Tile uint8

const (
	TileWall Tile = iota
	TileFloor
	TilePlayer
	TileBot
	TileExit
	TileKey
)

// String returns the single-glyph form of the tile.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "W"
	case TileFloor:
		return "."
	case TilePlayer:
		return "P"
	case TileBot:
		return "E"
	case TileExit:
		return "V"
	case TileKey:
		return "K"
	default:
		return "?"
	}
}

// tileFromGlyph is the inverse of Tile.String.
func tileFromGlyph(r rune) (Tile, bool) {
	switch r {
	case 'W':
		return TileWall, true
	case '.':
		return TileFloor, true
	case 'P':
		return TilePlayer, true
	case 'E':
		return TileBot, true
	case 'V':
		return TileExit, true
	case 'K':
		return TileKey, true
	default:
		return 0, false
	}
}

// Grid is the double-resolution tile grid actors walk on.
// Tiles are stored row-major; (0,0) is the top-left corner.
type Grid struct {
	width  int
	height int
	tiles  []Tile
}

// NewGrid returns a width x height grid filled with walls.
func NewGrid(width, height int) *Grid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("game: invalid grid dimensions %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height), // TileWall is the zero value
	}
}

// Width returns the number of tile columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of tile rows.
func (g *Grid) Height() int {
	return g.height
}

// InBound reports whether (x, y) addresses a tile of the grid.
func (g *Grid) InBound(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tile at (x, y). It panics when the position is outside the grid.
func (g *Grid) At(x, y int) Tile {
	return g.tiles[g.index(x, y)]
}

// Set overwrites the tile at (x, y). It panics when the position is outside the grid.
func (g *Grid) Set(x, y int, t Tile) {
	g.tiles[g.index(x, y)] = t
}

func (g *Grid) index(x, y int) int {
	if !g.InBound(x, y) {
		panic(fmt.Sprintf("game: position (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.tiles))
	copy(tiles, g.tiles)
	return &Grid{width: g.width, height: g.height, tiles: tiles}
}

// Equal reports whether both grids have the same size and tiles.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i, t := range g.tiles {
		if other.tiles[i] != t {
			return false
		}
	}
	return true
}

// Count returns how many tiles hold t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, tile := range g.tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// Positions lists every position holding t in row-major order.
func (g *Grid) Positions(t Tile) []Position {
	var result []Position
	for i, tile := range g.tiles {
		if tile == t {
			result = append(result, Position{X: i % g.width, Y: i / g.width})
		}
	}
	return result
}

// OpenNeighbors counts the cardinal neighbours of p that are not walls.
// Positions outside the grid count as walls.
func (g *Grid) OpenNeighbors(p Position) int {
	open := 0
	for _, d := range Directions {
		n := p.Step(d)
		if g.InBound(n.X, n.Y) && g.At(n.X, n.Y) != TileWall {
			open++
		}
	}
	return open
}

// IsJunction reports whether p has more than two open sides.
func (g *Grid) IsJunction(p Position) bool {
	return g.OpenNeighbors(p) > 2
}

// String provides a textual representation of the grid, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			sb.WriteString(g.At(x, y).String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid reads a grid in the format produced by String. Blank lines and
// surrounding whitespace are ignored.
func ParseGrid(s string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}

	width := len([]rune(rows[0]))
	g := NewGrid(width, len(rows))
	for y, row := range rows {
		glyphs := []rune(row)
		if len(glyphs) != width {
			return nil, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrMalformedGrid, y, len(glyphs), width)
		}
		for x, r := range glyphs {
			t, ok := tileFromGlyph(r)
			if !ok {
				return nil, fmt.Errorf("%w: unknown glyph %q at (%d,%d)", ErrMalformedGrid, r, x, y)
			}
			g.Set(x, y, t)
		}
	}
	return g, nil
}
