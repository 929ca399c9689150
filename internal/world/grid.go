// Package world implements the bounded 2D grid the agent moves in:
// tile grid, map parsing, and the bot with its sensors and actuators.
package world

import (
	"fmt"
	"strings"
)

// Tile is the type of a single grid cell.
type Tile int

const (
	TileFloor Tile = iota
	TileWall
	TileKey
	TileDoor
	TileExit
)

var tileRunes = map[Tile]rune{
	TileFloor: '.',
	TileWall:  '#',
	TileKey:   'K',
	TileDoor:  'D',
	TileExit:  'E',
}

func (t Tile) String() string {
	if r, ok := tileRunes[t]; ok {
		return string(r)
	}
	return fmt.Sprintf("Tile(%d)", int(t))
}

// Grid is a rectangular tile grid. Mutations are limited to clearing
// keys and doors; walls and exits are fixed for the grid's lifetime.
type Grid struct {
	tiles  [][]Tile
	width  int
	height int

	keysCollected int
	doorsOpened   int
}

// ParseMap builds a grid from rows of single-character tile codes:
// 'W' wall, 'K' key, 'D' door, 'E' exit, anything else floor.
func ParseMap(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("world: empty map")
	}
	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("world: empty map row")
	}

	g := &Grid{
		tiles:  make([][]Tile, len(rows)),
		width:  width,
		height: len(rows),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("world: row %d has width %d, want %d", y, len(row), width)
		}
		g.tiles[y] = make([]Tile, width)
		for x, ch := range row {
			switch ch {
			case 'W':
				g.tiles[y][x] = TileWall
			case 'K':
				g.tiles[y][x] = TileKey
			case 'D':
				g.tiles[y][x] = TileDoor
			case 'E':
				g.tiles[y][x] = TileExit
			default:
				g.tiles[y][x] = TileFloor
			}
		}
	}
	return g, nil
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.height }

// TileAt returns the tile at (x, y). The second result is false when
// the position is outside the grid.
func (g *Grid) TileAt(x, y int) (Tile, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return TileFloor, false
	}
	return g.tiles[y][x], true
}

// IsWall reports whether (x, y) is a wall tile.
func (g *Grid) IsWall(x, y int) bool {
	t, ok := g.TileAt(x, y)
	return ok && t == TileWall
}

// RemoveKey clears a key tile to floor and counts the collection.
// It reports false when (x, y) holds no key.
func (g *Grid) RemoveKey(x, y int) bool {
	if t, ok := g.TileAt(x, y); !ok || t != TileKey {
		return false
	}
	g.tiles[y][x] = TileFloor
	g.keysCollected++
	return true
}

// ClearDoor opens a door tile, turning it to floor. It reports false
// when (x, y) holds no door.
func (g *Grid) ClearDoor(x, y int) bool {
	if t, ok := g.TileAt(x, y); !ok || t != TileDoor {
		return false
	}
	g.tiles[y][x] = TileFloor
	g.doorsOpened++
	return true
}

// KeysCollected returns how many keys have been removed from the grid.
func (g *Grid) KeysCollected() int { return g.keysCollected }

// DoorsOpened returns how many doors have been cleared.
func (g *Grid) DoorsOpened() int { return g.doorsOpened }

// Render draws the grid, marking the bot with a direction arrow when
// one is provided.
func (g *Grid) Render(bot *Bot) string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if bot != nil && bot.x == x && bot.y == y {
				sb.WriteRune(bot.dir.Arrow())
				continue
			}
			sb.WriteRune(tileRunes[g.tiles[y][x]])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
