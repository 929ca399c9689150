package world

import "fmt"

// DefaultMaxMotions is the bot's lifetime motion ceiling. It is a hard
// safety stop on the agent itself, separate from any budget the program
// executor enforces.
const DefaultMaxMotions = 1000

// MotionLimitError reports that the bot exhausted its lifetime motion
// ceiling.
type MotionLimitError struct {
	Motions int
	Limit   int
}

func (e *MotionLimitError) Error() string {
	return fmt.Sprintf("bot motion ceiling exceeded: %d motions, limit %d", e.Motions, e.Limit)
}

// Bot is the agent in the grid. It senses only the cell ahead of it and
// the cell underfoot. A Bot is not safe for concurrent use.
type Bot struct {
	grid *Grid
	x, y int
	dir  Direction

	hasKey     bool
	motions    int
	maxMotions int
}

// NewBot places a bot on the grid at (x, y) facing dir.
func NewBot(grid *Grid, x, y int, dir Direction) *Bot {
	return &Bot{
		grid:       grid,
		x:          x,
		y:          y,
		dir:        dir,
		maxMotions: DefaultMaxMotions,
	}
}

// SetMotionLimit overrides the lifetime motion ceiling.
func (b *Bot) SetMotionLimit(limit int) { b.maxMotions = limit }

// Position returns the bot's current coordinates.
func (b *Bot) Position() (int, int) { return b.x, b.y }

// Facing returns the bot's current heading.
func (b *Bot) Facing() Direction { return b.dir }

// Motions returns how many successful moves the bot has made.
func (b *Bot) Motions() int { return b.motions }

// frontTile returns the tile ahead of the bot. ok is false at the
// grid edge.
func (b *Bot) frontTile() (Tile, bool) {
	dx, dy := b.dir.Delta()
	return b.grid.TileAt(b.x+dx, b.y+dy)
}

// FrontIsClear reports whether the bot can move forward: the cell
// ahead is inside the grid and is neither a wall nor a closed door.
func (b *Bot) FrontIsClear() bool {
	t, ok := b.frontTile()
	return ok && t != TileWall && t != TileDoor
}

// OnKey reports whether the bot stands on an uncollected key.
func (b *Bot) OnKey() bool {
	t, ok := b.grid.TileAt(b.x, b.y)
	return ok && t == TileKey
}

// AtDoor reports whether a closed door is in the cell directly ahead.
func (b *Bot) AtDoor() bool {
	t, ok := b.frontTile()
	return ok && t == TileDoor
}

// AtExit reports whether the bot stands on the exit tile.
func (b *Bot) AtExit() bool {
	t, ok := b.grid.TileAt(b.x, b.y)
	return ok && t == TileExit
}

// HasKey reports whether the bot currently holds a key.
func (b *Bot) HasKey() bool { return b.hasKey }

// MoveForward advances one cell along the current heading. It returns
// false without moving when the front is blocked, and faults once the
// lifetime motion ceiling is exhausted.
func (b *Bot) MoveForward() (bool, error) {
	if b.motions >= b.maxMotions {
		return false, &MotionLimitError{Motions: b.motions, Limit: b.maxMotions}
	}
	if !b.FrontIsClear() {
		return false, nil
	}
	dx, dy := b.dir.Delta()
	b.x += dx
	b.y += dy
	b.motions++
	return true, nil
}

// TurnLeft rotates the heading 90 degrees counterclockwise.
func (b *Bot) TurnLeft() (bool, error) {
	b.dir = b.dir.Left()
	return true, nil
}

// TurnRight rotates the heading 90 degrees clockwise.
func (b *Bot) TurnRight() (bool, error) {
	b.dir = b.dir.Right()
	return true, nil
}

// PickKey collects the key underfoot. It returns false when the bot is
// not standing on an uncollected key.
func (b *Bot) PickKey() (bool, error) {
	if !b.OnKey() {
		return false, nil
	}
	b.grid.RemoveKey(b.x, b.y)
	b.hasKey = true
	return true, nil
}

// OpenDoor clears the closed door ahead. It succeeds only when the bot
// faces a door and holds a key.
func (b *Bot) OpenDoor() (bool, error) {
	if !b.AtDoor() || !b.hasKey {
		return false, nil
	}
	dx, dy := b.dir.Delta()
	b.grid.ClearDoor(b.x+dx, b.y+dy)
	return true, nil
}
