package world

import (
	"fmt"
	"strings"
)

// Direction is a compass heading. North is toward decreasing y.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = map[Direction]string{
	North: "N",
	East:  "E",
	South: "S",
	West:  "W",
}

var directionArrows = map[Direction]rune{
	North: '^',
	East:  '>',
	South: 'v',
	West:  '<',
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Arrow returns the single-rune rendering of the heading.
func (d Direction) Arrow() rune {
	if r, ok := directionArrows[d]; ok {
		return r
	}
	return '?'
}

// ParseDirection reads a heading from its one-letter or full name,
// case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return North, fmt.Errorf("world: invalid direction %q (want north, east, south, or west)", s)
}

// Left returns the heading after a 90-degree counterclockwise turn.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right returns the heading after a 90-degree clockwise turn.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Delta returns the (dx, dy) step for one move along the heading.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}
