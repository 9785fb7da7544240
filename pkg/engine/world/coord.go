// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based game.
package world

import "fmt"

// Coord is an integer grid coordinate. It is a value type and can be used as a map key.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is shorthand for Coord{X: x, Y: y}
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns the coordinate as "(x,y)"
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the coordinate translated by o
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the offset from o to c
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Step returns the neighbouring coordinate in the given direction
func (c Coord) Step(dir Direction) Coord {
	dx, dy := dir.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Neighbors4 returns the four orthogonal neighbours in North, East, South, West order
func (c Coord) Neighbors4() [4]Coord {
	return [4]Coord{c.Step(North), c.Step(East), c.Step(South), c.Step(West)}
}

// Manhattan returns the Manhattan distance between two coordinates
func Manhattan(a, b Coord) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Adjacent4 reports whether a and b differ by exactly one unit on exactly one axis.
// This is the adjacency rule for player movement and attacks.
func Adjacent4(a, b Coord) bool {
	return Manhattan(a, b) == 1
}

// Adjacent8 reports whether a and b are distinct and touch orthogonally or diagonally
func Adjacent8(a, b Coord) bool {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx == 0 && dy == 0 {
		return false
	}
	return dx <= 1 && dy <= 1
}

// DirectionTo returns the direction from a to an orthogonally adjacent b.
// The second result is false when b is not 4-adjacent to a.
func DirectionTo(a, b Coord) (Direction, bool) {
	for _, dir := range AllDirections() {
		if a.Step(dir) == b {
			return dir, true
		}
	}
	return North, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
