// Package path finds grid routes for enemy movement.
package path

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"sunstroke/pkg/engine/world"
)

// Pathfinder returns the next single step from start toward any cell that is
// 4-adjacent to target. blocked marks cells that must not be entered in addition
// to the walkability rules of the implementation. The step is always 4-adjacent
// to start and is never target itself.
type Pathfinder interface {
	NextStep(start, target world.Coord, blocked func(world.Coord) bool) (step world.Coord, length int, ok bool)
}

// Walkable reports whether a coordinate can be stood on
type Walkable func(world.Coord) bool

// AStar is a 4-neighbour A* pathfinder over a walkability function
type AStar struct {
	walkable Walkable
}

// NewAStar creates a pathfinder that only enters cells accepted by walkable
func NewAStar(walkable Walkable) *AStar {
	return &AStar{walkable: walkable}
}

// ForGrid creates a pathfinder over the walkable tiles of a grid.
// The grid is read on every call, so rebuilding it is picked up automatically.
func ForGrid(g *world.Grid) *AStar {
	return NewAStar(g.IsWalkable)
}

type node struct {
	at     world.Coord
	g, h   int
	seq    int
	parent *node
}

// NextStep implements Pathfinder.
func (a *AStar) NextStep(start, target world.Coord, blocked func(world.Coord) bool) (world.Coord, int, bool) {
	if world.Adjacent4(start, target) || start == target {
		return world.Coord{}, 0, false
	}

	isGoal := func(c world.Coord) bool {
		return world.Adjacent4(c, target)
	}
	heuristic := func(c world.Coord) int {
		d := world.Manhattan(c, target) - 1
		if d < 0 {
			return 0
		}
		return d
	}
	passable := func(c world.Coord) bool {
		if c == target {
			return false
		}
		if a.walkable != nil && !a.walkable(c) {
			return false
		}
		return blocked == nil || !blocked(c)
	}

	open := heap.New[*node](func(x, y *node) bool {
		fx, fy := x.g+x.h, y.g+y.h
		if fx != fy {
			return fx < fy
		}
		if x.h != y.h {
			return x.h < y.h
		}
		return x.seq < y.seq
	})
	closed := mapset.New[world.Coord]()
	best := make(map[world.Coord]int)

	seq := 0
	open.Push(&node{at: start, h: heuristic(start)})
	best[start] = 0

	for open.Size() > 0 {
		cur, _ := open.Pop()
		if closed.Has(cur.at) {
			continue
		}
		closed.Put(cur.at)

		if cur.at != start && isGoal(cur.at) {
			return firstStep(cur)
		}

		for _, n := range cur.at.Neighbors4() {
			if closed.Has(n) || !passable(n) {
				continue
			}
			cost := cur.g + 1
			if prev, found := best[n]; found && cost >= prev {
				continue
			}
			best[n] = cost
			seq++
			open.Push(&node{at: n, g: cost, h: heuristic(n), seq: seq, parent: cur})
		}
	}
	return world.Coord{}, 0, false
}

// firstStep walks back to the node right after the start
func firstStep(end *node) (world.Coord, int, bool) {
	length := end.g
	n := end
	for n.parent != nil && n.parent.parent != nil {
		n = n.parent
	}
	return n.at, length, true
}
