package world

import (
	"github.com/zyedidia/generic/mapset"
)

// Reachable returns every walkable coordinate that can be reached from start
// by orthogonal steps. Heat and enemies are ignored.
func (g *Grid) Reachable(start Coord) mapset.Set[Coord] {
	seen := mapset.New[Coord]()
	queue := []Coord{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if seen.Has(current) || !g.IsWalkable(current) {
			continue
		}
		seen.Put(current)

		for _, n := range current.Neighbors4() {
			if !seen.Has(n) && g.IsWalkable(n) {
				queue = append(queue, n)
			}
		}
	}

	return seen
}
