package world

import (
	"io"
	"log"
	"sort"
)

// Grid maps coordinates to tiles for the active level.
// It is rebuilt wholesale on every level load and never patched.
type Grid struct {
	tiles map[Coord]*Tile
	order []Coord // (y, x) order for deterministic iteration

	min, max Coord

	logger *log.Logger
}

// NewGrid creates an empty grid. A nil logger discards warnings.
func NewGrid(logger *log.Logger) *Grid {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Grid{
		tiles:  make(map[Coord]*Tile),
		logger: logger,
	}
}

// Build clears the grid and registers the given tiles. A tile whose coordinate is
// already registered is logged and dropped; the first registration wins.
// Returns the number of dropped tiles.
func (g *Grid) Build(tiles []*Tile) int {
	g.tiles = make(map[Coord]*Tile, len(tiles))
	g.order = g.order[:0]

	dropped := 0
	for _, t := range tiles {
		if t == nil {
			continue
		}
		if existing, found := g.tiles[t.At]; found {
			g.logger.Printf("duplicate tile at %v (%v), keeping %v", t.At, t.Type, existing.Type)
			dropped++
			continue
		}
		g.tiles[t.At] = t
		g.order = append(g.order, t.At)
	}

	sort.Slice(g.order, func(i, j int) bool {
		a, b := g.order[i], g.order[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	g.min, g.max = Coord{}, Coord{}
	for i, c := range g.order {
		if i == 0 {
			g.min, g.max = c, c
			continue
		}
		g.min.X = min(g.min.X, c.X)
		g.min.Y = min(g.min.Y, c.Y)
		g.max.X = max(g.max.X, c.X)
		g.max.Y = max(g.max.Y, c.Y)
	}

	g.logger.Printf("grid built: %d tiles registered, %d dropped", len(g.tiles), dropped)
	return dropped
}

// Get returns the tile at c, or nil if there is none
func (g *Grid) Get(c Coord) *Tile {
	if g == nil || g.tiles == nil {
		return nil
	}
	return g.tiles[c]
}

// Len returns the number of registered tiles
func (g *Grid) Len() int {
	return len(g.tiles)
}

// Bounds returns the smallest and largest coordinates holding a tile
func (g *Grid) Bounds() (lo, hi Coord) {
	return g.min, g.max
}

// IsWalkable returns true if there is a walkable tile at c
func (g *Grid) IsWalkable(c Coord) bool {
	return g.Get(c).Walkable()
}

// ForEach calls fn for each tile, row by row
func (g *Grid) ForEach(fn func(t *Tile)) {
	for _, c := range g.order {
		fn(g.tiles[c])
	}
}

// Adjacent4 reports whether a and b are orthogonal neighbours
func (g *Grid) Adjacent4(a, b Coord) bool {
	return Adjacent4(a, b)
}

// Adjacent8 reports whether a and b touch orthogonally or diagonally
func (g *Grid) Adjacent8(a, b Coord) bool {
	return Adjacent8(a, b)
}

// Validate checks the grid for common issues and returns an error description or empty string if valid
func (g *Grid) Validate(start, goal Coord) string {
	if len(g.tiles) == 0 {
		return "Grid has no tiles"
	}
	if s := g.Get(start); s == nil {
		return "Grid has no start tile"
	} else if !s.Walkable() {
		return "Start tile is not walkable"
	}
	if e := g.Get(goal); e == nil {
		return "Grid has no goal tile"
	} else if !e.Walkable() {
		return "Goal tile is not walkable"
	}
	if reach := g.Reachable(start); !reach.Has(goal) {
		return "Goal cannot be reached from start"
	}
	return ""
}
