// Package level turns authored level files into tiles and enemies.
//
// A level is drawn as rows of characters, one per tile:
//
//	S  start        E  goal
//	.  sun          B  burn
//	h  shade (one-shot)   H  shade (permanent)
//	d  drink (one-shot)   D  drink (permanent)
//	#  blocked      (space) no tile
//
// Row 0 is the northern edge. Per-tile heat overrides and enemies are given
// separately in local coordinates (column, row).
package level

import (
	"errors"
	"fmt"

	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/config"
	"sunstroke/pkg/game/entities"
)

// ErrInvalidLevel is wrapped by every level validation failure
var ErrInvalidLevel = errors.New("invalid level")

// Definition is a level as authored
type Definition struct {
	Name      string       `json:"name"`
	Rows      []string     `json:"rows"`
	Anchor    *world.Coord `json:"anchor,omitempty"` // defaults to the start tile
	Overrides []Override   `json:"overrides,omitempty"`
	Enemies   []EnemySpec  `json:"enemies,omitempty"`
}

// Override replaces the default heat or one-shot flag of a single tile
type Override struct {
	At         world.Coord `json:"at"`
	Heat       *int        `json:"heat,omitempty"`
	Consumable *bool       `json:"consumable,omitempty"`
}

// EnemySpec places an enemy
type EnemySpec struct {
	Name   string      `json:"name"`
	At     world.Coord `json:"at"`
	Health int         `json:"health"`
	Steps  int         `json:"steps"`
}

type cell struct {
	typ        world.TileType
	consumable bool
}

var legend = map[rune]cell{
	'S': {world.Start, false},
	'E': {world.End, false},
	'.': {world.Sun, false},
	'B': {world.Burn, false},
	'h': {world.Shade, true},
	'H': {world.Shade, false},
	'd': {world.Drink, true},
	'D': {world.Drink, false},
	'#': {world.Blocked, false},
}

// Level is a validated level ready to be loaded. Tiles and enemies are created
// fresh on every call so a reload restores one-shot tiles.
type Level struct {
	Index  int
	Name   string
	Start  world.Coord // local
	Goal   world.Coord // local
	Anchor world.Coord // local
	Active bool

	cells   map[world.Coord]cell
	heat    map[world.Coord]int
	enemies []EnemySpec
}

// Compile validates a definition and resolves defaults using the per-type heat table.
func Compile(index int, def Definition, heat config.TileHeat) (*Level, error) {
	name := def.Name
	if name == "" {
		name = fmt.Sprintf("level %d", index+1)
	}
	fail := func(format string, args ...any) (*Level, error) {
		return nil, fmt.Errorf("%w %q: %s", ErrInvalidLevel, name, fmt.Sprintf(format, args...))
	}

	l := &Level{
		Index: index,
		Name:  name,
		cells: make(map[world.Coord]cell),
		heat:  make(map[world.Coord]int),
	}

	starts, goals := 0, 0
	for y, row := range def.Rows {
		x := 0
		for _, r := range row {
			at := world.C(x, y)
			x++
			if r == ' ' {
				continue
			}
			c, ok := legend[r]
			if !ok {
				return fail("unknown tile %q at %v", r, at)
			}
			switch c.typ {
			case world.Start:
				starts++
				l.Start = at
			case world.End:
				goals++
				l.Goal = at
			}
			l.cells[at] = c
			l.heat[at] = heat.For(c.typ)
		}
	}
	if starts != 1 {
		return fail("want exactly one start tile, found %d", starts)
	}
	if goals != 1 {
		return fail("want exactly one goal tile, found %d", goals)
	}

	for _, o := range def.Overrides {
		c, ok := l.cells[o.At]
		if !ok {
			return fail("override at %v has no tile", o.At)
		}
		if o.Heat != nil {
			l.heat[o.At] = *o.Heat
		}
		if o.Consumable != nil {
			if *o.Consumable && !c.typ.CanBeConsumable() {
				return fail("%s tile at %v cannot be one-shot", c.typ, o.At)
			}
			c.consumable = *o.Consumable
			l.cells[o.At] = c
		}
	}

	l.Anchor = l.Start
	if def.Anchor != nil {
		l.Anchor = *def.Anchor
	}

	names := make(map[string]bool)
	occupied := make(map[world.Coord]bool)
	for i, e := range def.Enemies {
		if e.Name == "" {
			e.Name = fmt.Sprintf("enemy-%d", i+1)
		}
		if e.Health <= 0 {
			e.Health = 1
		}
		if names[e.Name] {
			return fail("duplicate enemy name %q", e.Name)
		}
		c, ok := l.cells[e.At]
		switch {
		case !ok || c.typ == world.Blocked:
			return fail("enemy %q at %v is not on a walkable tile", e.Name, e.At)
		case e.At == l.Start:
			return fail("enemy %q stands on the start tile", e.Name)
		case occupied[e.At]:
			return fail("enemy %q shares %v with another enemy", e.Name, e.At)
		}
		names[e.Name] = true
		occupied[e.At] = true
		l.enemies = append(l.enemies, e)
	}

	grid := world.NewGrid(nil)
	grid.Build(l.Tiles(l.Anchor))
	if msg := grid.Validate(l.Start, l.Goal); msg != "" {
		return fail("%s", msg)
	}
	return l, nil
}

// Offset is the translation from local coordinates to the world grid when the
// level's anchor is aligned to origin.
func (l *Level) Offset(origin world.Coord) world.Coord {
	return origin.Sub(l.Anchor)
}

// Tiles creates fresh tiles aligned so the anchor lands on origin.
func (l *Level) Tiles(origin world.Coord) []*world.Tile {
	off := l.Offset(origin)
	tiles := make([]*world.Tile, 0, len(l.cells))
	for at, c := range l.cells {
		tiles = append(tiles, world.NewTile(at.Add(off), c.typ, l.heat[at], c.consumable))
	}
	return tiles
}

// Enemies creates the level's enemies on the given grid, in authoring order.
// The grid must have been built from Tiles(origin).
func (l *Level) Enemies(grid *world.Grid, origin world.Coord) []*entities.Enemy {
	off := l.Offset(origin)
	out := make([]*entities.Enemy, 0, len(l.enemies))
	for _, e := range l.enemies {
		out = append(out, entities.NewEnemy(e.Name, grid.Get(e.At.Add(off)), e.Health, e.Steps))
	}
	return out
}

// Points returns the start and goal in world coordinates
func (l *Level) Points(origin world.Coord) (start, goal world.Coord) {
	off := l.Offset(origin)
	return l.Start.Add(off), l.Goal.Add(off)
}
