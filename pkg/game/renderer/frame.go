// Package renderer holds what frontends share: the immutable Frame they draw
// from, tile glyphs and the message markup.
package renderer

import (
	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/state"
)

// TileView is a read-only copy of a tile
type TileView struct {
	At         world.Coord
	Type       world.TileType
	HeatDelta  int
	Consumable bool
}

// EnemyView is a read-only copy of a living enemy
type EnemyView struct {
	Name   string
	At     world.Coord
	Health int
	Threat bool // touching the player, diagonals included
}

// Frame is an immutable picture of the game for one draw. Frames are
// published whole and never modified afterwards, so any goroutine may read them.
type Frame struct {
	Level     int
	LevelName string
	Turn      int // player turns started in this session
	Run       state.Run

	Player       world.Coord
	PlayerMoving bool
	Start, Goal  world.Coord

	Lo, Hi  world.Coord
	Tiles   map[world.Coord]TileView
	Enemies []EnemyView

	Messages []string
}

// Tile returns the tile at c
func (f *Frame) Tile(c world.Coord) (TileView, bool) {
	t, ok := f.Tiles[c]
	return t, ok
}

// Enemy returns the living enemy at c
func (f *Frame) Enemy(c world.Coord) (EnemyView, bool) {
	for _, e := range f.Enemies {
		if e.At == c {
			return e, true
		}
	}
	return EnemyView{}, false
}

// Size returns the board width and height in tiles
func (f *Frame) Size() (w, h int) {
	if len(f.Tiles) == 0 {
		return 0, 0
	}
	return f.Hi.X - f.Lo.X + 1, f.Hi.Y - f.Lo.Y + 1
}

// Glyph constants
const (
	PlayerIcon = "@"
	EnemyIcon  = "e"
	IconVoid   = " "
)

// TileGlyph returns the single-character symbol of a tile type
func TileGlyph(t TileView) string {
	switch t.Type {
	case world.Start:
		return "<"
	case world.End:
		return ">"
	case world.Sun:
		return "."
	case world.Burn:
		return "^"
	case world.Shade:
		if t.Consumable {
			return "h"
		}
		return "H"
	case world.Drink:
		if t.Consumable {
			return "d"
		}
		return "D"
	case world.Blocked:
		return "#"
	}
	return "?"
}

// Glyph returns what is drawn at c: the player, an enemy or the tile
func (f *Frame) Glyph(c world.Coord) string {
	if c == f.Player {
		return PlayerIcon
	}
	if _, ok := f.Enemy(c); ok {
		return EnemyIcon
	}
	if t, ok := f.Tile(c); ok {
		return TileGlyph(t)
	}
	return IconVoid
}

// HeatBar renders heat as a bar of width cells
func HeatBar(heat, maxHeat, width int) string {
	if maxHeat <= 0 || width <= 0 {
		return ""
	}
	filled := heat * width / maxHeat
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
