package entities

import (
	"sync/atomic"

	"sunstroke/pkg/engine/world"
)

// PlayerID identifies the player in motion transitions and events
const PlayerID = "player"

// Player is the player token. Its tile is only updated once a move has settled.
type Player struct {
	tile   *world.Tile
	moving atomic.Bool
}

// NewPlayer creates a player standing on tile
func NewPlayer(tile *world.Tile) *Player {
	return &Player{tile: tile}
}

// Tile returns the tile the player stands on (nil before the first level loads)
func (p *Player) Tile() *world.Tile {
	return p.tile
}

// At returns the player's coordinate
func (p *Player) At() world.Coord {
	if p.tile == nil {
		return world.Coord{}
	}
	return p.tile.At
}

// Place puts the player on tile without a transition
func (p *Player) Place(tile *world.Tile) {
	p.tile = tile
}

// IsMoving reports whether a move or strike is in flight.
// Safe to call from any goroutine.
func (p *Player) IsMoving() bool {
	return p.moving.Load()
}

// BeginMove marks the player as moving. Returns false if a move is already in flight.
func (p *Player) BeginMove() bool {
	return p.moving.CompareAndSwap(false, true)
}

// EndMove settles the player on tile (nil keeps the current tile) and clears the moving flag
func (p *Player) EndMove(tile *world.Tile) {
	if tile != nil {
		p.tile = tile
	}
	p.moving.Store(false)
}
