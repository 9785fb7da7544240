package entities

import "sunstroke/pkg/engine/world"

// Enemy is a hostile token. Enemies only reposition; they are damaged by the player.
type Enemy struct {
	Name         string
	Health       int
	StepsPerTurn int

	tile   *world.Tile
	inTurn bool
}

// NewEnemy creates an enemy standing on tile
func NewEnemy(name string, tile *world.Tile, health, stepsPerTurn int) *Enemy {
	return &Enemy{
		Name:         name,
		Health:       health,
		StepsPerTurn: stepsPerTurn,
		tile:         tile,
	}
}

// Tile returns the tile the enemy last settled on
func (e *Enemy) Tile() *world.Tile {
	return e.tile
}

// At returns the enemy's coordinate, false if it is not on the board
func (e *Enemy) At() (world.Coord, bool) {
	if e.tile == nil {
		return world.Coord{}, false
	}
	return e.tile.At, true
}

// Place puts the enemy on tile
func (e *Enemy) Place(tile *world.Tile) {
	e.tile = tile
}

// Dead reports whether the enemy has run out of health
func (e *Enemy) Dead() bool {
	return e.Health <= 0
}

// Steps is the number of steps the enemy may take in one activation
func (e *Enemy) Steps() int {
	return max(0, e.StepsPerTurn)
}

// TakeDamage lowers health. Returns true if this hit killed the enemy.
func (e *Enemy) TakeDamage(amount int) bool {
	if e.Dead() || amount <= 0 {
		return false
	}
	e.Health -= amount
	return e.Dead()
}

// BeginTurn guards against an enemy being activated twice at once.
// Returns false if the enemy is already taking its turn.
func (e *Enemy) BeginTurn() bool {
	if e.inTurn {
		return false
	}
	e.inTurn = true
	return true
}

// EndTurn releases the guard taken by BeginTurn
func (e *Enemy) EndTurn() {
	e.inTurn = false
}

// EnemySnapshot is an enemy's state at level load, used to restore it on retry
type EnemySnapshot struct {
	Enemy  *Enemy
	At     world.Coord
	Health int
}

// Snapshot records the enemy's current position and health
func (e *Enemy) Snapshot() EnemySnapshot {
	at, _ := e.At()
	return EnemySnapshot{Enemy: e, At: at, Health: e.Health}
}

// Restore puts the enemy back on its recorded tile with its recorded health.
// A nil tile leaves the enemy off the board.
func (s EnemySnapshot) Restore(tile *world.Tile) {
	s.Enemy.Health = s.Health
	s.Enemy.tile = tile
	s.Enemy.inTurn = false
}
