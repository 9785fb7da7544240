package entities

import (
	"testing"

	"sunstroke/pkg/engine/world"
)

func TestPlayerMoveGuard(t *testing.T) {
	start := world.NewTile(world.C(0, 0), world.Start, 0, false)
	next := world.NewTile(world.C(1, 0), world.Sun, 5, false)
	p := NewPlayer(start)

	if !p.BeginMove() {
		t.Fatal("BeginMove() = false on idle player, want true")
	}
	if p.BeginMove() {
		t.Error("BeginMove() = true while moving, want false")
	}
	if p.At() != start.At {
		t.Errorf("At() mid-move = %v, want %v", p.At(), start.At)
	}
	p.EndMove(next)
	if p.IsMoving() {
		t.Error("IsMoving() after EndMove = true, want false")
	}
	if p.Tile() != next {
		t.Errorf("Tile() = %v, want %v", p.Tile().At, next.At)
	}

	p.BeginMove()
	p.EndMove(nil)
	if p.Tile() != next {
		t.Error("EndMove(nil) changed the tile")
	}
}

func TestEnemyTakeDamage(t *testing.T) {
	e := NewEnemy("wisp", nil, 2, 1)
	if e.TakeDamage(1) {
		t.Error("TakeDamage(1) at 2 health = true, want false")
	}
	if !e.TakeDamage(1) {
		t.Error("TakeDamage(1) at 1 health = false, want true")
	}
	if !e.Dead() {
		t.Error("Dead() = false, want true")
	}
	if e.TakeDamage(1) {
		t.Error("TakeDamage on a dead enemy = true, want false")
	}
	if e.Health != 0 {
		t.Errorf("Health = %d, want 0", e.Health)
	}
}

func TestEnemySteps(t *testing.T) {
	tests := []struct {
		steps, want int
	}{
		{2, 2},
		{0, 0},
		{-3, 0},
	}
	for _, tt := range tests {
		e := NewEnemy("e", nil, 1, tt.steps)
		if got := e.Steps(); got != tt.want {
			t.Errorf("Steps() with StepsPerTurn=%d = %d, want %d", tt.steps, got, tt.want)
		}
	}
}

func TestEnemyTurnGuard(t *testing.T) {
	e := NewEnemy("e", nil, 1, 1)
	if !e.BeginTurn() {
		t.Fatal("BeginTurn() = false, want true")
	}
	if e.BeginTurn() {
		t.Error("BeginTurn() while in turn = true, want false")
	}
	e.EndTurn()
	if !e.BeginTurn() {
		t.Error("BeginTurn() after EndTurn = false, want true")
	}
}

func TestSnapshotRestore(t *testing.T) {
	home := world.NewTile(world.C(2, 2), world.Sun, 5, false)
	away := world.NewTile(world.C(3, 2), world.Sun, 5, false)
	e := NewEnemy("e", home, 3, 1)
	snap := e.Snapshot()

	e.Place(away)
	e.TakeDamage(5)
	e.BeginTurn()

	fresh := world.NewTile(world.C(2, 2), world.Sun, 5, false)
	snap.Restore(fresh)
	if e.Health != 3 || e.Dead() {
		t.Errorf("Health after Restore = %d, want 3", e.Health)
	}
	if e.Tile() != fresh {
		t.Error("Restore did not place the enemy on the given tile")
	}
	if !e.BeginTurn() {
		t.Error("Restore did not clear the turn guard")
	}
}
