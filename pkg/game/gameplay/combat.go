package gameplay

import (
	"context"

	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/entities"
	"sunstroke/pkg/game/events"
	"sunstroke/pkg/game/state"
)

func (e *Engine) checkAttack(tile *world.Tile) (*entities.Enemy, error) {
	switch {
	case e.run.State != state.PlayerTurn:
		return nil, ErrNotPlayerTurn
	case e.run.ActionsLeft <= 0:
		return nil, ErrNoActions
	case tile == nil:
		return nil, ErrNoTile
	}
	target := e.enemyAt(tile.At)
	if target == nil {
		return nil, ErrNoEnemy
	}
	if !world.Adjacent4(e.player.At(), tile.At) {
		return nil, ErrNotAdjacent
	}
	return target, nil
}

// CanAttackEnemyOnTile reports whether the player can attack a living enemy on tile
func (e *Engine) CanAttackEnemyOnTile(tile *world.Tile) bool {
	_, err := e.checkAttack(tile)
	return err == nil
}

// TryAttack attacks the enemy on an orthogonally adjacent tile. The player
// stays where they are. Rejected attacks publish a Blocked event.
func (e *Engine) TryAttack(ctx context.Context, tile *world.Tile) error {
	if e.player.IsMoving() {
		return e.blocked(ErrPlayerMoving)
	}
	target, err := e.checkAttack(tile)
	if err != nil {
		return e.blocked(err)
	}
	if !e.player.BeginMove() {
		return e.blocked(ErrPlayerMoving)
	}
	e.anim.Strike(ctx, entities.PlayerID, e.player.At(), tile.At)
	e.player.EndMove(nil)

	e.attack(ctx, target)
	return nil
}

// attack resolves a strike: damage, action and heat cost, then the same
// terminal and end-of-turn checks as a move.
func (e *Engine) attack(ctx context.Context, target *entities.Enemy) {
	if target.TakeDamage(e.rules.AttackDamage) {
		e.removeEnemy(target)
		e.publish(events.Event{Kind: events.EnemyDefeated, Actor: target.Name})
	}

	e.run.SpendAction()
	e.publishActions()
	if e.run.AddHeat(e.rules.AttackHeatCost) {
		e.publishHeat()
	}

	if e.checkHeatLoss() {
		return
	}
	if e.run.ActionsLeft == 0 {
		e.EndPlayerTurn(ctx)
	}
}
