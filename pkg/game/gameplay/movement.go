package gameplay

import (
	"context"

	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/entities"
	"sunstroke/pkg/game/events"
	"sunstroke/pkg/game/state"
)

// checkEnter returns why the player may not enter tile, or nil
func (e *Engine) checkEnter(tile *world.Tile) error {
	switch {
	case e.run.State != state.PlayerTurn:
		return ErrNotPlayerTurn
	case tile == nil:
		return ErrNoTile
	case !tile.Walkable():
		return ErrNotWalkable
	case e.run.ActionsLeft <= 0:
		return ErrNoActions
	case e.enemyAt(tile.At) != nil:
		return ErrOccupied
	case tile.Type == world.Burn && e.run.BurnStreak >= e.rules.MaxConsecutiveBurnTiles:
		return ErrBurnStreak
	}
	return nil
}

func (e *Engine) checkMove(tile *world.Tile) error {
	if err := e.checkEnter(tile); err != nil {
		return err
	}
	if !world.Adjacent4(e.player.At(), tile.At) {
		return ErrNotAdjacent
	}
	return nil
}

// CanEnterTile reports whether the player could stand on tile this turn,
// ignoring distance.
func (e *Engine) CanEnterTile(tile *world.Tile) bool {
	return e.checkEnter(tile) == nil
}

// CanMoveToTile is CanEnterTile plus orthogonal adjacency to the player
func (e *Engine) CanMoveToTile(tile *world.Tile) bool {
	return e.checkMove(tile) == nil
}

// TryMoveTo moves the player one tile. The move transition runs to completion
// before any tile effect is applied. Rejected moves publish a Blocked event.
func (e *Engine) TryMoveTo(ctx context.Context, tile *world.Tile) error {
	if e.player.IsMoving() {
		return e.blocked(ErrPlayerMoving)
	}
	if err := e.checkMove(tile); err != nil {
		return e.blocked(err)
	}
	if !e.player.BeginMove() {
		return e.blocked(ErrPlayerMoving)
	}
	e.anim.Move(ctx, entities.PlayerID, e.player.At(), tile.At)
	e.player.EndMove(tile)

	e.OnPlayerEnteredTile(ctx, tile)
	return nil
}

// OnPlayerEnteredTile applies the effects of the player settling on tile:
// burn streak, action cost, heat, one-shot consumption, then goal, heat loss
// and end of turn, in that order. Ignored outside the player's turn or for a
// nil tile.
func (e *Engine) OnPlayerEnteredTile(ctx context.Context, tile *world.Tile) {
	if tile == nil {
		e.logger.Printf("tile entry without a tile ignored")
		return
	}
	if e.run.State != state.PlayerTurn {
		e.logger.Printf("tile entry at %v ignored in state %s", tile.At, e.run.State)
		return
	}

	e.run.TrackBurn(tile.Type == world.Burn)
	e.run.SpendAction()
	e.publishActions()

	if e.run.AddHeat(tile.HeatDelta) {
		e.publishHeat()
	}
	if tile.Consume() {
		e.logger.Printf("consumed one-shot tile at %v", tile.At)
	}

	if tile.At == e.board.Goal {
		e.goalReached = true
		e.setState(state.Busy)
		e.publish(events.Event{Kind: events.GoalReached, Level: e.board.Level})
		return
	}
	if e.checkHeatLoss() {
		return
	}
	if e.run.ActionsLeft == 0 {
		e.EndPlayerTurn(ctx)
	}
}
