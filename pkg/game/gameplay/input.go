package gameplay

import (
	"context"
	"errors"

	engineinput "sunstroke/pkg/engine/input"
	"sunstroke/pkg/game/state"
)

// ErrUnhandled is returned for intents the game layer does not act on
var ErrUnhandled = errors.New("unhandled intent")

// ProcessIntent applies a player intent to the run. A click attacks a living
// enemy on the clicked tile and otherwise moves there; directions move to the
// neighbouring tile. Reaching the goal advances the campaign.
func ProcessIntent(ctx context.Context, p *Progression, intent engineinput.Intent) error {
	e := p.engine

	var err error
	switch intent.Action {
	case engineinput.ActionNone:
		return nil

	case engineinput.ActionMoveNorth, engineinput.ActionMoveSouth,
		engineinput.ActionMoveWest, engineinput.ActionMoveEast:
		dir, _ := intent.Direction()
		err = e.TryMoveTo(ctx, e.board.Grid.Get(e.player.At().Step(dir)))

	case engineinput.ActionClick:
		tile := e.board.Grid.Get(intent.At)
		if tile != nil && e.enemyAt(tile.At) != nil {
			err = e.TryAttack(ctx, tile)
		} else {
			err = e.TryMoveTo(ctx, tile)
		}

	case engineinput.ActionEndTurn:
		if e.player.IsMoving() {
			return e.blocked(ErrPlayerMoving)
		}
		if e.State() != state.PlayerTurn {
			return e.blocked(ErrNotPlayerTurn)
		}
		e.EndPlayerTurn(ctx)
		return nil

	case engineinput.ActionRetry:
		return p.Retry(ctx)

	default:
		return ErrUnhandled
	}

	if err != nil {
		return err
	}
	if e.GoalReached() {
		return p.Advance(ctx)
	}
	return nil
}
