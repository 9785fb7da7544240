package gameplay

import (
	"errors"

	"github.com/leonelquinteros/gotext"
)

// Rejection reasons for player commands. None of them are fatal; the command
// is dropped and a Blocked event is published.
var (
	ErrNotPlayerTurn = errors.New("not the player's turn")
	ErrNoActions     = errors.New("no actions left this turn")
	ErrNoTile        = errors.New("no tile there")
	ErrNotWalkable   = errors.New("tile is not walkable")
	ErrOccupied      = errors.New("tile is occupied by an enemy")
	ErrBurnStreak    = errors.New("too many burn tiles in a row")
	ErrNotAdjacent   = errors.New("tile is not adjacent")
	ErrPlayerMoving  = errors.New("player is still moving")
	ErrNoEnemy       = errors.New("no enemy there")
)

// blockedText returns the player-facing message for a rejection
func blockedText(err error) string {
	switch {
	case errors.Is(err, ErrNotPlayerTurn):
		return gotext.Get("BLOCKED_NOT_YOUR_TURN")
	case errors.Is(err, ErrNoActions):
		return gotext.Get("BLOCKED_NO_ACTIONS")
	case errors.Is(err, ErrNoTile), errors.Is(err, ErrNotWalkable):
		return gotext.Get("BLOCKED_TERRAIN")
	case errors.Is(err, ErrOccupied):
		return gotext.Get("BLOCKED_OCCUPIED")
	case errors.Is(err, ErrBurnStreak):
		return gotext.Get("BLOCKED_BURN_STREAK")
	case errors.Is(err, ErrNotAdjacent):
		return gotext.Get("BLOCKED_NOT_ADJACENT")
	case errors.Is(err, ErrPlayerMoving):
		return gotext.Get("BLOCKED_MOVING")
	case errors.Is(err, ErrNoEnemy):
		return gotext.Get("BLOCKED_NO_ENEMY")
	}
	return gotext.Get("BLOCKED_OTHER")
}
