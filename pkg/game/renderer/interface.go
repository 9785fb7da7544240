package renderer

import (
	"context"

	engineinput "sunstroke/pkg/engine/input"
	"sunstroke/pkg/game/events"
)

// Controller is what a frontend needs from the running game
type Controller interface {
	// Frame returns the latest published frame. Never nil once the game has started.
	Frame() *Frame
	// Submit queues a player intent. Returns false if it was dropped.
	Submit(intent engineinput.Intent) bool
	// Events subscribes to engine events; call the returned func to unsubscribe
	Events(size int) (<-chan events.Event, func())
}

// Renderer is a frontend. Run blocks until the player quits or ctx is done.
type Renderer interface {
	Run(ctx context.Context, c Controller) error
}
