package input

import (
	"sort"
	"time"

	"sunstroke/pkg/engine/world"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceTerminal
)

// Action is what a key or click asks the game to do
type Action int

const (
	ActionNone Action = iota

	// Movement (resolved to the neighbouring tile of the player)
	ActionMoveNorth
	ActionMoveSouth
	ActionMoveWest
	ActionMoveEast

	// ActionClick targets an already resolved grid coordinate: attack if an
	// enemy stands there, move otherwise
	ActionClick

	ActionEndTurn
	ActionRetry
	ActionDumpBoard
	ActionCopyBoard
	ActionQuit
)

// Intent is the last input layer: an action, plus the grid coordinate for clicks.
type Intent struct {
	Action Action
	At     world.Coord // only meaningful for ActionClick
}

// Click returns a click intent at the given coordinate
func Click(at world.Coord) Intent {
	return Intent{Action: ActionClick, At: at}
}

// Direction returns the movement direction of a move action
func (i Intent) Direction() (world.Direction, bool) {
	switch i.Action {
	case ActionMoveNorth:
		return world.North, true
	case ActionMoveSouth:
		return world.South, true
	case ActionMoveWest:
		return world.West, true
	case ActionMoveEast:
		return world.East, true
	}
	return world.North, false
}

// RawInput is a key or button event as the device reported it.
// Code names the key, e.g. "w" or "arrow_up".
type RawInput struct {
	Device    Device
	Code      string
	At        world.Coord // grid coordinate already resolved by the device layer (mouse)
	Timestamp time.Time
}

// DebouncedInput is a RawInput after duplicate presses are filtered.
// Frontends apply key repeat themselves, so this is a plain copy today.
type DebouncedInput struct {
	Device Device
	Code   string
	At     world.Coord
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
		At:     raw.At,
	}
}

// Bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
type Bindings struct {
	codes map[string]Action
}

// DefaultBindings returns arrows, WASD and vim keys for movement plus the meta keys
func DefaultBindings() *Bindings {
	return &Bindings{codes: map[string]Action{
		"arrow_up":    ActionMoveNorth,
		"w":           ActionMoveNorth,
		"k":           ActionMoveNorth,
		"arrow_down":  ActionMoveSouth,
		"s":           ActionMoveSouth,
		"j":           ActionMoveSouth,
		"arrow_left":  ActionMoveWest,
		"a":           ActionMoveWest,
		"h":           ActionMoveWest,
		"arrow_right": ActionMoveEast,
		"d":           ActionMoveEast,
		"l":           ActionMoveEast,

		"mouse_left": ActionClick,

		"space":  ActionEndTurn,
		"e":      ActionEndTurn,
		"r":      ActionRetry,
		"f5":     ActionRetry,
		"p":      ActionDumpBoard,
		"y":      ActionCopyBoard,
		"q":      ActionQuit,
		"escape": ActionQuit,
		"ctrl_c": ActionQuit,
	}}
}

// MapToIntent is the 3rd+4th layer: it applies the bindings to a
// debounced input and returns the matching Intent.
func (b *Bindings) MapToIntent(ev DebouncedInput) Intent {
	act, ok := b.codes[ev.Code]
	if !ok {
		return Intent{Action: ActionNone}
	}
	if act == ActionClick {
		return Click(ev.At)
	}
	return Intent{Action: act}
}

// Bind maps code to action, replacing any previous binding of that code
func (b *Bindings) Bind(code string, action Action) {
	if code == "" {
		return
	}
	b.codes[code] = action
}

var actionNames = map[Action]string{
	ActionMoveNorth: "Move North",
	ActionMoveSouth: "Move South",
	ActionMoveWest:  "Move West",
	ActionMoveEast:  "Move East",
	ActionClick:     "Move / Attack",
	ActionEndTurn:   "End Turn",
	ActionRetry:     "Retry Level",
	ActionDumpBoard: "Dump Board",
	ActionCopyBoard: "Copy Board",
	ActionQuit:      "Quit",
}

// ActionName returns the label shown for a in help text and logs
func ActionName(a Action) string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "None"
}

// ByAction returns the bindings grouped by action.
func (b *Bindings) ByAction() map[Action][]string {
	grouped := make(map[Action][]string)
	for code, act := range b.codes {
		grouped[act] = append(grouped[act], code)
	}
	// map order is random; help text must not flicker
	for _, codes := range grouped {
		sort.Strings(codes)
	}
	return grouped
}
