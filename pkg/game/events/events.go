// Package events carries fire-and-forget notifications from the turn engine
// to observers such as renderers, audio and the message log.
package events

import (
	"sync"

	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/state"
)

// Kind identifies an event
type Kind int

const (
	TurnStateChanged Kind = iota
	HeatChanged
	ActionsChanged
	GoalReached
	GameLost
	GameWon
	RunReset
	Blocked
	EnemyMoved
	EnemyDefeated
	LevelLoaded
)

// String returns the event name
func (k Kind) String() string {
	switch k {
	case TurnStateChanged:
		return "TurnStateChanged"
	case HeatChanged:
		return "HeatChanged"
	case ActionsChanged:
		return "ActionsChanged"
	case GoalReached:
		return "GoalReached"
	case GameLost:
		return "GameLost"
	case GameWon:
		return "GameWon"
	case RunReset:
		return "RunReset"
	case Blocked:
		return "Blocked"
	case EnemyMoved:
		return "EnemyMoved"
	case EnemyDefeated:
		return "EnemyDefeated"
	case LevelLoaded:
		return "LevelLoaded"
	default:
		return "Unknown"
	}
}

// Event is one notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind Kind

	State   state.TurnState // TurnStateChanged
	Heat    int             // HeatChanged, RunReset
	MaxHeat int
	Actions int // ActionsChanged

	Actor    string      // EnemyMoved, EnemyDefeated
	From, To world.Coord // EnemyMoved

	Level int    // LevelLoaded, GoalReached
	Err   error  // Blocked: the rejection reason
	Text  string // Blocked: localized message
}

// Handler receives events. Handlers run on the publisher's goroutine and must not block.
type Handler func(Event)

// Bus fans events out to all current subscribers in subscription order.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
	closed bool
}

type subscription struct {
	id int
	fn Handler
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it. The returned
// function is safe to call more than once and after the bus is closed.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || fn == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// Channel subscribes a buffered channel. Events are dropped when the buffer is
// full so a slow reader never stalls the engine. Unsubscribing closes the channel.
func (b *Bus) Channel(size int) (<-chan Event, func()) {
	ch := make(chan Event, size)
	var mu sync.Mutex
	done := false
	unsub := b.Subscribe(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		if done {
			return
		}
		select {
		case ch <- ev:
		default:
		}
	})
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			unsub()
			mu.Lock()
			done = true
			close(ch)
			mu.Unlock()
		})
	}
}

// Publish delivers ev to every subscriber registered at the time of the call.
// Handlers may subscribe or unsubscribe from inside the callback.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(ev)
	}
}

// Close drops all subscribers. Later Publish and Subscribe calls are no-ops.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = nil
}

// Len returns the number of subscribers
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}
