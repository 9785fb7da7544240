// Package motion provides time-bounded actor transitions between grid tiles.
//
// A transition is atomic from the caller's point of view: Move does not return
// until the actor has settled on the destination, and there is no way to stop
// a transition once it has started. Interpolated positions are only visible to
// a Sink (typically a renderer), never to game logic.
package motion

import (
	"context"
	"time"

	"sunstroke/pkg/engine/world"
)

// Kind distinguishes transition types reported to a Sink
type Kind int

const (
	KindMove Kind = iota
	KindStrike
)

// Animator runs actor transitions
type Animator interface {
	// Move blocks until actor has travelled from one tile to the next
	Move(ctx context.Context, actor string, from, to world.Coord)
	// Strike blocks while actor performs an attack toward a neighbouring tile
	Strike(ctx context.Context, actor string, from, toward world.Coord)
}

// Transition describes one running transition
type Transition struct {
	Kind     Kind
	Actor    string
	From     world.Coord
	To       world.Coord
	Started  time.Time
	Duration time.Duration
}

// Progress returns the completed fraction of the transition at now, in [0,1]
func (t Transition) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Started)) / float64(t.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Sink observes transitions, e.g. to interpolate sprite positions
type Sink interface {
	Begin(t Transition)
	End(t Transition)
}

// Timed is an Animator that takes a fixed wall-clock time per transition
type Timed struct {
	MoveDuration   time.Duration
	StrikeDuration time.Duration
	Sink           Sink

	// sleep is replaceable in tests
	sleep func(time.Duration)
	now   func() time.Time
}

// NewTimed creates a timed animator. sink may be nil.
func NewTimed(move, strike time.Duration, sink Sink) *Timed {
	return &Timed{
		MoveDuration:   move,
		StrikeDuration: strike,
		Sink:           sink,
		sleep:          time.Sleep,
		now:            time.Now,
	}
}

// Move implements Animator. The context is not consulted: a started move always completes.
func (a *Timed) Move(_ context.Context, actor string, from, to world.Coord) {
	a.run(Transition{Kind: KindMove, Actor: actor, From: from, To: to, Duration: a.MoveDuration})
}

// Strike implements Animator
func (a *Timed) Strike(_ context.Context, actor string, from, toward world.Coord) {
	a.run(Transition{Kind: KindStrike, Actor: actor, From: from, To: toward, Duration: a.StrikeDuration})
}

func (a *Timed) run(t Transition) {
	now := a.now
	if now == nil {
		now = time.Now
	}
	sleep := a.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	t.Started = now()
	if a.Sink != nil {
		a.Sink.Begin(t)
	}
	if t.Duration > 0 {
		sleep(t.Duration)
	}
	if a.Sink != nil {
		a.Sink.End(t)
	}
}

// Instant is an Animator whose transitions complete immediately
type Instant struct{}

// Move implements Animator
func (Instant) Move(context.Context, string, world.Coord, world.Coord) {}

// Strike implements Animator
func (Instant) Strike(context.Context, string, world.Coord, world.Coord) {}

// Pause waits for d or until ctx is done, whichever comes first.
// Returns false if the context ended the wait early.
func Pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
