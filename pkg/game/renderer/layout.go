package renderer

import (
	"math"
	"sync"
	"time"

	"sunstroke/pkg/engine/motion"
	"sunstroke/pkg/engine/world"
)

// BoardLayout maps between screen pixels and grid coordinates for square tiles
type BoardLayout struct {
	OriginX, OriginY int
	TileSize         int
	Gap              int // pixels between tiles that belong to no tile
	Lo               world.Coord
}

// CellAt returns the grid coordinate under pixel (x, y). Clicks in the gap
// between tiles do not count.
func (l BoardLayout) CellAt(x, y int) (world.Coord, bool) {
	dx, dy := x-l.OriginX, y-l.OriginY
	if dx < 0 || dy < 0 || l.TileSize <= 0 {
		return world.Coord{}, false
	}
	if dx%l.TileSize >= l.TileSize-l.Gap || dy%l.TileSize >= l.TileSize-l.Gap {
		return world.Coord{}, false
	}
	return world.C(l.Lo.X+dx/l.TileSize, l.Lo.Y+dy/l.TileSize), true
}

// ScreenPos returns the top-left pixel of a possibly fractional tile position
func (l BoardLayout) ScreenPos(x, y float64) (float32, float32) {
	return float32(float64(l.OriginX) + (x-float64(l.Lo.X))*float64(l.TileSize)),
		float32(float64(l.OriginY) + (y-float64(l.Lo.Y))*float64(l.TileSize))
}

// Tweens tracks running transitions so actors can be drawn sliding between
// tiles. It is a motion.Sink: Begin and End arrive from the engine goroutine
// while frontends read positions from their own.
type Tweens struct {
	mu      sync.Mutex
	running map[string]motion.Transition
}

// NewTweens creates an empty tween set
func NewTweens() *Tweens {
	return &Tweens{running: map[string]motion.Transition{}}
}

// Begin records a transition
func (t *Tweens) Begin(tr motion.Transition) {
	t.mu.Lock()
	t.running[tr.Actor] = tr
	t.mu.Unlock()
}

// End drops the actor's transition
func (t *Tweens) End(tr motion.Transition) {
	t.mu.Lock()
	delete(t.running, tr.Actor)
	t.mu.Unlock()
}

// Position returns where actor should be drawn, in fractional tile
// coordinates. settled is used when nothing is running for the actor.
func (t *Tweens) Position(actor string, settled world.Coord, now time.Time) (x, y float64) {
	t.mu.Lock()
	tr, ok := t.running[actor]
	t.mu.Unlock()
	if !ok {
		return float64(settled.X), float64(settled.Y)
	}

	p := tr.Progress(now)
	if tr.Kind == motion.KindStrike {
		// lunge a third of the way and back
		p = math.Sin(p*math.Pi) / 3
	}
	x = float64(tr.From.X) + (float64(tr.To.X)-float64(tr.From.X))*p
	y = float64(tr.From.Y) + (float64(tr.To.Y)-float64(tr.From.Y))*p
	return x, y
}

var _ motion.Sink = (*Tweens)(nil)
