package gameplay

import (
	"context"
	"fmt"
	"testing"

	"sunstroke/pkg/engine/path"
	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/config"
	"sunstroke/pkg/game/events"
	"sunstroke/pkg/game/level"
	"sunstroke/pkg/game/state"
)

// recordingAnimator completes every transition at once and logs it
type recordingAnimator struct {
	moves   []string
	strikes []string
	onMove  func(actor string, to world.Coord)
}

func (a *recordingAnimator) Move(_ context.Context, actor string, from, to world.Coord) {
	a.moves = append(a.moves, fmt.Sprintf("%s %v->%v", actor, from, to))
	if a.onMove != nil {
		a.onMove(actor, to)
	}
}

func (a *recordingAnimator) Strike(_ context.Context, actor string, from, toward world.Coord) {
	a.strikes = append(a.strikes, fmt.Sprintf("%s %v->%v", actor, from, toward))
}

// scriptedPathfinder answers from a fixed from→to table, honouring blocked
type scriptedPathfinder struct {
	steps map[world.Coord]world.Coord
	calls int
}

func (s *scriptedPathfinder) NextStep(start, _ world.Coord, blocked func(world.Coord) bool) (world.Coord, int, bool) {
	s.calls++
	next, ok := s.steps[start]
	if !ok || blocked(next) {
		return world.Coord{}, 0, false
	}
	return next, 1, true
}

type fixture struct {
	e      *Engine
	anim   *recordingAnimator
	paths  *scriptedPathfinder
	events []events.Event
}

func testRules() config.Rules {
	r := config.Default()
	r.Timing = config.Timing{}
	return r
}

// newFixture loads rows and enemies into a fresh engine. A nil script uses A*.
func newFixture(t *testing.T, rows []string, enemies []level.EnemySpec, script map[world.Coord]world.Coord, mutate func(*config.Rules)) *fixture {
	t.Helper()
	rules := testRules()
	if mutate != nil {
		mutate(&rules)
	}
	f := &fixture{anim: &recordingAnimator{}}
	opts := Options{Rules: rules, Animator: f.anim}
	if script != nil {
		f.paths = &scriptedPathfinder{steps: script}
		opts.Pathfinder = func(*world.Grid) path.Pathfinder { return f.paths }
	}
	f.e = NewEngine(opts)
	f.e.Bus().Subscribe(func(ev events.Event) { f.events = append(f.events, ev) })

	lv, err := level.Compile(0, level.Definition{Rows: rows, Enemies: enemies}, rules.TileHeat)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	grid := world.NewGrid(nil)
	grid.Build(lv.Tiles(lv.Anchor))
	start, goal := lv.Points(lv.Anchor)
	f.e.Load(Board{Grid: grid, Start: start, Goal: goal}, lv.Enemies(grid, lv.Anchor), rules.StartingHeat)
	f.events = nil
	return f
}

func (f *fixture) tile(t *testing.T, x, y int) *world.Tile {
	t.Helper()
	tile := f.e.Board().Grid.Get(world.C(x, y))
	if tile == nil {
		t.Fatalf("no tile at (%d,%d)", x, y)
	}
	return tile
}

func (f *fixture) move(t *testing.T, x, y int) {
	t.Helper()
	if err := f.e.TryMoveTo(context.Background(), f.tile(t, x, y)); err != nil {
		t.Fatalf("TryMoveTo(%d,%d) error = %v", x, y, err)
	}
}

func (f *fixture) count(kind events.Kind) int {
	n := 0
	for _, ev := range f.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func (f *fixture) states() []state.TurnState {
	var out []state.TurnState
	for _, ev := range f.events {
		if ev.Kind == events.TurnStateChanged {
			out = append(out, ev.State)
		}
	}
	return out
}

func (f *fixture) enemyAt(t *testing.T, name string) world.Coord {
	t.Helper()
	for _, s := range f.e.InitialEnemies() {
		if s.Enemy.Name == name {
			at, _ := s.Enemy.At()
			return at
		}
	}
	t.Fatalf("no enemy %q", name)
	return world.Coord{}
}

// newProgression builds a progression over a JSON level file
func newProgression(t *testing.T, levels string, mutate func(*config.Rules)) (*Progression, *fixture) {
	t.Helper()
	rules := testRules()
	if mutate != nil {
		mutate(&rules)
	}
	catalog, err := level.Parse([]byte(levels), rules.TileHeat)
	if err != nil {
		t.Fatalf("level.Parse() error = %v", err)
	}
	f := &fixture{anim: &recordingAnimator{}}
	f.e = NewEngine(Options{Rules: rules, Animator: f.anim})
	f.e.Bus().Subscribe(func(ev events.Event) { f.events = append(f.events, ev) })
	return NewProgression(f.e, catalog, nil), f
}
