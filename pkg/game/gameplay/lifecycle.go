package gameplay

import (
	"context"
	"fmt"
	"io"
	"log"

	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/events"
	"sunstroke/pkg/game/level"
	"sunstroke/pkg/game/state"
)

// Transition runs while the engine is locked between two levels, e.g. a fade.
// It must return once the transition is over.
type Transition func(ctx context.Context, from, to *level.Level)

// Progression loads levels into the engine and moves the run through the campaign
type Progression struct {
	engine  *Engine
	catalog *level.Catalog
	logger  *log.Logger

	// Transition is optional
	Transition Transition

	current   int
	loaded    bool
	startHeat int // heat when the current level started, used by Retry
}

// NewProgression creates a progression over catalog. A nil logger discards.
func NewProgression(e *Engine, catalog *level.Catalog, logger *log.Logger) *Progression {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Progression{engine: e, catalog: catalog, logger: logger}
}

// Start loads the given level with the rules' starting heat
func (p *Progression) Start(ctx context.Context, index int) error {
	return p.LoadLevel(ctx, index, p.engine.rules.StartingHeat)
}

// LoadLevel activates the level at index, rebuilds the grid aligned to the
// grid origin, replaces the enemy roster and resets the run at heatToStart.
// On error nothing is changed.
func (p *Progression) LoadLevel(ctx context.Context, index int, heatToStart int) error {
	lv, err := p.catalog.Get(index)
	if err != nil {
		p.logger.Printf("load aborted: %v", err)
		return fmt.Errorf("load level: %w", err)
	}
	p.catalog.Activate(index)

	origin := p.engine.rules.GridOrigin
	grid := world.NewGrid(p.logger)
	if dropped := grid.Build(lv.Tiles(origin)); dropped > 0 {
		p.logger.Printf("level %q: dropped %d duplicate tiles", lv.Name, dropped)
	}
	start, goal := lv.Points(origin)
	board := Board{Grid: grid, Start: start, Goal: goal, Level: index}

	if p.loaded && index == p.current {
		p.engine.Reload(board, heatToStart)
	} else {
		p.engine.Load(board, lv.Enemies(grid, origin), heatToStart)
	}
	p.current = index
	p.loaded = true
	p.startHeat = p.engine.Run().Heat

	p.logger.Printf("loaded level %d %q at heat %d", index, lv.Name, p.startHeat)
	p.engine.publish(events.Event{Kind: events.LevelLoaded, Level: index, Text: lv.Name})
	return nil
}

// Retry reloads the current level at the heat it was started with.
// Ignored while a level transition holds the engine.
func (p *Progression) Retry(ctx context.Context) error {
	if !p.loaded {
		return fmt.Errorf("retry: %w", level.ErrNoLevel)
	}
	if p.engine.State() == state.Busy {
		return ErrNotPlayerTurn
	}
	return p.LoadLevel(ctx, p.current, p.startHeat)
}

// Advance moves on after the goal was reached: the next level is loaded at the
// current heat, or the run is won after the final level.
func (p *Progression) Advance(ctx context.Context) error {
	if !p.engine.GoalReached() {
		return nil
	}
	if p.catalog.IsFinal(p.current) {
		p.engine.Win()
		return nil
	}
	next, _ := p.catalog.Next(p.current)
	heat := p.engine.Run().Heat

	p.engine.SetBusy(true)
	if p.Transition != nil {
		from, _ := p.catalog.Get(p.current)
		to, _ := p.catalog.Get(next)
		p.Transition(ctx, from, to)
	}
	if err := p.LoadLevel(ctx, next, heat); err != nil {
		p.engine.SetBusy(false)
		return err
	}
	p.engine.SetBusy(false)
	return nil
}

// Current returns the index of the loaded level
func (p *Progression) Current() int {
	return p.current
}

// StartHeat returns the heat the current level was started with
func (p *Progression) StartHeat() int {
	return p.startHeat
}

// Catalog returns the campaign
func (p *Progression) Catalog() *level.Catalog {
	return p.catalog
}

// Engine returns the turn engine
func (p *Progression) Engine() *Engine {
	return p.engine
}
