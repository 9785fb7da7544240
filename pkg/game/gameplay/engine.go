// Package gameplay implements the turn engine: the player's action economy,
// the heat and burn rules, the enemy phase and level progression.
//
// The engine has a single writer. Every exported method must be called from
// the same goroutine (the session loop); observers get events on that goroutine.
package gameplay

import (
	"context"
	"io"
	"log"
	"time"

	"sunstroke/pkg/engine/motion"
	"sunstroke/pkg/engine/path"
	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/config"
	"sunstroke/pkg/game/entities"
	"sunstroke/pkg/game/events"
	"sunstroke/pkg/game/state"
)

// Board is the loaded level as the engine sees it
type Board struct {
	Grid  *world.Grid
	Start world.Coord
	Goal  world.Coord
	Level int
}

// PathfinderFor builds the pathfinder used for a grid
type PathfinderFor func(g *world.Grid) path.Pathfinder

// Options configure an Engine. Zero values pick working defaults.
type Options struct {
	Rules      config.Rules
	Animator   motion.Animator // default: motion.Instant
	Pathfinder PathfinderFor   // default: A* over the grid's walkable tiles
	Bus        *events.Bus     // default: a private bus
	Logger     *log.Logger     // default: discard
}

// Engine is the turn engine
type Engine struct {
	rules  config.Rules
	anim   motion.Animator
	pathFn PathfinderFor
	bus    *events.Bus
	logger *log.Logger

	board  Board
	paths  path.Pathfinder
	run    *state.Run
	player *entities.Player

	roster  []*entities.Enemy // live enemies, authoring order
	initial []entities.EnemySnapshot

	goalReached bool

	// pause waits between enemy steps; replaceable in tests
	pause func(ctx context.Context, d time.Duration) bool
}

// NewEngine creates an engine with no level loaded
func NewEngine(opts Options) *Engine {
	e := &Engine{
		rules:  opts.Rules,
		anim:   opts.Animator,
		pathFn: opts.Pathfinder,
		bus:    opts.Bus,
		logger: opts.Logger,
		player: entities.NewPlayer(nil),
		pause:  motion.Pause,
	}
	if e.anim == nil {
		e.anim = motion.Instant{}
	}
	if e.pathFn == nil {
		e.pathFn = func(g *world.Grid) path.Pathfinder { return path.ForGrid(g) }
	}
	if e.bus == nil {
		e.bus = events.NewBus()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard, "", 0)
	}
	e.run = state.NewRun(e.rules.MaxHeat, e.rules.StartingHeat, e.rules.ActionsPerTurn)
	return e
}

// Load replaces the board and the enemy roster, snapshots the enemies and
// starts a fresh player turn at the given heat.
func (e *Engine) Load(b Board, enemies []*entities.Enemy, heat int) {
	e.setBoard(b)
	e.initial = e.initial[:0]
	for _, en := range enemies {
		e.initial = append(e.initial, en.Snapshot())
	}
	e.ResetRun(heat)
}

// Reload swaps in a freshly built board for the current level and restores
// the enemies from their load-time snapshot.
func (e *Engine) Reload(b Board, heat int) {
	e.setBoard(b)
	e.ResetRun(heat)
}

func (e *Engine) setBoard(b Board) {
	e.board = b
	e.paths = e.pathFn(b.Grid)
	if msg := b.Grid.Validate(b.Start, b.Goal); msg != "" {
		e.logger.Printf("board for level %d: %s", b.Level, msg)
	}
}

// ResetRun restores every enemy to its initial tile and health, puts the
// player back on the start tile and resets the run state.
func (e *Engine) ResetRun(heat int) {
	e.roster = e.roster[:0]
	for _, s := range e.initial {
		tile := e.board.Grid.Get(s.At)
		if tile == nil {
			e.logger.Printf("enemy %s: initial tile %v missing, leaving it off the board", s.Enemy.Name, s.At)
		}
		s.Restore(tile)
		if !s.Enemy.Dead() && tile != nil {
			e.roster = append(e.roster, s.Enemy)
		}
	}

	e.player.Place(e.board.Grid.Get(e.board.Start))
	e.goalReached = false
	e.run.Reset(heat, e.rules.ActionsPerTurn)

	e.publish(events.Event{Kind: events.RunReset, Heat: e.run.Heat, MaxHeat: e.run.MaxHeat})
	e.publishHeat()
	e.publishActions()
	e.publishState()
}

// StartPlayerTurn gives the player a full action budget. No-op once the run is over.
func (e *Engine) StartPlayerTurn() {
	if e.run.State.Terminal() {
		return
	}
	e.run.ActionsLeft = e.rules.ActionsPerTurn
	e.setState(state.PlayerTurn)
	e.publishActions()
}

// EndPlayerTurn hands control to the enemy phase. No-op unless it is the player's turn.
func (e *Engine) EndPlayerTurn(ctx context.Context) {
	if e.run.State != state.PlayerTurn {
		return
	}
	e.runEnemyPhase(ctx)
}

// SetBusy locks input for a level transition; releasing it starts a player turn.
func (e *Engine) SetBusy(busy bool) {
	if !busy {
		e.StartPlayerTurn()
		return
	}
	if e.run.State.Terminal() {
		return
	}
	e.setState(state.Busy)
}

// Win ends the run in victory. Idempotent.
func (e *Engine) Win() {
	if e.run.State.Terminal() {
		return
	}
	e.setState(state.Won)
	e.publish(events.Event{Kind: events.GameWon, Level: e.board.Level})
}

// Lose ends the run in defeat. Idempotent.
func (e *Engine) Lose() {
	if e.run.State.Terminal() {
		return
	}
	e.setState(state.Lost)
	e.publish(events.Event{Kind: events.GameLost, Level: e.board.Level})
}

// ApplyExternalHeat adds heat from outside the player's own actions and checks
// the heat cap. Ignored once the run is over.
func (e *Engine) ApplyExternalHeat(amount int) {
	if e.run.State.Terminal() {
		return
	}
	if e.run.AddHeat(amount) {
		e.publishHeat()
	}
	e.checkHeatLoss()
}

// checkHeatLoss loses the run at the heat cap. Returns true if it did.
func (e *Engine) checkHeatLoss() bool {
	if !e.run.AtHeatCap() {
		return false
	}
	e.Lose()
	return true
}

// Run returns a copy of the run state
func (e *Engine) Run() state.Run {
	return *e.run
}

// State returns the current turn state
func (e *Engine) State() state.TurnState {
	return e.run.State
}

// Rules returns the rules in force
func (e *Engine) Rules() config.Rules {
	return e.rules
}

// Board returns the loaded board
func (e *Engine) Board() Board {
	return e.board
}

// Player returns the player token
func (e *Engine) Player() *entities.Player {
	return e.player
}

// GoalReached reports whether the player stepped on the goal of the current level
func (e *Engine) GoalReached() bool {
	return e.goalReached
}

// Bus returns the event bus the engine publishes to
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

func (e *Engine) setState(s state.TurnState) {
	if e.run.State == s {
		return
	}
	e.run.State = s
	e.publishState()
}

func (e *Engine) publish(ev events.Event) {
	e.bus.Publish(ev)
}

func (e *Engine) publishState() {
	e.publish(events.Event{Kind: events.TurnStateChanged, State: e.run.State})
}

func (e *Engine) publishHeat() {
	e.publish(events.Event{Kind: events.HeatChanged, Heat: e.run.Heat, MaxHeat: e.run.MaxHeat})
}

func (e *Engine) publishActions() {
	e.publish(events.Event{Kind: events.ActionsChanged, Actions: e.run.ActionsLeft})
}

func (e *Engine) blocked(err error) error {
	e.publish(events.Event{Kind: events.Blocked, Err: err, Text: blockedText(err)})
	return err
}
