// Package session wires the turn engine, the level progression and the event
// bus together and serves frames and events to the frontends.
//
// All engine calls happen on one goroutine: either the one running Run, or a
// frontend that calls Handle from its own loop. Frontends read frames and
// event subscriptions from any goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/leonelquinteros/gotext"

	engineinput "sunstroke/pkg/engine/input"
	"sunstroke/pkg/engine/motion"
	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/config"
	"sunstroke/pkg/game/devtools"
	"sunstroke/pkg/game/events"
	"sunstroke/pkg/game/gameplay"
	"sunstroke/pkg/game/level"
	"sunstroke/pkg/game/renderer"
	"sunstroke/pkg/game/state"
)

// ErrQuit is returned by Handle and Run when the player quits
var ErrQuit = errors.New("quit")

const defaultQueueSize = 16

// Options configure a session
type Options struct {
	Rules      config.Rules
	Catalog    *level.Catalog
	Animator   motion.Animator
	Pathfinder gameplay.PathfinderFor
	Transition gameplay.Transition
	Logger     *log.Logger
	QueueSize  int
}

// queued is a submitted intent and the player turn it was meant for
type queued struct {
	intent engineinput.Intent
	turn   int
}

// Session owns the running game
type Session struct {
	engine   *gameplay.Engine
	progress *gameplay.Progression
	bus      *events.Bus
	logger   *log.Logger

	messages state.Messages
	turn     int // player turns started, written on the engine goroutine
	frame    atomic.Pointer[renderer.Frame]
	intents  chan queued

	mu          sync.Mutex
	channels    []func()
	unsubscribe func()
	closeOnce   sync.Once
}

// New builds a session. No level is loaded until Start.
func New(opts Options) (*Session, error) {
	if opts.Catalog == nil || opts.Catalog.Len() == 0 {
		return nil, fmt.Errorf("new session: %w", level.ErrNoLevel)
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}

	bus := events.NewBus()
	engine := gameplay.NewEngine(gameplay.Options{
		Rules:      opts.Rules,
		Animator:   opts.Animator,
		Pathfinder: opts.Pathfinder,
		Bus:        bus,
		Logger:     opts.Logger,
	})
	progress := gameplay.NewProgression(engine, opts.Catalog, opts.Logger)
	progress.Transition = opts.Transition

	s := &Session{
		engine:   engine,
		progress: progress,
		bus:      bus,
		logger:   opts.Logger,
		intents:  make(chan queued, opts.QueueSize),
	}
	s.unsubscribe = bus.Subscribe(s.onEvent)
	return s, nil
}

// Start loads the level at index with the starting heat
func (s *Session) Start(ctx context.Context, index int) error {
	if err := s.progress.Start(ctx, index); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// Frame returns the latest frame, nil before Start
func (s *Session) Frame() *renderer.Frame {
	return s.frame.Load()
}

// Events subscribes to engine events. The channel is closed by the returned
// func or by Close, whichever comes first.
func (s *Session) Events(size int) (<-chan events.Event, func()) {
	ch, unsubscribe := s.bus.Channel(size)
	s.mu.Lock()
	s.channels = append(s.channels, unsubscribe)
	s.mu.Unlock()
	return ch, unsubscribe
}

// Submit queues an intent for Run without blocking. Gameplay intents are
// dropped while the player is moving or it is not the player's turn, and Run
// drops them if that turn has ended before they are processed. Retry is
// dropped during a level transition. Returns false if the intent was dropped.
func (s *Session) Submit(intent engineinput.Intent) bool {
	f := s.frame.Load()
	if !s.accepts(f, intent) {
		return false
	}
	q := queued{intent: intent}
	if f != nil {
		q.turn = f.Turn
	}
	select {
	case s.intents <- q:
		return true
	default:
		s.logger.Printf("intent queue full, dropping %s", engineinput.ActionName(intent.Action))
		return false
	}
}

// turnBound reports whether a belongs to the player turn it was submitted in
func turnBound(a engineinput.Action) bool {
	switch a {
	case engineinput.ActionMoveNorth, engineinput.ActionMoveSouth,
		engineinput.ActionMoveWest, engineinput.ActionMoveEast,
		engineinput.ActionClick, engineinput.ActionEndTurn:
		return true
	}
	return false
}

func (s *Session) accepts(f *renderer.Frame, intent engineinput.Intent) bool {
	switch {
	case intent.Action == engineinput.ActionNone:
		return false
	case turnBound(intent.Action):
		return f != nil && f.Run.State == state.PlayerTurn && !s.engine.Player().IsMoving()
	case intent.Action == engineinput.ActionRetry:
		return f != nil && f.Run.State != state.Busy
	}
	return true
}

// Run processes submitted intents until ctx is done or the player quits
func (s *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case q := <-s.intents:
			if turnBound(q.intent.Action) && q.turn != s.turn {
				s.logger.Printf("dropping %s from player turn %d, now %d",
					engineinput.ActionName(q.intent.Action), q.turn, s.turn)
				continue
			}
			if err := s.Handle(ctx, q.intent); errors.Is(err, ErrQuit) {
				return err
			}
		}
	}
}

// Handle applies one intent synchronously. Rejected gameplay intents are
// reported through Blocked events and the message log, not as errors; only
// ErrQuit and load failures are returned.
func (s *Session) Handle(ctx context.Context, intent engineinput.Intent) error {
	defer s.refresh()

	switch intent.Action {
	case engineinput.ActionQuit:
		return ErrQuit
	case engineinput.ActionDumpBoard:
		path, err := devtools.DumpBoardToFile(s.buildFrame())
		if err != nil {
			s.logger.Printf("dump board: %v", err)
			s.messages.Add(gotext.Get("DUMP_FAILED"))
			return nil
		}
		s.messages.Add(gotext.Get("BOARD_DUMPED", path))
		return nil
	case engineinput.ActionCopyBoard:
		if err := devtools.CopyBoard(s.buildFrame()); err != nil {
			s.logger.Printf("copy board: %v", err)
			s.messages.Add(gotext.Get("COPY_FAILED"))
			return nil
		}
		s.messages.Add(gotext.Get("BOARD_COPIED"))
		return nil
	}

	err := gameplay.ProcessIntent(ctx, s.progress, intent)
	switch {
	case err == nil, errors.Is(err, gameplay.ErrUnhandled):
		return nil
	case errors.Is(err, level.ErrNoLevel):
		s.logger.Printf("intent %s: %v", engineinput.ActionName(intent.Action), err)
		return err
	}
	// blocked: already published and logged
	return nil
}

// Close detaches the session from its bus and closes all event subscriptions
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.unsubscribe()
		s.mu.Lock()
		channels := s.channels
		s.channels = nil
		s.mu.Unlock()
		for _, unsubscribe := range channels {
			unsubscribe()
		}
		s.bus.Close()
	})
}

// Messages returns the player-facing log, oldest first
func (s *Session) Messages() []string {
	return s.messages.Lines()
}

// Engine returns the turn engine. Only call it from the goroutine that drives the session.
func (s *Session) Engine() *gameplay.Engine {
	return s.engine
}

// Progression returns the level progression
func (s *Session) Progression() *gameplay.Progression {
	return s.progress
}

// onEvent runs on the engine goroutine
func (s *Session) onEvent(ev events.Event) {
	switch ev.Kind {
	case events.TurnStateChanged:
		if ev.State == state.PlayerTurn {
			s.turn++
		}
	case events.RunReset:
		s.turn++
	case events.Blocked:
		s.messages.Add(ev.Text)
	case events.GoalReached:
		s.messages.Add(gotext.Get("GOAL_REACHED"))
	case events.GameLost:
		s.messages.Add(gotext.Get("GAME_LOST"))
	case events.GameWon:
		s.messages.Add(gotext.Get("GAME_WON"))
	case events.EnemyDefeated:
		s.messages.Add(gotext.Get("ENEMY_DEFEATED", ev.Actor))
	case events.LevelLoaded:
		s.turn++
		s.messages.Clear()
		s.messages.Add(gotext.Get("LEVEL_ENTERED", ev.Level+1, ev.Text))
	}
	s.refresh()
}

func (s *Session) refresh() {
	s.frame.Store(s.buildFrame())
}

// buildFrame copies everything a frontend draws out of the engine
func (s *Session) buildFrame() *renderer.Frame {
	e := s.engine
	b := e.Board()
	player := e.Player().At()

	f := &renderer.Frame{
		Level:        b.Level,
		Turn:         s.turn,
		Run:          e.Run(),
		Player:       player,
		PlayerMoving: e.Player().IsMoving(),
		Start:        b.Start,
		Goal:         b.Goal,
		Tiles:        map[world.Coord]renderer.TileView{},
		Messages:     s.messages.Lines(),
	}
	if lv, err := s.progress.Catalog().Get(b.Level); err == nil {
		f.LevelName = lv.Name
	}
	if b.Grid != nil {
		f.Lo, f.Hi = b.Grid.Bounds()
		b.Grid.ForEach(func(t *world.Tile) {
			f.Tiles[t.At] = renderer.TileView{At: t.At, Type: t.Type, HeatDelta: t.HeatDelta, Consumable: t.Consumable}
		})
	}
	for _, en := range e.Enemies() {
		at, ok := en.At()
		if !ok || en.Dead() {
			continue
		}
		f.Enemies = append(f.Enemies, renderer.EnemyView{
			Name:   en.Name,
			At:     at,
			Health: en.Health,
			Threat: world.Adjacent8(at, player),
		})
	}
	return f
}
