package gameplay

import (
	"context"
	"time"

	"github.com/zyedidia/generic/mapset"

	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/entities"
	"sunstroke/pkg/game/events"
	"sunstroke/pkg/game/state"
)

// settlePoll is how often the enemy phase checks whether the player has settled
const settlePoll = 10 * time.Millisecond

// runEnemyPhase activates every living enemy in roster order, then returns
// control to the player unless the run ended or left the enemy turn.
func (e *Engine) runEnemyPhase(ctx context.Context) {
	e.waitForPlayer(ctx)
	if e.run.State != state.PlayerTurn {
		return
	}
	e.setState(state.EnemyTurn)

	// activations never add or remove enemies, but iterate a copy anyway
	roster := append([]*entities.Enemy(nil), e.roster...)
	for i, en := range roster {
		if e.run.State != state.EnemyTurn {
			e.logger.Printf("enemy phase stopped in state %s", e.run.State)
			break
		}
		if i > 0 {
			e.pause(ctx, e.rules.Timing.EnemyGap.Std())
		}
		e.activate(ctx, en)
	}

	if e.run.State == state.EnemyTurn {
		e.StartPlayerTurn()
	}
}

// waitForPlayer blocks until the player is not mid-move, bounded by the settle timeout
func (e *Engine) waitForPlayer(ctx context.Context) {
	limit := e.rules.Timing.PlayerSettleTimeout.Std()
	for waited := time.Duration(0); e.player.IsMoving(); waited += settlePoll {
		if waited >= limit {
			e.logger.Printf("player still moving after %v, starting enemy phase anyway", limit)
			return
		}
		if !e.pause(ctx, settlePoll) {
			return
		}
	}
}

// activate runs one enemy's steps for this turn
func (e *Engine) activate(ctx context.Context, en *entities.Enemy) {
	if en.Dead() || !en.BeginTurn() {
		return
	}
	defer en.EndTurn()

	steps := en.Steps()
	if steps == 0 {
		return
	}
	target := e.player.At()
	blocked := func(c world.Coord) bool {
		return e.occupied(en).Has(c)
	}
	for taken := 0; taken < steps; taken++ {
		from, ok := en.At()
		if !ok || world.Adjacent4(from, target) {
			return
		}
		step, _, ok := e.paths.NextStep(from, target, blocked)
		if !ok {
			e.logger.Printf("enemy %s: no path from %v toward %v", en.Name, from, target)
			return
		}
		if step == target {
			e.logger.Printf("enemy %s: refusing step onto the player at %v", en.Name, step)
			return
		}
		if !world.Adjacent4(from, step) {
			e.logger.Printf("enemy %s: step %v is not adjacent to %v", en.Name, step, from)
			return
		}
		tile := e.board.Grid.Get(step)
		if tile == nil {
			e.logger.Printf("enemy %s: no tile at %v", en.Name, step)
			return
		}

		if taken > 0 {
			e.pause(ctx, e.rules.Timing.EnemyStepPause.Std())
		}
		e.anim.Move(ctx, en.Name, from, step)
		en.Place(tile)
		e.publish(events.Event{Kind: events.EnemyMoved, Actor: en.Name, From: from, To: step})
	}
}

// occupied returns the coordinates of living enemies other than except
func (e *Engine) occupied(except *entities.Enemy) mapset.Set[world.Coord] {
	set := mapset.New[world.Coord]()
	for _, en := range e.roster {
		if en == except || en.Dead() {
			continue
		}
		if at, ok := en.At(); ok {
			set.Put(at)
		}
	}
	return set
}

// enemyAt returns the living enemy standing on c
func (e *Engine) enemyAt(c world.Coord) *entities.Enemy {
	for _, en := range e.roster {
		if at, ok := en.At(); ok && at == c && !en.Dead() {
			return en
		}
	}
	return nil
}

// EnemyAt returns the living enemy on c, or nil
func (e *Engine) EnemyAt(c world.Coord) *entities.Enemy {
	return e.enemyAt(c)
}

func (e *Engine) removeEnemy(target *entities.Enemy) {
	for i, en := range e.roster {
		if en == target {
			e.roster = append(e.roster[:i:i], e.roster[i+1:]...)
			return
		}
	}
}

// Enemies returns the living enemies in roster order
func (e *Engine) Enemies() []*entities.Enemy {
	return append([]*entities.Enemy(nil), e.roster...)
}

// InitialEnemies returns the load-time snapshot of every enemy, dead or alive
func (e *Engine) InitialEnemies() []entities.EnemySnapshot {
	return append([]entities.EnemySnapshot(nil), e.initial...)
}

// EnemiesNear returns living enemies touching c, diagonals included
func (e *Engine) EnemiesNear(c world.Coord) []*entities.Enemy {
	var near []*entities.Enemy
	for _, en := range e.roster {
		if at, ok := en.At(); ok && world.Adjacent8(at, c) {
			near = append(near, en)
		}
	}
	return near
}
