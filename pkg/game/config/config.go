// Package config holds the tunable rules of a run: heat limits, action budget,
// combat numbers, per-tile-type heat and the pacing of movement transitions.
//
// Defaults reproduce the original balance. A JSON file may override any subset
// of fields; omitted fields keep their defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"sunstroke/pkg/engine/world"
)

// Rules are the gameplay numbers the turn engine enforces.
type Rules struct {
	MaxHeat                 int         `json:"max_heat"`
	StartingHeat            int         `json:"starting_heat"`
	ActionsPerTurn          int         `json:"actions_per_turn"`
	AttackHeatCost          int         `json:"attack_heat_cost"`
	AttackDamage            int         `json:"attack_damage"`
	MaxConsecutiveBurnTiles int         `json:"max_consecutive_burn_tiles"`
	GridOrigin              world.Coord `json:"grid_origin"`

	TileHeat TileHeat `json:"tile_heat"`
	Timing   Timing   `json:"timing"`
}

// TileHeat is the heat applied on entering a tile of each type, unless the
// level overrides it for a specific tile.
type TileHeat struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Sun   int `json:"sun"`
	Burn  int `json:"burn"`
	Shade int `json:"shade"`
	Drink int `json:"drink"`
}

// For returns the default heat delta of a tile type
func (h TileHeat) For(t world.TileType) int {
	switch t {
	case world.Start:
		return h.Start
	case world.End:
		return h.End
	case world.Sun:
		return h.Sun
	case world.Burn:
		return h.Burn
	case world.Shade:
		return h.Shade
	case world.Drink:
		return h.Drink
	}
	return 0
}

// Timing controls the pacing of transitions and the enemy phase.
type Timing struct {
	MoveDuration        Duration `json:"move_duration"`
	StrikeDuration      Duration `json:"strike_duration"`
	EnemyStepPause      Duration `json:"enemy_step_pause"`
	EnemyGap            Duration `json:"enemy_gap"`
	PlayerSettleTimeout Duration `json:"player_settle_timeout"`
	TransitionDuration  Duration `json:"transition_duration"`
}

// Duration is a time.Duration that reads "150ms" style strings from JSON.
type Duration time.Duration

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// plain numbers are milliseconds
		var ms int64
		if err2 := json.Unmarshal(b, &ms); err2 != nil {
			return fmt.Errorf("duration %s: %w", b, err)
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Default returns the standard rules.
func Default() Rules {
	return Rules{
		MaxHeat:                 100,
		StartingHeat:            0,
		ActionsPerTurn:          3,
		AttackHeatCost:          10,
		AttackDamage:            1,
		MaxConsecutiveBurnTiles: 2,
		GridOrigin:              world.C(0, 0),
		TileHeat: TileHeat{
			Sun:   5,
			Burn:  15,
			Shade: -10,
			Drink: -20,
		},
		Timing: Timing{
			MoveDuration:        Duration(200 * time.Millisecond),
			StrikeDuration:      Duration(120 * time.Millisecond),
			EnemyStepPause:      Duration(50 * time.Millisecond),
			EnemyGap:            Duration(150 * time.Millisecond),
			PlayerSettleTimeout: Duration(3 * time.Second),
			TransitionDuration:  Duration(400 * time.Millisecond),
		},
	}
}

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid rules")

// Validate checks the rules for values the engine cannot run with.
func (r Rules) Validate() error {
	switch {
	case r.MaxHeat <= 0:
		return fmt.Errorf("%w: max_heat must be positive, got %d", ErrInvalid, r.MaxHeat)
	case r.StartingHeat < 0 || r.StartingHeat > r.MaxHeat:
		return fmt.Errorf("%w: starting_heat %d outside [0, %d]", ErrInvalid, r.StartingHeat, r.MaxHeat)
	case r.ActionsPerTurn <= 0:
		return fmt.Errorf("%w: actions_per_turn must be positive, got %d", ErrInvalid, r.ActionsPerTurn)
	case r.AttackHeatCost < 0:
		return fmt.Errorf("%w: attack_heat_cost must not be negative, got %d", ErrInvalid, r.AttackHeatCost)
	case r.AttackDamage <= 0:
		return fmt.Errorf("%w: attack_damage must be positive, got %d", ErrInvalid, r.AttackDamage)
	case r.MaxConsecutiveBurnTiles < 0:
		return fmt.Errorf("%w: max_consecutive_burn_tiles must not be negative, got %d", ErrInvalid, r.MaxConsecutiveBurnTiles)
	}
	t := r.Timing
	for name, d := range map[string]Duration{
		"move_duration":         t.MoveDuration,
		"strike_duration":       t.StrikeDuration,
		"enemy_step_pause":      t.EnemyStepPause,
		"enemy_gap":             t.EnemyGap,
		"player_settle_timeout": t.PlayerSettleTimeout,
		"transition_duration":   t.TransitionDuration,
	} {
		if d < 0 {
			return fmt.Errorf("%w: timing.%s must not be negative", ErrInvalid, name)
		}
	}
	return nil
}

// Parse reads JSON overrides on top of the defaults and validates the result.
func Parse(data []byte) (Rules, error) {
	r := Default()
	if err := json.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parse rules: %w", err)
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// LoadFile reads a rules override file. An empty path returns the defaults.
func LoadFile(path string) (Rules, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return Rules{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
