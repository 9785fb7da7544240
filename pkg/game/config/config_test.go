package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sunstroke/pkg/engine/world"
)

func TestDefault(t *testing.T) {
	r := Default()
	if err := r.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
	if r.MaxHeat != 100 || r.ActionsPerTurn != 3 || r.MaxConsecutiveBurnTiles != 2 {
		t.Errorf("Default() = %+v, want max heat 100, 3 actions, burn cap 2", r)
	}
	if got := r.Timing.PlayerSettleTimeout.Std(); got != 3*time.Second {
		t.Errorf("PlayerSettleTimeout = %v, want 3s", got)
	}
}

func TestTileHeatFor(t *testing.T) {
	h := Default().TileHeat
	tests := []struct {
		typ  world.TileType
		want int
	}{
		{world.Sun, 5},
		{world.Burn, 15},
		{world.Shade, -10},
		{world.Drink, -20},
		{world.Start, 0},
		{world.End, 0},
		{world.Blocked, 0},
	}
	for _, tt := range tests {
		if got := h.For(tt.typ); got != tt.want {
			t.Errorf("For(%s) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"zero max heat", func(r *Rules) { r.MaxHeat = 0 }},
		{"starting heat above max", func(r *Rules) { r.StartingHeat = 101 }},
		{"negative starting heat", func(r *Rules) { r.StartingHeat = -1 }},
		{"no actions", func(r *Rules) { r.ActionsPerTurn = 0 }},
		{"negative attack cost", func(r *Rules) { r.AttackHeatCost = -1 }},
		{"zero damage", func(r *Rules) { r.AttackDamage = 0 }},
		{"negative burn cap", func(r *Rules) { r.MaxConsecutiveBurnTiles = -1 }},
		{"negative timing", func(r *Rules) { r.Timing.EnemyGap = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default()
			tt.mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParseOverridesSubset(t *testing.T) {
	r, err := Parse([]byte(`{"max_heat": 50, "tile_heat": {"sun": 7}, "timing": {"enemy_gap": "10ms", "move_duration": 20}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if r.MaxHeat != 50 {
		t.Errorf("MaxHeat = %d, want 50", r.MaxHeat)
	}
	if r.ActionsPerTurn != 3 {
		t.Errorf("ActionsPerTurn = %d, want default 3", r.ActionsPerTurn)
	}
	if r.TileHeat.Sun != 7 || r.TileHeat.Burn != 15 {
		t.Errorf("TileHeat = %+v, want sun 7 and default burn 15", r.TileHeat)
	}
	if got := r.Timing.EnemyGap.Std(); got != 10*time.Millisecond {
		t.Errorf("EnemyGap = %v, want 10ms", got)
	}
	if got := r.Timing.MoveDuration.Std(); got != 20*time.Millisecond {
		t.Errorf("MoveDuration = %v, want 20ms", got)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	if _, err := Parse([]byte(`{"actions_per_turn": 0}`)); !errors.Is(err, ErrInvalid) {
		t.Errorf("Parse() error = %v, want ErrInvalid", err)
	}
	if _, err := Parse([]byte(`{"timing": {"enemy_gap": "soon"}}`)); err == nil {
		t.Error("Parse() with bad duration error = nil, want error")
	}
}

func TestLoadFile(t *testing.T) {
	r, err := LoadFile("")
	if err != nil || r.MaxHeat != 100 {
		t.Fatalf("LoadFile(\"\") = %+v, %v, want defaults", r, err)
	}

	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`{"attack_damage": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if r.AttackDamage != 2 {
		t.Errorf("AttackDamage = %d, want 2", r.AttackDamage)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want ErrNotExist", err)
	}
}
