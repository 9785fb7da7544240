package state

import (
	"fmt"
	"testing"
)

func TestRunHeatClamp(t *testing.T) {
	r := NewRun(100, 150, 3)
	if r.Heat != 100 {
		t.Fatalf("NewRun heat 150 = %d, want 100", r.Heat)
	}

	tests := []struct {
		delta       int
		want        int
		wantChanged bool
	}{
		{-30, 70, true},
		{-200, 0, true},
		{-5, 0, false},
		{60, 60, true},
		{999, 100, true},
		{1, 100, false},
	}
	for _, tt := range tests {
		changed := r.AddHeat(tt.delta)
		if r.Heat != tt.want || changed != tt.wantChanged {
			t.Errorf("AddHeat(%d) = %d (changed %v), want %d (changed %v)", tt.delta, r.Heat, changed, tt.want, tt.wantChanged)
		}
		if r.Heat < 0 || r.Heat > r.MaxHeat {
			t.Fatalf("heat %d escaped [0, %d]", r.Heat, r.MaxHeat)
		}
	}
	if !r.AtHeatCap() {
		t.Error("AtHeatCap() = false at 100/100, want true")
	}
}

func TestRunSpendAction(t *testing.T) {
	r := NewRun(100, 0, 2)
	if !r.SpendAction() || !r.SpendAction() {
		t.Fatal("SpendAction() = false with budget left")
	}
	if r.SpendAction() {
		t.Error("SpendAction() = true with empty budget")
	}
	if r.ActionsLeft != 0 {
		t.Errorf("ActionsLeft = %d, want 0", r.ActionsLeft)
	}
}

func TestRunBurnStreak(t *testing.T) {
	r := NewRun(100, 0, 3)
	r.TrackBurn(true)
	r.TrackBurn(true)
	if r.BurnStreak != 2 {
		t.Errorf("BurnStreak = %d, want 2", r.BurnStreak)
	}
	r.TrackBurn(false)
	if r.BurnStreak != 0 {
		t.Errorf("BurnStreak after non-burn = %d, want 0", r.BurnStreak)
	}
}

func TestRunReset(t *testing.T) {
	r := NewRun(100, 0, 3)
	r.State = Lost
	r.ActionsLeft = 0
	r.BurnStreak = 2
	r.Reset(20, 3)
	if r.State != PlayerTurn || r.Heat != 20 || r.ActionsLeft != 3 || r.BurnStreak != 0 {
		t.Errorf("Reset(20, 3) = %+v", *r)
	}
}

func TestTurnStateTerminal(t *testing.T) {
	for _, s := range []TurnState{PlayerTurn, EnemyTurn, Busy} {
		if s.Terminal() {
			t.Errorf("%s.Terminal() = true, want false", s)
		}
	}
	for _, s := range []TurnState{Won, Lost} {
		if !s.Terminal() {
			t.Errorf("%s.Terminal() = false, want true", s)
		}
	}
}

func TestMessagesKeepsLastFive(t *testing.T) {
	var m Messages
	for i := 1; i <= 7; i++ {
		m.Add(fmt.Sprintf("msg %d", i))
	}
	lines := m.Lines()
	if len(lines) != MaxMessages {
		t.Fatalf("len(Lines()) = %d, want %d", len(lines), MaxMessages)
	}
	if lines[0] != "msg 3" || lines[4] != "msg 7" {
		t.Errorf("Lines() = %v, want msg 3..msg 7", lines)
	}

	lines[0] = "changed"
	if m.Lines()[0] != "msg 3" {
		t.Error("Lines() shares its backing array with the log")
	}
	m.Clear()
	if len(m.Lines()) != 0 {
		t.Error("Clear() left messages behind")
	}
}
