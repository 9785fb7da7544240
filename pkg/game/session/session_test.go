package session

import (
	"context"
	"errors"
	"testing"
	"time"

	engineinput "sunstroke/pkg/engine/input"
	"sunstroke/pkg/engine/world"
	"sunstroke/pkg/game/config"
	"sunstroke/pkg/game/events"
	"sunstroke/pkg/game/level"
	"sunstroke/pkg/game/state"
)

func newSession(t *testing.T, levels string) *Session {
	t.Helper()
	rules := config.Default()
	rules.Timing = config.Timing{}
	catalog, err := level.Parse([]byte(levels), rules.TileHeat)
	if err != nil {
		t.Fatalf("level.Parse() error = %v", err)
	}
	s, err := New(Options{Rules: rules, Catalog: catalog})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(s.Close)
	if err := s.Start(context.Background(), 0); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return s
}

func move(dir engineinput.Action) engineinput.Intent {
	return engineinput.Intent{Action: dir}
}

func TestNew_RejectsEmptyCatalog(t *testing.T) {
	if _, err := New(Options{Rules: config.Default()}); !errors.Is(err, level.ErrNoLevel) {
		t.Errorf("New() error = %v, want ErrNoLevel", err)
	}
}

func TestStart_PublishesFrame(t *testing.T) {
	s := newSession(t, `{"levels":[{"name":"first","rows":["S.E"],"enemies":[{"name":"a","at":{"x":1,"y":0}}]}]}`)

	f := s.Frame()
	if f == nil {
		t.Fatal("Frame() = nil after Start")
	}
	if f.LevelName != "first" {
		t.Errorf("LevelName = %q, want %q", f.LevelName, "first")
	}
	if f.Run.State != state.PlayerTurn {
		t.Errorf("State = %v, want PlayerTurn", f.Run.State)
	}
	if w, h := f.Size(); w != 3 || h != 1 {
		t.Errorf("Size() = %d, %d, want 3, 1", w, h)
	}
	e, ok := f.Enemy(world.C(1, 0))
	if !ok || !e.Threat {
		t.Errorf("Enemy(1,0) = %+v, %v, want a threatening enemy", e, ok)
	}
	if got := len(s.Messages()); got != 1 {
		t.Errorf("len(Messages()) = %d, want 1 level message", got)
	}
}

func TestHandle_MoveUpdatesFrame(t *testing.T) {
	s := newSession(t, `{"levels":[{"rows":["S..E"]}]}`)

	if err := s.Handle(context.Background(), move(engineinput.ActionMoveEast)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	f := s.Frame()
	if f.Player != world.C(1, 0) {
		t.Errorf("Player = %v, want (1,0)", f.Player)
	}
	if f.Run.Heat != 5 || f.Run.ActionsLeft != 2 {
		t.Errorf("Heat, ActionsLeft = %d, %d, want 5, 2", f.Run.Heat, f.Run.ActionsLeft)
	}
}

func TestHandle_BlockedMoveLogsMessage(t *testing.T) {
	s := newSession(t, `{"levels":[{"rows":["S.E"]}]}`)
	before := len(s.Messages())

	if err := s.Handle(context.Background(), move(engineinput.ActionMoveNorth)); err != nil {
		t.Fatalf("Handle() error = %v, blocked moves are not errors", err)
	}
	if got := len(s.Messages()); got != before+1 {
		t.Errorf("len(Messages()) = %d, want %d", got, before+1)
	}
	if got := s.Frame().Player; got != world.C(0, 0) {
		t.Errorf("Player = %v, want start", got)
	}
}

func TestHandle_Quit(t *testing.T) {
	s := newSession(t, `{"levels":[{"rows":["S.E"]}]}`)
	if err := s.Handle(context.Background(), engineinput.Intent{Action: engineinput.ActionQuit}); !errors.Is(err, ErrQuit) {
		t.Errorf("Handle(quit) = %v, want ErrQuit", err)
	}
}

func TestHandle_GoalAdvancesLevel(t *testing.T) {
	s := newSession(t, `{"levels":[{"rows":["SE"]},{"name":"second","rows":["S.E"]}]}`)

	if err := s.Handle(context.Background(), move(engineinput.ActionMoveEast)); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	f := s.Frame()
	if f.Level != 1 || f.LevelName != "second" {
		t.Errorf("Level = %d %q, want 1 \"second\"", f.Level, f.LevelName)
	}
	if f.Player != world.C(0, 0) {
		t.Errorf("Player = %v, want the new start", f.Player)
	}
}

func TestSubmit_Gating(t *testing.T) {
	levels := `{"levels":[{"rows":["S.E"],"overrides":[{"at":{"x":1,"y":0},"heat":500}]}]}`
	s := newSession(t, levels)

	if !s.Submit(move(engineinput.ActionMoveEast)) {
		t.Fatal("Submit(move) dropped on the player's turn")
	}
	if s.Submit(engineinput.Intent{}) {
		t.Error("Submit(none) accepted")
	}

	// drive the queued move: entering the override tile loses the run
	if err := s.Handle(context.Background(), (<-s.intents).intent); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got := s.Frame().Run.State; got != state.Lost {
		t.Fatalf("State = %v, want Lost", got)
	}

	tests := []struct {
		name   string
		intent engineinput.Intent
		want   bool
	}{
		{"move", move(engineinput.ActionMoveEast), false},
		{"click", engineinput.Click(world.C(1, 0)), false},
		{"end turn", engineinput.Intent{Action: engineinput.ActionEndTurn}, false},
		{"retry", engineinput.Intent{Action: engineinput.ActionRetry}, true},
		{"quit", engineinput.Intent{Action: engineinput.ActionQuit}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Submit(tt.intent); got != tt.want {
				t.Errorf("Submit(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSubmit_DropsWhenQueueFull(t *testing.T) {
	rules := config.Default()
	catalog, err := level.Parse([]byte(`{"levels":[{"rows":["S.E"]}]}`), rules.TileHeat)
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(Options{Rules: rules, Catalog: catalog, QueueSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.Start(context.Background(), 0); err != nil {
		t.Fatal(err)
	}

	if !s.Submit(move(engineinput.ActionMoveEast)) {
		t.Fatal("first Submit() dropped")
	}
	if s.Submit(move(engineinput.ActionMoveEast)) {
		t.Error("second Submit() accepted with a full queue")
	}
}

func TestRun_ProcessesInOrderUntilQuit(t *testing.T) {
	s := newSession(t, `{"levels":[{"rows":["S..E"]}]}`)

	s.Submit(move(engineinput.ActionMoveEast))
	s.Submit(engineinput.Intent{Action: engineinput.ActionQuit})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, want ErrQuit", err)
	}
	if got := s.Frame().Player; got != world.C(1, 0) {
		t.Errorf("Player = %v, want (1,0)", got)
	}
}

func TestRun_DropsIntentsFromAnEndedTurn(t *testing.T) {
	s := newSession(t, `{"levels":[{"rows":["S.....E"]}]}`)

	for i := 0; i < 4; i++ {
		if !s.Submit(move(engineinput.ActionMoveEast)) {
			t.Fatalf("Submit(move %d) dropped", i+1)
		}
	}
	s.Submit(engineinput.Intent{Action: engineinput.ActionQuit})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Run(ctx); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run() = %v, want ErrQuit", err)
	}
	f := s.Frame()
	if f.Player != world.C(3, 0) {
		t.Errorf("Player = %v, want (3,0): the fourth move belonged to the spent turn", f.Player)
	}
	if f.Run.ActionsLeft != 3 {
		t.Errorf("ActionsLeft = %d, want 3", f.Run.ActionsLeft)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := newSession(t, `{"levels":[{"rows":["S.E"]}]}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestEvents_ChannelAndClose(t *testing.T) {
	s := newSession(t, `{"levels":[{"rows":["S.E"]}]}`)
	ch, _ := s.Events(16)

	if err := s.Handle(context.Background(), move(engineinput.ActionMoveEast)); err != nil {
		t.Fatal(err)
	}
	var sawHeat bool
	for len(ch) > 0 {
		if ev := <-ch; ev.Kind == events.HeatChanged {
			sawHeat = true
		}
	}
	if !sawHeat {
		t.Error("no HeatChanged event after moving onto a sun tile")
	}

	s.Close()
	if _, ok := <-ch; ok {
		t.Error("channel still open after Close")
	}
}
