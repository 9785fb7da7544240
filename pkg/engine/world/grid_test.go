package world

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestBuild_DuplicateCoordinateFirstWins(t *testing.T) {
	var buf bytes.Buffer
	g := NewGrid(log.New(&buf, "", 0))

	first := NewTile(C(1, 1), Sun, 5, false)
	second := NewTile(C(1, 1), Burn, 20, false)
	other := NewTile(C(2, 1), Shade, -10, true)

	dropped := g.Build([]*Tile{first, second, other})
	if dropped != 1 {
		t.Errorf("Build() dropped = %d, want 1", dropped)
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
	if got := g.Get(C(1, 1)); got != first {
		t.Errorf("Get(1,1) = %v, want first registered tile", got)
	}
	if !strings.Contains(buf.String(), "duplicate tile at (1,1)") {
		t.Errorf("log = %q, want duplicate warning", buf.String())
	}
}

func TestBuild_ReplacesPreviousTiles(t *testing.T) {
	g := NewGrid(nil)
	g.Build([]*Tile{NewTile(C(0, 0), Start, 0, false)})
	g.Build([]*Tile{NewTile(C(5, 5), End, 0, false)})

	if g.Get(C(0, 0)) != nil {
		t.Error("Get(0,0) after rebuild != nil, want old tile gone")
	}
	if g.Get(C(5, 5)) == nil {
		t.Error("Get(5,5) after rebuild = nil, want new tile")
	}
}

func TestGet_EmptyGrid(t *testing.T) {
	var g Grid
	if g.Get(C(0, 0)) != nil {
		t.Error("Get on zero Grid != nil, want nil")
	}
}

func TestForEach_RowOrder(t *testing.T) {
	g := NewGrid(nil)
	g.Build([]*Tile{
		NewTile(C(1, 1), Sun, 0, false),
		NewTile(C(0, 1), Sun, 0, false),
		NewTile(C(3, 0), Sun, 0, false),
	})

	var got []Coord
	g.ForEach(func(t *Tile) { got = append(got, t.At) })

	want := []Coord{C(3, 0), C(0, 1), C(1, 1)}
	if len(got) != len(want) {
		t.Fatalf("ForEach visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ForEach order = %v, want %v", got, want)
			break
		}
	}

	lo, hi := g.Bounds()
	if lo != C(0, 0) || hi != C(3, 1) {
		t.Errorf("Bounds() = %v, %v, want (0,0), (3,1)", lo, hi)
	}
}

func TestAdjacency(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Coord
		want4 bool
		want8 bool
	}{
		{"same", C(2, 2), C(2, 2), false, false},
		{"east", C(2, 2), C(3, 2), true, true},
		{"north", C(2, 2), C(2, 1), true, true},
		{"diagonal", C(2, 2), C(3, 3), false, true},
		{"two away", C(2, 2), C(4, 2), false, false},
		{"knight", C(2, 2), C(3, 4), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Adjacent4(tt.a, tt.b); got != tt.want4 {
				t.Errorf("Adjacent4(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want4)
			}
			if got := Adjacent8(tt.a, tt.b); got != tt.want8 {
				t.Errorf("Adjacent8(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want8)
			}
		})
	}
}

func TestDirectionTo(t *testing.T) {
	for _, dir := range AllDirections() {
		t.Run(dir.String(), func(t *testing.T) {
			from := C(4, 4)
			got, ok := DirectionTo(from, from.Step(dir))
			if !ok || got != dir {
				t.Errorf("DirectionTo(%v, step %v) = %v, %v, want %v, true", from, dir, got, ok, dir)
			}
		})
	}
	if _, ok := DirectionTo(C(0, 0), C(1, 1)); ok {
		t.Error("DirectionTo diagonal ok = true, want false")
	}
}

func TestValidate(t *testing.T) {
	g := NewGrid(nil)
	if msg := g.Validate(C(0, 0), C(1, 0)); msg == "" {
		t.Error("Validate on empty grid = \"\", want error description")
	}
	g.Build([]*Tile{
		NewTile(C(0, 0), Start, 0, false),
		NewTile(C(1, 0), Blocked, 0, false),
		NewTile(C(2, 0), End, 0, false),
		NewTile(C(0, 1), Sun, 0, false),
		NewTile(C(1, 1), Sun, 0, false),
		NewTile(C(2, 1), Sun, 0, false),
	})
	if msg := g.Validate(C(0, 0), C(2, 0)); msg != "" {
		t.Errorf("Validate = %q, want valid", msg)
	}
	if msg := g.Validate(C(0, 0), C(1, 0)); msg == "" {
		t.Error("Validate with blocked goal = \"\", want error description")
	}

	g.Build([]*Tile{
		NewTile(C(0, 0), Start, 0, false),
		NewTile(C(1, 0), Blocked, 0, false),
		NewTile(C(2, 0), End, 0, false),
	})
	if msg := g.Validate(C(0, 0), C(2, 0)); msg == "" {
		t.Error("Validate with walled-off goal = \"\", want error description")
	}
}

func TestReachable(t *testing.T) {
	g := NewGrid(nil)
	g.Build([]*Tile{
		NewTile(C(0, 0), Start, 0, false),
		NewTile(C(1, 0), Burn, 30, false),
		NewTile(C(2, 0), Blocked, 0, false),
		NewTile(C(3, 0), End, 0, false),
		NewTile(C(1, 1), Sun, 5, false),
	})

	reach := g.Reachable(C(0, 0))
	if got := reach.Size(); got != 3 {
		t.Errorf("Reachable size = %d, want 3", got)
	}
	for _, c := range []Coord{C(0, 0), C(1, 0), C(1, 1)} {
		if !reach.Has(c) {
			t.Errorf("Reachable missing %v", c)
		}
	}
	if reach.Has(C(3, 0)) {
		t.Error("Reachable includes tile behind the wall")
	}
	if got := g.Reachable(C(2, 0)).Size(); got != 0 {
		t.Errorf("Reachable from blocked size = %d, want 0", got)
	}
}
