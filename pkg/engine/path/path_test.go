package path

import (
	"testing"

	"sunstroke/pkg/engine/world"
)

// gridFromRows builds a grid where '#' is blocked, ' ' is missing and anything else is walkable
func gridFromRows(t *testing.T, rows ...string) *world.Grid {
	t.Helper()
	var tiles []*world.Tile
	for y, row := range rows {
		for x, ch := range row {
			switch ch {
			case ' ':
				continue
			case '#':
				tiles = append(tiles, world.NewTile(world.C(x, y), world.Blocked, 0, false))
			default:
				tiles = append(tiles, world.NewTile(world.C(x, y), world.Sun, 5, false))
			}
		}
	}
	g := world.NewGrid(nil)
	g.Build(tiles)
	return g
}

func TestNextStep_StraightLine(t *testing.T) {
	g := gridFromRows(t, ".....")
	step, length, ok := ForGrid(g).NextStep(world.C(0, 0), world.C(4, 0), nil)
	if !ok {
		t.Fatal("NextStep ok = false, want true")
	}
	if step != world.C(1, 0) {
		t.Errorf("step = %v, want (1,0)", step)
	}
	if length != 3 {
		t.Errorf("length = %d, want 3 (to the cell next to the target)", length)
	}
}

func TestNextStep_AlreadyAdjacent(t *testing.T) {
	g := gridFromRows(t, "...")
	if _, _, ok := ForGrid(g).NextStep(world.C(0, 0), world.C(1, 0), nil); ok {
		t.Error("NextStep from adjacent cell ok = true, want false")
	}
}

func TestNextStep_AroundWall(t *testing.T) {
	g := gridFromRows(t,
		"...",
		".#.",
		"...",
	)
	step, length, ok := ForGrid(g).NextStep(world.C(1, 0), world.C(1, 2), nil)
	if !ok {
		t.Fatal("NextStep ok = false, want true")
	}
	if !world.Adjacent4(step, world.C(1, 0)) {
		t.Errorf("step %v is not adjacent to start", step)
	}
	if step == world.C(1, 1) {
		t.Error("step entered the blocked tile")
	}
	if length != 3 {
		t.Errorf("length = %d, want 3", length)
	}
}

func TestNextStep_BlockedPredicate(t *testing.T) {
	g := gridFromRows(t, ".....")
	occupied := func(c world.Coord) bool { return c == world.C(1, 0) }
	if _, _, ok := ForGrid(g).NextStep(world.C(0, 0), world.C(4, 0), occupied); ok {
		t.Error("NextStep through occupied corridor ok = true, want false")
	}
}

func TestNextStep_NeverReturnsTarget(t *testing.T) {
	// The only route to the far side of the target goes through it.
	g := gridFromRows(t, "....")
	step, _, ok := ForGrid(g).NextStep(world.C(0, 0), world.C(2, 0), nil)
	if !ok {
		t.Fatal("NextStep ok = false, want true")
	}
	if step == world.C(2, 0) {
		t.Error("NextStep returned the target coordinate")
	}
}

func TestNextStep_MissingTiles(t *testing.T) {
	g := gridFromRows(t, ".. ..")
	if _, _, ok := ForGrid(g).NextStep(world.C(0, 0), world.C(4, 0), nil); ok {
		t.Error("NextStep across a gap ok = true, want false")
	}
}
