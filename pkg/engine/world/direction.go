package world

// Direction is one of the four orthogonal steps a token can take
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Step offsets, indexed by Direction. Y grows southwards, matching level rows.
var steps = [...]struct {
	name   string
	dx, dy int
}{
	North: {"North", 0, -1},
	East:  {"East", 1, 0},
	South: {"South", 0, 1},
	West:  {"West", -1, 0},
}

// AllDirections lists the directions in the order neighbours are explored
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

func (d Direction) String() string {
	if d < North || d > West {
		return "Unknown"
	}
	return steps[d].name
}

// Delta returns the offset of one step in direction d; zero for an unknown direction
func (d Direction) Delta() (dx, dy int) {
	if d < North || d > West {
		return 0, 0
	}
	return steps[d].dx, steps[d].dy
}
