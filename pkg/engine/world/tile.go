package world

// TileType is the gameplay type of a tile
type TileType int

const (
	Start TileType = iota
	End
	Sun
	Burn
	Shade
	Drink
	Blocked
)

// String returns the lower-case name used by level files and logs
func (t TileType) String() string {
	switch t {
	case Start:
		return "start"
	case End:
		return "end"
	case Sun:
		return "sun"
	case Burn:
		return "burn"
	case Shade:
		return "shade"
	case Drink:
		return "drink"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// IsValid returns true for the declared tile types
func (t TileType) IsValid() bool {
	return t >= Start && t <= Blocked
}

// CanBeConsumable reports whether tiles of this type may carry a one-shot effect
func (t TileType) CanBeConsumable() bool {
	return t == Shade || t == Drink
}

// Tile is a single cell of the board.
type Tile struct {
	At        Coord
	Type      TileType
	HeatDelta int // applied to heat when the player enters

	// Consumable marks a one-shot Shade/Drink effect that has not been used yet
	Consumable bool
	Consumed   bool
}

// NewTile creates a tile. Consumable is ignored for types that cannot be consumed.
func NewTile(at Coord, t TileType, heatDelta int, consumable bool) *Tile {
	return &Tile{
		At:         at,
		Type:       t,
		HeatDelta:  heatDelta,
		Consumable: consumable && t.CanBeConsumable(),
	}
}

// Walkable returns true if actors may stand on the tile
func (t *Tile) Walkable() bool {
	return t != nil && t.Type != Blocked
}

// Consume spends the tile's one-shot effect. The tile becomes a neutral Sun tile
// with a non-negative heat delta. Returns false if there was nothing to consume.
func (t *Tile) Consume() bool {
	if t == nil || !t.Consumable || t.Consumed {
		return false
	}
	t.Consumable = false
	t.Consumed = true
	t.Type = Sun
	if t.HeatDelta < 0 {
		t.HeatDelta = 0
	}
	return true
}

// Clone returns an independent copy of the tile
func (t *Tile) Clone() *Tile {
	c := *t
	return &c
}
