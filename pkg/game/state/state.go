package state

// TurnState is the phase of the run
type TurnState int

const (
	PlayerTurn TurnState = iota
	EnemyTurn
	Busy // level transition in progress, input suspended
	Won
	Lost
)

// String returns the state name
func (s TurnState) String() string {
	switch s {
	case PlayerTurn:
		return "PlayerTurn"
	case EnemyTurn:
		return "EnemyTurn"
	case Busy:
		return "Busy"
	case Won:
		return "Won"
	case Lost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the run is over
func (s TurnState) Terminal() bool {
	return s == Won || s == Lost
}

// Run is the run state. It survives level changes; heat is always kept in [0, MaxHeat].
type Run struct {
	State       TurnState
	Heat        int
	MaxHeat     int
	ActionsLeft int
	BurnStreak  int // consecutive Burn tiles entered
}

// NewRun creates a run at the start of a player turn
func NewRun(maxHeat, heat, actions int) *Run {
	r := &Run{MaxHeat: maxHeat}
	r.Reset(heat, actions)
	return r
}

// Reset starts the run over at the given heat with a full action budget
func (r *Run) Reset(heat, actions int) {
	r.State = PlayerTurn
	r.Heat = r.clamp(heat)
	r.ActionsLeft = actions
	r.BurnStreak = 0
}

// SetHeat sets heat, clamped. Returns true if the value changed.
func (r *Run) SetHeat(v int) bool {
	v = r.clamp(v)
	if v == r.Heat {
		return false
	}
	r.Heat = v
	return true
}

// AddHeat adds delta to heat, clamped. Returns true if the value changed.
func (r *Run) AddHeat(delta int) bool {
	return r.SetHeat(r.Heat + delta)
}

// AtHeatCap reports whether heat has reached the cap
func (r *Run) AtHeatCap() bool {
	return r.Heat >= r.MaxHeat
}

// SpendAction uses one action. Returns false if the budget was already empty.
func (r *Run) SpendAction() bool {
	if r.ActionsLeft <= 0 {
		return false
	}
	r.ActionsLeft--
	return true
}

// TrackBurn updates the burn streak for a tile entry
func (r *Run) TrackBurn(burn bool) {
	if burn {
		r.BurnStreak++
		return
	}
	r.BurnStreak = 0
}

func (r *Run) clamp(v int) int {
	return min(max(v, 0), r.MaxHeat)
}
