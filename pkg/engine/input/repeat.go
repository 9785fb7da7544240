package input

import (
	"sync"
	"time"
)

// KeyRepeat turns held keys into repeated presses: a key fires when first
// pressed, then every Interval once it has been held for Delay.
type KeyRepeat struct {
	Delay    time.Duration
	Interval time.Duration

	mu    sync.Mutex
	state map[string]keyRepeatInfo
}

type keyRepeatInfo struct {
	firstPressed time.Time
	lastRepeat   time.Time
}

// NewKeyRepeat creates a key repeater
func NewKeyRepeat(delay, interval time.Duration) *KeyRepeat {
	return &KeyRepeat{Delay: delay, Interval: interval, state: map[string]keyRepeatInfo{}}
}

// Should reports whether code fires at now given whether it is held
func (k *KeyRepeat) Should(code string, pressed bool, now time.Time) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	state, exists := k.state[code]
	if !pressed {
		delete(k.state, code)
		return false
	}
	if !exists {
		k.state[code] = keyRepeatInfo{firstPressed: now, lastRepeat: now}
		return true
	}
	if now.Sub(state.firstPressed) >= k.Delay && now.Sub(state.lastRepeat) >= k.Interval {
		state.lastRepeat = now
		k.state[code] = state
		return true
	}
	return false
}
