// Package audio plays short synthesized cues in response to engine events.
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"sunstroke/pkg/game/events"
	"sunstroke/pkg/game/state"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a sound
type Cue int

const (
	CueNone Cue = iota
	CueBlocked
	CueHeatUp
	CueCoolDown
	CueEnemyDefeated
	CueEnemyTurn
	CueGoal
	CueLost
	CueWon
)

// scorch is the heat rise that counts as a burn rather than a sun step
const scorch = 10

// cueTracker remembers what it needs to pick cues from consecutive events
type cueTracker struct {
	heat    int
	hasHeat bool
}

// next returns the cue for ev
func (c *cueTracker) next(ev events.Event) Cue {
	switch ev.Kind {
	case events.Blocked:
		return CueBlocked
	case events.EnemyDefeated:
		return CueEnemyDefeated
	case events.GoalReached:
		return CueGoal
	case events.GameLost:
		return CueLost
	case events.GameWon:
		return CueWon
	case events.TurnStateChanged:
		if ev.State == state.EnemyTurn {
			return CueEnemyTurn
		}
	case events.RunReset:
		c.heat, c.hasHeat = ev.Heat, true
	case events.HeatChanged:
		prev, had := c.heat, c.hasHeat
		c.heat, c.hasHeat = ev.Heat, true
		switch {
		case !had:
		case ev.Heat-prev >= scorch:
			return CueHeatUp
		case ev.Heat < prev:
			return CueCoolDown
		}
	}
	return CueNone
}

// streamFor builds a fresh streamer for cue
func streamFor(cue Cue) beep.Streamer {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	switch cue {
	case CueBlocked:
		return newTone(110, ms(120), waveSquare, 0.12)
	case CueHeatUp:
		return beep.Seq(newTone(330, ms(60), waveSaw, 0.1), newTone(440, ms(90), waveSaw, 0.1))
	case CueCoolDown:
		return beep.Seq(newTone(660, ms(60), waveSine, 0.15), newTone(440, ms(120), waveSine, 0.15))
	case CueEnemyDefeated:
		return beep.Seq(newTone(220, ms(50), waveSquare, 0.12), newTone(165, ms(50), waveSquare, 0.12), newTone(110, ms(120), waveSquare, 0.12))
	case CueEnemyTurn:
		return newTone(196, ms(80), waveSine, 0.1)
	case CueGoal:
		return beep.Seq(newTone(523, ms(90), waveSine, 0.2), newTone(659, ms(90), waveSine, 0.2), newTone(784, ms(180), waveSine, 0.2))
	case CueLost:
		return beep.Seq(newTone(294, ms(200), waveSaw, 0.12), newTone(220, ms(200), waveSaw, 0.12), newTone(147, ms(400), waveSaw, 0.12))
	case CueWon:
		return beep.Seq(newTone(523, ms(120), waveSine, 0.2), newTone(659, ms(120), waveSine, 0.2), newTone(784, ms(120), waveSine, 0.2), newTone(1047, ms(360), waveSine, 0.2))
	}
	return nil
}

// Player mixes cues onto the speaker
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a silent player; call Init to open the speaker
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the speaker with a 100ms buffer
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues cue. A no-op before Init.
func (p *Player) Play(cue Cue) {
	s := streamFor(cue)
	if s == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Listen plays a cue for each event until evs is closed or ctx is done
func (p *Player) Listen(ctx context.Context, evs <-chan events.Event) {
	var cues cueTracker
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-evs:
			if !ok {
				return
			}
			if cue := cues.next(ev); cue != CueNone {
				p.Play(cue)
			}
		}
	}
}

// Close silences everything still playing
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
