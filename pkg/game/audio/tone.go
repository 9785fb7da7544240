package audio

import (
	"math"
	"time"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
)

// attack and release ramps keep tones from clicking
const fadeSamples = 220

// tone is a fixed-length oscillator with a linear fade in and out
type tone struct {
	freq   float64
	phase  float64
	volume float64
	wave   wave
	pos    int
	length int
}

func newTone(freq float64, d time.Duration, w wave, volume float64) *tone {
	return &tone{freq: freq, volume: volume, wave: w, length: sampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.length {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			if t.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case waveSaw:
			v = 2 * (t.phase - 0.5)
		}
		v *= t.volume * t.envelope()

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) envelope() float64 {
	fade := min(fadeSamples, t.length/2)
	if fade == 0 {
		return 1
	}
	switch {
	case t.pos < fade:
		return float64(t.pos) / float64(fade)
	case t.pos >= t.length-fade:
		return float64(t.length-t.pos) / float64(fade)
	}
	return 1
}
