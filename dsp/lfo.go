package dsp

import (
	"math"

	"github.com/cwbudde/algo-synth/config"
)

// LFO is a low-frequency square oscillator updated once per frame.
type LFO struct {
	running bool

	// Phase in the waveform, between 0 and 1.
	phase  float64
	dphase float64

	value float64
}

// Run starts the LFO from its current state.
func (l *LFO) Run() *LFO {
	l.running = true
	return l
}

// Stop freezes the LFO on its current value.
func (l *LFO) Stop() *LFO {
	l.running = false
	return l
}

// SetFrequency sets the oscillation frequency in Hz.
func (l *LFO) SetFrequency(hz float64) *LFO {
	l.dphase = hz * config.FrameSize / config.SampleRate
	return l
}

// TickClock updates the value at the frame frequency. Since it is an
// LFO there is no need to update it at the audio frequency.
func (l *LFO) TickClock() *LFO {
	if l.running {
		if l.phase > 0.5 {
			l.value = 1
		} else {
			l.value = -1
		}
		l.phase = math.Mod(l.phase+l.dphase, 1)
	}
	return l
}

// Out returns the current value between -1 and +1.
func (l *LFO) Out() float64 {
	return l.value
}

// OutIn returns the current value rescaled between low and high.
func (l *LFO) OutIn(low, high float64) float64 {
	return low + 0.5*(l.value+1)*(high-low)
}
