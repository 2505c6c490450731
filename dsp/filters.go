package dsp

import (
	"math"

	dspcore "github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/cwbudde/algo-synth/config"
)

// OnePole is a first-order lowpass with coefficient a = w/(w+1) for
// w = 2*pi*fc/Fs.
type OnePole struct {
	a float64
	y float64
}

// SetCutoff sets the cutoff frequency in Hz.
func (f *OnePole) SetCutoff(hz float64) {
	w := 2 * math.Pi * hz / config.SampleRate
	f.a = w / (w + 1)
}

// Process filters one sample.
func (f *OnePole) Process(x float64) float64 {
	f.y = dspcore.FlushDenormals(f.y + f.a*(x-f.y))
	return f.y
}

// Reset clears the filter state.
func (f *OnePole) Reset() {
	f.y = 0
}

// Resonance is a narrow band-pass biquad whose poles sit at radius r
// and angle 2*pi*f/Fs. r close to 1 gives a sharp peak at f.
type Resonance struct {
	Biquad

	freq float64
	r    float64
}

// NewResonance creates a resonance filter peaking at hz with pole
// radius r in [0, 1).
func NewResonance(hz, r float64) *Resonance {
	f := &Resonance{}
	f.freq = hz
	f.r = r
	f.update()
	return f
}

// SetFrequency moves the resonance peak to hz.
func (f *Resonance) SetFrequency(hz float64) {
	f.freq = hz
	f.update()
}

// SetResonance sets the pole radius in [0, 1).
func (f *Resonance) SetResonance(r float64) {
	f.r = r
	f.update()
}

func (f *Resonance) update() {
	a1 := -2 * f.r * math.Cos(2*math.Pi*f.freq/config.SampleRate)
	a2 := f.r * f.r
	b0 := (1 - f.r*f.r) / 2
	f.SetCoefficients(b0, 0, -b0, a1, a2)
}

// Ladder chains four one-pole lowpass sections with a clamped
// resonance feedback path from the last output to the input.
type Ladder struct {
	stages   [4]OnePole
	feedback float64
	out      float64
}

// SetCutoff sets the cutoff of all four sections.
func (f *Ladder) SetCutoff(hz float64) {
	for i := range f.stages {
		f.stages[i].SetCutoff(hz)
	}
}

// SetFeedback sets the resonance feedback amount.
func (f *Ladder) SetFeedback(amount float64) {
	f.feedback = amount
}

// Process filters one sample.
func (f *Ladder) Process(x float64) float64 {
	fb := f.feedback * f.out
	if fb > 1 {
		fb = 1
	} else if fb < -1 {
		fb = -1
	}
	y := x - fb
	for i := range f.stages {
		y = f.stages[i].Process(y)
	}
	f.out = y
	return y
}

// Reset clears all sections and the feedback state.
func (f *Ladder) Reset() {
	for i := range f.stages {
		f.stages[i].Reset()
	}
	f.out = 0
}
