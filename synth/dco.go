package synth

import (
	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/config"
	"github.com/cwbudde/algo-synth/midi"
)

// bendSemitones is the pitch wheel range, 2 octaves either way.
const bendSemitones = 24

// DCO is a digitally controlled oscillator mixing a square and a
// trapezoidal triangle waveform at the note frequency. The naked
// oscillator has no envelope, see DCOEnvelope for an ADSR sound.
type DCO struct {
	// Params is shared with the user interface and with every other
	// oscillator built from the same set.
	Params *DCOParams

	// Volume of the note, usually driven by an envelope.
	Volume float64

	bend *PitchBend
	mod  *Modulation

	running bool

	// Phase in the waveform, between 0 and 1.
	phase float64

	note     int8
	velocity float64
	tune     float64
}

// NewDCO creates an oscillator on the given parameter set, bent by
// the pitch wheel and modulated by the modulation actuator.
func NewDCO(p *DCOParams, bend *PitchBend, mod *Modulation) *DCO {
	return &DCO{Params: p, Volume: 1, bend: bend, mod: mod, tune: 1}
}

// Start starts a note, picking a fresh random detune.
func (d *DCO) Start(on midi.On) {
	d.note = on.Note
	d.velocity = on.Velocity1()
	d.tune = detuneRatio(d.Params.DetuneCents)
	d.running = true
}

// Stop stops the current note.
func (d *DCO) Stop(midi.Off) {
	d.running = false
}

// Running reports whether the oscillator generates a signal.
func (d *DCO) Running() bool {
	return d.running
}

// Audio adds one frame of the oscillator output into out. The
// parameters are snapshot once per frame.
func (d *DCO) Audio(out *audio.Frame) {
	if !d.running {
		return
	}
	dphase := midi.Frequency(int(d.note), bendSemitones*d.bend.Value()) *
		d.tune / config.SampleRate
	squareAmp := d.velocity * d.Volume * d.Params.SquareVolume
	pwm := d.Params.SquarePWM
	if pwm == 0 {
		pwm = d.mod.Value()*0.49 + 0.5
	}
	triangleAmp := d.velocity * d.Volume * d.Params.TriangleVolume
	ratio := d.Params.TriangleRatio
	peak := ratio * (1 - d.Params.TriangleFallRatio)
	for i := range out {
		var s float64
		if d.phase > pwm {
			s = squareAmp
		} else {
			s = -squareAmp
		}
		if triangleAmp != 0 {
			switch {
			case d.phase < peak:
				s += triangleAmp * (2*d.phase/peak - 1)
			case d.phase < ratio:
				s += triangleAmp * (1 - 2*(d.phase-peak)/(ratio-peak))
			default:
				s -= triangleAmp
			}
		}
		out[i][audio.Left] += s
		out[i][audio.Right] += s
		d.phase += dphase
		// The phase is cyclic modulo 1
		if d.phase > 1 {
			d.phase -= 1
		}
	}
}
