// Package synth implements the polyphonic synthesis engine: the
// voices and their envelopes, oscillators and noise generators, the
// sustain pedal filter, the arpeggiators and the mixing chain.
package synth

import (
	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/clock"
	"github.com/cwbudde/algo-synth/midi"
)

// Generator is a sound generator playing a single note.
type Generator interface {
	// Start starts the generator from a note-on.
	Start(midi.On)
	// Stop stops the generator from a note-off. A releasing generator
	// may keep running for a while afterwards.
	Stop(midi.Off)
	// Audio adds one frame of the generator output into out.
	Audio(out *audio.Frame)
	// Running reports whether the generator still produces a signal.
	Running() bool
}

// Preset is a named parameter set from which a voice is built on each
// note-on. The parameter sets behind the voice stay shared, so a
// change through the user interface affects every running voice built
// from the same preset.
type Preset interface {
	PresetName() string
	NewVoice(c *clock.Clock, bend *PitchBend, mod *Modulation) Generator
}

// DCOPreset builds naked oscillators without an envelope.
type DCOPreset struct {
	Name   string
	Params *DCOParams
}

func (p *DCOPreset) PresetName() string { return p.Name }

func (p *DCOPreset) NewVoice(_ *clock.Clock, bend *PitchBend, mod *Modulation) Generator {
	return NewDCO(p.Params, bend, mod)
}

// DCOEnvelopePreset builds oscillator voices with an ADSR envelope.
type DCOEnvelopePreset struct {
	Name string
	DCO  *DCOParams
	Env  *EnvelopeParams
}

func (p *DCOEnvelopePreset) PresetName() string { return p.Name }

func (p *DCOEnvelopePreset) NewVoice(c *clock.Clock, bend *PitchBend, mod *Modulation) Generator {
	return NewDCOEnvelope(c, p.DCO, p.Env, bend, mod)
}

// NoisePreset builds filtered-noise voices.
type NoisePreset struct {
	Name   string
	Volume float64
}

func (p *NoisePreset) PresetName() string { return p.Name }

func (p *NoisePreset) NewVoice(c *clock.Clock, _ *PitchBend, _ *Modulation) Generator {
	n := NewNoise(c)
	if p.Volume != 0 {
		n.Volume = p.Volume
	}
	return n
}
