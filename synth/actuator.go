package synth

import "github.com/cwbudde/algo-synth/midi"

// PitchBend broadcasts the pitch wheel position, from -1 to +1 with 0
// as the rest value, to every interested oscillator.
type PitchBend struct {
	state float64
}

// NewPitchBend creates a pitch bend actuator following the wheel of
// the given port and channel.
func NewPitchBend(in *midi.Input, port int, channel int8) *PitchBend {
	p := &PitchBend{}
	in.AddAction(port, midi.PitchBendHeader(channel), func(m midi.Message) {
		if pb, ok := m.(midi.PitchBend); ok {
			p.Set(pb.Value)
		}
	})
	return p
}

// Value returns the current wheel position.
func (p *PitchBend) Value() float64 {
	if p == nil {
		return 0
	}
	return p.state
}

// Set stores the wheel position.
func (p *PitchBend) Set(v float64) { p.state = v }

// Modulation broadcasts the modulation actuator position, such as a
// modulation wheel or lever, from 0 to 1.
type Modulation struct {
	state float64
}

// NewModulation creates a modulation actuator following the wheel of
// the given port and channel.
func NewModulation(in *midi.Input, port int, channel int8) *Modulation {
	m := &Modulation{}
	in.CCAction(port, channel, midi.ModulationWheel, m.Set)
	return m
}

// Value returns the current actuator position.
func (m *Modulation) Value() float64 {
	if m == nil {
		return 0
	}
	return m.state
}

// Set stores the actuator position.
func (m *Modulation) Set(v float64) { m.state = v }
