package synth

import "github.com/cwbudde/algo-synth/midi"

// Sustain postpones note-off messages while the pedal is down. It
// sits between the raw MIDI input and the voice map.
//
// Retriggering a held note during pedal-down first emits the deferred
// note-off, then the new note-on, so no two voices for the same note
// coexist. The single postponed slot keeps that order deterministic.
type Sustain struct {
	in *midi.Input

	state        bool
	justReleased bool

	// Deferred note-offs keyed by their direction-less note header,
	// drained one per Process call once the pedal is released.
	sustained map[midi.Header]midi.Off
	order     []midi.Header

	postponed midi.Message
}

// NewSustain creates the pedal filter reading from in and following
// controller 64 of the given port and channel.
func NewSustain(in *midi.Input, port int, channel int8) *Sustain {
	s := &Sustain{
		in:        in,
		sustained: map[midi.Header]midi.Off{},
	}
	in.CCAction(port, channel, midi.SustainPedal, func(v float64) {
		s.SetValue(v != 0)
	})
	return s
}

// Value returns the current state of the pedal.
func (s *Sustain) Value() bool {
	return s.state
}

// SetValue sets the current state of the pedal. The down-to-up edge
// books the release of every deferred note-off.
func (s *Sustain) SetValue(v bool) {
	s.justReleased = s.state && !v
	s.state = v
}

// Process produces the next MIDI message of the port after sustain
// filtering and reports whether one was produced.
func (s *Sustain) Process(port int, m *midi.Message) bool {
	if s.postponed != nil {
		*m = s.postponed
		s.postponed = nil
		return true
	}
	// If the pedal has just been released, stop one pending note
	if s.justReleased && len(s.order) > 0 {
		h := s.order[0]
		s.order = s.order[1:]
		*m = s.sustained[h]
		delete(s.sustained, h)
		if len(s.order) == 0 {
			s.justReleased = false
		}
		return true
	}
	s.justReleased = false
	var msg midi.Message
	if !s.in.TryRead(port, &msg) {
		return false
	}
	if s.state {
		switch v := msg.(type) {
		case midi.Off:
			h := midi.NoteHeaderOf(v)
			if _, held := s.sustained[h]; !held {
				s.order = append(s.order, h)
			}
			s.sustained[h] = v
			// Do not return the note-off message for now
			return false
		case midi.On:
			h := midi.NoteHeaderOf(v)
			if off, held := s.sustained[h]; held {
				// Retrigger: release the held note first, then
				// replay the incoming note-on.
				delete(s.sustained, h)
				for i, oh := range s.order {
					if oh == h {
						s.order = append(s.order[:i], s.order[i+1:]...)
						break
					}
				}
				s.postponed = v
				*m = off
				return true
			}
		}
	}
	// Pass-through any other message
	*m = msg
	return true
}
