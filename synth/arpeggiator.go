package synth

import (
	"github.com/cwbudde/algo-synth/clock"
	"github.com/cwbudde/algo-synth/midi"
)

// ArpeggiatorEngine is a procedure deciding what an arpeggiator plays
// on each MIDI clock.
type ArpeggiatorEngine func(*Arpeggiator, clock.Tick)

// Arpeggiator generates notes from the flow of held notes. It is
// notified on each MIDI clock and emits synthetic note-ons back
// through the input hub.
type Arpeggiator struct {
	// LowInputLimit ignores notes lower than this one.
	LowInputLimit int8

	// HighInputEnd ignores notes equal to or higher than this one.
	HighInputEnd int8

	// InputChannel is the channel the arpeggiator listens to.
	InputChannel int8

	// Notes are the held notes to play with, in insertion order.
	Notes []midi.On

	// NoteIndex is the index of the next note to play.
	NoteIndex int

	in      *midi.Input
	current *midi.On
	running bool
	engine  ArpeggiatorEngine
}

// NewArpeggiator creates an arpeggiator sensitive to notes in
// [low, high) on channel 0, driven by engine or by the default engine
// when engine is nil.
func NewArpeggiator(c *clock.Clock, in *midi.Input, low, high int8,
	engine ArpeggiatorEngine) *Arpeggiator {
	a := &Arpeggiator{
		LowInputLimit: low,
		HighInputEnd:  high,
		in:            in,
		engine:        engine,
	}
	c.FollowMidiClock(a, a.midiClock)
	return a
}

// Midi observes a MIDI message, tracking the held notes matching the
// input filter.
func (a *Arpeggiator) Midi(m midi.Message) {
	switch v := m.(type) {
	case midi.On:
		if a.LowInputLimit <= v.Note && v.Note < a.HighInputEnd &&
			v.Channel == a.InputChannel {
			a.Notes = append(a.Notes, v)
		}
	case midi.Off:
		if a.LowInputLimit <= v.Note && v.Note < a.HighInputEnd &&
			v.Channel == a.InputChannel {
			// Remove the same note without looking at the velocity
			kept := a.Notes[:0]
			for _, n := range a.Notes {
				if n.Channel != v.Channel || n.Note != v.Note {
					kept = append(kept, n)
				}
			}
			a.Notes = kept
		}
	}
}

// Run starts or stops the sequencer. Stopping emits the note-off of
// the currently held note.
func (a *Arpeggiator) Run(run bool) {
	if a.running && !run {
		a.StopCurrentNote()
	}
	a.running = run
}

// StopCurrentNote emits the note-off of the emitted note, if any.
func (a *Arpeggiator) StopCurrentNote() {
	if a.current != nil {
		a.in.Insert(0, a.current.AsOff())
		a.current = nil
	}
}

// Emit inserts a synthetic note-on into the input hub and keeps it as
// the current note. Engines use this to play their picks.
func (a *Arpeggiator) Emit(n midi.On) {
	a.current = &n
	a.in.Insert(0, n)
}

func (a *Arpeggiator) midiClock(t clock.Tick) {
	if !a.running {
		return
	}
	if a.engine != nil {
		a.engine(a, t)
		return
	}
	a.defaultEngine(t)
}

// defaultEngine works on the 16th of note: cycle the held notes, with
// the bass on measure boundaries, transposed up two octaves off the
// measure and down one octave on it.
func (a *Arpeggiator) defaultEngine(t clock.Tick) {
	if t.MidiClockIndex%(midi.ClockPerQuarter/4) != 0 {
		return
	}
	a.StopCurrentNote()
	if len(a.Notes) == 0 {
		return
	}
	bass := 0
	for i, n := range a.Notes {
		if n.Note < a.Notes[bass].Note {
			bass = i
		}
	}
	// Wrap around if we reached the end
	if a.NoteIndex >= len(a.Notes) {
		a.NoteIndex = 0
	}
	var n midi.On
	if t.Measure {
		n = a.Notes[bass]
	} else {
		n = a.Notes[a.NoteIndex]
	}
	// Replay the measure note on channel 2, the notes of the third beat
	// on channel 3 and the others on channel 1
	switch {
	case t.Measure:
		n.Channel = 2
		n.Note -= 12
	case t.BeatIndex == 2:
		n.Channel = 3
		n.Note += 24
	default:
		n.Channel = 1
		n.Note += 24
	}
	if t.BeatIndex == 2 {
		n.Velocity = 127
	}
	a.Emit(n)
	a.NoteIndex++
}
