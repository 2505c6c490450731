package synth

import (
	"github.com/cwbudde/algo-synth/clock"
	"github.com/cwbudde/algo-synth/midi"
)

// DCOEnvelope is an oscillator whose volume follows an ADSR envelope.
// The note-off is memorized and only forwarded to the oscillator when
// the envelope decides the sound is over.
type DCOEnvelope struct {
	DCO

	// Env controls the volume evolution of the sound.
	Env *Envelope

	noteOff midi.Off
}

// NewDCOEnvelope creates the voice and subscribes its envelope to the
// frame clock. Unfollow the voice once it stops running.
func NewDCOEnvelope(c *clock.Clock, p *DCOParams, ep *EnvelopeParams,
	bend *PitchBend, mod *Modulation) *DCOEnvelope {
	g := &DCOEnvelope{
		DCO: *NewDCO(p, bend, mod),
		Env: NewEnvelope(ep),
	}
	c.FollowFrame(g, func(clock.Tick) { g.frameClock() })
	return g
}

// Start starts a note.
func (g *DCOEnvelope) Start(on midi.On) {
	g.Env.Start()
	g.DCO.Start(on)
	g.Volume = g.Env.Out()
}

// Stop postpones the note-off, it is now handled by the envelope.
func (g *DCOEnvelope) Stop(off midi.Off) {
	g.noteOff = off
	g.Env.Stop()
	g.Volume = g.Env.Out()
}

// Running reports whether the envelope still produces a level.
func (g *DCOEnvelope) Running() bool {
	return g.Env.Running()
}

func (g *DCOEnvelope) frameClock() {
	g.Env.FrameClock()
	g.Volume = g.Env.Out()
	if !g.Env.Running() && g.DCO.Running() {
		// Finalize the note only when the envelope decides to
		g.DCO.Stop(g.noteOff)
	}
}
