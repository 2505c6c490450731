package synth

import (
	"math/rand"

	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/clock"
	"github.com/cwbudde/algo-synth/dsp"
	"github.com/cwbudde/algo-synth/midi"
)

// Noise generates filtered white noise shaped by two envelopes, one
// driving the low-pass cutoff and one the resonance frequency, both
// scaled from the pitch of the triggered note.
type Noise struct {
	// Volume of the note.
	Volume float64

	lpf    dsp.OnePole
	lpfEnv *Envelope
	res    *dsp.Resonance
	resEnv *Envelope

	velocity  float64
	frequency float64
	running   bool
}

// NewNoise creates the generator and subscribes its envelopes to the
// frame clock. Unfollow the voice once it stops running.
func NewNoise(c *clock.Clock) *Noise {
	n := &Noise{
		Volume: 1,
		lpfEnv: NewEnvelope(&EnvelopeParams{
			DecayTime:    0.1,
			SustainLevel: 0.01,
			ReleaseTime:  0.1,
		}),
		res: dsp.NewResonance(0, 0.99),
		resEnv: NewEnvelope(&EnvelopeParams{
			AttackTime:   0.05,
			DecayTime:    0.05,
			SustainLevel: 0.1,
			ReleaseTime:  0.01,
		}),
	}
	c.FollowFrame(n, func(clock.Tick) {
		n.lpfEnv.FrameClock()
		n.resEnv.FrameClock()
	})
	return n
}

// Start starts a note.
func (n *Noise) Start(on midi.On) {
	n.velocity = on.Velocity1()
	n.frequency = midi.Frequency(int(on.Note), 0)
	n.lpfEnv.Start()
	n.resEnv.Start()
	n.running = n.lpfEnv.Running() || n.resEnv.Running()
}

// Stop sends both envelopes into their release phase.
func (n *Noise) Stop(midi.Off) {
	n.lpfEnv.Stop()
	n.resEnv.Stop()
}

// Running reports whether either envelope still shapes the noise.
func (n *Noise) Running() bool {
	return n.running
}

// Audio adds one frame of filtered noise into out.
func (n *Noise) Audio(out *audio.Frame) {
	n.lpf.SetCutoff(n.frequency * n.lpfEnv.Out())
	n.res.SetResonance(0.99)
	n.res.SetFrequency(2 * n.frequency * n.resEnv.Out())
	n.running = n.lpfEnv.Running() || n.resEnv.Running()
	if !n.running {
		return
	}
	for i := range out {
		// A random number between -1 and 1
		random := 2*rand.Float64() - 1
		s := n.lpf.Process(random) * 10 * n.res.Process(random) *
			n.velocity * n.Volume
		out[i][audio.Left] += s
		out[i][audio.Right] += s
	}
}
