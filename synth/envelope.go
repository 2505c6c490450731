package synth

import "github.com/cwbudde/algo-synth/config"

type envelopeState int8

const (
	envStopped envelopeState = iota
	envAttack
	envDecay
	envSustain
	envRelease
)

// Envelope is an ADSR generator updated at the frame frequency. The
// state time carries its excess across transitions so several phases
// may complete within a single frame.
type Envelope struct {
	// Params is shared with the user interface and with every other
	// envelope built from the same set.
	Params *EnvelopeParams

	state             envelopeState
	stateTime         float64
	output            float64
	releaseStartLevel float64
}

// NewEnvelope creates a stopped envelope on the given parameter set.
func NewEnvelope(p *EnvelopeParams) *Envelope {
	return &Envelope{Params: p}
}

// Start restarts the envelope from the attack phase.
func (e *Envelope) Start() *Envelope {
	e.state = envAttack
	e.stateTime = 0
	return e
}

// Stop sends the envelope into its release phase, fading from the
// current output level.
func (e *Envelope) Stop() *Envelope {
	e.state = envRelease
	e.releaseStartLevel = e.output
	e.stateTime = 0
	return e
}

// FrameClock advances the envelope by one frame period. Since it is
// an envelope generator there is no need to update it at the audio
// frequency.
func (e *Envelope) FrameClock() {
	e.stateTime += config.FramePeriod
	for {
		previous := e.state
		switch e.state {
		case envStopped:
			e.output = 0
		case envAttack:
			if e.stateTime >= e.Params.AttackTime {
				e.stateTime -= e.Params.AttackTime
				e.output = 1
				e.state = envDecay
			} else {
				e.output = e.stateTime / e.Params.AttackTime
			}
		case envDecay:
			if e.stateTime >= e.Params.DecayTime {
				e.stateTime -= e.Params.DecayTime
				e.state = envSustain
			} else {
				e.output = 1 - (1-e.Params.SustainLevel)*e.stateTime/e.Params.DecayTime
			}
		case envSustain:
			e.output = e.Params.SustainLevel
		case envRelease:
			if e.stateTime >= e.Params.ReleaseTime {
				e.state = envStopped
			} else {
				e.output = e.releaseStartLevel * (1 - e.stateTime/e.Params.ReleaseTime)
			}
		}
		if previous == e.state {
			break
		}
	}
}

// Running reports whether the envelope produces a level.
func (e *Envelope) Running() bool {
	return e.state != envStopped
}

// Out returns the current level in [0, 1].
func (e *Envelope) Out() float64 {
	return e.output
}
