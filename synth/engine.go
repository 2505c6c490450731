package synth

import (
	"log"
	"math"

	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/clock"
	"github.com/cwbudde/algo-synth/dsp"
	"github.com/cwbudde/algo-synth/midi"
)

type voiceKey struct {
	channel, note int8
}

// Engine owns the voice map and the mixing chain. All methods run on
// the synthesis thread.
type Engine struct {
	Clock    *clock.Clock
	Input    *midi.Input
	Sustain  *Sustain
	Channels *ChannelAssignment
	Bend     *PitchBend
	Mod      *Modulation

	// Arpeggiators observe every message produced by the sustain
	// filter.
	Arpeggiators []*Arpeggiator

	// OnSysex handles device sysex messages, typically the channel
	// selection buttons of the controller surface.
	OnSysex func(midi.Sysex)

	// Rectifier blends the signal with its absolute value, in [0, 1].
	Rectifier float64

	// MasterVolume scales the mixed signal before the effects.
	MasterVolume float64

	// LFOLow and LFOHigh bound the low-pass amplitude modulation.
	LFOLow, LFOHigh float64

	// LFO modulates the low-pass output when running.
	LFO dsp.LFO

	// Delay is the tempo delay at the end of the chain.
	Delay *dsp.Delay

	// Flanger is mixed in after the delay when set.
	Flanger *dsp.Flanger

	voices map[voiceKey]Generator

	lowPass   [2]dsp.OnePole
	lowPassOn bool

	resonance   [2]*dsp.Resonance
	resonanceOn bool
}

// NewEngine creates the engine and wires the pitch bend, modulation
// and sustain followers on port 0 channel 0.
func NewEngine(c *clock.Clock, in *midi.Input) *Engine {
	e := &Engine{
		Clock:        c,
		Input:        in,
		Sustain:      NewSustain(in, 0, 0),
		Channels:     NewChannelAssignment(),
		Bend:         NewPitchBend(in, 0, 0),
		Mod:          NewModulation(in, 0, 0),
		MasterVolume: 1,
		LFOLow:       1,
		LFOHigh:      1,
		Delay:        dsp.NewDelay(),
		voices:       map[voiceKey]Generator{},
		resonance:    [2]*dsp.Resonance{dsp.NewResonance(0, 0), dsp.NewResonance(0, 0)},
	}
	c.FollowFrame(&e.LFO, func(clock.Tick) { e.LFO.TickClock() })
	return e
}

// SetLowPassCutoff enables the stereo low-pass of the mixing chain
// and sets its cutoff in Hz.
func (e *Engine) SetLowPassCutoff(hz float64) {
	e.lowPassOn = true
	for i := range e.lowPass {
		e.lowPass[i].SetCutoff(hz)
	}
}

// SetResonance enables the stereo resonance filter of the mixing
// chain, peaking at hz with pole radius r.
func (e *Engine) SetResonance(hz, r float64) {
	e.resonanceOn = true
	for i := range e.resonance {
		e.resonance[i].SetFrequency(hz)
		e.resonance[i].SetResonance(r)
	}
}

// VoiceCount returns the number of live voices.
func (e *Engine) VoiceCount() int {
	return len(e.voices)
}

// ProcessMidi drains the registered actions, then the sustain-
// filtered message flow of the port, starting and stopping voices.
func (e *Engine) ProcessMidi(port int) {
	e.Input.DispatchRegisteredActions()
	var m midi.Message
	for e.Sustain.Process(port, &m) {
		for _, a := range e.Arpeggiators {
			a.Midi(m)
		}
		switch v := m.(type) {
		case midi.On:
			e.NoteOn(v)
		case midi.Off:
			e.NoteOff(v)
		case midi.Sysex:
			if e.OnSysex != nil {
				e.OnSysex(v)
			}
		}
	}
}

// NoteOn starts a voice from the preset assigned to the channel of
// the note. A note already playing on the same channel is replaced.
func (e *Engine) NoteOn(on midi.On) {
	p, ok := e.Channels.Preset(int(on.Channel))
	if !ok {
		log.Printf("synth: note on %d for unassigned channel %d", on.Note, on.Channel)
		return
	}
	k := voiceKey{on.Channel, on.Note}
	if old, exists := e.voices[k]; exists {
		e.Clock.Unfollow(old)
	}
	v := p.NewVoice(e.Clock, e.Bend, e.Mod)
	e.voices[k] = v
	v.Start(on)
}

// NoteOff stops the voice of the note. The voice stays in the map
// until its release completes.
func (e *Engine) NoteOff(off midi.Off) {
	if v, ok := e.voices[voiceKey{off.Channel, off.Note}]; ok {
		v.Stop(off)
	} else {
		log.Printf("synth: note off %d without matching note on, ignored", off.Note)
	}
}

// Frame advances the clock by one frame, mixes every voice through
// the chain and returns the processed frame. Voices that stopped
// running are pruned at the end of the frame.
func (e *Engine) Frame() audio.Frame {
	e.Clock.TickFrameClock()

	var frame audio.Frame
	for _, v := range e.voices {
		v.Audio(&frame)
	}

	lfo := e.LFO.OutIn(e.LFOLow, e.LFOHigh)
	attenuation := float64(4 + len(e.voices))
	for i := range frame {
		for side := range frame[i] {
			s := frame[i][side]
			s = s*(1-e.Rectifier) + e.Rectifier*math.Abs(s)
			if e.lowPassOn {
				s = e.lowPass[side].Process(s)
			}
			s *= lfo
			s /= attenuation
			if e.resonanceOn {
				s = e.resonance[side].Process(s)
			}
			s *= e.MasterVolume
			frame[i][side] = s
		}
	}
	e.Delay.Process(&frame)
	if e.Flanger != nil {
		e.Flanger.Process(&frame)
	}

	for k, v := range e.voices {
		if !v.Running() {
			e.Clock.Unfollow(v)
			delete(e.voices, k)
		}
	}
	return frame
}
