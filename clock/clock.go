// Package clock drives the musical timing of the synthesizer: the
// per-frame tick, the 24-per-quarter MIDI clock, beats and measures,
// and a wall-clock scheduler for appointments.
package clock

import (
	"log"

	"github.com/cwbudde/algo-synth/config"
)

// MidiClockPerQuarter is the number of MIDI clocks per quarter note.
const MidiClockPerQuarter = 24

// Tick describes the state of the current frame. The booleans are
// true only on the first frame of their cycle.
type Tick struct {
	// MidiClockIndex counts MIDI clocks within the current beat,
	// wrapping modulo 24.
	MidiClockIndex int
	// BeatIndex counts beats within the current measure, wrapping
	// modulo the meter.
	BeatIndex int

	MidiClock bool
	Beat      bool
	Measure   bool
}

// Handler consumes clock notifications.
type Handler func(Tick)

// Clock is advanced by the synthesis thread exactly once per output
// frame. All methods must be called from that thread.
type Clock struct {
	Scheduler Scheduler

	// Phase in the MIDI clock period, in [0, 1).
	phase float64
	// Phase increment per frame for the current tempo.
	midiDphase float64

	tick  Tick
	meter int

	frameHandlers     map[any]Handler
	midiClockHandlers map[any]Handler
	beatHandlers      map[any]Handler
	measureHandlers   map[any]Handler
}

// New creates a clock at 120 BPM in 4/4.
func New() *Clock {
	c := &Clock{
		meter:             4,
		frameHandlers:     map[any]Handler{},
		midiClockHandlers: map[any]Handler{},
		beatHandlers:      map[any]Handler{},
		measureHandlers:   map[any]Handler{},
	}
	c.SetTempoBPM(120)
	return c
}

// SetTempoBPM sets the tempo in beats per minute.
func (c *Clock) SetTempoBPM(bpm float64) {
	c.SetTempoHz(bpm / 60)
}

// SetTempoHz sets the tempo in beats per second.
func (c *Clock) SetTempoHz(hz float64) {
	c.midiDphase = hz * MidiClockPerQuarter * config.FramePeriod
	if c.midiDphase > 1 {
		log.Printf("clock: tempo %g Hz overruns the frame rate, MIDI ticks will be skipped", hz)
	}
}

// SetMeter sets the number of beats per measure.
func (c *Clock) SetMeter(meter int) {
	if meter < 1 {
		meter = 1
	}
	c.meter = meter
}

// Meter returns the number of beats per measure.
func (c *Clock) Meter() int {
	return c.meter
}

// CurrentTick returns the tick of the frame being processed.
func (c *Clock) CurrentTick() Tick {
	return c.tick
}

// FollowFrame subscribes h to the per-frame notification under the
// given identity.
func (c *Clock) FollowFrame(id any, h Handler) {
	c.frameHandlers[id] = h
}

// FollowMidiClock subscribes h to the MIDI clock notification.
func (c *Clock) FollowMidiClock(id any, h Handler) {
	c.midiClockHandlers[id] = h
}

// FollowBeat subscribes h to the beat notification.
func (c *Clock) FollowBeat(id any, h Handler) {
	c.beatHandlers[id] = h
}

// FollowMeasure subscribes h to the measure notification.
func (c *Clock) FollowMeasure(id any, h Handler) {
	c.measureHandlers[id] = h
}

// Unfollow removes every subscription held under the identity.
func (c *Clock) Unfollow(id any) {
	delete(c.frameHandlers, id)
	delete(c.midiClockHandlers, id)
	delete(c.beatHandlers, id)
	delete(c.measureHandlers, id)
}

// TickFrameClock advances the clock by one frame: fire due
// appointments, derive the MIDI clock, beat and measure edges from
// the phase accumulator, then notify in the order measure, beat,
// MIDI clock, frame.
func (c *Clock) TickFrameClock() {
	c.Scheduler.Schedule()

	c.tick.MidiClock = false
	c.tick.Beat = false
	c.tick.Measure = false

	c.phase += c.midiDphase
	if c.phase >= 1 {
		c.phase -= 1
		c.tick.MidiClock = true
		if c.tick.MidiClockIndex == 0 {
			c.tick.Beat = true
			if c.tick.BeatIndex == 0 {
				c.tick.Measure = true
			}
		}
	}

	if c.tick.Measure {
		for _, h := range c.measureHandlers {
			h(c.tick)
		}
	}
	if c.tick.Beat {
		for _, h := range c.beatHandlers {
			h(c.tick)
		}
	}
	if c.tick.MidiClock {
		for _, h := range c.midiClockHandlers {
			h(c.tick)
		}
	}
	for _, h := range c.frameHandlers {
		h(c.tick)
	}

	if c.tick.MidiClock {
		c.tick.MidiClockIndex++
		if c.tick.MidiClockIndex == MidiClockPerQuarter {
			c.tick.MidiClockIndex = 0
			c.tick.BeatIndex++
			if c.tick.BeatIndex >= c.meter {
				c.tick.BeatIndex = 0
			}
		}
	}
}
