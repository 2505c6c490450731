package synth

import (
	"testing"

	"github.com/cwbudde/algo-synth/clock"
	"github.com/cwbudde/algo-synth/config"
	"github.com/cwbudde/algo-synth/midi"
)

// oneClockPerFrame sets the tempo so every frame carries a MIDI clock.
func oneClockPerFrame(c *clock.Clock) {
	c.SetTempoHz(config.FrameFrequency / clock.MidiClockPerQuarter)
}

func drainInput(in *midi.Input) []midi.Message {
	var out []midi.Message
	var m midi.Message
	for in.TryRead(0, &m) {
		out = append(out, m)
	}
	return out
}

func TestArpeggiatorTracksHeldNotes(t *testing.T) {
	c := clock.New()
	in := midi.NewInput()
	a := NewArpeggiator(c, in, 20, 100, nil)

	a.Midi(midi.On{Note: 60})
	a.Midi(midi.On{Note: 64})
	a.Midi(midi.On{Note: 10})  // below the input range
	a.Midi(midi.On{Note: 100}) // at the exclusive high end
	a.Midi(midi.On{Note: 62, Channel: 3})
	if len(a.Notes) != 2 {
		t.Fatalf("held notes: got=%v want [60 64]", a.Notes)
	}

	a.Midi(midi.Off{Note: 60, Velocity: 15})
	if len(a.Notes) != 1 || a.Notes[0].Note != 64 {
		t.Fatalf("held notes after release: got=%v want [64]", a.Notes)
	}
}

func TestArpeggiatorDefaultEngine(t *testing.T) {
	c := clock.New()
	oneClockPerFrame(c)
	in := midi.NewInput()
	a := NewArpeggiator(c, in, 0, 127, nil)
	a.Run(true)
	a.Midi(midi.On{Note: 60, Velocity: 100})

	// The measure boundary plays the bass an octave down on channel 2.
	c.TickFrameClock()
	msgs := drainInput(in)
	if len(msgs) != 1 {
		t.Fatalf("messages on the measure clock: got=%v", msgs)
	}
	on, ok := msgs[0].(midi.On)
	if !ok || on.Channel != 2 || on.Note != 48 {
		t.Fatalf("measure note: got=%v want on 48 channel 2", msgs[0])
	}

	// The next 16th stops the bass and plays two octaves up on
	// channel 1.
	for i := 0; i < clock.MidiClockPerQuarter/4; i++ {
		c.TickFrameClock()
	}
	msgs = drainInput(in)
	if len(msgs) != 2 {
		t.Fatalf("messages on the next 16th: got=%v", msgs)
	}
	if off, ok := msgs[0].(midi.Off); !ok || off.Channel != 2 || off.Note != 48 {
		t.Fatalf("previous note not stopped: got=%v", msgs[0])
	}
	if on, ok := msgs[1].(midi.On); !ok || on.Channel != 1 || on.Note != 84 {
		t.Fatalf("off-measure note: got=%v want on 84 channel 1", msgs[1])
	}
}

func TestArpeggiatorAccentsThirdBeat(t *testing.T) {
	c := clock.New()
	oneClockPerFrame(c)
	in := midi.NewInput()
	a := NewArpeggiator(c, in, 0, 127, nil)
	a.Run(true)
	a.Midi(midi.On{Note: 60, Velocity: 100})

	var accented []midi.On
	for i := 0; i < 3*clock.MidiClockPerQuarter; i++ {
		c.TickFrameClock()
		for _, m := range drainInput(in) {
			if on, ok := m.(midi.On); ok && on.Channel == 3 {
				accented = append(accented, on)
			}
		}
	}
	if len(accented) == 0 {
		t.Fatalf("no accented note on the third beat")
	}
	for _, on := range accented {
		if on.Velocity != 127 || on.Note != 84 {
			t.Fatalf("accented note: got=%v want note 84 velocity 127", on)
		}
	}
}

func TestArpeggiatorStopEmitsNoteOff(t *testing.T) {
	c := clock.New()
	oneClockPerFrame(c)
	in := midi.NewInput()
	a := NewArpeggiator(c, in, 0, 127, nil)
	a.Run(true)
	a.Midi(midi.On{Note: 60, Velocity: 100})

	c.TickFrameClock()
	drainInput(in)

	a.Run(false)
	msgs := drainInput(in)
	if len(msgs) != 1 {
		t.Fatalf("messages on stop: got=%v", msgs)
	}
	if off, ok := msgs[0].(midi.Off); !ok || off.Note != 48 || off.Channel != 2 {
		t.Fatalf("trailing note off: got=%v want off 48 channel 2", msgs[0])
	}

	c.TickFrameClock()
	if msgs := drainInput(in); len(msgs) != 0 {
		t.Fatalf("stopped arpeggiator kept playing: %v", msgs)
	}
}

func TestArpeggiatorCustomEngine(t *testing.T) {
	c := clock.New()
	oneClockPerFrame(c)
	in := midi.NewInput()
	fired := 0
	a := NewArpeggiator(c, in, 0, 127, func(a *Arpeggiator, t clock.Tick) {
		fired++
	})
	a.Run(true)
	c.TickFrameClock()
	c.TickFrameClock()
	if fired != 2 {
		t.Fatalf("custom engine calls: got=%d want=2", fired)
	}
}
