package synth

import (
	"testing"

	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/clock"
	"github.com/cwbudde/algo-synth/midi"
)

func TestDCOEnvelopeVolumeFollowsEnvelope(t *testing.T) {
	c := clock.New()
	g := NewDCOEnvelope(c, NewDCOParams(), &EnvelopeParams{SustainLevel: 0.5}, nil, nil)
	g.Start(midi.On{Note: 60, Velocity: 127})

	c.TickFrameClock()
	if g.Volume != 0.5 {
		t.Fatalf("voice volume at sustain: got=%v want=0.5", g.Volume)
	}
}

func TestDCOEnvelopeKeepsPlayingThroughRelease(t *testing.T) {
	c := clock.New()
	g := NewDCOEnvelope(c, NewDCOParams(), &EnvelopeParams{
		SustainLevel: 1,
		ReleaseTime:  0.1,
	}, nil, nil)
	g.Start(midi.On{Note: 60, Velocity: 127})
	c.TickFrameClock()

	g.Stop(midi.Off{Note: 60})
	c.TickFrameClock()
	if !g.Running() {
		t.Fatalf("voice stopped at the start of the release")
	}
	var frame audio.Frame
	g.Audio(&frame)
	if frame == (audio.Frame{}) {
		t.Fatalf("releasing voice went silent immediately")
	}

	for i := 0; i < frameCount(0.1); i++ {
		c.TickFrameClock()
	}
	if g.Running() {
		t.Fatalf("voice still running after the release time")
	}
	if g.DCO.Running() {
		t.Fatalf("oscillator not finalized after the envelope finished")
	}
	frame = audio.Frame{}
	g.Audio(&frame)
	if frame != (audio.Frame{}) {
		t.Fatalf("finished voice produced a signal")
	}
}

func TestDCOEnvelopeZeroVolumeBeforeFirstFrame(t *testing.T) {
	c := clock.New()
	g := NewDCOEnvelope(c, NewDCOParams(), &EnvelopeParams{
		AttackTime:   1,
		SustainLevel: 1,
	}, nil, nil)
	g.Start(midi.On{Note: 60, Velocity: 127})
	if g.Volume != 0 {
		t.Fatalf("volume before the first frame clock: got=%v want=0", g.Volume)
	}
}
