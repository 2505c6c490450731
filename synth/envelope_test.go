package synth

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/config"
)

// frameCount is the number of frame clocks covering a duration in
// seconds, rounded up, plus one frame of margin.
func frameCount(seconds float64) int {
	return int(math.Ceil(seconds*config.FrameFrequency)) + 1
}

func TestEnvelopeDefaultIsImmediate(t *testing.T) {
	e := NewEnvelope(NewEnvelopeParams()).Start()
	e.FrameClock()
	if e.Out() != 1 {
		t.Fatalf("immediate envelope level: got=%v want=1", e.Out())
	}
	if !e.Running() {
		t.Fatalf("started envelope not running")
	}
}

func TestEnvelopeAttackRamp(t *testing.T) {
	e := NewEnvelope(&EnvelopeParams{
		AttackTime:   0.1,
		SustainLevel: 1,
	}).Start()

	previous := 0.0
	for i := 0; i < frameCount(0.1); i++ {
		e.FrameClock()
		if e.Out() < previous {
			t.Fatalf("attack not monotonic at frame %d: %v after %v", i, e.Out(), previous)
		}
		previous = e.Out()
	}
	if previous != 1 {
		t.Fatalf("attack end level: got=%v want=1", previous)
	}
}

func TestEnvelopeDecaysToSustain(t *testing.T) {
	e := NewEnvelope(&EnvelopeParams{
		DecayTime:    0.1,
		SustainLevel: 0.5,
	}).Start()
	for i := 0; i < frameCount(0.1); i++ {
		e.FrameClock()
	}
	if e.Out() != 0.5 {
		t.Fatalf("sustain level: got=%v want=0.5", e.Out())
	}
}

func TestEnvelopeRelease(t *testing.T) {
	e := NewEnvelope(&EnvelopeParams{
		SustainLevel: 0.8,
		ReleaseTime:  0.1,
	}).Start()
	e.FrameClock()
	if e.Out() != 0.8 {
		t.Fatalf("level before release: got=%v want=0.8", e.Out())
	}

	e.Stop()
	e.FrameClock()
	if e.Out() >= 0.8 {
		t.Fatalf("release did not fade: got=%v", e.Out())
	}
	for i := 0; i < frameCount(0.1); i++ {
		e.FrameClock()
	}
	if e.Running() {
		t.Fatalf("envelope still running after the release time")
	}
	if e.Out() != 0 {
		t.Fatalf("released level: got=%v want=0", e.Out())
	}
}

func TestEnvelopeStopMidAttack(t *testing.T) {
	e := NewEnvelope(&EnvelopeParams{
		AttackTime:   1,
		SustainLevel: 1,
		ReleaseTime:  0.5,
	}).Start()
	for i := 0; i < 10; i++ {
		e.FrameClock()
	}
	level := e.Out()
	if level <= 0 || level >= 1 {
		t.Fatalf("mid-attack level out of range: %v", level)
	}

	e.Stop()
	e.FrameClock()
	if e.Out() >= level {
		t.Fatalf("release from mid-attack did not fade: got=%v start=%v", e.Out(), level)
	}
	if e.Out() <= 0 {
		t.Fatalf("release collapsed immediately: got=%v", e.Out())
	}
}

func TestEnvelopeRestart(t *testing.T) {
	e := NewEnvelope(&EnvelopeParams{
		SustainLevel: 1,
		ReleaseTime:  0.1,
	}).Start()
	e.FrameClock()
	e.Stop()
	for i := 0; i < frameCount(0.1); i++ {
		e.FrameClock()
	}
	if e.Running() {
		t.Fatalf("envelope still running before restart")
	}

	e.Start()
	e.FrameClock()
	if !e.Running() || e.Out() != 1 {
		t.Fatalf("restarted envelope: running=%v out=%v", e.Running(), e.Out())
	}
}
