package synth

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-synth/dsp"
	"github.com/cwbudde/algo-synth/midi"
)

func benchmarkEngineFrame(b *testing.B, notes []int8, flanger bool) {
	e, in := newTestEngine()
	if flanger {
		e.Flanger = dsp.NewFlanger()
	}
	for _, note := range notes {
		in.Push(0, midi.On{Note: note, Velocity: 100})
	}
	e.ProcessMidi(0)
	if e.VoiceCount() != len(notes) {
		b.Fatalf("voices: got=%d want=%d", e.VoiceCount(), len(notes))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Frame()
	}
}

func BenchmarkEngineFrame(b *testing.B) {
	cases := []struct {
		name  string
		notes []int8
	}{
		{"poly1", []int8{60}},
		{"poly4", []int8{48, 55, 60, 64}},
		{"poly8", []int8{36, 43, 48, 52, 55, 60, 64, 67}},
	}
	for _, tc := range cases {
		for _, flanger := range []bool{false, true} {
			name := fmt.Sprintf("%s_flanger_%t", tc.name, flanger)
			b.Run(name, func(b *testing.B) {
				benchmarkEngineFrame(b, tc.notes, flanger)
			})
		}
	}
}
