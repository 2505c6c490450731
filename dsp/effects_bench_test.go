package dsp

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/config"
)

func benchFrame() audio.Frame {
	var frame audio.Frame
	for i := range frame {
		x := math.Sin(2 * math.Pi * 440 * float64(i) / config.SampleRate)
		frame[i] = audio.Sample{x, x}
	}
	return frame
}

func BenchmarkDelayProcess(b *testing.B) {
	d := NewDelay()
	d.Ratio = 0.5
	d.Feedback = 0.3
	frame := benchFrame()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		work := frame
		d.Process(&work)
	}
}

func BenchmarkFlangerProcess(b *testing.B) {
	f := NewFlanger()
	frame := benchFrame()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		work := frame
		f.Process(&work)
	}
}

func BenchmarkLadderProcess(b *testing.B) {
	var f Ladder
	f.SetCutoff(1200)
	f.SetFeedback(2)
	frame := benchFrame()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := range frame {
			f.Process(frame[j][audio.Left])
		}
	}
}
