package synth

import (
	"math"

	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/config"
)

// renderMono renders the left channel of a generator for the given
// duration, one frame at a time.
func renderMono(g Generator, seconds float64) []float64 {
	frames := int(seconds * config.FrameFrequency)
	samples := make([]float64, 0, frames*config.FrameSize)
	for n := 0; n < frames; n++ {
		var frame audio.Frame
		g.Audio(&frame)
		for i := range frame {
			samples = append(samples, frame[i][audio.Left])
		}
	}
	return samples
}

// measureFundamentalFreq estimates the fundamental from the zero
// crossing rate, skipping the first tenth of the signal to let any
// transient settle.
func measureFundamentalFreq(samples []float64) float64 {
	startIdx := len(samples) / 10
	crossings := 0
	for i := startIdx + 1; i < len(samples); i++ {
		if (samples[i-1] < 0 && samples[i] >= 0) || (samples[i-1] >= 0 && samples[i] < 0) {
			crossings++
		}
	}
	if crossings == 0 {
		return 0
	}
	duration := float64(len(samples)-startIdx) / config.SampleRate
	return float64(crossings) / (2.0 * duration)
}

func windowRMS(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}
