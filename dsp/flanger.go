package dsp

import (
	"math"

	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/config"
)

// Flanger sweep bounds in seconds.
const (
	flangerDelayTime    = 0.05
	flangerMinDelayTime = 0.0
)

// flangerLineSize rounds the line up to whole frames: the sweep range
// plus one sample of interpolation headroom plus the current frame.
const flangerLineSize = (int(flangerDelayTime*config.SampleRate+1+config.FrameSize) +
	config.FrameSize - 1) / config.FrameSize * config.FrameSize

// Flanger is a stereo flanger with an independent sine LFO per
// channel sweeping the tap of a shared delay line. The LFO runs at
// the audio frequency for a smooth rendering.
type Flanger struct {
	// Ratio is the wet level per channel, typically between -1 and 1.
	// The sign changes the comb filter pattern.
	Ratio audio.Sample

	phase  audio.Sample
	dphase audio.Sample
	line   []audio.Sample
}

// NewFlanger creates the flanger with its default sweep rates of
// 0.5 Hz left and 0.13 Hz right.
func NewFlanger() *Flanger {
	return &Flanger{
		Ratio:  audio.Sample{0.7, -0.7},
		dphase: audio.Sample{0.5 / config.SampleRate, 0.13 / config.SampleRate},
		line:   make([]audio.Sample, flangerLineSize),
	}
}

// Process mixes the swept delayed signal into the frame.
func (f *Flanger) Process(frame *audio.Frame) {
	copy(f.line, f.line[config.FrameSize:])
	base := len(f.line) - config.FrameSize
	for i := range frame {
		f.line[base+i] = frame[i]
	}
	for i := range frame {
		for side := range frame[i] {
			lfo := math.Sin((f.phase[side] + float64(i)*f.dphase[side]) * 2 * math.Pi)
			delayIndex := ((lfo+1)*(flangerDelayTime-flangerMinDelayTime)/2 +
				flangerMinDelayTime) * config.SampleRate
			// The delay is not an integer number of samples, so
			// interpolate linearly between the 2 surrounding samples.
			idx := int(delayIndex)
			frac := delayIndex - math.Floor(delayIndex)
			frame[i][side] += f.Ratio[side] *
				(f.line[base+i-idx-1][side]*frac +
					f.line[base+i-idx][side]*(1-frac))
		}
	}
	// Catch the phases up with the time spent in the frame, keeping
	// only the fractional part to avoid big numbers.
	for side := range f.phase {
		f.phase[side] += config.FrameSize * f.dphase[side]
		f.phase[side] -= math.Floor(f.phase[side])
	}
}
