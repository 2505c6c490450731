package dsp

import (
	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/config"
)

// delayFrames is the capacity of the delay line, 5 seconds of frames.
const delayFrames = int(5 * config.FrameFrequency)

// Delay adds a delayed copy of the signal, with the right channel
// delayed twice as long as the left for a stereo spread. A feedback
// path re-injects part of the previous output frame into the line.
type Delay struct {
	// Time is the left-channel delay in seconds. Almost an 8th note
	// at 120 BPM sounds cool.
	Time float64

	// Ratio is the level of the delayed signal, 0 disables the effect.
	Ratio float64

	// Feedback is the portion of the previous output written back
	// into the delay line along with the input.
	Feedback float64

	line []audio.Sample
	prev audio.Frame
}

// NewDelay creates the delay with its default time and no wet signal.
func NewDelay() *Delay {
	return &Delay{
		Time: 0.245,
		line: make([]audio.Sample, delayFrames*config.FrameSize),
	}
}

// Process mixes the delayed signal into the frame.
func (d *Delay) Process(frame *audio.Frame) {
	copy(d.line, d.line[config.FrameSize:])
	end := len(d.line)
	base := end - config.FrameSize
	for i := range frame {
		d.line[base+i][audio.Left] = frame[i][audio.Left] + d.Feedback*d.prev[i][audio.Left]
		d.line[base+i][audio.Right] = frame[i][audio.Right] + d.Feedback*d.prev[i][audio.Right]
	}
	shift := int(d.Time * config.SampleRate)
	if 2*shift > base {
		shift = base / 2
	}
	for i := range frame {
		frame[i][audio.Left] += d.line[base-shift+i][audio.Left] * d.Ratio
		frame[i][audio.Right] += d.line[base-2*shift+i][audio.Right] * d.Ratio
	}
	d.prev = *frame
}
