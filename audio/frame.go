// Package audio defines the stereo frame type and the output pipe
// feeding the sound device.
package audio

import "github.com/cwbudde/algo-synth/config"

// Left and Right index the two channels of a Sample.
const (
	Left  = 0
	Right = 1
)

// Sample is one stereo sample with values in [-1, +1].
type Sample [2]float64

// Frame is one block of stereo samples handed to the device in a
// single pull.
type Frame [config.FrameSize]Sample
