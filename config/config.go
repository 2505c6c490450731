// Package config holds the process-wide audio constants.
package config

const (
	// SampleRate is the audio sampling frequency in Hz.
	SampleRate = 48000

	// FrameSize is the number of stereo samples per audio frame.
	FrameSize = 256
)

// FrameFrequency is the number of frames per second.
const FrameFrequency = float64(SampleRate) / FrameSize

// FramePeriod is the duration of one frame in seconds.
const FramePeriod = 1.0 / FrameFrequency
