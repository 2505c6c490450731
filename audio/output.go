package audio

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-synth/config"
)

// Output is the bounded frame FIFO between the synthesis thread and
// the device callback. Push blocks when the FIFO is full, which paces
// the synthesis thread to the device consumption rate.
type Output struct {
	frames chan Frame
}

// NewOutput creates the FIFO with the given depth in frames, at least
// two so the synthesis thread can work one frame ahead.
func NewOutput(depth int) *Output {
	if depth < 2 {
		depth = 2
	}
	return &Output{frames: make(chan Frame, depth)}
}

// Push queues a frame for the device, blocking until a slot frees.
func (o *Output) Push(f Frame) {
	o.frames <- f
}

// pull returns the next frame, or silence when the synthesis thread
// fell behind.
func (o *Output) pull() Frame {
	select {
	case f := <-o.frames:
		return f
	default:
		log.Printf("audio: output underrun, inserting silence")
		return Frame{}
	}
}

const bytesPerSample = 8 // stereo float32

// Device owns the sound device playing an Output FIFO.
type Device struct {
	ctx    *oto.Context
	player *oto.Player
}

// OpenDevice opens the default sound device as stereo float32 at the
// configured sample rate and starts pulling frames from out.
func OpenDevice(out *Output) (*Device, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   config.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	d := &Device{ctx: ctx}
	d.player = ctx.NewPlayer(&frameStream{out: out})
	d.player.SetBufferSize(2 * config.FrameSize * bytesPerSample)
	d.player.Play()
	return d, nil
}

// Close stops the device.
func (d *Device) Close() {
	if d.player != nil {
		d.player.Close()
	}
}

// frameStream adapts the frame FIFO to the byte reader the device
// pulls from. Frames are encoded whole, the remainder of a partially
// consumed frame is carried to the next read.
type frameStream struct {
	out      *Output
	leftover []byte
}

func (s *frameStream) Read(buf []byte) (int, error) {
	if len(buf)%bytesPerSample != 0 {
		log.Fatalf("audio: device buffer size %d is not sample aligned", len(buf))
	}
	n := 0
	for n < len(buf) {
		if len(s.leftover) == 0 {
			s.leftover = encodeFrame(s.out.pull())
		}
		c := copy(buf[n:], s.leftover)
		s.leftover = s.leftover[c:]
		n += c
	}
	return n, nil
}

// encodeFrame lays a frame out as interleaved little-endian float32,
// clamped to [-1, 1].
func encodeFrame(f Frame) []byte {
	buf := make([]byte, len(f)*bytesPerSample)
	for i, sample := range f {
		for side, v := range sample {
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			bits := math.Float32bits(float32(v))
			binary.LittleEndian.PutUint32(buf[i*bytesPerSample+side*4:], bits)
		}
	}
	return buf
}
