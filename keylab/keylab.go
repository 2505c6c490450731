// Package keylab drives an Arturia KeyLab Essential surface: it
// declares the physical controls of the hardware, lights the buttons
// and pads over sysex, and renders text on the two-line display.
package keylab

import (
	"time"

	"github.com/cwbudde/algo-synth/clock"
	"github.com/cwbudde/algo-synth/control"
	"github.com/cwbudde/algo-synth/midi"
)

// Writer consumes raw MIDI messages bound for the controller,
// typically a midi.Driver output port.
type Writer interface {
	Write(raw []byte)
}

// sysexHeader opens every KeyLab sysex: the Arturia manufacturer id,
// the broadcast device id and the KeyLab Essential model id.
var sysexHeader = []byte{0xf0, 0x00, 0x20, 0x6b, 0x7f, 0x42}

const displayWidth = 16

// Controller owns the physical items of a KeyLab Essential and the
// sysex feedback channel to its lights and display.
type Controller struct {
	// OnDeviceButton receives the device-mode button presses the
	// surface reports over sysex, like the Part1/Part2 selectors.
	OnDeviceButton func(b Button, value int8)

	// Knobs are the eight rotaries of the main bank.
	Knobs [8]*control.PhysicalItem

	// TopRightKnob sits alone above the slider bank.
	TopRightKnob *control.PhysicalItem

	// Sliders are the nine-minus-one faders of the main bank.
	Sliders [8]*control.PhysicalItem

	// PlayPause is the transport play/pause button.
	PlayPause *control.PhysicalItem

	// Pad1 and Pad2 are the first two performance pads.
	Pad1, Pad2 *control.PhysicalItem

	out       Writer
	displayed []byte
}

// NewController declares the KeyLab physical items on the user
// interface, wires the metronome light to the MIDI clock and re-arms
// the display refresh cycle.
func NewController(ui *control.UserInterface, out Writer, c *clock.Clock) *Controller {
	k := &Controller{out: out}

	knobCC := []int8{0x4a, 0x47, 0x4c, 0x4d, 0x5d, 0x12, 0x13, 0x10}
	for i := range k.Knobs {
		k.Knobs[i] = control.NewPhysicalItem(ui, control.Knob,
			control.CC(knobCC[i]), control.CCInc(int8(0x10+i)))
	}
	k.TopRightKnob = control.NewPhysicalItem(ui, control.Knob, control.CC(0x11))

	sliderCC := []int8{0x49, 0x4b, 0x4f, 0x48, 0x50, 0x51, 0x52, 0x53}
	for i := range k.Sliders {
		k.Sliders[i] = control.NewPhysicalItem(ui, control.Slider,
			control.CC(sliderCC[i]))
	}

	k.PlayPause = control.NewPhysicalItem(ui, control.Button, control.Note(0x5e))
	k.Pad1 = control.NewPhysicalItem(ui, control.Button, control.Pad(0x24))
	k.Pad2 = control.NewPhysicalItem(ui, control.Button, control.Pad(0x25))

	// The display forgets its content when the surface switches
	// internal modes, so the last text is re-sent periodically.
	c.Scheduler.AppointCyclic(250*time.Millisecond, func(time.Time) {
		k.RefreshDisplay()
	})
	c.FollowMidiClock(k, k.midiClock)
	return k
}

// SendSysex frames body into a KeyLab sysex and writes it out.
func (k *Controller) SendSysex(body []byte) {
	msg := make([]byte, 0, len(sysexHeader)+len(body)+1)
	msg = append(msg, sysexHeader...)
	msg = append(msg, body...)
	msg = append(msg, 0xf7)
	k.out.Write(msg)
}

// ButtonLight sets the light level of a button, 0 to 127.
func (k *Controller) ButtonLight(b Button, level int8) {
	k.SendSysex([]byte{0x02, 0x00, 0x10, byte(b), byte(level)})
}

// PadLight sets one color channel of a pad light.
func (k *Controller) PadLight(pad int, color PadColor, level int8) {
	k.ButtonLight(PadButton(pad, color), level)
}

// VegasMode switches the demo light show of the surface.
func (k *Controller) VegasMode(on bool) {
	var b byte
	if on {
		b = 1
	}
	k.SendSysex([]byte{0x02, 0x00, 0x40, 0x50, b})
}

// Display renders up to two lines of 16 characters on the LCD. Lines
// are split on newlines, wrapped at the display width, and truncated
// past the second line. The text is kept for the refresh cycle.
func (k *Controller) Display(text string) {
	body := []byte{0x04, 0x00, 0x60}
	line := 1
	for _, chunk := range splitLines(text) {
		if line > 2 {
			break
		}
		body = append(body, byte(line))
		body = append(body, chunk...)
		body = append(body, 0x00)
		line++
	}
	k.displayed = body
	k.SendSysex(body)
}

// RefreshDisplay re-sends the last displayed text, if any.
func (k *Controller) RefreshDisplay() {
	if k.displayed != nil {
		k.SendSysex(k.displayed)
	}
}

// HandleSysex decodes a device button report and forwards it to
// OnDeviceButton. Other sysex messages are ignored.
func (k *Controller) HandleSysex(s midi.Sysex) {
	body, ok := sysexBody(s.Data)
	if !ok || len(body) != 5 {
		return
	}
	if body[0] != 0x02 || body[1] != 0x00 || body[2] != 0x00 {
		return
	}
	if k.OnDeviceButton != nil {
		k.OnDeviceButton(Button(body[3]), int8(body[4]))
	}
}

// midiClock lights the metronome button on the first quarter of each
// beat, brighter on the measure.
func (k *Controller) midiClock(t clock.Tick) {
	var level int8
	if t.MidiClockIndex < clock.MidiClockPerQuarter/4 {
		level = 32
		if t.BeatIndex == 0 {
			level += 95
		}
	}
	k.ButtonLight(ButtonMetro, level)
}

// sysexBody strips the framing and KeyLab header from a raw sysex.
func sysexBody(raw []byte) ([]byte, bool) {
	if len(raw) < len(sysexHeader)+1 || raw[len(raw)-1] != 0xf7 {
		return nil, false
	}
	for i, b := range sysexHeader {
		if raw[i] != b {
			return nil, false
		}
	}
	return raw[len(sysexHeader) : len(raw)-1], true
}

// splitLines cuts text into display lines on newlines, wrapping long
// lines at the display width.
func splitLines(text string) [][]byte {
	var lines [][]byte
	current := []byte{}
	flush := func() {
		lines = append(lines, current)
		current = []byte{}
	}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			flush()
			continue
		}
		current = append(current, text[i])
		if len(current) == displayWidth {
			flush()
		}
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, []byte{})
	}
	return lines
}
