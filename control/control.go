// Package control abstracts the hardware controls of a MIDI surface
// as physical items, logical items bound to parameters, and groups of
// controls stacked into a user interface.
package control

import "github.com/cwbudde/algo-synth/midi"

// ItemType categorizes the physical shape of a control.
type ItemType int8

const (
	Button ItemType = iota
	Knob
	Slider
)

// PhysicalItem represents a hardware control identified by the MIDI
// events it emits. When the hardware produces a matching message the
// item updates its value, runs its listeners in insertion order, and
// asks the user interface to dispatch it across the layer stack.
type PhysicalItem struct {
	Type ItemType

	ui    *UserInterface
	value int8
	name  string

	listeners []func(int8)
}

// Feature declares one of the MIDI events a physical item reacts to.
type Feature func(*PhysicalItem, *midi.Input)

// CC makes the item react to a control change on port 0 channel 0.
func CC(number int8) Feature {
	return func(pi *PhysicalItem, in *midi.Input) {
		in.AddAction(0, midi.CCHeader(0, number), func(m midi.Message) {
			if cc, ok := m.(midi.ControlChange); ok {
				pi.value = cc.Value
				pi.Dispatch()
			}
		})
	}
}

// CCInc names the increment-encoder control change of the item. It
// registers no action: encoder moves on that controller leave the item
// value unchanged.
func CCInc(number int8) Feature {
	return func(*PhysicalItem, *midi.Input) {}
}

// Note makes the item toggle on a note-on from port 1 channel 0.
func Note(number int8) Feature {
	return func(pi *PhysicalItem, in *midi.Input) {
		in.AddAction(1, midi.OnHeader(0, number), func(midi.Message) {
			pi.toggle()
		})
	}
}

// Pad makes the item toggle on a pad note-on from port 0 channel 10.
func Pad(number int8) Feature {
	return func(pi *PhysicalItem, in *midi.Input) {
		in.AddAction(0, midi.OnHeader(9, number), func(midi.Message) {
			pi.toggle()
		})
	}
}

// NewPhysicalItem creates a physical item of the user interface
// reacting to the declared features.
func NewPhysicalItem(ui *UserInterface, t ItemType, features ...Feature) *PhysicalItem {
	pi := &PhysicalItem{Type: t, ui: ui}
	for _, f := range features {
		f(pi, ui.in)
	}
	return pi
}

// Name names the physical item.
func (pi *PhysicalItem) Name(n string) *PhysicalItem {
	pi.name = n
	return pi
}

// AddAction appends a listener receiving the raw 7-bit value.
func (pi *PhysicalItem) AddAction(f func(int8)) *PhysicalItem {
	pi.listeners = append(pi.listeners, f)
	return pi
}

// AddLevelAction appends a listener receiving the value normalized in
// [0, 1].
func (pi *PhysicalItem) AddLevelAction(f func(float64)) *PhysicalItem {
	return pi.AddAction(func(v int8) {
		f(float64(v) / 127)
	})
}

// Value returns the latest raw 7-bit value.
func (pi *PhysicalItem) Value() int8 {
	return pi.value
}

// Value1 returns the latest value normalized in [0, 1].
func (pi *PhysicalItem) Value1() float64 {
	return float64(pi.value) / 127
}

// Dispatch runs the listeners and hands the item to the user
// interface layer stack.
func (pi *PhysicalItem) Dispatch() {
	for _, l := range pi.listeners {
		l(pi.value)
	}
	pi.ui.Dispatch(pi)
}

// toggle recycles the value as a bool for buttons and pads.
func (pi *PhysicalItem) toggle() {
	if pi.value == 0 {
		pi.value = 127
	} else {
		pi.value = 0
	}
	pi.Dispatch()
}
