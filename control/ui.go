package control

import "github.com/cwbudde/algo-synth/midi"

// UserInterface is a stack of active control layers. For a given
// physical item the current action is the first one found walking the
// layers from the top, which is the back of the slice.
type UserInterface struct {
	in     *midi.Input
	layers []*Group
}

// NewUserInterface creates an empty user interface whose physical
// items listen on the given MIDI input hub.
func NewUserInterface(in *midi.Input) *UserInterface {
	return &UserInterface{in: in}
}

// AddLayer pushes a layer on top of the user interface.
func (ui *UserInterface) AddLayer(g *Group) {
	ui.layers = append(ui.layers, g)
}

// RemoveLayer removes a layer wherever it sits in the stack.
func (ui *UserInterface) RemoveLayer(g *Group) {
	for i, l := range ui.layers {
		if l == g {
			ui.layers = append(ui.layers[:i], ui.layers[i+1:]...)
			return
		}
	}
}

// PrioritizeLayer moves a layer to the top of the stack, used when
// the channel selection switches to another preset.
func (ui *UserInterface) PrioritizeLayer(g *Group) {
	ui.RemoveLayer(g)
	ui.AddLayer(g)
}

// Dispatch processes a physical item with the first matching layer,
// walking the stack from the top.
func (ui *UserInterface) Dispatch(pi *PhysicalItem) {
	for i := len(ui.layers) - 1; i >= 0; i-- {
		if ui.layers[i].TryDispatch(pi) {
			return
		}
	}
}
