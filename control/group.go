package control

import "github.com/cwbudde/algo-synth/midi"

// Group is a named set of controls which can be activated on the user
// interface. It dispatches physical items to the closure assigned to
// them, and may own sub-groups contributing their own controls.
type Group struct {
	// User-facing name, also shown on the controller display.
	Name string

	ui        *UserInterface
	actions   map[*PhysicalItem]func()
	subGroups []*Group
}

// NewGroup creates a group and adds it as a layer of the user
// interface.
func NewGroup(ui *UserInterface, name string) *Group {
	g := &Group{
		Name:    name,
		ui:      ui,
		actions: map[*PhysicalItem]func(){},
	}
	ui.AddLayer(g)
	return g
}

// Assign binds an action to a physical item in this group.
func (g *Group) Assign(pi *PhysicalItem, f func()) {
	g.actions[pi] = f
}

// AddAsSubGroupTo registers this group as a sub-group of owner.
func (g *Group) AddAsSubGroupTo(owner *Group) {
	owner.subGroups = append(owner.subGroups, g)
}

// TryDispatch invokes the action assigned to the physical item and
// reports whether one was found.
func (g *Group) TryDispatch(pi *PhysicalItem) bool {
	f, ok := g.actions[pi]
	if !ok {
		return false
	}
	f()
	return true
}

// Item is a logical control wrapping a typed parameter bound to a
// physical item through its group.
type Item struct {
	// User-facing name of the parameter.
	Name string

	// Min and Max bound the parameter value.
	Min, Max float64

	// Log selects logarithmic controller scaling, for frequencies.
	Log bool

	// Target is the parameter the item drives.
	Target *float64
}

// Bind connects a logical item to a physical item: dispatching the
// physical item through this group scales its controller value into
// the item target.
func (g *Group) Bind(pi *PhysicalItem, it Item) {
	g.Assign(pi, func() {
		if it.Log {
			*it.Target = midi.LogValueIn(pi.Value(), it.Min, it.Max)
		} else {
			*it.Target = midi.ValueIn(pi.Value(), it.Min, it.Max)
		}
	})
}
