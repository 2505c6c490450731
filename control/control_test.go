package control

import (
	"testing"

	"github.com/cwbudde/algo-synth/midi"
)

func TestPhysicalItemCC(t *testing.T) {
	in := midi.NewInput()
	ui := NewUserInterface(in)
	knob := NewPhysicalItem(ui, Knob, CC(7)).Name("volume")

	var seen []int8
	knob.AddAction(func(v int8) { seen = append(seen, v) })

	in.Push(0, midi.ControlChange{Number: 7, Value: 100})
	in.Push(0, midi.ControlChange{Number: 8, Value: 50})
	in.DispatchRegisteredActions()

	if knob.Value() != 100 {
		t.Fatalf("knob value: got=%d want=100", knob.Value())
	}
	if len(seen) != 1 || seen[0] != 100 {
		t.Fatalf("listener calls: got=%v want=[100]", seen)
	}
}

func TestPhysicalItemLevelAction(t *testing.T) {
	in := midi.NewInput()
	ui := NewUserInterface(in)
	slider := NewPhysicalItem(ui, Slider, CC(10))

	var level float64
	slider.AddLevelAction(func(v float64) { level = v })
	in.Push(0, midi.ControlChange{Number: 10, Value: 127})
	in.DispatchRegisteredActions()
	if level != 1 {
		t.Fatalf("normalized level: got=%v want=1", level)
	}
}

func TestButtonToggles(t *testing.T) {
	in := midi.NewInput()
	ui := NewUserInterface(in)
	button := NewPhysicalItem(ui, Button, Note(0x5e))

	in.Push(1, midi.On{Note: 0x5e})
	in.DispatchRegisteredActions()
	if button.Value() != 127 {
		t.Fatalf("first press: got=%d want=127", button.Value())
	}
	in.Push(1, midi.On{Note: 0x5e})
	in.DispatchRegisteredActions()
	if button.Value() != 0 {
		t.Fatalf("second press: got=%d want=0", button.Value())
	}
}

func TestPadTogglesOnChannel10(t *testing.T) {
	in := midi.NewInput()
	ui := NewUserInterface(in)
	pad := NewPhysicalItem(ui, Button, Pad(0x24))

	in.Push(0, midi.On{Channel: 9, Note: 0x24})
	in.DispatchRegisteredActions()
	if pad.Value() != 127 {
		t.Fatalf("pad press: got=%d want=127", pad.Value())
	}

	// A note-on on another channel leaves the pad alone.
	in.Push(0, midi.On{Channel: 0, Note: 0x24})
	in.DispatchRegisteredActions()
	if pad.Value() != 127 {
		t.Fatalf("pad toggled by the wrong channel: got=%d", pad.Value())
	}
}

func TestGroupBindScalesIntoTarget(t *testing.T) {
	in := midi.NewInput()
	ui := NewUserInterface(in)
	knob := NewPhysicalItem(ui, Knob, CC(7))
	g := NewGroup(ui, "master")

	var target float64
	g.Bind(knob, Item{Name: "volume", Min: 0, Max: 2, Target: &target})

	in.Push(0, midi.ControlChange{Number: 7, Value: 127})
	in.DispatchRegisteredActions()
	if target != 2 {
		t.Fatalf("bound target: got=%v want=2", target)
	}
}

func TestGroupBindLogScaling(t *testing.T) {
	in := midi.NewInput()
	ui := NewUserInterface(in)
	knob := NewPhysicalItem(ui, Knob, CC(7))
	g := NewGroup(ui, "master")

	var hz float64
	g.Bind(knob, Item{Name: "cutoff", Min: 20, Max: 20000, Log: true, Target: &hz})

	in.Push(0, midi.ControlChange{Number: 7, Value: 0})
	in.DispatchRegisteredActions()
	if hz != 20 {
		t.Fatalf("log scale low end: got=%v want=20", hz)
	}
	in.Push(0, midi.ControlChange{Number: 7, Value: 127})
	in.DispatchRegisteredActions()
	if hz < 19999 || hz > 20001 {
		t.Fatalf("log scale high end: got=%v want=20000", hz)
	}
}

func TestDispatchTopLayerWins(t *testing.T) {
	in := midi.NewInput()
	ui := NewUserInterface(in)
	knob := NewPhysicalItem(ui, Knob, CC(7))

	bottom := NewGroup(ui, "bottom")
	top := NewGroup(ui, "top")
	var fired string
	bottom.Assign(knob, func() { fired = "bottom" })
	top.Assign(knob, func() { fired = "top" })

	in.Push(0, midi.ControlChange{Number: 7, Value: 64})
	in.DispatchRegisteredActions()
	if fired != "top" {
		t.Fatalf("dispatch layer: got=%q want=top", fired)
	}

	ui.PrioritizeLayer(bottom)
	in.Push(0, midi.ControlChange{Number: 7, Value: 65})
	in.DispatchRegisteredActions()
	if fired != "bottom" {
		t.Fatalf("dispatch after prioritize: got=%q want=bottom", fired)
	}
}

func TestDispatchFallsThroughLayers(t *testing.T) {
	in := midi.NewInput()
	ui := NewUserInterface(in)
	knob := NewPhysicalItem(ui, Knob, CC(7))

	bottom := NewGroup(ui, "bottom")
	NewGroup(ui, "empty top")
	fired := false
	bottom.Assign(knob, func() { fired = true })

	in.Push(0, midi.ControlChange{Number: 7, Value: 64})
	in.DispatchRegisteredActions()
	if !fired {
		t.Fatalf("item not dispatched through an empty top layer")
	}
}

func TestRemoveLayer(t *testing.T) {
	in := midi.NewInput()
	ui := NewUserInterface(in)
	knob := NewPhysicalItem(ui, Knob, CC(7))

	g := NewGroup(ui, "only")
	fired := 0
	g.Assign(knob, func() { fired++ })

	in.Push(0, midi.ControlChange{Number: 7, Value: 64})
	in.DispatchRegisteredActions()
	if fired != 1 {
		t.Fatalf("before removal: got=%d want=1", fired)
	}

	ui.RemoveLayer(g)
	in.Push(0, midi.ControlChange{Number: 7, Value: 65})
	in.DispatchRegisteredActions()
	if fired != 1 {
		t.Fatalf("removed layer still dispatched: got=%d", fired)
	}
}
