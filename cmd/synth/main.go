// Command synth is the live polyphonic synthesizer: it connects the
// MIDI ports and the sound device, binds the KeyLab surface to the
// engine parameters and runs the synthesis loop.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/cwbudde/algo-synth/audio"
	"github.com/cwbudde/algo-synth/clock"
	"github.com/cwbudde/algo-synth/control"
	"github.com/cwbudde/algo-synth/dsp"
	"github.com/cwbudde/algo-synth/keylab"
	"github.com/cwbudde/algo-synth/midi"
	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/synth"
)

func main() {
	presetPath := flag.String("preset", "", "Preset JSON file overriding the built-in sounds")
	outPort := flag.String("midi-out", "keylab", "Substring of the MIDI output port for controller feedback")
	tempo := flag.Float64("tempo", 120, "Initial tempo in BPM")
	fifoDepth := flag.Int("fifo", 2, "Audio output FIFO depth in frames")
	flag.Parse()

	c := clock.New()
	c.SetTempoBPM(*tempo)
	in := midi.NewInput()

	driver, err := midi.OpenDriver(in, *outPort)
	if err != nil {
		log.Fatalf("synth: %v", err)
	}
	defer driver.Close()

	e := synth.NewEngine(c, in)
	e.Flanger = dsp.NewFlanger()

	out := audio.NewOutput(*fifoDepth)
	device, err := audio.OpenDevice(out)
	if err != nil {
		log.Fatalf("synth: open sound device: %v", err)
	}
	defer device.Close()

	ui := control.NewUserInterface(in)
	k := keylab.NewController(ui, driver, c)
	e.OnSysex = k.HandleSysex

	arp := synth.NewArpeggiator(c, in, 0, 60, nil)
	e.Arpeggiators = append(e.Arpeggiators, arp)
	automator := clock.NewAutomator(c)

	groups := setupSounds(e, ui)
	if *presetPath != "" {
		f, err := preset.LoadJSON(*presetPath)
		if err != nil {
			log.Fatalf("synth: %v", err)
		}
		if err := f.Apply(e.Channels, c.SetTempoBPM); err != nil {
			log.Fatalf("synth: %v", err)
		}
	}

	e.Channels.OnSelect = func(channel int, p synth.Preset) {
		if g, ok := groups[p.PresetName()]; ok {
			ui.PrioritizeLayer(g)
		}
		k.Display(fmt.Sprintf("Ch %d\n%s", channel, p.PresetName()))
	}
	k.OnDeviceButton = func(b keylab.Button, value int8) {
		if value == 0 {
			return
		}
		switch b {
		case keylab.ButtonPart1Next:
			e.Channels.SelectNext()
		case keylab.ButtonPart2Prev:
			e.Channels.SelectPrevious()
		}
	}

	setupMaster(e, ui, k, arp, automator)

	k.Display("algo-synth\nready")
	e.Channels.SelectNext()

	for {
		e.ProcessMidi(0)
		out.Push(e.Frame())
	}
}

// setupSounds builds the built-in sounds, assigns them to channels and
// creates one control layer per sound with the envelope and oscillator
// parameters on the knobs.
func setupSounds(e *synth.Engine, ui *control.UserInterface) map[string]*control.Group {
	groups := map[string]*control.Group{}

	lead := &synth.DCOEnvelopePreset{
		Name: "lead",
		DCO:  synth.NewDCOParams(),
		Env: &synth.EnvelopeParams{
			AttackTime:   0.01,
			DecayTime:    0.2,
			SustainLevel: 0.7,
			ReleaseTime:  0.3,
		},
	}
	pad := &synth.DCOEnvelopePreset{
		Name: "pad",
		DCO: &synth.DCOParams{
			TriangleVolume:    1,
			TriangleRatio:     0.9,
			TriangleFallRatio: 0.5,
			DetuneCents:       6,
		},
		Env: &synth.EnvelopeParams{
			AttackTime:   0.4,
			DecayTime:    0.3,
			SustainLevel: 0.8,
			ReleaseTime:  1.2,
		},
	}
	drum := &synth.NoisePreset{Name: "drum", Volume: 1}

	e.Channels.Assign(0, lead)
	e.Channels.Assign(1, lead)
	e.Channels.Assign(2, pad)
	e.Channels.Assign(3, drum)

	knobs := knobBank(ui)
	for _, p := range []*synth.DCOEnvelopePreset{lead, pad} {
		g := control.NewGroup(ui, p.Name)
		groups[p.Name] = g
		g.Bind(knobs[0], control.Item{Name: "Attack", Min: 0, Max: 2, Target: &p.Env.AttackTime})
		g.Bind(knobs[1], control.Item{Name: "Decay", Min: 0, Max: 2, Target: &p.Env.DecayTime})
		g.Bind(knobs[2], control.Item{Name: "Sustain", Min: 0, Max: 1, Target: &p.Env.SustainLevel})
		g.Bind(knobs[3], control.Item{Name: "Release", Min: 0, Max: 4, Target: &p.Env.ReleaseTime})
		g.Bind(knobs[4], control.Item{Name: "Square", Min: 0, Max: 1, Target: &p.DCO.SquareVolume})
		g.Bind(knobs[5], control.Item{Name: "PWM", Min: 0, Max: 0.99, Target: &p.DCO.SquarePWM})
		g.Bind(knobs[6], control.Item{Name: "Triangle", Min: 0, Max: 1, Target: &p.DCO.TriangleVolume})
		g.Bind(knobs[7], control.Item{Name: "Detune", Min: 0, Max: 25, Target: &p.DCO.DetuneCents})
	}
	return groups
}

// knobBank declares the eight rotary CCs the sound layers listen to.
// The layers share these physical items so that a knob move only
// reaches the topmost sound.
func knobBank(ui *control.UserInterface) [8]*control.PhysicalItem {
	cc := []int8{0x4a, 0x47, 0x4c, 0x4d, 0x5d, 0x12, 0x13, 0x10}
	var knobs [8]*control.PhysicalItem
	for i := range knobs {
		knobs[i] = control.NewPhysicalItem(ui, control.Knob, control.CC(cc[i]))
	}
	return knobs
}

// setupMaster binds the mixing chain, the effects and the transport on
// a control layer of their own, pushed above the sound layers. The
// sound layers bind none of these controls, so they stay reachable
// whatever the layer order.
func setupMaster(e *synth.Engine, ui *control.UserInterface,
	k *keylab.Controller, arp *synth.Arpeggiator, automator *clock.Automator) {
	g := control.NewGroup(ui, "master")

	g.Bind(k.Sliders[0], control.Item{Name: "Volume", Min: 0, Max: 1, Target: &e.MasterVolume})
	g.Bind(k.Sliders[1], control.Item{Name: "Rectifier", Min: 0, Max: 1, Target: &e.Rectifier})
	g.Bind(k.Sliders[2], control.Item{Name: "LFO low", Min: 0, Max: 1, Target: &e.LFOLow})
	g.Bind(k.Sliders[3], control.Item{Name: "LFO high", Min: 0, Max: 1, Target: &e.LFOHigh})
	g.Bind(k.Sliders[4], control.Item{Name: "Delay time", Min: 0, Max: 2, Target: &e.Delay.Time})
	g.Bind(k.Sliders[5], control.Item{Name: "Delay ratio", Min: 0, Max: 1, Target: &e.Delay.Ratio})
	g.Bind(k.Sliders[6], control.Item{Name: "Feedback", Min: 0, Max: 0.9, Target: &e.Delay.Feedback})
	g.Assign(k.Sliders[7], func() {
		e.LFO.SetFrequency(midi.LogValueIn(k.Sliders[7].Value(), 0.1, 20))
	})

	g.Assign(k.TopRightKnob, func() {
		low := int8(midi.ValueIn(k.TopRightKnob.Value(), 0, 84))
		arp.LowInputLimit = 0
		arp.HighInputEnd = low
		k.Display("Arp below\n" + midi.NoteName(low))
	})

	running := false
	g.Assign(k.PlayPause, func() {
		running = k.PlayPause.Value() != 0
		arp.Run(running)
		if running {
			e.LFO.Run()
		} else {
			e.LFO.Stop()
		}
		var level int8
		if running {
			level = 127
		}
		k.ButtonLight(keylab.ButtonPlayPause, level)
	})

	g.Assign(k.Pad1, func() {
		on := k.Pad1.Value() != 0
		k.VegasMode(on)
		k.PadLight(1, keylab.PadGreen, k.Pad1.Value())
	})

	// A slow automated filter sweep each time the pad toggles on: the
	// low-pass cutoff steps through 4, 2, 1 and 2 kHz, one beat each,
	// then the pad light goes out.
	g.Assign(k.Pad2, func() {
		if k.Pad2.Value() == 0 {
			return
		}
		k.PadLight(2, keylab.PadRed, 127)
		automator.Submit(func(j *clock.Job) {
			for _, hz := range []float64{4000, 2000, 1000, 2000} {
				e.SetLowPassCutoff(hz)
				j.WaitForBeats(1)
			}
			k.PadLight(2, keylab.PadRed, 0)
		})
	})
}
