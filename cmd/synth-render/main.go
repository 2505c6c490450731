// Command synth-render renders a note or an arpeggiated chord through
// the full synthesis engine into a WAV file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-synth/analysis"
	"github.com/cwbudde/algo-synth/clock"
	"github.com/cwbudde/algo-synth/config"
	"github.com/cwbudde/algo-synth/internal/wavio"
	"github.com/cwbudde/algo-synth/midi"
	"github.com/cwbudde/algo-synth/preset"
	"github.com/cwbudde/algo-synth/synth"
)

func main() {
	note := flag.Int("note", 69, "MIDI note number (69 = A4 = 440 Hz)")
	velocity := flag.Int("velocity", 100, "MIDI velocity (0-127)")
	duration := flag.Float64("duration", 2.0, "Render duration in seconds")
	releaseAfter := flag.Float64("release-after", 1.5, "Send the note-off after this many seconds")
	presetPath := flag.String("preset", "", "Preset JSON file (default: a plain square with envelope)")
	tempo := flag.Float64("tempo", 120, "Tempo in BPM, drives the arpeggiator grid")
	arpeggio := flag.Bool("arpeggio", false, "Hold a major chord through the default arpeggiator instead of a single note")
	compare := flag.String("compare", "", "Reference WAV to measure the render against")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	c := clock.New()
	c.SetTempoBPM(*tempo)
	in := midi.NewInput()
	e := synth.NewEngine(c, in)

	if *presetPath != "" {
		f, err := preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "preset: %v\n", err)
			os.Exit(1)
		}
		if err := f.Apply(e.Channels, c.SetTempoBPM); err != nil {
			fmt.Fprintf(os.Stderr, "preset: %v\n", err)
			os.Exit(1)
		}
	} else {
		sound := &synth.DCOEnvelopePreset{
			Name: "square",
			DCO:  synth.NewDCOParams(),
			Env: &synth.EnvelopeParams{
				AttackTime:   0.01,
				DecayTime:    0.1,
				SustainLevel: 0.8,
				ReleaseTime:  0.3,
			},
		}
		for _, channel := range []int{0, 1, 2, 3} {
			e.Channels.Assign(channel, sound)
		}
	}

	var arp *synth.Arpeggiator
	if *arpeggio {
		arp = synth.NewArpeggiator(c, in, 0, 127, nil)
		e.Arpeggiators = append(e.Arpeggiators, arp)
		arp.Run(true)
	}

	notes := []int8{int8(*note)}
	if *arpeggio {
		notes = []int8{int8(*note), int8(*note + 4), int8(*note + 7)}
	}
	for _, n := range notes {
		in.Insert(0, midi.On{Note: n, Velocity: int8(*velocity)})
	}

	totalFrames := int(*duration * config.FrameFrequency)
	if totalFrames < 1 {
		totalFrames = 1
	}
	releaseFrame := int(*releaseAfter * config.FrameFrequency)
	released := false

	samples := make([]float32, 0, totalFrames*config.FrameSize*2)
	for i := 0; i < totalFrames; i++ {
		if !released && i >= releaseFrame {
			if arp != nil {
				arp.Run(false)
			}
			for _, n := range notes {
				in.Insert(0, midi.Off{Note: n})
			}
			released = true
		}
		e.ProcessMidi(0)
		frame := e.Frame()
		for _, sample := range frame {
			samples = append(samples, float32(sample[0]), float32(sample[1]))
		}
	}

	if err := wavio.WriteStereo(*output, samples, config.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s (%d frames, %.2fs)\n", *output, totalFrames, *duration)

	if *compare != "" {
		if err := compareAgainst(*compare, wavio.StereoToMono(samples)); err != nil {
			fmt.Fprintf(os.Stderr, "compare: %v\n", err)
			os.Exit(1)
		}
	}
}

func compareAgainst(refPath string, rendered []float64) error {
	ref, rate, err := wavio.ReadMono(refPath)
	if err != nil {
		return err
	}
	ref, err = wavio.ResampleIfNeeded(ref, rate, config.SampleRate)
	if err != nil {
		return err
	}

	dist, err := analysis.LogSpectralDistance(ref, rendered)
	if err != nil {
		return err
	}
	refF0, err := analysis.Fundamental(ref, config.SampleRate)
	if err != nil {
		return err
	}
	renderedF0, err := analysis.Fundamental(rendered, config.SampleRate)
	if err != nil {
		return err
	}
	fmt.Printf("Spectral distance: %.1f dB RMS\n", dist)
	fmt.Printf("Fundamental: ref=%.1f Hz  rendered=%.1f Hz\n", refF0, renderedF0)
	fmt.Printf("RMS level: ref=%.4f  rendered=%.4f\n",
		analysis.RMS(ref), analysis.RMS(rendered))
	return nil
}
