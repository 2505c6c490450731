// Package preset loads authored sound presets and channel programs
// from JSON files.
package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/cwbudde/algo-synth/synth"
)

// File is the JSON schema for synthesizer presets: named sounds and
// the channel program binding them.
type File struct {
	TempoBPM *float64                `json:"tempo_bpm"`
	Sounds   map[string]SoundSetting `json:"sounds"`
	Channels map[string]string       `json:"channels"`
}

// SoundSetting is a partial sound override entry in a preset file.
// Absent fields keep their defaults.
type SoundSetting struct {
	Kind string `json:"kind"`

	SquareVolume      *float64 `json:"square_volume"`
	SquarePWM         *float64 `json:"square_pwm"`
	TriangleVolume    *float64 `json:"triangle_volume"`
	TriangleRatio     *float64 `json:"triangle_ratio"`
	TriangleFallRatio *float64 `json:"triangle_fall_ratio"`
	DetuneCents       *float64 `json:"detune_cents"`

	AttackTime   *float64 `json:"attack_time"`
	DecayTime    *float64 `json:"decay_time"`
	SustainLevel *float64 `json:"sustain_level"`
	ReleaseTime  *float64 `json:"release_time"`

	Volume *float64 `json:"volume"`
}

// LoadJSON loads a preset JSON file.
func LoadJSON(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}
	return &f, nil
}

// Apply builds the sounds of the file and assigns them to their
// channels. The tempo, when present, is applied through setTempo.
func (f *File) Apply(ca *synth.ChannelAssignment, setTempo func(bpm float64)) error {
	if f.TempoBPM != nil {
		if *f.TempoBPM <= 0 {
			return fmt.Errorf("tempo_bpm must be > 0")
		}
		if setTempo != nil {
			setTempo(*f.TempoBPM)
		}
	}

	sounds := map[string]synth.Preset{}
	names := make([]string, 0, len(f.Sounds))
	for name := range f.Sounds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := f.Sounds[name]
		p, err := s.Build(name)
		if err != nil {
			return err
		}
		sounds[name] = p
	}

	keys := make([]string, 0, len(f.Channels))
	for k := range f.Channels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		channel, err := strconv.Atoi(k)
		if err != nil || channel < 0 {
			return fmt.Errorf("invalid channel key %q (expected a channel id)", k)
		}
		name := f.Channels[k]
		p, ok := sounds[name]
		if !ok {
			return fmt.Errorf("channel %d references unknown sound %q", channel, name)
		}
		ca.Assign(channel, p)
	}
	return nil
}

// Build turns a sound setting into a preset named name.
func (s *SoundSetting) Build(name string) (synth.Preset, error) {
	switch s.Kind {
	case "dco":
		dco, err := s.dcoParams(name)
		if err != nil {
			return nil, err
		}
		return &synth.DCOPreset{Name: name, Params: dco}, nil
	case "dco_envelope":
		dco, err := s.dcoParams(name)
		if err != nil {
			return nil, err
		}
		env, err := s.envelopeParams(name)
		if err != nil {
			return nil, err
		}
		return &synth.DCOEnvelopePreset{Name: name, DCO: dco, Env: env}, nil
	case "noise":
		var volume float64
		if s.Volume != nil {
			if *s.Volume <= 0 {
				return nil, fmt.Errorf("sound %q: volume must be > 0", name)
			}
			volume = *s.Volume
		}
		return &synth.NoisePreset{Name: name, Volume: volume}, nil
	default:
		return nil, fmt.Errorf("sound %q: unknown kind %q", name, s.Kind)
	}
}

func (s *SoundSetting) dcoParams(name string) (*synth.DCOParams, error) {
	p := synth.NewDCOParams()
	if s.SquareVolume != nil {
		if *s.SquareVolume < 0 || *s.SquareVolume > 1 {
			return nil, fmt.Errorf("sound %q: square_volume must be in [0,1]", name)
		}
		p.SquareVolume = *s.SquareVolume
	}
	if s.SquarePWM != nil {
		if *s.SquarePWM < 0 || *s.SquarePWM >= 1 {
			return nil, fmt.Errorf("sound %q: square_pwm must be in [0,1)", name)
		}
		p.SquarePWM = *s.SquarePWM
	}
	if s.TriangleVolume != nil {
		if *s.TriangleVolume < 0 || *s.TriangleVolume > 1 {
			return nil, fmt.Errorf("sound %q: triangle_volume must be in [0,1]", name)
		}
		p.TriangleVolume = *s.TriangleVolume
	}
	if s.TriangleRatio != nil {
		if *s.TriangleRatio <= 0 || *s.TriangleRatio > 1 {
			return nil, fmt.Errorf("sound %q: triangle_ratio must be in (0,1]", name)
		}
		p.TriangleRatio = *s.TriangleRatio
	}
	if s.TriangleFallRatio != nil {
		if *s.TriangleFallRatio < 0 || *s.TriangleFallRatio >= 1 {
			return nil, fmt.Errorf("sound %q: triangle_fall_ratio must be in [0,1)", name)
		}
		p.TriangleFallRatio = *s.TriangleFallRatio
	}
	if s.DetuneCents != nil {
		if *s.DetuneCents < 0 {
			return nil, fmt.Errorf("sound %q: detune_cents must be >= 0", name)
		}
		p.DetuneCents = *s.DetuneCents
	}
	return p, nil
}

func (s *SoundSetting) envelopeParams(name string) (*synth.EnvelopeParams, error) {
	p := synth.NewEnvelopeParams()
	times := []struct {
		field string
		src   *float64
		dst   *float64
	}{
		{"attack_time", s.AttackTime, &p.AttackTime},
		{"decay_time", s.DecayTime, &p.DecayTime},
		{"release_time", s.ReleaseTime, &p.ReleaseTime},
	}
	for _, t := range times {
		if t.src == nil {
			continue
		}
		if *t.src < 0 {
			return nil, fmt.Errorf("sound %q: %s must be >= 0", name, t.field)
		}
		*t.dst = *t.src
	}
	if s.SustainLevel != nil {
		if *s.SustainLevel <= 0 || *s.SustainLevel > 1 {
			return nil, fmt.Errorf("sound %q: sustain_level must be in (0,1]", name)
		}
		p.SustainLevel = *s.SustainLevel
	}
	return p, nil
}
