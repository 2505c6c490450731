package synth

import "sort"

// ChannelAssignment maps channel ids to presets. Channel ids may
// exceed 16, the extra logical channels are used by arpeggiators. A
// selection cursor walks the assigned channels with wrap-around.
type ChannelAssignment struct {
	// OnSelect is invoked when the selection cursor moves, typically
	// to prioritize the preset controls in the user interface and
	// update the display.
	OnSelect func(channel int, p Preset)

	presets  map[int]Preset
	channels []int
	current  int
}

// NewChannelAssignment creates an empty assignment with no selection.
func NewChannelAssignment() *ChannelAssignment {
	return &ChannelAssignment{
		presets: map[int]Preset{},
		current: -1,
	}
}

// Assign binds a preset to a channel.
func (ca *ChannelAssignment) Assign(channel int, p Preset) {
	if _, ok := ca.presets[channel]; !ok {
		ca.channels = append(ca.channels, channel)
		sort.Ints(ca.channels)
	}
	ca.presets[channel] = p
}

// Preset returns the preset assigned to a channel.
func (ca *ChannelAssignment) Preset(channel int) (Preset, bool) {
	p, ok := ca.presets[channel]
	return p, ok
}

// Current returns the selected channel, or false when nothing has
// been selected yet.
func (ca *ChannelAssignment) Current() (int, bool) {
	if ca.current < 0 || ca.current >= len(ca.channels) {
		return 0, false
	}
	return ca.channels[ca.current], true
}

// SelectNext moves the selection to the next assigned channel,
// wrapping around past the last one.
func (ca *ChannelAssignment) SelectNext() {
	ca.move(1)
}

// SelectPrevious moves the selection to the previous assigned
// channel, wrapping around past the first one.
func (ca *ChannelAssignment) SelectPrevious() {
	ca.move(-1)
}

func (ca *ChannelAssignment) move(direction int) {
	if len(ca.channels) == 0 {
		return
	}
	ca.current += direction
	if ca.current >= len(ca.channels) {
		ca.current = 0
	} else if ca.current < 0 {
		ca.current = len(ca.channels) - 1
	}
	channel := ca.channels[ca.current]
	if ca.OnSelect != nil {
		ca.OnSelect(channel, ca.presets[channel])
	}
}
