package midi

// Kind discriminates message headers. The zero value is the empty
// header, ordered before every other kind.
type Kind int8

const (
	KindNone Kind = iota
	KindOn
	KindOff
	// KindNote identifies a note regardless of the on/off direction,
	// used to match a note-off against its note-on.
	KindNote
	KindControlChange
	KindPitchBend
	KindSysex
)

// Header identifies a message by its type and addressing fields
// (channel and note or controller number), excluding the value. It is
// comparable so it can key action dispatch tables, and totally
// ordered by Less.
type Header struct {
	Kind    Kind
	Channel int8
	Data    int8
}

// Less orders headers by kind, then channel, then data byte.
func (h Header) Less(o Header) bool {
	if h.Kind != o.Kind {
		return h.Kind < o.Kind
	}
	if h.Channel != o.Channel {
		return h.Channel < o.Channel
	}
	return h.Data < o.Data
}

// OnHeader is the header of a note-on for the given channel and note.
func OnHeader(channel, note int8) Header {
	return Header{KindOn, channel, note}
}

// OffHeader is the header of a note-off for the given channel and note.
func OffHeader(channel, note int8) Header {
	return Header{KindOff, channel, note}
}

// CCHeader is the header of a control change for the given channel
// and controller number.
func CCHeader(channel, number int8) Header {
	return Header{KindControlChange, channel, number}
}

// NoteHeader identifies a note independently of the on/off direction.
func NoteHeader(channel, note int8) Header {
	return Header{KindNote, channel, note}
}

// PitchBendHeader is the header of a pitch bend for the given channel.
func PitchBendHeader(channel int8) Header {
	return Header{Kind: KindPitchBend, Channel: channel}
}

func (o On) Header() Header            { return OnHeader(o.Channel, o.Note) }
func (o Off) Header() Header           { return OffHeader(o.Channel, o.Note) }
func (c ControlChange) Header() Header { return CCHeader(c.Channel, c.Number) }
func (p PitchBend) Header() Header     { return Header{KindPitchBend, p.Channel, 0} }
func (s Sysex) Header() Header         { return Header{Kind: KindSysex} }

// NoteHeaderOf returns the direction-less note header of a note
// message, or the empty header for anything else.
func NoteHeaderOf(m Message) Header {
	switch n := m.(type) {
	case On:
		return NoteHeader(n.Channel, n.Note)
	case Off:
		return NoteHeader(n.Channel, n.Note)
	}
	return Header{}
}
