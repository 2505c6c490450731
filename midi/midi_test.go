package midi

import (
	"math"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		want Message
	}{
		{"note on", []byte{0x90, 69, 100}, On{0, 69, 100}},
		{"note on channel 9", []byte{0x99, 36, 127}, On{9, 36, 127}},
		{"note on velocity 0 is off", []byte{0x90, 69, 0}, Off{0, 69, 0}},
		{"note off", []byte{0x85, 60, 64}, Off{5, 60, 64}},
		{"control change", []byte{0xb0, 64, 127}, ControlChange{0, 64, 127}},
		{"pitch bend center", []byte{0xe0, 0x00, 0x40}, PitchBend{0, 0}},
		{"pitch bend max", []byte{0xe2, 0x7f, 0x7f}, PitchBend{2, float64(16383-8192) / 8192}},
		{"pitch bend min", []byte{0xe0, 0x00, 0x00}, PitchBend{0, -1}},
		{"sysex", []byte{0xf0, 0x7e, 0xf7}, Sysex{Data: []byte{0xf0, 0x7e, 0xf7}}},
		{"empty", nil, nil},
		{"two bytes", []byte{0x90, 69}, nil},
		{"clock", []byte{0xf8, 0, 0}, nil},
	}
	for _, c := range cases {
		got := Parse(c.raw)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s: got=%v want=%v", c.name, got, c.want)
		}
	}
}

func TestFrequency(t *testing.T) {
	if f := Frequency(69, 0); math.Abs(f-440) > 1e-9 {
		t.Fatalf("A4: got=%v want=440", f)
	}
	if f := Frequency(81, 0); math.Abs(f-880) > 1e-9 {
		t.Fatalf("octave up: got=%v want=880", f)
	}
	if f := Frequency(69, 12); math.Abs(f-880) > 1e-9 {
		t.Fatalf("transposed octave: got=%v want=880", f)
	}
	if f := Frequency(60, 0); math.Abs(f-261.6255653005986) > 1e-6 {
		t.Fatalf("C4: got=%v", f)
	}
}

func TestValueScaling(t *testing.T) {
	if v := ValueIn(0, 2, 10); v != 2 {
		t.Fatalf("linear low: got=%v want=2", v)
	}
	if v := ValueIn(127, 2, 10); v != 10 {
		t.Fatalf("linear high: got=%v want=10", v)
	}
	if v := LogValueIn(0, 20, 20000); math.Abs(v-20) > 1e-9 {
		t.Fatalf("log low: got=%v want=20", v)
	}
	if v := LogValueIn(127, 20, 20000); math.Abs(v-20000) > 1e-6 {
		t.Fatalf("log high: got=%v want=20000", v)
	}
	// The logarithmic midpoint is the geometric mean of the bounds.
	mid := LogValueIn(63, 20, 20000)
	lo := LogValueIn(0, 20, 20000)
	if mid <= lo || mid >= 2000 {
		t.Fatalf("log midpoint out of range: got=%v", mid)
	}
	cc := ControlChange{Value: 127}
	if v := cc.Value1(); v != 1 {
		t.Fatalf("Value1: got=%v want=1", v)
	}
}

func TestHeaderOrdering(t *testing.T) {
	ordered := []Header{
		{},
		OnHeader(0, 0),
		OnHeader(0, 1),
		OnHeader(1, 0),
		OffHeader(0, 0),
		NoteHeader(0, 60),
		CCHeader(0, 1),
		CCHeader(0, 64),
		PitchBendHeader(0),
		Sysex{}.Header(),
	}
	for i := 0; i < len(ordered); i++ {
		for j := 0; j < len(ordered); j++ {
			got := ordered[i].Less(ordered[j])
			want := i < j
			if got != want {
				t.Errorf("Less(%v, %v): got=%v want=%v", ordered[i], ordered[j], got, want)
			}
		}
	}
}

func TestNoteHeaderOf(t *testing.T) {
	on := NoteHeaderOf(On{Channel: 2, Note: 60})
	off := NoteHeaderOf(Off{Channel: 2, Note: 60})
	if on != off {
		t.Fatalf("on/off note headers differ: %v vs %v", on, off)
	}
	if h := NoteHeaderOf(ControlChange{}); h != (Header{}) {
		t.Fatalf("control change note header: got=%v want empty", h)
	}
}

func TestNoteName(t *testing.T) {
	cases := []struct {
		note int8
		want string
	}{
		{69, "A4"},
		{60, "C4"},
		{0, "C-1"},
		{61, "C#4"},
		{127, "G9"},
	}
	for _, c := range cases {
		if got := NoteName(c.note); got != c.want {
			t.Errorf("NoteName(%d): got=%q want=%q", c.note, got, c.want)
		}
	}
}

func TestAsOff(t *testing.T) {
	on := On{Channel: 3, Note: 64, Velocity: 99}
	off := on.AsOff()
	if off.Channel != 3 || off.Note != 64 {
		t.Fatalf("AsOff: got=%v", off)
	}
}
