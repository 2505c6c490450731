package midi

import (
	"fmt"
	"log"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// Driver connects the hardware MIDI ports to an Input hub and exposes
// an output port for controller feedback.
type Driver struct {
	in    *Input
	stops []func()
	send  func(gomidi.Message) error
}

// OpenDriver opens every available MIDI input port, numbering them in
// enumeration order, and feeds parsed messages into in from the
// driver callback. An output port whose name contains outPortName is
// opened for writing when found.
func OpenDriver(in *Input, outPortName string) (*Driver, error) {
	d := &Driver{in: in}

	inPorts := gomidi.GetInPorts()
	if len(inPorts) == 0 {
		return nil, fmt.Errorf("midi: no input port available")
	}
	for i, p := range inPorts {
		log.Printf("midi: input port %d: %s", i, p.String())
		portIndex := i
		stop, err := gomidi.ListenTo(p, func(msg gomidi.Message, timestampms int32) {
			if m := Parse(msg.Bytes()); m != nil {
				in.Push(portIndex, m)
			}
		}, gomidi.UseSysEx())
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("midi: open input %q: %w", p.String(), err)
		}
		d.stops = append(d.stops, stop)
	}

	if outPortName != "" {
		out := findOutPort(outPortName)
		if out == nil {
			log.Printf("midi: no output port matching %q, controller feedback disabled", outPortName)
		} else {
			send, err := gomidi.SendTo(out)
			if err != nil {
				d.Close()
				return nil, fmt.Errorf("midi: open output %q: %w", out.String(), err)
			}
			d.send = send
		}
	}
	return d, nil
}

func findOutPort(name string) drivers.Out {
	for _, p := range gomidi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), strings.ToLower(name)) {
			return p
		}
	}
	return nil
}

// Write sends a raw MIDI message, including sysex framing bytes, to
// the output port. Errors are logged and the message is discarded.
func (d *Driver) Write(raw []byte) {
	if d == nil || d.send == nil || len(raw) == 0 {
		return
	}
	var err error
	if raw[0] == 0xf0 && raw[len(raw)-1] == 0xf7 {
		err = d.send(gomidi.SysEx(raw[1 : len(raw)-1]))
	} else {
		err = d.send(gomidi.Message(raw))
	}
	if err != nil {
		log.Printf("midi: write failed: %v", err)
	}
}

// Close stops listening on every input port.
func (d *Driver) Close() {
	for _, stop := range d.stops {
		stop()
	}
	d.stops = nil
	gomidi.CloseDriver()
}
