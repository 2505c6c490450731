package midi

import "log"

// fifoCapacity bounds each per-port message queue. A full queue drops
// the newest message so the driver callback never blocks.
const fifoCapacity = 64

// Action is a callback bound to a (port, header) key.
type Action func(Message)

type actionKey struct {
	port   int
	header Header
}

type port struct {
	// Messages for explicit consumption by Read/TryRead.
	in chan Message
	// Messages waiting for DispatchRegisteredActions.
	dispatch chan Message
}

// Input buffers incoming parsed messages per port and dispatches
// registered actions on the consumer thread, never inside the driver
// callback.
type Input struct {
	ports map[int]*port
	// Multiple actions per key run in insertion order.
	actions map[actionKey][]Action
}

// NewInput creates an input hub with no open port.
func NewInput() *Input {
	return &Input{
		ports:   map[int]*port{},
		actions: map[actionKey][]Action{},
	}
}

func (in *Input) port(p int) *port {
	pt, ok := in.ports[p]
	if !ok {
		pt = &port{
			in:       make(chan Message, fifoCapacity),
			dispatch: make(chan Message, fifoCapacity),
		}
		in.ports[p] = pt
	}
	return pt
}

// Push enqueues a message received on a port for both the explicit
// readers and the action dispatcher. Called from the driver thread;
// never blocks.
func (in *Input) Push(p int, m Message) {
	pt := in.port(p)
	select {
	case pt.in <- m:
	default:
		log.Printf("midi: port %d input queue full, dropping message", p)
	}
	select {
	case pt.dispatch <- m:
	default:
		log.Printf("midi: port %d dispatch queue full, dropping message", p)
	}
}

// Insert enqueues a synthetic message on the explicit-read queue of a
// port, as if it had been received there. Arpeggiators use this to
// emit their notes.
func (in *Input) Insert(p int, m Message) {
	select {
	case in.port(p).in <- m:
	default:
		log.Printf("midi: port %d input queue full, dropping inserted message", p)
	}
}

// Read blocks until a message is available on the port.
func (in *Input) Read(p int) Message {
	return <-in.port(p).in
}

// TryRead stores the next message of the port into m and reports
// whether one was available.
func (in *Input) TryRead(p int, m *Message) bool {
	select {
	case v := <-in.port(p).in:
		*m = v
		return true
	default:
		return false
	}
}

// AddAction registers an action fired by DispatchRegisteredActions for
// every message on the port whose header equals header.
func (in *Input) AddAction(p int, header Header, a Action) {
	k := actionKey{p, header}
	in.actions[k] = append(in.actions[k], a)
	in.port(p)
}

// CCAction registers an action receiving the [0, 1] normalized value
// of a control change on the given port, channel and controller
// number.
func (in *Input) CCAction(p int, channel, number int8, f func(float64)) {
	in.AddAction(p, CCHeader(channel, number), func(m Message) {
		if cc, ok := m.(ControlChange); ok {
			f(cc.Value1())
		}
	})
}

// DispatchRegisteredActions drains the dispatch queue of every port
// and invokes every action keyed by each message header. Runs on the
// consumer thread.
func (in *Input) DispatchRegisteredActions() {
	for p, pt := range in.ports {
		draining := true
		for draining {
			select {
			case m := <-pt.dispatch:
				for _, a := range in.actions[actionKey{p, m.Header()}] {
					a(m)
				}
			default:
				draining = false
			}
		}
	}
}
