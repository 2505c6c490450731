package clock

import (
	"container/heap"
	"time"
)

// Appointment is the callback of a scheduled entry, receiving the
// wake time it was appointed for.
type Appointment func(time.Time)

type entry struct {
	when   time.Time
	action Appointment
}

type entryHeap []entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].when.Before(h[j].when) }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)         { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Scheduler keeps a min-heap of wall-clock appointments. Schedule is
// called once per frame by the clock; there is no cancellation.
type Scheduler struct {
	entries entryHeap
}

// AppointAt schedules a to run once at tp.
func (s *Scheduler) AppointAt(tp time.Time, a Appointment) {
	heap.Push(&s.entries, entry{tp, a})
}

// AppointIn schedules a to run once after d.
func (s *Scheduler) AppointIn(d time.Duration, a Appointment) {
	s.AppointAt(time.Now().Add(d), a)
}

// AppointCyclic schedules a to run every d, re-arming itself from
// each wake time to avoid drift.
func (s *Scheduler) AppointCyclic(d time.Duration, a Appointment) {
	var cyclic Appointment
	cyclic = func(when time.Time) {
		a(when)
		s.AppointAt(when.Add(d), cyclic)
	}
	s.AppointAt(time.Now().Add(d), cyclic)
}

// Schedule pops and invokes every appointment whose wake time has
// passed.
func (s *Scheduler) Schedule() {
	now := time.Now()
	for len(s.entries) > 0 && !s.entries[0].when.After(now) {
		e := heap.Pop(&s.entries).(entry)
		e.action(e.when)
	}
}
