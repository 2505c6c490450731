package clock

// Automator runs automation jobs on a single cooperative worker.
// Jobs may pause for a number of MIDI ticks; the clock wakes them
// through its midi_clock notification.
type Automator struct {
	jobs  chan func(*Job)
	ticks chan Tick
}

// Job is the handle an automation callback uses to suspend itself.
type Job struct {
	ticks <-chan Tick
}

// NewAutomator starts the worker and subscribes it to the clock's
// MIDI ticks.
func NewAutomator(c *Clock) *Automator {
	a := &Automator{
		jobs:  make(chan func(*Job), 16),
		ticks: make(chan Tick, 256),
	}
	c.FollowMidiClock(a, func(t Tick) {
		select {
		case a.ticks <- t:
		default:
			// The worker is behind, skipped ticks shorten pauses.
		}
	})
	go a.work()
	return a
}

func (a *Automator) work() {
	job := &Job{ticks: a.ticks}
	for f := range a.jobs {
		f(job)
	}
}

// Submit enqueues an automation callback. Callbacks run one at a
// time in submission order.
func (a *Automator) Submit(f func(*Job)) {
	a.jobs <- f
}

// Pause blocks the job until n MIDI ticks have elapsed.
func (j *Job) Pause(n int) {
	for i := 0; i < n; i++ {
		<-j.ticks
	}
}

// WaitForBeats blocks the job for n beats.
func (j *Job) WaitForBeats(n int) {
	j.Pause(n * MidiClockPerQuarter)
}
