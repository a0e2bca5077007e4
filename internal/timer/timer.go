package timer

import "time"

// Timer measures elapsed wall-clock time between Restart and Stop.
// Elapsed only grows while the timer is running; a stopped timer keeps
// the value it had when stopped.
type Timer struct {
	clock   Clock
	started time.Time
	frozen  time.Duration
	running bool
}

// New returns a stopped timer with zero elapsed time.
func New(clock Clock) Timer {
	return Timer{clock: clock}
}

// StartNew returns a timer that is already running.
func StartNew(clock Clock) Timer {
	t := New(clock)
	t.Restart()
	return t
}

// Restart resets elapsed time to zero and starts the timer.
func (t *Timer) Restart() {
	t.started = t.clock.Now()
	t.frozen = 0
	t.running = true
}

// Stop freezes elapsed time and marks the timer as not running.
func (t *Timer) Stop() {
	if !t.running {
		return
	}
	t.frozen = t.clock.Now().Sub(t.started)
	t.running = false
}

// IsRunning reports whether the timer is accumulating time.
func (t *Timer) IsRunning() bool {
	return t.running
}

// Elapsed returns the accumulated duration.
func (t *Timer) Elapsed() time.Duration {
	if !t.running {
		return t.frozen
	}
	d := t.clock.Now().Sub(t.started)
	if d < 0 {
		return 0
	}
	return d
}

// ElapsedMillis returns the accumulated duration in whole milliseconds.
func (t *Timer) ElapsedMillis() int64 {
	return t.Elapsed().Milliseconds()
}
