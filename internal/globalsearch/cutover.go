package globalsearch

import (
	"sync"
	"time"
)

// CutoverDue is delivered when the debounce period of a session ends.
type CutoverDue struct {
	Session    SessionID
	Generation uint64
}

// Scheduler arranges for a CutoverDue to be fed back into Search.Dispatch
// after delay. Scheduling again replaces any pending timer.
type Scheduler interface {
	Schedule(delay time.Duration, due CutoverDue)
}

// debounce tracks the single cutover timer. Each arm bumps the generation
// so that fires from replaced timers are recognized and ignored.
type debounce struct {
	generation uint64
	armed      bool
}

func (d *debounce) arm() uint64 {
	d.generation++
	d.armed = true
	return d.generation
}

// disarm makes any pending fire stale.
func (d *debounce) disarm() {
	d.generation++
	d.armed = false
}

// fire consumes the armed timer if generation matches it.
func (d *debounce) fire(generation uint64) bool {
	if !d.armed || generation != d.generation {
		return false
	}
	d.armed = false
	return true
}

// TimerScheduler delivers cutovers on a channel using a real timer.
// It is meant for event loops that select over engine events and C.
type TimerScheduler struct {
	C chan CutoverDue

	mu    sync.Mutex
	timer *time.Timer
}

// NewTimerScheduler creates a scheduler with a buffered delivery channel.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{C: make(chan CutoverDue, 4)}
}

// Schedule implements Scheduler.
func (s *TimerScheduler) Schedule(delay time.Duration, due CutoverDue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, func() {
		s.C <- due
	})
}

// Stop cancels any pending timer.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
