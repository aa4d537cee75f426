package scheduler

import "time"

// armTimeout is the C2 timeout driver: it wraps clockwork.Clock.AfterFunc,
// arming a single one-shot timer for an absolute epoch-seconds deadline.
// Negative durations (a deadline already in the past) fire immediately,
// matching the original's "overdue items are drained on the very next
// pass" behavior.
func (s *Scheduler) armTimeout(at int64) {
	d := time.Duration(at-s.Now()) * time.Second
	if d < 0 {
		d = 0
	}
	s.cancelTimeout()
	s.timer = s.clock.AfterFunc(d, s.onFire)
}

func (s *Scheduler) cancelTimeout() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.wakeScheduled = false
}

// onFire runs on whatever goroutine the clock invokes the AfterFunc
// callback on (its own, per clockwork/time.AfterFunc semantics), so it
// only ever hands off to wakeCh — the owning goroutine (Run) is what
// actually calls Wake.
func (s *Scheduler) onFire() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
		// A wakeup is already pending; Wake() will reprogram against
		// current state regardless of which timer fired.
	}
}
