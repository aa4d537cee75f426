// Package schedule implements the C3 schedule policies: Once, a
// single-shot schedule, and IntervalPolicy, a sum type over the smart,
// precise and relative interval kinds (spec.md §4.3; Design Notes
// suggest modeling the family this way rather than as a subclass
// hierarchy). Both embed Core, which holds the state and behavior common
// to every variant — the queue linkage, the weak Activity reference, and
// the local/absolute and scheduled flags (Schedule.h/.cpp in the
// original).
package schedule

import (
	"log/slog"
	"weak"

	"github.com/malbeclabs/activity-scheduler/internal/activity"
	"github.com/malbeclabs/activity-scheduler/internal/queue"
	"github.com/malbeclabs/activity-scheduler/internal/scheduler"
)

// Epoch-seconds sentinels shared across the scheduling core, spec.md §3.
// Unbounded and Never share a numeric value but must never be compared
// to one another — they mean different things in different fields.
const (
	DayOne    int64 = 86400
	Unbounded int64 = -1
	Never     int64 = -1
)

// Core is the shared state of every schedule variant. It is never used
// standalone; Once and IntervalPolicy embed it.
type Core struct {
	queue.Hook

	log   *slog.Logger
	sched *scheduler.Scheduler
	act   weak.Pointer[activity.Activity]

	start     int64
	local     bool
	scheduled bool
	nextStart int64
}

func newCore(log *slog.Logger, sched *scheduler.Scheduler, act *activity.Activity, start int64, local bool) Core {
	if log == nil {
		log = slog.Default()
	}
	return Core{
		Hook:  queue.NewHook(),
		log:   log,
		sched: sched,
		act:   weak.Make(act),
		start: start,
		local: local,
	}
}

// QueueKey, QueueIndex and SetQueueIndex satisfy queue.Item; QueueIndex
// and SetQueueIndex are promoted directly from the embedded Hook.
func (c *Core) QueueKey() int64 { return c.nextStart }

// Local reports whether this schedule is evaluated against the
// scheduler's local-time frame rather than plain UTC (Schedule::IsLocal).
func (c *Core) Local() bool { return c.local }

// SetLocal toggles the local/absolute frame. Changing it while queued
// does not itself reprogram the scheduler — callers should Unqueue/Queue
// around a frame change, the same as the original.
func (c *Core) SetLocal(local bool) { c.local = local }

// IsQueued reports whether this schedule is currently linked into the
// scheduler's queue.
func (c *Core) IsQueued() bool { return c.QueueIndex() >= 0 }

// IsScheduled reports whether this schedule has fired and not yet been
// re-queued (Schedule::IsScheduled).
func (c *Core) IsScheduled() bool { return c.scheduled }

// Activity resolves the weak Activity reference, reporting false if the
// Activity has since been collected.
func (c *Core) Activity() (*activity.Activity, bool) {
	a := c.act.Value()
	return a, a != nil
}

// GetNextStartTime returns the cached next-start-time most recently
// computed by CalcNextStartTime.
func (c *Core) GetNextStartTime() int64 { return c.nextStart }

// now returns the current time in this schedule's own frame: plain UTC
// epoch seconds if absolute, or the scheduler's local-adjusted time if
// local (Schedule::GetTime).
func (c *Core) now() int64 {
	n := c.sched.Now()
	if c.local {
		if off, ok := c.sched.LocalOffset(); ok {
			n += off
		}
	}
	return n
}

// Fire marks the schedule as having fired and notifies its Activity
// (Schedule::Scheduled). It is promoted to satisfy scheduler.Item's Fire
// method on every concrete schedule type.
func (c *Core) Fire() {
	c.scheduled = true
	if a, ok := c.Activity(); ok {
		a.Scheduled()
	}
}

// queueItem links self into the scheduler, first unlinking it if already
// queued and recomputing its next-start-time. self must be the concrete
// *Once or *IntervalPolicy embedding c, so the scheduler's eventual
// CalcNextStartTime call dispatches to the right override.
func queueItem(c *Core, self scheduler.Item) {
	if c.IsQueued() {
		unqueueItem(c, self)
	}
	self.CalcNextStartTime()
	c.scheduled = false
	c.sched.Add(self)
}

// unqueueItem unlinks self from the scheduler.
func unqueueItem(c *Core, self scheduler.Item) {
	c.sched.Remove(self)
	c.scheduled = false
}
