package schedule

import (
	"log/slog"

	"github.com/malbeclabs/activity-scheduler/internal/activity"
	"github.com/malbeclabs/activity-scheduler/internal/scheduler"
)

// Once is a non-recurring schedule: it fires exactly once, at start, and
// is never re-queued (Schedule, the original's non-interval base case).
type Once struct {
	Core
}

// NewOnce returns a Once schedule for act, due at start (Unix epoch
// seconds). start must not be DayOne — a non-interval schedule without an
// explicit start is a decode-time MissingField error, not representable
// here (SPEC_FULL.md supplemented feature 2).
func NewOnce(log *slog.Logger, sched *scheduler.Scheduler, act *activity.Activity, start int64, local bool) *Once {
	o := &Once{Core: newCore(log, sched, act, start, local)}
	o.nextStart = start
	return o
}

// CalcNextStartTime is a no-op: a Once schedule's due time never moves.
func (o *Once) CalcNextStartTime() {}

// ShouldReschedule is always false: Once never runs again after firing.
func (o *Once) ShouldReschedule() bool { return false }

// Queue links this schedule into the scheduler.
func (o *Once) Queue() { queueItem(&o.Core, o) }

// Unqueue unlinks this schedule from the scheduler.
func (o *Once) Unqueue() { unqueueItem(&o.Core, o) }
