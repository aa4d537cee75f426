package scheduler

import "github.com/malbeclabs/activity-scheduler/internal/queue"

// Item is what the Scheduler needs from a queued schedule. CalcNextStartTime
// is the one polymorphic operation (spec.md §4.3): Once is a no-op, an
// interval policy recomputes its cached next-start-time from its Kind's
// base-anchor function. Fire, Local, and the queue.Item methods are
// ordinarily satisfied by embedding internal/schedule.Core, which
// implements all but CalcNextStartTime.
type Item interface {
	queue.Item
	Local() bool
	Fire()
	CalcNextStartTime()
}
