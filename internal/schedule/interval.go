package schedule

import (
	"log/slog"
	"time"

	"github.com/malbeclabs/activity-scheduler/internal/activity"
	"github.com/malbeclabs/activity-scheduler/internal/scheduler"
)

// Kind selects which base-anchor function an IntervalPolicy uses. Design
// Notes model the smart/precise/relative family this way — a sum type
// dispatching only the one thing that actually differs between them —
// rather than as three schedule subclasses.
type Kind int

const (
	// KindSmart aligns to the scheduler's smart-interval grid (spec.md
	// §4.3), independent of when the schedule itself was created.
	KindSmart Kind = iota
	// KindPrecise anchors to this schedule's own explicit start time.
	KindPrecise
	// KindRelative anchors to the last time the activity finished, or to
	// start if it has never finished.
	KindRelative
)

// IntervalPolicy is a recurring schedule: once started, it recomputes its
// own next-start-time after every firing (IntervalSchedule and its
// Precise/Relative specializations in the original).
type IntervalPolicy struct {
	Core

	kind     Kind
	interval time.Duration
	end      int64 // Unbounded sentinel, or a hard stop epoch
	skip     bool

	lastFinished int64 // Never sentinel, or the last InformActivityFinished epoch
}

// NewIntervalPolicy returns an IntervalPolicy for act. interval must
// already have passed validation (timeutil.ValidateSmartInterval for
// KindSmart; any positive duration for Precise/Relative).
func NewIntervalPolicy(log *slog.Logger, sched *scheduler.Scheduler, act *activity.Activity, kind Kind, start int64, interval time.Duration, end int64, local bool) *IntervalPolicy {
	ip := &IntervalPolicy{
		Core:         newCore(log, sched, act, start, local),
		kind:         kind,
		interval:     interval,
		end:          end,
		lastFinished: Never,
	}
	ip.nextStart = ip.computeNextStart()
	return ip
}

// GetBaseStartTime returns the anchor this policy's Kind computes its
// next-start-time from (IntervalSchedule::GetBaseStartTime and its
// Precise/Relative overrides).
func (ip *IntervalPolicy) GetBaseStartTime() int64 {
	switch ip.kind {
	case KindPrecise:
		return ip.start
	case KindRelative:
		if ip.lastFinished != Never {
			return ip.lastFinished
		}
		return ip.start
	default: // KindSmart
		return ip.sched.SmartBaseTime()
	}
}

// computeNextStart is the ceiling-division slip-recovery arithmetic
// shared by every Kind: the next grid point at or after now, relative to
// the Kind-specific base. A pending SetSkip shifts the result forward one
// whole interval and clears itself.
func (ip *IntervalPolicy) computeNextStart() int64 {
	base := ip.GetBaseStartTime()
	now := ip.now()
	intervalSecs := int64(ip.interval / time.Second)

	var next int64
	if now <= base {
		next = base
	} else {
		elapsed := now - base
		periods := (elapsed + intervalSecs - 1) / intervalSecs // ceil, signed throughout
		next = base + periods*intervalSecs
	}
	if ip.skip {
		next += intervalSecs
		ip.skip = false
	}
	return next
}

// CalcNextStartTime refreshes the cached next-start-time. It is called by
// Queue (before re-linking) and by Scheduler.TimeChanged (after a clock or
// local-offset jump).
func (ip *IntervalPolicy) CalcNextStartTime() {
	ip.nextStart = ip.computeNextStart()
}

// ShouldReschedule reports whether this policy is still within its end
// bound. Unbounded (-1) means "run forever".
func (ip *IntervalPolicy) ShouldReschedule() bool {
	if ip.end == Unbounded {
		return true
	}
	return ip.nextStart <= ip.end
}

// SetSkip arranges for the next computed start time to jump forward by
// one whole interval, skipping the occurrence that would otherwise be
// due next.
func (ip *IntervalPolicy) SetSkip(skip bool) { ip.skip = skip }

// SetLastFinishedTime records when the activity last finished running, if
// finished is plausible: strictly in the past, and strictly after this
// schedule's start. An implausible value (clock skew, a stale replay) is
// silently ignored rather than rejected — SPEC_FULL.md supplemented
// feature 1, mirroring IntervalSchedule::SetLastFinishedTime.
func (ip *IntervalPolicy) SetLastFinishedTime(finished int64) {
	now := ip.now()
	if now-finished > 0 && finished-ip.start > 0 {
		ip.lastFinished = finished
	}
}

// InformActivityFinished records finishedAt as the last-finished time (if
// it is after this schedule's start), recomputes the next-start-time
// against it, and either re-queues (if still within the end bound) or
// leaves this policy unqueued (Scheduler::InformActivityFinished in the
// original, one layer up).
func (ip *IntervalPolicy) InformActivityFinished(finishedAt int64) {
	if finishedAt-ip.start > 0 {
		ip.lastFinished = finishedAt
	}
	ip.CalcNextStartTime()
	if ip.ShouldReschedule() {
		ip.Queue()
	} else {
		ip.Unqueue()
	}
}

// Queue links this schedule into the scheduler.
func (ip *IntervalPolicy) Queue() { queueItem(&ip.Core, ip) }

// Unqueue unlinks this schedule from the scheduler.
func (ip *IntervalPolicy) Unqueue() { unqueueItem(&ip.Core, ip) }
