// Package scheduler implements the C4 scheduling core: two ordered
// queues of pending schedules (absolute-time and local-time), a single
// armed timeout, and the reprogram pass that drains due items and
// rearms the timeout for whichever item is due next (spec.md §4.2,
// §4.3). It is deliberately single-threaded and unsynchronized, mirroring
// the original Scheduler's "no locking because there is no parallelism"
// design: every exported method here is safe to call reentrantly from
// the same goroutine (a Fire callback synchronously re-Add-ing a
// Schedule just recurses, SPEC_FULL.md supplemented feature 5), but must
// not be called concurrently from two goroutines without going through
// Run/Submit.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/activity-scheduler/internal/queue"
	"github.com/malbeclabs/activity-scheduler/internal/schederr"
	"github.com/prometheus/client_golang/prometheus"
)

// Config configures a Scheduler.
type Config struct {
	Logger *slog.Logger
	Clock  clockwork.Clock

	// Registerer is where the scheduler's metrics are registered. A nil
	// Registerer gets its own private registry (safe for tests that
	// construct many Schedulers); production code should pass
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// Validate reports whether cfg is ready for New.
func (cfg *Config) Validate() error {
	if cfg.Clock == nil {
		return schederr.New(schederr.MissingField, "scheduler.Config.Validate", "Clock is required")
	}
	return nil
}

// Scheduler holds the two pending-schedule queues and the single armed
// timeout that drives them (spec.md §4.2).
type Scheduler struct {
	log   *slog.Logger
	clock clockwork.Clock

	absQ *queue.Queue
	locQ *queue.Queue

	timer         clockwork.Timer
	wakeScheduled bool
	nextWakeup    int64

	localOffsetSet bool
	localOffset    int64

	smartBase int64

	metrics *metricsSet

	submit chan func()
	wakeCh chan struct{}
}

// New constructs a Scheduler from cfg. The smart-interval alignment base
// is the UTC midnight on or before the clock's current time, so every
// smart schedule aligns to the same day grid regardless of when it was
// added (spec.md §4.3).
func New(cfg *Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	now := cfg.Clock.Now().Unix()
	s := &Scheduler{
		log:       log,
		clock:     cfg.Clock,
		absQ:      queue.New(),
		locQ:      queue.New(),
		smartBase: now - now%86400,
		metrics:   newMetrics(cfg.Registerer),
		submit:    make(chan func()),
		wakeCh:    make(chan struct{}, 1),
	}
	return s, nil
}

// Now returns the current time as Unix epoch seconds.
func (s *Scheduler) Now() int64 { return s.clock.Now().Unix() }

// SmartBaseTime returns the alignment anchor smart-interval policies use
// for their base-anchor computation (spec.md §4.3).
func (s *Scheduler) SmartBaseTime() int64 { return s.smartBase }

// LocalOffset returns the current local-time offset (seconds added to
// Now() to get the scheduler's notion of local time) and whether it has
// ever been set. Reading before the first SetLocalOffset logs a warning
// and returns (0, false) rather than failing — SPEC_FULL.md supplemented
// feature 4, mirroring Scheduler::GetLocalOffset.
func (s *Scheduler) LocalOffset() (int64, bool) {
	if !s.localOffsetSet {
		s.log.Warn("scheduler: local offset read before it was ever set")
	}
	return s.localOffset, s.localOffsetSet
}

// SetLocalOffset updates the local-time offset and, if it actually
// changed, reprograms the timeout (every local-queue item's effective
// due time shifts).
func (s *Scheduler) SetLocalOffset(off int64) {
	changed := !s.localOffsetSet || s.localOffset != off
	s.localOffset = off
	s.localOffsetSet = true
	if changed {
		s.reprogram()
	}
}

func (s *Scheduler) queueFor(local bool) *queue.Queue {
	if local {
		return s.locQ
	}
	return s.absQ
}

// Add links item into its queue (chosen by item.Local()) and, if it
// becomes the new head of that queue, reprograms the timeout. The caller
// must have already set item's next-start-time (via its own
// CalcNextStartTime) before calling Add — Add does not call it.
func (s *Scheduler) Add(item Item) {
	q := s.queueFor(item.Local())
	q.Push(item)
	if head, ok := q.Peek(); ok && head == Item(item) {
		s.reprogram()
	}
	s.updateQueueDepthMetrics()
}

// Remove unlinks item from its queue, reprogramming the timeout if it had
// been the head.
func (s *Scheduler) Remove(item Item) {
	q := s.queueFor(item.Local())
	wasHead := false
	if head, ok := q.Peek(); ok && head == Item(item) {
		wasHead = true
	}
	if q.Remove(item) && wasHead {
		s.reprogram()
	}
	s.updateQueueDepthMetrics()
}

// TimeChanged recomputes every queued item's next-start-time (its policy
// may depend on wall-clock time, e.g. a relative policy anchored to
// lastFinished) and reprograms the timeout — spec.md §8 scenario 5, a
// system clock or local-offset jump reordering the queues.
func (s *Scheduler) TimeChanged() {
	s.requeue(s.absQ)
	s.requeue(s.locQ)
	s.reprogram()
}

func (s *Scheduler) requeue(q *queue.Queue) {
	items := q.Drain()
	for _, it := range items {
		sit := it.(Item)
		sit.CalcNextStartTime()
		q.Push(it)
	}
}

// Wake is invoked when the armed timeout fires. It re-runs the reprogram
// pass, which drains whatever is now due and arms the next timeout.
func (s *Scheduler) Wake() {
	s.wakeScheduled = false
	s.reprogram()
}

// nextStartTime returns the smaller of absQ's head key and locQ's head
// key adjusted by -localOffset (spec.md §4.2 GetNextStartTime), or false
// if both queues are empty or the local queue can't yet be compared
// (no local offset set).
func (s *Scheduler) nextStartTime() (int64, bool) {
	absHead, absOK := s.absQ.Peek()
	locHead, locOK := s.locQ.Peek()
	locOK = locOK && s.localOffsetSet

	switch {
	case !absOK && !locOK:
		return 0, false
	case !absOK:
		return locHead.QueueKey() - s.localOffset, true
	case !locOK:
		return absHead.QueueKey(), true
	default:
		a := absHead.QueueKey()
		l := locHead.QueueKey() - s.localOffset
		if a < l {
			return a, true
		}
		return l, true
	}
}

// NextStartTime is the exported form of nextStartTime, returning a
// QueueEmpty error if nothing is pending in either queue.
func (s *Scheduler) NextStartTime() (int64, error) {
	v, ok := s.nextStartTime()
	if !ok {
		return 0, schederr.New(schederr.QueueEmpty, "scheduler.NextStartTime", "no items queued")
	}
	return v, nil
}

// reprogram is Scheduler::DequeueAndUpdateTimeout: drain whatever is due
// in both queues, then arm (or cancel) the single timeout for whatever is
// due next.
func (s *Scheduler) reprogram() {
	now := s.Now()
	s.drain(s.absQ, now)
	if s.localOffsetSet {
		s.drain(s.locQ, now+s.localOffset)
	}

	next, ok := s.nextStartTime()
	if !ok {
		s.cancelTimeout()
		return
	}
	if !s.wakeScheduled || next != s.nextWakeup {
		s.armTimeout(next)
		s.nextWakeup = next
		s.wakeScheduled = true
	}
	s.updateQueueDepthMetrics()
}

// drain pops and fires every item in q whose key is <= threshold.
func (s *Scheduler) drain(q *queue.Queue, threshold int64) {
	for {
		head, ok := q.Peek()
		if !ok || head.QueueKey() > threshold {
			return
		}
		item, _ := q.PopFront()
		sit := item.(Item)
		sit.Fire()
		s.metrics.firesTotal.Inc()
	}
}

func (s *Scheduler) updateQueueDepthMetrics() {
	s.metrics.queueDepth.WithLabelValues("absolute").Set(float64(s.absQ.Len()))
	s.metrics.queueDepth.WithLabelValues("local").Set(float64(s.locQ.Len()))
}

// Run owns the Scheduler on the calling goroutine until ctx is canceled,
// processing submitted cross-goroutine work and armed-timeout wakeups one
// at a time. Methods on Scheduler may be called directly (no Run) from a
// single-owner goroutine, which is how tests exercise it; Run plus Submit
// is how another goroutine (an HTTP handler, say) reaches in safely.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			s.cancelTimeout()
			return ctx.Err()
		case fn := <-s.submit:
			fn()
		case <-s.wakeCh:
			s.Wake()
		}
	}
}

// Submit runs fn on the goroutine executing Run, blocking until it has
// been dispatched. It must not be called from inside Run's own goroutine
// (that would deadlock); same-goroutine reentrancy should call Scheduler
// methods directly instead, as internal/schedule does.
func (s *Scheduler) Submit(fn func()) {
	s.submit <- fn
}
