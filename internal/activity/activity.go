// Package activity holds the minimal external handle the scheduling core
// notifies and queries (spec.md §4.4, "External handles"). Admission,
// triggers, requirements, the bus identity model and the service-RPC
// callback transport are out of scope; only the call shape a Schedule
// needs is implemented here.
package activity

import "math/rand/v2"

// UnassignedSerial is reserved and never returned by NewSerial.
const UnassignedSerial uint32 = 0

// Activity is the scheduler's external handle: an identity and a single
// callback invoked when its Schedule fires. A real activity manager would
// embed far more (triggers, requirements, persistence); none of that is
// this module's concern.
type Activity struct {
	id          uint64
	onScheduled func()
}

// New returns an Activity with the given id, invoking onScheduled
// (which may be nil) each time its Schedule fires.
func New(id uint64, onScheduled func()) *Activity {
	return &Activity{id: id, onScheduled: onScheduled}
}

func (a *Activity) ID() uint64 { return a.id }

// Scheduled is called synchronously by the scheduling core when this
// Activity's Schedule becomes due (Schedule::Scheduled in the original).
func (a *Activity) Scheduled() {
	if a.onScheduled != nil {
		a.onScheduled()
	}
}

// PowerActivity is opaque to the scheduler; spec.md §4.4 only requires
// that its presence be distinguishable, never that the scheduler act on
// it, so it carries no fields.
type PowerActivity struct{}

// NewSerial returns a uniformly distributed nonzero 32-bit serial for
// outbound callback correlation. It retries on 0, which is reserved for
// "unassigned" — replacing the original's biased `random() % UINT_MAX`
// (spec.md §9, open question 3).
func NewSerial() uint32 {
	for {
		if v := rand.Uint32(); v != UnassignedSerial {
			return v
		}
	}
}
