// Package schedulejson implements the C6 JSON boundary for the
// "schedule" sub-object only — the trigger, callback, requirements and
// activity shell around it are out of scope (spec.md §1). Decoding
// mirrors MojoJsonConverter::CreateSchedule's presence-checked reads and
// validation order field-for-field; encoding mirrors its ToJson family's
// incremental writes.
package schedulejson

import (
	"time"

	"github.com/malbeclabs/activity-scheduler/internal/schederr"
	"github.com/malbeclabs/activity-scheduler/internal/schedule"
	"github.com/malbeclabs/activity-scheduler/internal/timeutil"
	"github.com/tidwall/gjson"
)

// DecodedSchedule carries everything needed to construct a schedule.Once
// or schedule.IntervalPolicy, independent of which Scheduler or Activity
// it will eventually attach to.
type DecodedSchedule struct {
	HasInterval bool
	Kind        schedule.Kind // meaningful only if HasInterval
	Start       int64
	Local       bool
	Interval    time.Duration
	End         int64
	Skip        bool
}

// DecodeSchedule parses a "schedule" JSON sub-object, reproducing
// MojoJsonConverter::CreateSchedule's field order and validation exactly
// (SPEC_FULL.md supplemented feature 2):
//
//  1. start is parsed first, if present.
//  2. interval absent means a non-interval (Once) schedule; such a
//     schedule must have specified an explicit start (MissingField
//     otherwise).
//  3. interval present: precise/relative/skip are read, end is parsed if
//     present, relative without precise is InvalidCombination, an
//     explicit start or end on a non-precise (smart) schedule is
//     InvalidCombination, a start/end UTC-ness mismatch is
//     InconsistentTimeZone, and, last, a non-precise interval outside the
//     smart-interval allow-list is InvalidSmartInterval.
func DecodeSchedule(raw []byte) (*DecodedSchedule, error) {
	root := gjson.ParseBytes(raw)

	start := schedule.DayOne
	var startUTC bool
	var startGiven bool
	if v := root.Get("start"); v.Exists() {
		e, utc, err := timeutil.ParseTimestamp(v.String())
		if err != nil {
			return nil, err
		}
		start, startUTC, startGiven = e, utc, true
	}

	intervalField := root.Get("interval")
	if !intervalField.Exists() {
		if !startGiven {
			return nil, schederr.New(schederr.MissingField, "schedulejson.DecodeSchedule",
				"non-interval schedules must specify a start time")
		}
		return &DecodedSchedule{Start: start, Local: !startUTC}, nil
	}

	interval, err := timeutil.ParseDuration(intervalField.String())
	if err != nil {
		return nil, err
	}

	precise := root.Get("precise").Bool()
	relative := root.Get("relative").Bool()
	skip := root.Get("skip").Bool()

	end := schedule.Unbounded
	var endUTC bool
	var endGiven bool
	if v := root.Get("end"); v.Exists() {
		e, utc, err := timeutil.ParseTimestamp(v.String())
		if err != nil {
			return nil, err
		}
		end, endUTC, endGiven = e, utc, true
	}

	if relative && !precise {
		return nil, schederr.New(schederr.InvalidCombination, "schedulejson.DecodeSchedule",
			"relative interval schedules must also be precise")
	}
	if !precise && (startGiven || endGiven) {
		return nil, schederr.New(schederr.InvalidCombination, "schedulejson.DecodeSchedule",
			"smart interval schedules must not specify an explicit start or end")
	}
	if startGiven && endGiven && startUTC != endUTC {
		return nil, schederr.New(schederr.InconsistentTimeZone, "schedulejson.DecodeSchedule",
			"start and end must agree on UTC-ness")
	}

	if !precise {
		if err := timeutil.ValidateSmartInterval(interval); err != nil {
			return nil, err
		}
	}

	kind := schedule.KindSmart
	switch {
	case precise && relative:
		kind = schedule.KindRelative
	case precise:
		kind = schedule.KindPrecise
	}

	local := !startUTC
	if endGiven {
		local = !endUTC
	}

	return &DecodedSchedule{
		HasInterval: true,
		Kind:        kind,
		Start:       start,
		Local:       local,
		Interval:    interval,
		End:         end,
		Skip:        skip,
	}, nil
}
