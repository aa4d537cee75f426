package schedulejson

import (
	"github.com/malbeclabs/activity-scheduler/internal/schedule"
	"github.com/malbeclabs/activity-scheduler/internal/timeutil"
	"github.com/tidwall/sjson"
)

// EncodeSchedule renders ds back into a "schedule" JSON sub-object,
// writing fields incrementally the way Schedule::ToJson and its
// IntervalSchedule/PreciseIntervalSchedule/RelativeIntervalSchedule
// overrides build up their MojObject one put call at a time.
func EncodeSchedule(ds *DecodedSchedule) ([]byte, error) {
	b := []byte("{}")
	var err error

	if !ds.HasInterval {
		return sjson.SetBytes(b, "start", timeutil.FormatTimestamp(ds.Start, !ds.Local))
	}

	if b, err = sjson.SetBytes(b, "interval", timeutil.FormatDuration(ds.Interval)); err != nil {
		return nil, err
	}

	precise := ds.Kind != schedule.KindSmart
	if b, err = sjson.SetBytes(b, "precise", precise); err != nil {
		return nil, err
	}
	if ds.Kind == schedule.KindRelative {
		if b, err = sjson.SetBytes(b, "relative", true); err != nil {
			return nil, err
		}
	}
	if precise {
		if b, err = sjson.SetBytes(b, "start", timeutil.FormatTimestamp(ds.Start, !ds.Local)); err != nil {
			return nil, err
		}
	}
	if ds.End != schedule.Unbounded {
		if b, err = sjson.SetBytes(b, "end", timeutil.FormatTimestamp(ds.End, !ds.Local)); err != nil {
			return nil, err
		}
	}
	if ds.Skip {
		if b, err = sjson.SetBytes(b, "skip", true); err != nil {
			return nil, err
		}
	}
	return b, nil
}
