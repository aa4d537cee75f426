package schedulejson_test

import (
	"testing"
	"time"

	"github.com/malbeclabs/activity-scheduler/internal/schederr"
	"github.com/malbeclabs/activity-scheduler/internal/schedule"
	"github.com/malbeclabs/activity-scheduler/internal/schedulejson"
	"github.com/stretchr/testify/require"
)

func TestDecodeSchedule_OnceRequiresStart(t *testing.T) {
	t.Parallel()
	_, err := schedulejson.DecodeSchedule([]byte(`{}`))
	require.Error(t, err)
	require.True(t, schederr.Is(err, schederr.MissingField))
}

func TestDecodeSchedule_OnceWithStart(t *testing.T) {
	t.Parallel()
	ds, err := schedulejson.DecodeSchedule([]byte(`{"start":"2026-01-01 00:00:00Z"}`))
	require.NoError(t, err)
	require.False(t, ds.HasInterval)
	require.False(t, ds.Local)
}

func TestDecodeSchedule_SmartInterval(t *testing.T) {
	t.Parallel()
	ds, err := schedulejson.DecodeSchedule([]byte(`{"interval":"15M"}`))
	require.NoError(t, err)
	require.True(t, ds.HasInterval)
	require.Equal(t, schedule.KindSmart, ds.Kind)
	require.Equal(t, 15*time.Minute, ds.Interval)
}

func TestDecodeSchedule_SmartIntervalRejectsExplicitStart(t *testing.T) {
	t.Parallel()
	_, err := schedulejson.DecodeSchedule([]byte(`{"interval":"15M","start":"2026-01-01 00:00:00Z"}`))
	require.Error(t, err)
	require.True(t, schederr.Is(err, schederr.InvalidCombination))
}

func TestDecodeSchedule_SmartIntervalRejectsInvalidMinutes(t *testing.T) {
	t.Parallel()
	_, err := schedulejson.DecodeSchedule([]byte(`{"interval":"7M"}`))
	require.Error(t, err)
	require.True(t, schederr.Is(err, schederr.InvalidSmartInterval))
}

func TestDecodeSchedule_PreciseInterval(t *testing.T) {
	t.Parallel()
	ds, err := schedulejson.DecodeSchedule([]byte(
		`{"interval":"7M","precise":true,"start":"2026-01-01 00:00:00Z"}`))
	require.NoError(t, err)
	require.Equal(t, schedule.KindPrecise, ds.Kind)
}

func TestDecodeSchedule_RelativeRequiresPrecise(t *testing.T) {
	t.Parallel()
	_, err := schedulejson.DecodeSchedule([]byte(`{"interval":"1H","relative":true}`))
	require.Error(t, err)
	require.True(t, schederr.Is(err, schederr.InvalidCombination))
}

func TestDecodeSchedule_RelativeWithPrecise(t *testing.T) {
	t.Parallel()
	ds, err := schedulejson.DecodeSchedule([]byte(
		`{"interval":"1H","precise":true,"relative":true,"start":"2026-01-01 00:00:00Z"}`))
	require.NoError(t, err)
	require.Equal(t, schedule.KindRelative, ds.Kind)
}

func TestDecodeSchedule_InconsistentTimeZone(t *testing.T) {
	t.Parallel()
	_, err := schedulejson.DecodeSchedule([]byte(
		`{"interval":"1H","precise":true,"start":"2026-01-01 00:00:00Z","end":"2026-01-02 00:00:00"}`))
	require.Error(t, err)
	require.True(t, schederr.Is(err, schederr.InconsistentTimeZone))
}

func TestDecodeSchedule_Skip(t *testing.T) {
	t.Parallel()
	ds, err := schedulejson.DecodeSchedule([]byte(`{"interval":"15M","skip":true}`))
	require.NoError(t, err)
	require.True(t, ds.Skip)
}

func TestDecodeSchedule_MalformedInterval(t *testing.T) {
	t.Parallel()
	_, err := schedulejson.DecodeSchedule([]byte(`{"interval":"garbage"}`))
	require.Error(t, err)
	require.True(t, schederr.Is(err, schederr.InvalidDuration))
}

func TestEncodeSchedule_OnceRoundTrips(t *testing.T) {
	t.Parallel()
	in := []byte(`{"start":"2026-01-01 00:00:00Z"}`)
	ds, err := schedulejson.DecodeSchedule(in)
	require.NoError(t, err)

	out, err := schedulejson.EncodeSchedule(ds)
	require.NoError(t, err)

	ds2, err := schedulejson.DecodeSchedule(out)
	require.NoError(t, err)
	require.Equal(t, ds, ds2)
}

func TestEncodeSchedule_PreciseIntervalRoundTrips(t *testing.T) {
	t.Parallel()
	in := []byte(`{"interval":"7M","precise":true,"relative":true,"start":"2026-01-01 00:00:00Z","end":"2026-01-02 00:00:00Z","skip":true}`)
	ds, err := schedulejson.DecodeSchedule(in)
	require.NoError(t, err)

	out, err := schedulejson.EncodeSchedule(ds)
	require.NoError(t, err)

	ds2, err := schedulejson.DecodeSchedule(out)
	require.NoError(t, err)
	require.Equal(t, ds, ds2)
}

func TestEncodeSchedule_SmartIntervalRoundTrips(t *testing.T) {
	t.Parallel()
	in := []byte(`{"interval":"30M"}`)
	ds, err := schedulejson.DecodeSchedule(in)
	require.NoError(t, err)

	out, err := schedulejson.EncodeSchedule(ds)
	require.NoError(t, err)

	ds2, err := schedulejson.DecodeSchedule(out)
	require.NoError(t, err)
	require.Equal(t, ds, ds2)
}
