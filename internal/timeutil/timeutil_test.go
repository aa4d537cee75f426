package timeutil_test

import (
	"testing"
	"time"

	"github.com/malbeclabs/activity-scheduler/internal/schederr"
	"github.com/malbeclabs/activity-scheduler/internal/timeutil"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"utc", "2026-07-30 12:00:00Z"},
		{"local", "2026-07-30 12:00:00"},
		{"midnight", "2000-01-01 00:00:00Z"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			epoch, isUTC, err := timeutil.ParseTimestamp(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.in, timeutil.FormatTimestamp(epoch, isUTC))
		})
	}
}

func TestParseTimestamp_ExplicitUTCNotAmbientTZ(t *testing.T) {
	t.Parallel()
	epoch, isUTC, err := timeutil.ParseTimestamp("2026-01-01 00:00:00Z")
	require.NoError(t, err)
	require.True(t, isUTC)
	require.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Unix(), epoch)
}

func TestParseTimestamp_Malformed(t *testing.T) {
	t.Parallel()
	_, _, err := timeutil.ParseTimestamp("not-a-timestamp")
	require.Error(t, err)
	require.True(t, schederr.Is(err, schederr.InvalidTime))
}

func TestParseDuration_Valid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"1D", 24 * time.Hour},
		{"2H30M", 2*time.Hour + 30*time.Minute},
		{"45S", 45 * time.Second},
		{"1d2h3m4s", 26*time.Hour + 3*time.Minute + 4*time.Second},
	}
	for _, tc := range tests {
		got, err := timeutil.ParseDuration(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}
}

func TestParseDuration_ZeroTotalIsInvalid(t *testing.T) {
	t.Parallel()
	_, err := timeutil.ParseDuration("")
	require.Error(t, err)
	require.True(t, schederr.Is(err, schederr.InvalidDuration))

	_, err = timeutil.ParseDuration("0D0H0M0S")
	require.Error(t, err)
	require.True(t, schederr.Is(err, schederr.InvalidDuration))
}

func TestParseDuration_Malformed(t *testing.T) {
	t.Parallel()
	_, err := timeutil.ParseDuration("5X")
	require.Error(t, err)
	require.True(t, schederr.Is(err, schederr.InvalidDuration))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()
	require.Equal(t, "1D2H3M4S", timeutil.FormatDuration(26*time.Hour+3*time.Minute+4*time.Second))
	require.Equal(t, "0S", timeutil.FormatDuration(0))
	require.Equal(t, "5M", timeutil.FormatDuration(5*time.Minute))
}

func TestValidateSmartInterval(t *testing.T) {
	t.Parallel()
	for _, mins := range []int64{5, 10, 15, 20, 30, 60, 180, 360, 720, 1440, 2880} {
		require.NoError(t, timeutil.ValidateSmartInterval(time.Duration(mins)*time.Minute), "mins=%d", mins)
	}
	for _, mins := range []int64{1, 7, 45, 90, 200} {
		err := timeutil.ValidateSmartInterval(time.Duration(mins) * time.Minute)
		require.Error(t, err, "mins=%d", mins)
		require.True(t, schederr.Is(err, schederr.InvalidSmartInterval))
	}
	require.Error(t, timeutil.ValidateSmartInterval(90*time.Second))
	require.Error(t, timeutil.ValidateSmartInterval(0))
	require.Error(t, timeutil.ValidateSmartInterval(-time.Minute))
}
