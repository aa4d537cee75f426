package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/malbeclabs/activity-scheduler/internal/schederr"
)

// durationRe matches the "<N>D<N>H<N>M<N>S" grammar, every component
// optional and case-insensitive, spec.md §6.
var durationRe = regexp.MustCompile(`(?i)^(?:(\d+)D)?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

var durationUnits = [4]time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}

// ParseDuration parses a duration string. At least one component must be
// present and the total must be nonzero; an all-empty or all-zero match
// is InvalidDuration.
func ParseDuration(s string) (time.Duration, error) {
	m := durationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, schederr.New(schederr.InvalidDuration, "timeutil.ParseDuration",
			fmt.Sprintf("malformed duration %q", s))
	}
	var total time.Duration
	for i, unit := range durationUnits {
		group := m[i+1]
		if group == "" {
			continue
		}
		n, err := strconv.ParseUint(group, 10, 32)
		if err != nil {
			return 0, schederr.Wrap(schederr.InvalidDuration, "timeutil.ParseDuration",
				fmt.Sprintf("component %q in %q", group, s), err)
		}
		total += time.Duration(n) * unit
	}
	if total == 0 {
		return 0, schederr.New(schederr.InvalidDuration, "timeutil.ParseDuration",
			fmt.Sprintf("duration %q has zero total", s))
	}
	return total, nil
}

// FormatDuration is the inverse of ParseDuration, emitting only the
// nonzero components (with "0S" as the floor for an exact-zero input).
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	mins := d / time.Minute
	d -= mins * time.Minute
	secs := d / time.Second

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if mins > 0 {
		fmt.Fprintf(&b, "%dM", mins)
	}
	if secs > 0 || b.Len() == 0 {
		fmt.Fprintf(&b, "%dS", secs)
	}
	return b.String()
}

// smartIntervalMinutes is the allow-list of minute-granularity smart
// intervals, spec.md §6; any whole-day multiple is also allowed.
var smartIntervalMinutes = map[int64]bool{
	5: true, 10: true, 15: true, 20: true, 30: true,
	60: true, 180: true, 360: true, 720: true,
}

// ValidateSmartInterval reports whether d is a legal smart-schedule
// interval: a whole number of minutes that is either a whole-day
// multiple or in the fixed minute allow-list.
func ValidateSmartInterval(d time.Duration) error {
	if d <= 0 {
		return schederr.New(schederr.InvalidSmartInterval, "timeutil.ValidateSmartInterval",
			"interval must be positive")
	}
	if d%time.Minute != 0 {
		return schederr.New(schederr.InvalidSmartInterval, "timeutil.ValidateSmartInterval",
			"interval must be a whole number of minutes")
	}
	mins := int64(d / time.Minute)
	if mins%1440 == 0 || smartIntervalMinutes[mins] {
		return nil
	}
	return schederr.New(schederr.InvalidSmartInterval, "timeutil.ValidateSmartInterval",
		fmt.Sprintf("%d minutes is not a valid smart interval", mins))
}
