// Package timeutil implements the C5 time codec: the canonical timestamp
// and duration string grammars the scheduling core's JSON boundary uses
// (spec.md §6), parsed explicitly against UTC rather than the process's
// ambient TZ (Design Notes open question 2).
package timeutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/malbeclabs/activity-scheduler/internal/schederr"
)

// timestampLayout is "YYYY-MM-DD HH:MM:SS", spec.md §6. A trailing "Z"
// is not part of the layout; its presence or absence is the UTC flag.
const timestampLayout = "2006-01-02 15:04:05"

// ParseTimestamp parses a canonical timestamp string into Unix epoch
// seconds, reporting whether the string carried the trailing "Z" that
// marks it explicitly UTC (as opposed to the scheduler's local frame).
// Parsing is always done against time.UTC regardless of process TZ.
func ParseTimestamp(s string) (epoch int64, isUTC bool, err error) {
	isUTC = strings.HasSuffix(s, "Z")
	body := strings.TrimSuffix(s, "Z")
	t, perr := time.ParseInLocation(timestampLayout, body, time.UTC)
	if perr != nil {
		return 0, false, schederr.Wrap(schederr.InvalidTime, "timeutil.ParseTimestamp",
			fmt.Sprintf("timestamp %q", s), perr)
	}
	return t.Unix(), isUTC, nil
}

// FormatTimestamp is the inverse of ParseTimestamp.
func FormatTimestamp(epoch int64, isUTC bool) string {
	s := time.Unix(epoch, 0).UTC().Format(timestampLayout)
	if isUTC {
		s += "Z"
	}
	return s
}
