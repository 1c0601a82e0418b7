package customer

import (
	"strings"
	"time"
)

// TimeLayout is the canonical cell layout for stage and note timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// Older sheets mix separators and sometimes hold date-only cells.
var timeLayouts = []string{
	TimeLayout,
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// ParseTime parses a timestamp cell. Empty and unrecognized values report
// absent rather than an error: hand-edited sheets contain both.
func ParseTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTime renders t as a timestamp cell.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
