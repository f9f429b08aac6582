package sqlite

import (
	"fmt"
	"time"
)

// timeFormat is RFC3339 with fixed-width nanoseconds, so stored values
// sort lexically in time order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// parseTime parses a column written by formatTime.
func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(timeFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}
