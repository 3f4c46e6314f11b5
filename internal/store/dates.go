package store

import "time"

// DateOnly truncates a timestamp to its calendar date in UTC. Date columns
// (due_date, start_date, end_date) are always written and queried at this
// precision so equality and range comparisons behave like date comparisons.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
