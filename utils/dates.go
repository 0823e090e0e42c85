// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DayWindow returns the [start, end) bounds of the calendar day containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := BeginningOfDay(t)
	return start, start.AddDate(0, 0, 1)
}
