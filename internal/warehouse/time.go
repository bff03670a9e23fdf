package warehouse

import "time"

// TimeParts returns the calendar breakdown the time transform derives for
// an epoch-millisecond event timestamp: hour, day of month, ISO week
// number, month, year, and weekday with Sunday=0 (the EXTRACT(DOW)
// convention). The conversion is UTC and truncates to whole seconds, just
// like the SQL expression. Integration tests use this as the independent
// reference computation.
func TimeParts(epochMS int64) (hour, day, week, month, year, weekday int) {
	t := time.Unix(epochMS/1000, 0).UTC()
	_, isoWeek := t.ISOWeek()
	return t.Hour(), t.Day(), isoWeek, int(t.Month()), t.Year(), int(t.Weekday())
}
