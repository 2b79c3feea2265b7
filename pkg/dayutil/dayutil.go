// Package dayutil normalizes timestamps to calendar days.
// A day key is the local midnight of the timestamp's own location, so callers
// convert with t.In(loc) before asking for a day.
package dayutil

import (
	"errors"
	"time"
)

const DayLayout = "2006-01-02"

// Night window used to look for the main sleep of a day: 20:00 of the previous day
// until 12:00 of the day itself.
const (
	sleepWindowStartHour = 20
	sleepWindowEndHour   = 12
)

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextDay returns the start of the calendar day after t. Calendar arithmetic is used
// instead of adding 24h so DST transitions keep keys on midnight.
func NextDay(t time.Time) time.Time {
	return AddDays(t, 1)
}

func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// DayBounds returns [start, end) of the calendar day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, NextDay(start)
}

// SleepWindow uses wall clock hours, so the window keeps its bounds on DST days.
func SleepWindow(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	return time.Date(y, m, d-1, sleepWindowStartHour, 0, 0, 0, loc), time.Date(y, m, d, sleepWindowEndHour, 0, 0, 0, loc)
}

// EachDay lists the day keys from start to end, both inclusive.
// An empty slice is returned when end is before start.
func EachDay(start, end time.Time) []time.Time {
	from := StartOfDay(start)
	to := StartOfDay(end.In(from.Location()))
	days := make([]time.Time, 0)
	for d := from; !d.After(to); d = NextDay(d) {
		days = append(days, d)
	}
	return days
}

func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b.In(a.Location())))
}

// CombineDayAndTime keeps the calendar day of day and the hour and minute of clock.
func CombineDayAndTime(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	c := clock.In(day.Location())
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, day.Location())
}

// FromDate converts a value scanned from a DATE column (midnight UTC) to the day key
// of the same calendar date in loc.
func FromDate(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func ParseDay(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty day value")
	}
	t, err := time.ParseInLocation(DayLayout, value, loc)
	if err != nil {
		return time.Time{}, errors.New("parsing day error: " + err.Error())
	}
	return t, nil
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}
