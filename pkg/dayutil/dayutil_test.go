package dayutil_test

import (
	"testing"
	"time"

	"github.com/limbo/fittrack/pkg/dayutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2026, 3, 14, 23, 59, 59, 10, loc)
	day := dayutil.StartOfDay(ts)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), day)
	assert.Equal(t, day, dayutil.StartOfDay(day))
}

func TestNextDayAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Bucharest")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// clocks go forward on 2026-03-29
	day := time.Date(2026, 3, 29, 0, 0, 0, 0, loc)
	next := dayutil.NextDay(day)
	assert.Equal(t, time.Date(2026, 3, 30, 0, 0, 0, 0, loc), next)
	assert.Equal(t, 23*time.Hour, next.Sub(day))
}

func TestDayBounds(t *testing.T) {
	ts := time.Date(2026, 1, 31, 15, 4, 5, 0, time.UTC)
	start, end := dayutil.DayBounds(ts)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestSleepWindow(t *testing.T) {
	day := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	start, end := dayutil.SleepWindow(day)
	assert.Equal(t, time.Date(2026, 5, 9, 20, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC), end)
}

func TestSleepWindowAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	testCases := []struct {
		Desc  string
		Day   time.Time
		Start time.Time
		End   time.Time
		Span  time.Duration
	}{
		{
			Desc:  "clocks go forward",
			Day:   time.Date(2026, 3, 8, 0, 0, 0, 0, loc),
			Start: time.Date(2026, 3, 7, 20, 0, 0, 0, loc),
			End:   time.Date(2026, 3, 8, 12, 0, 0, 0, loc),
			Span:  15 * time.Hour,
		},
		{
			Desc:  "clocks go back",
			Day:   time.Date(2026, 11, 1, 0, 0, 0, 0, loc),
			Start: time.Date(2026, 10, 31, 20, 0, 0, 0, loc),
			End:   time.Date(2026, 11, 1, 12, 0, 0, 0, loc),
			Span:  17 * time.Hour,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			start, end := dayutil.SleepWindow(tc.Day)
			assert.True(t, tc.Start.Equal(start), "start %s", start)
			assert.True(t, tc.End.Equal(end), "end %s", end)
			assert.Equal(t, 12, end.In(loc).Hour())
			assert.Equal(t, tc.Span, end.Sub(start))
		})
	}
}

func TestEachDay(t *testing.T) {
	testCases := []struct {
		Desc  string
		Start time.Time
		End   time.Time
		Count int
	}{
		{
			Desc:  "five days inclusive",
			Start: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 1, 5, 1, 0, 0, 0, time.UTC),
			Count: 5,
		},
		{
			Desc:  "single day",
			Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 1, 1, 23, 0, 0, 0, time.UTC),
			Count: 1,
		},
		{
			Desc:  "end before start",
			Start: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Count: 0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			days := dayutil.EachDay(tc.Start, tc.End)
			assert.Len(t, days, tc.Count)
			for _, d := range days {
				assert.Equal(t, dayutil.StartOfDay(d), d)
			}
		})
	}
}

func TestCombineDayAndTime(t *testing.T) {
	day := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	clock := time.Date(1999, 9, 9, 13, 45, 30, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 3, 13, 45, 0, 0, time.UTC), dayutil.CombineDayAndTime(day, clock))
}

func TestFromDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	date := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 7, 4, 0, 0, 0, 0, loc), dayutil.FromDate(date, loc))
}

func TestParseDay(t *testing.T) {
	day, err := dayutil.ParseDay("2026-10-18", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", dayutil.FormatDay(day))

	_, err = dayutil.ParseDay("18.10.2026", time.UTC)
	assert.Error(t, err)
	_, err = dayutil.ParseDay("", time.UTC)
	assert.Error(t, err)
}
