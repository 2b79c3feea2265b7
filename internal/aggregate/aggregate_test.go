package aggregate_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/fittrack/internal/aggregate"
	"github.com/limbo/fittrack/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return base.AddDate(0, 0, n)
}

func record(n int, metrics entity.BodyMetrics) *entity.DailyRecord {
	id := uuid.New()
	metrics.RecordID = id
	return &entity.DailyRecord{ID: id, Day: day(n), Metrics: metrics}
}

func weight(n int, kg float64) *entity.DailyRecord {
	return record(n, entity.BodyMetrics{WeightKg: kg})
}

func sleep(n int, from, to time.Time) *entity.DailyRecord {
	return record(n, entity.BodyMetrics{SleepStart: &from, SleepEnd: &to})
}

func TestWeightDelta(t *testing.T) {
	testCases := []struct {
		Desc    string
		Records []*entity.DailyRecord
		Delta   *float64
	}{
		{
			Desc:    "first and last weighted day",
			Records: []*entity.DailyRecord{weight(1, 80.0), record(2, entity.BodyMetrics{Steps: 100}), weight(5, 78.5)},
			Delta:   ptr(-1.5),
		},
		{
			Desc:    "unordered input",
			Records: []*entity.DailyRecord{weight(5, 78.5), weight(1, 80.0)},
			Delta:   ptr(-1.5),
		},
		{
			Desc:    "single weighted day is no data",
			Records: []*entity.DailyRecord{weight(1, 80.0), record(2, entity.BodyMetrics{})},
		},
		{
			Desc: "no records",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.Delta, aggregate.WeightDelta(tc.Records))
		})
	}
}

func TestAverageSleepHours(t *testing.T) {
	evening := day(0).Add(-90 * time.Minute)
	records := []*entity.DailyRecord{
		sleep(0, evening, evening.Add(8*time.Hour)),
		sleep(1, day(1).Add(-time.Hour), day(1).Add(6*time.Hour)),
		// inverted pair is ignored
		sleep(2, day(2).Add(7*time.Hour), day(2).Add(-time.Hour)),
		// only one bound set is ignored
		record(3, entity.BodyMetrics{SleepStart: &evening}),
		record(4, entity.BodyMetrics{Steps: 10}),
	}
	avg := aggregate.AverageSleepHours(records)
	require.NotNil(t, avg)
	assert.InDelta(t, 7.5, *avg, 1e-9)

	assert.Nil(t, aggregate.AverageSleepHours(records[2:]))
}

func TestAverageSteps(t *testing.T) {
	records := []*entity.DailyRecord{
		record(0, entity.BodyMetrics{Steps: 0}),
		record(1, entity.BodyMetrics{Steps: 5000}),
		record(2, entity.BodyMetrics{Steps: 10000}),
	}
	avg := aggregate.AverageSteps(records)
	require.NotNil(t, avg)
	assert.Equal(t, 5000.0, *avg)
	assert.Nil(t, aggregate.AverageSteps(nil))
}

func TestTrailingWindowDelta(t *testing.T) {
	testCases := []struct {
		Desc     string
		Records  []*entity.DailyRecord
		Delta    *float64
		Baseline time.Time
	}{
		{
			Desc:     "baseline before the boundary",
			Records:  []*entity.DailyRecord{weight(0, 80.0), weight(35, 76.0)},
			Delta:    ptr(-4.0),
			Baseline: day(0),
		},
		{
			Desc:     "baseline exactly on the boundary",
			Records:  []*entity.DailyRecord{weight(0, 81.0), weight(5, 79.0), weight(20, 78.0), weight(35, 76.0)},
			Delta:    ptr(-3.0),
			Baseline: day(5),
		},
		{
			Desc:    "only records inside the window",
			Records: []*entity.DailyRecord{weight(10, 80.0), weight(35, 76.0)},
		},
		{
			Desc:     "unweighted days are skipped for last",
			Records:  []*entity.DailyRecord{weight(0, 80.0), weight(35, 76.0), record(40, entity.BodyMetrics{Steps: 3})},
			Delta:    ptr(-4.0),
			Baseline: day(0),
		},
		{
			Desc:    "no weights",
			Records: []*entity.DailyRecord{record(0, entity.BodyMetrics{})},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			delta := aggregate.TrailingWindowDelta(tc.Records, 30)
			if tc.Delta == nil {
				assert.Nil(t, delta)
				return
			}
			require.NotNil(t, delta)
			assert.InDelta(t, *tc.Delta, delta.DeltaKg, 1e-9)
			assert.Equal(t, tc.Baseline, delta.StartDay)
			assert.Equal(t, day(35), delta.EndDay)
		})
	}
}

func TestDeltaTexts(t *testing.T) {
	loss := aggregate.NewWeightDelta(weight(0, 80.0), weight(4, 78.5))
	assert.Equal(t, "-1.5 kg", loss.DeltaText)
	assert.Equal(t, "down 1.5 kg (1.9%) from Jan 1, 2026 to Jan 5, 2026", loss.ContextText)

	gain := aggregate.NewWeightDelta(weight(0, 70.0), weight(1, 70.7))
	assert.Equal(t, "+0.7 kg", gain.DeltaText)
	assert.Contains(t, gain.ContextText, "up 0.7 kg")

	same := aggregate.NewWeightDelta(weight(0, 70.0), weight(1, 70.0))
	assert.Equal(t, "0.0 kg", same.DeltaText)
	assert.Equal(t, "From Jan 1, 2026 to Jan 2, 2026 (unchanged)", same.ContextText)
}

func TestRangeStatistics(t *testing.T) {
	records := []*entity.DailyRecord{
		record(0, entity.BodyMetrics{WeightKg: 80.0, Steps: 4000}),
		record(1, entity.BodyMetrics{Steps: 6000}),
	}
	stats := aggregate.RangeStatistics(records, day(0), day(2))
	assert.Equal(t, 2, stats.Days)
	assert.Nil(t, stats.WeightDelta)
	assert.Nil(t, stats.AverageSleepHours)
	require.NotNil(t, stats.AverageSteps)
	assert.Equal(t, 5000.0, *stats.AverageSteps)
	assert.Nil(t, stats.Trailing30)
}

func TestInsights(t *testing.T) {
	insights := aggregate.Insights([]*entity.DailyRecord{weight(0, 90.0), weight(10, 88.0), weight(45, 85.0)})
	require.NotNil(t, insights.SinceStart)
	assert.InDelta(t, -5.0, insights.SinceStart.DeltaKg, 1e-9)
	require.NotNil(t, insights.LastMonth)
	assert.InDelta(t, -3.0, insights.LastMonth.DeltaKg, 1e-9)
	assert.Equal(t, day(10), insights.LastMonth.StartDay)
}

func TestDaySummary(t *testing.T) {
	rec := record(0, entity.BodyMetrics{Steps: 8000, WeightKg: 72.3, HydrationLiters: 2})
	sleepStart := day(0).Add(-75 * time.Minute)
	sleepEnd := day(0).Add(6*time.Hour + 30*time.Minute)
	rec.Metrics.SleepStart = &sleepStart
	rec.Metrics.SleepEnd = &sleepEnd
	rec.Meals = []entity.Meal{
		{Timestamp: day(0).Add(19 * time.Hour), Type: entity.MealDinner, Description: " Pasta "},
		{Timestamp: day(0).Add(8 * time.Hour), Type: entity.MealBreakfast, Location: "Home", Description: "Oats"},
		{Timestamp: day(0).Add(16 * time.Hour)},
	}
	summary := aggregate.DaySummary(rec)
	require.Len(t, summary.Meals, 3)
	assert.Equal(t, "08:00 | Breakfast | Home | Oats", summary.Meals[0].Text)
	assert.Equal(t, "16:00 | Meal", summary.Meals[1].Text)
	assert.Equal(t, "19:00 | Dinner | Pasta", summary.Meals[2].Text)
	require.NotNil(t, summary.Sleep)
	assert.Equal(t, 7, summary.Sleep.Hours)
	assert.Equal(t, 45, summary.Sleep.Minutes)
	assert.Equal(t, "22:45 → 06:30  (7h 45m)", summary.Sleep.Text)
	assert.Equal(t, 8000, summary.Steps)
	// source record keeps its order
	assert.Equal(t, entity.MealDinner, rec.Meals[0].Type)

	rec.Metrics.SleepEnd = nil
	assert.Nil(t, aggregate.DaySummary(rec).Sleep)
}

func ptr(v float64) *float64 {
	return &v
}
