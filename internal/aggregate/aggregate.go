// Package aggregate turns daily records into summaries and trend statistics.
// Nothing here fails: missing data is reported as a nil result.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/limbo/fittrack/pkg/dayutil"
	"github.com/limbo/fittrack/pkg/entity"
)

const (
	TrailingWindowDays = 30

	clockLayout     = "15:04"
	shortDateLayout = "Jan 2, 2006"
)

func ordered(records []*entity.DailyRecord) []*entity.DailyRecord {
	out := make([]*entity.DailyRecord, 0, len(records))
	for _, r := range records {
		if r != nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Day.Before(out[j].Day)
	})
	return out
}

func weighted(records []*entity.DailyRecord) []*entity.DailyRecord {
	out := make([]*entity.DailyRecord, 0, len(records))
	for _, r := range ordered(records) {
		if r.Metrics.WeightKg > 0 {
			out = append(out, r)
		}
	}
	return out
}

// WeightDelta is last minus first weight over records with a weight. It needs two
// distinct weighted days, a single measurement has no trend.
func WeightDelta(records []*entity.DailyRecord) *float64 {
	points := weighted(records)
	if len(points) < 2 {
		return nil
	}
	delta := points[len(points)-1].Metrics.WeightKg - points[0].Metrics.WeightKg
	return &delta
}

// AverageSleepHours only counts days with both sleep bounds and end after start.
func AverageSleepHours(records []*entity.DailyRecord) *float64 {
	var total float64
	var count int
	for _, r := range records {
		if r == nil {
			continue
		}
		interval, ok := r.Metrics.Sleep()
		if !ok {
			continue
		}
		total += interval.Duration().Hours()
		count++
	}
	if count == 0 {
		return nil
	}
	avg := total / float64(count)
	return &avg
}

// AverageSteps counts every day, unset days included as zero.
func AverageSteps(records []*entity.DailyRecord) *float64 {
	var total, count int
	for _, r := range records {
		if r == nil {
			continue
		}
		total += r.Metrics.Steps
		count++
	}
	if count == 0 {
		return nil
	}
	avg := float64(total) / float64(count)
	return &avg
}

// TrailingWindowDelta compares the last weighted day with the latest weighted day
// at or before windowDays calendar days earlier. Earlier records past that boundary
// are not used as a fallback.
func TrailingWindowDelta(records []*entity.DailyRecord, windowDays int) *entity.WeightDelta {
	points := weighted(records)
	if len(points) == 0 {
		return nil
	}
	last := points[len(points)-1]
	cutoff := dayutil.AddDays(last.Day, -windowDays)
	var baseline *entity.DailyRecord
	for _, p := range points {
		if p.Day.After(cutoff) {
			break
		}
		baseline = p
	}
	if baseline == nil {
		return nil
	}
	return NewWeightDelta(baseline, last)
}

// SinceStartDelta compares the first and the last weighted days.
func SinceStartDelta(records []*entity.DailyRecord) *entity.WeightDelta {
	points := weighted(records)
	if len(points) < 2 {
		return nil
	}
	return NewWeightDelta(points[0], points[len(points)-1])
}

func NewWeightDelta(baseline, last *entity.DailyRecord) *entity.WeightDelta {
	d := &entity.WeightDelta{
		DeltaKg:    last.Metrics.WeightKg - baseline.Metrics.WeightKg,
		BaselineKg: baseline.Metrics.WeightKg,
		StartDay:   baseline.Day,
		EndDay:     last.Day,
	}
	d.DeltaText = DeltaText(d.DeltaKg)
	d.ContextText = ContextText(d)
	return d
}

// DeltaText renders "+1.2 kg", "-0.8 kg" or "0.0 kg".
func DeltaText(deltaKg float64) string {
	sign := ""
	if deltaKg > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f kg", sign, deltaKg)
}

func ContextText(d *entity.WeightDelta) string {
	from := d.StartDay.Format(shortDateLayout)
	to := d.EndDay.Format(shortDateLayout)
	if d.DeltaKg == 0 {
		return fmt.Sprintf("From %s to %s (unchanged)", from, to)
	}
	verb := "up"
	if d.DeltaKg < 0 {
		verb = "down"
	}
	pct := 0.0
	if d.BaselineKg > 0 {
		pct = math.Abs(d.DeltaKg) / d.BaselineKg * 100
	}
	return fmt.Sprintf("%s %.1f kg (%.1f%%) from %s to %s", verb, math.Abs(d.DeltaKg), pct, from, to)
}

func RangeStatistics(records []*entity.DailyRecord, from, to time.Time) entity.Stats {
	return entity.Stats{
		From:              from,
		To:                to,
		Days:              len(ordered(records)),
		WeightDelta:       WeightDelta(records),
		AverageSleepHours: AverageSleepHours(records),
		AverageSteps:      AverageSteps(records),
		Trailing30:        TrailingWindowDelta(records, TrailingWindowDays),
	}
}

func Insights(records []*entity.DailyRecord) entity.Insights {
	return entity.Insights{
		SinceStart: SinceStartDelta(records),
		LastMonth:  TrailingWindowDelta(records, TrailingWindowDays),
	}
}

func DaySummary(record *entity.DailyRecord) entity.DaySummary {
	summary := entity.DaySummary{
		Day:             record.Day,
		Meals:           make([]entity.MealLine, 0, len(record.Meals)),
		Steps:           record.Metrics.Steps,
		WeightKg:        record.Metrics.WeightKg,
		HydrationLiters: record.Metrics.HydrationLiters,
	}
	meals := make([]entity.Meal, len(record.Meals))
	copy(meals, record.Meals)
	sort.SliceStable(meals, func(i, j int) bool {
		return meals[i].Timestamp.Before(meals[j].Timestamp)
	})
	for _, m := range meals {
		summary.Meals = append(summary.Meals, entity.MealLine{Meal: m, Text: MealLineText(m)})
	}
	if interval, ok := record.Metrics.Sleep(); ok {
		summary.Sleep = SleepSummary(interval)
	}
	return summary
}

// MealLineText renders "08:05 | Breakfast | Home | Oats", skipping empty parts.
func MealLineText(m entity.Meal) string {
	mealType := strings.TrimSpace(string(m.Type))
	if mealType == "" {
		mealType = "Meal"
	}
	parts := []string{m.Timestamp.Format(clockLayout), mealType}
	for _, p := range []string{m.Location, m.Description} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

// SleepSummary renders "22:45 → 06:30  (7h 45m)".
func SleepSummary(interval entity.SleepInterval) *entity.SleepSummary {
	total := int(interval.Duration() / time.Minute)
	if total < 0 {
		total = 0
	}
	s := &entity.SleepSummary{
		Start:   interval.Start,
		End:     interval.End,
		Hours:   total / 60,
		Minutes: total % 60,
	}
	s.Text = fmt.Sprintf("%s → %s  (%dh %dm)", interval.Start.Format(clockLayout), interval.End.Format(clockLayout), s.Hours, s.Minutes)
	return s
}
