package entity

import (
	"time"

	"github.com/google/uuid"
)

type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

// Meal types are free text; these are only the ones the app suggests.
var KnownMealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

type Meal struct {
	ID          uuid.UUID `json:"id"`
	RecordID    uuid.UUID `json:"record_id"`
	Timestamp   time.Time `json:"timestamp"`
	Type        MealType  `json:"meal_type"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

// BodyMetrics is the daily health snapshot. Zero in Steps, HydrationLiters and
// WeightKg means "not recorded yet"; merges from the health provider rely on it.
type BodyMetrics struct {
	RecordID        uuid.UUID  `json:"record_id"`
	SleepStart      *time.Time `json:"sleep_start"`
	SleepEnd        *time.Time `json:"sleep_end"`
	Steps           int        `json:"steps"`
	HydrationLiters float64    `json:"hydration_liters"`
	WeightKg        float64    `json:"weight_kg"`
}

// Sleep returns the sleep pair when both bounds are set and end is after start.
func (bm *BodyMetrics) Sleep() (SleepInterval, bool) {
	if bm.SleepStart == nil || bm.SleepEnd == nil || !bm.SleepEnd.After(*bm.SleepStart) {
		return SleepInterval{}, false
	}
	return SleepInterval{Start: *bm.SleepStart, End: *bm.SleepEnd}, true
}

type DailyRecord struct {
	ID        uuid.UUID   `json:"id"`
	Day       time.Time   `json:"day"`
	Meals     []Meal      `json:"meals"`
	Metrics   BodyMetrics `json:"metrics"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type SleepInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (si SleepInterval) Duration() time.Duration {
	return si.End.Sub(si.Start)
}

type SampleKind string

const (
	SampleSteps    SampleKind = "steps"
	SampleWater    SampleKind = "water"
	SampleBodyMass SampleKind = "body_mass"
	SampleSleep    SampleKind = "sleep"
)

// Sleep categories counted as being asleep.
var AsleepCategories = []string{"asleep_unspecified", "asleep_core", "asleep_deep", "asleep_rem"}

// HealthSample is one raw sample exported from a health data source.
// Value is count for steps, liters for water and kilograms for body mass; sleep
// samples carry their stage in Category.
type HealthSample struct {
	ID       uuid.UUID  `json:"id"`
	Kind     SampleKind `json:"kind" validate:"required,oneof=steps water body_mass sleep"`
	Value    float64    `json:"value" validate:"gte=0"`
	Category string     `json:"category,omitempty"`
	StartAt  time.Time  `json:"start_at" validate:"required"`
	EndAt    time.Time  `json:"end_at" validate:"required,gtefield=StartAt"`
	Source   string     `json:"source,omitempty"`
}

type SleepSummary struct {
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Hours   int       `json:"hours"`
	Minutes int       `json:"minutes"`
	Text    string    `json:"text"`
}

type MealLine struct {
	Meal
	Text string `json:"text"`
}

type DaySummary struct {
	Day             time.Time     `json:"day"`
	Meals           []MealLine    `json:"meals"`
	Sleep           *SleepSummary `json:"sleep,omitempty"`
	Steps           int           `json:"steps"`
	WeightKg        float64       `json:"weight_kg"`
	HydrationLiters float64       `json:"hydration_liters"`
}

// WeightDelta compares the latest weighted day with a baseline day.
type WeightDelta struct {
	DeltaKg     float64   `json:"delta_kg"`
	BaselineKg  float64   `json:"baseline_kg"`
	StartDay    time.Time `json:"start_day"`
	EndDay      time.Time `json:"end_day"`
	DeltaText   string    `json:"delta_text"`
	ContextText string    `json:"context_text"`
}

// Stats over a range of records. Nil fields mean there was not enough data.
type Stats struct {
	From              time.Time    `json:"from"`
	To                time.Time    `json:"to"`
	Days              int          `json:"days"`
	WeightDelta       *float64     `json:"weight_delta"`
	AverageSleepHours *float64     `json:"average_sleep_hours"`
	AverageSteps      *float64     `json:"average_steps"`
	Trailing30        *WeightDelta `json:"trailing_30"`
}

type Insights struct {
	SinceStart *WeightDelta `json:"since_start"`
	LastMonth  *WeightDelta `json:"last_30_days"`
}

type Report struct {
	From  time.Time    `json:"from"`
	To    time.Time    `json:"to"`
	Days  []DaySummary `json:"days"`
	Stats Stats        `json:"stats"`
}

// DayOutcome describes one reconciled day: which fields were filled from the
// provider and which provider queries failed.
type DayOutcome struct {
	Day      time.Time         `json:"day"`
	Filled   []string          `json:"filled"`
	Failures map[string]string `json:"failures,omitempty"`
}

func (o *DayOutcome) Partial() bool {
	return len(o.Failures) > 0
}

type SyncReport struct {
	From   time.Time         `json:"from"`
	To     time.Time         `json:"to"`
	Days   []DayOutcome      `json:"days"`
	Failed map[string]string `json:"failed,omitempty"`
}
