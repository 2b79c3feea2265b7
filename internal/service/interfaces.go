package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/fittrack/pkg/entity"
)

// MetricsUpdate carries the fields a user edits by hand. Nil fields are left as they are.
type MetricsUpdate struct {
	SleepStart *time.Time `json:"sleep_start"`
	SleepEnd   *time.Time `json:"sleep_end"`
	// Removes both sleep bounds, SleepStart and SleepEnd are ignored
	ClearSleep      bool     `json:"clear_sleep"`
	Steps           *int     `json:"steps" validate:"omitempty,gte=0,lte=100000"`
	HydrationLiters *float64 `json:"hydration_liters" validate:"omitempty,gte=0"`
	WeightKg        *float64 `json:"weight_kg" validate:"omitempty,gte=0"`
}

// MealRequest adds a meal to a day. A zero Timestamp means now; only its clock
// time is used. An empty Type is replaced with a type suggested by the time.
type MealRequest struct {
	Timestamp   time.Time       `json:"timestamp"`
	Type        entity.MealType `json:"meal_type" validate:"max=50,single_line"`
	Location    string          `json:"location" validate:"max=200,single_line"`
	Description string          `json:"description" validate:"max=1000"`
}

type DayView struct {
	Record  *entity.DailyRecord `json:"record"`
	Summary entity.DaySummary   `json:"summary"`
}

type ReconcileServiceI interface {
	// Fills unset body metrics of the day from the provider and saves the record.
	// Only storage failures are returned, provider failures end up in the outcome
	ReconcileDay(ctx context.Context, day time.Time) (entity.DayOutcome, error)
	// Reconciles every day from start to end inclusive, continuing past failed days
	ReconcileRange(ctx context.Context, start, end time.Time) (*entity.SyncReport, error)
	// Reconciles the last daysBack days up to today
	AutoSync(ctx context.Context, daysBack int) (*entity.SyncReport, error)
}

type RecordsServiceI interface {
	GetDay(ctx context.Context, day time.Time) (*DayView, error)
	UpdateMetrics(ctx context.Context, day time.Time, req *MetricsUpdate) (*entity.DailyRecord, error)
	AddMeal(ctx context.Context, day time.Time, req *MealRequest) (*entity.Meal, error)
	DeleteMeal(ctx context.Context, id uuid.UUID) error
}

type StatsServiceI interface {
	// Statistics over records with from <= day < to
	RangeStats(ctx context.Context, from, to time.Time) (*entity.Stats, error)
	// Day summaries and statistics over records with from <= day < to
	Report(ctx context.Context, from, to time.Time) (*entity.Report, error)
	// Since-start and last-30-days weight deltas over all history
	Insights(ctx context.Context) (*entity.Insights, error)
}

type SamplesServiceI interface {
	// Validates and stores raw health samples
	Ingest(ctx context.Context, samples []entity.HealthSample) (int64, error)
}
