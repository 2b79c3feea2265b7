package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/fittrack/internal/aggregate"
	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/limbo/fittrack/internal/repository"
	"github.com/limbo/fittrack/pkg/dayutil"
	"github.com/limbo/fittrack/pkg/entity"
	"go.uber.org/zap"
)

// RecordsService edits a day by hand through a load, modify, save cycle.
type RecordsService struct {
	repo   repository.RecordsRepositoryI
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

func NewRecordsService(recordsRepo repository.RecordsRepositoryI, loc *time.Location, logger *zap.Logger) *RecordsService {
	if recordsRepo == nil {
		log.Fatal("provided nil recordsRepo")
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsService{
		repo:   recordsRepo,
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for meals logged without a time.
func (rs *RecordsService) WithClock(now func() time.Time) *RecordsService {
	rs.now = now
	return rs
}

func (rs *RecordsService) dayKey(day time.Time) time.Time {
	return dayutil.StartOfDay(day.In(rs.loc))
}

// GetDay opens a day, creating its record on first access.
func (rs *RecordsService) GetDay(ctx context.Context, day time.Time) (*DayView, error) {
	record, err := rs.repo.GetOrCreate(ctx, rs.dayKey(day))
	if err != nil {
		return nil, &errorvalues.StorageError{Op: "get or create", Err: err}
	}
	return &DayView{
		Record:  record,
		Summary: aggregate.DaySummary(record),
	}, nil
}

func (rs *RecordsService) UpdateMetrics(ctx context.Context, day time.Time, req *MetricsUpdate) (*entity.DailyRecord, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	record, err := rs.repo.GetOrCreate(ctx, rs.dayKey(day))
	if err != nil {
		return nil, &errorvalues.StorageError{Op: "get or create", Err: err}
	}
	metrics := record.Metrics
	if req.ClearSleep {
		metrics.SleepStart, metrics.SleepEnd = nil, nil
	} else {
		if req.SleepStart != nil {
			start := req.SleepStart.In(rs.loc)
			metrics.SleepStart = &start
		}
		if req.SleepEnd != nil {
			end := req.SleepEnd.In(rs.loc)
			metrics.SleepEnd = &end
		}
	}
	if req.Steps != nil {
		metrics.Steps = *req.Steps
	}
	if req.HydrationLiters != nil {
		metrics.HydrationLiters = *req.HydrationLiters
	}
	if req.WeightKg != nil {
		metrics.WeightKg = *req.WeightKg
	}
	record.Metrics = metrics
	if err = rs.repo.Save(ctx, record); err != nil {
		rs.logger.Error("saving body metrics failed", zap.Time("day", record.Day), zap.Error(err))
		return nil, &errorvalues.StorageError{Op: "save", Err: err}
	}
	return record, nil
}

func (rs *RecordsService) AddMeal(ctx context.Context, day time.Time, req *MealRequest) (*entity.Meal, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	day = rs.dayKey(day)
	clock := req.Timestamp
	if clock.IsZero() {
		clock = rs.now()
	}
	meal := &entity.Meal{
		Timestamp:   dayutil.CombineDayAndTime(day, clock),
		Type:        req.Type,
		Location:    req.Location,
		Description: req.Description,
	}
	if meal.Type == "" {
		meal.Type = SuggestMealType(meal.Timestamp)
	}
	record, err := rs.repo.GetOrCreate(ctx, day)
	if err != nil {
		return nil, &errorvalues.StorageError{Op: "get or create", Err: err}
	}
	if err = rs.repo.AddMeal(ctx, record.ID, meal); err != nil {
		if errors.Is(err, errorvalues.ErrRecordNotFound) {
			return nil, err
		}
		return nil, &errorvalues.StorageError{Op: "add meal", Err: err}
	}
	return meal, nil
}

func (rs *RecordsService) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	err := rs.repo.DeleteMeal(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMealNotFound) {
			return err
		}
		return &errorvalues.StorageError{Op: "delete meal", Err: err}
	}
	return nil
}

// SuggestMealType picks a meal type from the hour the meal was eaten.
func SuggestMealType(t time.Time) entity.MealType {
	switch h := t.Hour(); {
	case h >= 5 && h <= 10:
		return entity.MealBreakfast
	case h >= 11 && h <= 15:
		return entity.MealLunch
	case h >= 18 && h <= 22:
		return entity.MealDinner
	default:
		return entity.MealSnack
	}
}
