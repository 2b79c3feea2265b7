package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/limbo/fittrack/internal/provider"
	"github.com/limbo/fittrack/internal/repository"
	"github.com/limbo/fittrack/pkg/dayutil"
	"github.com/limbo/fittrack/pkg/entity"
	"go.uber.org/zap"
)

const DefaultAutoSyncDays = 30

// MaxSyncRangeDays bounds how many days one range sync may create records for.
const MaxSyncRangeDays = 366

// Body metrics fields reported in a DayOutcome
const (
	FieldSleep     = "sleep"
	FieldSteps     = "steps"
	FieldHydration = "hydration"
	FieldWeight    = "weight"
)

// ReconcileService merges provider samples into daily records without
// overwriting anything already recorded. It is the only writer of synced
// metrics: days are processed one at a time under a single lock.
type ReconcileService struct {
	store    repository.RecordsRepositoryI
	provider provider.SampleProviderI
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
	mu       sync.Mutex
}

func NewReconcileService(store repository.RecordsRepositoryI, samples provider.SampleProviderI, loc *time.Location, logger *zap.Logger) *ReconcileService {
	if store == nil || samples == nil {
		log.Fatal("provided nil store or provider")
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconcileService{
		store:    store,
		provider: samples,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to find today for AutoSync.
func (rs *ReconcileService) WithClock(now func() time.Time) *ReconcileService {
	rs.now = now
	return rs
}

func (rs *ReconcileService) ReconcileDay(ctx context.Context, day time.Time) (entity.DayOutcome, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.reconcileDay(ctx, dayutil.StartOfDay(day.In(rs.loc)))
}

func (rs *ReconcileService) reconcileDay(ctx context.Context, day time.Time) (entity.DayOutcome, error) {
	outcome := entity.DayOutcome{Day: day, Filled: []string{}}
	record, err := rs.store.GetOrCreate(ctx, day)
	if err != nil {
		rs.logger.Error("loading daily record failed", zap.Time("day", day), zap.Error(err))
		return outcome, &errorvalues.StorageError{Op: "get or create", Err: err}
	}
	metrics := record.Metrics

	// The pair is only filled when neither bound was entered
	if metrics.SleepStart == nil && metrics.SleepEnd == nil {
		interval, err := rs.provider.MainSleepInterval(ctx, day)
		switch {
		case err != nil:
			rs.providerFailed(&outcome, FieldSleep, err)
		case interval != nil:
			start, end := interval.Start, interval.End
			metrics.SleepStart, metrics.SleepEnd = &start, &end
			outcome.Filled = append(outcome.Filled, FieldSleep)
		}
	}

	// Zero steps from the provider is assigned too, the day stays unset and is
	// queried again on the next sync
	if metrics.Steps == 0 {
		steps, err := rs.provider.StepsTotal(ctx, day)
		if err != nil {
			rs.providerFailed(&outcome, FieldSteps, err)
		} else {
			metrics.Steps = steps
			if steps > 0 {
				outcome.Filled = append(outcome.Filled, FieldSteps)
			}
		}
	}

	if metrics.HydrationLiters == 0 {
		liters, err := rs.provider.HydrationLiters(ctx, day)
		switch {
		case err != nil:
			rs.providerFailed(&outcome, FieldHydration, err)
		case liters > 0:
			metrics.HydrationLiters = liters
			outcome.Filled = append(outcome.Filled, FieldHydration)
		}
	}

	if metrics.WeightKg == 0 {
		weight, err := rs.provider.LatestWeightKg(ctx, &day)
		switch {
		case err != nil:
			rs.providerFailed(&outcome, FieldWeight, err)
		case weight != nil && *weight > 0:
			metrics.WeightKg = *weight
			outcome.Filled = append(outcome.Filled, FieldWeight)
		}
	}

	record.Metrics = metrics
	if err = rs.store.Save(ctx, record); err != nil {
		rs.logger.Error("saving reconciled record failed", zap.Time("day", day), zap.Error(err))
		return outcome, &errorvalues.StorageError{Op: "save", Err: err}
	}
	rs.logger.Debug("day reconciled", zap.Time("day", day), zap.Strings("filled", outcome.Filled))
	return outcome, nil
}

func (rs *ReconcileService) providerFailed(outcome *entity.DayOutcome, field string, err error) {
	rs.logger.Warn("provider query failed, treated as no data",
		zap.Time("day", outcome.Day),
		zap.String("field", field),
		zap.Error(err),
	)
	if outcome.Failures == nil {
		outcome.Failures = make(map[string]string)
	}
	outcome.Failures[field] = err.Error()
}

// ReconcileRange stops between days once ctx is done. Days already reconciled
// stay saved and the partial report is returned with the context error.
func (rs *ReconcileService) ReconcileRange(ctx context.Context, start, end time.Time) (*entity.SyncReport, error) {
	start = dayutil.StartOfDay(start.In(rs.loc))
	end = dayutil.StartOfDay(end.In(rs.loc))
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end is before start", errorvalues.ErrInvalidRange)
	}
	if !end.Before(dayutil.AddDays(start, MaxSyncRangeDays)) {
		return nil, fmt.Errorf("%w: more than %d days", errorvalues.ErrInvalidRange, MaxSyncRangeDays)
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	report := &entity.SyncReport{
		From: start,
		To:   end,
		Days: make([]entity.DayOutcome, 0),
	}
	for _, day := range dayutil.EachDay(start, end) {
		if err := ctx.Err(); err != nil {
			rs.logger.Info("range sync interrupted", zap.Time("next_day", day), zap.Error(err))
			return report, err
		}
		outcome, err := rs.reconcileDay(ctx, day)
		if err != nil {
			if report.Failed == nil {
				report.Failed = make(map[string]string)
			}
			report.Failed[dayutil.FormatDay(day)] = err.Error()
			continue
		}
		report.Days = append(report.Days, outcome)
	}
	rs.logger.Info("range sync finished",
		zap.Time("from", start),
		zap.Time("to", end),
		zap.Int("reconciled", len(report.Days)),
		zap.Int("failed", len(report.Failed)),
	)
	return report, nil
}

func (rs *ReconcileService) AutoSync(ctx context.Context, daysBack int) (*entity.SyncReport, error) {
	if daysBack <= 0 {
		daysBack = DefaultAutoSyncDays
	}
	if daysBack >= MaxSyncRangeDays {
		daysBack = MaxSyncRangeDays - 1
	}
	today := dayutil.StartOfDay(rs.now().In(rs.loc))
	return rs.ReconcileRange(ctx, dayutil.AddDays(today, -daysBack), today)
}
