package service

import (
	"context"
	"log"
	"time"

	"github.com/limbo/fittrack/internal/aggregate"
	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/limbo/fittrack/internal/repository"
	"github.com/limbo/fittrack/pkg/dayutil"
	"github.com/limbo/fittrack/pkg/entity"
)

type StatsService struct {
	repo repository.RecordsRepositoryI
	loc  *time.Location
}

func NewStatsService(recordsRepo repository.RecordsRepositoryI, loc *time.Location) *StatsService {
	if recordsRepo == nil {
		log.Fatal("provided nil recordsRepo")
	}
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{
		repo: recordsRepo,
		loc:  loc,
	}
}

func (ss *StatsService) fetch(ctx context.Context, from, to time.Time) ([]*entity.DailyRecord, time.Time, time.Time, error) {
	from = dayutil.StartOfDay(from.In(ss.loc))
	to = dayutil.StartOfDay(to.In(ss.loc))
	if to.Before(from) {
		return nil, from, to, errorvalues.ErrInvalidRange
	}
	records, err := ss.repo.FetchRange(ctx, from, to)
	if err != nil {
		return nil, from, to, &errorvalues.StorageError{Op: "fetch range", Err: err}
	}
	return records, from, to, nil
}

func (ss *StatsService) RangeStats(ctx context.Context, from, to time.Time) (*entity.Stats, error) {
	records, from, to, err := ss.fetch(ctx, from, to)
	if err != nil {
		return nil, err
	}
	stats := aggregate.RangeStatistics(records, from, to)
	return &stats, nil
}

func (ss *StatsService) Report(ctx context.Context, from, to time.Time) (*entity.Report, error) {
	records, from, to, err := ss.fetch(ctx, from, to)
	if err != nil {
		return nil, err
	}
	report := &entity.Report{
		From:  from,
		To:    to,
		Days:  make([]entity.DaySummary, 0, len(records)),
		Stats: aggregate.RangeStatistics(records, from, to),
	}
	for _, r := range records {
		report.Days = append(report.Days, aggregate.DaySummary(r))
	}
	return report, nil
}

func (ss *StatsService) Insights(ctx context.Context) (*entity.Insights, error) {
	records, err := ss.repo.FetchAll(ctx)
	if err != nil {
		return nil, &errorvalues.StorageError{Op: "fetch all", Err: err}
	}
	insights := aggregate.Insights(records)
	return &insights, nil
}
