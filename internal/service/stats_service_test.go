package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/limbo/fittrack/internal/repository/mocks"
	"github.com/limbo/fittrack/internal/service"
	"github.com/limbo/fittrack/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsService(t *testing.T) (*service.StatsService, *mocks.MockRecordsRepositoryI) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRecordsRepositoryI(ctrl)
	return service.NewStatsService(repo, time.UTC), repo
}

func weighedRecord(day time.Time, kg float64, steps int) *entity.DailyRecord {
	r := emptyRecord(day)
	r.Metrics.WeightKg = kg
	r.Metrics.Steps = steps
	return r
}

func TestRangeStats(t *testing.T) {
	ctx := context.Background()
	from, to := testDay, testDay.AddDate(0, 0, 5)
	t.Run("weight delta and averages", func(t *testing.T) {
		ss, repo := newStatsService(t)
		repo.EXPECT().FetchRange(gomock.Any(), from, to).Return([]*entity.DailyRecord{
			weighedRecord(testDay, 80.0, 0),
			weighedRecord(testDay.AddDate(0, 0, 2), 0, 5000),
			weighedRecord(testDay.AddDate(0, 0, 4), 78.5, 10000),
		}, nil)
		stats, err := ss.RangeStats(ctx, from, to)
		require.NoError(t, err)
		require.NotNil(t, stats.WeightDelta)
		assert.InDelta(t, -1.5, *stats.WeightDelta, 1e-9)
		require.NotNil(t, stats.AverageSteps)
		assert.Equal(t, 5000.0, *stats.AverageSteps)
		assert.Nil(t, stats.AverageSleepHours)
		assert.Equal(t, 3, stats.Days)
	})
	t.Run("inverted range", func(t *testing.T) {
		ss, _ := newStatsService(t)
		_, err := ss.RangeStats(ctx, to, from)
		assert.ErrorIs(t, err, errorvalues.ErrInvalidRange)
	})
	t.Run("storage error", func(t *testing.T) {
		ss, repo := newStatsService(t)
		repo.EXPECT().FetchRange(gomock.Any(), from, to).Return(nil, errDB)
		_, err := ss.RangeStats(ctx, from, to)
		var storageErr *errorvalues.StorageError
		assert.ErrorAs(t, err, &storageErr)
	})
}

func TestReport(t *testing.T) {
	ss, repo := newStatsService(t)
	from, to := testDay, testDay.AddDate(0, 0, 2)
	repo.EXPECT().FetchRange(gomock.Any(), from, to).Return([]*entity.DailyRecord{
		fullRecord(testDay),
		emptyRecord(testDay.AddDate(0, 0, 1)),
	}, nil)
	report, err := ss.Report(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, report.Days, 2)
	require.NotNil(t, report.Days[0].Sleep)
	assert.Equal(t, 8, report.Days[0].Sleep.Hours)
	assert.Nil(t, report.Days[1].Sleep)
	assert.Equal(t, 2, report.Stats.Days)
}

func TestInsights(t *testing.T) {
	ss, repo := newStatsService(t)
	repo.EXPECT().FetchAll(gomock.Any()).Return([]*entity.DailyRecord{
		weighedRecord(testDay, 80.0, 0),
		weighedRecord(testDay.AddDate(0, 0, 35), 76.0, 0),
	}, nil)
	insights, err := ss.Insights(context.Background())
	require.NoError(t, err)
	require.NotNil(t, insights.SinceStart)
	assert.InDelta(t, -4.0, insights.SinceStart.DeltaKg, 1e-9)
	require.NotNil(t, insights.LastMonth)
	assert.Equal(t, "-4.0 kg", insights.LastMonth.DeltaText)

	repo.EXPECT().FetchAll(gomock.Any()).Return(nil, errDB)
	_, err = ss.Insights(context.Background())
	assert.ErrorIs(t, err, errDB)
}
