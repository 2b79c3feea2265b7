package provider_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/limbo/fittrack/internal/provider"
	"github.com/limbo/fittrack/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	sumQuery    = regexp.QuoteMeta(`SELECT COALESCE(SUM(value), 0) FROM health_samples WHERE kind = $1 AND start_at >= $2 AND start_at < $3;`)
	day         = time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	nextDay     = time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)
	errDB       = errors.New("db error")
	errProvider *errorvalues.ProviderError
)

func TestStepsTotal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	store := provider.NewHealthStore(mock, time.UTC)
	testCases := []struct {
		Desc         string
		Steps        int
		Fails        bool
		MockPrepFunc func()
	}{
		{
			Desc:  "rounded sum",
			Steps: 12346,
			MockPrepFunc: func() {
				mock.ExpectQuery(sumQuery).WithArgs("steps", day, nextDay).
					WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(12345.6))
			},
		},
		{
			Desc:  "no samples",
			Steps: 0,
			MockPrepFunc: func() {
				mock.ExpectQuery(sumQuery).WithArgs("steps", day, nextDay).
					WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(0.0))
			},
		},
		{
			Desc:  "db error",
			Fails: true,
			MockPrepFunc: func() {
				mock.ExpectQuery(sumQuery).WithArgs("steps", day, nextDay).WillReturnError(errDB)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			steps, err := store.StepsTotal(ctx, day.Add(15*time.Hour))
			if tc.Fails {
				assert.ErrorAs(t, err, &errProvider)
				assert.ErrorIs(t, err, errDB)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Steps, steps)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHydrationLiters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	store := provider.NewHealthStore(mock, time.UTC)
	mock.ExpectQuery(sumQuery).WithArgs("water", day, nextDay).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(1.75))
	liters, err := store.HydrationLiters(context.Background(), day)
	assert.NoError(t, err)
	assert.Equal(t, 1.75, liters)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestWeightKg(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	store := provider.NewHealthStore(mock, time.UTC)
	unbounded := regexp.QuoteMeta(`SELECT value FROM health_samples WHERE kind = $1 ORDER BY end_at DESC LIMIT 1;`)
	bounded := regexp.QuoteMeta(`SELECT value FROM health_samples WHERE kind = $1 AND end_at <= $2 ORDER BY end_at DESC LIMIT 1;`)
	upTo := day.Add(9 * time.Hour)
	testCases := []struct {
		Desc         string
		UpTo         *time.Time
		Weight       *float64
		Fails        bool
		MockPrepFunc func()
	}{
		{
			Desc:   "unbounded",
			Weight: ptr(79.4),
			MockPrepFunc: func() {
				mock.ExpectQuery(unbounded).WithArgs("body_mass").
					WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(79.4))
			},
		},
		{
			Desc:   "bounded by start of next day",
			UpTo:   &upTo,
			Weight: ptr(80.1),
			MockPrepFunc: func() {
				mock.ExpectQuery(bounded).WithArgs("body_mass", nextDay).
					WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(80.1))
			},
		},
		{
			Desc: "no sample",
			UpTo: &upTo,
			MockPrepFunc: func() {
				mock.ExpectQuery(bounded).WithArgs("body_mass", nextDay).WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			Desc:  "db error",
			Fails: true,
			MockPrepFunc: func() {
				mock.ExpectQuery(unbounded).WithArgs("body_mass").WillReturnError(errDB)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			weight, err := store.LatestWeightKg(ctx, tc.UpTo)
			if tc.Fails {
				assert.ErrorAs(t, err, &errProvider)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Weight, weight)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMainSleepInterval(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	store := provider.NewHealthStore(mock, time.UTC)
	query := regexp.QuoteMeta(`SELECT MIN(start_at), MAX(end_at) FROM health_samples WHERE kind = $1 AND category = ANY($2) AND end_at > $3 AND start_at < $4;`)
	windowStart := time.Date(2026, 5, 9, 20, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	asleepFrom := time.Date(2026, 5, 9, 23, 10, 0, 0, time.UTC)
	asleepTo := time.Date(2026, 5, 10, 6, 40, 0, 0, time.UTC)
	testCases := []struct {
		Desc         string
		Interval     *entity.SleepInterval
		Fails        bool
		MockPrepFunc func()
	}{
		{
			Desc:     "segments collapse into one span",
			Interval: &entity.SleepInterval{Start: asleepFrom, End: asleepTo},
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs("sleep", entity.AsleepCategories, windowStart, windowEnd).
					WillReturnRows(pgxmock.NewRows([]string{"min", "max"}).AddRow(&asleepFrom, &asleepTo))
			},
		},
		{
			Desc: "no qualifying samples",
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs("sleep", entity.AsleepCategories, windowStart, windowEnd).
					WillReturnRows(pgxmock.NewRows([]string{"min", "max"}).AddRow(nil, nil))
			},
		},
		{
			Desc:  "db error",
			Fails: true,
			MockPrepFunc: func() {
				mock.ExpectQuery(query).WithArgs("sleep", entity.AsleepCategories, windowStart, windowEnd).
					WillReturnError(errDB)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			interval, err := store.MainSleepInterval(ctx, day)
			if tc.Fails {
				assert.ErrorAs(t, err, &errProvider)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.Interval, interval)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddSamples(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	store := provider.NewHealthStore(mock, time.UTC)
	columns := []string{"id", "kind", "value", "category", "start_at", "end_at", "source"}
	samples := []entity.HealthSample{
		{Kind: entity.SampleSteps, Value: 500, StartAt: day, EndAt: day.Add(time.Hour)},
		{Kind: entity.SampleSleep, Category: "asleep_core", StartAt: day.Add(-2 * time.Hour), EndAt: day.Add(5 * time.Hour)},
	}
	ctx := context.Background()

	mock.ExpectCopyFrom(pgx.Identifier{"health_samples"}, columns).WillReturnResult(2)
	n, err := store.AddSamples(ctx, samples)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NotEmpty(t, samples[0].ID)

	mock.ExpectCopyFrom(pgx.Identifier{"health_samples"}, columns).WillReturnError(errDB)
	_, err = store.AddSamples(ctx, samples)
	assert.EqualError(t, err, "copying health samples error: db error")

	_, err = store.AddSamples(ctx, nil)
	assert.ErrorIs(t, err, errorvalues.ErrNoSamples)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func ptr(v float64) *float64 {
	return &v
}
