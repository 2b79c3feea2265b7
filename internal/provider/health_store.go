package provider

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/limbo/fittrack/internal/repository"
	"github.com/limbo/fittrack/pkg/dayutil"
	"github.com/limbo/fittrack/pkg/entity"
)

// HealthStore answers provider queries from samples ingested out of a health
// data export. It never writes to daily records.
type HealthStore struct {
	conn repository.PgConnection
	loc  *time.Location
}

func NewHealthStore(conn repository.PgConnection, loc *time.Location) *HealthStore {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for healthStore: " + err.Error())
	}
	if loc == nil {
		loc = time.Local
	}
	return &HealthStore{
		conn: conn,
		loc:  loc,
	}
}

func (hs *HealthStore) sumForDay(ctx context.Context, kind entity.SampleKind, day time.Time) (float64, error) {
	start, end := dayutil.DayBounds(day.In(hs.loc))
	row := hs.conn.QueryRow(
		ctx,
		`SELECT COALESCE(SUM(value), 0) FROM health_samples WHERE kind = $1 AND start_at >= $2 AND start_at < $3;`,
		string(kind),
		start,
		end,
	)
	var sum float64
	if err := row.Scan(&sum); err != nil {
		return 0, &errorvalues.ProviderError{Query: string(kind), Err: err}
	}
	return sum, nil
}

func (hs *HealthStore) StepsTotal(ctx context.Context, day time.Time) (int, error) {
	sum, err := hs.sumForDay(ctx, entity.SampleSteps, day)
	if err != nil {
		return 0, err
	}
	return int(math.Round(sum)), nil
}

func (hs *HealthStore) HydrationLiters(ctx context.Context, day time.Time) (float64, error) {
	return hs.sumForDay(ctx, entity.SampleWater, day)
}

func (hs *HealthStore) LatestWeightKg(ctx context.Context, upTo *time.Time) (*float64, error) {
	query := `SELECT value FROM health_samples WHERE kind = $1 ORDER BY end_at DESC LIMIT 1;`
	args := []any{string(entity.SampleBodyMass)}
	if upTo != nil {
		query = `SELECT value FROM health_samples WHERE kind = $1 AND end_at <= $2 ORDER BY end_at DESC LIMIT 1;`
		args = append(args, dayutil.NextDay(upTo.In(hs.loc)))
	}
	var weight float64
	if err := hs.conn.QueryRow(ctx, query, args...).Scan(&weight); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, &errorvalues.ProviderError{Query: string(entity.SampleBodyMass), Err: err}
	}
	return &weight, nil
}

// MainSleepInterval collapses every asleep sample of the night window into one
// span. Gaps between segments are counted as sleep.
func (hs *HealthStore) MainSleepInterval(ctx context.Context, day time.Time) (*entity.SleepInterval, error) {
	windowStart, windowEnd := dayutil.SleepWindow(day.In(hs.loc))
	row := hs.conn.QueryRow(
		ctx,
		`SELECT MIN(start_at), MAX(end_at) FROM health_samples WHERE kind = $1 AND category = ANY($2) AND end_at > $3 AND start_at < $4;`,
		string(entity.SampleSleep),
		entity.AsleepCategories,
		windowStart,
		windowEnd,
	)
	var start, end *time.Time
	if err := row.Scan(&start, &end); err != nil {
		return nil, &errorvalues.ProviderError{Query: string(entity.SampleSleep), Err: err}
	}
	if start == nil || end == nil {
		return nil, nil
	}
	return &entity.SleepInterval{Start: start.In(hs.loc), End: end.In(hs.loc)}, nil
}

// AddSamples bulk loads samples, generating IDs for the ones without.
func (hs *HealthStore) AddSamples(ctx context.Context, samples []entity.HealthSample) (int64, error) {
	if len(samples) == 0 {
		return 0, errorvalues.ErrNoSamples
	}
	rows := make([][]any, 0, len(samples))
	for i := range samples {
		if samples[i].ID == uuid.Nil {
			samples[i].ID = uuid.New()
		}
		s := samples[i]
		rows = append(rows, []any{s.ID, string(s.Kind), s.Value, s.Category, s.StartAt, s.EndAt, s.Source})
	}
	n, err := hs.conn.CopyFrom(
		ctx,
		pgx.Identifier{"health_samples"},
		[]string{"id", "kind", "value", "category", "start_at", "end_at", "source"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, errors.New("copying health samples error: " + err.Error())
	}
	return n, nil
}
