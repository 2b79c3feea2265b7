package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/fittrack/internal/error_values"
	"github.com/limbo/fittrack/pkg/dayutil"
	"github.com/limbo/fittrack/pkg/entity"
)

const recordColumns = `SELECT r.id, r.day, r.created_at, r.updated_at,
	m.sleep_start, m.sleep_end, COALESCE(m.steps, 0), COALESCE(m.hydration_liters, 0), COALESCE(m.weight_kg, 0)
	FROM daily_records r LEFT JOIN body_metrics m ON m.record_id = r.id`

type RecordsRepository struct {
	conn PgConnection
	loc  *time.Location
}

// NewRecordsRepo builds the record store. Day keys are local midnights in loc.
func NewRecordsRepo(conn PgConnection, loc *time.Location) *RecordsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for recordsRepo: " + err.Error())
	}
	if loc == nil {
		loc = time.Local
	}
	return &RecordsRepository{
		conn: conn,
		loc:  loc,
	}
}

func (rr *RecordsRepository) dayKey(t time.Time) time.Time {
	return dayutil.StartOfDay(t.In(rr.loc))
}

func (rr *RecordsRepository) GetOrCreate(ctx context.Context, day time.Time) (*entity.DailyRecord, error) {
	day = rr.dayKey(day)
	record, err := rr.GetByDay(ctx, day)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, errorvalues.ErrRecordNotFound) {
		return nil, err
	}
	record, err = rr.create(ctx, day)
	if err != nil {
		var pgErr *pgconn.PgError
		// Unique violation: the day was created concurrently, use that record
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return rr.GetByDay(ctx, day)
		}
		return nil, errors.New("creating daily record error: " + err.Error())
	}
	return record, nil
}

func (rr *RecordsRepository) create(ctx context.Context, day time.Time) (*entity.DailyRecord, error) {
	id := uuid.New()
	tx, err := rr.conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, `INSERT INTO daily_records (id, day) VALUES ($1, $2);`, id, day)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	_, err = tx.Exec(ctx, `INSERT INTO body_metrics (record_id) VALUES ($1);`, id)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	now := time.Now()
	return &entity.DailyRecord{
		ID:        id,
		Day:       day,
		Meals:     []entity.Meal{},
		Metrics:   entity.BodyMetrics{RecordID: id},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (rr *RecordsRepository) GetByDay(ctx context.Context, day time.Time) (*entity.DailyRecord, error) {
	day = rr.dayKey(day)
	row := rr.conn.QueryRow(ctx, recordColumns+` WHERE r.day = $1;`, day)
	record, err := rr.scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrRecordNotFound
		}
		return nil, errors.New("getting daily record error: " + err.Error())
	}
	if err = rr.attachMeals(ctx, []*entity.DailyRecord{record}); err != nil {
		return nil, err
	}
	return record, nil
}

func (rr *RecordsRepository) FetchRange(ctx context.Context, start, end time.Time) ([]*entity.DailyRecord, error) {
	rows, err := rr.conn.Query(ctx, recordColumns+` WHERE r.day >= $1 AND r.day < $2 ORDER BY r.day;`,
		rr.dayKey(start), rr.dayKey(end))
	if err != nil {
		return nil, errors.New("fetching records range error: " + err.Error())
	}
	return rr.collect(ctx, rows)
}

func (rr *RecordsRepository) FetchAll(ctx context.Context) ([]*entity.DailyRecord, error) {
	rows, err := rr.conn.Query(ctx, recordColumns+` ORDER BY r.day;`)
	if err != nil {
		return nil, errors.New("fetching all records error: " + err.Error())
	}
	return rr.collect(ctx, rows)
}

func (rr *RecordsRepository) collect(ctx context.Context, rows pgx.Rows) ([]*entity.DailyRecord, error) {
	records := make([]*entity.DailyRecord, 0)
	for rows.Next() {
		record, err := rr.scanRecord(rows)
		if err != nil {
			rows.Close()
			return nil, errors.New("daily record row parsing error: " + err.Error())
		}
		records = append(records, record)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.New("unexpected daily record rows error: " + err.Error())
	}
	if err := rr.attachMeals(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

func (rr *RecordsRepository) scanRecord(row pgx.Row) (*entity.DailyRecord, error) {
	var record entity.DailyRecord
	var date time.Time
	err := row.Scan(
		&record.ID,
		&date,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.Metrics.SleepStart,
		&record.Metrics.SleepEnd,
		&record.Metrics.Steps,
		&record.Metrics.HydrationLiters,
		&record.Metrics.WeightKg,
	)
	if err != nil {
		return nil, err
	}
	record.Day = dayutil.FromDate(date, rr.loc)
	record.Metrics.RecordID = record.ID
	record.Meals = []entity.Meal{}
	return &record, nil
}

func (rr *RecordsRepository) attachMeals(ctx context.Context, records []*entity.DailyRecord) error {
	if len(records) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(records))
	byID := make(map[uuid.UUID]*entity.DailyRecord, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
		byID[r.ID] = r
	}
	rows, err := rr.conn.Query(
		ctx,
		`SELECT id, record_id, eaten_at, meal_type, location, description FROM meals WHERE record_id = ANY($1) ORDER BY eaten_at;`,
		ids,
	)
	if err != nil {
		return errors.New("getting meals error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		var meal entity.Meal
		err = rows.Scan(&meal.ID, &meal.RecordID, &meal.Timestamp, &meal.Type, &meal.Location, &meal.Description)
		if err != nil {
			return errors.New("meal row parsing error: " + err.Error())
		}
		if owner, ok := byID[meal.RecordID]; ok {
			owner.Meals = append(owner.Meals, meal)
		}
	}
	if err = rows.Err(); err != nil {
		return errors.New("unexpected meal rows error: " + err.Error())
	}
	return nil
}

func (rr *RecordsRepository) Save(ctx context.Context, record *entity.DailyRecord) error {
	if record == nil {
		return errors.New("record is nil")
	}
	tx, err := rr.conn.Begin(ctx)
	if err != nil {
		return errors.New("saving record error: " + err.Error())
	}
	ct, err := tx.Exec(ctx, `UPDATE daily_records SET updated_at = NOW() WHERE id = $1;`, record.ID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return errors.New("saving record error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		_ = tx.Rollback(ctx)
		return errorvalues.ErrRecordNotFound
	}
	bm := record.Metrics
	_, err = tx.Exec(
		ctx,
		`INSERT INTO body_metrics (record_id, sleep_start, sleep_end, steps, hydration_liters, weight_kg)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (record_id) DO UPDATE SET sleep_start = EXCLUDED.sleep_start, sleep_end = EXCLUDED.sleep_end,
		steps = EXCLUDED.steps, hydration_liters = EXCLUDED.hydration_liters, weight_kg = EXCLUDED.weight_kg;`,
		record.ID, bm.SleepStart, bm.SleepEnd, bm.Steps, bm.HydrationLiters, bm.WeightKg,
	)
	if err != nil {
		_ = tx.Rollback(ctx)
		return errors.New("saving body metrics error: " + err.Error())
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing record error: " + err.Error())
	}
	return nil
}

func (rr *RecordsRepository) AddMeal(ctx context.Context, recordID uuid.UUID, meal *entity.Meal) error {
	if meal == nil {
		return errors.New("meal is nil")
	}
	if meal.ID == uuid.Nil {
		meal.ID = uuid.New()
	}
	meal.RecordID = recordID
	_, err := rr.conn.Exec(
		ctx,
		`INSERT INTO meals (id, record_id, eaten_at, meal_type, location, description) VALUES ($1, $2, $3, $4, $5, $6);`,
		meal.ID, recordID, meal.Timestamp, meal.Type, meal.Location, meal.Description,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrRecordNotFound
			}
		}
		return errors.New("adding meal error: " + err.Error())
	}
	return nil
}

func (rr *RecordsRepository) DeleteMeal(ctx context.Context, id uuid.UUID) error {
	ct, err := rr.conn.Exec(ctx, `DELETE FROM meals WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting meal error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrMealNotFound
	}
	return nil
}

func (rr *RecordsRepository) Replace(ctx context.Context, records []*entity.DailyRecord) error {
	recordRows := make([][]any, 0, len(records))
	metricsRows := make([][]any, 0, len(records))
	mealRows := make([][]any, 0)
	for _, r := range records {
		recordRows = append(recordRows, []any{r.ID, rr.dayKey(r.Day), r.CreatedAt, r.UpdatedAt})
		bm := r.Metrics
		metricsRows = append(metricsRows, []any{r.ID, bm.SleepStart, bm.SleepEnd, bm.Steps, bm.HydrationLiters, bm.WeightKg})
		for _, m := range r.Meals {
			mealRows = append(mealRows, []any{m.ID, r.ID, m.Timestamp, string(m.Type), m.Location, m.Description})
		}
	}
	tx, err := rr.conn.Begin(ctx)
	if err != nil {
		return errors.New("replacing records error: " + err.Error())
	}
	if _, err = tx.Exec(ctx, `DELETE FROM daily_records;`); err != nil {
		_ = tx.Rollback(ctx)
		return errors.New("clearing records error: " + err.Error())
	}
	copies := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{"daily_records", []string{"id", "day", "created_at", "updated_at"}, recordRows},
		{"body_metrics", []string{"record_id", "sleep_start", "sleep_end", "steps", "hydration_liters", "weight_kg"}, metricsRows},
		{"meals", []string{"id", "record_id", "eaten_at", "meal_type", "location", "description"}, mealRows},
	}
	for _, c := range copies {
		if len(c.rows) == 0 {
			continue
		}
		_, err = tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows))
		if err != nil {
			_ = tx.Rollback(ctx)
			return errors.New("copying " + c.table + " error: " + err.Error())
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing replaced records error: " + err.Error())
	}
	return nil
}
