package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/fittrack/pkg/entity"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks RecordsRepositoryI

type RecordsRepositoryI interface {
	// Returns the record of the day, creating it with empty metrics and no meals if absent.
	// Repeated calls for the same day return the same record ID
	GetOrCreate(ctx context.Context, day time.Time) (*entity.DailyRecord, error)
	// Looks up the record of the day without creating it
	GetByDay(ctx context.Context, day time.Time) (*entity.DailyRecord, error)
	// Lists records with start <= day < end, ascending by day, meals sorted by time
	FetchRange(ctx context.Context, start, end time.Time) ([]*entity.DailyRecord, error)
	// Lists every record ascending by day
	FetchAll(ctx context.Context) ([]*entity.DailyRecord, error)
	// Persists body metrics of the record
	Save(ctx context.Context, record *entity.DailyRecord) error
	// Attaches meal to the record with recordID. Meal ID is generated when empty
	AddMeal(ctx context.Context, recordID uuid.UUID, meal *entity.Meal) error
	// Deletes meal by id
	DeleteMeal(ctx context.Context, id uuid.UUID) error
	// Replaces all records with the given ones in one transaction
	Replace(ctx context.Context, records []*entity.DailyRecord) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
	SSLMode  string
}

func (pgcfg *PGCfg) ConnString() string {
	sslMode := pgcfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgresql://%s:%s@%s/%s?sslmode=%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB, sslMode)
}
