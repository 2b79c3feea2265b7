// Package app builds the object graph shared by the API server and the CLI.
package app

import (
	"context"
	"log"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/limbo/fittrack/internal/backup"
	"github.com/limbo/fittrack/internal/provider"
	"github.com/limbo/fittrack/internal/repository"
	"github.com/limbo/fittrack/internal/service"
	"github.com/limbo/fittrack/pkg/cleanup"
	"github.com/limbo/fittrack/pkg/config"
	"github.com/limbo/fittrack/pkg/logger"
	"github.com/limbo/fittrack/pkg/migrate"
	"go.uber.org/zap"
)

type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Location *time.Location
	DB       *repository.PGCfg

	Pool        *pgxpool.Pool
	Records     *repository.RecordsRepository
	HealthStore *provider.HealthStore

	Reconcile *service.ReconcileService
	Days      *service.RecordsService
	Stats     *service.StatsService
	Samples   *service.SamplesService
	Backup    *backup.Service
}

// New reads configuration and builds the logger. Nothing touches the database yet.
func New() *App {
	cfg := config.New()
	lg := logger.New(cfg.GetStringOr("LOG_LEVEL", "info"))
	cleanup.Register(&cleanup.Job{
		Name: "syncing logger",
		F: func() error {
			_ = lg.Sync()
			return nil
		},
	})
	service.InitValidator()
	return &App{
		Config:   cfg,
		Logger:   lg,
		Location: cfg.GetLocation("TIMEZONE"),
		DB: &repository.PGCfg{
			Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
			Username: cfg.GetString("POSTGRES_USER"),
			Password: cfg.GetString("POSTGRES_PASSWORD"),
			DB:       cfg.GetString("POSTGRES_DB"),
			SSLMode:  cfg.GetString("POSTGRES_SSLMODE"),
		},
	}
}

// Migrate applies pending schema migrations.
func (a *App) Migrate() error {
	dir := a.Config.GetStringOr("MIGRATIONS_DIR", "./migrations")
	if err := migrate.Up(a.DB.ConnString(), dir); err != nil {
		return err
	}
	a.Logger.Info("migrations applied", zap.String("dir", dir))
	return nil
}

// Connect opens the pool and wires repositories and services.
func (a *App) Connect() *App {
	a.Pool = repository.Connect(a.DB)
	a.Records = repository.NewRecordsRepo(a.Pool, a.Location)
	a.HealthStore = provider.NewHealthStore(a.Pool, a.Location)

	a.Reconcile = service.NewReconcileService(a.Records, a.HealthStore, a.Location, a.Logger.Named("reconcile"))
	a.Days = service.NewRecordsService(a.Records, a.Location, a.Logger.Named("records"))
	a.Stats = service.NewStatsService(a.Records, a.Location)
	a.Samples = service.NewSamplesService(a.HealthStore, a.Logger.Named("samples"))
	a.Backup = backup.NewService(a.Records, a.Config.GetStringOr("BACKUP_DIR", "./backups"), a.Logger.Named("backup"))
	if bucket := a.Config.GetString("BACKUP_S3_BUCKET"); bucket != "" {
		a.Backup.WithObjectStore(newS3Client(), bucket)
	}
	return a
}

func newS3Client() *s3.Client {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatal("unable to load AWS config for S3: " + err.Error())
	}
	return s3.NewFromConfig(cfg)
}

// Close runs every registered cleanup job.
func (a *App) Close() {
	cleanup.CleanUp(a.Logger)
}
