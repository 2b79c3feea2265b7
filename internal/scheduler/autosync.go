package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/limbo/fittrack/internal/service"
	"github.com/limbo/fittrack/pkg/entity"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultSchedule = "0 5 * * *"

// AutoSyncerI is the part of the reconcile service the scheduler drives.
type AutoSyncerI interface {
	AutoSync(ctx context.Context, daysBack int) (*entity.SyncReport, error)
}

// AutoSync runs the provider sync on a cron schedule in loc.
type AutoSync struct {
	cron     *cron.Cron
	syncer   AutoSyncerI
	daysBack int
	timeout  time.Duration
	logger   *zap.Logger
}

func NewAutoSync(syncer AutoSyncerI, schedule string, daysBack int, loc *time.Location, logger *zap.Logger) (*AutoSync, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if daysBack <= 0 {
		daysBack = service.DefaultAutoSyncDays
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &AutoSync{
		cron:     cron.New(cron.WithLocation(loc)),
		syncer:   syncer,
		daysBack: daysBack,
		timeout:  10 * time.Minute,
		logger:   logger,
	}
	if _, err := a.cron.AddFunc(schedule, a.Run); err != nil {
		return nil, errors.New("parsing autosync schedule error: " + err.Error())
	}
	return a, nil
}

// Run performs one sync of the configured window.
func (a *AutoSync) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	a.logger.Info("autosync started", zap.Int("days_back", a.daysBack))
	report, err := a.syncer.AutoSync(ctx, a.daysBack)
	if err != nil {
		a.logger.Error("autosync failed", zap.Error(err))
		return
	}
	a.logger.Info("autosync finished", zap.Int("days", len(report.Days)), zap.Int("failed", len(report.Failed)))
}

func (a *AutoSync) Start() {
	a.cron.Start()
}

// Stop waits for a running sync to finish.
func (a *AutoSync) Stop() {
	<-a.cron.Stop().Done()
}

func (a *AutoSync) Next() time.Time {
	entries := a.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
