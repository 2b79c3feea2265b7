// @title FitTrack API
// @description Local API of the FitTrack daily health log
// @BasePath /api/v1
// @schemes http
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limbo/fittrack/internal/api"
	"github.com/limbo/fittrack/internal/app"
	"github.com/limbo/fittrack/internal/scheduler"
	jwtservice "github.com/limbo/fittrack/pkg/jwt_service"
	"go.uber.org/zap"
)

func main() {
	a := app.New()
	err := run(a)
	if err != nil {
		a.Logger.Error("api stopped", zap.Error(err))
	}
	a.Close()
	if err != nil {
		os.Exit(1)
	}
}

// run serves until a signal arrives or the server fails. Startup errors are
// returned so the caller still runs the cleanup jobs.
func run(a *app.App) error {
	cfg := a.Config
	if err := a.Migrate(); err != nil {
		return errors.New("migrating database error: " + err.Error())
	}
	a.Connect()

	var jwt api.JWTServiceI
	if secret := cfg.GetString("JWT_SECRET"); secret != "" {
		jwt = jwtservice.New(secret, cfg.GetDuration("JWT_TTL", jwtservice.DefaultTokenTTL))
	} else {
		a.Logger.Warn("JWT_SECRET is empty, api is served without authentication")
	}
	serv := api.New(&api.ServicesList{
		ReconcileService: a.Reconcile,
		RecordsService:   a.Days,
		StatsService:     a.Stats,
		SamplesService:   a.Samples,
		JwtService:       jwt,
		Logger:           a.Logger.Named("api"),
		Location:         a.Location,
	})

	autoSync, err := scheduler.NewAutoSync(
		a.Reconcile,
		cfg.GetStringOr("AUTOSYNC_SCHEDULE", scheduler.DefaultSchedule),
		cfg.GetInt("AUTOSYNC_DAYS", 0),
		a.Location,
		a.Logger.Named("autosync"),
	)
	if err != nil {
		return err
	}
	autoSync.Start()
	a.Logger.Info("autosync scheduled", zap.Time("next", autoSync.Next()))

	errs := make(chan error, 1)
	go func() {
		errs <- serv.Run(cfg.GetStringOr("API_ADDRESS", "127.0.0.1:8080"))
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		a.Logger.Info("shutting down", zap.String("signal", sig.String()))
	case err = <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if shutdownErr := serv.Shutdown(ctx); shutdownErr != nil {
		a.Logger.Error("server shutdown error", zap.Error(shutdownErr))
	}
	autoSync.Stop()
	return err
}
