package main

import (
	"testing"
	"time"

	"github.com/limbo/fittrack/internal/app"
	"github.com/limbo/fittrack/internal/repository"
	"github.com/limbo/fittrack/pkg/cleanup"
	"github.com/limbo/fittrack/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunStartupFailureKeepsCleanup(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "../../migrations")
	a := &app.App{
		Config:   config.New(),
		Logger:   zap.NewNop(),
		Location: time.UTC,
		DB: &repository.PGCfg{
			Address:  "127.0.0.1:1",
			Username: "fittrack",
			Password: "fittrack",
			DB:       "fittrack",
		},
	}
	cleaned := false
	cleanup.Register(&cleanup.Job{
		Name: "test job",
		F: func() error {
			cleaned = true
			return nil
		},
	})

	err := run(a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrating database error")

	a.Close()
	assert.True(t, cleaned)
}
