package config_test

import (
	"testing"
	"time"

	"github.com/limbo/fittrack/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	cfg := config.New()
	t.Setenv("FT_STRING", "value")
	t.Setenv("FT_INT", "42")
	t.Setenv("FT_BAD_INT", "forty-two")
	t.Setenv("FT_DURATION", "90s")
	t.Setenv("FT_TZ", "UTC")
	t.Setenv("FT_BAD_TZ", "Mars/Olympus")

	assert.Equal(t, "value", cfg.GetString("FT_STRING"))
	assert.Equal(t, "fallback", cfg.GetStringOr("FT_MISSING", "fallback"))
	assert.Equal(t, 42, cfg.GetInt("FT_INT", 1))
	assert.Equal(t, 1, cfg.GetInt("FT_BAD_INT", 1))
	assert.Equal(t, 90*time.Second, cfg.GetDuration("FT_DURATION", time.Second))
	assert.Equal(t, time.Second, cfg.GetDuration("FT_MISSING", time.Second))
	assert.Equal(t, time.UTC, cfg.GetLocation("FT_TZ"))
	assert.Equal(t, time.Local, cfg.GetLocation("FT_BAD_TZ"))
	assert.Equal(t, time.Local, cfg.GetLocation("FT_MISSING"))
}
