package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HISTORY_WINDOW", "")
	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("ALERT_THRESHOLD", "")

	cfg := Load()
	assert.Equal(t, 6, cfg.Chat.HistoryWindow)
	assert.Equal(t, 60*time.Second, cfg.Ai.Timeout)
	assert.Equal(t, 9.0, cfg.Chat.AlertThreshold)
	assert.Equal(t, 3, cfg.Knowledge.DefaultTopK)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("X_DUR", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("X_DUR", time.Second))

	t.Setenv("X_DUR", "45")
	assert.Equal(t, 45*time.Second, getEnvAsDuration("X_DUR", time.Second))

	t.Setenv("X_DUR", "soon")
	assert.Equal(t, time.Second, getEnvAsDuration("X_DUR", time.Second))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("X_INT", "12")
	assert.Equal(t, 12, getEnvAsInt("X_INT", 1))

	t.Setenv("X_INT", "twelve")
	assert.Equal(t, 1, getEnvAsInt("X_INT", 1))
}
