package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("CHAT", "turn completed", map[string]interface{}{"session_id": "s1"})
	l.Error("CHAT", "reply failed", map[string]interface{}{"error": "timeout"})
	l.Debug("CHAT", "no details", nil)

	entries := logs.All()
	assert.Len(t, entries, 3)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "CHAT", ctx["module"])
	assert.Equal(t, map[string]interface{}{"session_id": "s1"}, ctx["details"])

	assert.Equal(t, "timeout", entries[1].ContextMap()["error_ref"])
	assert.Equal(t, map[string]interface{}{}, entries[2].ContextMap()["details"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Warn("X", "ignored", nil)
	assert.NoError(t, l.Sync())
}
