package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, int(slog.LevelWarn))

	log.Info("hidden", "k", "v")
	log.Warn("shown", "user", "alice")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "user=alice")
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, int(slog.LevelDebug)).With("component", "vault")

	log.DebugContext(context.Background(), "hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "component=vault")
	assert.Contains(t, out, "k=v")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("discarded")
	log.With("a", 1).Info("discarded")
}
