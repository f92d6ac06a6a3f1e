package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rollout/internal/adapters/logger"
)

func TestPrettyHandler(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	lg := slog.New(h).With("run", 1)

	lg.Debug("hidden")
	lg.Info("deploying", "env", "DEV")
	slog.New(h).WithGroup("target").Warn("no nodes", "env", "UAT")

	assert.Equal(t, "deploying run=1 env=DEV\n! no nodes target.env=UAT\n", buf.String())
	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
}
