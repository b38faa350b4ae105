package libevt

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf).(*writerLogger)
	logger.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	logger.WithField("type", "socket").WithField("attempt", 2).Infof("connected to %s", "ws://x")

	assert.Equal(t, "[2024-05-01 10:00:00] INFO [attempt=2, type=socket]: connected to ws://x\n", buf.String())
}

func TestWriterLoggerWithFieldDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := NewWriterLogger(&buf)

	_ = base.WithField("type", "emitter")
	base.Warnf("plain")

	assert.Contains(t, buf.String(), "WARN: plain")
	assert.NotContains(t, buf.String(), "type=emitter")
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf)).WithField("type", "listener_manager")

	logger.Errorf("detached %d listener(s)", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "listener_manager", entry["type"])
	assert.Equal(t, "detached 3 listener(s)", entry["message"])
}

func TestZerologLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debugf("hidden")

	assert.Empty(t, buf.String())
}
