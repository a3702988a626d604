package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "info")

	log.WithField("ticket_id", "t-1").WithError(errors.New("boom")).Error("save failed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "save failed", line["msg"])
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "t-1", line["ticket_id"])
	assert.Equal(t, "boom", line["error"])
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "warn")
	log.Info("hidden")
	log.Debug("hidden")
	log.Warn("shown")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	buf.Reset()
	NewLoggerTo(&buf, "nonsense").Info("defaults to info")
	assert.Contains(t, buf.String(), "defaults to info")
}
