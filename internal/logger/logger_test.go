package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestPrettyHandlerWritesAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "pretty")

	log.With("request_id", "abc").Info("request")
	log.WithGroup("blog").Info("created", "id", "42")
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "request_id")
	assert.Contains(t, out, "=abc")
	assert.Contains(t, out, "created")
	assert.Contains(t, out, "blog.id")
	assert.Contains(t, out, "=42")
	assert.NotContains(t, out, "hidden")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug", "json")

	log.Debug("verify failed", "kind", "expired")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "verify failed", record["msg"])
	assert.Equal(t, "expired", record["kind"])
}
