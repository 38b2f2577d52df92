package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Format: "json", Out: &buf})

	log.Debug().Msg("hidden")
	log.Info().Int64("task", 7).Msg("completed")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "completed", line["message"])
	assert.Equal(t, float64(7), line["task"])
	assert.Contains(t, line, "time")
}

func TestNewUnknownLevelFallsBackToWarn(t *testing.T) {
	log := New(Options{Level: "chatty", Format: "json", Out: &bytes.Buffer{}})
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	log = New(Options{Format: "json", Out: &bytes.Buffer{}})
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
}

func TestNewConsoleWritesReadableLine(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "console", Out: &buf})
	log.Debug().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}
