package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodcanvas-server/internal/config"
)

func TestBuildJSON(t *testing.T) {
	var buf bytes.Buffer
	log := build(&buf, &config.Config{ServiceName: "moodcanvas", Environment: "test", LogFormat: "JSON", LogLevel: "warn"})

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "moodcanvas", line["service"])
	assert.Equal(t, "test", line["environment"])
	assert.NotContains(t, line, "caller")
}

func TestBuildFallsBackToInfo(t *testing.T) {
	log := build(&bytes.Buffer{}, &config.Config{LogFormat: "json", LogLevel: "loud"})
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log = build(&bytes.Buffer{}, &config.Config{LogFormat: "json"})
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestBuildDebugAddsCaller(t *testing.T) {
	var buf bytes.Buffer
	log := build(&buf, &config.Config{LogFormat: "json", LogLevel: "DEBUG"})
	log.Debug().Msg("hi")
	assert.Contains(t, buf.String(), `"caller"`)
}
