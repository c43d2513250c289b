package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	l := Configure(Config{Level: WarnLevel, Output: &buf})
	l.Info().Msg("dropped")
	hub := Component("hub")
	hub.Warn().Str("room", "session_ABC").Msg("slow client")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "hub", entry["component"])
	assert.Equal(t, "session_ABC", entry["room"])
}

func TestConfigureUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { Configure(Config{Level: InfoLevel}) })

	Configure(Config{Level: "chatty", Output: &buf})
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestConfigFromSettings(t *testing.T) {
	cfg := ConfigFromSettings(" DEBUG ", "console")
	assert.Equal(t, DebugLevel, cfg.Level)
	assert.True(t, cfg.Pretty)

	assert.False(t, ConfigFromSettings("info", "json").Pretty)
}
