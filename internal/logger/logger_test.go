package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/prov-go/internal/config"
)

func TestSetupJSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	l, cleanup, err := Setup(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	defer cleanup()

	l.Debug("hidden")
	l.Info("bundle.built", "items", 22)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "bundle.built", entry["msg"])
	assert.EqualValues(t, 22, entry["items"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "provgraph.log")
	l, cleanup, err := Setup(config.LogConfig{Level: "debug", Format: "text", File: path}, nil)
	require.NoError(t, err)

	l.Debug("written")
	require.NoError(t, cleanup())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=written")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}
