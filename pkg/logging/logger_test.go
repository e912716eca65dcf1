package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init("debug", "json", &buf))
	t.Cleanup(func() { _ = Init("info", "text", nil) })

	WithTable(nil, "Hero").Debug("loaded", "rows", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded", entry["msg"])
	assert.Equal(t, "Hero", entry["table"])
	assert.Equal(t, float64(3), entry["rows"])
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init("warn", "text", &buf))
	t.Cleanup(func() { _ = Init("info", "text", nil) })

	WithComponent("tables").Info("hidden")
	assert.Empty(t, buf.String())

	WithError(errors.New("boom")).Warn("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "boom")
}

func TestInit_Errors(t *testing.T) {
	assert.Error(t, Init("loud", "text", nil))
	assert.Error(t, Init("info", "xml", nil))
}

func TestGetLogger_Default(t *testing.T) {
	assert.NotNil(t, GetLogger())
}

func TestWithTable_Base(t *testing.T) {
	var buf bytes.Buffer
	base := New(&buf, slog.LevelInfo, "json").With("component", "tables")

	WithTable(base, "Skill").Info("loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tables", entry["component"])
	assert.Equal(t, "Skill", entry["table"])
}

func TestWithError_Nil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init("info", "text", &buf))
	t.Cleanup(func() { _ = Init("info", "text", nil) })

	require.NotPanics(t, func() { WithError(nil).Info("no error") })
	assert.Contains(t, buf.String(), "no error")
	assert.NotContains(t, buf.String(), "error=")
}
