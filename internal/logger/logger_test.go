package logger_test

import (
	"bytes"
	"encoding/json/v2"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workspaceapp/workspace-server/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	// Unknown levels default to info
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Writer: &buf,
		Format: "json",
		Level:  slog.LevelInfo,
	})

	log.Info("chat pinned", "chat_id", "abc123")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "chat pinned", record["msg"])
	assert.Equal(t, "abc123", record["chat_id"])
}

func TestPrettyFormatIncludesAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Writer: &buf,
		Format: "pretty",
		Level:  slog.LevelInfo,
	})

	log.Info("folder created", "folder_id", "folder-x")

	out := buf.String()
	assert.Contains(t, out, "folder created")
	assert.Contains(t, out, "folder_id=folder-x")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Writer: &buf,
		Format: "pretty",
		Level:  slog.LevelWarn,
	})

	log.Info("should be dropped")
	log.Warn("should appear")

	out := buf.String()
	assert.False(t, strings.Contains(out, "should be dropped"))
	assert.Contains(t, out, "should appear")
}

func TestProductionDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Writer:      &buf,
		Environment: "production",
	})

	log.Info("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "{"))
}
