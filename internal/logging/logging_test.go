package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"algo-visualizer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var linePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - test - (DEBUG|INFO|WARNING|ERROR) - `)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Warn":    slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelName(slog.LevelDebug))
	assert.Equal(t, "INFO", LevelName(slog.LevelInfo))
	assert.Equal(t, "WARNING", LevelName(slog.LevelWarn))
	assert.Equal(t, "ERROR", LevelName(slog.LevelError+4))
}

func TestHandlerPlainFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler("test", slog.LevelDebug, Sink{W: &buf}))

	logger.Info("Config: loaded", "path", "a b.toml", "n", 3)
	logger.Debug("hello")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, linePattern, lines[0])
	assert.True(t, strings.HasSuffix(lines[0], `- INFO - Config: loaded path="a b.toml" n=3`), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "- DEBUG - hello"), lines[1])
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestHandlerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler("test", slog.LevelWarn, Sink{W: &buf}))
	logger.Info("dropped")
	logger.Warn("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "- WARNING - kept")
}

func TestHandlerColors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler("test", slog.LevelDebug, Sink{W: &buf, Color: true}))

	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "\x1b["), "line %q should start with an escape", line)
		assert.True(t, strings.HasSuffix(line, "\x1b[0m"), "line %q should be reset", line)
	}
	assert.Contains(t, lines[0], "36")
	assert.Contains(t, lines[1], "32")
	assert.Contains(t, lines[2], "33")
	assert.Contains(t, lines[3], "31")
}

func TestHandlerFanOut(t *testing.T) {
	var console, file bytes.Buffer
	logger := slog.New(NewHandler("test", slog.LevelInfo,
		Sink{W: &console, Color: true}, Sink{W: &file}))

	logger.Info("both")
	assert.Contains(t, console.String(), "both")
	assert.Regexp(t, linePattern, file.String())
	assert.NotContains(t, file.String(), "\x1b[")
}

func TestHandlerAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler("test", slog.LevelInfo, Sink{W: &buf}))

	logger.With("page", "grayscale").WithGroup("tone").Info("changed", "gamma", 0.5)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), "changed page=grayscale tone.gamma=0.5"), buf.String())

	buf.Reset()
	logger.Info("nested", slog.Group("rgb", "r", 255, "g", 0))
	assert.Contains(t, buf.String(), "nested rgb.r=255 rgb.g=0")
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closer, err := New(config.Log{Level: "debug", ToFile: true, FilePath: path}, "test")
	require.NoError(t, err)

	logger.Debug("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, linePattern, string(data))
	assert.Contains(t, string(data), "- DEBUG - to file")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(config.Log{Level: "loud"}, "test")
	assert.Error(t, err)
}
