package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withLogFile enables debug logging and removes the log dir when the test ends
func withLogFile(t *testing.T) *os.File {
	t.Helper()
	t.Cleanup(func() { os.RemoveAll(logDir) })

	f := setupLogging(true)
	require.NotNil(t, f, "debug logging must open a file")
	t.Cleanup(func() { f.Close() })
	return f
}

func readLog(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	require.NoError(t, err)
	return string(data)
}

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	t.Cleanup(func() { os.RemoveAll(logDir) })
	os.RemoveAll(logDir)

	assert.Nil(t, setupLogging(false))
	_, err := os.Stat(logDir)
	assert.True(t, os.IsNotExist(err), "no log dir without --debug")
}

func TestSetupLogging_WritesStructuredLines(t *testing.T) {
	logger := newFileLogger(withLogFile(t))
	logger.Info().Str("system", "test").Msg("structured line")

	content := readLog(t)
	assert.Contains(t, content, `"message":"structured line"`)
	assert.Contains(t, content, `"system":"test"`)
	assert.Contains(t, content, `"time":`)
}

func TestSetupLogging_LevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	logger := newFileLogger(withLogFile(t))

	logger.Debug().Msg("hidden")
	logger.Warn().Msg("shown")

	content := readLog(t)
	assert.NotContains(t, content, "hidden")
	assert.Contains(t, content, "shown")
}

func TestSetupLogging_RotatesOversizedFile(t *testing.T) {
	t.Cleanup(func() { os.RemoveAll(logDir) })
	require.NoError(t, os.MkdirAll(logDir, 0755))
	logPath := filepath.Join(logDir, logFileName)
	require.NoError(t, os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644))

	withLogFile(t)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	var rotated []string
	for _, e := range entries {
		if e.Name() != logFileName && filepath.Ext(e.Name()) == ".log" {
			rotated = append(rotated, e.Name())
		}
	}
	assert.Len(t, rotated, 1)

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(maxLogSize))
}
