package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFileOutput(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "test.log")

	opts := DefaultOptions()
	opts.ConsoleOutput = false
	opts.FileOutput = true
	opts.LogFilePath = logPath

	log, err := NewLogger(opts)
	require.NoError(t, err)

	log.Infof("hello %s", "world")
	log.Debugf("debug detail")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "hello world")
	assert.Contains(t, content, "debug detail")
	assert.Contains(t, content, `"level":"INFO"`)
}

func TestNewLoggerFileOutputRequiresPath(t *testing.T) {
	opts := DefaultOptions()
	opts.ConsoleOutput = false
	opts.FileOutput = true
	opts.LogFilePath = ""

	_, err := NewLogger(opts)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "log file path"))
}

func TestNewLoggerNoOutputsIsNoop(t *testing.T) {
	opts := Options{}
	log, err := NewLogger(opts)
	require.NoError(t, err)
	// Must not panic.
	log.Infof("dropped")
	log.Errorf("dropped too")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "debug", DebugLevel.String())
	assert.Equal(t, "info", InfoLevel.String())
	assert.Equal(t, "warn", WarnLevel.String())
	assert.Equal(t, "error", ErrorLevel.String())
	assert.Equal(t, "fatal", FatalLevel.String())
}
