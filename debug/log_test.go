package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogUsesCategoryAsLoggerName(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer Disable()

	Log("touch", "slot %d moved", 3)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "touch", entries[0].LoggerName)
	assert.Equal(t, "slot 3 moved", entries[0].Message)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}

func TestWarnLogsAtWarnLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer Disable()

	Log("frames", "hidden below info")
	Warn("frames", "dropped events")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestInfoLevel(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer Disable()

	Info("sound", "slot %d on", 2)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "slot 2 on", entries[0].Message)
}

func TestLogEveryOnlyLogsEveryNthCall(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer Disable()

	for i := 0; i < 10; i++ {
		LogEvery(5, "every-test", "tick")
	}
	assert.Equal(t, 2, logs.Len())
}

func TestEnableWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	require.NoError(t, Enable(path))
	Log("test", "hello %s", "file")
	Disable()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Debug logging started")
	assert.Contains(t, string(data), "hello file")
}

func TestEnableConsoleRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, EnableConsole("loud"))
}
