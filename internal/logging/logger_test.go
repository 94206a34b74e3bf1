package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_CachedPerComponent(t *testing.T) {
	Configure(Config{Stderr: "never"})
	t.Cleanup(func() { Configure(Config{}) })

	a := NewLogger("dispatch")
	b := NewLogger("dispatch")
	c := NewLogger("session")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "dispatch", a.Data["component"])
}

func TestNewLogger_LevelFromEnv(t *testing.T) {
	t.Setenv("PLAYCORE_LOG_LEVEL", "debug")
	Configure(Config{Level: "error", Stderr: "never"})
	t.Cleanup(func() { Configure(Config{}) })

	assert.Equal(t, logrus.DebugLevel, NewLogger("env").Logger.GetLevel())
}

func TestNewLogger_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "playcore.log")
	Configure(Config{Level: "info", Format: "json", File: path, Stderr: "never"})
	t.Cleanup(func() { Configure(Config{}) })

	NewLogger("file").Info("hello from the test")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
	assert.Contains(t, string(data), `"component":"file"`)
}

func TestNewLogger_FileSharedAndClosedOnConfigure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playcore.log")
	Configure(Config{Format: "json", File: path, Stderr: "never"})
	t.Cleanup(func() { Configure(Config{}) })

	a := NewLogger("one")
	b := NewLogger("two")
	assert.Same(t, a.Logger.Out, b.Logger.Out)

	f, ok := a.Logger.Out.(*os.File)
	require.True(t, ok)

	Configure(Config{Stderr: "never"})
	_, err := f.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
