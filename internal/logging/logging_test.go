package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/testutil"
)

func logFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, FilePattern))
	require.NoError(t, err)
	return matches
}

func TestConsoleThresholdDefaultsToInfo(t *testing.T) {
	var console bytes.Buffer
	logger := New(Options{Console: &console, LogDir: t.TempDir()})
	t.Cleanup(func() { _ = logger.Close() })

	logger.Debug("hidden detail")
	logger.Info("visible")

	assert.NotContains(t, console.String(), "hidden detail")
	assert.Contains(t, console.String(), "visible")
}

func TestVerboseShowsDebug(t *testing.T) {
	var console bytes.Buffer
	logger := New(Options{Console: &console, Verbose: true, LogDir: t.TempDir()})
	t.Cleanup(func() { _ = logger.Close() })

	logger.Debugf("resolved %s", "python3")
	assert.Contains(t, console.String(), "resolved python3")
}

func TestNoFileUntilError(t *testing.T) {
	dir := t.TempDir()
	logger := New(Options{Console: &bytes.Buffer{}, LogDir: dir})
	t.Cleanup(func() { _ = logger.Close() })

	logger.Debug("step one")
	logger.Warn("careful")
	assert.Empty(t, logFiles(t, dir))

	logger.Error("it broke")
	files := logFiles(t, dir)
	require.Len(t, files, 1)

	logger.Info("after the error")
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "step one", "buffered debug records are drained")
	assert.Contains(t, content, "it broke")
	assert.Contains(t, content, "after the error")
}

func TestRunnerStyleLogCallsDrainOnError(t *testing.T) {
	dir := t.TempDir()
	logger := New(Options{Console: &bytes.Buffer{}, LogDir: dir})
	t.Cleanup(func() { _ = logger.Close() })

	logger.Log(log.WarnLevel, "disk low")
	assert.Empty(t, logFiles(t, dir))
	logger.Log(log.ErrorLevel, "no matching distribution")
	assert.Len(t, logFiles(t, dir), 1)
}

func TestDrainReturnsStablePath(t *testing.T) {
	dir := t.TempDir()
	logger := New(Options{Console: &bytes.Buffer{}, LogDir: dir})
	t.Cleanup(func() { _ = logger.Close() })

	logger.Info("hello")
	first, err := logger.Drain()
	require.NoError(t, err)
	second, err := logger.Drain()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, filepath.IsAbs(first))
	assert.True(t, strings.HasPrefix(filepath.Base(first), "cs_tools-bootstrap-error-"))
}

func TestDrainFallsBackToWorkingDir(t *testing.T) {
	cwd := t.TempDir()
	logger := New(Options{Console: &bytes.Buffer{}, LogDir: filepath.Join(cwd, "missing")})
	t.Cleanup(func() { _ = logger.Close() })

	testutil.WithWorkingDir(t, cwd, func() {
		_, err := logger.Drain()
		require.NoError(t, err)
	})
	assert.Len(t, logFiles(t, cwd), 1)
}

func TestSetLogDirMovesFutureFile(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	logger := New(Options{Console: &bytes.Buffer{}, LogDir: first})
	t.Cleanup(func() { _ = logger.Close() })

	logger.SetLogDir(second)
	logger.Error("boom")
	assert.Empty(t, logFiles(t, first))
	assert.Len(t, logFiles(t, second), 1)
}

func TestDiscardNeverCreatesFile(t *testing.T) {
	cwd := t.TempDir()
	testutil.WithWorkingDir(t, cwd, func() {
		logger := Discard()
		logger.Error("ignored")
		_, err := logger.Drain()
		assert.Error(t, err)
		assert.NoError(t, logger.Close())
	})
	assert.Empty(t, logFiles(t, cwd))
}
