package pathreg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRegistry struct {
	value        string
	present      bool
	writes       int
	broadcasts   int
	broadcastErr error
}

func (r *memoryRegistry) ReadPath() (string, bool, error) { return r.value, r.present, nil }

func (r *memoryRegistry) WritePath(value string) error {
	r.value = value
	r.present = true
	r.writes++
	return nil
}

func (r *memoryRegistry) Broadcast() error {
	r.broadcasts++
	return r.broadcastErr
}

const winBin = `C:\Users\u\AppData\Roaming\cs_tools\.cs_tools\Scripts`

func newWindowsPath(reg Registry, userBase string) (*WindowsPath, *recordingLogger) {
	logger := &recordingLogger{}
	return &WindowsPath{
		Dir:         winBin,
		Executables: []string{"cs_tools", "cstools"},
		UserBase:    func(context.Context) (string, error) { return userBase, nil },
		Registry:    reg,
		Logger:      logger,
	}, logger
}

func TestWindowsAddAppendsOnce(t *testing.T) {
	reg := &memoryRegistry{value: `C:\Windows;C:\Tools`, present: true}
	w, _ := newWindowsPath(reg, "")

	require.NoError(t, w.Add(context.Background()))
	assert.Equal(t, `C:\Windows;C:\Tools;`+winBin, reg.value)

	require.NoError(t, w.Add(context.Background()))
	assert.Equal(t, `C:\Windows;C:\Tools;`+winBin, reg.value)
	assert.Equal(t, 1, reg.writes)
	assert.Equal(t, 2, reg.broadcasts)
}

func TestWindowsAddThenUnsetRestores(t *testing.T) {
	original := `C:\Windows;C:\Tools`
	reg := &memoryRegistry{value: original, present: true}
	w, _ := newWindowsPath(reg, "")

	require.NoError(t, w.Add(context.Background()))
	require.NoError(t, w.Unset(context.Background()))
	assert.Equal(t, original, reg.value)

	require.NoError(t, w.Unset(context.Background()))
	assert.Equal(t, 2, reg.writes, "unset when absent writes nothing")
}

func TestWindowsBroadcastFailureOnlyWarns(t *testing.T) {
	reg := &memoryRegistry{value: `C:\Windows`, present: true, broadcastErr: errors.New("hung")}
	w, logger := newWindowsPath(reg, "")

	require.NoError(t, w.Add(context.Background()))
	require.Len(t, logger.warn, 1)
	assert.Contains(t, logger.warn[0], "hung")
}

func TestWindowsMissingPathLinksExecutables(t *testing.T) {
	userBase := t.TempDir()
	scripts := filepath.Join(userBase, "Scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))

	var linked [][2]string
	origSymlink := osSymlink
	osSymlink = func(oldname, newname string) error {
		linked = append(linked, [2]string{oldname, newname})
		return nil
	}
	t.Cleanup(func() { osSymlink = origSymlink })

	reg := &memoryRegistry{}
	w, _ := newWindowsPath(reg, userBase)

	require.NoError(t, w.Add(context.Background()))
	assert.Equal(t, [][2]string{
		{filepath.Join(winBin, "cs_tools.exe"), filepath.Join(scripts, "cs_tools.exe")},
		{filepath.Join(winBin, "cstools.exe"), filepath.Join(scripts, "cstools.exe")},
	}, linked)
	assert.Equal(t, 0, reg.writes)
	assert.Equal(t, 0, reg.broadcasts)
}

func TestWindowsSymlinkFallsBackToCopy(t *testing.T) {
	binDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "cs_tools.exe"), []byte("MZ"), 0o755))
	userBase := t.TempDir()
	scripts := filepath.Join(userBase, "Scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "cs_tools.exe"), []byte("stale"), 0o755))

	origSymlink := osSymlink
	osSymlink = func(string, string) error { return &os.LinkError{Op: "symlink", Err: os.ErrPermission} }
	t.Cleanup(func() { osSymlink = origSymlink })

	w, logger := newWindowsPath(&memoryRegistry{}, userBase)
	w.Dir = binDir
	w.Executables = []string{"cs_tools"}

	require.NoError(t, w.Add(context.Background()))
	data, err := os.ReadFile(filepath.Join(scripts, "cs_tools.exe"))
	require.NoError(t, err)
	assert.Equal(t, "MZ", string(data))
	assert.Len(t, logger.info, 2)
}

func TestWindowsMissingPathUnsetRemovesLinks(t *testing.T) {
	userBase := t.TempDir()
	scripts := filepath.Join(userBase, "Scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "cs_tools.exe"), nil, 0o755))

	w, _ := newWindowsPath(&memoryRegistry{}, userBase)
	require.NoError(t, w.Unset(context.Background()), "missing cstools.exe is fine")
	assert.NoFileExists(t, filepath.Join(scripts, "cs_tools.exe"))
}

func TestWindowsUserBaseError(t *testing.T) {
	w, _ := newWindowsPath(&memoryRegistry{}, "")
	w.UserBase = func(context.Context) (string, error) { return "", errors.New("no python") }

	err := w.Add(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no python")
}

func TestWindowsReadErrorPropagates(t *testing.T) {
	w, _ := newWindowsPath(failingRegistry{}, "")
	assert.Error(t, w.Add(context.Background()))
	assert.Error(t, w.Unset(context.Background()))
}

type failingRegistry struct{}

func (failingRegistry) ReadPath() (string, bool, error) { return "", false, errors.New("access denied") }
func (failingRegistry) WritePath(string) error          { return errors.New("access denied") }
func (failingRegistry) Broadcast() error                { return nil }
