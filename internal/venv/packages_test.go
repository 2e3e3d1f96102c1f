package venv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
)

func TestIsPackageInstalledExactMatch(t *testing.T) {
	run := &fakeRunner{handler: pipList(`[{"name":"cs_tools_extras","version":"1.0"},{"name":"CS_Tools","version":"1.0"}]`)}
	m, _ := newTestManager(t, run, testSystem{})

	installed, err := m.IsPackageInstalled(context.Background(), "cs_tools", false)
	require.NoError(t, err)
	assert.False(t, installed)
	assert.True(t, run.calls[0].opts.Quiet)
	assert.Equal(t, []string{"--format", "json"}, run.calls[0].argv[len(run.calls[0].argv)-2:])
}

func TestPackageVersion(t *testing.T) {
	run := &fakeRunner{handler: pipList(`[{"name":"cs_tools","version":"1.5.3"}]`)}
	m, _ := newTestManager(t, run, testSystem{})

	v, found, err := m.PackageVersion(context.Background(), "cs_tools", false)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "1.5.3", v)
}

func TestPackageVersionBadJSON(t *testing.T) {
	run := &fakeRunner{handler: pipList(`not json`)}
	m, _ := newTestManager(t, run, testSystem{})

	_, _, err := m.PackageVersion(context.Background(), "cs_tools", false)
	assert.Error(t, err)
}

func TestCheckIfGloballyInstalledNotInstalled(t *testing.T) {
	run := &fakeRunner{handler: pipList(`[]`)}
	m, logger := newTestManager(t, run, testSystem{})

	global, err := m.CheckIfGloballyInstalled(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, global)
	assert.Empty(t, logger.warn)
}

func TestCheckIfGloballyInstalledWarnsWithoutRemoving(t *testing.T) {
	run := &fakeRunner{handler: pipList(`[{"name":"cs_tools","version":"1.4.0"}]`)}
	m, logger := newTestManager(t, run, testSystem{})

	global, err := m.CheckIfGloballyInstalled(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, global)
	require.Len(t, logger.warn, 1)
	assert.Contains(t, logger.warn[0], "pip freeze > global-env-requirements.txt")
	for _, argv := range run.argvs() {
		assert.NotContains(t, argv, "uninstall")
	}
}

func TestCheckIfGloballyInstalledRemoves(t *testing.T) {
	run := &fakeRunner{handler: pipList(`[{"name":"cs_tools","version":"1.4.0"}]`)}
	m, _ := newTestManager(t, run, testSystem{})

	global, err := m.CheckIfGloballyInstalled(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, global)

	last := run.calls[len(run.calls)-1].argv
	assert.Equal(t, systemPython, last[0])
	assert.Equal(t, "uninstall", last[3])
	assert.Equal(t, []string{"cs_tools", "--yes"}, last[len(last)-2:])
}

func TestCheckIfGloballyInstalledSameInterpreterIsNotShadowing(t *testing.T) {
	dir := t.TempDir()
	m, logger := newTestManager(t, &fakeRunner{}, testSystem{})
	touchExe(t, m)
	link := filepath.Join(dir, "python3")
	require.NoError(t, os.Symlink(m.Env.Exe, link))
	m.run = &fakeRunner{handler: func(argv []string) (runner.Result, error) {
		if strings.Contains(strings.Join(argv, " "), "pip list") {
			return runner.Result{Stdout: []byte(`[{"name":"cs_tools","version":"1.5.0"}]`)}, nil
		}
		return runner.Result{}, nil
	}}
	m.sys = testSystem{LookPathFunc: func(string) (string, error) { return link, nil }}

	global, err := m.CheckIfGloballyInstalled(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, global)
	assert.Empty(t, logger.warn)
}
