package venv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/fsutil"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
)

type pipListEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// PackageVersion returns the installed version of name. useSystem queries
// the system interpreter instead of the managed one. Names match exactly.
func (m *Manager) PackageVersion(ctx context.Context, name string, useSystem bool) (string, bool, error) {
	result, err := m.Pip(ctx, "list", PipOptions{UseSystem: useSystem, Run: runner.Options{Quiet: true}}, "--format", "json")
	if err != nil {
		return "", false, err
	}

	var installed []pipListEntry
	if err := json.Unmarshal(result.Stdout, &installed); err != nil {
		return "", false, fmt.Errorf(messages.VenvDecodePipListFmt, err)
	}
	for _, pkg := range installed {
		if pkg.Name == name {
			return pkg.Version, true, nil
		}
	}
	return "", false, nil
}

// IsPackageInstalled reports whether name is installed.
func (m *Manager) IsPackageInstalled(ctx context.Context, name string, useSystem bool) (bool, error) {
	_, found, err := m.PackageVersion(ctx, name, useSystem)
	return found, err
}

// CheckIfGloballyInstalled reports whether the app is installed into the
// system interpreter, where its executables would shadow the managed ones
// on PATH. When it is, cleanup instructions are logged; with remove set the
// global copy is uninstalled and false is returned.
func (m *Manager) CheckIfGloballyInstalled(ctx context.Context, remove bool) (bool, error) {
	app := m.cfg.App.Name
	installed, err := m.IsPackageInstalled(ctx, app, true)
	if err != nil {
		return false, err
	}
	if !installed {
		return false, nil
	}

	systemExe, err := m.SystemExe(ctx)
	if err != nil {
		return false, err
	}
	if fsutil.SamePath(m.Env.Exe, systemExe) {
		return true, nil
	}

	m.logger.Warnf(messages.VenvGloballyInstalledFmt, m.cfg.App.DisplayName, systemExe)
	if !remove {
		return true, nil
	}
	m.logger.Infof(messages.VenvRemovingGlobalFmt, app)
	if _, err := m.Pip(ctx, "uninstall", PipOptions{UseSystem: true}, app, "--yes"); err != nil {
		return true, fmt.Errorf(messages.VenvRemoveGlobalFailedFmt, app, err)
	}
	return false, nil
}
