package venv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/version"
)

// CleanupOutcome records what happened to one temp directory entry.
type CleanupOutcome int

const (
	// CleanupCleaned means the entry was removed.
	CleanupCleaned CleanupOutcome = iota
	// CleanupSkippedInUse means the entry could not be removed, typically
	// because another process holds it open.
	CleanupSkippedInUse
)

// CleanupEntry is the outcome for one path under TmpDir.
type CleanupEntry struct {
	Path    string
	Outcome CleanupOutcome
	Err     error
}

// CleanupReport summarizes a temp directory cleanup.
type CleanupReport struct {
	Entries []CleanupEntry
}

// Skipped returns the entries left in place.
func (r CleanupReport) Skipped() []CleanupEntry {
	var skipped []CleanupEntry
	for _, entry := range r.Entries {
		if entry.Outcome == CleanupSkippedInUse {
			skipped = append(skipped, entry)
		}
	}
	return skipped
}

// Exists reports whether the managed interpreter is present.
func (m *Manager) Exists() bool {
	_, err := m.sys.Stat(m.Env.Exe)
	return err == nil
}

// EnsureDirectories creates the environment, cache, log and temp
// directories and empties the temp directory. Entries that cannot be
// removed are skipped and reported once; directory creation failures are
// returned.
func (m *Manager) EnsureDirectories() (CleanupReport, error) {
	for _, dir := range []string{m.Env.VenvDir, m.Env.CacheDir, m.Env.LogDir, m.Env.TmpDir} {
		if err := m.sys.MkdirAll(dir, 0o755); err != nil {
			return CleanupReport{}, fmt.Errorf(messages.VenvCreateDirFmt, dir, err)
		}
	}

	entries, err := m.sys.ReadDir(m.Env.TmpDir)
	if err != nil {
		return CleanupReport{}, fmt.Errorf(messages.VenvReadTmpDirFmt, m.Env.TmpDir, err)
	}

	var report CleanupReport
	for _, entry := range entries {
		path := filepath.Join(m.Env.TmpDir, entry.Name())
		if err := m.sys.RemoveAll(path); err != nil {
			report.Entries = append(report.Entries, CleanupEntry{Path: path, Outcome: CleanupSkippedInUse, Err: err})
			continue
		}
		report.Entries = append(report.Entries, CleanupEntry{Path: path, Outcome: CleanupCleaned})
	}

	if skipped := report.Skipped(); len(skipped) > 0 {
		paths := make([]string, 0, len(skipped))
		for _, entry := range skipped {
			paths = append(paths, entry.Path)
			m.logger.Debugf(messages.VenvTmpEntrySkippedFmt, entry.Path, entry.Err)
		}
		m.logger.Warnf(messages.VenvTmpInUseFmt, len(paths), strings.Join(paths, ", "))
	}
	return report, nil
}

// Make creates the environment with the system interpreter, bootstraps pip
// and upgrades it to the configured minimum. It does nothing when the
// environment already exists.
func (m *Manager) Make(ctx context.Context) error {
	if m.Exists() {
		return nil
	}

	exe, err := m.SystemExe(ctx)
	if err != nil {
		return err
	}
	m.logger.Debugf(messages.VenvCreatingFmt, exe, m.Env.VenvDir)
	if _, err := m.run.Run(ctx, []string{exe, "-m", "venv", m.Env.VenvDir}, m.childOptions(runner.Options{})); err != nil {
		return fmt.Errorf(messages.VenvCreateFailedFmt, m.Env.VenvDir, err)
	}

	if _, err := m.Python(ctx, runner.Options{}, "-m", "ensurepip"); err != nil {
		return fmt.Errorf(messages.VenvEnsurePipFailedFmt, err)
	}

	// pip >= 23.1 brings the resolver backjumping installs rely on.
	minimum := m.cfg.Pip.MinimumVersion
	if _, err := m.Pip(ctx, "install", PipOptions{}, "pip >= "+minimum, "--upgrade"); err != nil {
		return fmt.Errorf(messages.VenvUpgradePipFailedFmt, err)
	}

	m.checkPipVersion(ctx, minimum)
	return nil
}

// checkPipVersion warns when the upgraded pip is still below minimum.
func (m *Manager) checkPipVersion(ctx context.Context, minimum string) {
	installed, found, err := m.PackageVersion(ctx, "pip", false)
	if err == nil && !found {
		err = errors.New(messages.VenvPipNotListed)
	}
	if err != nil {
		m.logger.Debugf(messages.VenvPipVersionUnknownFmt, err)
		return
	}
	ok, err := version.AtLeast(installed, minimum)
	if err != nil {
		m.logger.Debugf(messages.VenvPipVersionUnknownFmt, err)
		return
	}
	if !ok {
		m.logger.Warnf(messages.VenvPipTooOldFmt, installed, minimum)
	}
}

// Reset destroys the environment and makes it again. Removal errors are
// logged and ignored.
func (m *Manager) Reset(ctx context.Context) error {
	if err := m.sys.RemoveAll(m.Env.VenvDir); err != nil {
		m.logger.Debugf(messages.VenvRemoveFailedFmt, m.Env.VenvDir, err)
	}
	return m.Make(ctx)
}

// Remove deletes the environment directory, logging rather than returning failures.
func (m *Manager) Remove() {
	if err := m.sys.RemoveAll(m.Env.VenvDir); err != nil {
		m.logger.Debugf(messages.VenvRemoveFailedFmt, m.Env.VenvDir, err)
	}
}
