package doctor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/config"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/fsutil"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/update"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/venv"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/version"
)

// Inspector is the read-only view of the managed environment the checks use.
// *venv.Manager satisfies it.
type Inspector interface {
	SystemExe(ctx context.Context) (string, error)
	SystemPythonVersion(ctx context.Context) (string, error)
	Exists() bool
	PackageVersion(ctx context.Context, name string, useSystem bool) (string, bool, error)
}

// Options carries everything Run needs.
type Options struct {
	Config    *config.Config
	Env       venv.Environment
	Inspector Inspector
	// PathList is the PATH value of the current process.
	PathList string
	// Offline skips the release lookup.
	Offline bool
	// Command is the CLI name used in recommendations.
	Command string
}

var checkForUpdate = update.Check

// Run executes every check in report order.
func Run(ctx context.Context, opts Options) []Result {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	return []Result{
		CheckPython(ctx, opts.Inspector, cfg.Python.MinimumVersion),
		CheckEnvironment(opts.Inspector, opts.Env, opts.Command),
		CheckGlobalInstall(ctx, opts.Inspector, opts.Env, cfg.App.Name, opts.Command),
		CheckPath(opts.Env.BinDir(), opts.PathList, opts.Command),
		CheckUpdate(ctx, opts.Inspector, cfg, opts.Offline, opts.Command),
	}
}

// CheckPython verifies a system interpreter exists and meets minimum.
func CheckPython(ctx context.Context, m Inspector, minimum string) Result {
	result := Result{CheckName: messages.DoctorCheckNamePython}
	exe, err := m.SystemExe(ctx)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorPythonMissingFmt, err)
		result.Recommendation = messages.VenvSystemPythonRemediation
		return result
	}
	current, err := m.SystemPythonVersion(ctx)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorPythonVersionFailedFmt, exe, err)
		return result
	}
	ok, err := version.AtLeast(current, minimum)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorPythonVersionFailedFmt, exe, err)
		return result
	}
	if !ok {
		result.Status = StatusFail
		result.Message = fmt.Sprintf(messages.DoctorPythonTooOldFmt, current, exe, minimum)
		result.Recommendation = messages.DoctorPythonTooOldRecommend
		return result
	}
	result.Status = StatusOK
	result.Message = fmt.Sprintf(messages.DoctorPythonOKFmt, current, exe)
	return result
}

// CheckEnvironment reports whether the managed environment has been made.
func CheckEnvironment(m Inspector, env venv.Environment, command string) Result {
	if !m.Exists() {
		return Result{
			Status:         StatusWarn,
			CheckName:      messages.DoctorCheckNameEnvironment,
			Message:        fmt.Sprintf(messages.DoctorEnvMissingFmt, env.VenvDir),
			Recommendation: fmt.Sprintf(messages.DoctorEnvMissingRecommendFmt, command),
		}
	}
	return Result{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameEnvironment,
		Message:   fmt.Sprintf(messages.DoctorEnvPresentFmt, env.VenvDir),
	}
}

// CheckGlobalInstall warns when app is installed into the system interpreter.
func CheckGlobalInstall(ctx context.Context, m Inspector, env venv.Environment, app string, command string) Result {
	result := Result{CheckName: messages.DoctorCheckNameGlobal}
	exe, err := m.SystemExe(ctx)
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorGlobalCheckFailedFmt, err)
		return result
	}
	if fsutil.SamePath(exe, env.Exe) {
		result.Status = StatusOK
		result.Message = messages.DoctorGlobalSameInterpreter
		return result
	}
	installed, found, err := m.PackageVersion(ctx, app, true)
	switch {
	case err != nil:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorGlobalCheckFailedFmt, err)
	case found:
		result.Status = StatusWarn
		result.Message = fmt.Sprintf(messages.DoctorGlobalInstalledFmt, app, installed)
		result.Recommendation = fmt.Sprintf(messages.DoctorGlobalRecommendFmt, command)
	default:
		result.Status = StatusOK
		result.Message = fmt.Sprintf(messages.DoctorGlobalCleanFmt, app)
	}
	return result
}

// CheckPath reports whether binDir is an entry of pathList.
func CheckPath(binDir string, pathList string, command string) Result {
	for _, entry := range filepath.SplitList(pathList) {
		if entry == "" {
			continue
		}
		if fsutil.SamePath(entry, binDir) {
			return Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNamePath,
				Message:   fmt.Sprintf(messages.DoctorPathPresentFmt, binDir),
			}
		}
	}
	return Result{
		Status:         StatusWarn,
		CheckName:      messages.DoctorCheckNamePath,
		Message:        fmt.Sprintf(messages.DoctorPathMissingFmt, binDir),
		Recommendation: fmt.Sprintf(messages.DoctorPathMissingRecommendFmt, command),
	}
}

// CheckUpdate compares the installed app version with the latest release.
func CheckUpdate(ctx context.Context, m Inspector, cfg *config.Config, offline bool, command string) Result {
	result := Result{CheckName: messages.DoctorCheckNameUpdate, Status: StatusWarn}
	if offline {
		result.Message = messages.DoctorUpdateSkippedOffline
		return result
	}
	if !m.Exists() {
		result.Message = fmt.Sprintf(messages.DoctorUpdateNotInstalledFmt, cfg.App.Name)
		result.Recommendation = fmt.Sprintf(messages.DoctorEnvMissingRecommendFmt, command)
		return result
	}
	installed, found, err := m.PackageVersion(ctx, cfg.App.Name, false)
	if err != nil {
		result.Message = fmt.Sprintf(messages.DoctorUpdateInstalledVersionFmt, err)
		return result
	}
	if !found {
		result.Message = fmt.Sprintf(messages.DoctorUpdateNotInstalledFmt, cfg.App.Name)
		result.Recommendation = fmt.Sprintf(messages.DoctorEnvMissingRecommendFmt, command)
		return result
	}

	check, err := checkForUpdate(ctx, cfg.App.Repository, installed)
	switch {
	case err != nil && update.IsRateLimitError(err):
		result.Message = messages.DoctorUpdateRateLimited
	case err != nil:
		result.Message = fmt.Sprintf(messages.DoctorUpdateFailedFmt, err)
		result.Recommendation = messages.DoctorUpdateFailedRecommend
	case check.Outdated:
		result.Message = fmt.Sprintf(messages.DoctorUpdateAvailableFmt, cfg.App.Name, check.Latest, check.Installed)
		result.Recommendation = fmt.Sprintf(messages.DoctorUpdateAvailableRecommendFmt, command)
	default:
		result.Status = StatusOK
		result.Message = fmt.Sprintf(messages.DoctorUpToDateFmt, cfg.App.Name, check.Installed)
	}
	return result
}
