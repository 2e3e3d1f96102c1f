// Package bootstrap drives install, reinstall, and uninstall end to end:
// preflight checks, the managed environment, the requirement to install, and
// PATH registration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/config"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/lock"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/pathreg"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/update"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/venv"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/version"
)

const (
	// EnvConda is set by conda inside an activated environment.
	EnvConda = "CONDA_DEFAULT_ENV"
	// EnvIgnoreConda lets users proceed inside conda anyway.
	EnvIgnoreConda = "CS_TOOLS_IGNORE_CONDA_PATH"
)

// Manager is the part of *venv.Manager the driver uses.
type Manager interface {
	EnsureDirectories() (venv.CleanupReport, error)
	Exists() bool
	Make(ctx context.Context) error
	Reset(ctx context.Context) error
	Remove()
	CheckIfGloballyInstalled(ctx context.Context, remove bool) (bool, error)
	Pip(ctx context.Context, command string, opts venv.PipOptions, args ...string) (runner.Result, error)
	SystemExe(ctx context.Context) (string, error)
	SystemPythonVersion(ctx context.Context) (string, error)
	OfflineDir() string
}

// Logger receives progress messages. SetLogDir moves the error log next to
// the environment once its directories exist.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	SetLogDir(dir string)
}

// Deps wires a Bootstrapper.
type Deps struct {
	Config  *config.Config
	Env     venv.Environment
	Manager Manager
	Path    pathreg.Registrar
	Logger  Logger
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// GOOS defaults to runtime.GOOS.
	GOOS string
	// LatestRelease defaults to update.LatestRelease.
	LatestRelease func(ctx context.Context, repo string, allowPrerelease bool) (update.Release, error)
}

// InstallOptions selects what Install puts into the environment.
type InstallOptions struct {
	// Reinstall unregisters PATH and rebuilds the environment first.
	Reinstall bool
	// Beta allows prerelease tags when picking the latest release.
	Beta bool
	// DevDir installs a local checkout instead of a release.
	DevDir string
}

// PreflightError is a refusal to proceed that the user can fix.
type PreflightError struct {
	Reason string
	Fix    string
}

func (e *PreflightError) Error() string { return e.Reason }

// Remediation returns the text shown to the user alongside the error.
func (e *PreflightError) Remediation() string { return e.Fix }

var (
	withLock = lock.With
	osStat   = os.Stat
	absPath  = filepath.Abs
)

// Bootstrapper runs one operation at a time under the environment lock.
type Bootstrapper struct {
	cfg     *config.Config
	env     venv.Environment
	manager Manager
	path    pathreg.Registrar
	logger  Logger
	getenv  func(string) string
	goos    string
	latest  func(ctx context.Context, repo string, allowPrerelease bool) (update.Release, error)
}

// New returns a Bootstrapper, filling unset dependencies with defaults.
func New(d Deps) *Bootstrapper {
	b := &Bootstrapper{
		cfg:     d.Config,
		env:     d.Env,
		manager: d.Manager,
		path:    d.Path,
		logger:  d.Logger,
		getenv:  d.Getenv,
		goos:    d.GOOS,
		latest:  d.LatestRelease,
	}
	if b.cfg == nil {
		b.cfg = config.Default()
	}
	if b.getenv == nil {
		b.getenv = os.Getenv
	}
	if b.goos == "" {
		b.goos = runtime.GOOS
	}
	if b.latest == nil {
		b.latest = update.LatestRelease
	}
	return b
}

// Preflight refuses to run inside an activated conda environment (unless
// told to ignore it) or with a system interpreter below the minimum version.
func (b *Bootstrapper) Preflight(ctx context.Context) error {
	if condaEnv := b.getenv(EnvConda); condaEnv != "" && b.getenv(EnvIgnoreConda) == "" {
		return &PreflightError{
			Reason: fmt.Sprintf(messages.BootstrapCondaDetectedFmt, condaEnv),
			Fix:    messages.BootstrapCondaRemediation,
		}
	}

	exe, err := b.manager.SystemExe(ctx)
	if err != nil {
		return err
	}
	current, err := b.manager.SystemPythonVersion(ctx)
	if err != nil {
		return err
	}
	b.logger.Debugf(messages.BootstrapPlatformFmt, b.goos, runtime.GOARCH, current, exe)

	minimum := b.cfg.Python.MinimumVersion
	ok, err := version.AtLeast(current, minimum)
	if err != nil {
		return err
	}
	if !ok {
		fix := messages.BootstrapPythonRemediation
		if b.goos == "windows" {
			fix = messages.BootstrapPythonRemediationWindows
		}
		return &PreflightError{
			Reason: fmt.Sprintf(messages.BootstrapPythonTooOldFmt, current, minimum),
			Fix:    fix,
		}
	}
	return nil
}

// Install makes the environment if needed, removes any global copy that
// would shadow it, installs the requirement, and registers PATH.
func (b *Bootstrapper) Install(ctx context.Context, opts InstallOptions) error {
	return withLock(b.env.LockPath(), func() error {
		return b.install(ctx, opts)
	})
}

func (b *Bootstrapper) install(ctx context.Context, opts InstallOptions) error {
	display := b.cfg.App.DisplayName

	if _, err := b.manager.EnsureDirectories(); err != nil {
		return err
	}
	b.logger.SetLogDir(b.env.LogDir)

	if !b.manager.Exists() {
		b.logger.Infof(messages.BootstrapCreatingEnvFmt, display)
		if err := b.manager.Make(ctx); err != nil {
			return err
		}
	}

	b.logger.Infof(messages.BootstrapCheckingGlobalFmt, display)
	if _, err := b.manager.CheckIfGloballyInstalled(ctx, true); err != nil {
		return err
	}

	if opts.Reinstall {
		b.logger.Infof(messages.BootstrapResettingFmt, display)
		if err := b.path.Unset(ctx); err != nil {
			return err
		}
		if err := b.manager.Reset(ctx); err != nil {
			return err
		}
	}

	requirement, err := b.requirement(ctx, opts)
	if err != nil {
		return err
	}

	b.logger.Infof(messages.BootstrapInstallingFmt, display)
	if _, err := b.manager.Pip(ctx, "install", venv.PipOptions{}, requirement, "--upgrade"); err != nil {
		return err
	}
	return b.path.Add(ctx)
}

// requirement picks what pip installs: the offline recipe, a local
// checkout, or the archive of the latest release.
func (b *Bootstrapper) requirement(ctx context.Context, opts InstallOptions) (string, error) {
	base := b.cfg.Requirement()

	if dir := b.manager.OfflineDir(); dir != "" {
		b.logger.Infof(messages.BootstrapUsingOfflineFmt, dir)
		return base, nil
	}

	if opts.DevDir != "" {
		b.logger.Infof(messages.BootstrapInstallingDev)
		dir, err := absPath(opts.DevDir)
		if err != nil {
			return "", fmt.Errorf(messages.BootstrapDevDirFmt, opts.DevDir, err)
		}
		info, err := osStat(dir)
		if err != nil {
			return "", fmt.Errorf(messages.BootstrapDevDirFmt, dir, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf(messages.BootstrapDevDirNotDirFmt, dir)
		}
		if b.cfg.App.Extra == "" {
			return dir, nil
		}
		return fmt.Sprintf("%s[%s]", dir, b.cfg.App.Extra), nil
	}

	beta := ""
	if opts.Beta {
		beta = messages.BootstrapBetaLabel
	}
	b.logger.Infof(messages.BootstrapFetchingReleaseFmt, b.cfg.App.DisplayName, beta)
	release, err := b.latest(ctx, b.cfg.App.Repository, opts.Beta)
	if err != nil {
		return "", err
	}
	b.logger.Infof(messages.BootstrapFoundVersionFmt, release.Tag)
	return release.Requirement(base), nil
}

// Uninstall deletes the environment and unregisters PATH. Deletion is best
// effort; PATH is unregistered regardless.
func (b *Bootstrapper) Uninstall(ctx context.Context) error {
	return b.withExistingLock(func() error {
		b.logger.Infof(messages.BootstrapUninstallingFmt, b.cfg.App.DisplayName)
		b.manager.Remove()
		return b.path.Unset(ctx)
	})
}

// AddPath registers the environment's bin directory on PATH.
func (b *Bootstrapper) AddPath(ctx context.Context) error {
	return withLock(b.env.LockPath(), func() error {
		return b.path.Add(ctx)
	})
}

// UnsetPath removes the environment's bin directory from PATH.
func (b *Bootstrapper) UnsetPath(ctx context.Context) error {
	return b.withExistingLock(func() error {
		return b.path.Unset(ctx)
	})
}

// withExistingLock runs fn under the environment lock, or unlocked when the
// application directory is absent, since taking the lock would create it.
func (b *Bootstrapper) withExistingLock(fn func() error) error {
	if _, err := osStat(b.env.AppDir); errors.Is(err, fs.ErrNotExist) {
		b.logger.Debugf(messages.BootstrapNotInstalledFmt, b.env.AppDir)
		return fn()
	}
	return withLock(b.env.LockPath(), fn)
}
