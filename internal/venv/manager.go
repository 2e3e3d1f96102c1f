package venv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/config"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
)

// baseExecutableScript prints the interpreter a virtualenv was built from,
// or the interpreter itself when it is not inside one.
const baseExecutableScript = "import sys; print(getattr(sys, '_base_executable', '') or sys.executable)"

const pythonVersionScript = "import platform; print(platform.python_version())"

// ensureDirScript lets venv create the directory given as its argument and
// prints where the directory really is. Store-packaged interpreters have
// their writes redirected, which only the interpreter itself can observe.
const ensureDirScript = "import sys, venv; print(venv.EnvBuilder().ensure_directories(sys.argv[1]).env_dir)"

// CommandRunner executes child processes. *runner.Runner satisfies it.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, opts runner.Options) (runner.Result, error)
}

// Logger is the logging surface the Manager writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// LocateError reports that the system interpreter could not be found.
type LocateError struct {
	Candidate string
	Err       error
}

func (e *LocateError) Error() string {
	if e.Candidate == "" {
		return fmt.Sprintf(messages.VenvSystemPythonNotFoundFmt, "python3", e.Err)
	}
	return fmt.Sprintf(messages.VenvSystemPythonNotFoundFmt, e.Candidate, e.Err)
}

func (e *LocateError) Unwrap() error { return e.Err }

// Remediation returns the text shown to the user alongside the error.
func (e *LocateError) Remediation() string { return messages.VenvSystemPythonRemediation }

// Options configures a Manager.
type Options struct {
	Config *config.Config
	Runner CommandRunner
	System System
	Logger Logger
	// GOOS selects interpreter candidates; defaults to runtime.GOOS.
	GOOS string
}

// PipOptions controls a single pip invocation.
type PipOptions struct {
	// UseSystem runs pip with the system interpreter instead of the managed one.
	UseSystem bool
	Run       runner.Options
}

// Manager drives the lifecycle of one managed environment. It is not safe
// for concurrent use; callers serialize Make and Reset.
type Manager struct {
	Env    Environment
	cfg    *config.Config
	run    CommandRunner
	sys    System
	logger Logger
	goos   string

	offlineDir string
	proxy      string
	systemExe  string
}

// New returns a Manager for env.
func New(env Environment, opts Options) *Manager {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	sys := opts.System
	if sys == nil {
		sys = RealSystem{}
	}
	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	run := opts.Runner
	if run == nil {
		run = runner.New(nil)
	}
	return &Manager{Env: env, cfg: cfg, run: run, sys: sys, logger: logger, goos: goos}
}

// WithOfflineMode makes later "pip install" calls install from the
// requirements.txt and dependencies/ found under dir, without network access.
func (m *Manager) WithOfflineMode(dir string) *Manager {
	m.offlineDir = dir
	return m
}

// OfflineDir returns the offline installation directory, if any.
func (m *Manager) OfflineDir() string {
	return m.offlineDir
}

// WithEnvironment points the Manager at env, typically once the environment
// directory has been located with the Manager's own interpreter.
func (m *Manager) WithEnvironment(env Environment) *Manager {
	m.Env = env
	return m
}

// WithProxy makes child processes see HTTPS_PROXY=url.
func (m *Manager) WithProxy(url string) *Manager {
	m.proxy = strings.TrimSpace(url)
	return m
}

// Python runs the managed interpreter with args.
func (m *Manager) Python(ctx context.Context, opts runner.Options, args ...string) (runner.Result, error) {
	argv := append([]string{m.Env.Exe}, args...)
	return m.run.Run(ctx, argv, m.childOptions(opts))
}

// SystemPython runs the system interpreter with args.
func (m *Manager) SystemPython(ctx context.Context, opts runner.Options, args ...string) (runner.Result, error) {
	exe, err := m.SystemExe(ctx)
	if err != nil {
		return runner.Result{}, err
	}
	argv := append([]string{exe}, args...)
	return m.run.Run(ctx, argv, m.childOptions(opts))
}

// Pip runs "python -m pip <command>" with hardening flags ahead of args.
// An install in offline mode ignores args and installs the offline recipe.
func (m *Manager) Pip(ctx context.Context, command string, opts PipOptions, args ...string) (runner.Result, error) {
	pipArgs := []string{
		"-m", "pip", command,
		// ignore environment variables and user configuration
		"--isolated",
		"--no-cache-dir",
		"--disable-pip-version-check",
	}
	for _, host := range m.cfg.Pip.TrustedHosts {
		pipArgs = append(pipArgs, "--trusted-host", host)
	}

	if command == "install" && m.offlineDir != "" {
		args = []string{
			"--requirement", filepath.Join(m.offlineDir, "requirements.txt"),
			"--upgrade",
			"--upgrade-strategy", "eager",
			"--progress-bar", "off",
			"--find-links", filepath.Join(m.offlineDir, "dependencies"),
			"--no-index",
		}
	}
	pipArgs = append(pipArgs, args...)

	if opts.UseSystem {
		return m.SystemPython(ctx, opts.Run, pipArgs...)
	}
	return m.Python(ctx, opts.Run, pipArgs...)
}

// SystemExe returns the system interpreter used to build the environment.
// A configured interpreter wins; otherwise python3 or python is taken from
// PATH. Either way the result is resolved to the interpreter it was built
// from, so running from inside another virtualenv still finds the real one.
func (m *Manager) SystemExe(ctx context.Context) (string, error) {
	if m.systemExe != "" {
		return m.systemExe, nil
	}

	candidate, err := m.findInterpreter()
	if err != nil {
		return "", err
	}

	exe := candidate
	result, err := m.run.Run(ctx, []string{candidate, "-c", baseExecutableScript}, runner.Options{Quiet: true})
	if err != nil {
		return "", &LocateError{Candidate: candidate, Err: err}
	}
	if base := result.Text(); base != "" {
		if _, statErr := m.sys.Stat(base); statErr == nil {
			exe = base
		} else {
			m.logger.Debugf(messages.VenvBaseExecutableMissingFmt, base, candidate)
		}
	}

	m.logger.Debugf(messages.VenvSystemPythonFmt, exe)
	m.systemExe = exe
	return exe, nil
}

func (m *Manager) findInterpreter() (string, error) {
	if configured := strings.TrimSpace(m.cfg.Python.Interpreter); configured != "" {
		if filepath.IsAbs(configured) {
			if _, err := m.sys.Stat(configured); err != nil {
				return "", &LocateError{Candidate: configured, Err: err}
			}
			return configured, nil
		}
		path, err := m.sys.LookPath(configured)
		if err != nil {
			return "", &LocateError{Candidate: configured, Err: err}
		}
		return path, nil
	}

	names := []string{"python3", "python"}
	if m.goos == "windows" {
		names = []string{"python", "python3"}
	}
	var lastErr error
	for _, name := range names {
		path, err := m.sys.LookPath(name)
		if err == nil {
			return path, nil
		}
		lastErr = err
	}
	return "", &LocateError{Err: lastErr}
}

// SystemPythonVersion returns the system interpreter's version as major.minor.micro.
func (m *Manager) SystemPythonVersion(ctx context.Context) (string, error) {
	result, err := m.SystemPython(ctx, runner.Options{Quiet: true}, "-c", pythonVersionScript)
	if err != nil {
		return "", err
	}
	out := result.Text()
	if out == "" {
		return "", errors.New(messages.VenvPythonVersionEmpty)
	}
	return out, nil
}

// EnsureEnvDir asks the system interpreter's venv module to create dir and
// returns the directory it reports.
func (m *Manager) EnsureEnvDir(ctx context.Context, dir string) (string, error) {
	result, err := m.SystemPython(ctx, runner.Options{Quiet: true}, "-c", ensureDirScript, dir)
	if err != nil {
		return "", fmt.Errorf(messages.VenvEnsureDirFailedFmt, dir, err)
	}
	ensured := result.Text()
	if ensured == "" {
		return "", fmt.Errorf(messages.VenvEnsureDirEmptyFmt, dir)
	}
	return ensured, nil
}

// UserBase returns the system interpreter's user base directory.
func (m *Manager) UserBase(ctx context.Context) (string, error) {
	// site exits nonzero when user site-packages are disabled but still prints the base.
	result, err := m.SystemPython(ctx, runner.Options{Quiet: true, AllowFailure: true}, "-m", "site", "--user-base")
	if err != nil {
		return "", err
	}
	base := result.Text()
	if base == "" {
		return "", fmt.Errorf(messages.VenvUserBaseEmptyFmt, result.ExitCode)
	}
	return base, nil
}

// isolatedVars redirect an interpreter away from its own installation or
// into another virtualenv, so children never inherit them.
var isolatedVars = []string{"PYTHONHOME", "PYTHONPATH", "VIRTUAL_ENV", "__PYVENV_LAUNCHER__"}

// childOptions clears isolatedVars from the child environment and injects
// the proxy. The parent environment is inherited untouched when neither applies.
func (m *Manager) childOptions(opts runner.Options) runner.Options {
	base := opts.Env
	if base == nil {
		base = m.sys.Environ()
	}
	var cleared []string
	for _, key := range isolatedVars {
		if value, ok := runner.GetEnv(base, key); ok {
			m.logger.Debugf(messages.VenvClearingEnvFmt, key, value)
			cleared = append(cleared, key)
		}
	}
	if len(cleared) == 0 && m.proxy == "" {
		return opts
	}

	env := runner.UnsetEnv(base, cleared...)
	if m.proxy != "" {
		env = runner.SetEnv(env, "HTTPS_PROXY", m.proxy)
	}
	opts.Env = env
	return opts
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
