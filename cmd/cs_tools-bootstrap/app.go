package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/bootstrap"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/config"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/doctor"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/locate"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/logging"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/pathreg"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/venv"
)

// Operations is what the commands ask of the bootstrapper.
type Operations interface {
	Preflight(ctx context.Context) error
	Install(ctx context.Context, opts bootstrap.InstallOptions) error
	Uninstall(ctx context.Context) error
	AddPath(ctx context.Context) error
	UnsetPath(ctx context.Context) error
}

// app is the runtime one command works with.
type app struct {
	cfg       *config.Config
	env       venv.Environment
	inspector doctor.Inspector
	path      pathreg.Registrar
	ops       Operations
	offline   bool
}

// remediator is implemented by errors that carry instructions for the user.
type remediator interface {
	Remediation() string
}

var (
	newApp    = buildApp
	getenv    = os.Getenv
	setenv    = os.Setenv
	homeDir   = homedir.Dir
	statPath  = os.Stat
	resolveFn = locate.ResolveRoot
)

// buildApp wires config, the managed environment, and the PATH registrar
// for the current platform. logger is already attached to the console.
func buildApp(ctx context.Context, flags *globalFlags, logger *logging.Logger) (*app, error) {
	cfg, err := config.Load(flags.configPath, getenv)
	if err != nil {
		return nil, err
	}

	if flags.proxy != "" {
		// Also routes this process's release lookups through the proxy.
		if err := setenv("HTTPS_PROXY", flags.proxy); err != nil {
			return nil, err
		}
		logger.Debugf(messages.RootProxyFmt, config.RedactCredentials(flags.proxy))
	}

	run := runner.New(logger)
	manager := venv.New(venv.Environment{}, venv.Options{Config: cfg, Runner: run, Logger: logger})

	// On Windows the system interpreter creates the directory and reports
	// where its writes actually land.
	venvDir, err := resolveFn(ctx, locate.RealSystem{Builder: manager}, cfg.App.Name, logger)
	if err != nil {
		return nil, err
	}
	env := venv.NewEnvironment(venvDir, runtime.GOOS)
	manager.WithEnvironment(env)
	if flags.proxy != "" {
		manager.WithProxy(flags.proxy)
	}
	if flags.offlineDir != "" {
		dir, err := offlineDirectory(flags.offlineDir)
		if err != nil {
			return nil, err
		}
		manager.WithOfflineMode(dir)
	}

	home, err := homeDir()
	if err != nil {
		return nil, &locate.Error{Reason: messages.LocateHomeUnknown, Err: err}
	}
	registrar := pathreg.Select(pathreg.Options{
		GOOS:        runtime.GOOS,
		Shell:       getenv("SHELL"),
		Home:        home,
		ZDotDir:     getenv("ZDOTDIR"),
		BinDir:      env.BinDir(),
		DisplayName: cfg.App.DisplayName,
		Executables: cfg.App.Executables,
		UserBase:    manager.UserBase,
		Runner:      run,
		Logger:      logger,
	})

	ops := bootstrap.New(bootstrap.Deps{
		Config:  cfg,
		Env:     env,
		Manager: manager,
		Path:    registrar,
		Logger:  logger,
		Getenv:  getenv,
	})

	return &app{
		cfg:       cfg,
		env:       env,
		inspector: manager,
		path:      registrar,
		ops:       ops,
		offline:   flags.offlineDir != "",
	}, nil
}

func offlineDirectory(raw string) (string, error) {
	dir, err := filepath.Abs(raw)
	if err != nil {
		return "", fmt.Errorf(messages.RootOfflineDirFmt, raw, err)
	}
	info, err := statPath(dir)
	if err != nil {
		return "", fmt.Errorf(messages.RootOfflineDirFmt, dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf(messages.RootOfflineNotDirFmt, dir)
	}
	return dir, nil
}

// withApp builds the runtime for cmd and runs fn with it. A failure is
// logged at ERROR, which writes the error log, and is reported together with
// its remediation and the log path; the command then exits 1 silently.
func withApp(cmd *cobra.Command, flags *globalFlags, fn func(ctx context.Context, a *app) error) error {
	stderr := cmd.ErrOrStderr()
	logger := logging.New(logging.Options{Console: stderr, Verbose: flags.verbose})
	defer func() { _ = logger.Close() }()

	a, err := newApp(cmd.Context(), flags, logger)
	if err == nil {
		err = fn(cmd.Context(), a)
	}
	if err == nil {
		return nil
	}
	var silent *SilentExitError
	if errors.As(err, &silent) {
		return err
	}
	return reportFatal(stderr, logger, err)
}

func reportFatal(stderr io.Writer, logger *logging.Logger, err error) error {
	logger.Errorf(messages.FatalErrorFmt, err)

	var rem remediator
	if errors.As(err, &rem) && rem.Remediation() != "" {
		_, _ = fmt.Fprintf(stderr, messages.FatalRemediationFmt, rem.Remediation())
	}

	path, drainErr := logger.Drain()
	if drainErr != nil {
		_, _ = color.New(color.FgYellow).Fprintf(stderr, messages.FatalLogFailedFmt, drainErr)
	} else {
		_, _ = color.New(color.FgYellow).Fprintf(stderr, messages.FatalLogFileFmt, path)
	}
	return &SilentExitError{Code: 1}
}
