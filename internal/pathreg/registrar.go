// Package pathreg makes the managed environment's executables reachable on
// the user's PATH, once per platform and shell family.
package pathreg

import (
	"context"
	"strings"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
)

// Registrar adds and removes BinDir from one PATH store. Both operations
// are idempotent.
type Registrar interface {
	Add(ctx context.Context) error
	Unset(ctx context.Context) error
	BinDir() string
}

// Kind names a Registrar variant.
type Kind string

const (
	// KindPOSIX edits bash, zsh and sh profile files.
	KindPOSIX Kind = "posix"
	// KindWindows edits the per-user Path in the registry.
	KindWindows Kind = "windows"
	// KindFish edits the universal fish_user_paths variable.
	KindFish Kind = "fish"
)

// Logger is the logging surface registrars write to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// CommandRunner executes child processes. *runner.Runner satisfies it.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, opts runner.Options) (runner.Result, error)
}

// Options carries everything any variant may need.
type Options struct {
	GOOS string
	// Shell is the value of $SHELL.
	Shell string
	// Home is the user's home directory.
	Home string
	// ZDotDir is the value of $ZDOTDIR.
	ZDotDir     string
	BinDir      string
	DisplayName string
	// Executables are the console script names, without extension.
	Executables []string
	// UserBase returns the system interpreter's user base for the Windows
	// fallback when no PATH value exists.
	UserBase func(ctx context.Context) (string, error)
	Runner   CommandRunner
	Registry Registry
	Logger   Logger
}

// Detect reports which variant fits the platform and shell: fish when $SHELL
// mentions fish, Windows on windows, POSIX profiles otherwise.
func Detect(goos string, shell string) Kind {
	if strings.Contains(shell, "fish") {
		return KindFish
	}
	if goos == "windows" {
		return KindWindows
	}
	return KindPOSIX
}

// Select builds the Registrar chosen by Detect.
func Select(opts Options) Registrar {
	logger := opts.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	switch Detect(opts.GOOS, opts.Shell) {
	case KindFish:
		return &FishPath{Dir: opts.BinDir, Runner: opts.Runner, Logger: logger}
	case KindWindows:
		return &WindowsPath{
			Dir:         opts.BinDir,
			Executables: opts.Executables,
			UserBase:    opts.UserBase,
			Registry:    opts.Registry,
			Logger:      logger,
		}
	default:
		return &UnixPath{
			Dir:         opts.BinDir,
			DisplayName: opts.DisplayName,
			Home:        opts.Home,
			Shell:       opts.Shell,
			ZDotDir:     opts.ZDotDir,
			Logger:      logger,
		}
	}
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
