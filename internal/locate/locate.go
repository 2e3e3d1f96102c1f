// Package locate computes where the managed environment lives on each platform.
package locate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// System abstracts the host lookups used to locate the environment.
type System interface {
	GOOS() string
	Getenv(key string) string
	HomeDir() (string, error)
	EnsureEnvDir(ctx context.Context, dir string) (string, error)
	EvalSymlinks(path string) (string, error)
	Abs(path string) (string, error)
}

// EnvBuilder creates an environment directory and reports where it really
// is. *venv.Manager satisfies it.
type EnvBuilder interface {
	EnsureEnvDir(ctx context.Context, dir string) (string, error)
}

// RealSystem implements System against the running host. Builder is only
// consulted on Windows; without one the directory is created in place.
type RealSystem struct {
	Builder EnvBuilder
}

// GOOS returns runtime.GOOS.
func (RealSystem) GOOS() string { return runtime.GOOS }

// Getenv returns os.Getenv(key).
func (RealSystem) Getenv(key string) string { return os.Getenv(key) }

// HomeDir returns the user's home directory via go-homedir.
func (RealSystem) HomeDir() (string, error) { return homedir.Dir() }

// EnsureEnvDir delegates to Builder, or creates dir when there is none.
func (s RealSystem) EnsureEnvDir(ctx context.Context, dir string) (string, error) {
	if s.Builder != nil {
		return s.Builder.EnsureEnvDir(ctx, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// EvalSymlinks calls filepath.EvalSymlinks.
func (RealSystem) EvalSymlinks(path string) (string, error) { return filepath.EvalSymlinks(path) }

// Abs calls filepath.Abs.
func (RealSystem) Abs(path string) (string, error) { return filepath.Abs(path) }

// Logger receives debug diagnostics.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// Error reports that the environment location could not be determined.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// Remediation returns the text shown to the user alongside the error.
func (e *Error) Remediation() string { return messages.LocateRemediation }

// IsError reports whether err wraps a locate Error.
func IsError(err error) bool {
	var locErr *Error
	return errors.As(err, &locErr)
}

// ResolveRoot returns the absolute, symlink-free directory of the managed
// environment for app, which is <base>/<app>/.<app>. It only computes paths,
// except on Windows where the directory is ensured first.
func ResolveRoot(ctx context.Context, sys System, app string, logger Logger) (string, error) {
	if sys == nil {
		sys = RealSystem{}
	}
	if strings.TrimSpace(app) == "" {
		return "", &Error{Reason: messages.LocateAppRequired}
	}

	switch sys.GOOS() {
	case "windows":
		return resolveWindows(ctx, sys, app, logger)
	case "darwin":
		home, err := homeDir(sys)
		if err != nil {
			return "", err
		}
		base := filepath.Join(home, "Library", "Application Support")
		return finish(sys, filepath.Join(base, app, "."+app))
	default:
		base := sys.Getenv("XDG_CONFIG_HOME")
		if strings.TrimSpace(base) == "" {
			home, err := homeDir(sys)
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".config")
		}
		return finish(sys, filepath.Join(base, app, "."+app))
	}
}

// resolveWindows has the environment builder ensure the directory and adopts
// the location it reports, which differs from the requested one when a
// store-packaged interpreter redirects its writes.
func resolveWindows(ctx context.Context, sys System, app string, logger Logger) (string, error) {
	base := sys.Getenv("APPDATA")
	if strings.TrimSpace(base) == "" {
		home, err := homeDir(sys)
		if err != nil {
			return "", err
		}
		base = home
	}
	requested, err := sys.Abs(filepath.Join(base, app, "."+app))
	if err != nil {
		return "", &Error{Reason: fmt.Sprintf(messages.LocateAbsFmt, base), Err: err}
	}
	ensured, err := sys.EnsureEnvDir(ctx, requested)
	if err != nil {
		return "", fmt.Errorf(messages.LocateEnsureDirFmt, requested, err)
	}
	actual, err := finish(sys, ensured)
	if err != nil {
		return "", err
	}
	if wanted, err := finish(sys, requested); err == nil && !strings.EqualFold(actual, wanted) && logger != nil {
		logger.Debugf(messages.LocateRedirectedFmt, requested, actual)
	}
	return actual, nil
}

func homeDir(sys System) (string, error) {
	home, err := sys.HomeDir()
	if err != nil {
		return "", &Error{Reason: messages.LocateHomeUnknown, Err: err}
	}
	if strings.TrimSpace(home) == "" {
		return "", &Error{Reason: messages.LocateHomeUnknown}
	}
	return home, nil
}

// finish makes path absolute and resolves symlinks in its longest existing prefix.
func finish(sys System, path string) (string, error) {
	abs, err := sys.Abs(path)
	if err != nil {
		return "", &Error{Reason: fmt.Sprintf(messages.LocateAbsFmt, path), Err: err}
	}
	existing := abs
	var rest []string
	for {
		resolved, err := sys.EvalSymlinks(existing)
		if err == nil {
			parts := append([]string{resolved}, rest...)
			return filepath.Join(parts...), nil
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = append([]string{filepath.Base(existing)}, rest...)
		existing = parent
	}
}
