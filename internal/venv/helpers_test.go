package venv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/config"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
)

type runCall struct {
	argv []string
	opts runner.Options
}

type fakeRunner struct {
	calls   []runCall
	handler func(argv []string) (runner.Result, error)
}

func (f *fakeRunner) Run(_ context.Context, argv []string, opts runner.Options) (runner.Result, error) {
	f.calls = append(f.calls, runCall{argv: append([]string(nil), argv...), opts: opts})
	if f.handler != nil {
		return f.handler(argv)
	}
	return runner.Result{Args: argv}, nil
}

func (f *fakeRunner) argvs() []string {
	out := make([]string, 0, len(f.calls))
	for _, call := range f.calls {
		out = append(out, strings.Join(call.argv, " "))
	}
	return out
}

type testSystem struct {
	RealSystem
	LookPathFunc  func(string) (string, error)
	RemoveAllFunc func(string) error
	MkdirAllFunc  func(string, os.FileMode) error
	StatFunc      func(string) (os.FileInfo, error)
	EnvironFunc   func() []string
}

func (s testSystem) LookPath(file string) (string, error) {
	if s.LookPathFunc != nil {
		return s.LookPathFunc(file)
	}
	return "", fmt.Errorf("%s: %w", file, os.ErrNotExist)
}

func (s testSystem) RemoveAll(path string) error {
	if s.RemoveAllFunc != nil {
		return s.RemoveAllFunc(path)
	}
	return s.RealSystem.RemoveAll(path)
}

func (s testSystem) MkdirAll(path string, perm os.FileMode) error {
	if s.MkdirAllFunc != nil {
		return s.MkdirAllFunc(path, perm)
	}
	return s.RealSystem.MkdirAll(path, perm)
}

func (s testSystem) Stat(name string) (os.FileInfo, error) {
	if s.StatFunc != nil {
		return s.StatFunc(name)
	}
	return s.RealSystem.Stat(name)
}

func (s testSystem) Environ() []string {
	if s.EnvironFunc != nil {
		return s.EnvironFunc()
	}
	return []string{"PATH=/usr/bin"}
}

type recordingLogger struct {
	debug []string
	info  []string
	warn  []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Infof(format string, args ...interface{}) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.warn = append(l.warn, fmt.Sprintf(format, args...))
}

// systemPython is the interpreter the fake PATH lookup returns.
const systemPython = "/usr/bin/python3"

func pythonOnPath(file string) (string, error) {
	if file == "python3" {
		return systemPython, nil
	}
	return "", os.ErrNotExist
}

// newTestManager builds a Manager rooted in a temp dir with a fake runner.
func newTestManager(t *testing.T, run *fakeRunner, sys testSystem) (*Manager, *recordingLogger) {
	t.Helper()
	if sys.LookPathFunc == nil {
		sys.LookPathFunc = pythonOnPath
	}
	root := filepath.Join(t.TempDir(), "cs_tools", ".cs_tools")
	logger := &recordingLogger{}
	m := New(NewEnvironment(root, "linux"), Options{
		Config: config.Default(),
		Runner: run,
		System: sys,
		Logger: logger,
		GOOS:   "linux",
	})
	return m, logger
}

// touchExe creates the managed interpreter so Exists reports true.
func touchExe(t *testing.T, m *Manager) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(m.Env.Exe), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(m.Env.Exe, nil, 0o755); err != nil {
		t.Fatalf("write exe: %v", err)
	}
}

var hardeningFlags = []string{
	"--isolated",
	"--no-cache-dir",
	"--disable-pip-version-check",
	"--trusted-host", "files.pythonhosted.org",
	"--trusted-host", "pypi.org",
	"--trusted-host", "pypi.python.org",
	"--trusted-host", "github.com",
	"--trusted-host", "codeload.github.com",
}
