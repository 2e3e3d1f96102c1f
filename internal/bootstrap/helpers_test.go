package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/config"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/update"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/venv"
)

// fakeManager records the lifecycle calls the driver makes, in order.
type fakeManager struct {
	calls      []string
	exists     bool
	offlineDir string
	systemExe  string
	pyVersion  string
	pipArgs    [][]string

	ensureErr error
	makeErr   error
	globalErr error
	pipErr    error
	exeErr    error
}

func (f *fakeManager) record(call string) { f.calls = append(f.calls, call) }

func (f *fakeManager) EnsureDirectories() (venv.CleanupReport, error) {
	f.record("ensure")
	return venv.CleanupReport{}, f.ensureErr
}

func (f *fakeManager) Exists() bool { return f.exists }

func (f *fakeManager) Make(context.Context) error {
	f.record("make")
	if f.makeErr == nil {
		f.exists = true
	}
	return f.makeErr
}

func (f *fakeManager) Reset(context.Context) error {
	f.record("reset")
	return nil
}

func (f *fakeManager) Remove() {
	f.record("remove")
	f.exists = false
}

func (f *fakeManager) CheckIfGloballyInstalled(_ context.Context, remove bool) (bool, error) {
	f.record(fmt.Sprintf("global(remove=%t)", remove))
	return false, f.globalErr
}

func (f *fakeManager) Pip(_ context.Context, command string, _ venv.PipOptions, args ...string) (runner.Result, error) {
	f.record("pip " + command)
	f.pipArgs = append(f.pipArgs, append([]string{command}, args...))
	return runner.Result{}, f.pipErr
}

func (f *fakeManager) SystemExe(context.Context) (string, error) { return f.systemExe, f.exeErr }

func (f *fakeManager) SystemPythonVersion(context.Context) (string, error) { return f.pyVersion, nil }

func (f *fakeManager) OfflineDir() string { return f.offlineDir }

// fakePath shares the call log with the manager so ordering is observable.
type fakePath struct {
	log      *[]string
	addErr   error
	unsetErr error
}

func (p *fakePath) Add(context.Context) error {
	*p.log = append(*p.log, "path add")
	return p.addErr
}

func (p *fakePath) Unset(context.Context) error {
	*p.log = append(*p.log, "path unset")
	return p.unsetErr
}

func (p *fakePath) BinDir() string { return "/bin" }

type recordingLogger struct {
	info   []string
	debug  []string
	logDir string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Infof(format string, args ...interface{}) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(string, ...interface{}) {}

func (l *recordingLogger) SetLogDir(dir string) { l.logDir = dir }

type fixture struct {
	b       *Bootstrapper
	manager *fakeManager
	path    *fakePath
	logger  *recordingLogger
	env     venv.Environment
	environ map[string]string
	betaArg []bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		manager: &fakeManager{systemExe: "/usr/bin/python3", pyVersion: "3.11.4"},
		logger:  &recordingLogger{},
		env:     venv.NewEnvironment(filepath.Join(t.TempDir(), "cs_tools", ".cs_tools"), runtime.GOOS),
		environ: map[string]string{},
	}
	f.path = &fakePath{log: &f.manager.calls}
	f.b = New(Deps{
		Config:  config.Default(),
		Env:     f.env,
		Manager: f.manager,
		Path:    f.path,
		Logger:  f.logger,
		Getenv:  func(key string) string { return f.environ[key] },
		LatestRelease: func(_ context.Context, repo string, beta bool) (update.Release, error) {
			f.betaArg = append(f.betaArg, beta)
			return update.Release{
				Tag:        "v1.6.0",
				Version:    "1.6.0",
				ArchiveURL: "https://github.com/" + repo + "/archive/v1.6.0.zip",
			}, nil
		},
	})
	return f
}

func (f *fixture) installArg(t *testing.T) string {
	t.Helper()
	for _, args := range f.manager.pipArgs {
		if args[0] == "install" {
			return strings.Join(args[1:], " ")
		}
	}
	t.Fatalf("no pip install in %v", f.manager.pipArgs)
	return ""
}
