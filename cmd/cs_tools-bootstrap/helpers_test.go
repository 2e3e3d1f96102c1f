package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/bootstrap"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/config"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/logging"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/pathreg"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/prompt"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/venv"
)

var errBoom = errors.New("boom")

type fakeOps struct {
	calls        []string
	installOpts  []bootstrap.InstallOptions
	preflightErr error
	installErr   error
	uninstallErr error
	pathErr      error
}

func (f *fakeOps) Preflight(context.Context) error {
	f.calls = append(f.calls, "preflight")
	return f.preflightErr
}

func (f *fakeOps) Install(_ context.Context, opts bootstrap.InstallOptions) error {
	f.calls = append(f.calls, "install")
	f.installOpts = append(f.installOpts, opts)
	return f.installErr
}

func (f *fakeOps) Uninstall(context.Context) error {
	f.calls = append(f.calls, "uninstall")
	return f.uninstallErr
}

func (f *fakeOps) AddPath(context.Context) error {
	f.calls = append(f.calls, "path add")
	return f.pathErr
}

func (f *fakeOps) UnsetPath(context.Context) error {
	f.calls = append(f.calls, "path unset")
	return f.pathErr
}

type fakeRegistrar struct{ dir string }

func (f fakeRegistrar) Add(context.Context) error   { return nil }
func (f fakeRegistrar) Unset(context.Context) error { return nil }
func (f fakeRegistrar) BinDir() string              { return f.dir }

type fakeConfirmer struct {
	answer bool
	err    error
	titles []string
}

func (f *fakeConfirmer) Confirm(title string, value *bool) error {
	f.titles = append(f.titles, title)
	*value = f.answer
	return f.err
}

// stubApp replaces the runtime built by every command with one backed by ops
// and reg, and runs the test from a scratch directory so error logs land there.
func stubApp(t *testing.T, ops *fakeOps, reg pathreg.Registrar) {
	t.Helper()
	chdir(t, t.TempDir())

	orig := newApp
	t.Cleanup(func() { newApp = orig })
	newApp = func(context.Context, *globalFlags, *logging.Logger) (*app, error) {
		return &app{
			cfg:  config.Default(),
			env:  venv.NewEnvironment("/data/cs_tools/.cs_tools", "linux"),
			path: reg,
			ops:  ops,
		}, nil
	}
}

func stubConfirm(t *testing.T, interactive bool, c prompt.Confirmer) {
	t.Helper()
	origTerminal, origConfirmer := isTerminal, newConfirmer
	t.Cleanup(func() {
		isTerminal = origTerminal
		newConfirmer = origConfirmer
	})
	isTerminal = func() bool { return interactive }
	newConfirmer = func() prompt.Confirmer { return c }
}

// run executes the CLI and returns stdout, stderr, and the exit code.
func run(args ...string) (string, string, int) {
	var stdout, stderr bytes.Buffer
	code := 0
	runMain(append([]string{"cs_tools-bootstrap"}, args...), &stdout, &stderr, func(c int) { code = c })
	return stdout.String(), stderr.String(), code
}

// chdir changes the working directory to dir and restores it when the test
// ends (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}
