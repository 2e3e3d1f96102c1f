package doctor

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/venv"
)

type fakeInspector struct {
	systemExe     string
	systemExeErr  error
	pyVersion     string
	pyVersionErr  error
	exists        bool
	venvPackages  map[string]string
	globalPackage map[string]string
	listErr       error
}

func (f *fakeInspector) SystemExe(context.Context) (string, error) {
	return f.systemExe, f.systemExeErr
}

func (f *fakeInspector) SystemPythonVersion(context.Context) (string, error) {
	return f.pyVersion, f.pyVersionErr
}

func (f *fakeInspector) Exists() bool { return f.exists }

func (f *fakeInspector) PackageVersion(_ context.Context, name string, useSystem bool) (string, bool, error) {
	if f.listErr != nil {
		return "", false, f.listErr
	}
	packages := f.venvPackages
	if useSystem {
		packages = f.globalPackage
	}
	v, ok := packages[name]
	return v, ok, nil
}

func testEnv(t *testing.T) venv.Environment {
	t.Helper()
	return venv.NewEnvironment(filepath.Join(t.TempDir(), "cs_tools", ".cs_tools"), runtime.GOOS)
}

func requireResultByCheckName(t *testing.T, results []Result, checkName string) Result {
	t.Helper()
	var found *Result
	for _, result := range results {
		if result.CheckName == checkName {
			if found != nil {
				t.Fatalf("multiple %s results in %#v", checkName, results)
			}
			copyResult := result
			found = &copyResult
		}
	}
	if found == nil {
		t.Fatalf("missing %s result in %#v", checkName, results)
	}
	return *found
}

var errBoom = errors.New("boom")
