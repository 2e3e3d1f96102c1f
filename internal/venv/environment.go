// Package venv manages the self-contained Python environment the toolkit is
// installed into.
package venv

import "path/filepath"

// Environment is the on-disk layout of a managed environment. AppDir is its
// identity; everything else is derived from it.
type Environment struct {
	AppDir   string
	VenvDir  string
	Exe      string
	CacheDir string
	LogDir   string
	TmpDir   string
	windows  bool
}

// NewEnvironment derives the layout from the environment directory returned
// by locate.ResolveRoot. goos selects the interpreter location.
func NewEnvironment(venvDir string, goos string) Environment {
	appDir := filepath.Dir(venvDir)
	env := Environment{
		AppDir:   appDir,
		VenvDir:  venvDir,
		CacheDir: filepath.Join(appDir, ".cache"),
		LogDir:   filepath.Join(appDir, ".logs"),
		TmpDir:   filepath.Join(appDir, "tmp"),
		windows:  goos == "windows",
	}
	if env.windows {
		env.Exe = filepath.Join(venvDir, "Scripts", "python.exe")
	} else {
		env.Exe = filepath.Join(venvDir, "bin", "python")
	}
	return env
}

// BinDir is the directory holding the interpreter and installed console scripts.
func (e Environment) BinDir() string {
	return filepath.Dir(e.Exe)
}

// Executable returns the path of a console script installed in the environment.
func (e Environment) Executable(name string) string {
	if e.windows {
		return filepath.Join(e.BinDir(), name+".exe")
	}
	return filepath.Join(e.BinDir(), name)
}

// LockPath is the advisory lock file serializing bootstrap operations.
func (e Environment) LockPath() string {
	return filepath.Join(e.AppDir, ".bootstrap.lock")
}
