package venv

import (
	"os"
	"os/exec"
)

// System abstracts the filesystem and process lookups the Manager needs.
type System interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	ReadDir(name string) ([]os.DirEntry, error)
	LookPath(file string) (string, error)
	Environ() []string
}

// RealSystem implements System using the os package.
type RealSystem struct{}

// Stat calls os.Stat.
func (RealSystem) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }

// MkdirAll calls os.MkdirAll.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

// RemoveAll calls os.RemoveAll.
func (RealSystem) RemoveAll(path string) error { return os.RemoveAll(path) }

// ReadDir calls os.ReadDir.
func (RealSystem) ReadDir(name string) ([]os.DirEntry, error) { return os.ReadDir(name) }

// LookPath calls exec.LookPath.
func (RealSystem) LookPath(file string) (string, error) { return exec.LookPath(file) }

// Environ calls os.Environ.
func (RealSystem) Environ() []string { return os.Environ() }
