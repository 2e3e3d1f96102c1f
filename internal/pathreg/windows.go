package pathreg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// Registry is the user's persistent environment store.
type Registry interface {
	// ReadPath returns the user PATH value; ok is false when it is absent.
	ReadPath() (value string, ok bool, err error)
	// WritePath stores value as an expandable string.
	WritePath(value string) error
	// Broadcast tells running processes the environment changed.
	Broadcast() error
}

var (
	osSymlink  = os.Symlink
	osRemove   = os.Remove
	copyFileFn = copyFile
)

// WindowsPath registers the bin directory in HKCU\Environment\PATH.
type WindowsPath struct {
	Dir         string
	Executables []string
	UserBase    func(ctx context.Context) (string, error)
	Registry    Registry
	Logger      Logger
}

// BinDir implements Registrar.
func (w *WindowsPath) BinDir() string { return w.Dir }

func (w *WindowsPath) registry() Registry {
	if w.Registry == nil {
		w.Registry = NewRegistry()
	}
	return w.Registry
}

// Add appends ";<dir>" to the user PATH unless the directory already
// appears in it. When no PATH value exists the executables are linked (or
// copied) into the interpreter's user Scripts directory instead.
func (w *WindowsPath) Add(ctx context.Context) error {
	reg := w.registry()
	value, ok, err := reg.ReadPath()
	if err != nil {
		return err
	}
	if !ok {
		return w.linkExecutables(ctx)
	}

	if !strings.Contains(value, w.Dir) {
		w.Logger.Infof(messages.PathregAddingUserPathFmt, w.Dir)
		if err := reg.WritePath(value + ";" + w.Dir); err != nil {
			return err
		}
	}
	w.broadcast(reg)
	return nil
}

// Unset removes ";<dir>" from the user PATH, or the linked executables
// when no PATH value exists.
func (w *WindowsPath) Unset(ctx context.Context) error {
	reg := w.registry()
	value, ok, err := reg.ReadPath()
	if err != nil {
		return err
	}
	if !ok {
		return w.unlinkExecutables(ctx)
	}

	updated := strings.ReplaceAll(value, ";"+w.Dir, "")
	if updated != value {
		w.Logger.Infof(messages.PathregRemovingUserPathFmt, w.Dir)
		if err := reg.WritePath(updated); err != nil {
			return err
		}
	}
	w.broadcast(reg)
	return nil
}

func (w *WindowsPath) broadcast(reg Registry) {
	if err := reg.Broadcast(); err != nil {
		w.Logger.Warnf(messages.PathregBroadcastWarningFmt, err)
	}
}

func (w *WindowsPath) scriptsDir(ctx context.Context) (string, error) {
	if w.UserBase == nil {
		return "", errors.New(messages.PathregUserBaseUnavailable)
	}
	base, err := w.UserBase(ctx)
	if err != nil {
		return "", fmt.Errorf(messages.PathregUserBaseFmt, err)
	}
	return filepath.Join(base, "Scripts"), nil
}

func (w *WindowsPath) linkExecutables(ctx context.Context) error {
	scripts, err := w.scriptsDir(ctx)
	if err != nil {
		return err
	}
	for _, name := range w.Executables {
		original := filepath.Join(w.Dir, name+".exe")
		target := filepath.Join(scripts, name+".exe")
		if err := w.linkOrCopy(target, original); err != nil {
			return err
		}
	}
	return nil
}

// linkOrCopy replaces target with a symlink to original, copying the file
// when symlinks are not permitted.
func (w *WindowsPath) linkOrCopy(target string, original string) error {
	if err := osRemove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf(messages.PathregRemoveLinkFmt, target, err)
	}
	w.Logger.Infof(messages.PathregSymlinkingFmt, target, original)
	if err := osSymlink(original, target); err != nil {
		w.Logger.Infof(messages.PathregSymlinkFallbackFmt, err)
		if err := copyFileFn(original, target); err != nil {
			return fmt.Errorf(messages.PathregCopyExecutableFmt, original, target, err)
		}
	}
	return nil
}

func (w *WindowsPath) unlinkExecutables(ctx context.Context) error {
	scripts, err := w.scriptsDir(ctx)
	if err != nil {
		return err
	}
	for _, name := range w.Executables {
		target := filepath.Join(scripts, name+".exe")
		if err := osRemove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf(messages.PathregRemoveLinkFmt, target, err)
		}
	}
	return nil
}

func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
