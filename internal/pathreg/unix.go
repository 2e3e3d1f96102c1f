package pathreg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/fsutil"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

var (
	osReadFile        = os.ReadFile
	osStat            = os.Stat
	osOpenFile        = os.OpenFile
	writeFileAtomicFn = fsutil.WriteFileAtomic
)

// UnixPath registers the bin directory through POSIX shell profiles.
type UnixPath struct {
	Dir         string
	DisplayName string
	Home        string
	Shell       string
	ZDotDir     string
	Logger      Logger
}

// BinDir implements Registrar.
func (u *UnixPath) BinDir() string { return u.Dir }

// Snippet is the exact text appended to each profile.
func (u *UnixPath) Snippet() string {
	// Appending rather than prepending keeps a global interpreter's
	// packages ahead of ours. The locale exports keep Python out of ASCII mode.
	return "\n# absolute path to " + u.DisplayName +
		"\nexport PATH=\"$PATH:" + u.Dir + "\"" +
		"\nexport LC_ALL=en_US.utf-8" +
		"\nexport LANG=en_US.utf-8" +
		"\n"
}

// Profiles returns the candidate profile files in order: .profile, then
// .zprofile and .zshrc under $ZDOTDIR (or home) when the shell is zsh, then
// .bash_profile and .bashrc.
func (u *UnixPath) Profiles() []string {
	profiles := []string{filepath.Join(u.Home, ".profile")}
	if strings.Contains(u.Shell, "zsh") {
		zdotdir := u.ZDotDir
		if zdotdir == "" {
			zdotdir = u.Home
		}
		profiles = append(profiles, filepath.Join(zdotdir, ".zprofile"), filepath.Join(zdotdir, ".zshrc"))
	}
	return append(profiles, filepath.Join(u.Home, ".bash_profile"), filepath.Join(u.Home, ".bashrc"))
}

// Add appends the snippet to every existing profile that lacks it. The
// base .profile is created empty first if missing.
func (u *UnixPath) Add(_ context.Context) error {
	if err := u.ensureBaseProfile(); err != nil {
		return err
	}
	snippet := u.Snippet()
	for _, profile := range u.Profiles() {
		contents, ok, err := readProfile(profile)
		if err != nil {
			return err
		}
		if !ok || strings.Contains(contents, snippet) {
			continue
		}
		u.Logger.Infof(messages.PathregAddingSnippetFmt, u.Dir, profile)
		if err := appendToFile(profile, snippet); err != nil {
			return err
		}
	}
	return nil
}

// Unset removes the first verbatim occurrence of the snippet from every
// existing profile. Files are rewritten atomically with their mode preserved.
func (u *UnixPath) Unset(_ context.Context) error {
	snippet := u.Snippet()
	for _, profile := range u.Profiles() {
		contents, ok, err := readProfile(profile)
		if err != nil {
			return err
		}
		if !ok || !strings.Contains(contents, snippet) {
			continue
		}
		u.Logger.Infof(messages.PathregRemovingSnippetFmt, u.Dir, profile)
		info, err := osStat(profile)
		if err != nil {
			return fmt.Errorf(messages.PathregStatProfileFmt, profile, err)
		}
		updated := strings.Replace(contents, snippet, "", 1)
		if err := writeFileAtomicFn(profile, []byte(updated), info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

// Op selects the operation Preview renders.
type Op int

const (
	OpAdd Op = iota
	OpUnset
)

// ProfileDiff is the pending change to one profile.
type ProfileDiff struct {
	Path    string
	Created bool
	Diff    string
}

// Preview returns a unified diff for each profile op would change, without
// touching the filesystem.
func (u *UnixPath) Preview(op Op) ([]ProfileDiff, error) {
	snippet := u.Snippet()
	base := filepath.Join(u.Home, ".profile")
	var diffs []ProfileDiff
	for _, profile := range u.Profiles() {
		before, ok, err := readProfile(profile)
		if err != nil {
			return nil, err
		}
		created := false
		if !ok {
			if op != OpAdd || profile != base {
				continue
			}
			created = true
		}

		var after string
		switch op {
		case OpAdd:
			if strings.Contains(before, snippet) {
				continue
			}
			after = before + snippet
		case OpUnset:
			if !strings.Contains(before, snippet) {
				continue
			}
			after = strings.Replace(before, snippet, "", 1)
		}
		diffs = append(diffs, ProfileDiff{
			Path:    profile,
			Created: created,
			Diff:    udiff.Unified(profile, profile, before, after),
		})
	}
	return diffs, nil
}

func (u *UnixPath) ensureBaseProfile() error {
	base := filepath.Join(u.Home, ".profile")
	file, err := osOpenFile(base, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return fmt.Errorf(messages.PathregCreateProfileFmt, base, err)
	}
	return file.Close()
}

// readProfile returns the profile contents; ok is false when it does not exist.
func readProfile(path string) (string, bool, error) {
	data, err := osReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf(messages.PathregReadProfileFmt, path, err)
	}
	return string(data), true, nil
}

func appendToFile(path string, text string) error {
	file, err := osOpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf(messages.PathregOpenProfileFmt, path, err)
	}
	if _, err := file.WriteString(text); err != nil {
		_ = file.Close()
		return fmt.Errorf(messages.PathregWriteProfileFmt, path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf(messages.PathregWriteProfileFmt, path, err)
	}
	return nil
}
