// Package lock provides an advisory, cross-process file lock.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

var lockSleep = time.Sleep

var (
	lockWaitTimeout = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// FileLock is a held advisory lock.
type FileLock struct {
	file *os.File
	path string
}

// With acquires the lock at path, runs fn, and releases the lock.
func With(path string, fn func() error) error {
	lock, err := Acquire(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()
	return fn()
}

// Acquire opens or creates path and takes an exclusive lock on it,
// polling until lockWaitTimeout elapses.
func Acquire(path string) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf(messages.LockCreateDirFmt, path, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	deadline := time.Now().Add(lockWaitTimeout)
	for {
		held, err := tryLockFn(file)
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf(messages.LockAcquireFmt, path, err)
		}
		if held {
			return &FileLock{file: file, path: path}, nil
		}
		if time.Now().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf(messages.LockTimeoutFmt, path, lockWaitTimeout)
		}
		lockSleep(lockPollEvery)
	}
}

// Path returns the lock file location.
func (l *FileLock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks and closes the lock file.
func (l *FileLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFn(l.file); err != nil {
		_ = l.file.Close()
		l.file = nil
		return err
	}
	err := l.file.Close()
	l.file = nil
	return err
}
