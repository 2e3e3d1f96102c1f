package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// FilePattern is the os.CreateTemp pattern for drained log files.
const FilePattern = "cs_tools-bootstrap-error-*.log"

var osCreateTemp = os.CreateTemp

// DeferredFile holds log output in memory until Drain is called, then
// writes everything buffered so far to a fresh file and streams later
// writes straight to it.
type DeferredFile struct {
	mu   sync.Mutex
	dir  string
	buf  bytes.Buffer
	file *os.File
}

// NewDeferredFile returns a DeferredFile that creates its file in dir.
// An empty dir means the current working directory.
func NewDeferredFile(dir string) *DeferredFile {
	return &DeferredFile{dir: dir}
}

// SetDir changes where the file will be created. It has no effect once drained.
func (d *DeferredFile) SetDir(dir string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dir = dir
}

// Write implements io.Writer.
func (d *DeferredFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file != nil {
		return d.file.Write(p)
	}
	return d.buf.Write(p)
}

// Drained reports whether the file has been created.
func (d *DeferredFile) Drained() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.file != nil
}

// Drain creates the log file if needed, flushes the buffer into it, and
// returns its path. Repeated calls return the same path.
func (d *DeferredFile) Drain() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file != nil {
		return d.file.Name(), nil
	}

	dir := d.dir
	if info, err := os.Stat(dir); dir == "" || err != nil || !info.IsDir() {
		dir = "."
	}
	file, err := osCreateTemp(dir, FilePattern)
	if err != nil {
		return "", fmt.Errorf(messages.LoggingCreateFileFmt, dir, err)
	}
	if _, err := d.buf.WriteTo(file); err != nil {
		_ = file.Close()
		return "", fmt.Errorf(messages.LoggingFlushFileFmt, file.Name(), err)
	}
	d.file = file
	name, err := filepath.Abs(file.Name())
	if err != nil {
		return file.Name(), nil
	}
	return name, nil
}

// Close closes the file when drained. Buffered output that was never
// drained is discarded.
func (d *DeferredFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf.Reset()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}
