package pathreg

import (
	"context"
	"fmt"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
)

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

type fakeRunner struct {
	calls [][]string
	err   error
}

func (f *fakeRunner) Run(_ context.Context, argv []string, _ runner.Options) (runner.Result, error) {
	f.calls = append(f.calls, append([]string(nil), argv...))
	if f.err != nil {
		return runner.Result{}, f.err
	}
	return runner.Result{Args: argv}, nil
}
