// Package runner executes external processes and streams their output into
// a leveled logger while capturing it for the caller.
package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// Logger receives each streamed output line at its classified severity.
// *log.Logger and *logging.Logger both satisfy it.
type Logger interface {
	Log(level log.Level, msg interface{}, keyvals ...interface{})
}

// Options controls a single Run invocation. The zero value raises on
// failure, streams output, and logs unprefixed lines at INFO.
type Options struct {
	// AllowFailure suppresses CommandFailedError on a nonzero exit.
	AllowFailure bool
	// Quiet disables streaming lines to the logger; output is still captured.
	Quiet bool
	// BaseLevel is the severity for lines without an ERROR/WARNING prefix.
	BaseLevel log.Level
	// Env replaces the inherited environment when non-nil.
	Env []string
	// Dir is the working directory of the child.
	Dir string
}

// Result is the outcome of one process invocation.
type Result struct {
	Args     []string
	ExitCode int
	// Stdout holds the unprefixed lines joined by newlines.
	Stdout []byte
	// Stderr holds the ERROR/WARNING lines (prefix stripped) joined by newlines.
	Stderr []byte
}

// CommandFailedError reports a child that exited nonzero when failure was not tolerated.
type CommandFailedError struct {
	ExitCode int
	Command  string
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf(messages.RunnerCommandFailedFmt, e.ExitCode, e.Command)
}

// IsCommandFailed reports whether err wraps a CommandFailedError.
func IsCommandFailed(err error) bool {
	var failed *CommandFailedError
	return errors.As(err, &failed)
}

var execCommandContext = exec.CommandContext

// Runner launches child processes.
type Runner struct {
	logger Logger
}

// New returns a Runner that streams to logger. A nil logger discards output.
func New(logger Logger) *Runner {
	return &Runner{logger: logger}
}

// Run launches argv with stderr merged into stdout, reads the combined
// stream line by line as it arrives, and blocks until the child exits.
func (r *Runner) Run(ctx context.Context, argv []string, opts Options) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New(messages.RunnerEmptyCommand)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := execCommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = opts.Env
	cmd.Dir = opts.Dir
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Result{}, fmt.Errorf(messages.RunnerPipeFailedFmt, argv[0], err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf(messages.RunnerStartFailedFmt, argv[0], err)
	}

	var normal, errs []string
	readErr := scanLines(stdout, func(line string) {
		level, text, isErr := classify(line, opts.BaseLevel)
		if isErr {
			errs = append(errs, text)
		} else {
			normal = append(normal, text)
		}
		if !opts.Quiet && text != "" && r.logger != nil {
			r.logger.Log(level, strings.TrimSpace(text))
		}
	})

	waitErr := cmd.Wait()
	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return Result{}, fmt.Errorf(messages.RunnerWaitFailedFmt, argv[0], waitErr)
		}
		exitCode = exitErr.ExitCode()
	}
	if readErr != nil {
		return Result{}, fmt.Errorf(messages.RunnerReadOutputFailedFmt, argv[0], readErr)
	}

	if exitCode != 0 && !opts.AllowFailure {
		return Result{}, &CommandFailedError{ExitCode: exitCode, Command: commandLine(argv)}
	}

	return Result{
		Args:     append([]string(nil), argv...),
		ExitCode: exitCode,
		Stdout:   []byte(strings.Join(normal, "\n")),
		Stderr:   []byte(strings.Join(errs, "\n")),
	}, nil
}

// scanLines feeds fn each line of r without its line terminator.
// bufio.Reader is used instead of Scanner so long lines are never rejected.
func scanLines(r io.Reader, fn func(string)) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			fn(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// classify maps a raw output line to its severity and display text.
func classify(line string, base log.Level) (log.Level, string, bool) {
	if rest, ok := strings.CutPrefix(line, "ERROR: "); ok {
		return log.ErrorLevel, rest, true
	}
	if rest, ok := strings.CutPrefix(line, "WARNING: "); ok {
		return log.WarnLevel, rest, true
	}
	return base, line, false
}

// commandLine rebuilds argv for diagnostics with whitespace removed from each argument.
func commandLine(argv []string) string {
	parts := make([]string, 0, len(argv))
	for _, arg := range argv {
		parts = append(parts, strings.Join(strings.Fields(arg), ""))
	}
	return strings.Join(parts, " ")
}

// Text returns the captured normal output as a trimmed string.
func (r Result) Text() string {
	return string(bytes.TrimSpace(r.Stdout))
}
