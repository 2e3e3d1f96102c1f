package pathreg

import (
	"context"
	"fmt"
	"strings"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
)

// FishPath registers the bin directory in fish's universal fish_user_paths.
// fish_add_path and string are builtins, so they run inside "fish -c".
type FishPath struct {
	Dir    string
	Runner CommandRunner
	Logger Logger
}

// BinDir implements Registrar.
func (f *FishPath) BinDir() string { return f.Dir }

// Add appends the directory to fish_user_paths unless it is already there.
// Builtins that change nothing return status 1, so each script wraps its
// test in "if ... end", whose status is 0 when the condition fails.
func (f *FishPath) Add(ctx context.Context) error {
	f.Logger.Infof(messages.PathregFishAddingFmt, f.Dir)
	dir := fishQuote(f.Dir)
	return f.fish(ctx, "if not contains -- "+dir+" $fish_user_paths; set -U fish_user_paths $fish_user_paths "+dir+"; end")
}

// Unset erases the first occurrence of the directory from fish_user_paths.
func (f *FishPath) Unset(ctx context.Context) error {
	f.Logger.Infof(messages.PathregFishRemovingFmt, f.Dir)
	return f.fish(ctx, "if set -l i (contains -i -- "+fishQuote(f.Dir)+" $fish_user_paths); set -e -U fish_user_paths[$i]; end")
}

func (f *FishPath) fish(ctx context.Context, script string) error {
	run := f.Runner
	if run == nil {
		run = runner.New(nil)
	}
	if _, err := run.Run(ctx, []string{"fish", "-c", script}, runner.Options{Quiet: true}); err != nil {
		return fmt.Errorf(messages.PathregFishFailedFmt, err)
	}
	return nil
}

// fishQuote wraps s in single quotes; inside them fish only treats \' and \\ specially.
func fishQuote(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + replacer.Replace(s) + "'"
}
