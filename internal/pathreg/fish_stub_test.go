//go:build !windows

package pathreg

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/runner"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/testutil"
)

// fishStub stands in for fish: it keeps fish_user_paths one entry per line in
// $FISH_STATE and answers the guarded add and erase scripts. Any other script
// exits 1, which is what fish builtins report when they change nothing.
const fishStub = `script="$2"
case "$script" in
"if not contains -- "*)
  dir=$(printf '%s' "$script" | sed "s/^if not contains -- '\([^']*\)'.*/\1/")
  grep -qxF "$dir" "$FISH_STATE" || printf '%s\n' "$dir" >> "$FISH_STATE"
  exit 0 ;;
"if set -l i (contains -i -- "*)
  dir=$(printf '%s' "$script" | sed "s/^if set -l i (contains -i -- '\([^']*\)'.*/\1/")
  grep -vxF "$dir" "$FISH_STATE" > "$FISH_STATE.tmp"
  mv "$FISH_STATE.tmp" "$FISH_STATE"
  exit 0 ;;
esac
exit 1`

func newStubbedFish(t *testing.T) (*FishPath, string) {
	t.Helper()
	bin := t.TempDir()
	testutil.WriteScript(t, bin, "fish", fishStub)
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	state := filepath.Join(t.TempDir(), "fish_user_paths")
	require.NoError(t, os.WriteFile(state, nil, 0o644))
	t.Setenv("FISH_STATE", state)

	return &FishPath{Dir: "/opt/bin", Runner: runner.New(nil), Logger: &recordingLogger{}}, state
}

func readFishPaths(t *testing.T, state string) []string {
	t.Helper()
	data, err := os.ReadFile(state)
	require.NoError(t, err)
	return strings.Fields(string(data))
}

func TestFishAddTwiceIsAddOnce(t *testing.T) {
	f, state := newStubbedFish(t)
	ctx := context.Background()

	require.NoError(t, f.Add(ctx))
	require.NoError(t, f.Add(ctx))
	assert.Equal(t, []string{"/opt/bin"}, readFishPaths(t, state))
}

func TestFishUnsetWhenAbsentSucceeds(t *testing.T) {
	f, state := newStubbedFish(t)

	require.NoError(t, f.Unset(context.Background()))
	assert.Empty(t, readFishPaths(t, state))
}

func TestFishAddThenUnsetLeavesPathsEmpty(t *testing.T) {
	f, state := newStubbedFish(t)
	ctx := context.Background()

	require.NoError(t, f.Add(ctx))
	require.NoError(t, f.Unset(ctx))
	require.NoError(t, f.Unset(ctx))
	assert.Empty(t, readFishPaths(t, state))
}

func TestFishWithRealRunnerFailure(t *testing.T) {
	bin := t.TempDir()
	testutil.WriteStubWithExit(t, bin, "fish", 127)
	t.Setenv("PATH", bin)

	f := &FishPath{Dir: "/opt/bin", Runner: runner.New(nil), Logger: &recordingLogger{}}
	err := f.Add(context.Background())
	require.Error(t, err)
	assert.True(t, runner.IsCommandFailed(err))
}
