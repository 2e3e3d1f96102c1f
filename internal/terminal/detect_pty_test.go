//go:build !windows

package terminal

import (
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInteractiveWithPTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})

	assert.True(t, IsTerminal(tty))

	origIn, origOut := stdin, stdout
	t.Cleanup(func() { stdin, stdout = origIn, origOut })

	stdin, stdout = tty, tty
	assert.True(t, IsInteractive())

	stdout = nil
	assert.False(t, IsInteractive(), "both ends must be terminals")
}
