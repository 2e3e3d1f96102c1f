// Package prompt asks the user interactive questions on the terminal.
package prompt

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/terminal"
)

var (
	// ErrCancelled reports that the user pressed Esc or Ctrl+C.
	ErrCancelled = errors.New(messages.PromptCancelled)
	// ErrNotInteractive reports that no terminal is attached.
	ErrNotInteractive = errors.New(messages.TerminalRequired)
)

// Confirmer asks a yes/no question and stores the answer in value.
type Confirmer interface {
	Confirm(title string, value *bool) error
}

// HuhConfirmer implements Confirmer using charmbracelet/huh.
type HuhConfirmer struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// New returns a HuhConfirmer using terminal.IsInteractive.
func New() *HuhConfirmer {
	return &HuhConfirmer{isTerminal: terminal.IsInteractive}
}

// keyMap lets both Esc and Ctrl+C abort the form.
func keyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
	return km
}

// formFilter converts InterruptMsg to QuitMsg so bubbletea clears the form
// on the way out instead of leaving it on screen.
func formFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}

func newConfirmForm(title string, value *bool) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	)
	form.WithKeyMap(keyMap())
	return form
}

// Confirm renders a yes/no prompt on stderr.
func (c *HuhConfirmer) Confirm(title string, value *bool) error {
	checker := c.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if !checker() {
		return ErrNotInteractive
	}

	form := newConfirmForm(title, value)
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithFilter(formFilter),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}
