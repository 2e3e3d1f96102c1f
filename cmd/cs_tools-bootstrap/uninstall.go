package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/prompt"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/terminal"
)

var (
	isTerminal   = terminal.IsInteractive
	newConfirmer = func() prompt.Confirmer { return prompt.New() }
)

func newUninstallCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   messages.UninstallUse,
		Short: messages.UninstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				if !yes {
					ok, err := confirmUninstall(a)
					if err != nil {
						return err
					}
					if !ok {
						_, _ = fmt.Fprintln(out, messages.UninstallCancelled)
						return nil
					}
				}
				if err := a.ops.Uninstall(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, color.GreenString(messages.DoneFmt, a.cfg.App.DisplayName))
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.UninstallYesUsage)
	return cmd
}

// confirmUninstall asks before the environment is deleted. A cancelled
// prompt counts as a "no"; a non-interactive session must pass --yes.
func confirmUninstall(a *app) (bool, error) {
	if !isTerminal() {
		return false, errors.New(messages.UninstallNeedsConfirm)
	}
	title := fmt.Sprintf(messages.UninstallConfirmFmt, a.cfg.App.DisplayName, a.env.VenvDir)
	var ok bool
	err := newConfirmer().Confirm(title, &ok)
	if errors.Is(err, prompt.ErrCancelled) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}
