package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/bootstrap"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/config"
	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// installFlags are the flags shared by install and reinstall.
type installFlags struct {
	beta   bool
	devDir string
}

func newInstallCmd(flags *globalFlags) *cobra.Command {
	return newInstallLikeCmd(flags, messages.InstallUse, messages.InstallShort, false)
}

func newReinstallCmd(flags *globalFlags) *cobra.Command {
	return newInstallLikeCmd(flags, messages.ReinstallUse, messages.ReinstallShort, true)
}

func newInstallLikeCmd(flags *globalFlags, use string, short string, reinstall bool) *cobra.Command {
	local := &installFlags{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if local.beta && local.devDir != "" {
				return errors.New(messages.InstallBetaDevBoth)
			}
			return withApp(cmd, flags, func(ctx context.Context, a *app) error {
				out := cmd.OutOrStdout()
				printWelcome(out, a.cfg)
				if err := a.ops.Preflight(ctx); err != nil {
					return err
				}
				opts := bootstrap.InstallOptions{
					Reinstall: reinstall,
					Beta:      local.beta,
					DevDir:    local.devDir,
				}
				if err := a.ops.Install(ctx, opts); err != nil {
					return err
				}
				printDone(out, a.cfg)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&local.beta, "beta", false, messages.InstallBetaUsage)
	cmd.Flags().StringVar(&local.devDir, "dev", "", messages.InstallDevUsage)
	return cmd
}

var bannerStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 2).
	Bold(true)

func printWelcome(out io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(out, bannerStyle.Render(messages.WelcomeBanner))
	_, _ = fmt.Fprintln(out, messages.WelcomeBody)
	_, _ = fmt.Fprintln(out, messages.WelcomeIssues)
	_, _ = fmt.Fprintf(out, messages.WelcomeURLFmt, issuesURL(cfg))
}

func printDone(out io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(out, color.GreenString(messages.DoneFmt, cfg.App.DisplayName))
	_, _ = fmt.Fprintln(out, color.YellowString(messages.RestartShell))
	_, _ = fmt.Fprintf(out, messages.RestartCmdFmt, primaryExecutable(cfg))
}

// issuesURL points at the discussions page of the configured repository.
func issuesURL(cfg *config.Config) string {
	if cfg.App.Repository == "" {
		return messages.IssuesURL
	}
	return fmt.Sprintf(messages.IssuesURLFmt, cfg.App.Repository)
}

func primaryExecutable(cfg *config.Config) string {
	if len(cfg.App.Executables) == 0 {
		return cfg.App.Name
	}
	return cfg.App.Executables[0]
}
