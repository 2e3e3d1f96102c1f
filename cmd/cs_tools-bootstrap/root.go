package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose    bool
	configPath string
	proxy      string
	offlineDir string
}

func (g *globalFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.BoolVarP(&g.verbose, "verbose", "v", false, messages.RootVerboseFlagUsage)
	fs.StringVar(&g.configPath, "config", "", messages.RootConfigFlagUsage)
	fs.StringVar(&g.proxy, "proxy", "", messages.RootProxyFlagUsage)
	fs.StringVar(&g.offlineDir, "offline-mode", "", messages.RootOfflineFlagUsage)
	return fs
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().AddFlagSet(flags.flagSet())

	cmd.AddCommand(
		newInstallCmd(flags),
		newReinstallCmd(flags),
		newUninstallCmd(flags),
		newPathCmd(flags),
		newDoctorCmd(flags),
	)
	return cmd
}
