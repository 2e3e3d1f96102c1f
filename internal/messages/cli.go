package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "cs_tools-bootstrap"
	// RootShort is the short description for the root command.
	RootShort = "Install, reinstall, or uninstall CS Tools"

	RootLong = "Installs, removes, or updates to the latest version of cs_tools.\n\n" +
		"Feeling lost? Try our tutorial!\nhttps://thoughtspot.github.io/cs_tools/tutorial/"

	RootVerboseFlagUsage = "increase terminal output level"
	RootConfigFlagUsage  = "path to a TOML file overriding the built-in settings"
	RootProxyFlagUsage   = "url to route through, in the form http://[user:password@]proxy.server:port"
	RootOfflineFlagUsage = "install from a local directory holding requirements.txt and dependencies/ instead of from GitHub"
	RootOfflineDirFmt    = "offline directory %s: %w"
	RootOfflineNotDirFmt = "offline directory %s is not a directory"
	RootProxyFmt         = "Routing pip through proxy %s"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// InstallUse is the install command name.
	InstallUse         = "install"
	InstallShort       = "Install cs_tools to your system (default option)"
	ReinstallUse       = "reinstall"
	ReinstallShort     = "Install on top of the existing version"
	InstallBetaUsage   = "install a remote pre-release version"
	InstallDevUsage    = "install a local checkout from this directory"
	InstallBetaDevBoth = "--beta and --dev cannot be used together"

	// UninstallUse is the uninstall command name.
	UninstallUse          = "uninstall"
	UninstallShort        = "Remove cs_tools from your system"
	UninstallYesUsage     = "skip the confirmation prompt"
	UninstallConfirmFmt   = "Remove %s and its virtual environment at %s?"
	UninstallNeedsConfirm = "uninstall needs confirmation; re-run in an interactive terminal or pass --yes"
	UninstallCancelled    = "Uninstall cancelled."

	// PathUse is the path command name.
	PathUse                  = "path"
	PathShort                = "Manage the PATH registration of the cs_tools executables"
	PathAddUse               = "add"
	PathAddShort             = "Make the cs_tools executables reachable through PATH"
	PathUnsetUse             = "unset"
	PathUnsetShort           = "Remove the cs_tools executables from PATH"
	PathDryRunUsage          = "print the profile changes without writing them"
	PathDryRunUnsupportedFmt = "--dry-run is only supported for shell profiles (detected %s)"
	PathDryRunNoChangesFmt   = "%s: no changes\n"
	PathDryRunCreatedFmt     = "%s (new file)\n"
	PathDryRunNone           = "No profile changes."
	PathDoneFmt              = "PATH now %s %s\n"
	PathDoneAdded            = "includes"
	PathDoneRemoved          = "excludes"

	// WelcomeBanner greets the user at the start of an install.
	WelcomeBanner = "Welcome to the CS Tools Bootstrapper!"
	WelcomeBody   = "Ideally, you will only need to run this one time, and then your environment can be fully managed by CS Tools itself."
	WelcomeIssues = "If you run into any issues, please reach out to us on GitHub Discussions below."
	WelcomeURLFmt = "\n          GitHub: %s\n\n"
	IssuesURL     = "https://github.com/thoughtspot/cs_tools/issues/new/choose"
	IssuesURLFmt  = "https://github.com/%s/issues/new/choose"
	DoneFmt       = "Done! Thank you for trying %s."
	RestartShell  = "You're almost there! Please restart your shell and then execute the command below."
	RestartCmdFmt = "\n    %s --version\n\n"

	// FatalRemediationFmt prints remediation text under a fatal error.
	FatalRemediationFmt = "\n%s\n"
	FatalLogFileFmt     = "Unexpected error in bootstrapper, see %s for details..\n"
	FatalLogFailedFmt   = "Could not write the error log: %v\n"
	FatalErrorFmt       = "Error found: %v"
)
