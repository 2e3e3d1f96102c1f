package messages

// Install and update messages.
const (
	// BootstrapCondaDetectedFmt reports an active conda environment.
	BootstrapCondaDetectedFmt = "it looks like you are running in the Anaconda environment %q"

	BootstrapCondaRemediation = "Installation and execution within conda is not well tested and may lead to issues.\n" +
		"Please deactivate the environment and run again.\n" +
		"  See https://conda.io/projects/conda/en/latest/user-guide/tasks/manage-environments.html#deactivating-an-environment\n" +
		"To ignore this warning, set the environment variable CS_TOOLS_IGNORE_CONDA_PATH to any value."

	BootstrapPythonTooOldFmt          = "it looks like you are running Python v%s; version %s or greater is required"
	BootstrapPythonRemediation        = "Install a newer Python, then re-run with it first on PATH or point CS_TOOLS_PYTHON at it."
	BootstrapPythonRemediationWindows = "Python installers are available for download for all versions at https://www.python.org/downloads/"
	BootstrapPlatformFmt              = "Platform details: system=%s arch=%s python=%s interpreter=%s"

	BootstrapCreatingEnvFmt     = "Creating the %s virtual environment."
	BootstrapCheckingGlobalFmt  = "Determining if %s is globally installed."
	BootstrapResettingFmt       = "Resetting the %s virtual environment."
	BootstrapUsingOfflineFmt    = "Using the offline binary found at %s"
	BootstrapInstallingDev      = "Installing locally using the development environment."
	BootstrapFetchingReleaseFmt = "Getting the latest %s %srelease."
	BootstrapBetaLabel          = "beta "
	BootstrapFoundVersionFmt    = "Found version: %s"
	BootstrapInstallingFmt      = "Installing %s and its dependencies."
	BootstrapUninstallingFmt    = "Uninstalling %s and its dependencies."
	BootstrapDevDirFmt          = "development directory %s: %w"
	BootstrapDevDirNotDirFmt    = "development directory %s is not a directory"
	BootstrapNotInstalledFmt    = "%s does not exist; skipping the environment lock"

	// UpdateRateLimitedFmt formats GitHub rate-limit failures.
	UpdateRateLimitedFmt             = "GitHub API rate limit exceeded (%s, remaining=%s)"
	UpdateInvalidReleaseTagFmt       = "invalid release tag %q: %w"
	UpdateNoReleaseFoundFmt          = "no matching release found for %s"
	UpdateInvalidInstalledVersionFmt = "invalid installed version %q: %w"
	UpdateCreateRequestErrFmt        = "create releases request: %w"
	UpdateFetchReleasesErrFmt        = "fetch releases: %w"
	UpdateFetchReleasesStatusFmt     = "fetch releases: unexpected status %s"
	UpdateDecodeReleasesErrFmt       = "decode releases: %w"
	UpdateRetryBudgetExhausted       = "retry budget exhausted"
)
